package llm

// GetStaccatoGrammar returns the Lark grammar for the Staccato subset the
// parser understands. It is embedded in the composer prompt as a reference.
func GetStaccatoGrammar() string {
	return `
// Staccato - space separated music tokens
// Example: KEY:Gmaj TIME:3/4 V0 I[PIANO] L1 V[PERCUSSION] I10

start: token (SP token)*

token: key_signature
     | time_signature
     | instrument
     | voice
     | layer

// ---------- Signatures ----------
key_signature: "KEY:" (accidental_key | named_key)
accidental_key: "K" ACCIDENTAL+            // Kbbb = 3 flats (Eb major), K## = 2 sharps (D major)
named_key: NOTE CHORD_QUALITY?             // Cmaj, F#min, Ebm7 (minor when the chord has a b3)
time_signature: "TIME:" INT "/" INT        // 3/4, 6/8

// ---------- Instrument / voice / layer ----------
instrument: "I" value                      // I0, I[PIANO], I[FLUTE]
voice: "V" value                           // V0..V15, V[PERCUSSION] = V9
layer: "L" value                           // percussion layer

value: INT | "[" NAME "]"

// ---------- Terminals ----------
ACCIDENTAL: "b" | "B" | "#"
NOTE: /[A-Ga-g](#|b)*/
CHORD_QUALITY: /(maj|major|min|minor|m|aug|dim|sus2|sus4|sus|maj7|m7|min7|dim7|m7b5|7|9|add9|6|m6)/
NAME: /[A-Z][A-Z0-9_\-]*/
INT: /[0-9]+/
SP: " "
`
}

// StaccatoInstrumentHint lists a few General MIDI names the model can use in brackets.
const StaccatoInstrumentHint = "PIANO, ELECTRIC_PIANO, GUITAR, ACOUSTIC_BASS, ELECTRIC_BASS_FINGER, " +
	"VIOLIN, CELLO, STRING_ENSEMBLE_1, TRUMPET, ALTO_SAX, FLUTE, CHOIR_AAHS, SQUARE, SAWTOOTH, PERCUSSION"
