package staccato

import (
	"maps"
	"sync"
)

// PercussionName maps to the General MIDI percussion channel.
const (
	PercussionName  = "PERCUSSION"
	PercussionValue = 9
)

// InstrumentNames lists the General MIDI program display names; the index is the program id.
var InstrumentNames = [128]string{
	// Piano
	"PIANO", "BRIGHT_ACOUSTIC", "ELECTRIC_GRAND", "HONKEY_TONK",
	"ELECTRIC_PIANO", "ELECTRIC_PIANO_2", "HARPSICHORD", "CLAVINET",
	// Chromatic percussion
	"CELESTA", "GLOCKENSPIEL", "MUSIC_BOX", "VIBRAPHONE",
	"MARIMBA", "XYLOPHONE", "TUBULAR_BELLS", "DULCIMER",
	// Organ
	"DRAWBAR_ORGAN", "PERCUSSIVE_ORGAN", "ROCK_ORGAN", "CHURCH_ORGAN",
	"REED_ORGAN", "ACCORDIAN", "HARMONICA", "TANGO_ACCORDIAN",
	// Guitar
	"GUITAR", "STEEL_STRING_GUITAR", "ELECTRIC_JAZZ_GUITAR", "ELECTRIC_CLEAN_GUITAR",
	"ELECTRIC_MUTED_GUITAR", "OVERDRIVEN_GUITAR", "DISTORTION_GUITAR", "GUITAR_HARMONICS",
	// Bass
	"ACOUSTIC_BASS", "ELECTRIC_BASS_FINGER", "ELECTRIC_BASS_PICK", "FRETLESS_BASS",
	"SLAP_BASS_1", "SLAP_BASS_2", "SYNTH_BASS_1", "SYNTH_BASS_2",
	// Strings
	"VIOLIN", "VIOLA", "CELLO", "CONTRABASS",
	"TREMOLO_STRINGS", "PIZZICATO_STRINGS", "ORCHESTRAL_STRINGS", "TIMPANI",
	// Ensemble
	"STRING_ENSEMBLE_1", "STRING_ENSEMBLE_2", "SYNTH_STRINGS_1", "SYNTH_STRINGS_2",
	"CHOIR_AAHS", "VOICE_OOHS", "SYNTH_VOICE", "ORCHESTRA_HIT",
	// Brass
	"TRUMPET", "TROMBONE", "TUBA", "MUTED_TRUMPET",
	"FRENCH_HORN", "BRASS_SECTION", "SYNTH_BRASS_1", "SYNTH_BRASS_2",
	// Reed
	"SOPRANO_SAX", "ALTO_SAX", "TENOR_SAX", "BARITONE_SAX",
	"OBOE", "ENGLISH_HORN", "BASSOON", "CLARINET",
	// Pipe
	"PICCOLO", "FLUTE", "RECORDER", "PAN_FLUTE",
	"BLOWN_BOTTLE", "SKAKUHACHI", "WHISTLE", "OCARINA",
	// Synth lead
	"SQUARE", "SAWTOOTH", "CALLIOPE", "CHIFF",
	"CHARANG", "VOICE", "FIFTHS", "BASSLEAD",
	// Synth pad
	"NEW_AGE", "WARM", "POLYSYNTH", "CHOIR",
	"BOWED", "METALLIC", "HALO", "SWEEP",
	// Synth effects
	"RAIN", "SOUNDTRACK", "CRYSTAL", "ATMOSPHERE",
	"BRIGHTNESS", "GOBLINS", "ECHOES", "SCI-FI",
	// Ethnic
	"SITAR", "BANJO", "SHAMISEN", "KOTO",
	"KALIMBA", "BAGPIPE", "FIDDLE", "SHANAI",
	// Percussive
	"TINKLE_BELL", "AGOGO", "STEEL_DRUMS", "WOODBLOCK",
	"TAIKO_DRUM", "MELODIC_TOM", "SYNTH_DRUM", "REVERSE_CYMBAL",
	// Sound effects
	"GUITAR_FRET_NOISE", "BREATH_NOISE", "SEASHORE", "BIRD_TWEET",
	"TELEPHONE_RING", "HELICOPTER", "APPLAUSE", "GUNSHOT",
}

// seedDictionary is built once and never mutated; contexts clone it.
var seedDictionary = sync.OnceValue(func() map[string]int {
	dict := make(map[string]int, len(InstrumentNames)+1)
	for program, name := range InstrumentNames {
		dict[name] = program
	}
	dict[PercussionName] = PercussionValue
	return dict
})

// newDictionary returns a per-parse copy of the seed dictionary.
func newDictionary() map[string]int {
	return maps.Clone(seedDictionary())
}
