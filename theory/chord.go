package theory

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidChord is returned when a chord symbol cannot be interpreted.
var ErrInvalidChord = errors.New("invalid chord")

// DefaultChordOctave places chord roots below the melody register.
const DefaultChordOctave = 3

// Chord qualities (lower-cased) and their interval patterns.
var chordQualities = map[string]string{
	"":       "1 3 5",
	"maj":    "1 3 5",
	"major":  "1 3 5",
	"m":      "1 b3 5",
	"min":    "1 b3 5",
	"minor":  "1 b3 5",
	"aug":    "1 3 #5",
	"+":      "1 3 #5",
	"dim":    "1 b3 b5",
	"sus2":   "1 2 5",
	"sus4":   "1 4 5",
	"sus":    "1 4 5",
	"6":      "1 3 5 6",
	"maj6":   "1 3 5 6",
	"m6":     "1 b3 5 6",
	"min6":   "1 b3 5 6",
	"7":      "1 3 5 b7",
	"dom7":   "1 3 5 b7",
	"maj7":   "1 3 5 7",
	"m7":     "1 b3 5 b7",
	"min7":   "1 b3 5 b7",
	"dim7":   "1 b3 b5 bb7",
	"m7b5":   "1 b3 b5 b7",
	"min7b5": "1 b3 b5 b7",
	"9":      "1 3 5 b7 9",
	"dom9":   "1 3 5 b7 9",
	"maj9":   "1 3 5 7 9",
	"m9":     "1 b3 5 b7 9",
	"min9":   "1 b3 5 b7 9",
	"add9":   "1 3 5 9",
	"madd9":  "1 b3 5 9",
	"11":     "1 3 5 b7 9 11",
	"add11":  "1 3 5 11",
	"13":     "1 3 5 b7 9 13",
	"add13":  "1 3 5 13",
}

// Chord is a root, a quality and the intervals it spells. Bass is set for
// slash chords such as "Emin/G".
type Chord struct {
	Root      Note
	Quality   string
	Intervals *Intervals
	Bass      *Note
}

// CreateChord parses chord symbols like "C", "Em", "Amin", "Cmaj7", "Bbsus4" or "Emin/G".
// The root letter is case-insensitive, as is the quality.
func CreateChord(symbol string) (Chord, error) {
	s := strings.TrimSpace(symbol)
	if s == "" {
		return Chord{}, errors.Wrap(ErrInvalidChord, "empty chord symbol")
	}

	base, bassName, hasBass := strings.Cut(s, "/")

	rootName, quality := splitRoot(base)
	if rootName == "" {
		return Chord{}, errors.Wrapf(ErrInvalidChord, "%q: missing root", symbol)
	}
	root, err := CreateNote(rootName + strconv.Itoa(DefaultChordOctave))
	if err != nil {
		return Chord{}, errors.Wrapf(ErrInvalidChord, "%q: %v", symbol, err)
	}

	pattern, ok := chordQualities[strings.ToLower(quality)]
	if !ok {
		return Chord{}, errors.Wrapf(ErrInvalidChord, "%q: unknown quality %q", symbol, quality)
	}
	intervals := MustIntervals(pattern).SetRoot(root)

	chord := Chord{Root: root, Quality: strings.ToLower(quality), Intervals: intervals}
	if hasBass {
		bass, err := CreateNote(strings.TrimSpace(bassName) + strconv.Itoa(DefaultChordOctave-1))
		if err != nil {
			return Chord{}, errors.Wrapf(ErrInvalidChord, "%q: bad bass note", symbol)
		}
		chord.Bass = &bass
	}
	return chord, nil
}

// splitRoot separates "Bbmaj7" into "Bb" and "maj7". Accidentals may repeat,
// as in CreateNote.
func splitRoot(s string) (root, rest string) {
	if s == "" {
		return "", ""
	}
	if _, ok := letterOffsets[upper(s[0])]; !ok {
		return "", s
	}
	end := 1
	for end < len(s) && (s[end] == '#' || s[end] == 'b') {
		end++
	}
	return s[:end], s[end:]
}

// Notes returns the chord tones above the root, with the bass first for slash chords.
func (c Chord) Notes() []Note {
	notes := c.Intervals.Resolve(c.Root)
	if c.Bass != nil {
		notes = append([]Note{*c.Bass}, notes...)
	}
	return notes
}

func (c Chord) String() string {
	s := c.Root.ToneString() + c.Quality
	if c.Bass != nil {
		s += "/" + c.Bass.ToneString()
	}
	return s
}

// ChordToMIDI converts a chord symbol to MIDI note numbers with the root in
// the given octave (octave*12 + pitch class). Notes outside 0-127 are dropped;
// a slash bass goes one octave below the root.
func ChordToMIDI(chordSymbol string, octave int) ([]int, error) {
	chord, err := CreateChord(chordSymbol)
	if err != nil {
		return nil, errors.Wrap(err, "invalid chord root")
	}

	root := NewNote(octave*12 + chord.Root.PositionInOctave())
	notes := make([]int, 0, chord.Intervals.Size()+1)
	if chord.Bass != nil {
		bass := (octave-1)*12 + chord.Bass.PositionInOctave()
		if bass >= 0 && bass <= MaxNoteValue {
			notes = append(notes, bass)
		}
	}
	for _, n := range chord.Intervals.Resolve(root) {
		if n.Value < 0 || n.Value > MaxNoteValue {
			continue
		}
		notes = append(notes, n.Value)
	}

	if len(notes) == 0 {
		return nil, errors.Errorf("no valid MIDI notes generated for chord: %s", chordSymbol)
	}
	return notes, nil
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
