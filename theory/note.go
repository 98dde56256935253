package theory

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidNote is returned when a note string cannot be interpreted.
var ErrInvalidNote = errors.New("invalid note")

const (
	// DefaultOctave is used when a note string carries no octave (C5 = 60).
	DefaultOctave = 5
	// MaxNoteValue is the highest MIDI note value.
	MaxNoteValue = 127
)

// Tone names without octave, indexed by position in octave.
var toneNames = [12]string{"C", "C#", "D", "Eb", "E", "F", "F#", "G", "G#", "A", "Bb", "B"}

var letterOffsets = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// Note is a concrete pitch. Value follows the MIDI numbering where C5 = 60.
// Spelling keeps the tone name the note was written with ("Db" rather than "C#");
// it is empty for computed notes.
type Note struct {
	Value    int
	Spelling string
}

// NewNote returns a note for the given MIDI value with no explicit spelling.
func NewNote(value int) Note {
	return Note{Value: value}
}

// PositionInOctave returns the pitch class, 0 (C) through 11 (B).
func (n Note) PositionInOctave() int {
	return mod(n.Value, 12)
}

// Octave returns the octave the note sits in.
func (n Note) Octave() int {
	return floorDiv(n.Value, 12)
}

// ToneString returns the tone name without octave, using the spelling when present.
func (n Note) ToneString() string {
	if n.Spelling != "" {
		return n.Spelling
	}
	return toneNames[n.PositionInOctave()]
}

func (n Note) String() string {
	return n.ToneString() + strconv.Itoa(n.Octave())
}

// CreateNote parses note text such as "C", "Eb", "f#4" or "Bb3".
// Letters are case-insensitive; '#' raises and 'b' lowers by a half-step and may repeat.
func CreateNote(text string) (Note, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Note{}, errors.Wrap(ErrInvalidNote, "empty note")
	}

	letter := upper(s[0])
	offset, ok := letterOffsets[letter]
	if !ok {
		return Note{}, errors.Wrapf(ErrInvalidNote, "%q: unknown letter", text)
	}

	i := 1
	for i < len(s) && (s[i] == '#' || s[i] == 'b') {
		if s[i] == '#' {
			offset++
		} else {
			offset--
		}
		i++
	}
	spelling := string(letter) + s[1:i]

	octave := DefaultOctave
	if i < len(s) {
		o, err := strconv.Atoi(s[i:])
		if err != nil || o < 0 {
			return Note{}, errors.Wrapf(ErrInvalidNote, "%q: bad octave", text)
		}
		octave = o
	}

	value := octave*12 + offset
	if value < 0 || value > MaxNoteValue {
		return Note{}, errors.Wrapf(ErrInvalidNote, "%q: value %d out of range", text, value)
	}
	return Note{Value: value, Spelling: spelling}, nil
}

// mod is a modulo whose result is never negative for a positive m.
func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
