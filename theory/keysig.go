package theory

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrAccidentalCountOutOfRange is returned for counts outside [-7,7].
var ErrAccidentalCountOutOfRange = errors.New("accidental count out of range")

const (
	// KeySigMidpoint is the table index of the key with no accidentals.
	KeySigMidpoint = 7
	// MaxAccidentals is the largest number of sharps or flats in a key signature.
	MaxAccidentals = 7
)

// Roots ordered by accidental count, from seven flats to seven sharps.
var (
	majorKeySignatures = [15]string{"Cb", "Gb", "Db", "Ab", "Eb", "Bb", "F", "C", "G", "D", "A", "E", "B", "F#", "C#"}
	minorKeySignatures = [15]string{"Ab", "Eb", "Bb", "F", "C", "G", "D", "A", "E", "B", "F#", "C#", "G#", "D#", "A#"}
)

func keySignatureTable(t ScaleType) *[15]string {
	if t == Minor {
		return &minorKeySignatures
	}
	return &majorKeySignatures
}

// KeyString renders a root and scale as "<tone>maj" or "<tone>min".
func KeyString(root Note, t ScaleType) string {
	suffix := "maj"
	if t == Minor {
		suffix = "min"
	}
	return root.ToneString() + suffix
}

// RootNameFromAccidentalCount returns the tone name of the key with count
// accidentals (negative = flats).
func RootNameFromAccidentalCount(count int, t ScaleType) (string, error) {
	if count < -MaxAccidentals || count > MaxAccidentals {
		return "", errors.Wrapf(ErrAccidentalCountOutOfRange, "%d", count)
	}
	return keySignatureTable(t)[KeySigMidpoint+count], nil
}

// KeyFromAccidentalCount returns the key with count accidentals.
func KeyFromAccidentalCount(count int, t ScaleType) (Key, error) {
	name, err := RootNameFromAccidentalCount(count, t)
	if err != nil {
		return Key{}, err
	}
	root, err := CreateNote(name)
	if err != nil {
		return Key{}, err
	}
	return Key{Root: root, Scale: ScaleFor(t)}, nil
}

// AccidentalCountToRootPosition returns the pitch class of the key's root.
func AccidentalCountToRootPosition(count int, t ScaleType) (int, error) {
	key, err := KeyFromAccidentalCount(count, t)
	if err != nil {
		return 0, err
	}
	return key.Root.PositionInOctave(), nil
}

// KeyToAccidentalCount returns the signed accidental count for key by matching
// the root's tone name against the table for its scale, scanning from seven
// flats up. A tone absent from the table (G# major, say) yields 0.
func KeyToAccidentalCount(key Key) int {
	table := keySignatureTable(key.Scale.Type)
	tone := key.Root.ToneString()
	for count := -MaxAccidentals; count <= MaxAccidentals; count++ {
		if strings.EqualFold(tone, table[KeySigMidpoint+count]) {
			return count
		}
	}
	return 0
}
