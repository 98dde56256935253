package theory

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrDegreeOutOfRange is returned for interval tokens whose degree is not in [1,15].
var ErrDegreeOutOfRange = errors.New("interval degree out of range")

const (
	flatMarker  = 'b'
	sharpMarker = '#'
)

// Whole-number degree to half-steps above the root. Strictly increasing; 8 is the octave.
var degreeToHalfsteps = map[int]int{
	1: 0, 2: 2, 3: 4, 4: 5, 5: 7, 6: 9, 7: 11,
	8: 12, 9: 14, 10: 16, 11: 17, 12: 19, 13: 21, 14: 23, 15: 24,
}

var halfstepsToDegree = invertDegreeTable(degreeToHalfsteps)

func invertDegreeTable(table map[int]int) map[int]int {
	inv := make(map[int]int, len(table))
	for degree, halfsteps := range table {
		inv[halfsteps] = degree
	}
	return inv
}

// HalfstepsOf returns the half-step offset of one interval token such as "5", "b3" or "#11".
// Accidental markers may appear anywhere in the token and add up.
func HalfstepsOf(token string) (int, error) {
	delta := 0
	var digits strings.Builder
	for i := 0; i < len(token); i++ {
		switch token[i] {
		case flatMarker:
			delta--
		case sharpMarker:
			delta++
		default:
			digits.WriteByte(token[i])
		}
	}

	degree, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, errors.Wrapf(ErrDegreeOutOfRange, "token %q", token)
	}
	base, ok := degreeToHalfsteps[degree]
	if !ok {
		return 0, errors.Wrapf(ErrDegreeOutOfRange, "token %q: degree %d", token, degree)
	}
	return base + delta, nil
}

// DegreeToken builds the token for a degree shifted by delta half-steps, e.g. (3, -1) -> "b3".
func DegreeToken(degree, delta int) string {
	marker := string(sharpMarker)
	if delta < 0 {
		marker = string(flatMarker)
		delta = -delta
	}
	return strings.Repeat(marker, delta) + strconv.Itoa(degree)
}

// Intervals is an ordered interval pattern like "1 b3 5", optionally anchored to a root.
type Intervals struct {
	tokens []string
	root   *Note
}

// NewIntervals parses a space-separated interval pattern. Every token must resolve.
func NewIntervals(pattern string) (*Intervals, error) {
	tokens := strings.Fields(pattern)
	for _, tok := range tokens {
		if _, err := HalfstepsOf(tok); err != nil {
			return nil, err
		}
	}
	return &Intervals{tokens: tokens}, nil
}

// MustIntervals is like NewIntervals but panics; for package-level patterns.
func MustIntervals(pattern string) *Intervals {
	iv, err := NewIntervals(pattern)
	if err != nil {
		panic(err)
	}
	return iv
}

// IntervalsFromNotes builds the pattern describing notes relative to the first one.
// Gaps missing from the degree table are written as a flattened degree one step up;
// sharps are never produced.
func IntervalsFromNotes(notes []Note) (*Intervals, error) {
	if len(notes) == 0 {
		return nil, errors.New("no notes to build intervals from")
	}
	first := notes[0].PositionInOctave()
	tokens := make([]string, 0, len(notes))
	tokens = append(tokens, "1")
	for _, n := range notes[1:] {
		diff := mod(n.PositionInOctave()-first, 12)
		if degree, ok := halfstepsToDegree[diff]; ok {
			tokens = append(tokens, strconv.Itoa(degree))
			continue
		}
		degree, ok := halfstepsToDegree[diff+1]
		if !ok {
			return nil, errors.Wrapf(ErrDegreeOutOfRange, "no degree for %d half-steps", diff)
		}
		tokens = append(tokens, string(flatMarker)+strconv.Itoa(degree))
	}
	return &Intervals{tokens: tokens}, nil
}

// Size returns the number of tokens.
func (iv *Intervals) Size() int { return len(iv.tokens) }

// Tokens returns a copy of the tokens.
func (iv *Intervals) Tokens() []string {
	return append([]string(nil), iv.tokens...)
}

// NthInterval returns the token at position n (0-based).
func (iv *Intervals) NthInterval(n int) (string, error) {
	if n < 0 || n >= len(iv.tokens) {
		return "", errors.Errorf("interval index %d out of range [0,%d)", n, len(iv.tokens))
	}
	return iv.tokens[n], nil
}

// Has reports whether the exact token is present.
func (iv *Intervals) Has(token string) bool {
	for _, t := range iv.tokens {
		if t == token {
			return true
		}
	}
	return false
}

// HalfstepArray maps every token to its half-step offset, in order.
func (iv *Intervals) HalfstepArray() []int {
	out := make([]int, len(iv.tokens))
	for i, tok := range iv.tokens {
		// tokens were validated on construction
		out[i], _ = HalfstepsOf(tok)
	}
	return out
}

// Resolve returns the concrete notes of the pattern above root. The register is
// inherited from root and never wrapped.
func (iv *Intervals) Resolve(root Note) []Note {
	halfsteps := iv.HalfstepArray()
	notes := make([]Note, len(halfsteps))
	for i, h := range halfsteps {
		notes[i] = NewNote(root.Value + h)
	}
	return notes
}

// SetRoot anchors the pattern to root for Notes and AsSequence.
func (iv *Intervals) SetRoot(root Note) *Intervals {
	iv.root = &root
	return iv
}

// Root returns the anchored root, if any.
func (iv *Intervals) Root() (Note, bool) {
	if iv.root == nil {
		return Note{}, false
	}
	return *iv.root, true
}

// Notes resolves the pattern against the anchored root.
func (iv *Intervals) Notes() ([]Note, error) {
	if iv.root == nil {
		return nil, errors.New("intervals have no root")
	}
	return iv.Resolve(*iv.root), nil
}

// Rotate shifts the tokens left by n positions (n may be negative or larger
// than the size) and returns the receiver.
func (iv *Intervals) Rotate(n int) *Intervals {
	size := len(iv.tokens)
	if size == 0 {
		return iv
	}
	shift := mod(n, size)
	if shift == 0 {
		return iv
	}
	rotated := make([]string, 0, size)
	rotated = append(rotated, iv.tokens[shift:]...)
	rotated = append(rotated, iv.tokens[:shift]...)
	iv.tokens = rotated
	return iv
}

// AsSequence replaces $0, $1, ... in template with the tone names of the
// anchored notes, e.g. "$0 $2" over C major -> "C5 G5".
func (iv *Intervals) AsSequence(template string) (string, error) {
	notes, err := iv.Notes()
	if err != nil {
		return "", err
	}
	out := template
	// highest index first so "$1" does not clobber "$10"
	for i := len(notes) - 1; i >= 0; i-- {
		out = strings.ReplaceAll(out, "$"+strconv.Itoa(i), notes[i].String())
	}
	return out, nil
}

// Equal compares token order only.
func (iv *Intervals) Equal(other *Intervals) bool {
	if other == nil || len(iv.tokens) != len(other.tokens) {
		return false
	}
	for i := range iv.tokens {
		if iv.tokens[i] != other.tokens[i] {
			return false
		}
	}
	return true
}

func (iv *Intervals) String() string {
	return strings.Join(iv.tokens, " ")
}
