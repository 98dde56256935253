package theory

import "fmt"

// ScaleType is the major/minor indicator carried in key signature events.
type ScaleType int

const (
	Major ScaleType = 1
	Minor ScaleType = -1
)

func (t ScaleType) String() string {
	if t == Minor {
		return "minor"
	}
	return "major"
}

// Scale pairs an interval pattern with its major/minor indicator.
type Scale struct {
	Name      string
	Type      ScaleType
	Intervals *Intervals
}

var (
	MajorScale = Scale{Name: "major", Type: Major, Intervals: MustIntervals("1 2 3 4 5 6 7")}
	MinorScale = Scale{Name: "minor", Type: Minor, Intervals: MustIntervals("1 2 b3 4 5 b6 b7")}
)

// ScaleFor returns the scale for a major/minor indicator.
func ScaleFor(t ScaleType) Scale {
	if t == Minor {
		return MinorScale
	}
	return MajorScale
}

// Key is a root plus a scale.
type Key struct {
	Root  Note
	Scale Scale
}

// DefaultKey is C major.
var DefaultKey = Key{Root: Note{Value: 60, Spelling: "C"}, Scale: MajorScale}

// KeyFromChord derives a key from a chord: a minor third above the root makes
// the key minor, anything else is major.
func KeyFromChord(c Chord) Key {
	if c.Intervals != nil && c.Intervals.Has("b3") && !c.Intervals.Has("3") {
		return Key{Root: c.Root, Scale: MinorScale}
	}
	return Key{Root: c.Root, Scale: MajorScale}
}

func (k Key) String() string {
	return KeyString(k.Root, k.Scale.Type)
}

// TimeSignature is a meter; the denominator need not be a power of two.
type TimeSignature struct {
	Numerator   int
	Denominator int
}

// DefaultTimeSignature is common time.
var DefaultTimeSignature = TimeSignature{Numerator: 4, Denominator: 4}

func (ts TimeSignature) String() string {
	return fmt.Sprintf("%d/%d", ts.Numerator, ts.Denominator)
}
