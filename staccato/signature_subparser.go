package staccato

import (
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/staccato-agents-go/theory"
	"github.com/pkg/errors"
)

const (
	keySignaturePrefix     = "KEY:"
	timeSignaturePrefix    = "TIME:"
	timeSignatureSeparator = "/"

	accidentalKeyMarker = 'K'
)

// SignatureSubparser handles "KEY:<key>" and "TIME:<num>/<den>" tokens.
//
// A key is either K followed by flats (b or B) and sharps (#), e.g. "Kbbb"
// for E-flat major, or a chord-style name such as "Cmaj" or "F#min".
// Accidental keys are always major.
type SignatureSubparser struct{}

func (SignatureSubparser) Matches(music string) bool {
	return strings.HasPrefix(music, keySignaturePrefix) || strings.HasPrefix(music, timeSignaturePrefix)
}

func (SignatureSubparser) TokenKind(token string) TokenKind {
	switch {
	case strings.HasPrefix(token, keySignaturePrefix):
		return TokenKeySignature
	case strings.HasPrefix(token, timeSignaturePrefix):
		return TokenTimeSignature
	}
	return TokenUnknown
}

func (p SignatureSubparser) Parse(music string, ctx *Context) (int, error) {
	switch {
	case strings.HasPrefix(music, keySignaturePrefix):
		end := tokenEnd(music, len(keySignaturePrefix))
		key, err := p.CreateKey(music[len(keySignaturePrefix):end])
		if err != nil {
			return 0, err
		}
		ctx.Key = key
		ctx.Listener().OnKeySignatureParsed(key.Root.PositionInOctave(), int(key.Scale.Type))
		if kl, ok := ctx.Listener().(KeyListener); ok {
			kl.OnKeyParsed(key)
		}
		return consumedThrough(music, end), nil

	case strings.HasPrefix(music, timeSignaturePrefix):
		end := tokenEnd(music, len(timeSignaturePrefix))
		ts, err := parseTimeSignature(music[len(timeSignaturePrefix):end])
		if err != nil {
			return 0, err
		}
		ctx.TimeSignature = ts
		ctx.Listener().OnTimeSignatureParsed(ts.Numerator, ts.Denominator)
		return consumedThrough(music, end), nil
	}
	return 0, nil
}

// CreateKey interprets the body of a KEY: token.
func (SignatureSubparser) CreateKey(keySignature string) (theory.Key, error) {
	if keySignature == "" {
		return theory.Key{}, errors.Wrap(ErrMalformedToken, "empty key signature")
	}

	if len(keySignature) > 1 && keySignature[0] == accidentalKeyMarker && isAccidental(keySignature[1]) {
		count := 0
		for i := 1; i < len(keySignature); i++ {
			switch keySignature[i] {
			case 'b', 'B':
				count--
			case '#':
				count++
			default:
				return theory.Key{}, errors.Wrapf(ErrMalformedToken, "key signature %q: unexpected %q", keySignature, keySignature[i])
			}
		}
		key, err := theory.KeyFromAccidentalCount(count, theory.Major)
		if err != nil {
			return theory.Key{}, errors.Wrapf(ErrMalformedToken, "key signature %q: %v", keySignature, err)
		}
		return key, nil
	}

	chord, err := theory.CreateChord(keySignature)
	if err != nil {
		return theory.Key{}, errors.Wrapf(ErrMalformedToken, "key signature %q: %v", keySignature, err)
	}
	return theory.KeyFromChord(chord), nil
}

// KeyStringFromRootAndScale renders a key as "<tone>maj" or "<tone>min".
func (SignatureSubparser) KeyStringFromRootAndScale(root theory.Note, scale theory.ScaleType) string {
	return theory.KeyString(root, scale)
}

// AccidentalCountToRootPosition returns the root pitch class for a signed accidental count.
func (SignatureSubparser) AccidentalCountToRootPosition(count int, scale theory.ScaleType) (int, error) {
	return theory.AccidentalCountToRootPosition(count, scale)
}

// KeyToAccidentalCount returns the signed accidental count of key, or 0 when undefined.
func (SignatureSubparser) KeyToAccidentalCount(key theory.Key) int {
	return theory.KeyToAccidentalCount(key)
}

func parseTimeSignature(body string) (theory.TimeSignature, error) {
	num, den, found := strings.Cut(body, timeSignatureSeparator)
	if !found {
		return theory.TimeSignature{}, errors.Wrapf(ErrMalformedToken, "time signature %q: missing %q", body, timeSignatureSeparator)
	}
	n, err := positiveInt(num)
	if err != nil {
		return theory.TimeSignature{}, errors.Wrapf(ErrMalformedToken, "time signature %q: numerator", body)
	}
	d, err := positiveInt(den)
	if err != nil {
		return theory.TimeSignature{}, errors.Wrapf(ErrMalformedToken, "time signature %q: denominator", body)
	}
	return theory.TimeSignature{Numerator: n, Denominator: d}, nil
}

func positiveInt(s string) (int, error) {
	if !numericValue.MatchString(s) {
		return 0, errors.Errorf("%q is not a number", s)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, errors.Errorf("%d is not positive", v)
	}
	return v, nil
}

func isAccidental(b byte) bool {
	return b == 'b' || b == 'B' || b == '#'
}

// consumedThrough counts the token plus its separator, if there is one.
func consumedThrough(music string, end int) int {
	if end < len(music) {
		return end + 1
	}
	return end
}
