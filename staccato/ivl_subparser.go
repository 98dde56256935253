package staccato

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	instrumentMarker = 'I'
	voiceMarker      = 'V'
	layerMarker      = 'L'
)

var numericValue = regexp.MustCompile(`^\d+$`)

// IVLSubparser handles instrument (I), voice (V) and layer (L) tokens:
// "I0", "I[PIANO]", "V9", "V[PERCUSSION]", "L3".
type IVLSubparser struct{}

func isIVLMarker(b byte) bool {
	return b == instrumentMarker || b == voiceMarker || b == layerMarker
}

func (IVLSubparser) Matches(music string) bool {
	return len(music) > 0 && isIVLMarker(music[0])
}

func (IVLSubparser) TokenKind(token string) TokenKind {
	if token == "" {
		return TokenUnknown
	}
	switch token[0] {
	case instrumentMarker:
		return TokenInstrument
	case voiceMarker:
		return TokenVoice
	case layerMarker:
		return TokenLayer
	}
	return TokenUnknown
}

// Parse consumes one I/V/L token and fires the matching event. The value is
// narrowed to int8 with Go's conversion rules, so numbers above 127 wrap
// around (200 becomes -56) rather than failing.
//
// The count returned is one past the token boundary even when the token runs
// to the end of the input; callers clamp it.
func (p IVLSubparser) Parse(music string, ctx *Context) (int, error) {
	if !p.Matches(music) {
		return 0, nil
	}
	end := tokenEnd(music, 0)

	value, err := resolveIVLValue(music[1:end], ctx)
	if err != nil {
		return 0, err
	}
	narrowed := int8(value)

	switch music[0] {
	case instrumentMarker:
		ctx.Listener().OnInstrumentParsed(narrowed)
	case voiceMarker:
		ctx.Listener().OnTrackChanged(narrowed)
	case layerMarker:
		ctx.Listener().OnLayerChanged(narrowed)
	}
	return end + 1, nil
}

// resolveIVLValue reads a decimal value or looks a (bracketed) name up in the dictionary.
func resolveIVLValue(raw string, ctx *Context) (int, error) {
	if numericValue.MatchString(raw) {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, errors.Wrapf(ErrMalformedToken, "value %q", raw)
		}
		return v, nil
	}

	name := raw
	opened, closed := strings.HasPrefix(raw, "["), strings.HasSuffix(raw, "]")
	if opened != closed {
		return 0, errors.Wrapf(ErrMalformedToken, "unbalanced brackets in %q", raw)
	}
	if opened {
		name = raw[1 : len(raw)-1]
	}
	if name == "" {
		return 0, errors.Wrapf(ErrMalformedToken, "missing value in %q", raw)
	}
	v, ok := ctx.Lookup(name)
	if !ok {
		return 0, errors.Wrapf(ErrUnknownIdentifier, "%q", name)
	}
	return v, nil
}
