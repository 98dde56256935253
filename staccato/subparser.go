package staccato

import "strings"

// TokenKind classifies a recognized token.
type TokenKind int

const (
	TokenUnknown TokenKind = iota
	TokenInstrument
	TokenVoice
	TokenLayer
	TokenKeySignature
	TokenTimeSignature
)

func (k TokenKind) String() string {
	switch k {
	case TokenInstrument:
		return "instrument"
	case TokenVoice:
		return "voice"
	case TokenLayer:
		return "layer"
	case TokenKeySignature:
		return "key_signature"
	case TokenTimeSignature:
		return "time_signature"
	default:
		return "unknown"
	}
}

// Subparser recognizes and consumes one kind of token.
//
// Matches must be a cheap prefix test. When Matches reports true, Parse must
// claim the token; Parse on input it does not match returns 0 and no error.
// The returned count includes the trailing separator when one is present.
type Subparser interface {
	Matches(music string) bool
	TokenKind(token string) TokenKind
	Parse(music string, ctx *Context) (int, error)
}

const tokenSeparator = ' '

// tokenEnd returns the index of the next separator at or after from, or len(s).
func tokenEnd(s string, from int) int {
	if i := strings.IndexByte(s[from:], tokenSeparator); i >= 0 {
		return from + i
	}
	return len(s)
}
