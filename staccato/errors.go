package staccato

import "github.com/pkg/errors"

var (
	// ErrMalformedToken: a recognized token whose body does not follow its grammar.
	ErrMalformedToken = errors.New("malformed token")
	// ErrUnknownIdentifier: a name missing from the context dictionary.
	ErrUnknownIdentifier = errors.New("unknown identifier")
	// ErrUnknownToken: no subparser claimed the input (strict parsing only).
	ErrUnknownToken = errors.New("unknown token")
)
