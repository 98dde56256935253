package staccato

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Conceptual-Machines/staccato-agents-go/models"
	"github.com/pkg/errors"
)

// ParseRecorder receives one measurement per parse run.
type ParseRecorder interface {
	RecordParse(ctx context.Context, tokens int, duration time.Duration, success bool)
}

// Parser walks a Staccato string and hands each token to the first subparser
// that matches it. A Parser holds no per-parse state and may be shared.
type Parser struct {
	subparsers []Subparser
	strict     bool
	recorder   ParseRecorder
}

// Option configures a Parser.
type Option func(*Parser)

// WithStrict makes unrecognized tokens fail the parse instead of being skipped.
func WithStrict(strict bool) Option {
	return func(p *Parser) { p.strict = strict }
}

// WithSubparsers replaces the subparser list; order decides precedence.
func WithSubparsers(subparsers ...Subparser) Option {
	return func(p *Parser) { p.subparsers = subparsers }
}

// WithRecorder reports parse runs to r.
func WithRecorder(r ParseRecorder) Option {
	return func(p *Parser) { p.recorder = r }
}

// DefaultSubparsers returns the signature and instrument/voice/layer subparsers, in that order.
func DefaultSubparsers() []Subparser {
	return []Subparser{SignatureSubparser{}, IVLSubparser{}}
}

// NewParser creates a parser over DefaultSubparsers unless overridden.
func NewParser(opts ...Option) *Parser {
	p := &Parser{subparsers: DefaultSubparsers()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse runs music through a fresh Context whose events go to ls, in order.
// The context is returned so callers can read the final key and time signature.
func (p *Parser) Parse(ctx context.Context, music string, ls ...Listener) (*Context, error) {
	pctx := NewContext(listeners(ls))
	if err := p.ParseContext(ctx, pctx, music); err != nil {
		return pctx, err
	}
	return pctx, nil
}

// ParseContext runs music through a caller-built Context, e.g. one with extra
// dictionary definitions. Whitespace runs are collapsed to single spaces
// before tokenizing; error positions refer to the collapsed string.
func (p *Parser) ParseContext(ctx context.Context, pctx *Context, music string) error {
	start := time.Now()
	music = strings.Join(strings.Fields(music), string(tokenSeparator))

	beforeParsingStarts(pctx.Listener())
	tokens, err := p.run(music, pctx)
	if p.recorder != nil {
		p.recorder.RecordParse(ctx, tokens, time.Since(start), err == nil)
	}
	if err != nil {
		log.Printf("❌ Staccato Parser: failed after %d tokens: %v", tokens, err)
		return err
	}
	afterParsingFinished(pctx.Listener())

	log.Printf("✅ Staccato Parser: parsed %d tokens in %v", tokens, time.Since(start))
	return nil
}

func (p *Parser) run(music string, pctx *Context) (int, error) {
	tokens := 0
	i := 0
	for i < len(music) {
		if music[i] == tokenSeparator {
			i++
			continue
		}
		rest := music[i:]

		sp := p.match(rest)
		if sp == nil {
			end := tokenEnd(rest, 0)
			if p.strict {
				return tokens, errors.Wrapf(ErrUnknownToken, "%q at index %d", rest[:end], i)
			}
			log.Printf("⚠️  Staccato Parser: skipping unrecognized token %q at index %d", rest[:end], i)
			i += end
			continue
		}

		n, err := sp.Parse(rest, pctx)
		if err != nil {
			return tokens, errors.WithMessagef(err, "token at index %d", i)
		}
		if n <= 0 {
			return tokens, errors.Errorf("subparser %T matched %q but consumed nothing", sp, rest[:tokenEnd(rest, 0)])
		}
		i += min(n, len(rest))
		tokens++
	}
	return tokens, nil
}

// ParseOutput parses music and collects its events, final key and time
// signature. Extra listeners receive the same events.
func (p *Parser) ParseOutput(ctx context.Context, music string, ls ...Listener) (*models.ParseOutput, error) {
	rec := NewRecorder()
	pctx, err := p.Parse(ctx, music, append([]Listener{rec}, ls...)...)
	if err != nil {
		return nil, err
	}
	return &models.ParseOutput{
		Staccato:      strings.Join(strings.Fields(music), string(tokenSeparator)),
		Events:        rec.Events,
		Key:           pctx.Key.String(),
		TimeSignature: pctx.TimeSignature.String(),
	}, nil
}

func (p *Parser) match(music string) Subparser {
	for _, sp := range p.subparsers {
		if sp.Matches(music) {
			return sp
		}
	}
	return nil
}

// TokenKind classifies a single token using the first matching subparser.
func (p *Parser) TokenKind(token string) TokenKind {
	if sp := p.match(token); sp != nil {
		return sp.TokenKind(token)
	}
	return TokenUnknown
}

func beforeParsingStarts(l Listener) {
	switch v := l.(type) {
	case listeners:
		v.beforeParsingStarts()
	case LifecycleListener:
		v.BeforeParsingStarts()
	}
}

func afterParsingFinished(l Listener) {
	switch v := l.(type) {
	case listeners:
		v.afterParsingFinished()
	case LifecycleListener:
		v.AfterParsingFinished()
	}
}
