package staccato

import (
	"context"
	"testing"
	"time"

	"github.com/Conceptual-Machines/staccato-agents-go/models"
	"github.com/Conceptual-Machines/staccato-agents-go/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_FullSequence(t *testing.T) {
	rec := NewRecorder()
	pctx, err := NewParser().Parse(context.Background(), "KEY:Gmaj TIME:3/4 V0 I[PIANO] L1 V[PERCUSSION] I10", rec)
	require.NoError(t, err)

	assert.Equal(t, []models.ParsedEvent{
		{Type: models.EventKeySignature, Value: 7, Scale: 1, Key: "Gmaj"},
		{Type: models.EventTimeSignature, Numerator: 3, Denominator: 4},
		{Type: models.EventTrack, Value: 0},
		{Type: models.EventInstrument, Value: 0},
		{Type: models.EventLayer, Value: 1},
		{Type: models.EventTrack, Value: 9},
		{Type: models.EventInstrument, Value: 10},
	}, rec.Events)

	assert.Equal(t, "Gmaj", pctx.Key.String())
	assert.Equal(t, theory.TimeSignature{Numerator: 3, Denominator: 4}, pctx.TimeSignature)
}

func TestParser_EmptyInput(t *testing.T) {
	for _, music := range []string{"", "   ", "\t\n"} {
		rec := NewRecorder()
		pctx, err := NewParser().Parse(context.Background(), music, rec)
		require.NoError(t, err)
		assert.Empty(t, rec.Events)
		assert.Equal(t, "Cmaj", pctx.Key.String())
		assert.Equal(t, theory.DefaultTimeSignature, pctx.TimeSignature)
	}
}

func TestParser_UnknownTokens(t *testing.T) {
	music := "I10 C5q X99 V1"

	t.Run("skipped by default", func(t *testing.T) {
		rec := NewRecorder()
		_, err := NewParser().Parse(context.Background(), music, rec)
		require.NoError(t, err)
		assert.Equal(t, []models.ParsedEvent{
			{Type: models.EventInstrument, Value: 10},
			{Type: models.EventTrack, Value: 1},
		}, rec.Events)
	})

	t.Run("rejected when strict", func(t *testing.T) {
		rec := NewRecorder()
		_, err := NewParser(WithStrict(true)).Parse(context.Background(), music, rec)
		require.ErrorIs(t, err, ErrUnknownToken)
		assert.Contains(t, err.Error(), `"C5q" at index 4`)
		assert.Equal(t, []models.ParsedEvent{{Type: models.EventInstrument, Value: 10}}, rec.Events)
	})
}

func TestParser_ErrorStopsParse(t *testing.T) {
	rec := NewRecorder()
	_, err := NewParser().Parse(context.Background(), "I10 I[NOPE] V2", rec)
	require.ErrorIs(t, err, ErrUnknownIdentifier)
	assert.Contains(t, err.Error(), "token at index 4")
	assert.Contains(t, err.Error(), `"NOPE"`)

	// events before the failure stay delivered
	assert.Equal(t, []models.ParsedEvent{{Type: models.EventInstrument, Value: 10}}, rec.Events)
}

func TestParser_MalformedSignatureIsError(t *testing.T) {
	for _, music := range []string{"TIME:34", "KEY:Hmaj", "KEY:K########"} {
		_, err := NewParser().Parse(context.Background(), music)
		assert.ErrorIs(t, err, ErrMalformedToken, music)
	}
}

func TestParser_CollapsesWhitespace(t *testing.T) {
	rec := NewRecorder()
	_, err := NewParser().Parse(context.Background(), "  I10\t\n   V1  TIME:6/8\n", rec)
	require.NoError(t, err)
	assert.Equal(t, []models.ParsedEvent{
		{Type: models.EventInstrument, Value: 10},
		{Type: models.EventTrack, Value: 1},
		{Type: models.EventTimeSignature, Numerator: 6, Denominator: 8},
	}, rec.Events)
}

func TestParser_MultipleListenersInOrder(t *testing.T) {
	first := NewRecorder()
	second := NewRecorder()
	_, err := NewParser().Parse(context.Background(), "V3 L2", first, second)
	require.NoError(t, err)
	assert.Equal(t, first.Events, second.Events)
	assert.Len(t, first.Events, 2)
}

func TestParser_RecorderReusedAcrossRuns(t *testing.T) {
	rec := NewRecorder()
	p := NewParser()

	_, err := p.Parse(context.Background(), "I1 I2", rec)
	require.NoError(t, err)
	_, err = p.Parse(context.Background(), "I3", rec)
	require.NoError(t, err)

	assert.Equal(t, []models.ParsedEvent{{Type: models.EventInstrument, Value: 3}}, rec.Events)
}

type lifecycleSpy struct {
	ListenerAdapter
	calls []string
}

func (s *lifecycleSpy) OnInstrumentParsed(int8) { s.calls = append(s.calls, "instrument") }
func (s *lifecycleSpy) BeforeParsingStarts() { s.calls = append(s.calls, "before") }
func (s *lifecycleSpy) AfterParsingFinished() { s.calls = append(s.calls, "after") }

func TestParser_LifecycleHooks(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		spy := &lifecycleSpy{}
		_, err := NewParser().Parse(context.Background(), "I1 I2", spy)
		require.NoError(t, err)
		assert.Equal(t, []string{"before", "instrument", "instrument", "after"}, spy.calls)
	})

	t.Run("failure skips after", func(t *testing.T) {
		spy := &lifecycleSpy{}
		_, err := NewParser().Parse(context.Background(), "I1 I[NOPE]", spy)
		require.Error(t, err)
		assert.Equal(t, []string{"before", "instrument"}, spy.calls)
	})

	t.Run("direct context listener", func(t *testing.T) {
		spy := &lifecycleSpy{}
		err := NewParser().ParseContext(context.Background(), NewContext(spy), "I1")
		require.NoError(t, err)
		assert.Equal(t, []string{"before", "instrument", "after"}, spy.calls)
	})
}

type fakeParseRecorder struct {
	tokens  int
	success bool
	calls   int
}

func (f *fakeParseRecorder) RecordParse(_ context.Context, tokens int, _ time.Duration, success bool) {
	f.tokens = tokens
	f.success = success
	f.calls++
}

func TestParser_RecordsParseRuns(t *testing.T) {
	metrics := &fakeParseRecorder{}
	p := NewParser(WithRecorder(metrics))

	_, err := p.Parse(context.Background(), "KEY:Cmaj I0 UNKNOWN V1")
	require.NoError(t, err)
	assert.Equal(t, 1, metrics.calls)
	assert.Equal(t, 3, metrics.tokens)
	assert.True(t, metrics.success)

	_, err = p.Parse(context.Background(), "I0 TIME:x")
	require.Error(t, err)
	assert.Equal(t, 2, metrics.calls)
	assert.Equal(t, 1, metrics.tokens)
	assert.False(t, metrics.success)
}

func TestParser_ParseContextUsesDefinitions(t *testing.T) {
	rec := NewRecorder()
	pctx := NewContext(rec)
	pctx.Define("BASS_TRACK", 2)

	err := NewParser().ParseContext(context.Background(), pctx, "V[BASS_TRACK] I[SLAP_BASS_1]")
	require.NoError(t, err)
	assert.Equal(t, []models.ParsedEvent{
		{Type: models.EventTrack, Value: 2},
		{Type: models.EventInstrument, Value: 36},
	}, rec.Events)
}

func TestParser_WithSubparsers(t *testing.T) {
	rec := NewRecorder()
	p := NewParser(WithSubparsers(IVLSubparser{}))

	pctx, err := p.Parse(context.Background(), "KEY:Dmaj I1", rec)
	require.NoError(t, err)
	assert.Equal(t, []models.ParsedEvent{{Type: models.EventInstrument, Value: 1}}, rec.Events)
	assert.Equal(t, "Cmaj", pctx.Key.String())
}

type stuckSubparser struct{}

func (stuckSubparser) Matches(music string) bool { return len(music) > 0 && music[0] == 'Z' }
func (stuckSubparser) TokenKind(string) TokenKind { return TokenUnknown }
func (stuckSubparser) Parse(string, *Context) (int, error) { return 0, nil }

func TestParser_SubparserMustConsume(t *testing.T) {
	_, err := NewParser(WithSubparsers(stuckSubparser{})).Parse(context.Background(), "Z1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "consumed nothing")
}

func TestParser_TokenKind(t *testing.T) {
	p := NewParser()
	tests := []struct {
		token    string
		expected TokenKind
	}{
		{"KEY:Cmaj", TokenKeySignature},
		{"TIME:4/4", TokenTimeSignature},
		{"I[PIANO]", TokenInstrument},
		{"V9", TokenVoice},
		{"L0", TokenLayer},
		{"C5q", TokenUnknown},
		{"", TokenUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, p.TokenKind(tt.token), tt.token)
	}
	assert.Equal(t, "key_signature", TokenKeySignature.String())
	assert.Equal(t, "unknown", TokenUnknown.String())
}

func TestSubparsers_MatchImpliesProgress(t *testing.T) {
	tokens := []string{
		"I0", "I[PIANO]", "V[PERCUSSION] ", "L7", "I[NOPE]", "V[]",
		"KEY:Cmaj", "KEY:Kbb ", "KEY:Zzz", "TIME:3/4", "TIME:34",
	}
	for _, sp := range DefaultSubparsers() {
		for _, token := range tokens {
			if !sp.Matches(token) {
				continue
			}
			n, err := sp.Parse(token, NewContext(nil))
			assert.True(t, err != nil || n > 0, "%T on %q", sp, token)
		}
	}
}

func TestParser_ParseOutput(t *testing.T) {
	extra := NewRecorder()
	out, err := NewParser().ParseOutput(context.Background(), "KEY:Ebm7\n  TIME:6/8   V1 I[CELLO]", extra)
	require.NoError(t, err)

	assert.Equal(t, "KEY:Ebm7 TIME:6/8 V1 I[CELLO]", out.Staccato)
	assert.Equal(t, "Ebmin", out.Key)
	assert.Equal(t, "6/8", out.TimeSignature)
	assert.Equal(t, []models.ParsedEvent{
		{Type: models.EventKeySignature, Value: 3, Scale: -1, Key: "Ebmin"},
		{Type: models.EventTimeSignature, Numerator: 6, Denominator: 8},
		{Type: models.EventTrack, Value: 1},
		{Type: models.EventInstrument, Value: 42},
	}, out.Events)
	assert.Equal(t, out.Events, extra.Events)

	_, err = NewParser().ParseOutput(context.Background(), "I[NOPE]")
	assert.ErrorIs(t, err, ErrUnknownIdentifier)
}

func TestParser_KeyLabelKeepsFlatSpelling(t *testing.T) {
	out, err := NewParser().ParseOutput(context.Background(), "KEY:Kbbbbbb KEY:Kbbbbbbb KEY:Dbmaj")
	require.NoError(t, err)

	require.Len(t, out.Events, 3)
	assert.Equal(t, "Gbmaj", out.Events[0].Key)
	assert.Equal(t, "Cbmaj", out.Events[1].Key)
	assert.Equal(t, "Dbmaj", out.Events[2].Key)
	assert.Equal(t, out.Key, out.Events[2].Key)
	assert.Equal(t, 6, out.Events[0].Value)
}

type keySpy struct {
	ListenerAdapter
	keys []string
}

func (s *keySpy) OnKeyParsed(key theory.Key) { s.keys = append(s.keys, key.String()) }

func TestParser_KeyListenerAmongOthers(t *testing.T) {
	spy := &keySpy{}
	rec := NewRecorder()
	_, err := NewParser().Parse(context.Background(), "I1 KEY:Kbbb TIME:3/4 KEY:Amin", rec, spy)
	require.NoError(t, err)

	assert.Equal(t, []string{"Ebmaj", "Amin"}, spy.keys)
	assert.Equal(t, "Ebmaj", rec.Events[1].Key)
	assert.Equal(t, "Amin", rec.Events[3].Key)
}

func TestRecorder_KeyParsedOnlyRelabelsKeyEvents(t *testing.T) {
	rec := NewRecorder()
	rec.OnKeyParsed(theory.DefaultKey)
	assert.Empty(t, rec.Events)

	rec.OnTimeSignatureParsed(3, 4)
	rec.OnKeyParsed(theory.DefaultKey)
	assert.Equal(t, []models.ParsedEvent{
		{Type: models.EventTimeSignature, Numerator: 3, Denominator: 4},
	}, rec.Events)
}
