package staccato

import (
	"github.com/Conceptual-Machines/staccato-agents-go/models"
	"github.com/Conceptual-Machines/staccato-agents-go/theory"
)

// Listener receives the semantic events of a parse, in input order.
type Listener interface {
	OnInstrumentParsed(instrument int8)
	OnTrackChanged(track int8)
	OnLayerChanged(layer int8)
	OnKeySignatureParsed(rootPositionInOctave int, scaleType int)
	OnTimeSignatureParsed(numerator, denominator int)
}

// LifecycleListener is optionally implemented by listeners that need to know
// when a parse run starts and ends.
type LifecycleListener interface {
	BeforeParsingStarts()
	AfterParsingFinished()
}

// KeyListener is optionally implemented by listeners that want the parsed key
// with its spelling. It fires right after OnKeySignatureParsed.
type KeyListener interface {
	OnKeyParsed(key theory.Key)
}

// ListenerAdapter implements Listener with no-ops; embed it to override a subset.
type ListenerAdapter struct{}

func (ListenerAdapter) OnInstrumentParsed(int8) {}
func (ListenerAdapter) OnTrackChanged(int8) {}
func (ListenerAdapter) OnLayerChanged(int8) {}
func (ListenerAdapter) OnKeySignatureParsed(int, int) {}
func (ListenerAdapter) OnTimeSignatureParsed(int, int) {}

// listeners fans every event out to each listener in registration order.
type listeners []Listener

func (ls listeners) OnInstrumentParsed(v int8) {
	for _, l := range ls {
		l.OnInstrumentParsed(v)
	}
}

func (ls listeners) OnTrackChanged(v int8) {
	for _, l := range ls {
		l.OnTrackChanged(v)
	}
}

func (ls listeners) OnLayerChanged(v int8) {
	for _, l := range ls {
		l.OnLayerChanged(v)
	}
}

func (ls listeners) OnKeySignatureParsed(root, scale int) {
	for _, l := range ls {
		l.OnKeySignatureParsed(root, scale)
	}
}

func (ls listeners) OnTimeSignatureParsed(num, den int) {
	for _, l := range ls {
		l.OnTimeSignatureParsed(num, den)
	}
}

func (ls listeners) OnKeyParsed(key theory.Key) {
	for _, l := range ls {
		if kl, ok := l.(KeyListener); ok {
			kl.OnKeyParsed(key)
		}
	}
}

func (ls listeners) beforeParsingStarts() {
	for _, l := range ls {
		if lc, ok := l.(LifecycleListener); ok {
			lc.BeforeParsingStarts()
		}
	}
}

func (ls listeners) afterParsingFinished() {
	for _, l := range ls {
		if lc, ok := l.(LifecycleListener); ok {
			lc.AfterParsingFinished()
		}
	}
}

// Recorder keeps every event as a models.ParsedEvent.
type Recorder struct {
	Events []models.ParsedEvent
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{Events: make([]models.ParsedEvent, 0)}
}

func (r *Recorder) OnInstrumentParsed(v int8) {
	r.Events = append(r.Events, models.ParsedEvent{Type: models.EventInstrument, Value: int(v)})
}

func (r *Recorder) OnTrackChanged(v int8) {
	r.Events = append(r.Events, models.ParsedEvent{Type: models.EventTrack, Value: int(v)})
}

func (r *Recorder) OnLayerChanged(v int8) {
	r.Events = append(r.Events, models.ParsedEvent{Type: models.EventLayer, Value: int(v)})
}

func (r *Recorder) OnKeySignatureParsed(root, scale int) {
	r.Events = append(r.Events, models.ParsedEvent{
		Type:  models.EventKeySignature,
		Value: root,
		Scale: scale,
		Key:   theory.KeyString(theory.NewNote(root), theory.ScaleType(scale)),
	})
}

// OnKeyParsed relabels the key event just recorded with the key's own
// spelling, so "KEY:Kbbbbbb" reads Gbmaj rather than F#maj.
func (r *Recorder) OnKeyParsed(key theory.Key) {
	if n := len(r.Events); n > 0 && r.Events[n-1].Type == models.EventKeySignature {
		r.Events[n-1].Key = key.String()
	}
}

func (r *Recorder) OnTimeSignatureParsed(num, den int) {
	r.Events = append(r.Events, models.ParsedEvent{
		Type:        models.EventTimeSignature,
		Numerator:   num,
		Denominator: den,
	})
}

// BeforeParsingStarts clears events left over from a previous run.
func (r *Recorder) BeforeParsingStarts() {
	r.Events = r.Events[:0]
}

// AfterParsingFinished is a no-op.
func (r *Recorder) AfterParsingFinished() {}
