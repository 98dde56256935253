// Package midisink turns parser events into a Standard MIDI File.
package midisink

import (
	"fmt"
	"io"
	"log"

	"github.com/Conceptual-Machines/staccato-agents-go/theory"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const percussionChannel = 9

type voiceTrack struct {
	voice int8
	track smf.Track
}

// Sink is a staccato.Listener that writes one SMF track per voice. Key and
// time signatures go to a leading conductor track. Staccato carries no timing
// at this level, so every event is written with a zero delta.
//
// A Sink is reset by BeforeParsingStarts and is not safe for concurrent use.
type Sink struct {
	conductor smf.Track
	voices    []*voiceTrack
	current   *voiceTrack
}

// New creates an empty sink positioned on voice 0.
func New() *Sink {
	s := &Sink{}
	s.reset()
	return s
}

func (s *Sink) reset() {
	s.conductor = nil
	s.conductor.Add(0, smf.MetaTrackSequenceName("conductor"))
	s.voices = nil
	s.current = s.voice(0)
}

// voice returns the track for v, creating it on first use.
func (s *Sink) voice(v int8) *voiceTrack {
	for _, vt := range s.voices {
		if vt.voice == v {
			return vt
		}
	}
	vt := &voiceTrack{voice: v}
	vt.track.Add(0, smf.MetaTrackSequenceName(fmt.Sprintf("voice %d", v)))
	s.voices = append(s.voices, vt)
	return vt
}

// Channel maps a voice to a MIDI channel; voice 9 stays on the percussion channel.
func Channel(voice int8) uint8 {
	return uint8(voice) & 0x0F
}

func (s *Sink) OnInstrumentParsed(instrument int8) {
	if Channel(s.current.voice) == percussionChannel {
		log.Printf("⚠️  MIDI Sink: program %d on percussion voice", instrument)
	}
	s.current.track.Add(0, midi.ProgramChange(Channel(s.current.voice), uint8(instrument)&0x7F))
}

func (s *Sink) OnTrackChanged(track int8) {
	s.current = s.voice(track)
}

func (s *Sink) OnLayerChanged(layer int8) {
	s.current.track.Add(0, smf.MetaMarker(fmt.Sprintf("layer %d", layer)))
}

func (s *Sink) OnKeySignatureParsed(root, scale int) {
	count, ok := accidentalsFor(root, theory.ScaleType(scale))
	if !ok {
		log.Printf("⚠️  MIDI Sink: no key signature for root %d scale %d", root, scale)
		return
	}
	num := count
	if num < 0 {
		num = -num
	}
	s.conductor.Add(0, smf.MetaKey(uint8(root), theory.ScaleType(scale) == theory.Major, uint8(num), count < 0))
}

func (s *Sink) OnTimeSignatureParsed(numerator, denominator int) {
	if numerator > 255 || denominator > 255 {
		log.Printf("⚠️  MIDI Sink: time signature %d/%d does not fit a meter event", numerator, denominator)
		return
	}
	// the meter event stores the denominator as a power of two
	if denominator&(denominator-1) != 0 {
		log.Printf("⚠️  MIDI Sink: time signature %d/%d has no meter event (denominator not a power of two)", numerator, denominator)
		return
	}
	s.conductor.Add(0, smf.MetaMeter(uint8(numerator), uint8(denominator)))
}

func (s *Sink) BeforeParsingStarts() {
	s.reset()
}

func (s *Sink) AfterParsingFinished() {
	log.Printf("🎵 MIDI Sink: %d voice tracks", len(s.voices))
}

// accidentalsFor finds the signature with the fewest accidentals whose root
// has the given pitch class.
func accidentalsFor(root int, scale theory.ScaleType) (int, bool) {
	best, found := 0, false
	for count := -theory.MaxAccidentals; count <= theory.MaxAccidentals; count++ {
		pos, err := theory.AccidentalCountToRootPosition(count, scale)
		if err != nil || pos != root {
			continue
		}
		if !found || abs(count) < abs(best) {
			best, found = count, true
		}
	}
	return best, found
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// SMF assembles the conductor and voice tracks into a multi-track file.
// Tracks are copied before closing, so the sink can keep receiving events.
func (s *Sink) SMF() (*smf.SMF, error) {
	file := smf.New()
	tracks := make([]smf.Track, 0, len(s.voices)+1)
	tracks = append(tracks, s.conductor)
	for _, vt := range s.voices {
		tracks = append(tracks, vt.track)
	}
	for i, tr := range tracks {
		closed := append(smf.Track(nil), tr...)
		closed.Close(0)
		if err := file.Add(closed); err != nil {
			return nil, errors.Wrapf(err, "adding track %d", i)
		}
	}
	return file, nil
}

// WriteTo writes the file to w.
func (s *Sink) WriteTo(w io.Writer) (int64, error) {
	file, err := s.SMF()
	if err != nil {
		return 0, err
	}
	n, err := file.WriteTo(w)
	if err != nil {
		return n, errors.Wrap(err, "writing midi file")
	}
	return n, nil
}
