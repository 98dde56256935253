package models

// Event types recorded from a Staccato parse
const (
	EventInstrument    = "instrument"
	EventTrack         = "track"
	EventLayer         = "layer"
	EventKeySignature  = "key_signature"
	EventTimeSignature = "time_signature"
)

// ParsedEvent is one listener callback captured during a parse.
// For key signatures Value holds the root position in the octave.
type ParsedEvent struct {
	Type        string `json:"type"`
	Value       int    `json:"value"`
	Scale       int    `json:"scale,omitempty"`
	Key         string `json:"key,omitempty"`
	Numerator   int    `json:"numerator,omitempty"`
	Denominator int    `json:"denominator,omitempty"`
}

// ParseOutput is the JSON document produced for a parsed Staccato string
type ParseOutput struct {
	Staccato      string        `json:"staccato"`
	Events        []ParsedEvent `json:"events"`
	Key           string        `json:"key"`
	TimeSignature string        `json:"time_signature"`
}
