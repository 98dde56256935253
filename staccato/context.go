package staccato

import (
	"github.com/Conceptual-Machines/staccato-agents-go/theory"
)

// Context is the mutable state of a single parse run. It is owned by one
// parse and must not be shared between goroutines.
type Context struct {
	Dictionary    map[string]int
	Key           theory.Key
	TimeSignature theory.TimeSignature

	// borrowed, not owned
	listener Listener
}

// NewContext creates a context seeded with instrument names and "PERCUSSION",
// in C major and 4/4. A nil listener discards events.
func NewContext(listener Listener) *Context {
	if listener == nil {
		listener = ListenerAdapter{}
	}
	return &Context{
		Dictionary:    newDictionary(),
		Key:           theory.DefaultKey,
		TimeSignature: theory.DefaultTimeSignature,
		listener:      listener,
	}
}

// Listener returns the sink events are fired on.
func (c *Context) Listener() Listener {
	return c.listener
}

// Define adds or replaces a dictionary entry for this parse only.
func (c *Context) Define(name string, value int) {
	c.Dictionary[name] = value
}

// Lookup resolves a dictionary name.
func (c *Context) Lookup(name string) (int, bool) {
	v, ok := c.Dictionary[name]
	return v, ok
}
