// Package editbuffer stages edits to one entity locally and sends them to the
// server in a single request on Flush. Nothing is sent before Flush, and a
// discarded buffer never sends anything.
package editbuffer

import (
	"github.com/pkg/errors"
)

var (
	// ErrDiscarded is returned by every operation on a discarded buffer.
	ErrDiscarded = errors.New("edit buffer was discarded")
	// ErrSpent is returned once a saved buffer could not be reloaded. Seed a
	// new buffer from the server before editing again.
	ErrSpent = errors.New("edit buffer is out of date with the server")
	// ErrSkillIndex is returned for a skill position outside the buffer.
	ErrSkillIndex = errors.New("skill index out of range")
)

// lifecycle is embedded by every buffer.
type lifecycle struct {
	discarded bool
	spent     bool
}

func (l *lifecycle) check() error {
	if l.discarded {
		return ErrDiscarded
	}
	if l.spent {
		return ErrSpent
	}
	return nil
}

// Discard drops all staged changes. Later calls return ErrDiscarded.
func (l *lifecycle) Discard() {
	l.discarded = true
}

func (l *lifecycle) Discarded() bool {
	return l.discarded
}

func stringPtr(s string) *string {
	return &s
}
