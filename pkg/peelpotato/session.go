package peelpotato

import (
	"github.com/google/uuid"

	"github.com/KimTsegzc/Peel-Potato/pkg/peelpotato/models"
)

// Session holds the one piece of per-session mutable state: the anchor
// of the most recently created chart. It is an explicit value owned by
// the caller, read and written on a single logical thread of control in
// response to user actions.
type Session struct {
	// ID identifies the session in logs.
	ID string

	last *models.ChartAnchor
}

// NewSession returns an empty session with a fresh id.
func NewSession() *Session {
	return &Session{ID: uuid.NewString()}
}

// LastChart returns the remembered chart anchor, if any.
func (s *Session) LastChart() (models.ChartAnchor, bool) {
	if s.last == nil {
		return models.ChartAnchor{}, false
	}
	return *s.last, true
}

// Remember records the anchor of the most recently created chart.
func (s *Session) Remember(a models.ChartAnchor) {
	anchor := a
	s.last = &anchor
}

// Forget clears the remembered chart, e.g. when it no longer exists.
func (s *Session) Forget() {
	s.last = nil
}
