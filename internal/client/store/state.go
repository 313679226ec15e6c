package store

import (
	"github.com/dmitrijs2005/kbadmin/internal/client/models"
)

// State is the observable store content. Error fields hold the message of
// the last failed call of their class, or "".
type State struct {
	Entries       []models.KnowledgeEntry
	SelectedEntry *models.KnowledgeEntry

	// Loading and Error are shared by fetch-all and fetch-one.
	Loading bool
	Error   string

	CreateLoading bool
	CreateError   string
	UpdateLoading bool
	UpdateError   string
	DeleteLoading bool
	DeleteError   string
}

// Busy reports whether any operation is in flight.
func (s State) Busy() bool {
	return s.Loading || s.CreateLoading || s.UpdateLoading || s.DeleteLoading
}

// Errors returns the non-empty error messages, fetch first.
func (s State) Errors() []string {
	var out []string
	for _, e := range []string{s.Error, s.CreateError, s.UpdateError, s.DeleteError} {
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}

// Clone returns a copy that shares no memory with s.
func (s State) Clone() State {
	c := s
	c.Entries = cloneEntries(s.Entries)
	if s.SelectedEntry != nil {
		e := *s.SelectedEntry
		c.SelectedEntry = &e
	}
	return c
}

// Stats are the dashboard counters.
type Stats struct {
	Total     int `json:"total" yaml:"total"`
	Certified int `json:"certified" yaml:"certified"`
	Training  int `json:"training" yaml:"training"`
}

// StatsOf counts entries by status.
func StatsOf(entries []models.KnowledgeEntry) Stats {
	st := Stats{Total: len(entries)}
	for _, e := range entries {
		switch e.Status {
		case models.StatusCertified:
			st.Certified++
		case models.StatusTraining:
			st.Training++
		}
	}
	return st
}

func cloneEntries(in []models.KnowledgeEntry) []models.KnowledgeEntry {
	if in == nil {
		return nil
	}
	out := make([]models.KnowledgeEntry, len(in))
	copy(out, in)
	return out
}
