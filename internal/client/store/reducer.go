package store

import (
	"fmt"

	"github.com/dmitrijs2005/kbadmin/internal/client/models"
)

// Op names an operation class.
type Op int

const (
	OpFetchAll Op = iota + 1
	OpFetchOne
	OpCreate
	OpUpdate
	OpDelete
	OpClearSelected
	OpClearErrors
)

func (o Op) String() string {
	switch o {
	case OpFetchAll:
		return "fetchAll"
	case OpFetchOne:
		return "fetchOne"
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	case OpClearSelected:
		return "clearSelected"
	case OpClearErrors:
		return "clearErrors"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// class groups ops that share one loading/error pair.
func (o Op) class() Op {
	if o == OpFetchOne {
		return OpFetchAll
	}
	return o
}

type Phase int

const (
	Pending Phase = iota
	Fulfilled
	Rejected
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Action is one state transition request.
type Action struct {
	Op    Op
	Phase Phase

	// ID is the entry id of fetch-one, update and delete.
	ID string

	// Entries is the fetch-all payload.
	Entries []models.KnowledgeEntry
	// Entry is the fetch-one, create or update payload.
	Entry models.KnowledgeEntry

	// Error is the rejection message.
	Error string

	// Outstanding counts the calls of the same class still in flight once
	// this one settles. The loading flag stays up while it is positive.
	Outstanding int
}

var (
	ActionClearSelected = Action{Op: OpClearSelected}
	ActionClearErrors   = Action{Op: OpClearErrors}
)

// Reduce returns the state after a. It never modifies s.
func Reduce(s State, a Action) State {
	switch a.Op {
	case OpClearSelected:
		s.SelectedEntry = nil
		return s
	case OpClearErrors:
		s.Error, s.CreateError, s.UpdateError, s.DeleteError = "", "", "", ""
		return s
	}

	loading, errMsg := flags(&s, a.Op)
	if loading == nil {
		return s
	}

	switch a.Phase {
	case Pending:
		*loading = true
		*errMsg = ""
		return s
	case Rejected:
		*loading = a.Outstanding > 0
		*errMsg = a.Error
		return s
	case Fulfilled:
		*loading = a.Outstanding > 0
	default:
		return s
	}

	switch a.Op {
	case OpFetchAll:
		s.Entries = cloneEntries(a.Entries)
		if s.Entries == nil {
			s.Entries = []models.KnowledgeEntry{}
		}
	case OpFetchOne:
		e := a.Entry
		s.SelectedEntry = &e
	case OpCreate:
		entries := make([]models.KnowledgeEntry, len(s.Entries), len(s.Entries)+1)
		copy(entries, s.Entries)
		s.Entries = append(entries, a.Entry)
	case OpUpdate:
		entries := cloneEntries(s.Entries)
		for i := range entries {
			if entries[i].ID == a.Entry.ID {
				entries[i] = a.Entry
				break
			}
		}
		s.Entries = entries
		if s.SelectedEntry != nil && s.SelectedEntry.ID == a.Entry.ID {
			e := a.Entry
			s.SelectedEntry = &e
		}
	case OpDelete:
		entries := make([]models.KnowledgeEntry, 0, len(s.Entries))
		for _, e := range s.Entries {
			if e.ID != a.ID {
				entries = append(entries, e)
			}
		}
		s.Entries = entries
		if s.SelectedEntry != nil && s.SelectedEntry.ID == a.ID {
			s.SelectedEntry = nil
		}
	}
	return s
}

// flags returns pointers to the loading flag and error field of op's class.
func flags(s *State, op Op) (*bool, *string) {
	switch op.class() {
	case OpFetchAll:
		return &s.Loading, &s.Error
	case OpCreate:
		return &s.CreateLoading, &s.CreateError
	case OpUpdate:
		return &s.UpdateLoading, &s.UpdateError
	case OpDelete:
		return &s.DeleteLoading, &s.DeleteError
	}
	return nil, nil
}
