package store

import (
	"fmt"

	"github.com/plandeck/plandeck/internal/model"
)

// NoteAction is a state transition on the notes list. Unknown action
// types panic.
type NoteAction interface {
	noteAction()
}

type AddNote struct {
	Note model.Note
}

// UpdateNote replaces the note's source and its rendered snapshot. The
// caller re-renders before dispatching.
type UpdateNote struct {
	Note model.Note
}

type DeleteNote struct {
	ID string
}

// ReorderNotes replaces the whole list order.
type ReorderNotes struct {
	Notes []model.Note
}

func (AddNote) noteAction()      {}
func (UpdateNote) noteAction()   {}
func (DeleteNote) noteAction()   {}
func (ReorderNotes) noteAction() {}

// Notes is a flat ordered list of saved snippets.
type Notes struct {
	items []model.Note
}

func NewNotes() *Notes {
	return &Notes{items: make([]model.Note, 0)}
}

func (s *Notes) Apply(action NoteAction) {
	switch a := action.(type) {
	case AddNote:
		s.items = append(s.items, a.Note)
	case UpdateNote:
		for i, existing := range s.items {
			if existing.ID == a.Note.ID {
				s.items[i] = a.Note
				return
			}
		}
	case DeleteNote:
		for i, existing := range s.items {
			if existing.ID == a.ID {
				s.items = append(s.items[:i], s.items[i+1:]...)
				return
			}
		}
	case ReorderNotes:
		next := make([]model.Note, len(a.Notes))
		copy(next, a.Notes)
		s.items = next
	default:
		panic(fmt.Sprintf("store: unknown note action %T", action))
	}
}

func (s *Notes) All() []model.Note {
	out := make([]model.Note, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Notes) Get(id string) (model.Note, bool) {
	for _, n := range s.items {
		if n.ID == id {
			return n, true
		}
	}
	return model.Note{}, false
}

func (s *Notes) Len() int {
	return len(s.items)
}

func (s *Notes) Snapshot() []model.Note {
	return s.All()
}

func RestoreNotes(items []model.Note) *Notes {
	s := NewNotes()
	s.items = append(s.items, items...)
	return s
}
