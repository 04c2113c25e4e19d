package store

import "github.com/plandeck/plandeck/internal/model"

// Files holds references to documents the OS stores; the app never owns
// the bytes behind a reference.
type Files struct {
	items []model.FileRef
}

func NewFiles() *Files {
	return &Files{items: make([]model.FileRef, 0)}
}

func (s *Files) Add(ref model.FileRef) {
	s.items = append(s.items, ref)
}

func (s *Files) Rename(id, name string) bool {
	for i, existing := range s.items {
		if existing.ID == id {
			s.items[i].Name = name
			return true
		}
	}
	return false
}

func (s *Files) Remove(id string) bool {
	for i, existing := range s.items {
		if existing.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Files) All() []model.FileRef {
	out := make([]model.FileRef, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Files) Len() int {
	return len(s.items)
}

func (s *Files) Snapshot() []model.FileRef {
	return s.All()
}

func RestoreFiles(items []model.FileRef) *Files {
	s := NewFiles()
	s.items = append(s.items, items...)
	return s
}
