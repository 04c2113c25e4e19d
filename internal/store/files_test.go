package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plandeck/plandeck/internal/model"
)

func TestFilesAddRenameRemove(t *testing.T) {
	s := NewFiles()
	s.Add(model.FileRef{ID: "f1", Name: "syllabus.pdf", URI: "file:///docs/syllabus.pdf"})
	s.Add(model.FileRef{ID: "f2", Name: "notes.txt", URI: "file:///docs/notes.txt"})
	require.Equal(t, 2, s.Len())

	assert.True(t, s.Rename("f1", "syllabus-2026.pdf"))
	assert.Equal(t, "syllabus-2026.pdf", s.All()[0].Name)
	assert.False(t, s.Rename("missing", "x"))

	assert.True(t, s.Remove("f1"))
	assert.False(t, s.Remove("f1"))
	assert.Equal(t, 1, s.Len())
}

func TestFilesSnapshotRestore(t *testing.T) {
	s := NewFiles()
	s.Add(model.FileRef{ID: "f1", Name: "a.pdf", URI: "file:///a.pdf"})

	restored := RestoreFiles(s.Snapshot())
	require.Equal(t, 1, restored.Len())
	assert.Equal(t, "a.pdf", restored.All()[0].Name)
}

func TestRecentScansBoundedMostRecentFirst(t *testing.T) {
	s := NewRecentScans(3)
	s.Record("one")
	s.Record("two")
	s.Record("three")
	s.Record("four")
	assert.Equal(t, []string{"four", "three", "two"}, s.All())

	// Re-recording moves a payload to the front without duplicating it.
	s.Record("two")
	assert.Equal(t, []string{"two", "four", "three"}, s.All())

	s.Record("   ")
	assert.Len(t, s.All(), 3)

	s.Clear()
	assert.Empty(t, s.All())
}

func TestRecentScansRestoreKeepsOrder(t *testing.T) {
	restored := RestoreRecentScans([]string{"newest", "older", "oldest"}, 5)
	assert.Equal(t, []string{"newest", "older", "oldest"}, restored.All())
}
