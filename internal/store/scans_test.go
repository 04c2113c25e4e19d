package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecentScansRecordOrder(t *testing.T) {
	s := NewRecentScans(DefaultScanLimit)
	s.Record("https://example.com/menu")
	s.Record("WIFI:S:cafe;P:secret;;")
	assert.Equal(t, []string{"WIFI:S:cafe;P:secret;;", "https://example.com/menu"}, s.All())
}

func TestRecentScansDedupeMovesToFront(t *testing.T) {
	s := NewRecentScans(DefaultScanLimit)
	s.Record("first")
	s.Record("second")
	s.Record("first")
	assert.Equal(t, []string{"first", "second"}, s.All())
}

func TestRecentScansIgnoresBlank(t *testing.T) {
	s := NewRecentScans(DefaultScanLimit)
	s.Record("   ")
	s.Record("")
	assert.Empty(t, s.All())
}

func TestRecentScansCapped(t *testing.T) {
	s := NewRecentScans(3)
	for i := 0; i < 5; i++ {
		s.Record(fmt.Sprintf("scan-%d", i))
	}
	assert.Equal(t, []string{"scan-4", "scan-3", "scan-2"}, s.All())
}

func TestRecentScansClear(t *testing.T) {
	s := NewRecentScans(DefaultScanLimit)
	s.Record("payload")
	s.Clear()
	assert.Empty(t, s.All())
}

func TestRecentScansSnapshotRestore(t *testing.T) {
	s := NewRecentScans(DefaultScanLimit)
	s.Record("oldest")
	s.Record("newest")

	restored := RestoreRecentScans(s.Snapshot(), DefaultScanLimit)
	assert.Equal(t, s.All(), restored.All())
}
