package store

import "strings"

// DefaultScanLimit bounds the recent-scan history.
const DefaultScanLimit = 20

// RecentScans is the most-recent-first history of scanned payloads.
// Capture itself is a platform concern; only the history lives here.
type RecentScans struct {
	limit int
	items []string
}

func NewRecentScans(limit int) *RecentScans {
	if limit <= 0 {
		limit = DefaultScanLimit
	}
	return &RecentScans{limit: limit, items: make([]string, 0)}
}

// Record prepends payload, dropping an earlier duplicate and trimming
// to the limit.
func (s *RecentScans) Record(payload string) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return
	}
	next := make([]string, 0, len(s.items)+1)
	next = append(next, payload)
	for _, existing := range s.items {
		if existing != payload {
			next = append(next, existing)
		}
	}
	if len(next) > s.limit {
		next = next[:s.limit]
	}
	s.items = next
}

func (s *RecentScans) Clear() {
	s.items = s.items[:0]
}

func (s *RecentScans) All() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

func (s *RecentScans) Snapshot() []string {
	return s.All()
}

func RestoreRecentScans(items []string, limit int) *RecentScans {
	s := NewRecentScans(limit)
	for i := len(items) - 1; i >= 0; i-- {
		s.Record(items[i])
	}
	return s
}
