// Package widget builds the read-only snapshot shown by the companion
// process. It reads the same persisted state the app writes but never
// writes back, so it can run concurrently with the app.
package widget

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/plandeck/plandeck/internal/model"
	"github.com/plandeck/plandeck/internal/storage"
	"github.com/plandeck/plandeck/internal/store"
)

// Snapshot is a point-in-time view of the persisted state. Absent or
// unreadable keys yield empty sections, never an error.
type Snapshot struct {
	TakenAt   time.Time             `json:"taken_at"`
	OwnerName string                `json:"owner_name,omitempty"`
	Open      []model.Activity      `json:"open"`
	Deadlines []model.Activity      `json:"deadlines"`
	Today     []model.ScheduleEntry `json:"today"`
	NoteCount int                   `json:"note_count"`
}

// Take reads the snapshot from storage. Limit caps the open and
// deadline lists; zero means no cap.
func Take(ctx context.Context, kv *storage.KV, loc *time.Location, limit int) (Snapshot, error) {
	if loc == nil {
		loc = time.Local
	}
	snap := Snapshot{TakenAt: time.Now().In(loc)}

	var activities store.ActivitiesState
	if ok, err := kv.Load(ctx, storage.KeyActivities, &activities); err != nil {
		return Snapshot{}, fmt.Errorf("widget: load activities: %w", err)
	} else if ok {
		restored := store.RestoreActivities(activities, loc)
		snap.Open = capActivities(restored.View(store.ViewOpen), limit)
		snap.Deadlines = capActivities(restored.View(store.ViewWithDeadline), limit)
	}

	var schedule store.ScheduleState
	if ok, err := kv.Load(ctx, storage.KeySchedule, &schedule); err != nil {
		return Snapshot{}, fmt.Errorf("widget: load schedule: %w", err)
	} else if ok {
		snap.Today = store.RestoreSchedule(schedule).Day(weekdayOf(snap.TakenAt))
	}

	var notes []model.Note
	if ok, err := kv.Load(ctx, storage.KeyNotes, &notes); err != nil {
		return Snapshot{}, fmt.Errorf("widget: load notes: %w", err)
	} else if ok {
		snap.NoteCount = len(notes)
	}

	var prefs model.Preferences
	if ok, err := kv.Load(ctx, storage.KeyPreferences, &prefs); err != nil {
		return Snapshot{}, fmt.Errorf("widget: load preferences: %w", err)
	} else if ok {
		snap.OwnerName = prefs.OwnerName
	}

	return snap, nil
}

// Render formats the snapshot for a status bar or terminal one-shot.
func (s Snapshot) Render() string {
	var b strings.Builder
	header := "plandeck"
	if s.OwnerName != "" {
		header += " | " + s.OwnerName
	}
	b.WriteString(header + "\n")

	b.WriteString(fmt.Sprintf("open: %d\n", len(s.Open)))
	for _, a := range s.Open {
		b.WriteString("  - " + a.Title + "\n")
	}
	if len(s.Deadlines) > 0 {
		b.WriteString("deadlines:\n")
		for _, a := range s.Deadlines {
			line := "  - " + a.Title + " due " + a.DueDate
			if a.DueTime != "" {
				line += " " + a.DueTime
			}
			b.WriteString(line + "\n")
		}
	}
	if len(s.Today) > 0 {
		b.WriteString("today:\n")
		for _, entry := range s.Today {
			b.WriteString("  - " + entry.Title + "\n")
		}
	}
	if s.NoteCount > 0 {
		b.WriteString(fmt.Sprintf("notes: %d\n", s.NoteCount))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func capActivities(items []model.Activity, limit int) []model.Activity {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

func weekdayOf(t time.Time) model.Weekday {
	switch t.Weekday() {
	case time.Tuesday:
		return model.Tuesday
	case time.Wednesday:
		return model.Wednesday
	case time.Thursday:
		return model.Thursday
	case time.Friday:
		return model.Friday
	case time.Saturday:
		return model.Saturday
	case time.Sunday:
		return model.Sunday
	default:
		return model.Monday
	}
}
