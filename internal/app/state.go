package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plandeck/plandeck/internal/model"
	"github.com/plandeck/plandeck/internal/notify"
	"github.com/plandeck/plandeck/internal/storage"
	"github.com/plandeck/plandeck/internal/store"
)

// NoteRenderer produces the rendered snapshot saved alongside a note's
// source. Rendering happens at save time, not at display time.
type NoteRenderer func(source string) string

// State is the application-state container: every store, the
// persistence bridge, and the notification planner behind one explicit
// value handed to the UI composition root. Each mutation persists the
// affected store before returning, so widget readers always see the
// last completed change.
type State struct {
	Activities *store.Activities
	Schedule   *store.Schedule
	Notes      *store.Notes
	Files      *store.Files
	Scans      *store.RecentScans

	kv         *storage.KV
	planner    *notify.Planner
	renderNote NoteRenderer
	log        *zap.Logger
	loc        *time.Location
	prefs      model.Preferences
}

// Load builds the container from persisted state. Absent or corrupt
// keys fall back to the empty default shape per store.
func Load(ctx context.Context, kv *storage.KV, planner *notify.Planner, renderNote NoteRenderer, logger *zap.Logger, loc *time.Location) (*State, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	if renderNote == nil {
		renderNote = func(source string) string { return source }
	}
	s := &State{
		kv:         kv,
		planner:    planner,
		renderNote: renderNote,
		log:        logger,
		loc:        loc,
		prefs:      model.DefaultPreferences(),
	}

	var activities store.ActivitiesState
	if ok, err := kv.Load(ctx, storage.KeyActivities, &activities); err != nil {
		return nil, fmt.Errorf("load activities: %w", err)
	} else if ok {
		s.Activities = store.RestoreActivities(activities, loc)
	} else {
		s.Activities = store.NewActivities(loc)
	}

	var schedule store.ScheduleState
	if ok, err := kv.Load(ctx, storage.KeySchedule, &schedule); err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	} else if ok {
		s.Schedule = store.RestoreSchedule(schedule)
	} else {
		s.Schedule = store.NewSchedule()
	}

	var notes []model.Note
	if ok, err := kv.Load(ctx, storage.KeyNotes, &notes); err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	} else if ok {
		s.Notes = store.RestoreNotes(notes)
	} else {
		s.Notes = store.NewNotes()
	}

	var files []model.FileRef
	if ok, err := kv.Load(ctx, storage.KeyFiles, &files); err != nil {
		return nil, fmt.Errorf("load files: %w", err)
	} else if ok {
		s.Files = store.RestoreFiles(files)
	} else {
		s.Files = store.NewFiles()
	}

	var scans []string
	if ok, err := kv.Load(ctx, storage.KeyRecentScans, &scans); err != nil {
		return nil, fmt.Errorf("load recent scans: %w", err)
	} else if ok {
		s.Scans = store.RestoreRecentScans(scans, store.DefaultScanLimit)
	} else {
		s.Scans = store.NewRecentScans(store.DefaultScanLimit)
	}

	var prefs model.Preferences
	if ok, err := kv.Load(ctx, storage.KeyPreferences, &prefs); err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	} else if ok && prefs.Theme.IsValid() {
		s.prefs = prefs
	}

	logger.Info("state loaded",
		zap.Int("activities", s.Activities.Len()),
		zap.Int("schedule_entries", s.Schedule.Len()),
		zap.Int("notes", s.Notes.Len()),
		zap.Int("files", s.Files.Len()),
	)
	return s, nil
}

func (s *State) Preferences() model.Preferences {
	return s.prefs
}

// NewActivityInput carries the user-entered fields for a new activity.
type NewActivityInput struct {
	Title    string
	Body     string
	Priority model.Priority
	DueDate  string
	DueTime  string
}

func (s *State) AddActivity(ctx context.Context, in NewActivityInput) (model.Activity, error) {
	a := model.Activity{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(in.Title),
		Body:      in.Body,
		Priority:  in.Priority,
		CreatedAt: time.Now().In(s.loc),
		DueDate:   strings.TrimSpace(in.DueDate),
		DueTime:   strings.TrimSpace(in.DueTime),
	}
	if !a.Priority.IsValid() {
		a.Priority = model.PriorityLow
	}
	if err := a.Validate(); err != nil {
		return model.Activity{}, err
	}

	if s.planner != nil {
		a.Notifications = s.planner.Schedule(a, s.prefs.OwnerName)
	}
	s.Activities.Apply(store.AddActivity{Activity: a})
	if err := s.saveActivities(ctx); err != nil {
		return model.Activity{}, err
	}
	s.log.Info("activity added", zap.String("id", a.ID), zap.Bool("deadline", a.HasDeadline()))
	return a, nil
}

func (s *State) UpdateActivity(ctx context.Context, a model.Activity) error {
	prev, ok := s.Activities.Get(a.ID)
	if !ok {
		return nil
	}
	a.Edited = true
	a.CreatedAt = time.Now().In(s.loc)
	if err := a.Validate(); err != nil {
		return err
	}

	// Any change to the deadline fields cancels the old pair before a
	// new pair is scheduled; stale notifications must not survive an
	// edit.
	a.Notifications = prev.Notifications
	if s.planner != nil && (prev.DueDate != a.DueDate || prev.DueTime != a.DueTime) {
		a.Notifications = s.planner.Reschedule(prev.Notifications, a, s.prefs.OwnerName)
	}
	s.Activities.Apply(store.UpdateActivity{Activity: a})
	if err := s.saveActivities(ctx); err != nil {
		return err
	}
	s.log.Info("activity updated", zap.String("id", a.ID))
	return nil
}

func (s *State) ToggleActivity(ctx context.Context, id string) error {
	s.Activities.Apply(store.ToggleActivity{ID: id})
	return s.saveActivities(ctx)
}

func (s *State) DeleteActivity(ctx context.Context, id string) error {
	if a, ok := s.Activities.Get(id); ok && s.planner != nil {
		s.planner.Cancel(a.Notifications)
	}
	s.Activities.Apply(store.DeleteActivity{ID: id})
	if err := s.saveActivities(ctx); err != nil {
		return err
	}
	s.log.Info("activity deleted", zap.String("id", id))
	return nil
}

func (s *State) ReorderActivities(ctx context.Context, view store.ViewName, ids []string) error {
	s.Activities.Apply(store.ReorderActivities{View: view, IDs: ids})
	return s.saveActivities(ctx)
}

func (s *State) AddScheduleEntry(ctx context.Context, day model.Weekday, title, body string, priority model.Priority) (model.ScheduleEntry, error) {
	entry := model.ScheduleEntry{
		ID:       uuid.NewString(),
		Title:    strings.TrimSpace(title),
		Body:     body,
		Priority: priority,
	}
	if !entry.Priority.IsValid() {
		entry.Priority = model.PriorityLow
	}
	if err := entry.Validate(); err != nil {
		return model.ScheduleEntry{}, err
	}
	s.Schedule.Apply(store.AddEntry{Day: day, Entry: entry})
	if err := s.saveSchedule(ctx); err != nil {
		return model.ScheduleEntry{}, err
	}
	return entry, nil
}

func (s *State) UpdateScheduleEntry(ctx context.Context, day model.Weekday, entry model.ScheduleEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	s.Schedule.Apply(store.UpdateEntry{Day: day, Entry: entry})
	return s.saveSchedule(ctx)
}

func (s *State) DeleteScheduleEntry(ctx context.Context, day model.Weekday, id string) error {
	s.Schedule.Apply(store.DeleteEntry{Day: day, ID: id})
	return s.saveSchedule(ctx)
}

func (s *State) ReorderScheduleDay(ctx context.Context, day model.Weekday, entries []model.ScheduleEntry) error {
	s.Schedule.Apply(store.ReorderDay{Day: day, Entries: entries})
	return s.saveSchedule(ctx)
}

func (s *State) AddNote(ctx context.Context, source string) (model.Note, error) {
	n := model.Note{
		ID:       uuid.NewString(),
		Source:   source,
		Rendered: s.renderNote(source),
	}
	if err := n.Validate(); err != nil {
		return model.Note{}, err
	}
	s.Notes.Apply(store.AddNote{Note: n})
	if err := s.saveNotes(ctx); err != nil {
		return model.Note{}, err
	}
	return n, nil
}

// UpdateNote replaces a note's source and regenerates its rendered
// snapshot.
func (s *State) UpdateNote(ctx context.Context, id, source string) error {
	if _, ok := s.Notes.Get(id); !ok {
		return nil
	}
	n := model.Note{ID: id, Source: source, Rendered: s.renderNote(source)}
	if err := n.Validate(); err != nil {
		return err
	}
	s.Notes.Apply(store.UpdateNote{Note: n})
	return s.saveNotes(ctx)
}

func (s *State) DeleteNote(ctx context.Context, id string) error {
	s.Notes.Apply(store.DeleteNote{ID: id})
	return s.saveNotes(ctx)
}

func (s *State) ReorderNotes(ctx context.Context, notes []model.Note) error {
	s.Notes.Apply(store.ReorderNotes{Notes: notes})
	return s.saveNotes(ctx)
}

func (s *State) AddFile(ctx context.Context, name, uri string) (model.FileRef, error) {
	ref := model.FileRef{ID: uuid.NewString(), Name: strings.TrimSpace(name), URI: uri}
	if err := ref.Validate(); err != nil {
		return model.FileRef{}, err
	}
	s.Files.Add(ref)
	if err := s.kv.Save(ctx, storage.KeyFiles, s.Files.Snapshot()); err != nil {
		return model.FileRef{}, err
	}
	return ref, nil
}

func (s *State) RenameFile(ctx context.Context, id, name string) error {
	if !s.Files.Rename(id, name) {
		return nil
	}
	return s.kv.Save(ctx, storage.KeyFiles, s.Files.Snapshot())
}

func (s *State) RemoveFile(ctx context.Context, id string) error {
	if !s.Files.Remove(id) {
		return nil
	}
	return s.kv.Save(ctx, storage.KeyFiles, s.Files.Snapshot())
}

func (s *State) RecordScan(ctx context.Context, payload string) error {
	s.Scans.Record(payload)
	return s.kv.Save(ctx, storage.KeyRecentScans, s.Scans.Snapshot())
}

func (s *State) ClearScans(ctx context.Context) error {
	s.Scans.Clear()
	return s.kv.Save(ctx, storage.KeyRecentScans, s.Scans.Snapshot())
}

func (s *State) SetTheme(ctx context.Context, theme model.Theme) error {
	if !theme.IsValid() {
		return fmt.Errorf("app: invalid theme %q", theme)
	}
	s.prefs.Theme = theme
	return s.kv.Save(ctx, storage.KeyPreferences, s.prefs)
}

func (s *State) SetOwnerName(ctx context.Context, name string) error {
	s.prefs.OwnerName = strings.TrimSpace(name)
	return s.kv.Save(ctx, storage.KeyPreferences, s.prefs)
}

func (s *State) saveActivities(ctx context.Context) error {
	if err := s.kv.Save(ctx, storage.KeyActivities, s.Activities.Snapshot()); err != nil {
		s.log.Error("persist activities failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *State) saveSchedule(ctx context.Context) error {
	if err := s.kv.Save(ctx, storage.KeySchedule, s.Schedule.Snapshot()); err != nil {
		s.log.Error("persist schedule failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *State) saveNotes(ctx context.Context) error {
	if err := s.kv.Save(ctx, storage.KeyNotes, s.Notes.Snapshot()); err != nil {
		s.log.Error("persist notes failed", zap.Error(err))
		return err
	}
	return nil
}
