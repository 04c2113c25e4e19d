package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plandeck/plandeck/internal/model"
	"github.com/plandeck/plandeck/internal/notify"
	"github.com/plandeck/plandeck/internal/scheduler"
	"github.com/plandeck/plandeck/internal/storage"
	"github.com/plandeck/plandeck/internal/store"
)

type recordingEngine struct {
	scheduled []scheduler.Notice
	cancelled []string
}

func (r *recordingEngine) Schedule(n scheduler.Notice) error {
	r.scheduled = append(r.scheduled, n)
	return nil
}

func (r *recordingEngine) Cancel(id string) {
	r.cancelled = append(r.cancelled, id)
}

type fixture struct {
	state  *State
	kv     *storage.KV
	engine *recordingEngine
	path   string
}

func setup(t *testing.T) *fixture {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plandeck.db")
	kv, err := storage.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	engine := &recordingEngine{}
	planner := notify.NewPlanner(engine, time.UTC)
	state, err := Load(context.Background(), kv, planner, func(s string) string { return "rendered:" + s }, nil, time.UTC)
	require.NoError(t, err)
	return &fixture{state: state, kv: kv, engine: engine, path: path}
}

func TestAddActivityWithFutureDeadlineSchedulesPair(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	a, err := f.state.AddActivity(ctx, NewActivityInput{
		Title:   "Hand in thesis",
		DueDate: "25/12/2030",
		DueTime: "10:00",
	})
	require.NoError(t, err)

	// Scenario A: both offsets positive, two non-empty handles.
	assert.NotEmpty(t, a.Notifications.AtDeadline)
	assert.NotEmpty(t, a.Notifications.AtDayStart)
	assert.Len(t, f.engine.scheduled, 2)

	deadlineView := f.state.Activities.View(store.ViewWithDeadline)
	require.Len(t, deadlineView, 1)
	assert.Equal(t, a.ID, deadlineView[0].ID)
	assert.Equal(t, model.PriorityLow, a.Priority)
}

func TestAddActivityWithoutDeadlineSchedulesNothing(t *testing.T) {
	f := setup(t)

	a, err := f.state.AddActivity(context.Background(), NewActivityInput{Title: "Water plants"})
	require.NoError(t, err)

	// Scenario B: no handles, absent from the deadline view.
	assert.True(t, a.Notifications.IsZero())
	assert.Empty(t, f.engine.scheduled)
	assert.Empty(t, f.state.Activities.View(store.ViewWithDeadline))
}

func TestToggleKeepsDeadlineAndPriorityMembership(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	a, err := f.state.AddActivity(ctx, NewActivityInput{Title: "Dentist", DueDate: "25/12/2030"})
	require.NoError(t, err)
	require.NoError(t, f.state.ToggleActivity(ctx, a.ID))

	// Scenario C: moved open -> completed, other views untouched.
	open := f.state.Activities.View(store.ViewOpen)
	completed := f.state.Activities.View(store.ViewCompleted)
	assert.Empty(t, open)
	require.Len(t, completed, 1)
	assert.Len(t, f.state.Activities.View(store.ViewWithDeadline), 1)
	assert.Len(t, f.state.Activities.View(store.ViewWithPriority), 1)
}

func TestDeleteActivityCancelsBothNotifications(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	a, err := f.state.AddActivity(ctx, NewActivityInput{Title: "Flight", DueDate: "25/12/2030", DueTime: "06:00"})
	require.NoError(t, err)
	require.NoError(t, f.state.DeleteActivity(ctx, a.ID))

	// Scenario D: both handles cancelled, gone from every view.
	assert.ElementsMatch(t, []string{a.Notifications.AtDeadline, a.Notifications.AtDayStart}, f.engine.cancelled)
	assert.Equal(t, 0, f.state.Activities.Len())
	for _, view := range []store.ViewName{store.ViewOpen, store.ViewCompleted, store.ViewWithDeadline, store.ViewWithPriority} {
		assert.Empty(t, f.state.Activities.View(view))
	}
}

func TestEditDeadlineCancelsOldAndSchedulesNew(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	early, err := f.state.AddActivity(ctx, NewActivityInput{Title: "Visa", DueDate: "25/12/2030"})
	require.NoError(t, err)
	_, err = f.state.AddActivity(ctx, NewActivityInput{Title: "Flight", DueDate: "28/12/2030"})
	require.NoError(t, err)

	oldRefs := early.Notifications
	edited := early
	edited.DueDate = "01/01/2031"
	require.NoError(t, f.state.UpdateActivity(ctx, edited))

	// Scenario E: old pair cancelled, new pair scheduled, view resorted.
	assert.Contains(t, f.engine.cancelled, oldRefs.AtDeadline)
	assert.Contains(t, f.engine.cancelled, oldRefs.AtDayStart)
	current, ok := f.state.Activities.Get(early.ID)
	require.True(t, ok)
	assert.NotEmpty(t, current.Notifications.AtDeadline)
	assert.NotEqual(t, oldRefs.AtDeadline, current.Notifications.AtDeadline)
	assert.True(t, current.Edited)

	deadlineView := f.state.Activities.View(store.ViewWithDeadline)
	require.Len(t, deadlineView, 2)
	assert.Equal(t, "Flight", deadlineView[0].Title)
	assert.Equal(t, "Visa", deadlineView[1].Title)
}

func TestEditWithoutDeadlineChangeKeepsHandles(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	a, err := f.state.AddActivity(ctx, NewActivityInput{Title: "Visa", DueDate: "25/12/2030"})
	require.NoError(t, err)
	before := len(f.engine.scheduled)

	edited := a
	edited.Title = "Visa renewal"
	require.NoError(t, f.state.UpdateActivity(ctx, edited))

	assert.Empty(t, f.engine.cancelled)
	assert.Len(t, f.engine.scheduled, before)
	current, _ := f.state.Activities.Get(a.ID)
	assert.Equal(t, a.Notifications, current.Notifications)
}

func TestStatePersistsAndReloads(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	a, err := f.state.AddActivity(ctx, NewActivityInput{Title: "Persisted", DueDate: "25/12/2030"})
	require.NoError(t, err)
	_, err = f.state.AddScheduleEntry(ctx, model.Monday, "Algebra", "Room 204", model.PriorityHigh)
	require.NoError(t, err)
	n, err := f.state.AddNote(ctx, "# Persisted note")
	require.NoError(t, err)
	assert.Equal(t, "rendered:# Persisted note", n.Rendered)
	_, err = f.state.AddFile(ctx, "syllabus.pdf", "file:///docs/syllabus.pdf")
	require.NoError(t, err)
	require.NoError(t, f.state.RecordScan(ctx, "https://example.com/menu"))
	require.NoError(t, f.state.SetOwnerName(ctx, "sara"))
	require.NoError(t, f.state.SetTheme(ctx, model.ThemeLight))

	reloaded, err := Load(ctx, f.kv, nil, nil, nil, time.UTC)
	require.NoError(t, err)

	got, ok := reloaded.Activities.Get(a.ID)
	require.True(t, ok)
	assert.Equal(t, "Persisted", got.Title)
	assert.Equal(t, a.Notifications, got.Notifications)
	assert.Len(t, reloaded.Schedule.Day(model.Monday), 1)
	assert.Equal(t, 1, reloaded.Notes.Len())
	assert.Equal(t, 1, reloaded.Files.Len())
	assert.Equal(t, []string{"https://example.com/menu"}, reloaded.Scans.All())
	assert.Equal(t, "sara", reloaded.Preferences().OwnerName)
	assert.Equal(t, model.ThemeLight, reloaded.Preferences().Theme)
}

func TestLoadFromEmptyDatabaseUsesDefaults(t *testing.T) {
	f := setup(t)
	assert.Equal(t, 0, f.state.Activities.Len())
	assert.Equal(t, 0, f.state.Schedule.Len())
	assert.Equal(t, 0, f.state.Notes.Len())
	assert.Equal(t, model.ThemeDark, f.state.Preferences().Theme)
}

func TestAddActivityRejectsInvalidInput(t *testing.T) {
	f := setup(t)
	_, err := f.state.AddActivity(context.Background(), NewActivityInput{Title: "   "})
	assert.Error(t, err)

	_, err = f.state.AddActivity(context.Background(), NewActivityInput{Title: "Bad date", DueDate: "2030-12-25"})
	assert.Error(t, err)
}

func TestOwnerNameFlowsIntoNotificationTitles(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	require.NoError(t, f.state.SetOwnerName(ctx, "sara"))

	_, err := f.state.AddActivity(ctx, NewActivityInput{Title: "Thesis", DueDate: "25/12/2030", DueTime: "10:00"})
	require.NoError(t, err)
	require.Len(t, f.engine.scheduled, 2)
	assert.Contains(t, f.engine.scheduled[0].Title, "Sara")
}
