package widget

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plandeck/plandeck/internal/app"
	"github.com/plandeck/plandeck/internal/model"
	"github.com/plandeck/plandeck/internal/storage"
)

func TestTakeFromEmptyDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plandeck.db")
	kv, err := storage.Open(path)
	require.NoError(t, err)
	defer kv.Close()

	snap, err := Take(context.Background(), kv, time.UTC, 0)
	require.NoError(t, err)
	assert.Empty(t, snap.Open)
	assert.Empty(t, snap.Deadlines)
	assert.Empty(t, snap.Today)
	assert.Zero(t, snap.NoteCount)
	assert.Contains(t, snap.Render(), "open: 0")
}

func TestTakeSeesWriterState(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "plandeck.db")
	writer, err := storage.Open(path)
	require.NoError(t, err)
	defer writer.Close()

	state, err := app.Load(ctx, writer, nil, nil, nil, time.UTC)
	require.NoError(t, err)
	_, err = state.AddActivity(ctx, app.NewActivityInput{Title: "Hand in thesis", DueDate: "25/12/2030", DueTime: "10:00"})
	require.NoError(t, err)
	_, err = state.AddActivity(ctx, app.NewActivityInput{Title: "Water plants"})
	require.NoError(t, err)
	_, err = state.AddNote(ctx, "# memo")
	require.NoError(t, err)
	require.NoError(t, state.SetOwnerName(ctx, "sara"))

	reader, err := storage.OpenReadOnly(path)
	require.NoError(t, err)
	defer reader.Close()

	snap, err := Take(ctx, reader, time.UTC, 0)
	require.NoError(t, err)
	assert.Len(t, snap.Open, 2)
	require.Len(t, snap.Deadlines, 1)
	assert.Equal(t, "Hand in thesis", snap.Deadlines[0].Title)
	assert.Equal(t, 1, snap.NoteCount)
	assert.Equal(t, "sara", snap.OwnerName)

	out := snap.Render()
	assert.Contains(t, out, "sara")
	assert.Contains(t, out, "Hand in thesis due 25/12/2030 10:00")
}

func TestTakeAppliesLimit(t *testing.T) {
	ctx := context.Background()
	kv, err := storage.Open(filepath.Join(t.TempDir(), "plandeck.db"))
	require.NoError(t, err)
	defer kv.Close()

	state, err := app.Load(ctx, kv, nil, nil, nil, time.UTC)
	require.NoError(t, err)
	for _, title := range []string{"one", "two", "three", "four"} {
		_, err = state.AddActivity(ctx, app.NewActivityInput{Title: title})
		require.NoError(t, err)
	}

	snap, err := Take(ctx, kv, time.UTC, 2)
	require.NoError(t, err)
	assert.Len(t, snap.Open, 2)
}

func TestTakeIncludesTodaySchedule(t *testing.T) {
	ctx := context.Background()
	kv, err := storage.Open(filepath.Join(t.TempDir(), "plandeck.db"))
	require.NoError(t, err)
	defer kv.Close()

	state, err := app.Load(ctx, kv, nil, nil, nil, time.UTC)
	require.NoError(t, err)
	_, err = state.AddScheduleEntry(ctx, weekdayOf(time.Now().In(time.UTC)), "Algebra", "Room 204", model.PriorityMedium)
	require.NoError(t, err)

	snap, err := Take(ctx, kv, time.UTC, 0)
	require.NoError(t, err)
	require.Len(t, snap.Today, 1)
	assert.Equal(t, "Algebra", snap.Today[0].Title)
}
