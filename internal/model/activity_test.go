package model

import (
	"errors"
	"testing"
	"time"
)

func validActivity() Activity {
	return Activity{
		ID:        "act-1",
		Title:     "Renew passport",
		Body:      "Bring the old one",
		Priority:  PriorityMedium,
		CreatedAt: time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC),
	}
}

func TestActivityValidate(t *testing.T) {
	if err := validActivity().Validate(); err != nil {
		t.Fatalf("valid activity rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Activity)
		want   error
	}{
		{name: "missing id", mutate: func(a *Activity) { a.ID = " " }},
		{name: "missing title", mutate: func(a *Activity) { a.Title = "" }},
		{name: "bad priority", mutate: func(a *Activity) { a.Priority = "urgent" }, want: ErrInvalidPriority},
		{name: "zero created_at", mutate: func(a *Activity) { a.CreatedAt = time.Time{} }},
		{name: "bad due date", mutate: func(a *Activity) { a.DueDate = "2030-12-25" }, want: ErrInvalidDueDate},
		{name: "bad due time", mutate: func(a *Activity) { a.DueDate = "25/12/2030"; a.DueTime = "10pm" }, want: ErrInvalidDueTime},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := validActivity()
			tc.mutate(&a)
			err := a.Validate()
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestPriorityWeightOrdering(t *testing.T) {
	if PriorityHigh.Weight() <= PriorityMedium.Weight() || PriorityMedium.Weight() <= PriorityLow.Weight() {
		t.Fatalf("priority weights out of order: high=%d medium=%d low=%d",
			PriorityHigh.Weight(), PriorityMedium.Weight(), PriorityLow.Weight())
	}
	if Priority("urgent").Weight() != 0 {
		t.Fatalf("unknown priority should weigh 0")
	}
}

func TestActivityDueAt(t *testing.T) {
	loc := time.UTC

	a := validActivity()
	if _, ok := a.DueAt(loc); ok {
		t.Fatalf("activity without due date should have no deadline instant")
	}

	a.DueDate = "25/12/2030"
	a.DueTime = "10:30"
	due, ok := a.DueAt(loc)
	if !ok {
		t.Fatalf("expected deadline instant")
	}
	want := time.Date(2030, 12, 25, 10, 30, 0, 0, loc)
	if !due.Equal(want) {
		t.Fatalf("expected %v, got %v", want, due)
	}

	a.DueTime = ""
	due, ok = a.DueAt(loc)
	if !ok || !due.Equal(time.Date(2030, 12, 25, 0, 0, 0, 0, loc)) {
		t.Fatalf("expected start of day for empty time, got %v ok=%v", due, ok)
	}

	a.DueDate = "not a date"
	if _, ok := a.DueAt(loc); ok {
		t.Fatalf("unparsable date should read as no deadline")
	}
}

func TestHasDeadline(t *testing.T) {
	a := validActivity()
	if a.HasDeadline() {
		t.Fatalf("empty due date should not count as deadline")
	}
	a.DueDate = "  "
	if a.HasDeadline() {
		t.Fatalf("blank due date should not count as deadline")
	}
	a.DueDate = "01/01/2031"
	if !a.HasDeadline() {
		t.Fatalf("expected deadline")
	}
}
