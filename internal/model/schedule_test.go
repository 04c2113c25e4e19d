package model

import "testing"

func TestWeekdayIsValid(t *testing.T) {
	for _, d := range Weekdays() {
		if !d.IsValid() {
			t.Fatalf("weekday %q should be valid", d)
		}
	}
	if Weekday("funday").IsValid() {
		t.Fatalf("unknown weekday accepted")
	}
}

func TestScheduleEntryValidate(t *testing.T) {
	entry := ScheduleEntry{ID: "entry-1", Title: "Algebra", Body: "Room 204", Priority: PriorityHigh}
	if err := entry.Validate(); err != nil {
		t.Fatalf("valid entry rejected: %v", err)
	}

	entry.ID = ""
	if err := entry.Validate(); err == nil {
		t.Fatalf("expected error for missing id")
	}

	entry = ScheduleEntry{ID: "entry-2", Title: "Gym", Priority: "sometime"}
	if err := entry.Validate(); err == nil {
		t.Fatalf("expected error for bad priority")
	}
}
