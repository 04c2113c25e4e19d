package store

import (
	"fmt"

	"github.com/plandeck/plandeck/internal/model"
)

// ScheduleAction is a state transition on the weekly schedule. Unknown
// action types panic.
type ScheduleAction interface {
	scheduleAction()
}

type AddEntry struct {
	Day   model.Weekday
	Entry model.ScheduleEntry
}

type UpdateEntry struct {
	Day   model.Weekday
	Entry model.ScheduleEntry
}

type DeleteEntry struct {
	Day model.Weekday
	ID  string
}

// ReorderDay replaces one day's entry order wholesale.
type ReorderDay struct {
	Day     model.Weekday
	Entries []model.ScheduleEntry
}

func (AddEntry) scheduleAction()    {}
func (UpdateEntry) scheduleAction() {}
func (DeleteEntry) scheduleAction() {}
func (ReorderDay) scheduleAction()  {}

// Schedule maps weekday names to ordered entry lists. Entries belong to
// exactly one day; moving an entry across days is not an operation this
// store offers.
type Schedule struct {
	days map[model.Weekday][]model.ScheduleEntry
}

func NewSchedule() *Schedule {
	return &Schedule{days: make(map[model.Weekday][]model.ScheduleEntry)}
}

func (s *Schedule) Apply(action ScheduleAction) {
	switch a := action.(type) {
	case AddEntry:
		day := s.bucket(a.Day)
		s.days[day] = append(s.days[day], a.Entry)
	case UpdateEntry:
		day := s.bucket(a.Day)
		for i, existing := range s.days[day] {
			if existing.ID == a.Entry.ID {
				s.days[day][i] = a.Entry
				return
			}
		}
	case DeleteEntry:
		day := s.bucket(a.Day)
		for i, existing := range s.days[day] {
			if existing.ID == a.ID {
				s.days[day] = append(s.days[day][:i], s.days[day][i+1:]...)
				return
			}
		}
	case ReorderDay:
		day := s.bucket(a.Day)
		next := make([]model.ScheduleEntry, len(a.Entries))
		copy(next, a.Entries)
		s.days[day] = next
	default:
		panic(fmt.Sprintf("store: unknown schedule action %T", action))
	}
}

// Day returns the named day's entries; a day never written reads as an
// empty list.
func (s *Schedule) Day(day model.Weekday) []model.ScheduleEntry {
	entries := s.days[s.bucket(day)]
	out := make([]model.ScheduleEntry, len(entries))
	copy(out, entries)
	return out
}

func (s *Schedule) Len() int {
	total := 0
	for _, entries := range s.days {
		total += len(entries)
	}
	return total
}

func (s *Schedule) bucket(day model.Weekday) model.Weekday {
	if !day.IsValid() {
		panic(fmt.Sprintf("store: unknown weekday %q", day))
	}
	if _, ok := s.days[day]; !ok {
		s.days[day] = make([]model.ScheduleEntry, 0)
	}
	return day
}

// ScheduleState is the persisted shape of the store.
type ScheduleState map[model.Weekday][]model.ScheduleEntry

func (s *Schedule) Snapshot() ScheduleState {
	out := make(ScheduleState, len(s.days))
	for day, entries := range s.days {
		copied := make([]model.ScheduleEntry, len(entries))
		copy(copied, entries)
		out[day] = copied
	}
	return out
}

func RestoreSchedule(state ScheduleState) *Schedule {
	s := NewSchedule()
	for day, entries := range state {
		if !day.IsValid() {
			continue
		}
		copied := make([]model.ScheduleEntry, len(entries))
		copy(copied, entries)
		s.days[day] = copied
	}
	return s
}
