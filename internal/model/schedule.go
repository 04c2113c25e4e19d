package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidWeekday = errors.New("model: invalid weekday")

// Weekday is the bucket name the schedule keys on. Entries belong to
// exactly one weekday.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

func (d Weekday) IsValid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	default:
		return false
	}
}

type ScheduleEntry struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Priority Priority `json:"priority"`
}

func (e ScheduleEntry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("model: schedule entry id is required")
	}
	if strings.TrimSpace(e.Title) == "" {
		return errors.New("model: schedule entry title is required")
	}
	if !e.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, e.Priority)
	}
	return nil
}
