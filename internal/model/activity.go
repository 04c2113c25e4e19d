package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidPriority = errors.New("model: invalid activity priority")
	ErrInvalidDueDate  = errors.New("model: invalid due date")
	ErrInvalidDueTime  = errors.New("model: invalid due time")
)

// Human-entered deadline fields keep the day/month/year form the app
// presents to the user; parsing happens at the edges.
const (
	DueDateLayout = "02/01/2006"
	DueTimeLayout = "15:04"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Weight orders priorities for the priority view: high outranks medium
// outranks low.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// NotificationRefs holds the opaque scheduler handles for an activity's
// pending deadline notifications. An empty string means no notification
// is scheduled for that slot.
type NotificationRefs struct {
	AtDeadline string `json:"at_deadline,omitempty"`
	AtDayStart string `json:"at_day_start,omitempty"`
}

func (r NotificationRefs) IsZero() bool {
	return r.AtDeadline == "" && r.AtDayStart == ""
}

type Activity struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Body          string           `json:"body"`
	Priority      Priority         `json:"priority"`
	CreatedAt     time.Time        `json:"created_at"`
	Edited        bool             `json:"edited"`
	DueDate       string           `json:"due_date,omitempty"`
	DueTime       string           `json:"due_time,omitempty"`
	Checked       bool             `json:"checked"`
	Notifications NotificationRefs `json:"notifications,omitzero"`
}

// HasDeadline reports whether a delivery day has been entered. Membership
// in the deadline view is governed by this alone, not by checked state.
func (a Activity) HasDeadline() bool {
	return strings.TrimSpace(a.DueDate) != ""
}

// DueAt resolves the human-entered deadline fields to an instant in loc.
// A missing time component means the start of the day. The second return
// is false when no deadline is set or the fields do not parse.
func (a Activity) DueAt(loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	date := strings.TrimSpace(a.DueDate)
	if date == "" {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation(DueDateLayout, date, loc)
	if err != nil {
		return time.Time{}, false
	}
	clock := strings.TrimSpace(a.DueTime)
	if clock == "" {
		return day, true
	}
	t, err := time.Parse(DueTimeLayout, clock)
	if err != nil {
		return day, true
	}
	return day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), true
}

func (a Activity) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New("model: activity id is required")
	}
	if strings.TrimSpace(a.Title) == "" {
		return errors.New("model: activity title is required")
	}
	if !a.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, a.Priority)
	}
	if a.CreatedAt.IsZero() {
		return errors.New("model: activity created_at is required")
	}
	if date := strings.TrimSpace(a.DueDate); date != "" {
		if _, err := time.Parse(DueDateLayout, date); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDueDate, a.DueDate)
		}
	}
	if clock := strings.TrimSpace(a.DueTime); clock != "" {
		if _, err := time.Parse(DueTimeLayout, clock); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDueTime, a.DueTime)
		}
	}
	return nil
}
