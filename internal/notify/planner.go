package notify

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/plandeck/plandeck/internal/model"
	"github.com/plandeck/plandeck/internal/scheduler"
)

// Scheduler is the slice of the engine the planner needs.
type Scheduler interface {
	Schedule(n scheduler.Notice) error
	Cancel(id string)
}

// Planner translates an activity's human-entered deadline into at most
// two scheduled notifications: one at the exact deadline, one at the
// start of the delivery day. Offsets are whole seconds from now; zero
// or negative means "do not schedule", never "fire immediately".
type Planner struct {
	engine Scheduler
	loc    *time.Location
	now    func() time.Time
}

func NewPlanner(engine Scheduler, loc *time.Location) *Planner {
	if loc == nil {
		loc = time.Local
	}
	return &Planner{engine: engine, loc: loc, now: time.Now}
}

// Schedule plans the deadline pair for an activity. Either handle in
// the returned refs is empty when its notification was skipped: no
// parseable date, a deadline already past, or a delivery day already
// begun.
func (p *Planner) Schedule(a model.Activity, ownerName string) model.NotificationRefs {
	var refs model.NotificationRefs

	due, ok := a.DueAt(p.loc)
	if !ok {
		return refs
	}
	now := p.now().In(p.loc)
	owner := capitalize(ownerName)

	if secondsUntil(now, due) > 0 {
		refs.AtDeadline = p.schedule(scheduler.Notice{
			ID:         uuid.NewString(),
			ActivityID: a.ID,
			Kind:       scheduler.NoticeAtDeadline,
			Title:      deadlineTitle(owner),
			Body:       a.Title,
			TriggerAt:  due,
		})
	}

	dayStart := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, p.loc)
	if secondsUntil(now, dayStart) > 0 {
		refs.AtDayStart = p.schedule(scheduler.Notice{
			ID:         uuid.NewString(),
			ActivityID: a.ID,
			Kind:       scheduler.NoticeAtDayStart,
			Title:      dayStartTitle(owner),
			Body:       fmt.Sprintf("%q is due today", a.Title),
			TriggerAt:  dayStart,
		})
	}
	return refs
}

// Cancel revokes both handles. Repeating a cancel, or cancelling a
// handle that already fired, has no further effect.
func (p *Planner) Cancel(refs model.NotificationRefs) {
	if refs.AtDeadline != "" {
		p.engine.Cancel(refs.AtDeadline)
	}
	if refs.AtDayStart != "" {
		p.engine.Cancel(refs.AtDayStart)
	}
}

// Reschedule applies the edit policy: the old pair is cancelled before
// the new pair is planned, so a stale notification can never outlive
// the deadline that produced it.
func (p *Planner) Reschedule(old model.NotificationRefs, a model.Activity, ownerName string) model.NotificationRefs {
	p.Cancel(old)
	return p.Schedule(a, ownerName)
}

func (p *Planner) schedule(n scheduler.Notice) string {
	// Scheduling failures are not fatal; the activity simply has no
	// pending notification.
	if err := p.engine.Schedule(n); err != nil {
		return ""
	}
	return n.ID
}

func secondsUntil(now, target time.Time) int64 {
	return int64(target.Sub(now) / time.Second)
}

func deadlineTitle(owner string) string {
	if owner == "" {
		return "Deadline reached"
	}
	return fmt.Sprintf("%s, your deadline is here", owner)
}

func dayStartTitle(owner string) string {
	if owner == "" {
		return "Deadline today"
	}
	return fmt.Sprintf("%s, a deadline lands today", owner)
}

func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
