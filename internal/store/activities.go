package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/plandeck/plandeck/internal/model"
)

// ViewName names one of the four derived activity views.
type ViewName string

const (
	ViewOpen         ViewName = "open"
	ViewCompleted    ViewName = "completed"
	ViewWithDeadline ViewName = "with_deadline"
	ViewWithPriority ViewName = "with_priority"
)

func viewNames() []ViewName {
	return []ViewName{ViewOpen, ViewCompleted, ViewWithDeadline, ViewWithPriority}
}

// ActivityAction is a state transition on the activity store. Applying
// an action type the store does not know is a programming error and
// panics.
type ActivityAction interface {
	activityAction()
}

type AddActivity struct {
	Activity model.Activity
}

type UpdateActivity struct {
	Activity model.Activity
}

type DeleteActivity struct {
	ID string
}

// ToggleActivity flips the checked flag and moves the activity between
// the open and completed views.
type ToggleActivity struct {
	ID string
}

// ReorderActivities replaces one view's order wholesale with the
// caller-supplied id order. Sort comparators are not re-run.
type ReorderActivities struct {
	View ViewName
	IDs  []string
}

func (AddActivity) activityAction()       {}
func (UpdateActivity) activityAction()    {}
func (DeleteActivity) activityAction()    {}
func (ToggleActivity) activityAction()    {}
func (ReorderActivities) activityAction() {}

// Activities holds every activity once, keyed by id, plus four
// materialized views as ordered id lists. The views never copy an
// entity; they reference the canonical record.
type Activities struct {
	loc   *time.Location
	items map[string]model.Activity
	views map[ViewName][]string
}

func NewActivities(loc *time.Location) *Activities {
	if loc == nil {
		loc = time.Local
	}
	views := make(map[ViewName][]string, 4)
	for _, v := range viewNames() {
		views[v] = make([]string, 0)
	}
	return &Activities{
		loc:   loc,
		items: make(map[string]model.Activity),
		views: views,
	}
}

func (s *Activities) Apply(action ActivityAction) {
	switch a := action.(type) {
	case AddActivity:
		s.add(a.Activity)
	case UpdateActivity:
		s.update(a.Activity)
	case DeleteActivity:
		s.delete(a.ID)
	case ToggleActivity:
		s.toggle(a.ID)
	case ReorderActivities:
		s.reorder(a.View, a.IDs)
	default:
		panic(fmt.Sprintf("store: unknown activity action %T", action))
	}
}

func (s *Activities) Get(id string) (model.Activity, bool) {
	a, ok := s.items[id]
	return a, ok
}

func (s *Activities) Len() int {
	return len(s.items)
}

// View resolves a view's id order against the canonical table.
func (s *Activities) View(name ViewName) []model.Activity {
	ids, ok := s.views[name]
	if !ok {
		panic(fmt.Sprintf("store: unknown activity view %q", name))
	}
	out := make([]model.Activity, 0, len(ids))
	for _, id := range ids {
		if a, present := s.items[id]; present {
			out = append(out, a)
		}
	}
	return out
}

func (s *Activities) add(a model.Activity) {
	if !a.Priority.IsValid() {
		a.Priority = model.PriorityLow
	}
	s.items[a.ID] = a

	if a.Checked {
		s.appendTo(ViewCompleted, a.ID)
	} else {
		s.appendTo(ViewOpen, a.ID)
	}
	if a.HasDeadline() {
		s.appendTo(ViewWithDeadline, a.ID)
		s.sortDeadlineView()
	}
	s.appendTo(ViewWithPriority, a.ID)
	s.sortPriorityView()
}

func (s *Activities) update(a model.Activity) {
	if _, present := s.items[a.ID]; !present {
		return
	}
	s.items[a.ID] = a

	s.reconcile(a)
	if a.HasDeadline() {
		s.sortDeadlineView()
	}
	s.sortPriorityView()
}

func (s *Activities) delete(id string) {
	if _, present := s.items[id]; !present {
		return
	}
	delete(s.items, id)
	for _, v := range viewNames() {
		s.removeFrom(v, id)
	}
}

func (s *Activities) toggle(id string) {
	a, present := s.items[id]
	if !present {
		return
	}
	a.Checked = !a.Checked
	s.items[id] = a
	s.reconcile(a)
}

func (s *Activities) reorder(view ViewName, ids []string) {
	if _, ok := s.views[view]; !ok {
		panic(fmt.Sprintf("store: unknown activity view %q", view))
	}
	next := make([]string, len(ids))
	copy(next, ids)
	s.views[view] = next
}

// reconcile repairs view membership for a after a field change: exactly
// one of open/completed by checked state, deadline view by field
// presence only, priority view always. Membership is re-established by
// remove-then-reinsert so an entity missing from a view it should be in
// gets added back.
func (s *Activities) reconcile(a model.Activity) {
	want, other := ViewOpen, ViewCompleted
	if a.Checked {
		want, other = ViewCompleted, ViewOpen
	}
	s.removeFrom(other, a.ID)
	if !s.contains(want, a.ID) {
		s.appendTo(want, a.ID)
	}

	if a.HasDeadline() {
		if !s.contains(ViewWithDeadline, a.ID) {
			s.appendTo(ViewWithDeadline, a.ID)
		}
	} else {
		s.removeFrom(ViewWithDeadline, a.ID)
	}

	if !s.contains(ViewWithPriority, a.ID) {
		s.appendTo(ViewWithPriority, a.ID)
	}
}

func (s *Activities) appendTo(view ViewName, id string) {
	s.views[view] = append(s.views[view], id)
}

func (s *Activities) removeFrom(view ViewName, id string) {
	ids := s.views[view]
	for i, existing := range ids {
		if existing == id {
			s.views[view] = append(ids[:i], ids[i+1:]...)
			return
		}
	}
}

func (s *Activities) contains(view ViewName, id string) bool {
	for _, existing := range s.views[view] {
		if existing == id {
			return true
		}
	}
	return false
}

// Sorts must be stable so equal keys keep their relative insertion
// order instead of flickering between renders.
func (s *Activities) sortDeadlineView() {
	ids := s.views[ViewWithDeadline]
	sort.SliceStable(ids, func(i, j int) bool {
		left, _ := s.dueAt(ids[i])
		right, _ := s.dueAt(ids[j])
		return left.Before(right)
	})
}

func (s *Activities) sortPriorityView() {
	ids := s.views[ViewWithPriority]
	sort.SliceStable(ids, func(i, j int) bool {
		return s.weight(ids[i]) > s.weight(ids[j])
	})
}

func (s *Activities) dueAt(id string) (time.Time, bool) {
	a, ok := s.items[id]
	if !ok {
		return time.Time{}, false
	}
	return a.DueAt(s.loc)
}

func (s *Activities) weight(id string) int {
	a, ok := s.items[id]
	if !ok {
		return 0
	}
	return a.Priority.Weight()
}

// ActivitiesState is the persisted shape of the store.
type ActivitiesState struct {
	Items        map[string]model.Activity `json:"items"`
	Open         []string                  `json:"open"`
	Completed    []string                  `json:"completed"`
	WithDeadline []string                  `json:"with_deadline"`
	WithPriority []string                  `json:"with_priority"`
}

func (s *Activities) Snapshot() ActivitiesState {
	items := make(map[string]model.Activity, len(s.items))
	for id, a := range s.items {
		items[id] = a
	}
	return ActivitiesState{
		Items:        items,
		Open:         append([]string(nil), s.views[ViewOpen]...),
		Completed:    append([]string(nil), s.views[ViewCompleted]...),
		WithDeadline: append([]string(nil), s.views[ViewWithDeadline]...),
		WithPriority: append([]string(nil), s.views[ViewWithPriority]...),
	}
}

// RestoreActivities rebuilds a store from a persisted snapshot. Ids in
// a view without a canonical record are dropped; records missing from a
// view they belong to are re-appended. An id listed in both open and
// completed keeps only the bucket its checked state names, so a stale
// snapshot still loads into a consistent store.
func RestoreActivities(state ActivitiesState, loc *time.Location) *Activities {
	s := NewActivities(loc)
	for id, a := range state.Items {
		if a.ID == "" {
			a.ID = id
		}
		s.items[a.ID] = a
	}
	s.views[ViewOpen] = s.knownIDs(state.Open)
	s.views[ViewCompleted] = s.knownIDs(state.Completed)
	s.views[ViewWithDeadline] = s.knownIDs(state.WithDeadline)
	s.views[ViewWithPriority] = s.knownIDs(state.WithPriority)
	for _, a := range s.items {
		s.ensureMembership(a)
	}
	return s
}

func (s *Activities) knownIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := s.items[id]; ok && !containsID(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func (s *Activities) ensureMembership(a model.Activity) {
	want, other := ViewOpen, ViewCompleted
	if a.Checked {
		want, other = ViewCompleted, ViewOpen
	}
	s.removeFrom(other, a.ID)
	if !s.contains(want, a.ID) {
		s.appendTo(want, a.ID)
	}
	if a.HasDeadline() && !s.contains(ViewWithDeadline, a.ID) {
		s.appendTo(ViewWithDeadline, a.ID)
	}
	if !s.contains(ViewWithPriority, a.ID) {
		s.appendTo(ViewWithPriority, a.ID)
	}
}

func containsID(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}
