package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/plandeck/plandeck/internal/commands"
	"github.com/plandeck/plandeck/internal/store"
	"github.com/plandeck/plandeck/internal/views"
)

func activityTabs() []store.ViewName {
	return []store.ViewName{store.ViewOpen, store.ViewCompleted, store.ViewWithDeadline, store.ViewWithPriority}
}

func (m Model) handleActivitiesKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.Activities.Cursor > 0 {
			m.Activities.Cursor--
		}
	case "down", "j":
		if m.Activities.Cursor < len(m.currentActivities())-1 {
			m.Activities.Cursor++
		}
	case "tab":
		m.Activities.Tab = nextTab(m.Activities.Tab)
		m.Activities.Cursor = 0
	case "shift+tab":
		m.Activities.Tab = prevTab(m.Activities.Tab)
		m.Activities.Cursor = 0
	case "a":
		m.Activities.CaptureMode = true
		cmd := m.quickAddInput.Focus()
		m.quickAddInput.SetValue("")
		m.Status = StatusBar{Text: "quick add: title [due:DD/MM/YYYY] [at:HH:MM] [prio:high]"}
		return m, cmd
	case " ", "enter":
		if a, ok := m.currentActivity(); ok {
			if err := m.State.ToggleActivity(m.ctx, a.ID); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
			} else {
				m.Status = StatusBar{Text: fmt.Sprintf("toggled: %s", a.Title)}
				m.clampActivityCursor()
			}
		}
	case "d":
		if a, ok := m.currentActivity(); ok {
			if err := m.State.DeleteActivity(m.ctx, a.ID); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
			} else {
				m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", a.Title)}
				m.clampActivityCursor()
			}
		}
	case "J":
		m = m.moveActivity(1)
	case "K":
		m = m.moveActivity(-1)
	}
	return m, nil
}

func (m Model) handleQuickAddKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Activities.CaptureMode = false
		m.quickAddInput.Blur()
		m.Status = StatusBar{Text: "quick add cancelled"}
	case "enter":
		raw := strings.TrimSpace(m.quickAddInput.Value())
		m.Activities.CaptureMode = false
		m.quickAddInput.Blur()
		m.quickAddInput.SetValue("")
		if raw == "" {
			return m, nil
		}
		cmd, err := commands.Parse("add " + raw)
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m = m.addActivityFromArgs(*cmd.Add)
	default:
		var cmd tea.Cmd
		m.quickAddInput, cmd = m.quickAddInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) moveActivity(delta int) Model {
	items := m.currentActivities()
	from := m.Activities.Cursor
	to := from + delta
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return m
	}
	ids := make([]string, len(items))
	for i, a := range items {
		ids[i] = a.ID
	}
	ids[from], ids[to] = ids[to], ids[from]
	if err := m.State.ReorderActivities(m.ctx, m.Activities.Tab, ids); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Activities.Cursor = to
	return m
}

func (m *Model) clampActivityCursor() {
	if n := len(m.currentActivities()); m.Activities.Cursor >= n && n > 0 {
		m.Activities.Cursor = n - 1
	} else if n == 0 {
		m.Activities.Cursor = 0
	}
}

func nextTab(tab store.ViewName) store.ViewName {
	tabs := activityTabs()
	for i, t := range tabs {
		if t == tab {
			return tabs[(i+1)%len(tabs)]
		}
	}
	return tabs[0]
}

func prevTab(tab store.ViewName) store.ViewName {
	tabs := activityTabs()
	for i, t := range tabs {
		if t == tab {
			return tabs[(i+len(tabs)-1)%len(tabs)]
		}
	}
	return tabs[0]
}

func (m Model) renderActivitiesScreen() string {
	items := m.currentActivities()
	data := views.ActivitiesPanelData{
		Tab: string(m.Activities.Tab),
	}
	for _, tab := range activityTabs() {
		data.Tabs = append(data.Tabs, string(tab))
	}
	if selected, ok := m.currentActivity(); ok {
		data.SelectedID = selected.ID
	}
	if m.Activities.CaptureMode {
		data.QuickAdd = m.quickAddInput.View()
	}
	data.ListView = m.activityList.View()
	for _, a := range items {
		data.Items = append(data.Items, views.ActivityItemData{
			ID:       a.ID,
			Title:    a.Title,
			Priority: string(a.Priority),
			DueDate:  a.DueDate,
			DueTime:  a.DueTime,
			Checked:  a.Checked,
			Edited:   a.Edited,
		})
	}
	return views.RenderActivitiesPanel(data)
}
