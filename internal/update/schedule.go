package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/plandeck/plandeck/internal/model"
	"github.com/plandeck/plandeck/internal/views"
)

func (m Model) handleScheduleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.Schedule.Cursor > 0 {
			m.Schedule.Cursor--
		}
	case "down", "j":
		if m.Schedule.Cursor < len(m.State.Schedule.Day(m.Schedule.Day))-1 {
			m.Schedule.Cursor++
		}
	case "left", "h":
		m.Schedule.Day = shiftWeekday(m.Schedule.Day, -1)
		m.Schedule.Cursor = 0
	case "right", "l":
		m.Schedule.Day = shiftWeekday(m.Schedule.Day, 1)
		m.Schedule.Cursor = 0
	case "a":
		m.Schedule.CaptureMode = true
		cmd := m.quickAddInput.Focus()
		m.quickAddInput.SetValue("")
		m.Status = StatusBar{Text: "add entry: title | detail [prio:high]"}
		return m, cmd
	case "d":
		if entry, ok := m.currentScheduleEntry(); ok {
			if err := m.State.DeleteScheduleEntry(m.ctx, m.Schedule.Day, entry.ID); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
			} else {
				m.Status = StatusBar{Text: fmt.Sprintf("removed: %s", entry.Title)}
				m.clampScheduleCursor()
			}
		}
	case "J":
		m = m.moveScheduleEntry(1)
	case "K":
		m = m.moveScheduleEntry(-1)
	}
	return m, nil
}

func (m Model) handleScheduleAddKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Schedule.CaptureMode = false
		m.quickAddInput.Blur()
		m.Status = StatusBar{Text: "add cancelled"}
	case "enter":
		raw := strings.TrimSpace(m.quickAddInput.Value())
		m.Schedule.CaptureMode = false
		m.quickAddInput.Blur()
		m.quickAddInput.SetValue("")
		if raw == "" {
			return m, nil
		}
		title, body, priority := parseScheduleEntryInput(raw)
		entry, err := m.State.AddScheduleEntry(m.ctx, m.Schedule.Day, title, body, priority)
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m.Status = StatusBar{Text: fmt.Sprintf("added to %s: %s", m.Schedule.Day, entry.Title)}
	default:
		var cmd tea.Cmd
		m.quickAddInput, cmd = m.quickAddInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func parseScheduleEntryInput(raw string) (title, body string, priority model.Priority) {
	fields := strings.Fields(raw)
	kept := fields[:0]
	for _, f := range fields {
		if strings.HasPrefix(strings.ToLower(f), "prio:") {
			priority = model.Priority(strings.ToLower(f[len("prio:"):]))
			continue
		}
		kept = append(kept, f)
	}
	raw = strings.Join(kept, " ")
	if i := strings.Index(raw, "|"); i >= 0 {
		return strings.TrimSpace(raw[:i]), strings.TrimSpace(raw[i+1:]), priority
	}
	return strings.TrimSpace(raw), "", priority
}

func (m Model) moveScheduleEntry(delta int) Model {
	entries := m.State.Schedule.Day(m.Schedule.Day)
	from := m.Schedule.Cursor
	to := from + delta
	if from < 0 || from >= len(entries) || to < 0 || to >= len(entries) {
		return m
	}
	entries[from], entries[to] = entries[to], entries[from]
	if err := m.State.ReorderScheduleDay(m.ctx, m.Schedule.Day, entries); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Schedule.Cursor = to
	return m
}

func (m *Model) clampScheduleCursor() {
	if n := len(m.State.Schedule.Day(m.Schedule.Day)); m.Schedule.Cursor >= n && n > 0 {
		m.Schedule.Cursor = n - 1
	} else if n == 0 {
		m.Schedule.Cursor = 0
	}
}

func shiftWeekday(day model.Weekday, delta int) model.Weekday {
	days := model.Weekdays()
	for i, d := range days {
		if d == day {
			return days[(i+delta+len(days))%len(days)]
		}
	}
	return days[0]
}

func (m Model) renderScheduleScreen() string {
	data := views.SchedulePanelData{Day: string(m.Schedule.Day), TableView: m.scheduleTable.View()}
	if m.Schedule.CaptureMode {
		data.QuickAdd = m.quickAddInput.View()
	}
	if selected, ok := m.currentScheduleEntry(); ok {
		data.SelectedID = selected.ID
	}
	for _, entry := range m.State.Schedule.Day(m.Schedule.Day) {
		data.Entries = append(data.Entries, views.ScheduleEntryData{
			ID:       entry.ID,
			Title:    entry.Title,
			Body:     entry.Body,
			Priority: string(entry.Priority),
		})
	}
	return views.RenderSchedulePanel(data)
}
