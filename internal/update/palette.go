package update

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/plandeck/plandeck/internal/app"
	"github.com/plandeck/plandeck/internal/commands"
	"github.com/plandeck/plandeck/internal/model"
	"github.com/plandeck/plandeck/internal/store"
	"github.com/plandeck/plandeck/internal/views"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
	return m, nil
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m.CurrentScreen = ScreenActivities
			next := m.addActivityFromArgs(a)
			if next.Status.IsError {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: next.Status.Text}
			}
			m = next
			return commands.Result{Message: fmt.Sprintf("added: %s", a.Title)}, nil
		},
		Done: func(d commands.DoneArgs) (commands.Result, error) {
			a, ok := m.resolveActivityTarget(d.Target)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no activity matches " + d.Target}
			}
			if err := m.State.ToggleActivity(m.ctx, a.ID); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("toggled: %s", a.Title)}, nil
		},
		Del: func(d commands.DelArgs) (commands.Result, error) {
			a, ok := m.resolveActivityTarget(d.Target)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no activity matches " + d.Target}
			}
			if err := m.State.DeleteActivity(m.ctx, a.ID); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("deleted: %s", a.Title)}, nil
		},
		Due: func(d commands.DueArgs) (commands.Result, error) {
			a, ok := m.resolveActivityTarget(d.Target)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no activity matches " + d.Target}
			}
			a.DueDate = d.Date
			a.DueTime = d.Time
			if err := m.State.UpdateActivity(m.ctx, a); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("deadline set: %s due %s", a.Title, d.Date)}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			tab, ok := tabByName(s.View)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "unknown view: " + s.View}
			}
			m.CurrentScreen = ScreenActivities
			m.Activities.Tab = tab
			m.Activities.Cursor = 0
			return commands.Result{Message: "showing " + s.View}, nil
		},
		Note: func(n commands.NoteArgs) (commands.Result, error) {
			if _, err := m.State.AddNote(m.ctx, n.Source); err != nil {
				return commands.Result{}, err
			}
			m.CurrentScreen = ScreenNotes
			return commands.Result{Message: "note added"}, nil
		},
		Theme: func(t commands.ThemeArgs) (commands.Result, error) {
			if err := m.State.SetTheme(m.ctx, model.Theme(t.Name)); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "theme set to " + t.Name}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message}
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m
}

func (m Model) addActivityFromArgs(a commands.AddArgs) Model {
	added, err := m.State.AddActivity(m.ctx, app.NewActivityInput{
		Title:    a.Title,
		Priority: model.Priority(a.Priority),
		DueDate:  a.DueDate,
		DueTime:  a.DueTime,
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: fmt.Sprintf("added: %s", added.Title)}
	return m
}

// resolveActivityTarget accepts a 1-based index into the current tab
// or an activity id prefix.
func (m Model) resolveActivityTarget(target string) (model.Activity, bool) {
	items := m.currentActivities()
	if idx, err := strconv.Atoi(target); err == nil {
		if idx >= 1 && idx <= len(items) {
			return items[idx-1], true
		}
		return model.Activity{}, false
	}
	for _, a := range items {
		if strings.HasPrefix(a.ID, target) {
			return a, true
		}
	}
	return model.Activity{}, false
}

func tabByName(name string) (store.ViewName, bool) {
	switch name {
	case "open":
		return store.ViewOpen, true
	case "completed", "done":
		return store.ViewCompleted, true
	case "deadline", "with_deadline":
		return store.ViewWithDeadline, true
	case "priority", "with_priority":
		return store.ViewWithPriority, true
	default:
		return "", false
	}
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}
