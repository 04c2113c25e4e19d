package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/plandeck/plandeck/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.screenBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentScreen: string(m.CurrentScreen),
		Bindings:      plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Activities, Action: "switch to Activities"},
		{Key: m.Keys.Schedule, Action: "switch to Schedule"},
		{Key: m.Keys.Notes, Action: "switch to Notes"},
		{Key: m.Keys.Files, Action: "switch to Files"},
		{Key: m.Keys.Scans, Action: "switch to Scans"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) screenBindings() []KeyBinding {
	switch m.CurrentScreen {
	case ScreenActivities:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "tab", Action: "cycle view"},
			{Key: "a", Action: "quick add"},
			{Key: "space", Action: "toggle done"},
			{Key: "d", Action: "delete"},
			{Key: "J/K", Action: "reorder"},
		}
	case ScreenSchedule:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next day"},
			{Key: "j/k", Action: "move cursor"},
			{Key: "d", Action: "delete entry"},
			{Key: "J/K", Action: "reorder day"},
		}
	case ScreenNotes:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "n", Action: "new note"},
			{Key: "e", Action: "edit note"},
			{Key: "d", Action: "delete note"},
		}
	case ScreenFiles:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "d", Action: "remove file"},
		}
	case ScreenScans:
		return []KeyBinding{
			{Key: "c", Action: "clear scan history"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.screenBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.screenBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
