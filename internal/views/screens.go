package views

import (
	"fmt"
	"strings"
)

type ActivityItemData struct {
	ID       string
	Title    string
	Priority string
	DueDate  string
	DueTime  string
	Checked  bool
	Edited   bool
}

type ActivitiesPanelData struct {
	Tab        string
	Tabs       []string
	ListView   string
	Items      []ActivityItemData
	SelectedID string
	QuickAdd   string
}

type ScheduleEntryData struct {
	ID       string
	Title    string
	Body     string
	Priority string
}

type SchedulePanelData struct {
	Day        string
	TableView  string
	QuickAdd   string
	Entries    []ScheduleEntryData
	SelectedID string
}

type NoteItemData struct {
	ID      string
	Preview string
}

type NotesPanelData struct {
	Items      []NoteItemData
	SelectedID string
	EditorView string
	Editing    bool
}

type FileItemData struct {
	ID   string
	Name string
	URI  string
}

type FilesPanelData struct {
	Items      []FileItemData
	SelectedID string
}

type ScansPanelData struct {
	Items []string
}

type HelpPanelData struct {
	CurrentScreen string
	Bindings      []string
	HelpView      string
}

type NotePreviewData struct {
	SelectedID  string
	PreviewView string
	SourceLines int
}

func RenderActivitiesPanel(data ActivitiesPanelData) string {
	var b strings.Builder
	b.WriteString("activities:\n")
	tabs := make([]string, 0, len(data.Tabs))
	for _, tab := range data.Tabs {
		if tab == data.Tab {
			tabs = append(tabs, "["+tab+"]")
		} else {
			tabs = append(tabs, tab)
		}
	}
	b.WriteString("tabs: " + strings.Join(tabs, " ") + "\n")
	if data.QuickAdd != "" {
		b.WriteString(data.QuickAdd + "\n")
	}
	b.WriteString("actions: [a]add [space]toggle [d]delete [tab]view [J/K]reorder\n")
	if data.ListView != "" {
		b.WriteString(data.ListView + "\n")
	}
	if len(data.Items) == 0 {
		b.WriteString("(empty)")
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		cursor := " "
		if item.ID == data.SelectedID {
			cursor = ">"
		}
		check := "[ ]"
		if item.Checked {
			check = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s", cursor, check, priorityBadge(item.Priority), item.Title))
		if item.DueDate != "" {
			b.WriteString(" due:" + item.DueDate)
			if item.DueTime != "" {
				b.WriteString(" " + item.DueTime)
			}
		}
		if item.Edited {
			b.WriteString(" (edited)")
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderSchedulePanel(data SchedulePanelData) string {
	var b strings.Builder
	b.WriteString("schedule:\n")
	b.WriteString(fmt.Sprintf("day: %s\n", data.Day))
	b.WriteString("actions: [h/l]day [j/k]move [a]add [d]delete [J/K]reorder\n")
	if data.QuickAdd != "" {
		b.WriteString(data.QuickAdd + "\n")
	}
	if data.TableView != "" {
		b.WriteString(data.TableView + "\n")
	}
	if len(data.Entries) == 0 {
		b.WriteString("(no entries)")
		return b.String()
	}
	for _, entry := range data.Entries {
		cursor := " "
		if entry.ID == data.SelectedID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s %s", cursor, priorityBadge(entry.Priority), entry.Title))
		if entry.Body != "" {
			b.WriteString(" | " + entry.Body)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderNotesPanel(data NotesPanelData) string {
	var b strings.Builder
	b.WriteString("notes:\n")
	b.WriteString("actions: [n]new [e]edit [d]delete [j/k]move\n")
	if data.Editing {
		b.WriteString("editor:\n" + data.EditorView)
		return strings.TrimSpace(b.String())
	}
	if len(data.Items) == 0 {
		b.WriteString("(no notes)")
		return b.String()
	}
	for _, item := range data.Items {
		cursor := " "
		if item.ID == data.SelectedID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s\n", cursor, item.Preview))
	}
	return strings.TrimSpace(b.String())
}

func RenderNotePreviewPane(data NotePreviewData) string {
	if strings.TrimSpace(data.SelectedID) == "" {
		return "preview:\n(no selection)"
	}
	return fmt.Sprintf("preview:\nid: %s (%d source lines)\n\n%s",
		data.SelectedID,
		data.SourceLines,
		data.PreviewView,
	)
}

func RenderFilesPanel(data FilesPanelData) string {
	var b strings.Builder
	b.WriteString("files:\n")
	b.WriteString("actions: [j/k]move [d]remove\n")
	if len(data.Items) == 0 {
		b.WriteString("(no files)")
		return b.String()
	}
	for _, item := range data.Items {
		cursor := " "
		if item.ID == data.SelectedID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s -> %s\n", cursor, item.Name, item.URI))
	}
	return strings.TrimSpace(b.String())
}

func RenderScansPanel(data ScansPanelData) string {
	var b strings.Builder
	b.WriteString("recent scans:\n")
	b.WriteString("actions: [c]clear\n")
	if len(data.Items) == 0 {
		b.WriteString("(no scans)")
		return b.String()
	}
	for i, payload := range data.Items {
		b.WriteString(fmt.Sprintf("%2d. %s\n", i+1, payload))
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("\nnotification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s screen:\n%s\n%s",
		strings.ToLower(data.CurrentScreen),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func priorityBadge(priority string) string {
	switch strings.ToLower(priority) {
	case "high":
		return "[RED]"
	case "medium":
		return "[YELLOW]"
	default:
		return "[GREEN]"
	}
}
