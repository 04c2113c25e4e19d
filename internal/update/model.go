package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/plandeck/plandeck/internal/app"
	"github.com/plandeck/plandeck/internal/model"
	"github.com/plandeck/plandeck/internal/notify"
	"github.com/plandeck/plandeck/internal/scheduler"
	"github.com/plandeck/plandeck/internal/store"
)

type Screen string

const (
	ScreenActivities Screen = "Activities"
	ScreenSchedule   Screen = "Schedule"
	ScreenNotes      Screen = "Notes"
	ScreenFiles      Screen = "Files"
	ScreenScans      Screen = "Scans"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Activities string
	Schedule   string
	Notes      string
	Files      string
	Scans      string
	Help       string
	Quit       string
}

type ActivitiesState struct {
	Tab         store.ViewName
	Cursor      int
	CaptureMode bool
}

type ScheduleState struct {
	Day         model.Weekday
	Cursor      int
	CaptureMode bool
}

type NotesState struct {
	Cursor    int
	Editing   bool
	EditingID string
}

type FilesState struct {
	Cursor int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	State         *app.State
	CurrentScreen Screen
	Activities    ActivitiesState
	Schedule      ScheduleState
	Notes         NotesState
	Files         FilesState
	Palette       CommandPaletteState
	Scheduler     *scheduler.Engine
	NoticeLog     []scheduler.Notice
	HelpVisible   bool
	DesktopOn     bool
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	ctx      context.Context
	notifier notify.Notifier

	// Bubble components used for rich TUI controls
	activityList  list.Model
	scheduleTable table.Model
	quickAddInput textinput.Model
	commandInput  textinput.Model
	noteArea      textarea.Model
	noteViewport  viewport.Model
	helpModel     help.Model
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type SwitchScreenMsg struct {
	Screen Screen
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type NoticeDueMsg struct {
	Notice scheduler.Notice
}

func NewModel(state *app.State) Model {
	m := Model{
		State:         state,
		CurrentScreen: ScreenActivities,
		Activities:    ActivitiesState{Tab: store.ViewOpen},
		Schedule:      ScheduleState{Day: weekdayToday(time.Now())},
		ctx:           context.Background(),
		notifier:      notify.NoopNotifier{},
		Keys: GlobalKeyMap{
			Activities: "1",
			Schedule:   "2",
			Notes:      "3",
			Files:      "4",
			Scans:      "5",
			Help:       "?",
			Quit:       "q",
		},
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func NewModelWithRuntime(state *app.State, engine *scheduler.Engine, notifier notify.Notifier, desktopOn bool) Model {
	m := NewModel(state)
	m.Scheduler = engine
	m.DesktopOn = desktopOn
	if notifier != nil {
		m.notifier = notifier
	}
	return m
}

func (m *Model) initBubbleComponents() {
	m.activityList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.activityList.Title = "Activities (list)"
	m.activityList.SetShowHelp(false)
	m.activityList.SetFilteringEnabled(false)

	cols := []table.Column{
		{Title: "Pri", Width: 8},
		{Title: "Title", Width: 26},
		{Title: "Detail", Width: 18},
	}
	m.scheduleTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.quickAddInput = textinput.New()
	m.quickAddInput.Prompt = "add> "
	m.quickAddInput.CharLimit = 256
	m.quickAddInput.Width = 42

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.noteArea = textarea.New()
	m.noteArea.SetWidth(54)
	m.noteArea.SetHeight(8)
	m.noteArea.ShowLineNumbers = false
	m.noteArea.Placeholder = "Note (markdown)"

	m.helpModel = help.New()
	m.noteViewport = viewport.New(54, 12)
}

func (m *Model) syncBubbleData() {
	items := m.currentActivities()
	listItems := make([]list.Item, 0, len(items))
	for _, a := range items {
		desc := string(a.Priority)
		if a.HasDeadline() {
			desc += " due " + a.DueDate
		}
		listItems = append(listItems, listItem{title: a.Title, description: desc})
	}
	m.activityList.SetItems(listItems)
	if len(listItems) > 0 && m.Activities.Cursor < len(listItems) {
		m.activityList.Select(m.Activities.Cursor)
	}

	entries := m.State.Schedule.Day(m.Schedule.Day)
	rows := make([]table.Row, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, table.Row{string(entry.Priority), entry.Title, entry.Body})
	}
	m.scheduleTable.SetRows(rows)
	if len(rows) > 0 && m.Schedule.Cursor < len(rows) {
		m.scheduleTable.SetCursor(m.Schedule.Cursor)
	}

	if note, ok := m.currentNote(); ok {
		m.noteViewport.SetContent(note.Rendered)
	} else {
		m.noteViewport.SetContent("")
	}
}

func (m Model) currentActivities() []model.Activity {
	return m.State.Activities.View(m.Activities.Tab)
}

func (m Model) currentActivity() (model.Activity, bool) {
	items := m.currentActivities()
	if m.Activities.Cursor < 0 || m.Activities.Cursor >= len(items) {
		return model.Activity{}, false
	}
	return items[m.Activities.Cursor], true
}

func (m Model) currentScheduleEntry() (model.ScheduleEntry, bool) {
	entries := m.State.Schedule.Day(m.Schedule.Day)
	if m.Schedule.Cursor < 0 || m.Schedule.Cursor >= len(entries) {
		return model.ScheduleEntry{}, false
	}
	return entries[m.Schedule.Cursor], true
}

func (m Model) currentNote() (model.Note, bool) {
	notes := m.State.Notes.All()
	if m.Notes.Cursor < 0 || m.Notes.Cursor >= len(notes) {
		return model.Note{}, false
	}
	return notes[m.Notes.Cursor], true
}

func (m Model) currentFile() (model.FileRef, bool) {
	files := m.State.Files.All()
	if m.Files.Cursor < 0 || m.Files.Cursor >= len(files) {
		return model.FileRef{}, false
	}
	return files[m.Files.Cursor], true
}

func weekdayToday(now time.Time) model.Weekday {
	switch now.Weekday() {
	case time.Tuesday:
		return model.Tuesday
	case time.Wednesday:
		return model.Wednesday
	case time.Thursday:
		return model.Thursday
	case time.Friday:
		return model.Friday
	case time.Saturday:
		return model.Saturday
	case time.Sunday:
		return model.Sunday
	default:
		return model.Monday
	}
}
