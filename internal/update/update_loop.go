package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/plandeck/plandeck/internal/scheduler"
	"github.com/plandeck/plandeck/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Scheduler != nil {
		return waitForNoticeCmd(m.Scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed)
		}
		if m.Notes.Editing {
			return m.handleNoteEditorKey(typed)
		}
		if m.Activities.CaptureMode {
			return m.handleQuickAddKey(typed)
		}
		if m.Schedule.CaptureMode {
			return m.handleScheduleAddKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			cmd := m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active"}
			return m, cmd
		case m.Keys.Activities:
			m.CurrentScreen = ScreenActivities
			return m, nil
		case m.Keys.Schedule:
			m.CurrentScreen = ScreenSchedule
			return m, nil
		case m.Keys.Notes:
			m.CurrentScreen = ScreenNotes
			return m, nil
		case m.Keys.Files:
			m.CurrentScreen = ScreenFiles
			return m, nil
		case m.Keys.Scans:
			m.CurrentScreen = ScreenScans
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentScreen {
		case ScreenActivities:
			return m.handleActivitiesKey(typed)
		case ScreenSchedule:
			return m.handleScheduleKey(typed)
		case ScreenNotes:
			return m.handleNotesKey(typed)
		case ScreenFiles:
			return m.handleFilesKey(typed), nil
		case ScreenScans:
			return m.handleScansKey(typed), nil
		}
	case SwitchScreenMsg:
		if isKnownScreen(typed.Screen) {
			m.CurrentScreen = typed.Screen
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case NoticeDueMsg:
		return m.onNoticeDue(typed.Notice)
	}

	return m, nil
}

func (m Model) View() string {
	m.syncBubbleData()
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	rightPane := ""
	switch m.CurrentScreen {
	case ScreenActivities:
		leftPane = m.renderActivitiesScreen()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ScreenSchedule:
		leftPane = m.renderScheduleScreen()
		rightPane = m.renderHelpIfVisible()
	case ScreenNotes:
		leftPane = m.renderNotesScreen()
		rightPane = m.renderNotePreview() + m.renderHelpIfVisible()
	case ScreenFiles:
		leftPane = m.renderFilesScreen()
		rightPane = m.renderHelpIfVisible()
	case ScreenScans:
		leftPane = m.renderScansScreen()
		rightPane = m.renderHelpIfVisible()
	}

	notification := ""
	if len(m.NoticeLog) > 0 {
		last := m.NoticeLog[len(m.NoticeLog)-1]
		notification = views.RenderNotification(string(last.Kind), last.Title)
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("plandeck | screen: %s", m.CurrentScreen),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: notification,
		Footer: fmt.Sprintf("keys: %s activities | %s schedule | %s notes | %s files | %s scans | / cmd | %s help | %s quit",
			m.Keys.Activities, m.Keys.Schedule, m.Keys.Notes, m.Keys.Files, m.Keys.Scans, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownScreen(s Screen) bool {
	switch s {
	case ScreenActivities, ScreenSchedule, ScreenNotes, ScreenFiles, ScreenScans:
		return true
	default:
		return false
	}
}

func waitForNoticeCmd(ch <-chan scheduler.Notice) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return NoticeDueMsg{Notice: n}
	}
}

func (m Model) onNoticeDue(n scheduler.Notice) (tea.Model, tea.Cmd) {
	m.NoticeLog = append(m.NoticeLog, n)
	if len(m.NoticeLog) > 20 {
		m.NoticeLog = m.NoticeLog[len(m.NoticeLog)-20:]
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s: %s", n.Title, n.Body)}
	if m.DesktopOn && m.notifier != nil {
		_ = m.notifier.Send(n)
	}
	if m.Scheduler != nil {
		return m, waitForNoticeCmd(m.Scheduler.C())
	}
	return m, nil
}
