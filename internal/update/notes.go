package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/plandeck/plandeck/internal/views"
)

func (m Model) handleNotesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.Notes.Cursor > 0 {
			m.Notes.Cursor--
		}
	case "down", "j":
		if m.Notes.Cursor < m.State.Notes.Len()-1 {
			m.Notes.Cursor++
		}
	case "n":
		m.Notes.Editing = true
		m.Notes.EditingID = ""
		m.noteArea.SetValue("")
		cmd := m.noteArea.Focus()
		m.Status = StatusBar{Text: "new note: ctrl+s save, esc cancel"}
		return m, cmd
	case "e":
		if note, ok := m.currentNote(); ok {
			m.Notes.Editing = true
			m.Notes.EditingID = note.ID
			m.noteArea.SetValue(note.Source)
			cmd := m.noteArea.Focus()
			m.Status = StatusBar{Text: "edit note: ctrl+s save, esc cancel"}
			return m, cmd
		}
	case "d":
		if note, ok := m.currentNote(); ok {
			if err := m.State.DeleteNote(m.ctx, note.ID); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
			} else {
				m.Status = StatusBar{Text: "note deleted"}
				m.clampNoteCursor()
			}
		}
	}
	return m, nil
}

func (m Model) handleNoteEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Notes.Editing = false
		m.noteArea.Blur()
		m.Status = StatusBar{Text: "note edit cancelled"}
		return m, nil
	case "ctrl+s":
		source := m.noteArea.Value()
		m.Notes.Editing = false
		m.noteArea.Blur()
		if strings.TrimSpace(source) == "" {
			m.Status = StatusBar{Text: "empty note discarded"}
			return m, nil
		}
		var err error
		if m.Notes.EditingID == "" {
			_, err = m.State.AddNote(m.ctx, source)
		} else {
			err = m.State.UpdateNote(m.ctx, m.Notes.EditingID, source)
		}
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		} else {
			m.Status = StatusBar{Text: "note saved"}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.noteArea, cmd = m.noteArea.Update(msg)
	return m, cmd
}

func (m *Model) clampNoteCursor() {
	if n := m.State.Notes.Len(); m.Notes.Cursor >= n && n > 0 {
		m.Notes.Cursor = n - 1
	} else if n == 0 {
		m.Notes.Cursor = 0
	}
}

func (m Model) renderNotesScreen() string {
	data := views.NotesPanelData{Editing: m.Notes.Editing}
	if m.Notes.Editing {
		data.EditorView = m.noteArea.View()
		return views.RenderNotesPanel(data)
	}
	if selected, ok := m.currentNote(); ok {
		data.SelectedID = selected.ID
	}
	for _, note := range m.State.Notes.All() {
		data.Items = append(data.Items, views.NoteItemData{
			ID:      note.ID,
			Preview: notePreviewLine(note.Source),
		})
	}
	return views.RenderNotesPanel(data)
}

func (m Model) renderNotePreview() string {
	note, ok := m.currentNote()
	if !ok {
		return views.RenderNotePreviewPane(views.NotePreviewData{})
	}
	return views.RenderNotePreviewPane(views.NotePreviewData{
		SelectedID:  note.ID,
		PreviewView: m.noteViewport.View(),
		SourceLines: strings.Count(note.Source, "\n") + 1,
	})
}

func notePreviewLine(source string) string {
	line := strings.TrimSpace(source)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimLeft(line, "# ")
	if runes := []rune(line); len(runes) > 48 {
		line = string(runes[:48]) + "..."
	}
	if line == "" {
		line = "(empty note)"
	}
	return line
}
