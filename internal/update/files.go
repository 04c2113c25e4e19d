package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/plandeck/plandeck/internal/views"
)

func (m Model) handleFilesKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Files.Cursor > 0 {
			m.Files.Cursor--
		}
	case "down", "j":
		if m.Files.Cursor < m.State.Files.Len()-1 {
			m.Files.Cursor++
		}
	case "d":
		if ref, ok := m.currentFile(); ok {
			if err := m.State.RemoveFile(m.ctx, ref.ID); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
			} else {
				m.Status = StatusBar{Text: fmt.Sprintf("removed: %s", ref.Name)}
				m.clampFileCursor()
			}
		}
	}
	return m
}

func (m Model) handleScansKey(msg tea.KeyMsg) Model {
	if msg.String() == "c" {
		if err := m.State.ClearScans(m.ctx); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		} else {
			m.Status = StatusBar{Text: "scan history cleared"}
		}
	}
	return m
}

func (m *Model) clampFileCursor() {
	if n := m.State.Files.Len(); m.Files.Cursor >= n && n > 0 {
		m.Files.Cursor = n - 1
	} else if n == 0 {
		m.Files.Cursor = 0
	}
}

func (m Model) renderFilesScreen() string {
	data := views.FilesPanelData{}
	if selected, ok := m.currentFile(); ok {
		data.SelectedID = selected.ID
	}
	for _, ref := range m.State.Files.All() {
		data.Items = append(data.Items, views.FileItemData{ID: ref.ID, Name: ref.Name, URI: ref.URI})
	}
	return views.RenderFilesPanel(data)
}

func (m Model) renderScansScreen() string {
	return views.RenderScansPanel(views.ScansPanelData{Items: m.State.Scans.All()})
}
