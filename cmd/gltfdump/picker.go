package main

import (
	"github.com/Carmen-Shannon/oxy-gltf/engine/loader"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// picker is a loader.FilePicker backed by a bubbles file browser.
type picker struct {
	dir string
}

var _ loader.FilePicker = &picker{}

func newPicker(dir string) *picker {
	return &picker{dir: dir}
}

// PickFile runs the browser and returns the chosen path, or "" if the user quit.
func (p *picker) PickFile() (string, error) {
	final, err := tea.NewProgram(newPickerModel(p.dir), tea.WithAltScreen()).Run()
	if err != nil {
		return "", err
	}
	return final.(pickerModel).selected, nil
}

type pickerModel struct {
	fp       filepicker.Model
	selected string
}

func newPickerModel(dir string) pickerModel {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".gltf", ".glb"}
	fp.CurrentDirectory = dir
	return pickerModel{fp: fp}
}

func (m pickerModel) Init() tea.Cmd {
	return m.fp.Init()
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.fp, cmd = m.fp.Update(msg)

	if ok, path := m.fp.DidSelectFile(msg); ok {
		m.selected = path
		return m, tea.Quit
	}
	return m, cmd
}

func (m pickerModel) View() string {
	return titleStyle.Render("Select a glTF asset") + "\n\n" +
		m.fp.View() + "\n" +
		helpStyle.Render("enter: open • q: quit")
}
