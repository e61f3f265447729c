package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/gobject-bridge/gio"
	"github.com/wippyai/gobject-bridge/glib"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// pollInterval is how often the editor drains the GLib main context, so
// changes made by other processes show up.
const pollInterval = 200 * time.Millisecond

type editorState int

const (
	stateBrowse editorState = iota
	stateEdit
)

type keyRow struct {
	name     string
	typ      string
	value    string
	writable bool
}

// editorModel runs entirely on the goroutine that called tea.Program.Run;
// native calls are never made from commands.
type editorModel struct {
	settings *gio.Settings
	handler  glib.SignalHandlerID
	schemaID string
	rows     []keyRow
	selected int
	input    textinput.Model
	state    editorState
	status   string
	err      error
}

type pollMsg struct{}

func poll() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg { return pollMsg{} })
}

func newEditorModel(s *gio.Settings) *editorModel {
	m := &editorModel{settings: s, schemaID: s.SchemaID()}
	schema := s.SettingsSchema()
	defer schema.Release()
	for _, name := range schema.ListKeys() {
		k, err := schema.Key(name)
		if err != nil {
			continue
		}
		m.rows = append(m.rows, keyRow{name: name, typ: k.ValueType()})
		k.Release()
	}
	for i := range m.rows {
		m.refresh(i)
	}
	m.handler = s.ConnectChanged("", func(_ *gio.Settings, key string) {
		for i := range m.rows {
			if m.rows[i].name == key {
				m.refresh(i)
			}
		}
	})
	return m
}

func (m *editorModel) refresh(i int) {
	r := &m.rows[i]
	r.writable = m.settings.IsWritable(r.name)
	v, err := m.settings.Value(r.name)
	if err != nil {
		r.value = err.Error()
		return
	}
	r.value = v.Print(false)
	v.Release()
}

func (m *editorModel) Init() tea.Cmd {
	return poll()
}

func (m *editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pollMsg:
		for m.settings.Runtime().Iterate(false) {
		}
		return m, poll()

	case tea.KeyMsg:
		if m.state == stateEdit {
			return m.updateEdit(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			glib.Disconnect(m.settings, m.handler)
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.rows)-1 {
				m.selected++
			}
		case "enter":
			if len(m.rows) == 0 {
				break
			}
			r := m.rows[m.selected]
			if !r.writable {
				m.status, m.err = "", fmt.Errorf("%s is not writable", r.name)
				break
			}
			ti := textinput.New()
			ti.Prompt = r.name + ": "
			ti.Placeholder = r.typ
			ti.SetValue(r.value)
			ti.Width = 50
			ti.Focus()
			m.input = ti
			m.state = stateEdit
			m.status, m.err = "", nil
		case "r":
			if len(m.rows) == 0 {
				break
			}
			name := m.rows[m.selected].name
			m.err = m.settings.Reset(name)
			if m.err == nil {
				gio.SettingsSync(m.settings.Runtime())
				m.status = "reset " + name
			}
		}
	}
	return m, nil
}

func (m *editorModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = stateBrowse
		return m, nil
	case "enter":
		r := m.rows[m.selected]
		m.err = setText(m.settings, r.name, m.input.Value())
		if m.err == nil {
			m.status = "set " + r.name
			m.state = stateBrowse
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *editorModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("settingsctl"))
	b.WriteString(" ")
	b.WriteString(m.schemaID)
	b.WriteString("\n\n")

	width := 0
	for _, r := range m.rows {
		width = max(width, len(r.name))
	}
	for i, r := range m.rows {
		line := fmt.Sprintf("%-*s  %s", width, r.name, r.value)
		if !r.writable {
			line += " (locked)"
		}
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + keyStyle.Render(fmt.Sprintf("%-*s", width, r.name)) + "  " + valueStyle.Render(r.value))
			if !r.writable {
				b.WriteString(dimStyle.Render(" (locked)"))
			}
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.state == stateEdit {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	}
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	case m.status != "":
		b.WriteString(m.status)
		b.WriteString("\n\n")
	}

	if m.state == stateEdit {
		b.WriteString(helpStyle.Render("enter apply • esc cancel"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓ select • enter edit • r reset • q quit"))
	}
	return b.String()
}

func runInteractive(a *app, schemaID string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("-i needs a terminal")
	}
	s, err := a.settings(schemaID)
	if err != nil {
		return err
	}
	defer s.Release()

	p := tea.NewProgram(newEditorModel(s), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
