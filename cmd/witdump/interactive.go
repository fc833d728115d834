package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/wit-codec/wit"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	recordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type sectionInfo struct {
	kind    wit.SectionKind
	records []string
}

type interactiveModel struct {
	err      error
	filename string
	version  string
	sections []sectionInfo
	filter   textinput.Model
	selected int
	state    modelState
}

type modelState int

const (
	stateSelectSection modelState = iota
	stateViewRecords
)

func newInteractiveModel(filename, version string) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "/ "
	ti.Width = 40
	return &interactiveModel{
		filename: filename,
		version:  version,
		filter:   ti,
		state:    stateSelectSection,
	}
}

type loadedMsg struct {
	err      error
	sections []sectionInfo
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadFile
}

func (m *interactiveModel) loadFile() tea.Msg {
	data, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}

	d, err := wit.NewDecoder(data, m.version)
	if err != nil {
		return loadedMsg{err: err}
	}

	var sections []sectionInfo
	for !d.Empty() {
		s, err := d.Section()
		if err != nil {
			return loadedMsg{err: err}
		}
		info := sectionInfo{kind: s.Kind}
		info.records, err = formatRecords(s)
		if err != nil {
			return loadedMsg{err: err}
		}
		sections = append(sections, info)
	}
	return loadedMsg{sections: sections}
}

func formatRecords(s *wit.Section) ([]string, error) {
	var out []string

	switch s.Kind {
	case wit.SectionType:
		types, err := s.Types.Collect()
		if err != nil {
			return nil, err
		}
		for i, ty := range types {
			out = append(out, fmt.Sprintf("[%d] %s", i, ty))
		}

	case wit.SectionImport:
		imports, err := s.Imports.Collect()
		if err != nil {
			return nil, err
		}
		for i, im := range imports {
			out = append(out, fmt.Sprintf("[%d] %s", i, im))
		}

	case wit.SectionExport:
		exports, err := s.Exports.Collect()
		if err != nil {
			return nil, err
		}
		for i, ex := range exports {
			out = append(out, fmt.Sprintf("[%d] %s", i, ex))
		}

	case wit.SectionFunc:
		funcs, err := s.Funcs.Collect()
		if err != nil {
			return nil, err
		}
		for i, fn := range funcs {
			instrs, err := fn.Instructions().Collect()
			if err != nil {
				return nil, err
			}
			var parts []string
			for _, in := range instrs {
				parts = append(parts, in.String())
			}
			out = append(out, fmt.Sprintf("[%d] type %d: %s", i, fn.TypeIdx, strings.Join(parts, "; ")))
		}
	}
	return out, nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state == stateSelectSection || !m.filter.Focused() {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectSection && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectSection && m.selected < len(m.sections)-1 {
				m.selected++
			}

		case "enter":
			if m.state == stateSelectSection && len(m.sections) > 0 {
				m.state = stateViewRecords
				m.filter.SetValue("")
				m.filter.Focus()
			}

		case "esc":
			if m.state == stateViewRecords {
				m.state = stateSelectSection
				m.filter.Blur()
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.sections = msg.sections
	}

	if m.state == stateViewRecords {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.sections == nil {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("wit inspector"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectSection:
		b.WriteString("Sections:\n\n")
		for i, s := range m.sections {
			line := fmt.Sprintf("%s (%d items)", sectionStyle.Render(s.kind.String()), len(s.records))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter view • q quit"))

	case stateViewRecords:
		s := m.sections[m.selected]
		b.WriteString(sectionStyle.Render(s.kind.String()))
		b.WriteString(" section\n\n")
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")

		needle := strings.ToLower(m.filter.Value())
		shown := 0
		for _, rec := range s.records {
			if needle != "" && !strings.Contains(strings.ToLower(rec), needle) {
				continue
			}
			b.WriteString(recordStyle.Render("  " + rec))
			b.WriteString("\n")
			shown++
		}
		if shown == 0 {
			b.WriteString(helpStyle.Render("  (no matching records)"))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("type to filter • esc back • ctrl+c quit"))
	}

	return b.String()
}

func runInteractive(filename, version string) error {
	p := tea.NewProgram(newInteractiveModel(filename, version), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
