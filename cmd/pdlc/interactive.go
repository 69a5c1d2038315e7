package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/pdl-runtime/decl"
	"github.com/wippyai/pdl-runtime/packet"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectPacket modelState = iota
	stateInput
	stateShowResult
)

type codecMode int

const (
	modeDecode codecMode = iota
	modeEncode
)

func (m codecMode) String() string {
	if m == modeEncode {
		return "encode"
	}
	return "decode"
}

type interactiveModel struct {
	err      error
	reg      *decl.Registry
	result   packet.Packet
	names    []string
	input    textinput.Model
	selected int
	mode     codecMode
	state    modelState
}

type resultMsg struct {
	err    error
	result packet.Packet
}

func newInteractiveModel(reg *decl.Registry) *interactiveModel {
	return &interactiveModel{
		reg:   reg,
		names: reg.Names(),
		state: stateSelectPacket,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInput {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectPacket && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectPacket && m.selected < len(m.names)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectPacket:
				if len(m.names) == 0 {
					return m, nil
				}
				m.prepareInput()
				m.state = stateInput
				return m, textinput.Blink

			case stateInput:
				return m, m.runCodec

			case stateShowResult:
				m.state = stateInput
				m.err = nil
				m.input.SetValue("")
				return m, nil
			}

		case "tab":
			if m.state == stateInput {
				m.mode = 1 - m.mode
				m.input.Placeholder = m.placeholder()
				m.input.SetValue("")
				return m, nil
			}

		case "esc":
			switch m.state {
			case stateInput:
				m.state = stateSelectPacket
			case stateShowResult:
				m.state = stateInput
				m.err = nil
			}
			return m, nil
		}

	case resultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
		return m, nil
	}

	if m.state == stateInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) prepareInput() {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Width = 40
	m.input = ti
	m.input.Placeholder = m.placeholder()
	m.input.Focus()
}

func (m *interactiveModel) placeholder() string {
	if m.mode == modeEncode {
		return "value, e.g. 197121 or 0x030201"
	}
	return "hex bytes, e.g. 01 02 03"
}

func (m *interactiveModel) runCodec() tea.Msg {
	name := m.names[m.selected]
	var (
		p   packet.Packet
		err error
	)
	if m.mode == modeEncode {
		p, err = encodeValue(m.reg, name, m.input.Value())
	} else {
		p, err = decodeHex(m.reg, name, m.input.Value())
	}
	return resultMsg{result: p, err: err}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("PDL Codec"))
	b.WriteString("\n\n")

	if len(m.names) == 0 {
		b.WriteString("No packets declared.\n\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}

	switch m.state {
	case stateSelectPacket:
		b.WriteString("Select a packet:\n\n")
		for i, name := range m.names {
			line := m.formatPacket(name)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter choose • q quit"))

	case stateInput:
		name := m.names[m.selected]
		b.WriteString(fmt.Sprintf("%s %s\n\n", m.mode, nameStyle.Render(name)))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter run • tab decode/encode • esc back"))

	case stateShowResult:
		name := m.names[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s %s:\n\n", m.mode, nameStyle.Render(name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(errorText(m.err)))
		} else {
			b.WriteString(resultStyle.Render(formatPacket(m.result)))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter again • esc back • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatPacket(name string) string {
	d, ok := m.reg.Lookup(name)
	if !ok {
		return name
	}
	return nameStyle.Render(name) + " " + typeStyle.Render(describe(d))
}

func runInteractive(reg *decl.Registry) error {
	p := tea.NewProgram(newInteractiveModel(reg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
