// playground is an interactive converter. Digits are spelled in Hangul,
// Hangul numerals are read back into integers, and the result updates as
// you type.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jusunglee/hangulnum/internal/numeral"
	"github.com/jusunglee/hangulnum/internal/transliteration"
)

const maxPinned = 5

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	romanStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

type conversion struct {
	input     string
	output    string
	romanized string
	err       error
}

type model struct {
	textInput textinput.Model
	spacing   bool
	current   conversion
	pinned    []conversion
	width     int
}

func initialModel() model {
	ti := textinput.New()
	ti.Placeholder = "1234 or 천이백삼십사"
	ti.Focus()
	ti.CharLimit = 128
	ti.Width = 48

	return model{textInput: ti}
}

// convert picks the direction from the input: anything containing Hangul is
// decoded, everything else is encoded.
func convert(input string, spacing bool) conversion {
	c := conversion{input: input}
	if strings.TrimSpace(input) == "" {
		return c
	}

	if transliteration.ContainsHangul(input) {
		opts := numeral.DefaultDecodeOptions()
		opts.Output = numeral.OutputString
		value, err := numeral.Decode(input, opts)
		if err != nil {
			c.err = err
			return c
		}
		c.output = value.(string)
		return c
	}

	opts := numeral.DefaultEncodeOptions()
	opts.UseSpacingBetweenLargeUnits = spacing
	text, err := numeral.Encode(strings.TrimSpace(input), opts)
	if err != nil {
		c.err = err
		return c
	}
	c.output = text
	c.romanized = transliteration.Romanize(text)
	return c
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			m.spacing = !m.spacing
			m.current = convert(m.textInput.Value(), m.spacing)
			return m, nil
		case tea.KeyEnter:
			if m.current.output != "" {
				m.pinned = append([]conversion{m.current}, m.pinned...)
				if len(m.pinned) > maxPinned {
					m.pinned = m.pinned[:maxPinned]
				}
				m.textInput.SetValue("")
				m.current = conversion{}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.current = convert(m.textInput.Value(), m.spacing)
	return m, cmd
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("hangulnum playground"))
	s.WriteString("\n")
	s.WriteString(m.textInput.View())
	s.WriteString("\n\n")
	s.WriteString(renderConversion(m.current))
	s.WriteString("\n")

	if len(m.pinned) > 0 {
		s.WriteString("\n")
		for _, c := range m.pinned {
			s.WriteString(subtleStyle.Render(c.input + " → "))
			s.WriteString(renderConversion(c))
			s.WriteString("\n")
		}
	}

	spacing := "off"
	if m.spacing {
		spacing = "on"
	}
	s.WriteString("\n")
	s.WriteString(subtleStyle.Render(fmt.Sprintf("tab=spacing (%s) • enter=pin • esc/ctrl+c=quit", spacing)))

	return boxStyle.Render(s.String())
}

func renderConversion(c conversion) string {
	switch {
	case c.err != nil:
		return errorStyle.Render(c.err.Error())
	case c.output == "":
		return subtleStyle.Render("type a number or Hangul numeral")
	case c.romanized != "":
		return resultStyle.Render(c.output) + " " + romanStyle.Render(c.romanized)
	default:
		return resultStyle.Render(c.output)
	}
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
