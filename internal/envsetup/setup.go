// envsetup provides a lightweight .env configuration wizard.
// It runs on first bot startup when no .env file exists and no flags were
// given, collecting the Discord token and history store location.
package envsetup

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultDatabaseURL = "sqlite://hangulnum.db"

type step int

const (
	stepWelcome step = iota
	stepDiscord
	stepGuild
	stepDatabase
	stepConfirm
	stepSaved
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Underline(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type model struct {
	envPath      string
	step         step
	discordToken string
	guildID      string
	databaseURL  string
	input        string
	err          error
}

func newModel(envPath string) model {
	return model{envPath: envPath, step: stepWelcome}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleEnter()
		case tea.KeyBackspace:
			if runes := []rune(m.input); len(runes) > 0 {
				m.input = string(runes[:len(runes)-1])
			}
		case tea.KeyRunes:
			m.input += string(msg.Runes)
		case tea.KeySpace:
			m.input += " "
		}
	}
	return m, nil
}

func (m model) handleEnter() (tea.Model, tea.Cmd) {
	m.err = nil
	value := strings.TrimSpace(m.input)

	switch m.step {
	case stepWelcome:
		m.step = stepDiscord

	case stepDiscord:
		if value == "" {
			m.err = errors.New("Discord token is required")
			return m, nil
		}
		m.discordToken = value
		m.step = stepGuild

	case stepGuild:
		m.guildID = value
		m.step = stepDatabase

	case stepDatabase:
		if value == "" {
			value = defaultDatabaseURL
		}
		m.databaseURL = value
		m.step = stepConfirm

	case stepConfirm:
		switch strings.ToLower(value) {
		case "", "y", "yes":
			if err := m.writeEnvFile(); err != nil {
				m.err = err
				return m, nil
			}
			m.step = stepSaved
			return m, tea.Quit
		case "n", "no":
			m = newModel(m.envPath)
		default:
			m.err = errors.New("Please answer y or n")
			return m, nil
		}
	}

	m.input = ""
	return m, nil
}

func (m model) writeEnvFile() error {
	var s strings.Builder
	fmt.Fprintf(&s, "DISCORD_TOKEN=%s\n", m.discordToken)
	if m.guildID != "" {
		fmt.Fprintf(&s, "GUILD_ID=%s\n", m.guildID)
	}
	fmt.Fprintf(&s, "DATABASE_URL=%s\n", m.databaseURL)

	if err := os.WriteFile(m.envPath, []byte(s.String()), 0600); err != nil {
		return fmt.Errorf("writing %s: %w", m.envPath, err)
	}
	return nil
}

func (m model) View() string {
	var s strings.Builder

	switch m.step {
	case stepWelcome:
		s.WriteString(titleStyle.Render("hangulnum bot - Env Setup"))
		s.WriteString("\n\n")
		s.WriteString("This wizard writes a .env file for the Discord bot.\n")
		s.WriteString("You'll need a Discord bot token.\n")
		s.WriteString("\n")
		s.WriteString(dimStyle.Render("Press Enter to continue, Ctrl+C to exit"))

	case stepDiscord:
		s.WriteString(titleStyle.Render("Step 1: Discord Bot Token"))
		s.WriteString("\n\n")
		s.WriteString("  1. Go to " + linkStyle.Render("https://discord.com/developers/applications") + "\n")
		s.WriteString("  2. Create a new application (or select existing)\n")
		s.WriteString("  3. Open the Bot section and click 'Reset Token'\n")
		s.WriteString("\n")
		s.WriteString(labelStyle.Render("Paste your Discord token here:"))
		s.WriteString("\n")
		s.WriteString("> " + inputStyle.Render(maskToken(m.input)))

	case stepGuild:
		s.WriteString(titleStyle.Render("Step 2: Guild ID (optional)"))
		s.WriteString("\n\n")
		s.WriteString("Commands registered to one guild update instantly.\n")
		s.WriteString("Leave empty to register /hangul globally.\n")
		s.WriteString("\n")
		s.WriteString(labelStyle.Render("Guild ID:"))
		s.WriteString("\n")
		s.WriteString("> " + inputStyle.Render(m.input))

	case stepDatabase:
		s.WriteString(titleStyle.Render("Step 3: Conversion History"))
		s.WriteString("\n\n")
		s.WriteString("Where should conversions be recorded?\n")
		s.WriteString("Use postgres://... for PostgreSQL or sqlite://path for a local file.\n")
		s.WriteString("\n")
		s.WriteString(labelStyle.Render("Database URL [" + defaultDatabaseURL + "]:"))
		s.WriteString("\n")
		s.WriteString("> " + inputStyle.Render(m.input))

	case stepConfirm, stepSaved:
		s.WriteString(titleStyle.Render("Configuration Complete"))
		s.WriteString("\n\n")
		s.WriteString("  Discord:  " + successStyle.Render(maskToken(m.discordToken)) + "\n")
		guild := m.guildID
		if guild == "" {
			guild = "(global)"
		}
		s.WriteString("  Guild:    " + successStyle.Render(guild) + "\n")
		s.WriteString("  Database: " + successStyle.Render(m.databaseURL) + "\n")
		s.WriteString("\n")
		s.WriteString(labelStyle.Render("Save this configuration? [Y/n]:"))
		s.WriteString("\n")
		s.WriteString("> " + inputStyle.Render(m.input))
	}

	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()))
	}
	s.WriteString("\n")
	return s.String()
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}

// Run starts the setup wizard writing to envPath and returns true if the
// file was saved.
func Run(envPath string) (bool, error) {
	p := tea.NewProgram(newModel(envPath))
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m := finalModel.(model)
	return m.step == stepSaved, nil
}

// NeedsSetup reports whether envPath is missing.
func NeedsSetup(envPath string) bool {
	_, err := os.Stat(envPath)
	return os.IsNotExist(err)
}
