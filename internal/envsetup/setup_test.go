package envsetup

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func send(m model, keys ...tea.KeyMsg) model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(model)
	}
	return m
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func TestWizardWritesEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.True(t, NeedsSetup(path))

	m := send(newModel(path),
		enter,
		typed("token-abcdefgh-1234"), enter,
		typed("guild-1"), enter,
		enter,
		enter,
	)

	require.NoError(t, m.err)
	assert.Equal(t, stepSaved, m.step)
	assert.False(t, NeedsSetup(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "DISCORD_TOKEN=token-abcdefgh-1234\nGUILD_ID=guild-1\nDATABASE_URL=sqlite://hangulnum.db\n", string(content))
}

func TestWizardRequiresToken(t *testing.T) {
	m := send(newModel(filepath.Join(t.TempDir(), ".env")), enter, enter)

	assert.Equal(t, stepDiscord, m.step)
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "Discord token is required")
}

func TestWizardRestartOnNo(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	m := send(newModel(path),
		enter,
		typed("token"), enter,
		enter,
		typed("postgres://localhost/hangulnum"), enter,
	)
	assert.Equal(t, stepConfirm, m.step)
	assert.Equal(t, "postgres://localhost/hangulnum", m.databaseURL)

	m = send(m, typed("n"), enter)
	assert.Equal(t, stepWelcome, m.step)
	assert.Empty(t, m.discordToken)
	assert.True(t, NeedsSetup(path))
}

func TestBackspaceRemovesRune(t *testing.T) {
	m := send(newModel(""), enter, typed("한글"), tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "한", m.input)
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "****", maskToken("abcd"))
	assert.Equal(t, "abcd****mnop", maskToken("abcdefghmnop"))
}
