package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstore"
	"github.com/zarlcorp/core/pkg/zstyle"
)

// passwordModel unlocks the encrypted snapshot store. On first run the new
// password is typed twice before the store is created in dataDir.
type passwordModel struct {
	input    textinput.Model
	dataDir  string
	firstRun bool

	// first entry while waiting for the confirmation
	pending    string
	confirming bool

	errMsg string
}

// passwordSubmitMsg carries an accepted password to the root model.
type passwordSubmitMsg struct {
	password string
}

// passwordErrMsg reports that the store rejected the password.
type passwordErrMsg struct {
	err error
}

func newPasswordModel(firstRun bool, dataDir string) passwordModel {
	ti := textinput.New()
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'
	ti.CharLimit = 128
	ti.Width = 40
	ti.Focus()

	return passwordModel{
		input:    ti,
		dataDir:  dataDir,
		firstRun: firstRun,
	}
}

func (m passwordModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m passwordModel) Update(msg tea.Msg) (passwordModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if key.Matches(msg, zstyle.KeyEnter) {
			return m.submit()
		}

	case passwordErrMsg:
		m.errMsg = describeOpenErr(msg.err)
		m.input.SetValue("")
		m.pending, m.confirming = "", false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m passwordModel) submit() (passwordModel, tea.Cmd) {
	val := m.input.Value()
	if val == "" {
		return m, nil
	}
	m.input.SetValue("")

	if !m.firstRun {
		m.errMsg = ""
		return m, submitPassword(val)
	}

	if !m.confirming {
		m.pending, m.confirming = val, true
		m.errMsg = ""
		return m, nil
	}

	pending := m.pending
	m.pending, m.confirming = "", false
	if val != pending {
		m.errMsg = "passwords do not match"
		return m, nil
	}

	m.errMsg = ""
	return m, submitPassword(val)
}

func submitPassword(pw string) tea.Cmd {
	return func() tea.Msg { return passwordSubmitMsg{password: pw} }
}

// describeOpenErr turns a store error into a line for the prompt.
func describeOpenErr(err error) string {
	if errors.Is(err, zstore.ErrWrongPassword) {
		return "wrong master password"
	}
	return err.Error()
}

func (m passwordModel) prompt() string {
	switch {
	case m.firstRun && m.confirming:
		return "confirm password:"
	case m.firstRun:
		return "create master password:"
	}
	return "master password:"
}

func (m passwordModel) View() string {
	var b strings.Builder

	b.WriteString("\n  " + zstyle.Title.Render(appName) + "\n")
	b.WriteString("  " + zstyle.MutedText.Render("UPI IDs for credit card bill payments") + "\n\n")

	if m.firstRun {
		b.WriteString("  " + zstyle.MutedText.Render("your card and mobile number are encrypted in") + "\n")
		b.WriteString("  " + zstyle.Highlight.Render(m.dataDir) + "\n\n")
	}

	b.WriteString("  " + m.prompt() + "\n")
	b.WriteString("  " + m.input.View() + "\n")

	if m.errMsg != "" {
		b.WriteString("\n  " + zstyle.StatusErr.Render(m.errMsg) + "\n")
	}
	return b.String()
}
