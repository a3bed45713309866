package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/credupi/internal/upi"
)

const (
	inputMobile = iota
	inputCard
	inputCount
)

var inputLabels = [inputCount]string{
	"mobile number",
	"credit card number",
}

var inputPlaceholders = [inputCount]string{
	"Enter 10-digit number",
	"Enter 15 or 16-digit number",
}

// inputLimits match the longest valid value of each field.
var inputLimits = [inputCount]int{10, 16}

var keyBackTab = key.NewBinding(key.WithKeys("shift+tab", "up"))

// formModel collects the mobile and card numbers.
type formModel struct {
	inputs [inputCount]textinput.Model
	focus  int
	errMsg string
}

// generateMsg asks the root model to derive identifiers.
type generateMsg struct {
	credentials upi.Credentials
}

// generateErrMsg reports rejected input back to the form.
type generateErrMsg struct {
	err error
}

func newFormModel() formModel {
	var inputs [inputCount]textinput.Model
	for i := range inputCount {
		ti := textinput.New()
		ti.CharLimit = inputLimits[i]
		ti.Width = 24
		ti.Prompt = ""
		ti.Placeholder = inputPlaceholders[i]
		inputs[i] = ti
	}

	m := formModel{inputs: inputs}
	m.inputs[m.focus].Focus()
	return m
}

func (m formModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if key.Matches(msg, zstyle.KeyTab) || msg.Type == tea.KeyDown {
			return m.setFocus((m.focus + 1) % inputCount), textinput.Blink
		}

		if key.Matches(msg, keyBackTab) {
			return m.setFocus((m.focus + inputCount - 1) % inputCount), textinput.Blink
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			creds := m.credentials()
			return m, func() tea.Msg { return generateMsg{credentials: creds} }
		}

		// letters never reach the inputs, so q is free to quit
		if key.Matches(msg, zstyle.KeyQuit) {
			return m, tea.Quit
		}

	case generateErrMsg:
		m.errMsg = upi.InvalidMessage
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	// keep only digits, as pasted text may carry spaces or dashes
	val := m.inputs[m.focus].Value()
	if clean := upi.SanitizeDigits(val, inputLimits[m.focus]); clean != val {
		m.inputs[m.focus].SetValue(clean)
	}

	return m, cmd
}

func (m formModel) setFocus(i int) formModel {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
	return m
}

func (m formModel) credentials() upi.Credentials {
	return upi.Credentials{
		MobileNumber: m.inputs[inputMobile].Value(),
		CardNumber:   m.inputs[inputCard].Value(),
	}
}

func (m formModel) View() string {
	s := "\n"

	for i := range inputCount {
		label := zstyle.MutedText.Render(inputLabels[i])
		if i == m.focus {
			label = zstyle.Highlight.Render(inputLabels[i])
		}
		s += "  " + label + "\n"
		s += "  " + m.inputs[i].View() + "\n\n"
	}

	// always reserve a line for the error to prevent layout shift
	if m.errMsg != "" {
		s += "  " + zstyle.StatusErr.Render(m.errMsg) + "\n"
	} else {
		s += "\n"
	}

	s += "  " + zstyle.MutedText.Render(paymentNote) + "\n"
	return s
}
