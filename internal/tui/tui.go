// Package tui implements the root Bubble Tea model for credupi.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstore"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/credupi/internal/config"
	"github.com/zarlcorp/credupi/internal/snapshot"
)

const appName = "credupi"

const paymentNote = "Note: Check before paying whether the ID is valid for payment."

type viewID int

const (
	viewPassword viewID = iota
	viewForm
	viewResults
)

// Model is the root TUI model.
type Model struct {
	version   string
	cfg       config.Config
	firstRun  bool
	store     *zstore.Store
	snapshots *snapshot.Store
	snap      snapshot.Snapshot

	copy func(string) error
	open func(string) error

	active   viewID
	password passwordModel
	form     formModel
	results  resultsModel

	// terminal dimensions
	width  int
	height int
}

// New creates the root TUI model.
func New(version string, cfg config.Config, firstRun bool) Model {
	copyFn := copyToClipboard
	if cfg.ClipboardDisabled {
		copyFn = noClipboard
	}

	return Model{
		version:  version,
		cfg:      cfg,
		firstRun: firstRun,
		copy:     copyFn,
		open:     openLink,
		active:   viewPassword,
		password: newPasswordModel(firstRun, cfg.ResolveDataDir()),
	}
}

func (m Model) Init() tea.Cmd {
	return m.password.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case passwordSubmitMsg:
		return m.openStore(msg.password)

	case generateMsg:
		return m.handleGenerate(msg)

	case selectBankMsg:
		return m.handleSelect(msg)

	case resetMsg:
		return m.handleReset()
	}

	return m.updateActive(msg)
}

func (m Model) View() string {
	if m.active == viewPassword {
		return m.password.View()
	}

	var content string
	switch m.active {
	case viewForm:
		content = m.form.View()
	case viewResults:
		content = m.results.View()
	}

	header := zstyle.RenderHeader(appName, viewTitle(m.active), zstyle.ZburnAccent)
	sep := zstyle.RenderSeparator(m.width)
	footer := zstyle.RenderFooter(helpFor(m.active))

	return "\n" + header + "\n" + sep + "\n" + content + "\n" + footer + "\n"
}

// viewTitle returns the display title for each view.
func viewTitle(id viewID) string {
	switch id {
	case viewForm:
		return "Generate UPI Details"
	case viewResults:
		return "UPI IDs"
	}
	return ""
}

// helpFor returns keybinding pairs for each view's footer.
func helpFor(id viewID) []zstyle.HelpPair {
	switch id {
	case viewForm:
		return []zstyle.HelpPair{
			{Key: "tab", Desc: "next field"},
			{Key: "enter", Desc: "generate"},
			{Key: "q", Desc: "quit"},
		}
	case viewResults:
		return []zstyle.HelpPair{
			{Key: "h/l", Desc: "bank"},
			{Key: "1-6", Desc: "jump"},
			{Key: "enter", Desc: "copy"},
			{Key: "y", Desc: "copy link"},
			{Key: "v", Desc: "qr"},
			{Key: "p", Desc: "pay"},
			{Key: "r", Desc: "reset"},
			{Key: "q", Desc: "quit"},
		}
	}
	return nil
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.active {
	case viewPassword:
		m.password, cmd = m.password.Update(msg)
	case viewForm:
		m.form, cmd = m.form.Update(msg)
	case viewResults:
		m.results, cmd = m.results.Update(msg)
	}

	return m, cmd
}

func (m Model) openStore(password string) (tea.Model, tea.Cmd) {
	zs, st, err := snapshot.Open(m.cfg.ResolveDataDir(), password)
	if err != nil {
		m.password, _ = m.password.Update(passwordErrMsg{err: err})
		return m, nil
	}

	m.store = zs
	m.snapshots = st
	return m.restore()
}

// restore shows the saved snapshot, or the empty form when there is none.
func (m Model) restore() (tea.Model, tea.Cmd) {
	m.snap = m.snapshots.Load()
	if m.snap.Empty() {
		return m.showForm()
	}
	return m.showResults()
}

func (m Model) showForm() (tea.Model, tea.Cmd) {
	m.form = newFormModel()
	m.active = viewForm
	return m, tea.Batch(m.form.Init(), tea.ClearScreen)
}

func (m Model) showResults() (tea.Model, tea.Cmd) {
	m.results = newResultsModel(m.snap, m.cfg.Level(), m.copy, m.open)
	m.active = viewResults
	return m, tea.ClearScreen
}

func (m Model) handleGenerate(msg generateMsg) (tea.Model, tea.Cmd) {
	ids, err := msg.credentials.Generate()
	if err != nil {
		m.form, _ = m.form.Update(generateErrMsg{err: err})
		return m, nil
	}

	m.snap = snapshot.New(msg.credentials, ids)
	next, cmd := m.showResults()
	m = next.(Model)

	if err := m.snapshots.Save(m.snap); err != nil {
		var flash tea.Cmd
		m.results, flash = m.results.setFlash("save: "+err.Error(), false)
		return m, tea.Batch(cmd, flash)
	}
	return m, cmd
}

func (m Model) handleSelect(msg selectBankMsg) (tea.Model, tea.Cmd) {
	m.snap = m.snap.WithSelected(msg.bank)
	if err := m.snapshots.Save(m.snap); err != nil {
		var flash tea.Cmd
		m.results, flash = m.results.setFlash("save: "+err.Error(), false)
		return m, flash
	}
	return m, nil
}

func (m Model) handleReset() (tea.Model, tea.Cmd) {
	if err := m.snapshots.Clear(); err != nil {
		var flash tea.Cmd
		m.results, flash = m.results.setFlash("reset: "+err.Error(), false)
		return m, flash
	}
	m.snap = snapshot.Snapshot{}
	return m.showForm()
}

// Close cleans up resources. Call after the program exits.
func (m Model) Close() {
	if m.store != nil {
		m.store.Close()
	}
}
