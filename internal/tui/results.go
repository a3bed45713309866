package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/credupi/internal/qr"
	"github.com/zarlcorp/credupi/internal/snapshot"
	"github.com/zarlcorp/credupi/internal/upi"
)

// flashDuration is how long a copy confirmation stays visible.
const flashDuration = 2 * time.Second

var (
	keyPrev = key.NewBinding(key.WithKeys("left", "h", "shift+tab"))
	keyNext = key.NewBinding(key.WithKeys("right", "l", "tab"))
)

// resultsModel shows the generated identifiers, one bank at a time.
type resultsModel struct {
	snap    snapshot.Snapshot
	banks   []upi.Bank
	cursor  int
	level   qr.Level
	showQR  bool
	qrCode  string
	flash    string
	flashOK  bool
	flashSeq int

	copy func(string) error
	open func(string) error
}

// selectBankMsg asks the root model to persist a new selection.
type selectBankMsg struct {
	bank upi.Bank
}

// resetMsg asks the root model to forget everything and start over.
type resetMsg struct{}

// linkOpenedMsg reports the outcome of handing a pay link to the OS.
type linkOpenedMsg struct {
	err error
}

// flashMsg clears the flash it was scheduled for, unless a newer one replaced it.
type flashMsg struct {
	seq int
}

func newResultsModel(snap snapshot.Snapshot, level qr.Level, copyFn, openFn func(string) error) resultsModel {
	m := resultsModel{
		snap:  snap,
		banks: snap.UPIIDs.Banks(),
		level: level,
		copy:  copyFn,
		open:  openFn,
	}
	if b, ok := snap.Selected(); ok {
		for i, bb := range m.banks {
			if bb == b {
				m.cursor = i
			}
		}
	}
	return m
}

func (m resultsModel) Init() tea.Cmd {
	return nil
}

func (m resultsModel) Update(msg tea.Msg) (resultsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case linkOpenedMsg:
		if msg.err != nil {
			return m.setFlash(msg.err.Error(), false)
		}
		return m.setFlash("opened payment app", true)

	case flashMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil
	}

	return m, nil
}

func (m resultsModel) handleKey(msg tea.KeyMsg) (resultsModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, keyPrev) || key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			return m.moveTo(m.cursor - 1)
		}
		return m, nil
	}

	if key.Matches(msg, keyNext) || key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.banks)-1 {
			return m.moveTo(m.cursor + 1)
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		return m.copyText(m.selectedID(), "copied!")
	}

	if key.Matches(msg, zstyle.KeyBack) {
		m.showQR = false
		return m, nil
	}

	switch msg.String() {
	case "c":
		return m.copyText(m.selectedID(), "copied!")

	case "y":
		if !upi.Payable(m.selectedID()) {
			return m.setFlash(m.selectedID(), false)
		}
		return m.copyText(m.payLink(), "copied pay link!")

	case "v":
		return m.toggleQR(), nil

	case "p":
		if !upi.Payable(m.selectedID()) {
			return m.setFlash(m.selectedID(), false)
		}
		link, open := m.payLink(), m.open
		return m, func() tea.Msg { return linkOpenedMsg{err: open(link)} }

	case "r":
		return m, func() tea.Msg { return resetMsg{} }
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		if i := int(msg.Runes[0] - '1'); i >= 0 && i < len(m.banks) {
			return m.moveTo(i)
		}
	}

	return m, nil
}

func (m resultsModel) moveTo(i int) (resultsModel, tea.Cmd) {
	m.cursor = i
	b := m.banks[i]
	m.snap = m.snap.WithSelected(b)
	if m.showQR {
		m = m.renderQR()
	}
	return m, func() tea.Msg { return selectBankMsg{bank: b} }
}

func (m resultsModel) toggleQR() resultsModel {
	m.showQR = !m.showQR
	if m.showQR {
		return m.renderQR()
	}
	return m
}

func (m resultsModel) renderQR() resultsModel {
	m.qrCode = ""
	if !upi.Payable(m.selectedID()) {
		return m
	}
	code, err := qr.Render(m.payLink(), m.level)
	if err != nil {
		m.flashSeq++
		m.flash = "qr: " + err.Error()
		m.flashOK = false
		return m
	}
	m.qrCode = code
	return m
}

func (m resultsModel) copyText(text, ok string) (resultsModel, tea.Cmd) {
	if err := m.copy(text); err != nil {
		return m.setFlash("copy: "+err.Error(), false)
	}
	return m.setFlash(ok, true)
}

// setFlash shows msg and schedules its removal.
func (m resultsModel) setFlash(msg string, ok bool) (resultsModel, tea.Cmd) {
	m.flashSeq++
	m.flash = msg
	m.flashOK = ok
	return m, clearFlashAfter(m.flashSeq)
}

func clearFlashAfter(seq int) tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashMsg{seq: seq}
	})
}

func (m resultsModel) selectedBank() upi.Bank {
	if len(m.banks) == 0 {
		return upi.Axis
	}
	return m.banks[m.cursor]
}

func (m resultsModel) selectedID() string {
	id, _ := m.snap.UPIIDs.Get(m.selectedBank())
	return id
}

func (m resultsModel) payLink() string {
	return upi.PayURI(m.selectedID(), m.selectedBank())
}

func (m resultsModel) View() string {
	accentStyle := lipgloss.NewStyle().Foreground(zstyle.ZburnAccent).Bold(true)

	s := "\n  " + zstyle.MutedText.Render(fmt.Sprintf("mobile %s  card %s", m.snap.MobileNumber, upi.MaskCard(m.snap.CreditCard))) + "\n\n"

	tabs := make([]string, 0, len(m.banks))
	for i, b := range m.banks {
		if i == m.cursor {
			tabs = append(tabs, accentStyle.Render("["+b.String()+"]"))
		} else {
			tabs = append(tabs, zstyle.MutedText.Render(" "+b.String()+" "))
		}
	}
	s += "  " + strings.Join(tabs, " ") + "\n\n"

	bank := m.selectedBank()
	id := m.selectedID()
	s += "  " + zstyle.Subtitle.Render(bank.String()+" UPI ID") + "\n"
	if upi.Payable(id) {
		s += "  " + id + "\n"
	} else {
		s += "  " + zstyle.StatusWarn.Render(id) + "\n"
	}

	if m.showQR {
		s += "\n"
		if m.qrCode != "" {
			for _, line := range strings.Split(strings.TrimRight(m.qrCode, "\n"), "\n") {
				s += "  " + line + "\n"
			}
			s += "  " + zstyle.MutedText.Render(m.payLink()) + "\n"
		} else {
			s += "  " + zstyle.MutedText.Render("no QR code for this bank") + "\n"
		}
	}

	s += "\n"

	// always reserve a line for flash to prevent layout shift
	switch {
	case m.flash == "":
		s += "\n"
	case m.flashOK:
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	default:
		s += "  " + zstyle.StatusErr.Render(m.flash) + "\n"
	}

	s += "  " + zstyle.MutedText.Render(paymentNote) + "\n"
	return s
}
