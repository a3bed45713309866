package tui

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/cli/browser"
)

// errClipboardDisabled is reported when copying is turned off by config.
var errClipboardDisabled = errors.New("clipboard disabled (CREDUPI_NO_CLIPBOARD)")

// copyToClipboard copies text to the system clipboard.
func copyToClipboard(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard tool: install xclip, xsel or wl-clipboard")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}

func noClipboard(string) error {
	return errClipboardDisabled
}

// openLink hands a upi:// link to whatever app the OS has registered for it.
func openLink(link string) error {
	if err := browser.OpenURL(link); err != nil {
		return fmt.Errorf("open: %w", err)
	}
	return nil
}
