// Package cli implements credupi's command-line subcommands.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/zarlcorp/core/pkg/zstore"
	"github.com/zarlcorp/credupi/internal/config"
	"github.com/zarlcorp/credupi/internal/qr"
	"github.com/zarlcorp/credupi/internal/snapshot"
	"github.com/zarlcorp/credupi/internal/upi"
	"golang.org/x/term"
)

const pngSize = 512

// ErrNoSnapshot is returned by commands that need saved identifiers.
var ErrNoSnapshot = errors.New("no saved identifiers: run credupi generate <mobile> <card> --save")

// Runner executes subcommands against the configured data directory.
type Runner struct {
	Out    io.Writer
	Err    io.Writer
	Config config.Config
	// Password returns the master password; firstRun asks for a new one.
	Password func(firstRun bool) (string, error)
}

// New returns a runner writing to stdout/stderr and prompting on the
// terminal.
func New(cfg config.Config) *Runner {
	return &Runner{
		Out:    os.Stdout,
		Err:    os.Stderr,
		Config: cfg,
		Password: func(firstRun bool) (string, error) {
			if firstRun {
				return ReadNewPassword(os.Stderr)
			}
			return ReadPassword("master password: ", os.Stderr)
		},
	}
}

// Run dispatches cmd. Unknown commands are an error.
func (r *Runner) Run(cmd string, args []string) error {
	switch cmd {
	case "banks":
		return r.CmdBanks()
	case "generate":
		return r.CmdGenerate(args)
	case "show":
		return r.CmdShow(args)
	case "select":
		return r.CmdSelect(args)
	case "link":
		return r.CmdLink(args)
	case "qr":
		return r.CmdQR(args)
	case "reset":
		return r.CmdReset()
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// ReadPassword prompts for a password on w and reads it without echo.
func ReadPassword(prompt string, w io.Writer) (string, error) {
	fmt.Fprint(w, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// ReadNewPassword prompts for a new password with confirmation.
func ReadNewPassword(w io.Writer) (string, error) {
	pass, err := ReadPassword("create master password: ", w)
	if err != nil {
		return "", err
	}
	confirm, err := ReadPassword("confirm password: ", w)
	if err != nil {
		return "", err
	}
	if pass != confirm {
		return "", fmt.Errorf("passwords do not match")
	}
	return pass, nil
}

// openStore prompts for the password and opens the snapshot store.
func (r *Runner) openStore() (*zstore.Store, *snapshot.Store, error) {
	dir := r.Config.ResolveDataDir()
	pass, err := r.Password(config.IsFirstRun(dir))
	if err != nil {
		return nil, nil, err
	}
	return snapshot.Open(dir, pass)
}

// loadSaved opens the store and returns the saved snapshot.
func (r *Runner) loadSaved() (snapshot.Snapshot, error) {
	zs, st, err := r.openStore()
	if err != nil {
		return snapshot.Snapshot{}, err
	}
	defer zs.Close()

	snap, err := st.LoadStrict()
	if errors.Is(err, snapshot.ErrNotFound) {
		return snapshot.Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		fmt.Fprintf(r.Err, "credupi: ignoring saved data: %v\n", err)
		return snapshot.Snapshot{}, ErrNoSnapshot
	}
	return snap, nil
}

// CmdBanks lists the supported banks in display order.
func (r *Runner) CmdBanks() error {
	for _, b := range upi.AllBanks() {
		fmt.Fprintln(r.Out, b)
	}
	return nil
}

// CmdGenerate derives identifiers for a mobile and card number.
func (r *Runner) CmdGenerate(args []string) error {
	pos := positional(args)
	if len(pos) != 2 {
		return fmt.Errorf("usage: credupi generate <mobile> <card> [--json] [--save]")
	}

	creds := upi.Credentials{MobileNumber: pos[0], CardNumber: pos[1]}
	ids, err := creds.Generate()
	if err != nil {
		return fmt.Errorf("%s: %w", upi.InvalidMessage, err)
	}

	if hasFlag(args, "--json") {
		if err := r.printJSON(ids); err != nil {
			return err
		}
	} else {
		r.printIdentifiers(ids, "")
	}

	if !hasFlag(args, "--save") {
		return nil
	}

	zs, st, err := r.openStore()
	if err != nil {
		return err
	}
	defer zs.Close()

	if err := st.Save(snapshot.New(creds, ids)); err != nil {
		return err
	}
	fmt.Fprintln(r.Err, "saved")
	return nil
}

// CmdShow prints the saved snapshot.
func (r *Runner) CmdShow(args []string) error {
	snap, err := r.loadSaved()
	if errors.Is(err, ErrNoSnapshot) {
		fmt.Fprintln(r.Out, "no saved identifiers")
		return nil
	}
	if err != nil {
		return err
	}

	if hasFlag(args, "--json") {
		return r.printJSON(snap)
	}

	fmt.Fprintf(r.Out, "  mobile:  %s\n", snap.MobileNumber)
	fmt.Fprintf(r.Out, "  card:    %s\n\n", upi.MaskCard(snap.CreditCard))
	r.printIdentifiers(snap.UPIIDs, snap.SelectedBank)
	return nil
}

// CmdSelect changes the saved selected bank.
func (r *Runner) CmdSelect(args []string) error {
	pos := positional(args)
	if len(pos) != 1 {
		return fmt.Errorf("usage: credupi select <bank>")
	}
	b, err := parseBankArg(pos[0])
	if err != nil {
		return err
	}

	zs, st, err := r.openStore()
	if err != nil {
		return err
	}
	defer zs.Close()

	snap := st.Load()
	if snap.Empty() {
		return ErrNoSnapshot
	}
	if err := st.Save(snap.WithSelected(b)); err != nil {
		return err
	}
	fmt.Fprintf(r.Out, "selected %s\n", b)
	return nil
}

// CmdLink prints the UPI pay link for a bank, defaulting to the selected one.
func (r *Runner) CmdLink(args []string) error {
	b, id, err := r.resolveBank(positional(args))
	if err != nil {
		return err
	}
	fmt.Fprintln(r.Out, upi.PayURI(id, b))
	return nil
}

// CmdQR prints a terminal QR code for a bank's pay link or writes a PNG.
func (r *Runner) CmdQR(args []string) error {
	png := flagValue(args, "--png")
	pos := positional(args)

	b, id, err := r.resolveBank(pos)
	if err != nil {
		return err
	}
	link := upi.PayURI(id, b)

	if png != "" {
		if err := qr.WritePNG(link, r.Config.Level(), pngSize, png); err != nil {
			return err
		}
		fmt.Fprintf(r.Out, "wrote %s\n", png)
		return nil
	}

	code, err := qr.Render(link, r.Config.Level())
	if err != nil {
		return err
	}
	fmt.Fprintf(r.Out, "%s UPI QR code\n\n%s\n%s\n", b, code, id)
	return nil
}

// CmdReset removes the saved snapshot.
func (r *Runner) CmdReset() error {
	zs, st, err := r.openStore()
	if err != nil {
		return err
	}
	defer zs.Close()

	if err := st.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(r.Out, "cleared")
	return nil
}

// resolveBank picks the bank named in pos, or the saved selection, and
// returns its payable identifier.
func (r *Runner) resolveBank(pos []string) (upi.Bank, string, error) {
	if len(pos) > 1 {
		return 0, "", fmt.Errorf("expected at most one bank, got %d", len(pos))
	}

	snap, err := r.loadSaved()
	if err != nil {
		return 0, "", err
	}

	b, ok := snap.Selected()
	if len(pos) == 1 {
		if b, err = parseBankArg(pos[0]); err != nil {
			return 0, "", err
		}
		ok = true
	}
	if !ok {
		return 0, "", ErrNoSnapshot
	}

	id, _ := snap.UPIIDs.Get(b)
	if !upi.Payable(id) {
		return 0, "", fmt.Errorf("%s: %s", b, id)
	}
	return b, id, nil
}

func (r *Runner) printIdentifiers(ids upi.IdentifierSet, selected string) {
	for _, b := range ids.Banks() {
		id, _ := ids.Get(b)
		marker := " "
		if b.String() == selected {
			marker = ">"
		}
		fmt.Fprintf(r.Out, "%s %-8s %s\n", marker, b, id)
	}
}

func (r *Runner) printJSON(v any) error {
	enc := json.NewEncoder(r.Out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// parseBankArg matches a bank name ignoring case and spaces.
func parseBankArg(s string) (upi.Bank, error) {
	want := normalizeBank(s)
	for _, b := range upi.AllBanks() {
		if normalizeBank(b.String()) == want {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown bank %q: run credupi banks", s)
}

func normalizeBank(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", ""))
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if strings.EqualFold(a, flag) {
			return true
		}
	}
	return false
}

// flagValue returns the argument following flag, if any.
func flagValue(args []string, flag string) string {
	for i, a := range args {
		if strings.EqualFold(a, flag) && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// positional returns arguments that are neither flags nor flag values.
func positional(args []string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.EqualFold(a, "--png") {
			i++
			continue
		}
		if strings.HasPrefix(a, "--") {
			continue
		}
		out = append(out, a)
	}
	return out
}
