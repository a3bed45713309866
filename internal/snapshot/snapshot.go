// Package snapshot persists the last generated identifiers so the next
// session can restore them.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"github.com/zarlcorp/credupi/internal/upi"
)

var (
	// ErrNotFound is returned when nothing has been saved.
	ErrNotFound = errors.New("snapshot not found")
	// ErrCorrupt is returned when stored data does not describe a snapshot.
	ErrCorrupt = errors.New("snapshot corrupt")
)

// Snapshot is the credentials plus the identifiers derived from them.
type Snapshot struct {
	MobileNumber string            `json:"mobileNumber"`
	CreditCard   string            `json:"creditCard"`
	UPIIDs       upi.IdentifierSet `json:"upiIDs"`
	SelectedBank string            `json:"selectedBank"`
}

// New builds a snapshot with the first bank of ids selected.
func New(creds upi.Credentials, ids upi.IdentifierSet) Snapshot {
	s := Snapshot{
		MobileNumber: creds.MobileNumber,
		CreditCard:   creds.CardNumber,
		UPIIDs:       ids,
	}
	if b, ok := ids.First(); ok {
		s.SelectedBank = b.String()
	}
	return s
}

// Empty reports whether the snapshot holds no identifiers.
func (s Snapshot) Empty() bool {
	return s.UPIIDs.Empty()
}

// Credentials returns the numbers the identifiers were derived from.
func (s Snapshot) Credentials() upi.Credentials {
	return upi.Credentials{MobileNumber: s.MobileNumber, CardNumber: s.CreditCard}
}

// Selected returns the highlighted bank if it names a bank in the set.
func (s Snapshot) Selected() (upi.Bank, bool) {
	b, ok := upi.ParseBank(s.SelectedBank)
	if !ok {
		return 0, false
	}
	if _, ok := s.UPIIDs.Get(b); !ok {
		return 0, false
	}
	return b, true
}

// SelectedID returns the highlighted bank and its identifier.
func (s Snapshot) SelectedID() (upi.Bank, string, bool) {
	b, ok := s.Selected()
	if !ok {
		return 0, "", false
	}
	id, _ := s.UPIIDs.Get(b)
	return b, id, true
}

// WithSelected returns a copy with b highlighted. Banks outside the set are
// ignored.
func (s Snapshot) WithSelected(b upi.Bank) Snapshot {
	if _, ok := s.UPIIDs.Get(b); ok {
		s.SelectedBank = b.String()
	}
	return s
}

// Equal reports whether two snapshots are identical.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.MobileNumber == o.MobileNumber &&
		s.CreditCard == o.CreditCard &&
		s.SelectedBank == o.SelectedBank &&
		s.UPIIDs.Equal(o.UPIIDs)
}

// Encode serializes s in the persisted JSON shape.
func Encode(s Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Decode validates data against the snapshot schema and parses it. Every
// failure wraps ErrCorrupt.
func Decode(data []byte) (Snapshot, error) {
	res, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return Snapshot{}, fmt.Errorf("%w: %s", ErrCorrupt, strings.Join(msgs, "; "))
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	if _, ok := s.Selected(); !ok {
		return Snapshot{}, fmt.Errorf("%w: selected bank %q not in identifiers", ErrCorrupt, s.SelectedBank)
	}

	return s, nil
}
