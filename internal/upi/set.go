package upi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// IdentifierSet maps every bank to its generated identifier. The zero value
// is the empty set; a non-empty set always holds all banks.
type IdentifierSet struct {
	ids  [bankCount]string
	full bool
}

// Empty reports whether nothing has been generated.
func (s IdentifierSet) Empty() bool {
	return !s.full
}

// Len returns the number of banks in the set.
func (s IdentifierSet) Len() int {
	if !s.full {
		return 0
	}
	return int(bankCount)
}

// Get returns the identifier for b.
func (s IdentifierSet) Get(b Bank) (string, bool) {
	if !s.full || !b.Valid() {
		return "", false
	}
	return s.ids[b], true
}

// Banks returns the banks present in the set, in display order.
func (s IdentifierSet) Banks() []Bank {
	if !s.full {
		return nil
	}
	return AllBanks()
}

// First returns the first bank of the set.
func (s IdentifierSet) First() (Bank, bool) {
	if !s.full {
		return 0, false
	}
	return Axis, true
}

// Map returns a copy keyed by bank display name.
func (s IdentifierSet) Map() map[string]string {
	out := make(map[string]string, s.Len())
	for _, b := range s.Banks() {
		out[b.String()] = s.ids[b]
	}
	return out
}

// Equal reports whether both sets hold the same identifiers.
func (s IdentifierSet) Equal(o IdentifierSet) bool {
	return s == o
}

// MarshalJSON writes the set as an object keyed by display name, in display
// order.
func (s IdentifierSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, b := range s.Banks() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(b.String())
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(s.ids[b])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts an empty object or an object naming every bank
// exactly once. Unknown banks and partial sets are rejected.
func (s *IdentifierSet) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode identifiers: %w", err)
	}

	var out IdentifierSet
	if len(raw) == 0 {
		*s = out
		return nil
	}

	for name, id := range raw {
		b, ok := ParseBank(name)
		if !ok {
			return fmt.Errorf("decode identifiers: unknown bank %q", name)
		}
		out.ids[b] = id
	}
	if len(raw) != int(bankCount) {
		return fmt.Errorf("decode identifiers: got %d banks, want %d", len(raw), int(bankCount))
	}

	out.full = true
	*s = out
	return nil
}
