// Package upi derives bank-specific UPI identifiers for credit card bill
// payments from a mobile number and a card number.
package upi

import (
	"errors"
	"fmt"
	"strings"
)

const (
	mobileLen    = 10
	shortCardLen = 15
	longCardLen  = 16
)

// ErrInvalidInput matches every *InvalidInputError via errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InvalidMessage is the text shown to users when input is rejected.
const InvalidMessage = "Please enter a valid 10-digit mobile number and 15 or 16-digit credit card number."

// InvalidInputError reports which input failed validation.
type InvalidInputError struct {
	Field  string
	Length int
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s (got %d characters)", e.Field, e.Reason, e.Length)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Credentials are the two numbers every identifier is derived from.
type Credentials struct {
	MobileNumber string
	CardNumber   string
}

// Validate checks lengths and that both numbers are digits only.
func (c Credentials) Validate() error {
	if len(c.MobileNumber) != mobileLen {
		return &InvalidInputError{Field: "mobile number", Length: len(c.MobileNumber), Reason: "must be 10 digits"}
	}
	if !isDigits(c.MobileNumber) {
		return &InvalidInputError{Field: "mobile number", Length: len(c.MobileNumber), Reason: "must contain only digits"}
	}
	if len(c.CardNumber) != shortCardLen && len(c.CardNumber) != longCardLen {
		return &InvalidInputError{Field: "card number", Length: len(c.CardNumber), Reason: "must be 15 or 16 digits"}
	}
	if !isDigits(c.CardNumber) {
		return &InvalidInputError{Field: "card number", Length: len(c.CardNumber), Reason: "must contain only digits"}
	}
	return nil
}

// Generate validates the inputs and builds the identifier for every bank.
// On invalid input it returns an empty set and an *InvalidInputError.
func Generate(mobileNumber, cardNumber string) (IdentifierSet, error) {
	return Credentials{MobileNumber: mobileNumber, CardNumber: cardNumber}.Generate()
}

// Generate builds the identifier set for c.
func (c Credentials) Generate() (IdentifierSet, error) {
	if err := c.Validate(); err != nil {
		return IdentifierSet{}, err
	}

	last4 := Last4(c.CardNumber)

	var set IdentifierSet
	for b, tmpl := range templates {
		set.ids[b] = tmpl(c.MobileNumber, c.CardNumber, last4)
	}
	set.full = true
	return set, nil
}

// Last4 returns the last four characters of card, or all of it when shorter.
func Last4(card string) string {
	if len(card) <= 4 {
		return card
	}
	return card[len(card)-4:]
}

// MaskCard hides all but the last four digits of card.
func MaskCard(card string) string {
	last := Last4(card)
	return strings.Repeat("•", len(card)-len(last)) + last
}

// SanitizeDigits drops every non-digit from s and truncates to limit digits.
func SanitizeDigits(s string, limit int) string {
	var b strings.Builder
	for _, r := range s {
		if b.Len() >= limit {
			break
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
