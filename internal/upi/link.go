package upi

import (
	"net/url"
	"strings"
)

// currency is the only currency UPI intents carry here.
const currency = "INR"

// Payable reports whether id looks like a payment address rather than the
// not-applicable placeholder.
func Payable(id string) bool {
	return id != NotApplicable && strings.Contains(id, "@")
}

// PayURI builds the standard UPI intent link handed to payment apps.
func PayURI(id string, b Bank) string {
	return "upi://pay?pa=" + encodeComponent(id) +
		"&pn=" + encodeComponent(b.String()) +
		"&cu=" + currency
}

// encodeComponent escapes s the way browsers' encodeURIComponent does:
// spaces become %20 and only A-Z a-z 0-9 - _ . ! ~ * ' ( ) stay literal.
func encodeComponent(s string) string {
	escaped := url.QueryEscape(s)
	return componentFixer.Replace(escaped)
}

var componentFixer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)
