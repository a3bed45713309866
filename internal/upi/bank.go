package upi

// Bank identifies one of the card issuers credupi knows a UPI scheme for.
type Bank int

// Banks in display order. The order is part of the output contract.
const (
	Axis Bank = iota
	ICICI
	AUBank
	IDFC
	AMEX
	SBI
	bankCount
)

// NotApplicable is emitted instead of an identifier when a bank's scheme
// does not accept the card length.
const NotApplicable = "Not applicable for 16-digit cards"

var bankNames = [bankCount]string{
	"Axis",
	"ICICI",
	"AU Bank",
	"IDFC",
	"AMEX",
	"SBI",
}

// template builds one bank's identifier from validated input.
type template func(mobile, card, last4 string) string

var templates = [bankCount]template{
	Axis: func(mobile, _, last4 string) string {
		return "CC.91" + mobile + last4 + "@axisbank"
	},
	ICICI: func(_, card, _ string) string {
		return "ccpay." + card + "@icici"
	},
	AUBank: func(mobile, _, last4 string) string {
		return "AUCC" + mobile + last4 + "@AUBANK"
	},
	IDFC: func(_, card, _ string) string {
		return card + ".cc@idfcbank"
	},
	AMEX: func(_, card, _ string) string {
		if len(card) == 15 {
			return "AEBC" + card + "@SC"
		}
		return NotApplicable
	},
	SBI: func(_, card, _ string) string {
		return "Sbicard." + card + "@SBI"
	},
}

// AllBanks returns every bank in display order.
func AllBanks() []Bank {
	out := make([]Bank, bankCount)
	for i := range bankCount {
		out[i] = Bank(i)
	}
	return out
}

// Valid reports whether b is one of the known banks.
func (b Bank) Valid() bool {
	return b >= 0 && b < bankCount
}

func (b Bank) String() string {
	if !b.Valid() {
		return "Unknown"
	}
	return bankNames[b]
}

// ParseBank maps a display name back to its bank. Matching is exact.
func ParseBank(name string) (Bank, bool) {
	for i, n := range bankNames {
		if n == name {
			return Bank(i), true
		}
	}
	return 0, false
}
