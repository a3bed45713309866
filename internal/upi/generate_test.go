package upi

import (
	"encoding/json"
	"errors"
	"testing"
)

const (
	testMobile    = "9876543210"
	testCard16    = "4111111111111111"
	testCard15    = "411111111111111"
	testAmexCard  = "378282246310005"
	testOtherCard = "5500005555555559"
)

func TestGenerateSixteenDigitCard(t *testing.T) {
	set, err := Generate(testMobile, testCard16)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	want := map[Bank]string{
		Axis:   "CC.9198765432101111@axisbank",
		ICICI:  "ccpay.4111111111111111@icici",
		AUBank: "AUCC98765432101111@AUBANK",
		IDFC:   "4111111111111111.cc@idfcbank",
		AMEX:   NotApplicable,
		SBI:    "Sbicard.4111111111111111@SBI",
	}

	for b, w := range want {
		t.Run(b.String(), func(t *testing.T) {
			got, ok := set.Get(b)
			if !ok {
				t.Fatalf("%s missing from set", b)
			}
			if got != w {
				t.Errorf("%s = %q, want %q", b, got, w)
			}
		})
	}
}

func TestGenerateFifteenDigitCard(t *testing.T) {
	set, err := Generate(testMobile, testCard15)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	tests := []struct {
		bank Bank
		want string
	}{
		{Axis, "CC.9198765432101111@axisbank"},
		{ICICI, "ccpay.411111111111111@icici"},
		{AUBank, "AUCC98765432101111@AUBANK"},
		{IDFC, "411111111111111.cc@idfcbank"},
		{AMEX, "AEBC411111111111111@SC"},
		{SBI, "Sbicard.411111111111111@SBI"},
	}

	for _, tt := range tests {
		t.Run(tt.bank.String(), func(t *testing.T) {
			got, _ := set.Get(tt.bank)
			if got != tt.want {
				t.Errorf("%s = %q, want %q", tt.bank, got, tt.want)
			}
		})
	}
}

func TestGenerateAmexBranch(t *testing.T) {
	mobiles := []string{"0000000000", "9876543210", "1234567890"}
	cards15 := []string{testCard15, testAmexCard, "000000000000000"}
	cards16 := []string{testCard16, testOtherCard, "0000000000000000"}

	for _, m := range mobiles {
		for _, c := range cards15 {
			set, err := Generate(m, c)
			if err != nil {
				t.Fatalf("generate(%s, %s): %v", m, c, err)
			}
			got, _ := set.Get(AMEX)
			if want := "AEBC" + c + "@SC"; got != want {
				t.Errorf("AMEX(%s, %s) = %q, want %q", m, c, got, want)
			}
		}
		for _, c := range cards16 {
			set, err := Generate(m, c)
			if err != nil {
				t.Fatalf("generate(%s, %s): %v", m, c, err)
			}
			if got, _ := set.Get(AMEX); got != NotApplicable {
				t.Errorf("AMEX(%s, %s) = %q, want %q", m, c, got, NotApplicable)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(testMobile, testOtherCard)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(testMobile, testOtherCard)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Errorf("sets differ:\n%v\n%v", a.Map(), b.Map())
	}
}

func TestGenerateAlwaysSixBanksInOrder(t *testing.T) {
	for _, card := range []string{testCard15, testCard16} {
		set, err := Generate(testMobile, card)
		if err != nil {
			t.Fatal(err)
		}
		if set.Len() != 6 {
			t.Fatalf("len = %d, want 6", set.Len())
		}

		wantOrder := []string{"Axis", "ICICI", "AU Bank", "IDFC", "AMEX", "SBI"}
		banks := set.Banks()
		for i, name := range wantOrder {
			if banks[i].String() != name {
				t.Errorf("bank %d = %s, want %s", i, banks[i], name)
			}
		}

		first, ok := set.First()
		if !ok || first != Axis {
			t.Errorf("first = %v, %v; want Axis", first, ok)
		}
	}
}

func TestGenerateInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mobile string
		card   string
		field  string
	}{
		{"empty", "", "", "mobile number"},
		{"short mobile", "987654321", testCard16, "mobile number"},
		{"long mobile", "98765432100", testCard16, "mobile number"},
		{"letters in mobile", "98765abcde", testCard16, "mobile number"},
		{"short card", testMobile, "41111111111111", "card number"},
		{"long card", testMobile, "41111111111111111", "card number"},
		{"letters in card", testMobile, "41111111111111xx", "card number"},
		{"spaces in card", testMobile, "4111 1111 11111", "card number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Generate(tt.mobile, tt.card)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("error %v does not match ErrInvalidInput", err)
			}

			var ie *InvalidInputError
			if !errors.As(err, &ie) {
				t.Fatalf("error %T is not *InvalidInputError", err)
			}
			if ie.Field != tt.field {
				t.Errorf("field = %q, want %q", ie.Field, tt.field)
			}
			if !set.Empty() || set.Len() != 0 {
				t.Errorf("invalid input produced identifiers: %v", set.Map())
			}
		})
	}
}

func TestLast4(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"4111111111111234", "1234"},
		{"123", "123"},
		{"1234", "1234"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Last4(tt.in); got != tt.want {
			t.Errorf("Last4(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMaskCard(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"4111111111111234", "••••••••••••1234"},
		{"411111111111234", "•••••••••••1234"},
		{"12", "12"},
	}
	for _, tt := range tests {
		if got := MaskCard(tt.in); got != tt.want {
			t.Errorf("MaskCard(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeDigits(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"digits only", "9876543210", 10, "9876543210"},
		{"strips separators", "98765-43210", 10, "9876543210"},
		{"truncates", "987654321012", 10, "9876543210"},
		{"card with spaces", "4111 1111 1111 1111 99", 16, "4111111111111111"},
		{"no digits", "abc", 10, ""},
		{"unicode", "९८७6", 10, "6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeDigits(tt.in, tt.limit); got != tt.want {
				t.Errorf("SanitizeDigits(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
			}
		})
	}
}

func TestParseBank(t *testing.T) {
	for _, b := range AllBanks() {
		got, ok := ParseBank(b.String())
		if !ok || got != b {
			t.Errorf("ParseBank(%q) = %v, %v", b.String(), got, ok)
		}
	}

	for _, name := range []string{"", "axis", "AU", "HDFC"} {
		if _, ok := ParseBank(name); ok {
			t.Errorf("ParseBank(%q) should fail", name)
		}
	}

	if Bank(42).Valid() || Bank(-1).Valid() {
		t.Error("out-of-range banks should be invalid")
	}
}

func TestIdentifierSetJSONOrder(t *testing.T) {
	set, err := Generate(testMobile, testCard15)
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(set)
	if err != nil {
		t.Fatal(err)
	}

	want := `{"Axis":"CC.9198765432101111@axisbank",` +
		`"ICICI":"ccpay.411111111111111@icici",` +
		`"AU Bank":"AUCC98765432101111@AUBANK",` +
		`"IDFC":"411111111111111.cc@idfcbank",` +
		`"AMEX":"AEBC411111111111111@SC",` +
		`"SBI":"Sbicard.411111111111111@SBI"}`
	if string(data) != want {
		t.Errorf("json:\n got %s\nwant %s", data, want)
	}

	var back IdentifierSet
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(set) {
		t.Errorf("round trip changed set: %v", back.Map())
	}
}

func TestIdentifierSetEmptyJSON(t *testing.T) {
	data, err := json.Marshal(IdentifierSet{})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{}" {
		t.Errorf("empty set json = %s, want {}", data)
	}

	var s IdentifierSet
	if err := json.Unmarshal([]byte(`{}`), &s); err != nil {
		t.Fatal(err)
	}
	if !s.Empty() {
		t.Error("expected empty set")
	}
}

func TestIdentifierSetRejectsBadJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown bank", `{"HDFC":"x@hdfc"}`},
		{"partial", `{"Axis":"a","ICICI":"b"}`},
		{"not an object", `["Axis"]`},
		{"wrong value type", `{"Axis":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s IdentifierSet
			if err := json.Unmarshal([]byte(tt.in), &s); err == nil {
				t.Errorf("expected error for %s", tt.in)
			}
		})
	}
}
