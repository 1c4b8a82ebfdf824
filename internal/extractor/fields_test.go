package extractor

import (
	"testing"

	"github.com/credlens/credlens/internal/model"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$500", 500, true},
		{"$1,204.55", 1204.55, true},
		{"1,204", 1204, true},
		{"$ 750.00", 750, true},
		{"-$32.10", -32.10, true},
		{"balance unavailable", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := parseMoney(c.in)
		if ok != c.ok {
			t.Errorf("parseMoney(%q): expected ok=%v, got %v", c.in, c.ok, ok)
			continue
		}
		if ok && got != c.want {
			t.Errorf("parseMoney(%q): expected %v, got %v", c.in, c.want, got)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2019-06-15", "2019-06-15"},
		{"06/15/2019", "2019-06-15"},
		{"6/5/2019", "2019-06-05"},
		{"06-15-2019", "2019-06-15"},
		{"Jun 15, 2019", "2019-06-15"},
		{"January 3, 2021", "2021-01-03"},
		{"Jun 2019", "2019-06"},
		{"03/2021", "2021-03"},
		{"2021-03", "2021-03"},
		{"not a date", model.Unknown},
		{"", model.Unknown},
	}
	for _, c := range cases {
		if got := normalizeDate(c.in); got != c.want {
			t.Errorf("normalizeDate(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestExtractMaskedID(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"****1234", "****1234"},
		{"XXXX-5678", "XXXX-5678"},
		{"xx 4321", "xx4321"},
		{"account ****1234 open", "****1234"},
		// Bare digit runs are masked down to the last four digits.
		{"4012001234567890", "****7890"},
		{"1234", "****1234"},
		{"no id here", model.Unknown},
	}
	for _, c := range cases {
		if got := extractMaskedID(c.in); got != c.want {
			t.Errorf("extractMaskedID(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestBureauFromText(t *testing.T) {
	cases := []struct {
		in   string
		want model.Bureau
		ok   bool
	}{
		{"TransUnion", model.TransUnion, true},
		{"Trans Union", model.TransUnion, true},
		{"Reported by Experian", model.Experian, true},
		{"EQUIFAX", model.Equifax, true},
		{"Chase Bank", "", false},
	}
	for _, c := range cases {
		got, ok := bureauFromText(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("bureauFromText(%q): expected (%q,%v), got (%q,%v)", c.in, c.want, c.ok, got, ok)
		}
	}
}

func TestFieldLabelMatches(t *testing.T) {
	if !fieldLabelMatches("Account Number", "account #", "account no", "account number") {
		t.Errorf("Expected 'Account Number' to match")
	}
	if !fieldLabelMatches("  Pay Status ", "status") {
		t.Errorf("Expected 'Pay Status' to match status")
	}
	if fieldLabelMatches("Balance", "status") {
		t.Errorf("Expected 'Balance' not to match status")
	}
}
