package pdftext

import (
	"strings"
	"testing"
)

func TestTextFromStream(t *testing.T) {
	stream := []byte(`BT
/F1 12 Tf
72 720 Td
(Personal Information) Tj
0 -14 Td
(Name: Jane Q Consumer) Tj
T*
(Balance: $500) Tj
ET`)

	got := textFromStream(stream)

	for _, want := range []string{"Personal Information", "Name: Jane Q Consumer", "Balance: $500"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected %q in extracted text, got %q", want, got)
		}
	}
	// Td and T* break lines.
	if !strings.Contains(got, "Consumer\nBalance") {
		t.Errorf("Expected a line break between text runs, got %q", got)
	}
}

func TestTextFromStream_TJArray(t *testing.T) {
	stream := []byte(`[(Credit) -250 (Report)] TJ`)
	got := textFromStream(stream)
	if got != "CreditReport" {
		t.Errorf("Expected concatenated TJ strings, got %q", got)
	}
}

func TestTextFromStream_IgnoresNonTextOperators(t *testing.T) {
	stream := []byte(`q
1 0 0 1 0 0 cm
0.5 g
re f
Q`)
	if got := textFromStream(stream); got != "" {
		t.Errorf("Expected no text from drawing operators, got %q", got)
	}
}

func TestDecodePDFString(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`plain`, "plain"},
		{`a\(b\)c`, "a(b)c"},
		{`line\nbreak`, "line\nbreak"},
		{`tab\there`, "tab\there"},
		{`back\\slash`, "back\\slash"},
	}
	for _, c := range cases {
		if got := decodePDFString([]byte(c.in)); got != c.want {
			t.Errorf("decodePDFString(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestExtractText_RejectsGarbage(t *testing.T) {
	if _, _, err := ExtractText([]byte("not a pdf at all")); err == nil {
		t.Errorf("Expected an error for non-PDF input")
	}
}
