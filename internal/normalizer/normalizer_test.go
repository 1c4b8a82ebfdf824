package normalizer

import (
	"strings"
	"testing"

	"github.com/credlens/credlens/internal/model"
)

func TestNormalizeHTML_BasicReport(t *testing.T) {
	html := []byte(`
		<!DOCTYPE html>
		<html>
		<head>
			<title>Credit Report</title>
			<script>trackPageView();</script>
			<style>.hidden { display: none; }</style>
		</head>
		<body>
			<h2>Personal Information</h2>
			<p>Name: Jane Q Consumer</p>
			<h2>Collections</h2>
			<table>
				<tr><td>MIDLAND CREDIT</td><td>$500</td></tr>
			</table>
			<h2>Inquiries</h2>
			<p>ACME BANK 2024-01-15</p>
		</body>
		</html>
	`)

	doc := Normalize(html, model.ContentTypeHTML)

	if doc.Degraded {
		t.Errorf("Expected well-formed HTML not to be degraded")
	}
	if doc.Encoding != "utf-8" {
		t.Errorf("Expected utf-8 encoding, got %s", doc.Encoding)
	}
	if strings.Contains(doc.Text, "trackPageView") {
		t.Errorf("Expected script content to be stripped, text: %q", doc.Text)
	}
	if strings.Contains(doc.Text, "display: none") {
		t.Errorf("Expected style content to be stripped, text: %q", doc.Text)
	}
	if !strings.Contains(doc.Text, "Jane Q Consumer") {
		t.Errorf("Expected body text to survive, text: %q", doc.Text)
	}

	if len(doc.Sections) != 3 {
		t.Fatalf("Expected 3 sections, got %d", len(doc.Sections))
	}
	wantKinds := []model.SectionKind{
		model.SectionPersonalInfo,
		model.SectionCollections,
		model.SectionInquiries,
	}
	for i, want := range wantKinds {
		if doc.Sections[i].Kind != want {
			t.Errorf("Section %d: expected kind %s, got %s", i, want, doc.Sections[i].Kind)
		}
	}
	if !strings.Contains(doc.Sections[1].Text, "MIDLAND CREDIT") {
		t.Errorf("Expected collections section to hold the table text, got %q", doc.Sections[1].Text)
	}
}

func TestNormalizeHTML_NoHeadings(t *testing.T) {
	html := []byte(`<html><body><p>MIDLAND CREDIT balance $500</p></body></html>`)

	doc := Normalize(html, model.ContentTypeHTML)

	if len(doc.Sections) != 1 {
		t.Fatalf("Expected 1 fallback section, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Kind != model.SectionUnknown {
		t.Errorf("Expected fallback section kind unknown, got %s", doc.Sections[0].Kind)
	}
	if !strings.Contains(doc.Sections[0].Text, "MIDLAND CREDIT") {
		t.Errorf("Expected fallback section to carry the whole text")
	}
}

func TestNormalizeHTML_EmptyBodyDegrades(t *testing.T) {
	doc := Normalize([]byte("<html><body></body></html>"), model.ContentTypeHTML)
	if !doc.Degraded {
		t.Errorf("Expected empty document to be marked degraded")
	}
	if doc.Text != "" {
		t.Errorf("Expected empty text, got %q", doc.Text)
	}
}

func TestNormalizeHTML_TruncatedMarkup(t *testing.T) {
	// Truncated mid-tag. The parser recovers; whatever text exists must
	// still come through and the call must not panic or error.
	html := []byte(`<html><body><h2>Collections</h2><table><tr><td>PORTFOLIO RECOV`)

	doc := Normalize(html, model.ContentTypeHTML)

	if !strings.Contains(doc.Text, "PORTFOLIO RECOV") {
		t.Errorf("Expected partial text to be recovered, got %q", doc.Text)
	}
}

func TestNormalizeHTML_Windows1252(t *testing.T) {
	// 0xE9 is é in Windows-1252 and invalid as a standalone UTF-8 byte.
	html := append([]byte(`<html><body><p>Cr`), 0xE9)
	html = append(html, []byte(`dit Report</p></body></html>`)...)

	doc := Normalize(html, model.ContentTypeHTML)

	if doc.Encoding != "windows-1252" {
		t.Errorf("Expected windows-1252 encoding, got %s", doc.Encoding)
	}
	if !strings.Contains(doc.Text, "Crédit Report") {
		t.Errorf("Expected transcoded text, got %q", doc.Text)
	}
}

func TestNormalizeHTML_Windows1252C1Range(t *testing.T) {
	// 0x93/0x94 are curly quotes and 0x97 is an em dash in Windows-1252;
	// a Latin-1 promotion would turn them into C1 control characters.
	html := append([]byte(`<html><body><p>Status: `), 0x93)
	html = append(html, []byte(`never late`)...)
	html = append(html, 0x94, ' ', 0x97, ' ')
	html = append(html, []byte(`current</p></body></html>`)...)

	doc := Normalize(html, model.ContentTypeHTML)

	if doc.Encoding != "windows-1252" {
		t.Errorf("Expected windows-1252 encoding, got %s", doc.Encoding)
	}
	if !strings.Contains(doc.Text, "“never late” — current") {
		t.Errorf("Expected curly quotes and em dash transcoded, got %q", doc.Text)
	}
	if strings.ContainsAny(doc.Text, "") {
		t.Errorf("Expected no C1 control characters, got %q", doc.Text)
	}
}

func TestNormalizePDFText_PagesAndSections(t *testing.T) {
	raw := []byte("Personal Information\nName: Jane Q Consumer\n\nCollections\nMIDLAND CREDIT $500\fInquiries\nACME BANK 2024-01-15")

	doc := Normalize(raw, model.ContentTypePDFText)

	if doc.PageCount != 2 {
		t.Errorf("Expected 2 pages, got %d", doc.PageCount)
	}
	if doc.Degraded {
		t.Errorf("Expected non-empty pdf text not to be degraded")
	}
	if len(doc.Sections) != 3 {
		t.Fatalf("Expected 3 sections, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Kind != model.SectionPersonalInfo {
		t.Errorf("Expected first section personal_info, got %s", doc.Sections[0].Kind)
	}
	if doc.Sections[1].Kind != model.SectionCollections {
		t.Errorf("Expected second section collections, got %s", doc.Sections[1].Kind)
	}
	if !strings.Contains(doc.Sections[1].Text, "MIDLAND CREDIT") {
		t.Errorf("Expected section body under the heading, got %q", doc.Sections[1].Text)
	}
}

func TestNormalizePDFText_LongLineIsNotAHeading(t *testing.T) {
	long := "This paragraph mentions collections activity in passing and runs well past sixty characters in total length."
	doc := Normalize([]byte(long), model.ContentTypePDFText)

	if len(doc.Sections) != 1 || doc.Sections[0].Kind != model.SectionUnknown {
		t.Errorf("Expected one unknown fallback section, got %+v", doc.Sections)
	}
}

func TestClassifyHeading(t *testing.T) {
	cases := []struct {
		heading string
		want    model.SectionKind
	}{
		{"Personal Information", model.SectionPersonalInfo},
		{"PERSONAL PROFILE", model.SectionPersonalInfo},
		{"Collections", model.SectionCollections},
		{"Collection Accounts", model.SectionCollections},
		{"Public Records", model.SectionPublicRecords},
		{"Hard Inquiries", model.SectionInquiries},
		{"Inquiry History", model.SectionInquiries},
		{"Account History", model.SectionTradelines},
		{"Revolving Accounts", model.SectionTradelines},
		{"Derogatory Items", model.SectionTradelines},
		{"Summary", model.SectionUnknown},
	}
	for _, c := range cases {
		if got := ClassifyHeading(c.heading); got != c.want {
			t.Errorf("ClassifyHeading(%q): expected %s, got %s", c.heading, c.want, got)
		}
	}
}

func TestCollapse(t *testing.T) {
	in := "a   b\t\tc\r\nd\n\n\n\n\ne"
	want := "a b c\nd\n\ne"
	if got := collapse(in); got != want {
		t.Errorf("collapse: expected %q, got %q", want, got)
	}
}
