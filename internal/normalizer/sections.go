package normalizer

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/credlens/credlens/internal/model"
)

// headingPattern maps a heading regex to the section it announces. Checked in
// order; first match wins. The patterns are shared between the HTML and the
// pdf-text locators so both inputs section identically.
type headingPattern struct {
	re   *regexp.Regexp
	kind model.SectionKind
}

var headingPatterns = []headingPattern{
	{regexp.MustCompile(`(?i)\bpersonal\s+(information|profile|data)\b`), model.SectionPersonalInfo},
	{regexp.MustCompile(`(?i)\bconsumer\s+information\b`), model.SectionPersonalInfo},
	{regexp.MustCompile(`(?i)\bcollections?\b`), model.SectionCollections},
	{regexp.MustCompile(`(?i)\bpublic\s+records?\b`), model.SectionPublicRecords},
	{regexp.MustCompile(`(?i)\b(hard\s+)?inquir(y|ies)\b`), model.SectionInquiries},
	{regexp.MustCompile(`(?i)\b(trade\s?lines?|account\s+(history|information|summary)|credit\s+accounts?|open\s+accounts?|revolving\s+accounts?|instal?lment\s+accounts?)\b`), model.SectionTradelines},
	{regexp.MustCompile(`(?i)\b(negative|derogatory|adverse)\s+(items?|accounts?|information)\b`), model.SectionTradelines},
}

// ClassifyHeading maps heading text to a section kind, or SectionUnknown.
func ClassifyHeading(text string) model.SectionKind {
	for _, hp := range headingPatterns {
		if hp.re.MatchString(text) {
			return hp.kind
		}
	}
	return model.SectionUnknown
}

const headingSelector = "h1, h2, h3, h4, h5, h6"

// locateHTMLSections walks heading elements and captures what follows each
// one (up to the next heading) as the section body. Vendors nest reports
// inconsistently, so when a heading has no following siblings the parent
// container is used as a best-effort body.
func locateHTMLSections(doc *goquery.Document) []model.Section {
	var sections []model.Section

	doc.Find(headingSelector).Each(func(_ int, h *goquery.Selection) {
		heading := strings.TrimSpace(h.Text())
		if heading == "" {
			return
		}
		kind := ClassifyHeading(heading)
		if kind == model.SectionUnknown {
			return
		}

		body := h.NextUntil(headingSelector)
		htmlFragment, text := renderSelection(body)
		if strings.TrimSpace(text) == "" {
			if parent := h.Parent(); parent.Length() > 0 {
				if frag, err := goquery.OuterHtml(parent); err == nil {
					htmlFragment = frag
				}
				text = parent.Text()
			}
		}

		sections = append(sections, model.Section{
			Kind:    kind,
			Heading: heading,
			Text:    collapse(text),
			HTML:    htmlFragment,
		})
	})

	return sections
}

func renderSelection(sel *goquery.Selection) (string, string) {
	var html strings.Builder
	var text strings.Builder
	sel.Each(func(_ int, s *goquery.Selection) {
		if frag, err := goquery.OuterHtml(s); err == nil {
			html.WriteString(frag)
		}
		text.WriteString(s.Text())
		text.WriteString("\n")
	})
	return html.String(), text.String()
}

// locateTextSections scans normalized plain text (pdf-text input) for heading
// lines: short lines matching a known heading pattern. Everything until the
// next heading belongs to the section.
func locateTextSections(text string) []model.Section {
	lines := strings.Split(text, "\n")

	type mark struct {
		line    int
		heading string
		kind    model.SectionKind
	}
	var marks []mark
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		// Headings in report text are short; long lines are body content
		// that merely mentions a keyword.
		if trimmed == "" || len(trimmed) > 60 {
			continue
		}
		if kind := ClassifyHeading(trimmed); kind != model.SectionUnknown {
			marks = append(marks, mark{line: i, heading: trimmed, kind: kind})
		}
	}

	var sections []model.Section
	for i, m := range marks {
		end := len(lines)
		if i+1 < len(marks) {
			end = marks[i+1].line
		}
		body := strings.TrimSpace(strings.Join(lines[m.line+1:end], "\n"))
		sections = append(sections, model.Section{
			Kind:    m.kind,
			Heading: m.heading,
			Text:    body,
		})
	}
	return sections
}
