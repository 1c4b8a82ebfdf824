// Package normalizer turns raw report documents (HTML exports or extracted
// PDF text) into a clean plain-text representation with located logical
// sections. It is a pure function of its input: parse failures degrade the
// result instead of failing the pipeline.
package normalizer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"

	"github.com/credlens/credlens/internal/model"
)

// sanitizePolicy keeps the structural markup the extraction strategies walk
// (tables, headings, lists) and drops scripts, styles and everything
// presentational. Built once; bluemonday policies are safe for concurrent use.
var sanitizePolicy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"html", "body", "div", "span", "p", "br",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"table", "thead", "tbody", "tr", "td", "th", "caption",
		"ul", "ol", "li", "dl", "dt", "dd",
		"b", "strong", "i", "em", "section", "article", "header",
	)
	p.AllowAttrs("class", "id").Globally()
	return p
}

var (
	whitespaceRun = regexp.MustCompile(`[ \t]+`)
	blankLines    = regexp.MustCompile(`\n{3,}`)
)

// Normalize produces the NormalizedDocument for a raw report. It never
// returns an error for malformed content: truncated or broken markup yields a
// best-effort partial result with Degraded set.
func Normalize(body []byte, contentType model.ContentType) *model.NormalizedDocument {
	text, encoding := decode(body)

	switch contentType {
	case model.ContentTypeHTML:
		return normalizeHTML(text, encoding)
	default:
		return normalizePDFText(text, encoding)
	}
}

// decode detects the character encoding and returns the document as a valid
// UTF-8 string. Non-UTF-8 input is treated as Windows-1252, the de-facto
// encoding of older bureau exports.
func decode(body []byte) (string, string) {
	if utf8.Valid(body) {
		return string(body), "utf-8"
	}
	var b strings.Builder
	b.Grow(len(body))
	for _, c := range body {
		b.WriteRune(charmap.Windows1252.DecodeByte(c))
	}
	return b.String(), "windows-1252"
}

func normalizeHTML(raw string, encoding string) *model.NormalizedDocument {
	doc := &model.NormalizedDocument{
		PageCount: 1,
		Encoding:  encoding,
	}

	clean := sanitizePolicy.Sanitize(raw)

	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(clean))
	if err != nil {
		// html.Parse almost never fails, but when it does we still owe the
		// caller a best-effort text body.
		doc.Degraded = true
		doc.Text = bestEffortText(raw)
		if doc.Text != "" {
			doc.Sections = []model.Section{{Kind: model.SectionUnknown, Text: doc.Text}}
		}
		return doc
	}

	doc.HTML = clean
	doc.Text = collapse(parsed.Text())
	doc.Sections = locateHTMLSections(parsed)

	if doc.Text == "" {
		doc.Degraded = true
	}
	if len(doc.Sections) == 0 && doc.Text != "" {
		// No recognizable headings: keep the whole body as one unknown
		// section so downstream strategies still have material to work on.
		doc.Sections = []model.Section{{Kind: model.SectionUnknown, Text: doc.Text, HTML: clean}}
	}
	return doc
}

func normalizePDFText(raw string, encoding string) *model.NormalizedDocument {
	pages := strings.Split(raw, "\f")
	doc := &model.NormalizedDocument{
		PageCount: len(pages),
		Encoding:  encoding,
	}

	doc.Text = collapse(strings.Join(pages, "\n"))
	if doc.Text == "" {
		doc.Degraded = true
		return doc
	}

	doc.Sections = locateTextSections(doc.Text)
	if len(doc.Sections) == 0 {
		doc.Sections = []model.Section{{Kind: model.SectionUnknown, Text: doc.Text}}
	}
	return doc
}

// bestEffortText salvages visible text from markup the full parser rejected,
// tokenizing as far as the input allows. Script, style and noscript bodies
// are skipped.
func bestEffortText(raw string) string {
	tz := html.NewTokenizer(strings.NewReader(raw))
	var sb strings.Builder
	skip := 0
	for {
		switch tz.Next() {
		case html.ErrorToken:
			return collapse(sb.String())
		case html.StartTagToken:
			if name, _ := tz.TagName(); skippedContent(name) {
				skip++
			}
		case html.EndTagToken:
			if name, _ := tz.TagName(); skippedContent(name) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				sb.Write(tz.Text())
				sb.WriteByte('\n')
			}
		}
	}
}

func skippedContent(tag []byte) bool {
	switch string(tag) {
	case "script", "style", "noscript":
		return true
	}
	return false
}

// collapse normalizes whitespace: runs of spaces/tabs become one space, CRLF
// becomes LF, and blank-line runs shrink to a single blank line.
func collapse(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = whitespaceRun.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	s = strings.Join(lines, "\n")
	s = blankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
