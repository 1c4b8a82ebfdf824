package model

import "time"

// ContentType identifies the declared format of an uploaded report document.
type ContentType string

const (
	// ContentTypeHTML is a raw HTML export from a credit-monitoring service
	// or a bureau's web portal.
	ContentTypeHTML ContentType = "html"

	// ContentTypePDFText is plain text already extracted from a PDF report.
	// The engine never parses PDF bytes itself; callers convert first
	// (see internal/pdftext).
	ContentTypePDFText ContentType = "pdf-text"
)

// Valid reports whether the content type is one the engine accepts.
func (c ContentType) Valid() bool {
	return c == ContentTypeHTML || c == ContentTypePDFText
}

// RawDocument is the immutable input to an analysis run: the uploaded report
// bytes plus whatever the caller knows about them. Created once per upload,
// never mutated.
type RawDocument struct {
	// Body is the raw document content (HTML bytes or extracted PDF text).
	Body []byte `json:"-"`

	// ContentType is the declared format of Body.
	ContentType ContentType `json:"content_type"`

	// SourceHint is the vendor name if the caller knows it (e.g. "identityiq").
	// Empty when unknown; the format detector decides either way and the hint
	// only breaks fingerprint ties.
	SourceHint string `json:"source_hint,omitempty"`

	// ReceivedAt is when the document was obtained. It is the reference date
	// for obsolescence checks (legal reporting windows), supplied by the
	// caller so the same input always produces the same output.
	ReceivedAt time.Time `json:"received_at"`
}

// SectionKind labels a logical section located in a normalized document.
type SectionKind string

const (
	SectionPersonalInfo  SectionKind = "personal_information"
	SectionTradelines    SectionKind = "tradelines"
	SectionCollections   SectionKind = "collections"
	SectionPublicRecords SectionKind = "public_records"
	SectionInquiries     SectionKind = "inquiries"
	SectionUnknown       SectionKind = "unknown"
)

// Section is one logical region of a normalized document, located by heading
// pattern matching.
type Section struct {
	// Kind is the recognized section category.
	Kind SectionKind `json:"kind"`

	// Heading is the heading text that located this section.
	Heading string `json:"heading"`

	// Text is the normalized plain text of the section body.
	Text string `json:"text"`

	// HTML is the section's markup when the source was HTML; empty for
	// pdf-text input. Extraction strategies that walk tables need it.
	HTML string `json:"-"`
}

// NormalizedDocument is the cleaned representation of a RawDocument: markup
// noise stripped, whitespace collapsed, logical sections located. Owned by the
// pipeline run that created it and discarded after extraction.
type NormalizedDocument struct {
	// Text is the full normalized plain text.
	Text string `json:"text"`

	// HTML is the sanitized markup (script/style removed) when the source was
	// HTML; empty for pdf-text input.
	HTML string `json:"-"`

	// Sections are the located logical sections, in document order.
	Sections []Section `json:"sections"`

	// PageCount is the page count for pdf-text input (form-feed separated),
	// 1 for HTML.
	PageCount int `json:"page_count"`

	// Encoding is the detected character encoding of the source.
	Encoding string `json:"encoding"`

	// Degraded is true when the document was truncated or malformed and the
	// normalizer returned a best-effort partial result.
	Degraded bool `json:"degraded"`
}
