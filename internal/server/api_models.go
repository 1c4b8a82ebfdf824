package server

import (
	"time"

	"github.com/credlens/credlens/internal/engine"
	"github.com/credlens/credlens/internal/model"
)

// AnalyzeRequest is the JSON envelope for submitting a report document.
type AnalyzeRequest struct {
	// DocumentB64 is the base64-encoded document body (HTML bytes, raw PDF
	// bytes, or already-extracted text depending on ContentType).
	DocumentB64 string `json:"document_b64"`

	// ContentType is "html", "pdf-text", or "pdf" (raw PDF; the server
	// extracts text before invoking the engine).
	ContentType string `json:"content_type"`

	// SourceHint optionally names the vendor.
	SourceHint string `json:"source_hint,omitempty"`

	// ReceivedAt is the document date used for reporting-window checks.
	// Zero disables those checks.
	ReceivedAt time.Time `json:"received_at,omitempty"`

	// Standing is the caller-documented harm evidence.
	Standing engine.StandingEvidence `json:"standing"`

	// Prior is the prior-round dispute context, when any.
	Prior *model.PriorRoundContext `json:"prior,omitempty"`

	// Save persists the result to the analysis store.
	Save bool `json:"save,omitempty"`
}

// AnalyzeResponse wraps one analysis result.
type AnalyzeResponse struct {
	// ID is the stored row ID when Save was requested.
	ID string `json:"id,omitempty"`

	// Cached is true when the result came from the fingerprint memo rather
	// than a fresh run. Identical by construction: the engine is idempotent.
	Cached bool `json:"cached"`

	// Result is the full analysis output, warnings and degraded flag
	// included — the review surface must always see them.
	Result *model.AnalysisResult `json:"result"`
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Error string `json:"error"`
}
