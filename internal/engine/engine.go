// Package engine wires the analysis pipeline end to end: normalize, detect
// format, extract, classify, detect violations, compute damages, score. Each
// stage is a pure function over immutable inputs, so a full run is
// synchronous, stateless and idempotent: the same document produces a
// byte-identical AnalysisResult, which matters because the same report is
// re-analyzed across dispute rounds.
package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/credlens/credlens/internal/casescore"
	"github.com/credlens/credlens/internal/classifier"
	"github.com/credlens/credlens/internal/damages"
	"github.com/credlens/credlens/internal/extractor"
	"github.com/credlens/credlens/internal/model"
	"github.com/credlens/credlens/internal/normalizer"
	"github.com/credlens/credlens/internal/violation"
)

// StandingEvidence is the caller-documented harm posture for a run. The
// engine cannot read denial letters out of a credit report; this is external
// evidence supplied alongside the document.
type StandingEvidence struct {
	// ConcreteHarm: the consumer suffered identifiable harm.
	ConcreteHarm bool `json:"concrete_harm"`

	// DenialLetterCount: adverse-action letters on file.
	DenialLetterCount int `json:"denial_letter_count"`

	// DocumentedActualDollars: the documented actual-harm amount.
	DocumentedActualDollars float64 `json:"documented_actual_dollars"`
}

// Input is everything one analysis run consumes. Document bytes and prior
// context are already loaded by the caller; the engine performs no I/O.
type Input struct {
	// Document is the raw report.
	Document model.RawDocument

	// Standing is the caller-documented harm evidence.
	Standing StandingEvidence

	// Prior enables the history-dependent violation patterns. Nil simply
	// disables them; it is not an error.
	Prior *model.PriorRoundContext
}

// Config carries the engine's explicit constants.
type Config struct {
	// Scoring is the damages constant set.
	Scoring damages.ScoringConfig
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() *Config {
	return &Config{Scoring: damages.DefaultScoringConfig()}
}

// Engine is the analysis pipeline. Stateless and safe for concurrent use:
// the registry and config are read-only after construction.
type Engine struct {
	cfg      *Config
	registry *extractor.Registry
}

// New builds an Engine. A nil cfg means defaults.
func New(cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Engine{
		cfg:      cfg,
		registry: extractor.NewRegistry(),
	}
}

// Analyze runs the full pipeline over one document. Caller contract
// violations (unsupported content type, empty body) fail fast before any
// processing; extraction trouble degrades the result instead of failing it;
// internal invariant bugs return a *model.InvariantError.
func (e *Engine) Analyze(input Input) (*model.AnalysisResult, error) {
	raw := input.Document
	if !raw.ContentType.Valid() {
		return nil, fmt.Errorf("analyze: %w: %q", model.ErrUnsupportedContentType, raw.ContentType)
	}
	if len(raw.Body) == 0 {
		return nil, fmt.Errorf("analyze: %w", model.ErrEmptyDocument)
	}

	result := &model.AnalysisResult{
		Fingerprint: Fingerprint(raw),
	}

	// Stage 1-2: normalize and locate sections.
	norm := normalizer.Normalize(raw.Body, raw.ContentType)
	if norm.Degraded {
		result.Degraded = true
		result.Warnings = append(result.Warnings, "document malformed or truncated; normalization is best-effort")
	}

	// Stage 3: format detection + structured extraction + reconciliation.
	ext := extractor.Extract(e.registry, norm, raw.SourceHint)
	result.Strategy = ext.Strategy
	result.PersonalInfo = ext.PersonalInfo
	result.Warnings = append(result.Warnings, ext.Warnings...)
	if !ext.VendorMatched {
		result.Degraded = true
	}

	// Stage 4: classification.
	items, classWarnings, err := classifier.Classify(ext.Items)
	if err != nil {
		return nil, err
	}
	result.Items = items
	result.Warnings = append(result.Warnings, classWarnings...)

	// Stage 5: violation detection.
	violations, vioWarnings, err := violation.Detect(items, input.Prior, raw.ReceivedAt)
	if err != nil {
		return nil, err
	}
	result.Violations = violations
	result.Warnings = append(result.Warnings, vioWarnings...)

	// Stage 6-7: damages and case score.
	result.Standing = deriveStanding(input.Standing, items, violations)
	est, err := damages.Calculate(e.cfg.Scoring, violations, result.Standing)
	if err != nil {
		return nil, err
	}
	result.Damages = est
	result.Score = casescore.Score(result.Standing, violations)

	return result, nil
}

// deriveStanding combines caller-documented evidence with what the report
// itself shows: hard inquiries prove the report was disseminated, and harm
// plus at least one detected inaccuracy supports causation.
func deriveStanding(ev StandingEvidence, items []model.CreditItem, violations []model.Violation) model.Standing {
	st := model.Standing{
		ConcreteHarm:            ev.ConcreteHarm,
		DenialLetterCount:       ev.DenialLetterCount,
		DocumentedActualDollars: ev.DocumentedActualDollars,
	}
	for _, it := range items {
		if it.ItemType == model.ItemInquiry {
			st.Dissemination = true
			break
		}
	}
	st.Causation = ev.ConcreteHarm && len(violations) > 0
	return st
}

// Fingerprint is the deterministic identity of a document: sha256 over the
// content type and the body. Identical input, identical fingerprint,
// identical result.
func Fingerprint(raw model.RawDocument) string {
	h := sha256.New()
	h.Write([]byte(raw.ContentType))
	h.Write([]byte{0})
	h.Write(raw.Body)
	return hex.EncodeToString(h.Sum(nil))
}
