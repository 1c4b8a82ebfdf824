// Package extractor pulls personal information and reported items out of
// normalized credit report documents. A small registry of vendor-specific
// extraction strategies is consulted in priority order; when no vendor
// fingerprint matches, a generic heuristic strategy takes over and the run is
// marked degraded. Every strategy is a pure function of the normalized
// document.
package extractor

import (
	"github.com/credlens/credlens/internal/model"
)

// Strategy is one vendor-specific extraction implementation.
type Strategy interface {
	// Name returns the strategy identifier recorded on the AnalysisResult.
	Name() string

	// Match reports whether the normalized document carries this vendor's
	// fingerprint. hint is the caller-declared vendor name, used only to
	// break ties; an empty hint never prevents a match.
	Match(doc *model.NormalizedDocument, hint string) bool

	// Extract pulls personal info and raw item observations from the
	// document. Ambiguous or missing fields come back as model.Unknown,
	// never guessed. Warnings describe extraction gaps.
	Extract(doc *model.NormalizedDocument) (model.PersonalInfo, []model.RawItem, []string)
}

// Registry holds the ordered strategy list plus the generic fallback.
// Order matters: more specific vendor signatures are checked before
// broader ones.
type Registry struct {
	strategies []Strategy
	generic    Strategy
}

// NewRegistry builds the default registry with the built-in vendor
// strategies.
func NewRegistry() *Registry {
	return &Registry{
		strategies: []Strategy{
			newIdentityIQStrategy(),
			newCreditKarmaStrategy(),
			newExperianStrategy(),
		},
		generic: newGenericStrategy(),
	}
}

// Register appends a strategy after the built-ins but before the generic
// fallback.
func (r *Registry) Register(s Strategy) {
	r.strategies = append(r.strategies, s)
}

// Detect selects the extraction strategy for a document. The second return
// is false when no vendor fingerprint matched and the generic heuristic was
// selected; callers surface that as a degraded-run warning.
func (r *Registry) Detect(doc *model.NormalizedDocument, hint string) (Strategy, bool) {
	for _, s := range r.strategies {
		if s.Match(doc, hint) {
			return s, true
		}
	}
	return r.generic, false
}
