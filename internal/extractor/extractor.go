package extractor

import (
	"github.com/credlens/credlens/internal/model"
)

// Result is the extractor stage output: one PersonalInfo, the reconciled item
// observations, and everything the review UI needs to judge extraction
// quality.
type Result struct {
	// PersonalInfo extracted once for the document.
	PersonalInfo model.PersonalInfo

	// Items are the bureau-reconciled observations, in deterministic order.
	Items []model.RawItem

	// Strategy is the name of the selected extraction strategy.
	Strategy string

	// VendorMatched is false when no vendor fingerprint matched and the
	// generic heuristic ran instead.
	VendorMatched bool

	// Warnings lists extraction gaps (unknown vendor, rejected merges, ...).
	Warnings []string
}

// Extract runs format detection, strategy extraction and bureau
// reconciliation over a normalized document. Pure function; extraction
// uncertainty is data on the Result, never an error.
func Extract(reg *Registry, doc *model.NormalizedDocument, sourceHint string) Result {
	strategy, matched := reg.Detect(doc, sourceHint)

	info, raw, warnings := strategy.Extract(doc)
	if !matched {
		warnings = append([]string{"no vendor fingerprint matched; generic heuristic extraction used"}, warnings...)
	}

	items, mergeWarnings := Reconcile(raw)
	warnings = append(warnings, mergeWarnings...)

	return Result{
		PersonalInfo:  info,
		Items:         items,
		Strategy:      strategy.Name(),
		VendorMatched: matched,
		Warnings:      warnings,
	}
}
