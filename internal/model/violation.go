package model

// FCRASection identifies the statutory provision a violation falls under.
type FCRASection string

const (
	// Section605B: block of information resulting from identity theft.
	Section605B FCRASection = "605B"

	// Section607B: reasonable procedures to assure maximum possible accuracy.
	Section607B FCRASection = "607(b)"

	// Section611: reinvestigation duty on consumer dispute.
	Section611 FCRASection = "611"

	// Section623: furnisher duties (accurate reporting, dispute notation).
	Section623 FCRASection = "623"
)

// StatutoryRange is the fixed per-violation dollar range for a section.
type StatutoryRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// statutoryRanges is the fixed table of per-violation statutory damages.
// §605B carries a flat $1,000; the others run $100 up to $750.
var statutoryRanges = map[FCRASection]StatutoryRange{
	Section605B: {Min: 1000, Max: 1000},
	Section607B: {Min: 100, Max: 750},
	Section611:  {Min: 100, Max: 750},
	Section623:  {Min: 100, Max: 750},
}

// Range returns the fixed statutory dollar range for the section.
func (s FCRASection) Range() StatutoryRange {
	return statutoryRanges[s]
}

// Valid reports whether s is one of the four sections in the taxonomy.
func (s FCRASection) Valid() bool {
	_, ok := statutoryRanges[s]
	return ok
}

// ViolationType names the detection pattern that fired.
type ViolationType string

const (
	ViolationContradictoryReporting ViolationType = "contradictory_reporting"
	ViolationReinsertionNoNotice    ViolationType = "reinsertion_without_notice"
	ViolationObsoleteReporting      ViolationType = "obsolete_reporting"
	ViolationRepeatedNonResponse    ViolationType = "repeated_non_response"
	ViolationIdentityTheftBlock     ViolationType = "identity_theft_block_ignored"
	ViolationDisputeNotationMissing ViolationType = "dispute_notation_missing"
)

// Violation is one detected statutory violation. Immutable once created.
type Violation struct {
	// ItemRef is the Ref of the CreditItem this violation concerns, or empty
	// for document-level violations.
	ItemRef string `json:"item_ref,omitempty"`

	// FCRASection the violation falls under.
	FCRASection FCRASection `json:"fcra_section"`

	// Type names the pattern that detected it.
	Type ViolationType `json:"violation_type"`

	// Willful is true when the secondary willfulness predicate for the
	// pattern held. Derived from documented facts, never inferred
	// probabilistically.
	Willful bool `json:"willful"`

	// StatutoryRange is the fixed per-violation dollar range, copied from the
	// section table at creation time so stored results stay self-describing.
	StatutoryRange StatutoryRange `json:"statutory_range"`

	// Description is a short human-readable account of what matched.
	Description string `json:"description"`

	// Evidence is the source material the violation is traceable to: field
	// values, cross-bureau diffs, prior-round facts.
	Evidence []string `json:"evidence,omitempty"`
}
