package model

// PriorDisputedItem is one item from an earlier dispute round, supplied by
// the caller for patterns that need history.
type PriorDisputedItem struct {
	// CreditorName as it appeared in the prior round.
	CreditorName string `json:"creditor_name"`

	// AccountIDMasked as it appeared in the prior round.
	AccountIDMasked string `json:"account_id_masked"`

	// DisputeCount is how many disputes were sent for this item so far.
	DisputeCount int `json:"dispute_count"`

	// BureauResponded is true when any bureau answered the last dispute
	// within the statutory window.
	BureauResponded bool `json:"bureau_responded"`

	// Deleted is true when a bureau confirmed deletion of the item in a
	// prior round.
	Deleted bool `json:"deleted"`

	// ReinsertionNoticeReceived is true when the consumer got the required
	// five-day reinsertion notice after a deletion.
	ReinsertionNoticeReceived bool `json:"reinsertion_notice_received"`

	// FurnisherDisputed is true when a direct dispute was sent to the
	// furnisher for this item.
	FurnisherDisputed bool `json:"furnisher_disputed"`

	// IdentityTheftBlockRequested is true when a §605B block request with a
	// police/FTC report was submitted for this item.
	IdentityTheftBlockRequested bool `json:"identity_theft_block_requested"`
}

// PriorRoundContext carries dispute history across rounds. Optional: absent
// context simply disables the history-dependent violation patterns.
type PriorRoundContext struct {
	// RoundNumber of the previous completed round.
	RoundNumber int `json:"round_number"`

	// Items previously disputed, keyed in-order.
	Items []PriorDisputedItem `json:"items"`

	// LettersSent is the total dispute letters sent across prior rounds.
	LettersSent int `json:"letters_sent"`
}

// FindItem returns the prior-round record matching a current item by
// normalized creditor name and account suffix, or nil.
func (p *PriorRoundContext) FindItem(creditorNorm, accountSuffix string) *PriorDisputedItem {
	if p == nil {
		return nil
	}
	for i := range p.Items {
		it := &p.Items[i]
		if normalizeKey(it.CreditorName) == creditorNorm && suffixOf(it.AccountIDMasked) == accountSuffix {
			return it
		}
	}
	return nil
}

// AnalysisResult is the canonical output of one analysis run, consumed by the
// persistence layer, the dispute-letter generator and the review UI.
type AnalysisResult struct {
	// Fingerprint is the sha256 of (content type || document bytes). It is
	// the run's deterministic identity: identical input, identical
	// fingerprint, identical result.
	Fingerprint string `json:"fingerprint"`

	// Strategy is the extraction strategy the format detector selected.
	Strategy string `json:"strategy"`

	// PersonalInfo extracted from the document.
	PersonalInfo PersonalInfo `json:"personal_info"`

	// Items in deterministic order (document order, then reconciliation
	// order).
	Items []CreditItem `json:"items"`

	// Violations in rule-table order then item order.
	Violations []Violation `json:"violations"`

	// Standing for this run.
	Standing Standing `json:"standing"`

	// Damages computed from Violations and Standing.
	Damages DamagesEstimate `json:"damages"`

	// Score computed from Standing, Violations and documentation.
	Score CaseScore `json:"score"`

	// Degraded is true when any stage fell back to best-effort extraction.
	// The review UI must show it before the result is acted on.
	Degraded bool `json:"degraded"`

	// Warnings lists every extraction gap in human-readable form
	// ("3 items could not be bureau-disambiguated").
	Warnings []string `json:"warnings,omitempty"`
}
