// Package classifier assigns every extracted item exactly one item type and
// resolves bureau attribution, producing the immutable CreditItem records the
// rest of the pipeline works with.
package classifier

import (
	"fmt"
	"regexp"

	"github.com/credlens/credlens/internal/model"
)

var (
	collectionRE  = regexp.MustCompile(`(?i)\bcollection(s)?\b|\bplaced\s+for\s+collection\b|\bdebt\s+buyer\b`)
	chargeOffRE   = regexp.MustCompile(`(?i)charge[ -]?(d\s+)?off`)
	publicRecRE   = regexp.MustCompile(`(?i)\bbankruptcy\b|\bchapter\s+(7|11|13)\b|\bjudgment\b|\b(tax\s+)?lien\b`)
	latePaymentRE = regexp.MustCompile(`(?i)\blate\b|\bdelinquen(t|cy)\b|\bpast\s+due\b|\b(30|60|90|120)\s*day(s)?\b`)

	// Clean pay statuses often mention lateness only to negate it
	// ("Paid as agreed, never late"). Those must not read as derogatory.
	cleanStatusRE = regexp.MustCompile(`(?i)\bnever\s+late\b|\bpa(id|ys?)\s+as\s+agreed\b`)
)

// classify returns the single item type for a raw observation. The precedence
// order is fixed: the overlap between collections and charge-offs (collection
// agencies buying charged-off debt) resolves to the more legally actionable
// collection category.
func classify(item model.RawItem) (model.ItemType, string) {
	typeAndStatus := item.AccountType + " " + item.StatusText

	switch {
	case item.InquiryMarker:
		return model.ItemInquiry, "hard inquiry"
	case collectionRE.MatchString(typeAndStatus) || item.SectionKind == model.SectionCollections:
		return model.ItemCollection, "collection account"
	case chargeOffRE.MatchString(item.StatusText):
		return model.ItemChargeOff, "charged off"
	case publicRecRE.MatchString(typeAndStatus) || item.SectionKind == model.SectionPublicRecords:
		return model.ItemPublicRecord, "negative public record"
	case latePaymentRE.MatchString(item.StatusText) && !cleanStatusRE.MatchString(item.StatusText):
		return model.ItemLatePayment, "late payment history"
	default:
		return model.ItemTradeline, ""
	}
}

// Classify turns reconciled observations into canonical CreditItems with
// deterministic refs. Items without any bureau attribution get the
// assume-all-three fallback; the count is surfaced as a warning because the
// fallback overstates evidence breadth and reviewers must know.
//
// The returned error is only non-nil for internal invariant bugs, never for
// odd input.
func Classify(items []model.RawItem) ([]model.CreditItem, []string, error) {
	var out []model.CreditItem
	var warnings []string
	assumed := 0

	for i, raw := range items {
		itemType, reason := classify(raw)
		if !itemType.Valid() {
			return nil, nil, &model.InvariantError{
				Invariant: "classifier totality",
				Rule:      "precedence table",
				Context:   fmt.Sprintf("item %d (%s) classified as %q", i, raw.CreditorName, itemType),
			}
		}

		bureaus := raw.Bureaus
		bureausAssumed := false
		if len(bureaus) == 0 {
			bureaus = model.NewBureauSet(model.AllBureaus...)
			bureausAssumed = true
			assumed++
		}

		out = append(out, model.CreditItem{
			Ref:                 fmt.Sprintf("item-%03d", i+1),
			CreditorName:        raw.CreditorName,
			AccountIDMasked:     raw.AccountIDMasked,
			ItemType:            itemType,
			Bureaus:             bureaus,
			BureausAssumed:      bureausAssumed,
			StatusText:          raw.StatusText,
			Balance:             raw.Balance,
			BalanceKnown:        raw.BalanceKnown,
			DateOpened:          raw.DateOpened,
			DateReported:        raw.DateReported,
			NegativeReason:      reason,
			IdentityTheftMarker: raw.IdentityTheftMarker,
		})
	}

	if assumed > 0 {
		plural := ""
		if assumed != 1 {
			plural = "s"
		}
		warnings = append(warnings, fmt.Sprintf(
			"%d item%s could not be bureau-disambiguated; attributed to all three bureaus", assumed, plural))
	}

	return out, warnings, nil
}
