package extractor

import (
	"fmt"
	"math"
	"strings"

	"github.com/credlens/credlens/internal/model"
)

// Reconciliation constants. The rules err on the side of not merging:
// a false merge fabricates evidence, a false split merely duplicates an item.
const (
	// balanceToleranceAbs is the absolute dollar slack allowed between two
	// observations of the same account.
	balanceToleranceAbs = 1.0

	// balanceToleranceFrac is the relative slack: bureaus refresh on
	// different days, so small drift on large balances is expected.
	balanceToleranceFrac = 0.01

	// minCreditorPrefix is the shortest creditor key allowed to match by
	// prefix containment instead of exact equality.
	minCreditorPrefix = 5
)

// Reconcile merges bureau-specific observations of the same logical account
// into multi-bureau items. The merge key is (normalized creditor name,
// account-id suffix); observations under the same key still stay separate
// when their reported values contradict each other — the contradiction is
// evidence the violation detector needs, and force-merging would destroy it.
//
// Pure function: same input slice, same output. Warnings report near-merges
// that were rejected.
func Reconcile(items []model.RawItem) ([]model.RawItem, []string) {
	var merged []model.RawItem
	var warnings []string

	for _, item := range items {
		idx := -1
		for i := range merged {
			if !sameAccountKey(merged[i], item) {
				continue
			}
			if field, ok := compatible(merged[i], item); ok {
				idx = i
				break
			} else {
				warnings = append(warnings, fmt.Sprintf(
					"observations of %q (%s) not merged: conflicting %s",
					item.CreditorName, item.AccountIDMasked, field))
			}
		}
		if idx >= 0 {
			merged[idx] = mergeObservations(merged[idx], item)
		} else {
			merged = append(merged, item)
		}
	}

	return merged, warnings
}

// sameAccountKey reports whether two observations plausibly describe the same
// logical account. Creditor keys must match exactly after normalization, or
// one must be a prefix of the other (vendors truncate creditor names at
// different widths). Unknown creditors never match anything.
func sameAccountKey(a, b model.RawItem) bool {
	ka := model.NormalizeCreditor(a.CreditorName)
	kb := model.NormalizeCreditor(b.CreditorName)
	if a.CreditorName == model.Unknown || b.CreditorName == model.Unknown || ka == "" || kb == "" {
		return false
	}
	if ka != kb {
		if len(ka) < minCreditorPrefix || len(kb) < minCreditorPrefix {
			return false
		}
		if !strings.HasPrefix(ka, kb) && !strings.HasPrefix(kb, ka) {
			return false
		}
	}

	sa, sb := model.AccountSuffix(a.AccountIDMasked), model.AccountSuffix(b.AccountIDMasked)
	// Both suffixes known: they must agree. One side unknown: the creditor
	// match carries it.
	if sa != "" && sb != "" && sa != sb {
		return false
	}
	return true
}

// compatible checks whether two same-key observations agree on every field
// both of them report. On disagreement it names the conflicting field.
func compatible(a, b model.RawItem) (string, bool) {
	if a.BalanceKnown && b.BalanceKnown {
		tol := math.Max(balanceToleranceAbs, balanceToleranceFrac*math.Max(math.Abs(a.Balance), math.Abs(b.Balance)))
		if math.Abs(a.Balance-b.Balance) > tol {
			return "balance", false
		}
	}
	if !textCompatible(a.StatusText, b.StatusText) {
		return "status", false
	}
	if !dateCompatible(a.DateOpened, b.DateOpened) {
		return "date opened", false
	}
	if !dateCompatible(a.DateReported, b.DateReported) {
		return "date reported", false
	}
	return "", true
}

func textCompatible(a, b string) bool {
	if a == model.Unknown || b == model.Unknown {
		return true
	}
	return model.NormalizeCreditor(a) == model.NormalizeCreditor(b)
}

// dateCompatible treats month-precision and day-precision renderings of the
// same month as agreeing ("2019-06" vs "2019-06-15").
func dateCompatible(a, b string) bool {
	if a == model.Unknown || b == model.Unknown {
		return true
	}
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}

// mergeObservations combines two compatible observations: bureau sets union,
// unknown fields fill from the other side, markers accumulate.
func mergeObservations(a, b model.RawItem) model.RawItem {
	out := a
	out.Bureaus = a.Bureaus.Union(b.Bureaus)
	if out.CreditorName == model.Unknown {
		out.CreditorName = b.CreditorName
	}
	if out.AccountIDMasked == model.Unknown {
		out.AccountIDMasked = b.AccountIDMasked
	}
	if out.AccountType == model.Unknown {
		out.AccountType = b.AccountType
	}
	if out.StatusText == model.Unknown {
		out.StatusText = b.StatusText
	}
	if !out.BalanceKnown && b.BalanceKnown {
		out.Balance = b.Balance
		out.BalanceKnown = true
	}
	if out.DateOpened == model.Unknown {
		out.DateOpened = b.DateOpened
	}
	// Prefer the day-precision rendering when both agree at month precision.
	if out.DateOpened != model.Unknown && len(b.DateOpened) > len(out.DateOpened) && b.DateOpened != model.Unknown {
		out.DateOpened = b.DateOpened
	}
	if out.DateReported == model.Unknown || (b.DateReported != model.Unknown && len(b.DateReported) > len(out.DateReported)) {
		out.DateReported = b.DateReported
	}
	out.InquiryMarker = out.InquiryMarker || b.InquiryMarker
	out.IdentityTheftMarker = out.IdentityTheftMarker || b.IdentityTheftMarker
	if out.SectionKind == model.SectionUnknown {
		out.SectionKind = b.SectionKind
	}
	return out
}
