package violation

import (
	"fmt"
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/credlens/credlens/internal/model"
)

// detectContradictions flags logical accounts whose per-bureau observations
// disagree on a concrete value. Reconciliation already refused to merge them;
// what remains in a multi-item group is the contradiction itself. One
// violation per group, referencing the first observation and carrying
// field-level diffs as evidence.
func detectContradictions(ctx *ruleContext) []model.Violation {
	var out []model.Violation
	for _, g := range ctx.groups {
		if len(g.items) < 2 {
			continue
		}
		evidence := contradictionEvidence(g.items)
		if len(evidence) == 0 {
			continue
		}

		willful := false
		if p := ctx.priorFor(g.items[0]); p != nil && p.DisputeCount >= 2 {
			// Still contradictory after two documented disputes.
			willful = true
		}

		out = append(out, model.Violation{
			ItemRef: g.items[0].Ref,
			Willful: willful,
			Description: fmt.Sprintf("bureaus report contradictory values for %q (observations %s)",
				g.items[0].CreditorName, joinRefs(g.items)),
			Evidence: evidence,
		})
	}
	return out
}

// contradictionEvidence renders field-level conflicts between every pair of
// observations in a group. Diffs are compact inline form: unchanged text
// plain, removals in [-…], insertions in [+…].
func contradictionEvidence(items []model.CreditItem) []string {
	var ev []string
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			a, b := items[i], items[j]
			if a.StatusText != model.Unknown && b.StatusText != model.Unknown && a.StatusText != b.StatusText {
				ev = append(ev, fmt.Sprintf("status %s(%s) vs %s(%s): %s",
					a.Ref, a.Bureaus, b.Ref, b.Bureaus, renderDiff(a.StatusText, b.StatusText)))
			}
			if a.BalanceKnown && b.BalanceKnown && a.Balance != b.Balance {
				ev = append(ev, fmt.Sprintf("balance %s(%s)=$%.2f vs %s(%s)=$%.2f",
					a.Ref, a.Bureaus, a.Balance, b.Ref, b.Bureaus, b.Balance))
			}
			if conflictingDates(a.DateReported, b.DateReported) {
				ev = append(ev, fmt.Sprintf("date reported %s(%s)=%s vs %s(%s)=%s",
					a.Ref, a.Bureaus, a.DateReported, b.Ref, b.Bureaus, b.DateReported))
			}
			if conflictingDates(a.DateOpened, b.DateOpened) {
				ev = append(ev, fmt.Sprintf("date opened %s(%s)=%s vs %s(%s)=%s",
					a.Ref, a.Bureaus, a.DateOpened, b.Ref, b.Bureaus, b.DateOpened))
			}
		}
	}
	return ev
}

func conflictingDates(a, b string) bool {
	if a == model.Unknown || b == model.Unknown {
		return false
	}
	return !strings.HasPrefix(a, b) && !strings.HasPrefix(b, a)
}

// renderDiff produces a compact character-level diff of two field values.
func renderDiff(a, b string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			sb.WriteString("[-")
			sb.WriteString(d.Text)
			sb.WriteString("]")
		case diffmatchpatch.DiffInsert:
			sb.WriteString("[+")
			sb.WriteString(d.Text)
			sb.WriteString("]")
		default:
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}

// detectReinsertion flags items deleted in a prior round that are reporting
// again without the required reinsertion notice.
func detectReinsertion(ctx *ruleContext) []model.Violation {
	var out []model.Violation
	if ctx.prior == nil {
		return nil
	}
	for _, it := range ctx.items {
		p := ctx.priorFor(it)
		if p == nil || !p.Deleted || p.ReinsertionNoticeReceived {
			continue
		}
		out = append(out, model.Violation{
			ItemRef: it.Ref,
			// Reinserting a confirmed deletion without notice is reckless
			// disregard on its face; the deletion is documented.
			Willful: true,
			Description: fmt.Sprintf("%q deleted in round %d but reporting again with no reinsertion notice",
				it.CreditorName, ctx.prior.RoundNumber),
			Evidence: []string{
				fmt.Sprintf("prior round %d: deletion confirmed, disputes sent: %d", ctx.prior.RoundNumber, p.DisputeCount),
				fmt.Sprintf("current report: item %s present, status %q", it.Ref, it.StatusText),
			},
		})
	}
	return out
}

// detectObsolete flags negative items reporting past their legal window:
// seven years generally, ten for bankruptcy public records. Disabled when no
// reference date was supplied.
func detectObsolete(ctx *ruleContext) []model.Violation {
	if ctx.asOf.IsZero() {
		return nil
	}
	var out []model.Violation
	for _, it := range ctx.items {
		if !it.Negative() {
			continue
		}
		ref := newestDate(it)
		if ref.IsZero() {
			continue
		}
		window := reportingWindowYears
		if it.ItemType == model.ItemPublicRecord && strings.Contains(strings.ToLower(it.StatusText+" "+it.NegativeReason), "bankrupt") {
			window = bankruptcyWindowYears
		}
		cutoff := ctx.asOf.AddDate(-window, 0, 0)
		if ref.After(cutoff) {
			continue
		}
		out = append(out, model.Violation{
			ItemRef: it.Ref,
			Willful: false,
			Description: fmt.Sprintf("%q still reporting %.0f years after last activity (window %d years)",
				it.CreditorName, ctx.asOf.Sub(ref).Hours()/24/365, window),
			Evidence: []string{
				fmt.Sprintf("item %s: date reported %s, date opened %s, as of %s",
					it.Ref, it.DateReported, it.DateOpened, ctx.asOf.Format("2006-01-02")),
			},
		})
	}
	return out
}

// newestDate parses the most recent known date on the item; the reporting
// window runs from the last activity the report shows.
func newestDate(it model.CreditItem) time.Time {
	var best time.Time
	for _, s := range []string{it.DateReported, it.DateOpened} {
		if s == model.Unknown {
			continue
		}
		for _, layout := range []string{"2006-01-02", "2006-01"} {
			if t, err := time.Parse(layout, s); err == nil {
				if t.After(best) {
					best = t
				}
				break
			}
		}
	}
	return best
}

// detectNonResponse flags items whose prior disputes went unanswered inside
// the statutory reinvestigation window. Requires prior-round context.
func detectNonResponse(ctx *ruleContext) []model.Violation {
	if ctx.prior == nil {
		return nil
	}
	var out []model.Violation
	for _, it := range ctx.items {
		p := ctx.priorFor(it)
		if p == nil || p.DisputeCount == 0 || p.BureauResponded {
			continue
		}
		out = append(out, model.Violation{
			ItemRef: it.Ref,
			// Willful once the bureau has ignored two or more documented
			// disputes.
			Willful: p.DisputeCount >= 2,
			Description: fmt.Sprintf("no reinvestigation response after %d dispute(s) for %q",
				p.DisputeCount, it.CreditorName),
			Evidence: []string{
				fmt.Sprintf("prior round %d: %d dispute(s) sent, no response within statutory window",
					ctx.prior.RoundNumber, p.DisputeCount),
			},
		})
	}
	return out
}

// detectIdentityTheft flags items carrying identity-theft/fraud-block markers
// that are nonetheless still reporting.
func detectIdentityTheft(ctx *ruleContext) []model.Violation {
	var out []model.Violation
	for _, it := range ctx.items {
		if !it.IdentityTheftMarker {
			continue
		}
		willful := false
		if p := ctx.priorFor(it); p != nil && (p.IdentityTheftBlockRequested || p.DisputeCount >= 2) {
			willful = true
		}
		out = append(out, model.Violation{
			ItemRef: it.Ref,
			Willful: willful,
			Description: fmt.Sprintf("%q carries identity-theft markers but is still reporting",
				it.CreditorName),
			Evidence: []string{
				fmt.Sprintf("item %s: fraud/identity-theft annotation present, status %q", it.Ref, it.StatusText),
			},
		})
	}
	return out
}

// detectMissingDisputeNotation flags furnishers reporting a directly disputed
// account without the required dispute notation.
func detectMissingDisputeNotation(ctx *ruleContext) []model.Violation {
	if ctx.prior == nil {
		return nil
	}
	var out []model.Violation
	for _, it := range ctx.items {
		p := ctx.priorFor(it)
		if p == nil || !p.FurnisherDisputed {
			continue
		}
		if it.StatusText != model.Unknown && strings.Contains(strings.ToLower(it.StatusText), "disput") {
			continue
		}
		out = append(out, model.Violation{
			ItemRef: it.Ref,
			Willful: p.DisputeCount >= 2,
			Description: fmt.Sprintf("furnisher reports %q without dispute notation after direct dispute",
				it.CreditorName),
			Evidence: []string{
				fmt.Sprintf("item %s: status %q carries no dispute notation; direct dispute documented", it.Ref, it.StatusText),
			},
		})
	}
	return out
}
