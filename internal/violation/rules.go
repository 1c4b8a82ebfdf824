// Package violation applies the fixed FCRA rule table to classified items.
// Every rule is a plain predicate over items, cross-bureau groups and
// caller-supplied prior-round context; willfulness comes from secondary
// predicates over documented facts, never from probabilistic inference, so
// the output stays legally defensible and reproducible.
package violation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/credlens/credlens/internal/model"
)

// Reporting windows. Negative items age off after seven years; bankruptcy
// public records after ten.
const (
	reportingWindowYears  = 7
	bankruptcyWindowYears = 10
)

// ruleContext carries everything the rule predicates see.
type ruleContext struct {
	items  []model.CreditItem
	groups []accountGroup
	prior  *model.PriorRoundContext
	asOf   time.Time
}

// accountGroup is a set of CreditItems sharing one logical account key —
// observations of the same account that reconciliation refused to merge.
type accountGroup struct {
	key   string
	items []model.CreditItem
}

// rule is one row of the fixed detection table.
type rule struct {
	id      string
	section model.FCRASection
	vtype   model.ViolationType
	detect  func(ctx *ruleContext) []model.Violation
}

// ruleTable is checked in order; the order is part of the engine's
// deterministic output contract.
var ruleTable = []rule{
	{
		id:      "cross-bureau-contradiction",
		section: model.Section611,
		vtype:   model.ViolationContradictoryReporting,
		detect:  detectContradictions,
	},
	{
		id:      "reinsertion-without-notice",
		section: model.Section611,
		vtype:   model.ViolationReinsertionNoNotice,
		detect:  detectReinsertion,
	},
	{
		id:      "obsolete-reporting",
		section: model.Section607B,
		vtype:   model.ViolationObsoleteReporting,
		detect:  detectObsolete,
	},
	{
		id:      "repeated-non-response",
		section: model.Section611,
		vtype:   model.ViolationRepeatedNonResponse,
		detect:  detectNonResponse,
	},
	{
		id:      "identity-theft-block-ignored",
		section: model.Section605B,
		vtype:   model.ViolationIdentityTheftBlock,
		detect:  detectIdentityTheft,
	},
	{
		id:      "dispute-notation-missing",
		section: model.Section623,
		vtype:   model.ViolationDisputeNotationMissing,
		detect:  detectMissingDisputeNotation,
	},
}

// Detect runs the rule table over the classified items. asOf is the
// reference date for reporting-window checks; a zero asOf disables them (with
// a warning) rather than smuggling wall-clock time into a pure function.
// prior may be nil, which disables the history-dependent rules.
//
// The returned error is only non-nil for internal invariant bugs.
func Detect(items []model.CreditItem, prior *model.PriorRoundContext, asOf time.Time) ([]model.Violation, []string, error) {
	ctx := &ruleContext{
		items:  items,
		groups: groupByAccount(items),
		prior:  prior,
		asOf:   asOf,
	}

	var warnings []string
	if asOf.IsZero() {
		warnings = append(warnings, "no document date supplied; obsolete-reporting checks skipped")
	}

	var out []model.Violation
	for _, r := range ruleTable {
		for _, v := range r.detect(ctx) {
			v.FCRASection = r.section
			v.Type = r.vtype
			v.StatutoryRange = r.section.Range()
			out = append(out, v)
		}
	}

	refs := map[string]bool{}
	for _, it := range items {
		refs[it.Ref] = true
	}
	for _, v := range out {
		if v.ItemRef != "" && !refs[v.ItemRef] {
			return nil, nil, &model.InvariantError{
				Invariant: "violation references existing item",
				Rule:      string(v.Type),
				Context:   fmt.Sprintf("item ref %q not in item set", v.ItemRef),
			}
		}
	}

	return out, warnings, nil
}

// groupByAccount buckets items by logical account key, preserving item order
// inside each group and first-seen order across groups.
func groupByAccount(items []model.CreditItem) []accountGroup {
	index := map[string]int{}
	var groups []accountGroup
	for _, it := range items {
		key := accountKey(it)
		if key == "" {
			continue
		}
		if i, ok := index[key]; ok {
			groups[i].items = append(groups[i].items, it)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, accountGroup{key: key, items: []model.CreditItem{it}})
	}
	return groups
}

func accountKey(it model.CreditItem) string {
	creditor := model.NormalizeCreditor(it.CreditorName)
	if it.CreditorName == model.Unknown || creditor == "" {
		return ""
	}
	return creditor + "/" + model.AccountSuffix(it.AccountIDMasked)
}

// priorFor looks up the prior-round record for an item, nil when no context
// or no match.
func (ctx *ruleContext) priorFor(it model.CreditItem) *model.PriorDisputedItem {
	if ctx.prior == nil {
		return nil
	}
	return ctx.prior.FindItem(model.NormalizeCreditor(it.CreditorName), model.AccountSuffix(it.AccountIDMasked))
}

// sortRefs keeps multi-item evidence deterministic.
func sortRefs(items []model.CreditItem) []string {
	refs := make([]string, len(items))
	for i, it := range items {
		refs[i] = it.Ref
	}
	sort.Strings(refs)
	return refs
}

func joinRefs(items []model.CreditItem) string {
	return strings.Join(sortRefs(items), ", ")
}
