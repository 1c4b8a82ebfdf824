package extractor

import (
	"regexp"
	"strings"

	"github.com/credlens/credlens/internal/model"
)

// genericStrategy is the heuristic fallback used when no vendor fingerprint
// matches. It works on normalized text alone: item sections are split into
// blocks on blank lines and fields are recovered from label/value lines.
// Extraction quality degrades gracefully rather than failing outright.
type genericStrategy struct{}

func newGenericStrategy() *genericStrategy { return &genericStrategy{} }

func (g *genericStrategy) Name() string { return "generic" }

// Match only honors an explicit caller hint; the registry reaches the generic
// strategy through its fallback path, not through fingerprinting.
func (g *genericStrategy) Match(_ *model.NormalizedDocument, hint string) bool {
	return strings.EqualFold(hint, "generic")
}

func (g *genericStrategy) Extract(doc *model.NormalizedDocument) (model.PersonalInfo, []model.RawItem, []string) {
	info := extractPersonalInfo(doc)

	var items []model.RawItem
	var warnings []string
	for _, sec := range doc.Sections {
		if sec.Kind == model.SectionPersonalInfo {
			continue
		}
		for _, block := range splitBlocks(sec.Text) {
			item, ok := parseItemBlock(block, sec.Kind)
			if !ok {
				continue
			}
			items = append(items, item)
		}
	}

	if len(items) == 0 {
		warnings = append(warnings, "generic extraction found no reportable items")
	}
	return info, items, warnings
}

// splitBlocks cuts section text into account-sized chunks on blank lines.
func splitBlocks(text string) []string {
	var blocks []string
	for _, b := range strings.Split(text, "\n\n") {
		b = strings.TrimSpace(b)
		if b != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

var inquiryWordRE = regexp.MustCompile(`(?i)\binquir(y|ies)\b`)

// parseItemBlock recovers one RawItem from a text block. Returns false when
// the block carries none of the signals of a reported item (no creditor, no
// account id, no dollar amount) — report boilerplate is everywhere and must
// not fabricate items.
func parseItemBlock(block string, kind model.SectionKind) (model.RawItem, bool) {
	item := model.RawItem{
		CreditorName:    model.Unknown,
		AccountIDMasked: model.Unknown,
		AccountType:     model.Unknown,
		StatusText:      model.Unknown,
		DateOpened:      model.Unknown,
		DateReported:    model.Unknown,
		SectionKind:     kind,
	}

	for _, m := range fieldLineRE.FindAllStringSubmatch(block, -1) {
		label, value := m[1], strings.TrimSpace(m[2])
		if value == "" {
			continue
		}
		switch {
		case fieldLabelMatches(label, "creditor", "company", "collection agency", "furnisher", "account name", "original creditor"):
			item.CreditorName = value
		case fieldLabelMatches(label, "account #", "account no", "account number", "acct"):
			item.AccountIDMasked = extractMaskedID(value)
		case fieldLabelMatches(label, "balance", "amount owed", "amount past due", "amount"):
			if v, ok := parseMoney(value); ok {
				item.Balance = v
				item.BalanceKnown = true
			}
		case fieldLabelMatches(label, "status", "pay status", "payment status", "account status"):
			item.StatusText = value
		// Bureau labels ("Reported By", "Reporting Agency") must be checked
		// before the date labels: bare "reported" would swallow them.
		case fieldLabelMatches(label, "bureau", "reported by", "source", "reporting agency"):
			if b, ok := bureauFromText(value); ok {
				item.Bureaus = item.Bureaus.Union(model.NewBureauSet(b))
			}
		case fieldLabelMatches(label, "date opened", "opened"):
			item.DateOpened = normalizeDate(value)
		case fieldLabelMatches(label, "date reported", "last reported", "reported", "date of last activity"):
			item.DateReported = normalizeDate(value)
		case fieldLabelMatches(label, "account type", "type", "loan type"):
			item.AccountType = value
		}
	}

	// Creditor fallback: the first line of the block when it isn't itself a
	// label/value line.
	if item.CreditorName == model.Unknown {
		first := strings.TrimSpace(strings.SplitN(block, "\n", 2)[0])
		if first != "" && !strings.Contains(first, ":") && len(first) <= 60 {
			item.CreditorName = first
		}
	}

	item.InquiryMarker = kind == model.SectionInquiries || inquiryWordRE.MatchString(block)
	item.IdentityTheftMarker = identityTheftRE.MatchString(block)

	// Nothing item-like in the block: skip it.
	if item.CreditorName == model.Unknown && item.AccountIDMasked == model.Unknown && !item.BalanceKnown {
		return model.RawItem{}, false
	}
	return item, true
}
