package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/credlens/credlens/internal/model"
)

// creditKarmaStrategy handles Credit Karma exports. Credit Karma only carries
// TransUnion and Equifax data, so items without explicit per-bureau markers
// are attributed to those two — a determinable attribution, not the
// assume-all-three fallback.
type creditKarmaStrategy struct{}

func newCreditKarmaStrategy() *creditKarmaStrategy { return &creditKarmaStrategy{} }

func (s *creditKarmaStrategy) Name() string { return "creditkarma" }

var creditKarmaCoverage = model.NewBureauSet(model.TransUnion, model.Equifax)

func (s *creditKarmaStrategy) Match(doc *model.NormalizedDocument, hint string) bool {
	if strings.EqualFold(hint, s.Name()) {
		return true
	}
	lower := strings.ToLower(doc.Text)
	return strings.Contains(lower, "credit karma") || strings.Contains(lower, "creditkarma")
}

func (s *creditKarmaStrategy) Extract(doc *model.NormalizedDocument) (model.PersonalInfo, []model.RawItem, []string) {
	info := extractPersonalInfo(doc)

	var items []model.RawItem
	var warnings []string

	// Two-bureau comparison tables use the same label-column layout as
	// tri-merge reports.
	if doc.HTML != "" {
		if gq, err := goquery.NewDocumentFromReader(strings.NewReader(doc.HTML)); err == nil {
			gq.Find("table").Each(func(_ int, table *goquery.Selection) {
				cols := bureauColumns(table)
				if len(cols) == 0 {
					return
				}
				items = append(items, extractTriMergeTable(table, cols, sectionKindFor(table))...)
			})
		}
	}

	if len(items) == 0 {
		_, textItems, textWarnings := newGenericStrategy().Extract(doc)
		warnings = append(warnings, textWarnings...)
		for i := range textItems {
			if len(textItems[i].Bureaus) == 0 {
				textItems[i].Bureaus = creditKarmaCoverage
			}
		}
		items = textItems
	}

	return info, items, warnings
}
