package extractor

import (
	"strings"

	"github.com/credlens/credlens/internal/model"
)

// experianStrategy handles reports pulled directly from Experian. Everything
// in a direct bureau report is attributed to that single bureau.
type experianStrategy struct{}

func newExperianStrategy() *experianStrategy { return &experianStrategy{} }

func (s *experianStrategy) Name() string { return "experian" }

func (s *experianStrategy) Match(doc *model.NormalizedDocument, hint string) bool {
	if strings.EqualFold(hint, s.Name()) {
		return true
	}
	lower := strings.ToLower(doc.Text)
	// A direct Experian report names Experian and neither of the other two;
	// anything mentioning multiple bureaus is a merge product, not this
	// layout.
	return strings.Contains(lower, "experian") &&
		!strings.Contains(lower, "transunion") &&
		!strings.Contains(lower, "trans union") &&
		!strings.Contains(lower, "equifax")
}

func (s *experianStrategy) Extract(doc *model.NormalizedDocument) (model.PersonalInfo, []model.RawItem, []string) {
	info, items, warnings := newGenericStrategy().Extract(doc)
	for i := range items {
		items[i].Bureaus = model.NewBureauSet(model.Experian)
	}
	return info, items, warnings
}
