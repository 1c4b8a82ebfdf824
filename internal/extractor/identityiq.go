package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/credlens/credlens/internal/model"
)

// identityIQStrategy handles IdentityIQ-style tri-merge HTML: one table per
// account, field labels down the first column and one column per bureau.
// Each bureau column that actually carries values becomes its own RawItem
// observation; reconciliation merges them afterwards.
type identityIQStrategy struct{}

func newIdentityIQStrategy() *identityIQStrategy { return &identityIQStrategy{} }

func (s *identityIQStrategy) Name() string { return "identityiq" }

func (s *identityIQStrategy) Match(doc *model.NormalizedDocument, hint string) bool {
	if strings.EqualFold(hint, s.Name()) {
		return true
	}
	lower := strings.ToLower(doc.Text)
	if strings.Contains(lower, "identityiq") || strings.Contains(lower, "identity iq") {
		return true
	}
	// Fingerprint fallback: any table headed by all three bureau columns is
	// the tri-merge layout this strategy exists for.
	if doc.HTML == "" {
		return false
	}
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(doc.HTML))
	if err != nil {
		return false
	}
	found := false
	gq.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		if len(bureauColumns(table)) == len(model.AllBureaus) {
			found = true
			return false
		}
		return true
	})
	return found
}

func (s *identityIQStrategy) Extract(doc *model.NormalizedDocument) (model.PersonalInfo, []model.RawItem, []string) {
	info := extractPersonalInfo(doc)

	var items []model.RawItem
	var warnings []string

	gq, err := goquery.NewDocumentFromReader(strings.NewReader(doc.HTML))
	if err != nil || doc.HTML == "" {
		// Markup unusable: fall back to the text heuristics so the run still
		// yields a best-effort result.
		warnings = append(warnings, "tri-merge markup unusable, fell back to text extraction")
		_, items, _ := newGenericStrategy().Extract(doc)
		return info, items, warnings
	}

	tables := 0
	gq.Find("table").Each(func(_ int, table *goquery.Selection) {
		cols := bureauColumns(table)
		if len(cols) == 0 {
			return
		}
		tables++
		items = append(items, extractTriMergeTable(table, cols, sectionKindFor(table))...)
	})

	if tables == 0 {
		warnings = append(warnings, "no tri-merge tables found, fell back to text extraction")
		_, textItems, _ := newGenericStrategy().Extract(doc)
		items = textItems
	}

	// Inquiries are printed as plain rows, not tri-merge tables.
	for _, sec := range doc.Sections {
		if sec.Kind != model.SectionInquiries {
			continue
		}
		for _, block := range splitBlocks(sec.Text) {
			if item, ok := parseItemBlock(block, sec.Kind); ok {
				items = append(items, item)
			}
		}
	}

	return info, items, warnings
}

// bureauColumns maps table column index -> bureau for every header cell that
// names one. An empty map means the table is not a per-bureau layout.
func bureauColumns(table *goquery.Selection) map[int]model.Bureau {
	cols := map[int]model.Bureau{}
	header := table.Find("tr").First()
	header.Find("th, td").Each(func(i int, cell *goquery.Selection) {
		if b, ok := bureauFromText(cell.Text()); ok {
			cols[i] = b
		}
	})
	return cols
}

// sectionKindFor walks up from a table to the enclosing located section, so
// items inherit the right section kind (collections vs tradelines).
func sectionKindFor(table *goquery.Selection) model.SectionKind {
	heading := table.PrevAllFiltered(headingSelector).First()
	if heading.Length() == 0 {
		heading = table.Parent().PrevAllFiltered(headingSelector).First()
	}
	if heading.Length() == 0 {
		return model.SectionUnknown
	}
	return classifySectionHeading(heading.Text())
}

// extractTriMergeTable turns one account table into up to one RawItem per
// bureau column. A bureau whose column is entirely empty did not report the
// account and produces no observation — absence must never be fabricated
// into evidence.
func extractTriMergeTable(table *goquery.Selection, cols map[int]model.Bureau, kind model.SectionKind) []model.RawItem {
	type obs struct {
		item     model.RawItem
		hasValue bool
	}
	observations := map[model.Bureau]*obs{}
	for _, b := range cols {
		observations[b] = &obs{item: model.RawItem{
			CreditorName:    model.Unknown,
			AccountIDMasked: model.Unknown,
			AccountType:     model.Unknown,
			StatusText:      model.Unknown,
			DateOpened:      model.Unknown,
			DateReported:    model.Unknown,
			Bureaus:         model.NewBureauSet(b),
			SectionKind:     kind,
		}}
	}

	rows := table.Find("tr")
	rows.Each(func(rowIdx int, row *goquery.Selection) {
		if rowIdx == 0 {
			return // header
		}
		cells := row.Find("th, td")
		if cells.Length() < 2 {
			return
		}
		label := strings.TrimSpace(cells.First().Text())
		if label == "" {
			return
		}
		cells.Each(func(colIdx int, cell *goquery.Selection) {
			b, ok := cols[colIdx]
			if !ok {
				return
			}
			value := strings.TrimSpace(cell.Text())
			if value == "" || value == "-" || value == "--" || strings.EqualFold(value, "n/a") {
				return
			}
			o := observations[b]
			o.hasValue = true
			applyTriMergeField(&o.item, label, value)
		})
	})

	var items []model.RawItem
	// Canonical bureau order keeps output deterministic.
	for _, b := range model.AllBureaus {
		o, ok := observations[b]
		if !ok || !o.hasValue {
			continue
		}
		items = append(items, o.item)
	}
	return items
}

func applyTriMergeField(item *model.RawItem, label, value string) {
	switch {
	case fieldLabelMatches(label, "creditor", "account name", "company", "furnisher", "original creditor"):
		item.CreditorName = value
	case fieldLabelMatches(label, "account #", "account no", "account number", "acct"):
		item.AccountIDMasked = extractMaskedID(value)
	case fieldLabelMatches(label, "balance", "amount owed", "high balance"):
		if v, ok := parseMoney(value); ok {
			item.Balance = v
			item.BalanceKnown = true
		}
	case fieldLabelMatches(label, "status", "pay status", "payment status"):
		item.StatusText = value
	case fieldLabelMatches(label, "date opened", "opened"):
		item.DateOpened = normalizeDate(value)
	case fieldLabelMatches(label, "date reported", "last reported", "reported", "last activity"):
		item.DateReported = normalizeDate(value)
	case fieldLabelMatches(label, "account type", "type"):
		item.AccountType = value
	case fieldLabelMatches(label, "remark", "comment"):
		if identityTheftRE.MatchString(value) {
			item.IdentityTheftMarker = true
		}
	}
}
