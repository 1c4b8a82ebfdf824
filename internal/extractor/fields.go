package extractor

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/credlens/credlens/internal/model"
	"github.com/credlens/credlens/internal/normalizer"
)

// headingSelector matches the heading elements section lookups walk.
const headingSelector = "h1, h2, h3, h4, h5, h6"

// classifySectionHeading maps heading text to its section kind using the
// normalizer's shared heading table.
func classifySectionHeading(text string) model.SectionKind {
	return normalizer.ClassifyHeading(strings.TrimSpace(text))
}

var (
	moneyRE     = regexp.MustCompile(`-?\$?\s*\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?`)
	maskedIDRE  = regexp.MustCompile(`(?i)(?:[x*•#]{2,}|\.{3,})[-\s]?\d{2,6}|\d{4,6}[x*]{2,}`)
	bareDigits  = regexp.MustCompile(`\b\d{4,16}\b`)
	fieldLineRE = regexp.MustCompile(`(?m)^\s*([A-Za-z][A-Za-z #/().-]{1,40}?)\s*[:=]\s*(.+?)\s*$`)
)

// dateLayouts are tried in order when normalizing report dates.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2006",
	"January 2006",
	"01/2006",
	"2006-01",
}

// parseMoney extracts the first dollar amount from s. The boolean is false
// when no amount was found.
func parseMoney(s string) (float64, bool) {
	m := moneyRE.FindString(s)
	if m == "" {
		return 0, false
	}
	m = strings.NewReplacer("$", "", ",", "", " ", "").Replace(m)
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// normalizeDate converts a report date to "2006-01-02" (or "2006-01" when
// only month precision is printed). Unparseable input yields model.Unknown —
// an explicit unknown beats a plausible-looking guess.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.Unknown
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if !layoutHasDay(layout) {
			return t.Format("2006-01")
		}
		return t.Format("2006-01-02")
	}
	return model.Unknown
}

func layoutHasDay(layout string) bool {
	return strings.Contains(layout, "02") || strings.Contains(layout, " 2,") || strings.Contains(layout, "/2/")
}

// extractMaskedID finds a masked account number in s ("****1234",
// "XXXX-5678", "401200XX"). Falls back to a bare digit run, itself masked
// down to the last four digits so full account numbers never reach output.
func extractMaskedID(s string) string {
	if m := maskedIDRE.FindString(s); m != "" {
		return strings.ReplaceAll(m, " ", "")
	}
	if m := bareDigits.FindString(s); m != "" {
		if len(m) > 4 {
			return "****" + m[len(m)-4:]
		}
		return "****" + m
	}
	return model.Unknown
}

// bureauFromText maps a bureau mention to the canonical Bureau. The boolean
// is false when the text names no bureau.
func bureauFromText(s string) (model.Bureau, bool) {
	ls := strings.ToLower(s)
	switch {
	case strings.Contains(ls, "transunion") || strings.Contains(ls, "trans union"):
		return model.TransUnion, true
	case strings.Contains(ls, "experian"):
		return model.Experian, true
	case strings.Contains(ls, "equifax"):
		return model.Equifax, true
	}
	return "", false
}

// fieldLabelMatches reports whether a printed field label means the given
// canonical field. Vendors disagree on labels ("Account #", "Account Number",
// "Acct No."), so matching is keyword-based.
func fieldLabelMatches(label string, keywords ...string) bool {
	l := strings.ToLower(strings.TrimSpace(label))
	for _, kw := range keywords {
		if strings.Contains(l, kw) {
			return true
		}
	}
	return false
}

// identityTheftRE flags fraud/identity-theft annotations on an item.
var identityTheftRE = regexp.MustCompile(`(?i)\b(identity\s*theft|fraud(ulent)?\s*(alert|block|account)?|extended\s+fraud|security\s+freeze\s+victim)\b`)
