package extractor

import (
	"regexp"
	"strings"

	"github.com/credlens/credlens/internal/model"
)

var ssnLast4RE = regexp.MustCompile(`(?:[X*x#]{3}[-\s]?[X*x#]{2}[-\s]?|\b)(\d{4})\b`)

// extractPersonalInfo pulls the consumer identity block from the personal
// information section. Shared by every strategy: the label/value shape of
// this section barely varies across vendors. Missing fields stay Unknown.
func extractPersonalInfo(doc *model.NormalizedDocument) model.PersonalInfo {
	info := model.NewPersonalInfo()

	var text string
	for _, sec := range doc.Sections {
		if sec.Kind == model.SectionPersonalInfo {
			text = sec.Text
			break
		}
	}
	if text == "" {
		// No recognized section; scan the head of the document, where every
		// vendor prints the identity block.
		text = doc.Text
		if len(text) > 2000 {
			text = text[:2000]
		}
	}

	for _, m := range fieldLineRE.FindAllStringSubmatch(text, -1) {
		label, value := m[1], strings.TrimSpace(m[2])
		if value == "" {
			continue
		}
		switch {
		case fieldLabelMatches(label, "name") && !fieldLabelMatches(label, "creditor", "account", "employer"):
			if info.Name == model.Unknown {
				info.Name = value
			}
		case fieldLabelMatches(label, "ssn", "social security"):
			if m := ssnLast4RE.FindStringSubmatch(value); m != nil {
				info.SSNLast4 = m[1]
			}
		case fieldLabelMatches(label, "date of birth", "dob", "birth"):
			if d := normalizeDate(value); d != model.Unknown {
				info.DateOfBirth = d
			} else {
				info.DateOfBirth = value
			}
		case fieldLabelMatches(label, "address"):
			info.AddressHistory = appendUnique(info.AddressHistory, value)
		}
	}

	return info
}

func appendUnique(list []string, v string) []string {
	for _, have := range list {
		if strings.EqualFold(have, v) {
			return list
		}
	}
	return append(list, v)
}
