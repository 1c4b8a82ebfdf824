// Package casescore combines standing strength, violation quality,
// willfulness evidence and documentation completeness into the 1-10
// case-strength score. Entirely rule-based — no statistical component — so
// legal staff can explain every point.
package casescore

import (
	"github.com/credlens/credlens/internal/model"
)

// probabilityBand maps a minimum total score to a settlement probability.
type probabilityBand struct {
	minScore    int
	probability int
}

// probabilityBands is the fixed score → settlement-probability table,
// checked top-down.
var probabilityBands = []probabilityBand{
	{minScore: 10, probability: 90},
	{minScore: 8, probability: 80},
	{minScore: 6, probability: 65},
	{minScore: 4, probability: 45},
	{minScore: 2, probability: 25},
	{minScore: 0, probability: 10},
}

// strengthFor is the fixed threshold table: ≥8 Excellent, 6-7 Strong,
// 4-5 Moderate, ≤3 Weak.
func strengthFor(score int) model.StrengthLabel {
	switch {
	case score >= 8:
		return model.StrengthExcellent
	case score >= 6:
		return model.StrengthStrong
	case score >= 4:
		return model.StrengthModerate
	default:
		return model.StrengthWeak
	}
}

// Score computes the case score from standing and the violation set.
// Pure function; same inputs, same score.
func Score(standing model.Standing, violations []model.Violation) model.CaseScore {
	s := model.CaseScore{
		StandingScore:      standingScore(standing),
		ViolationScore:     violationScore(violations),
		WillfulnessScore:   willfulnessScore(violations),
		DocumentationScore: documentationScore(standing),
	}

	total := s.StandingScore + s.ViolationScore + s.WillfulnessScore + s.DocumentationScore
	if total < 1 {
		total = 1
	}
	if total > 10 {
		total = 10
	}
	s.Score = total

	for _, band := range probabilityBands {
		if total >= band.minScore {
			s.SettlementProbability = band.probability
			break
		}
	}
	s.Strength = strengthFor(total)
	return s
}

// standingScore: 0-3. One point each for concrete harm, dissemination to a
// third party, and causation.
func standingScore(st model.Standing) int {
	score := 0
	if st.ConcreteHarm {
		score++
	}
	if st.Dissemination {
		score++
	}
	if st.Causation {
		score++
	}
	return score
}

// violationScore: 0-4, from violation count and section diversity.
func violationScore(violations []model.Violation) int {
	if len(violations) == 0 {
		return 0
	}
	sections := map[model.FCRASection]bool{}
	for _, v := range violations {
		sections[v.FCRASection] = true
	}

	score := 1
	if len(violations) >= 3 {
		score++
	}
	if len(violations) >= 6 {
		score++
	}
	if len(sections) >= 2 {
		score++
	}
	if score > 4 {
		score = 4
	}
	return score
}

// willfulnessScore: 0-2. One point for any willful violation, a second when
// willful conduct dominates the set.
func willfulnessScore(violations []model.Violation) int {
	willful := 0
	for _, v := range violations {
		if v.Willful {
			willful++
		}
	}
	switch {
	case willful == 0:
		return 0
	case willful*2 >= len(violations):
		return 2
	default:
		return 1
	}
}

// documentationScore: 0-1. The point requires paper: at least one denial
// letter on file.
func documentationScore(st model.Standing) int {
	if st.DenialLetterCount > 0 {
		return 1
	}
	return 0
}
