// Package damages computes the deterministic, auditable damages estimate for
// a violation set: actual, statutory (capped per violation), punitive (step
// multiplier over the willful fraction), an attorney-fee projection and the
// fixed settlement range.
package damages

import (
	"fmt"
	"math"

	"github.com/credlens/credlens/internal/model"
)

// punitiveStep is one row of the fixed willful-fraction → multiplier table.
type punitiveStep struct {
	minFraction float64
	multiplier  float64
}

// punitiveSteps maps the fraction of willful violations to a multiplier in
// [1,5]. Checked top-down, first match wins. Fixed steps, never unbounded
// scaling.
var punitiveSteps = []punitiveStep{
	{minFraction: 1.00, multiplier: 5.0},
	{minFraction: 0.75, multiplier: 4.0},
	{minFraction: 0.50, multiplier: 3.0},
	{minFraction: 0.25, multiplier: 2.0},
	{minFraction: 0.00, multiplier: 1.0},
}

// punitiveMultiplier returns the step-table multiplier for a willful
// fraction. Only called when at least one violation is willful, so the
// result is always in [1,5].
func punitiveMultiplier(willfulFraction float64) float64 {
	for _, step := range punitiveSteps {
		if willfulFraction >= step.minFraction {
			return step.multiplier
		}
	}
	return 1.0
}

// Calculate is a pure function (violations, standing) → DamagesEstimate.
// Statutory damages never exceed the fixed per-violation section caps; that
// is a hard invariant and a violation of it means corrupt rule data, which
// surfaces as an error rather than a silently wrong number.
func Calculate(cfg ScoringConfig, violations []model.Violation, standing model.Standing) (model.DamagesEstimate, error) {
	var est model.DamagesEstimate

	var statutory float64
	willful := 0
	sections := map[model.FCRASection]bool{}
	for i, v := range violations {
		if !v.FCRASection.Valid() {
			return est, &model.InvariantError{
				Invariant: "violation carries known FCRA section",
				Rule:      string(v.Type),
				Context:   fmt.Sprintf("violation %d has section %q", i, v.FCRASection),
			}
		}
		sectionMax := v.FCRASection.Range().Max
		award := v.StatutoryRange.Max
		if award <= 0 || award > sectionMax {
			award = sectionMax
		}
		statutory += award
		sections[v.FCRASection] = true
		if v.Willful {
			willful++
		}
	}

	est.Statutory = round2(statutory)

	if standing.ConcreteHarm {
		est.Actual = round2(standing.DocumentedActualDollars)
	}

	if willful > 0 {
		fraction := float64(willful) / float64(len(violations))
		est.PunitiveMultiplier = punitiveMultiplier(fraction)
		est.Punitive = round2(est.Statutory * est.PunitiveMultiplier)
	}

	est.AttorneyHours = round2(cfg.BaseHours +
		cfg.HoursPerViolation*float64(len(violations)) +
		cfg.HoursPerSection*float64(len(sections)))
	est.AttorneyFees = round2(est.AttorneyHours * cfg.HourlyRate)

	est.TotalExposure = round2(est.Actual + est.Statutory + est.Punitive)
	est.SettlementTarget = round2(cfg.SettlementTargetFraction * est.TotalExposure)
	est.SettlementFloor = round2(cfg.SettlementFloorFraction * est.TotalExposure)

	return est, nil
}

// round2 keeps every stored dollar amount at cent precision so repeated runs
// are bit-identical.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
