package damages

import (
	"testing"

	"github.com/credlens/credlens/internal/model"
)

func violation(section model.FCRASection, willful bool) model.Violation {
	return model.Violation{
		FCRASection:    section,
		Type:           model.ViolationContradictoryReporting,
		Willful:        willful,
		StatutoryRange: section.Range(),
	}
}

func TestCalculate_FiveViolationsThreeWillful(t *testing.T) {
	// Five §611 violations at $750 each, three willful (fraction 0.6 →
	// multiplier 3).
	vs := []model.Violation{
		violation(model.Section611, true),
		violation(model.Section611, true),
		violation(model.Section611, true),
		violation(model.Section611, false),
		violation(model.Section611, false),
	}
	standing := model.Standing{ConcreteHarm: true, DocumentedActualDollars: 1500}

	est, err := Calculate(DefaultScoringConfig(), vs, standing)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if est.Statutory != 3750 {
		t.Errorf("Expected statutory 3750, got %v", est.Statutory)
	}
	if est.Actual != 1500 {
		t.Errorf("Expected actual 1500, got %v", est.Actual)
	}
	if est.PunitiveMultiplier != 3 {
		t.Errorf("Expected multiplier 3, got %v", est.PunitiveMultiplier)
	}
	if est.Punitive != 11250 {
		t.Errorf("Expected punitive 11250, got %v", est.Punitive)
	}
	if est.TotalExposure != 16500 {
		t.Errorf("Expected total exposure 16500, got %v", est.TotalExposure)
	}
	if est.SettlementTarget != 10725 {
		t.Errorf("Expected settlement target 0.65*16500=10725, got %v", est.SettlementTarget)
	}
	if est.SettlementFloor != 7425 {
		t.Errorf("Expected settlement floor 0.45*16500=7425, got %v", est.SettlementFloor)
	}

	// 8 base + 2.5*5 + 4*1 = 24.5 hours at $425.
	if est.AttorneyHours != 24.5 {
		t.Errorf("Expected 24.5 attorney hours, got %v", est.AttorneyHours)
	}
	if est.AttorneyFees != 10412.50 {
		t.Errorf("Expected fees 10412.50, got %v", est.AttorneyFees)
	}
}

func TestCalculate_NoWillfulMeansNoPunitive(t *testing.T) {
	vs := []model.Violation{
		violation(model.Section611, false),
		violation(model.Section607B, false),
	}

	est, err := Calculate(DefaultScoringConfig(), vs, model.Standing{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if est.Punitive != 0 || est.PunitiveMultiplier != 0 {
		t.Errorf("Expected no punitive component, got %v (multiplier %v)", est.Punitive, est.PunitiveMultiplier)
	}
	if est.Statutory != 1500 {
		t.Errorf("Expected statutory 1500, got %v", est.Statutory)
	}
	// Two distinct sections: 8 + 2.5*2 + 4*2 = 21 hours.
	if est.AttorneyHours != 21 {
		t.Errorf("Expected 21 attorney hours, got %v", est.AttorneyHours)
	}
}

func TestCalculate_IdentityTheftFlatAward(t *testing.T) {
	est, err := Calculate(DefaultScoringConfig(), []model.Violation{violation(model.Section605B, true)}, model.Standing{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if est.Statutory != 1000 {
		t.Errorf("Expected flat 1000 for a 605B violation, got %v", est.Statutory)
	}
	if est.PunitiveMultiplier != 5 {
		t.Errorf("Expected multiplier 5 for an all-willful set, got %v", est.PunitiveMultiplier)
	}
}

func TestCalculate_AwardNeverExceedsSectionCap(t *testing.T) {
	// A corrupt stored range above the section cap must be clamped back.
	v := violation(model.Section611, false)
	v.StatutoryRange = model.StatutoryRange{Min: 100, Max: 5000}

	est, err := Calculate(DefaultScoringConfig(), []model.Violation{v}, model.Standing{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if est.Statutory != 750 {
		t.Errorf("Expected award clamped to the 750 cap, got %v", est.Statutory)
	}
}

func TestCalculate_ActualRequiresConcreteHarm(t *testing.T) {
	standing := model.Standing{ConcreteHarm: false, DocumentedActualDollars: 9999}
	est, err := Calculate(DefaultScoringConfig(), []model.Violation{violation(model.Section611, false)}, standing)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if est.Actual != 0 {
		t.Errorf("Expected no actual damages without concrete harm, got %v", est.Actual)
	}
}

func TestCalculate_InvalidSectionIsAnInvariantError(t *testing.T) {
	v := violation(model.Section611, false)
	v.FCRASection = "999"

	_, err := Calculate(DefaultScoringConfig(), []model.Violation{v}, model.Standing{})
	if err == nil {
		t.Fatalf("Expected an invariant error for an unknown section")
	}
	if _, ok := err.(*model.InvariantError); !ok {
		t.Errorf("Expected *model.InvariantError, got %T", err)
	}
}

func TestCalculate_EmptyViolationSet(t *testing.T) {
	est, err := Calculate(DefaultScoringConfig(), nil, model.Standing{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if est.Statutory != 0 || est.Punitive != 0 || est.TotalExposure != 0 {
		t.Errorf("Expected zero exposure, got %+v", est)
	}
	// The base-hours floor still applies.
	if est.AttorneyHours != 8 {
		t.Errorf("Expected base 8 hours, got %v", est.AttorneyHours)
	}
}

func TestPunitiveMultiplierSteps(t *testing.T) {
	cases := []struct {
		fraction float64
		want     float64
	}{
		{1.0, 5},
		{0.9, 4},
		{0.75, 4},
		{0.6, 3},
		{0.5, 3},
		{0.4, 2},
		{0.25, 2},
		{0.1, 1},
	}
	for _, c := range cases {
		if got := punitiveMultiplier(c.fraction); got != c.want {
			t.Errorf("punitiveMultiplier(%v): expected %v, got %v", c.fraction, c.want, got)
		}
	}
}
