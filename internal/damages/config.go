package damages

// ScoringConfig carries every tunable constant of the damages calculation.
// It is passed explicitly rather than kept in package globals so scoring
// rules are versionable and testable in isolation. The settlement
// percentages are fixed across the client base to keep estimates auditable;
// they live here so a config version bump is visible in stored results.
type ScoringConfig struct {
	// Version labels the constant set in persisted results.
	Version string

	// HourlyRate is the attorney-fee projection rate in dollars.
	HourlyRate float64

	// BaseHours is the case-overhead floor of the fee projection.
	BaseHours float64

	// HoursPerViolation scales the projection with violation count.
	HoursPerViolation float64

	// HoursPerSection scales with statutory-section diversity: each distinct
	// FCRA section pleaded adds briefing work.
	HoursPerSection float64

	// SettlementTargetFraction of total exposure (fixed at 0.65).
	SettlementTargetFraction float64

	// SettlementFloorFraction of total exposure (fixed at 0.45).
	SettlementFloorFraction float64
}

// DefaultScoringConfig returns the standard constant set.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Version:                  "damages-v1",
		HourlyRate:               425,
		BaseHours:                8,
		HoursPerViolation:        2.5,
		HoursPerSection:          4,
		SettlementTargetFraction: 0.65,
		SettlementFloorFraction:  0.45,
	}
}
