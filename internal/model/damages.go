package model

// Standing captures the concrete-harm posture of one analysis run. It drives
// both the damages calculation and the case score.
type Standing struct {
	// ConcreteHarm is true when the consumer suffered identifiable harm
	// (credit denial, higher rate, lost housing).
	ConcreteHarm bool `json:"concrete_harm"`

	// Dissemination is true when the inaccurate report was actually pulled by
	// a third party.
	Dissemination bool `json:"dissemination"`

	// Causation is true when the harm traces to the inaccurate reporting
	// rather than to accurate negative history.
	Causation bool `json:"causation"`

	// DenialLetterCount is the number of adverse-action/denial letters on
	// file documenting the harm.
	DenialLetterCount int `json:"denial_letter_count"`

	// DocumentedActualDollars is the caller-documented actual-harm amount.
	// Zero when harm is undocumented.
	DocumentedActualDollars float64 `json:"documented_actual_dollars"`
}

// DamagesEstimate is the deterministic damages computation for one run.
// Derived, recomputable at any time from the violation set and standing;
// never hand-edited.
type DamagesEstimate struct {
	// Actual is the documented actual-harm amount in dollars.
	Actual float64 `json:"actual"`

	// Statutory is the summed per-violation statutory award, each violation
	// capped at its section's fixed maximum.
	Statutory float64 `json:"statutory"`

	// PunitiveMultiplier is the step-table multiplier in [1,5] derived from
	// the willful fraction; 0 when no violation is willful.
	PunitiveMultiplier float64 `json:"punitive_multiplier"`

	// Punitive is Statutory × PunitiveMultiplier when any violation is
	// willful, else 0.
	Punitive float64 `json:"punitive"`

	// AttorneyHours is the projected hours from the complexity heuristic.
	AttorneyHours float64 `json:"attorney_hours"`

	// AttorneyFees is AttorneyHours × the configured hourly rate. A
	// projection, not a negotiated value.
	AttorneyFees float64 `json:"attorney_fees"`

	// TotalExposure is Actual + Statutory + Punitive.
	TotalExposure float64 `json:"total_exposure"`

	// SettlementTarget is the fixed 65% of TotalExposure.
	SettlementTarget float64 `json:"settlement_target"`

	// SettlementFloor is the fixed 45% of TotalExposure.
	SettlementFloor float64 `json:"settlement_floor"`
}

// StrengthLabel buckets a case score for human consumption.
type StrengthLabel string

const (
	StrengthWeak      StrengthLabel = "Weak"
	StrengthModerate  StrengthLabel = "Moderate"
	StrengthStrong    StrengthLabel = "Strong"
	StrengthExcellent StrengthLabel = "Excellent"
)

// CaseScore is the 1-10 case-strength score with its sub-scores kept visible
// so legal staff can explain every point.
type CaseScore struct {
	// Score is the clamped 1-10 total.
	Score int `json:"score"`

	// StandingScore is 0-3.
	StandingScore int `json:"standing_score"`

	// ViolationScore is 0-4.
	ViolationScore int `json:"violation_score"`

	// WillfulnessScore is 0-2.
	WillfulnessScore int `json:"willfulness_score"`

	// DocumentationScore is 0-1.
	DocumentationScore int `json:"documentation_score"`

	// SettlementProbability is a percentage in [0,100] from the fixed band
	// table.
	SettlementProbability int `json:"settlement_probability"`

	// Strength is the label from the fixed threshold table.
	Strength StrengthLabel `json:"strength"`
}
