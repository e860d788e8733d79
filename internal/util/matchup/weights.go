package matchup

// Weights are the terms of the matchup heuristic. They are hand-tuned values,
// not derived from game balance data; DefaultWeights reproduces the scores
// clients have been shown so far.
type Weights struct {
	Base float64

	AttackTypeWeakness float64
	ElementWeakness    float64
	StatusWeakness     float64

	StatusImmunity float64
	PoisonImmunity float64

	// ResistanceTax is multiplied by the boss's average resistance and subtracted.
	ResistanceTax float64

	HighPhysicalThreshold float64
	HighPhysicalBonus     float64
	PhysicalThreshold     float64
	PhysicalBonus         float64
}

var DefaultWeights = Weights{
	Base: 50,

	AttackTypeWeakness: 20,
	ElementWeakness:    15,
	StatusWeakness:     12,

	StatusImmunity: 20,
	PoisonImmunity: 15,

	ResistanceTax: 0.3,

	HighPhysicalThreshold: 120,
	HighPhysicalBonus:     10,
	PhysicalThreshold:     100,
	PhysicalBonus:         5,
}

const (
	MinScore = 0
	MaxScore = 100

	MinWinProbability = 0.05
	MaxWinProbability = 0.95

	// LevelsPerTier is the expected player level per boss tier.
	LevelsPerTier = 30
)
