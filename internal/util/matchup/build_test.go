package matchup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"eldenlens.dev/backend/internal/model"
)

func uchigatana() *model.Weapon {
	return &model.Weapon{
		ID:       "uchigatana",
		Name:     "Uchigatana",
		Category: "Katana",
		Attack: []model.AttackEntry{
			{Name: "Phy", Amount: 115},
			{Name: "Mag", Amount: 0},
			{Name: "Fire", Amount: 0},
			{Name: "Ligt", Amount: 0},
			{Name: "Holy", Amount: 0},
		},
		ScalesWith: []model.ScalingEntry{
			{Name: "Str", Grade: "D"},
			{Name: "Dex", Grade: "C"},
		},
		RequiredAttributes: []model.RequirementEntry{
			{Name: "Str", Amount: 11},
			{Name: "Dex", Amount: 15},
		},
	}
}

func TestScalingMultiplier(t *testing.T) {
	cases := map[string]float64{
		"S": 1.75, "A": 1.40, "B": 1.15, "C": 0.90, "D": 0.65, "E": 0.25,
		"-": 0, " c ": 0.90, "b": 1.15, "?": 0.5, "": 0.5,
	}
	for grade, want := range cases {
		assert.Equal(t, want, ScalingMultiplier(grade), "grade %q", grade)
	}
}

func TestAnalyzeBuild(t *testing.T) {
	t.Run("ScalesPhysicalDamage", func(t *testing.T) {
		a := AnalyzeBuild(uchigatana(), &model.PlayerBuild{Level: 40, Strength: 20, Dexterity: 30})

		assert.True(t, a.MeetsRequirements)
		assert.Empty(t, a.MissingStats)

		// Str: 20/100 * 115 * 0.65, then Dex on the raised base: 30/100 * 129.95 * 0.9
		str := 0.2 * 115 * 0.65
		dex := 0.3 * (115 + str) * 0.9
		assert.InDelta(t, 115+str+dex, a.PhysicalDamage, 1e-9)
		assert.InDelta(t, str+dex, a.ScalingBonus, 1e-9)
		assert.InDelta(t, a.PhysicalDamage, a.TotalDamage, 1e-9)
		assert.InDelta(t, a.TotalDamage/4, a.Score, 1e-9)
		assert.Equal(t, "Decent option. 165 damage - works but not optimal.", a.Recommendation)
	})

	t.Run("MissingRequirements", func(t *testing.T) {
		a := AnalyzeBuild(uchigatana(), &model.PlayerBuild{Level: 10, Strength: 5, Dexterity: 10})

		assert.False(t, a.MeetsRequirements)
		assert.Equal(t, []string{"Str 11", "Dex 15"}, a.MissingStats)
		assert.Equal(t, float64(0), a.Score)
		assert.Equal(t, float64(0), a.TotalDamage)
		assert.Equal(t, "Cannot use - Missing: Str 11, Dex 15", a.Recommendation)
	})

	t.Run("IntelligenceScalesIntoMagic", func(t *testing.T) {
		w := &model.Weapon{
			ID:         "moonveil",
			Attack:     []model.AttackEntry{{Name: "Phy", Amount: 100}, {Name: "Mag", Amount: 80}},
			ScalesWith: []model.ScalingEntry{{Name: "Int", Grade: "B"}},
		}
		a := AnalyzeBuild(w, &model.PlayerBuild{Intelligence: 50})

		assert.InDelta(t, 100, a.PhysicalDamage, 1e-9)
		assert.InDelta(t, 80+0.5*100*1.15, a.MagicDamage, 1e-9)
	})

	t.Run("ArcaneCountsHalf", func(t *testing.T) {
		w := &model.Weapon{
			ID:         "rivers",
			Attack:     []model.AttackEntry{{Name: "Phy", Amount: 100}},
			ScalesWith: []model.ScalingEntry{{Name: "Arc", Grade: "A"}},
		}
		a := AnalyzeBuild(w, &model.PlayerBuild{Arcane: 40})

		assert.InDelta(t, 100+0.4*100*1.40*0.5, a.PhysicalDamage, 1e-9)
	})

	t.Run("ScoreIsCapped", func(t *testing.T) {
		a := AnalyzeBuild(weapon("giant", "Colossal Sword", 900), &model.PlayerBuild{})
		assert.Equal(t, float64(MaxScore), a.Score)
		assert.Contains(t, a.Recommendation, "Top tier!")
	})

	t.Run("NilInputs", func(t *testing.T) {
		assert.NotPanics(t, func() {
			a := AnalyzeBuild(nil, nil)
			assert.True(t, a.MeetsRequirements)
			assert.Contains(t, a.Recommendation, "Weak weapon")
		})
	})
}
