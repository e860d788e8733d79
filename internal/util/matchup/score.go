// Package matchup scores weapons against bosses. Everything here is pure: no
// I/O, no shared state, and every function is total over its inputs.
package matchup

import (
	"fmt"
	"math"
	"strings"

	"eldenlens.dev/backend/internal/model"
)

type element struct {
	label   string
	keyword string
	names   []string
}

var elements = []element{
	{label: "Fire", keyword: "fire", names: []string{"fire"}},
	{label: "Magic", keyword: "magic", names: []string{"mag", "magic"}},
	{label: "Lightning", keyword: "lightning", names: []string{"ligt", "lightning"}},
	{label: "Holy", keyword: "holy", names: []string{"holy"}},
}

var physicalNames = []string{"phy", "physical"}

type Scorer struct {
	W Weights
}

func NewScorer(w Weights) *Scorer {
	return &Scorer{W: w}
}

// Default scores with DefaultWeights.
var Default = NewScorer(DefaultWeights)

// Score is Default.Score.
func Score(weapon *model.Weapon, boss *model.BossStats) model.EffectivenessResult {
	return Default.Score(weapon, boss)
}

// Score rates weapon against boss on [0, 100] and explains every term that
// moved the score. Same inputs always yield the same result.
func (s *Scorer) Score(weapon *model.Weapon, boss *model.BossStats) model.EffectivenessResult {
	if weapon == nil {
		weapon = &model.Weapon{}
	}
	if boss == nil {
		boss = &model.BossStats{}
	}

	w := s.W
	score := w.Base
	var reasons []string

	weakness := strings.ToLower(boss.Weakness)
	mentions := func(keyword string) bool {
		return keyword != "" && strings.Contains(weakness, keyword)
	}

	attackType := ClassifyAttackType(weapon.Category)
	if mentions(attackType.Keyword()) {
		score += w.AttackTypeWeakness
		reasons = append(reasons, fmt.Sprintf("%s damage effective", attackType))
	}

	for _, a := range weapon.Attack {
		if !(a.Amount > 0) {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(a.Name))
		for _, e := range elements {
			if mentions(e.keyword) && oneOf(name, e.names) {
				score += w.ElementWeakness
				reasons = append(reasons, fmt.Sprintf("%s damage (%s)", e.label, formatAmount(a.Amount)))
			}
		}
	}

	bleed, frost := mentions("bleed"), mentions("frost")
	rot := mentions("rot") || mentions("scarlet")
	if bleed {
		score += w.StatusWeakness
		reasons = append(reasons, "Bleed weakness")
	}
	if frost {
		score += w.StatusWeakness
		reasons = append(reasons, "Frost weakness")
	}
	if rot {
		score += w.StatusWeakness
		reasons = append(reasons, "Scarlet rot weakness")
	}

	if boss.BleedImmune && bleed {
		score -= w.StatusImmunity
		reasons = append(reasons, "Immune to bleed")
	}
	if boss.FrostImmune && frost {
		score -= w.StatusImmunity
		reasons = append(reasons, "Immune to frost")
	}
	if boss.ScarletRotImmune && rot {
		score -= w.StatusImmunity
		reasons = append(reasons, "Immune to scarlet rot")
	}
	if boss.PoisonImmune && mentions("poison") {
		score -= w.PoisonImmunity
		reasons = append(reasons, "Immune to poison")
	}

	score -= boss.AverageResistance() * w.ResistanceTax

	if phys, ok := weapon.AttackAmount(physicalNames...); ok {
		switch {
		case phys > w.HighPhysicalThreshold:
			score += w.HighPhysicalBonus
			reasons = append(reasons, fmt.Sprintf("High damage (%s)", formatAmount(phys)))
		case phys > w.PhysicalThreshold:
			score += w.PhysicalBonus
			reasons = append(reasons, fmt.Sprintf("Solid damage (%s)", formatAmount(phys)))
		}
	}

	score = clamp(score, MinScore, MaxScore)
	if len(reasons) == 0 {
		if score >= 60 {
			reasons = append(reasons, "Good option")
		} else {
			reasons = append(reasons, "Usable")
		}
	}

	return model.EffectivenessResult{
		WeaponID:   weapon.ID,
		WeaponName: weapon.Name,
		BossID:     boss.ID,
		BossName:   boss.BossName,
		Score:      score,
		Reasoning:  strings.Join(reasons, ", "),
	}
}

// WinProbability is Default.WinProbability.
func WinProbability(build *model.PlayerBuild, boss *model.BossStats, weapon *model.Weapon) float64 {
	return Default.WinProbability(build, boss, weapon)
}

// WinProbability blends the matchup score with the build's level against the
// boss tier and its offensive stat spread. The result never reaches 0 or 1.
func (s *Scorer) WinProbability(build *model.PlayerBuild, boss *model.BossStats, weapon *model.Weapon) float64 {
	if build == nil {
		build = &model.PlayerBuild{}
	}
	if boss == nil {
		boss = &model.BossStats{}
	}

	p := 0.5

	expectedLevel := float64(boss.Tier * LevelsPerTier)
	p += (float64(build.Level) - expectedLevel) / 100 * 0.2

	p += (s.Score(weapon, boss).Score - 50) / 100

	p += statBonus(build) * 0.1

	return clamp(p, MinWinProbability, MaxWinProbability)
}

// statBonus is how far the offensive attributes exceed 60% of the level,
// relative to that baseline. Non-positive levels have no baseline and get 0.
func statBonus(build *model.PlayerBuild) float64 {
	if build.Level <= 0 {
		return 0
	}
	total := float64(build.Strength + build.Dexterity + build.Intelligence + build.Faith)
	expected := float64(build.Level) * 0.6
	return (total - expected) / expected
}

// clamp bounds v to [lo, hi]; NaN becomes lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func oneOf(s string, candidates []string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}

func formatAmount(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
