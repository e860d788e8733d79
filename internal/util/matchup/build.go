package matchup

import (
	"fmt"
	"math"
	"strings"

	"eldenlens.dev/backend/internal/model"
)

var scalingMultipliers = map[string]float64{
	"S": 1.75,
	"A": 1.40,
	"B": 1.15,
	"C": 0.90,
	"D": 0.65,
	"E": 0.25,
	"-": 0,
}

// ScalingMultiplier converts a scaling grade to a damage multiplier. Unknown
// grades count as 0.5.
func ScalingMultiplier(grade string) float64 {
	if m, ok := scalingMultipliers[strings.ToUpper(strings.TrimSpace(grade))]; ok {
		return m
	}
	return 0.5
}

// DamageForFullScore is the total damage at which a build analysis scores 100.
const DamageForFullScore = 400

// AnalyzeBuild estimates the damage weapon deals in the hands of build.
// Builds that miss a requirement score 0.
func AnalyzeBuild(weapon *model.Weapon, build *model.PlayerBuild) model.BuildAnalysis {
	if weapon == nil {
		weapon = &model.Weapon{}
	}
	if build == nil {
		build = &model.PlayerBuild{}
	}

	a := model.BuildAnalysis{
		WeaponID:          weapon.ID,
		WeaponName:        weapon.Name,
		Category:          weapon.Category,
		MeetsRequirements: true,
		MissingStats:      []string{},
	}

	for _, req := range weapon.RequiredAttributes {
		if build.Attribute(req.Name) < req.Amount {
			a.MeetsRequirements = false
			a.MissingStats = append(a.MissingStats, fmt.Sprintf("%s %d", req.Name, req.Amount))
		}
	}
	if !a.MeetsRequirements {
		a.Recommendation = "Cannot use - Missing: " + strings.Join(a.MissingStats, ", ")
		return a
	}

	for _, atk := range weapon.Attack {
		switch strings.ToLower(strings.TrimSpace(atk.Name)) {
		case "phy", "physical":
			a.PhysicalDamage = atk.Amount
		case "mag", "magic":
			a.MagicDamage = atk.Amount
		case "fire":
			a.FireDamage = atk.Amount
		case "ligt", "lightning":
			a.LightningDamage = atk.Amount
		case "holy":
			a.HolyDamage = atk.Amount
		}
	}

	for _, sc := range weapon.ScalesWith {
		name := strings.ToLower(strings.TrimSpace(sc.Name))
		stat := float64(build.Attribute(name))
		bonus := stat / 100 * a.PhysicalDamage * ScalingMultiplier(sc.Grade)

		switch name {
		case "str", "strength", "dex", "dexterity":
			a.PhysicalDamage += bonus
		case "int", "intelligence":
			a.MagicDamage += bonus
		case "fai", "faith":
			a.HolyDamage += bonus
		case "arc", "arcane":
			bonus *= 0.5
			a.PhysicalDamage += bonus
		default:
			continue
		}
		a.ScalingBonus += bonus
	}

	a.TotalDamage = a.PhysicalDamage + a.MagicDamage + a.FireDamage + a.LightningDamage + a.HolyDamage
	a.Score = clamp(a.TotalDamage/DamageForFullScore*100, MinScore, MaxScore)
	a.Recommendation = recommend(a.Score, a.TotalDamage)

	return a
}

func recommend(score, damage float64) string {
	d := math.Round(damage)
	switch {
	case score >= 75:
		return fmt.Sprintf("Top tier! %.0f damage - one of the best weapons you can use.", d)
	case score >= 60:
		return fmt.Sprintf("Excellent weapon. %.0f damage - highly effective.", d)
	case score >= 45:
		return fmt.Sprintf("Good choice. %.0f damage - solid performance.", d)
	case score >= 30:
		return fmt.Sprintf("Decent option. %.0f damage - works but not optimal.", d)
	}
	return fmt.Sprintf("Weak weapon. Only %.0f damage - look for better options.", d)
}
