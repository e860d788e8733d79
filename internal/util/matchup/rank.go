package matchup

import (
	"math"
	"sort"

	"eldenlens.dev/backend/internal/model"
)

// RankWeaponsForBoss is Default.RankWeaponsForBoss.
func RankWeaponsForBoss(boss *model.BossStats, weapons []*model.Weapon) []*model.EffectivenessResult {
	return Default.RankWeaponsForBoss(boss, weapons)
}

// RankBossesForWeapon is Default.RankBossesForWeapon.
func RankBossesForWeapon(weapon *model.Weapon, bosses []*model.BossStats) []*model.EffectivenessResult {
	return Default.RankBossesForWeapon(weapon, bosses)
}

// RankWeaponsForBoss scores every weapon against boss, best first. Equal
// scores keep the order of weapons. Malformed weapons are left out; compare
// lengths to learn how many.
func (s *Scorer) RankWeaponsForBoss(boss *model.BossStats, weapons []*model.Weapon) []*model.EffectivenessResult {
	if !ValidBoss(boss) {
		return []*model.EffectivenessResult{}
	}
	results := make([]*model.EffectivenessResult, 0, len(weapons))
	for _, w := range weapons {
		if !ValidWeapon(w) {
			continue
		}
		r := s.Score(w, boss)
		results = append(results, &r)
	}
	sortByScore(results)
	return results
}

// RankBossesForWeapon scores weapon against every boss, best matchup first.
func (s *Scorer) RankBossesForWeapon(weapon *model.Weapon, bosses []*model.BossStats) []*model.EffectivenessResult {
	if !ValidWeapon(weapon) {
		return []*model.EffectivenessResult{}
	}
	results := make([]*model.EffectivenessResult, 0, len(bosses))
	for _, b := range bosses {
		if !ValidBoss(b) {
			continue
		}
		r := s.Score(weapon, b)
		results = append(results, &r)
	}
	sortByScore(results)
	return results
}

// RankForPlayer puts weapons the player owns ahead of the rest, each group
// ordered by score. categories maps weapon id to category and may be nil.
func RankForPlayer(results []*model.EffectivenessResult, owned []string, categories map[string]string) []*model.WeaponRecommendation {
	ownedSet := make(map[string]struct{}, len(owned))
	for _, id := range owned {
		ownedSet[id] = struct{}{}
	}

	recs := make([]*model.WeaponRecommendation, 0, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		_, isOwned := ownedSet[r.WeaponID]
		recs = append(recs, &model.WeaponRecommendation{
			EffectivenessResult: *r,
			Category:            categories[r.WeaponID],
			AlreadyOwned:        isOwned,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].AlreadyOwned != recs[j].AlreadyOwned {
			return recs[i].AlreadyOwned
		}
		return recs[i].Score > recs[j].Score
	})
	return recs
}

// ValidWeapon reports whether w can be scored.
func ValidWeapon(w *model.Weapon) bool {
	if w == nil || w.ID == "" {
		return false
	}
	for _, a := range w.Attack {
		if !finite(a.Amount) {
			return false
		}
	}
	return true
}

// ValidBoss reports whether b can be scored against.
func ValidBoss(b *model.BossStats) bool {
	if b == nil || b.ID == "" {
		return false
	}
	return finite(b.PhysicalResist) && finite(b.MagicResist) && finite(b.FireResist) &&
		finite(b.LightningResist) && finite(b.HolyResist)
}

func sortByScore(results []*model.EffectivenessResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
