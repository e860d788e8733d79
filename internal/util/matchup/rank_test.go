package matchup

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eldenlens.dev/backend/internal/model"
)

func weapon(id, category string, phys float64) *model.Weapon {
	return &model.Weapon{
		ID:       id,
		Name:     id,
		Category: category,
		Attack:   []model.AttackEntry{{Name: "Phy", Amount: phys}},
	}
}

func ids(results []*model.EffectivenessResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.WeaponID
	}
	return out
}

func TestRankWeaponsForBoss(t *testing.T) {
	boss := bossWith("Strike", 0)
	weapons := []*model.Weapon{
		weapon("dagger", "Dagger", 70),
		weapon("club", "Hammer", 90),
		weapon("zweihander", "Colossal Sword", 140),
	}

	results := RankWeaponsForBoss(boss, weapons)
	require.Len(t, results, 3)
	assert.Equal(t, []string{"club", "zweihander", "dagger"}, ids(results))
	assert.Equal(t, float64(70), results[0].Score)
	assert.Equal(t, float64(60), results[1].Score)
	assert.Equal(t, float64(50), results[2].Score)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestRankWeaponsForBossTiesKeepInputOrder(t *testing.T) {
	boss := bossWith("", 0)
	weapons := []*model.Weapon{
		weapon("c", "Katana", 90),
		weapon("a", "Katana", 90),
		weapon("b", "Katana", 90),
	}

	for i := 0; i < 5; i++ {
		assert.Equal(t, []string{"c", "a", "b"}, ids(RankWeaponsForBoss(boss, weapons)))
	}
}

func TestRankWeaponsForBossExcludesMalformed(t *testing.T) {
	boss := bossWith("", 0)
	weapons := []*model.Weapon{
		nil,
		weapon("", "Katana", 90),
		weapon("nan", "Katana", math.NaN()),
		weapon("inf", "Katana", math.Inf(1)),
		weapon("ok", "Katana", 90),
	}

	results := RankWeaponsForBoss(boss, weapons)
	assert.Equal(t, []string{"ok"}, ids(results))
}

func TestRankWeaponsForInvalidBoss(t *testing.T) {
	weapons := []*model.Weapon{weapon("ok", "Katana", 90)}

	assert.Empty(t, RankWeaponsForBoss(nil, weapons))

	b := bossWith("", 0)
	b.FireResist = math.Inf(-1)
	assert.Empty(t, RankWeaponsForBoss(b, weapons))
	assert.NotNil(t, RankWeaponsForBoss(b, weapons))
}

func TestRankBossesForWeapon(t *testing.T) {
	tough := bossWith("", 80)
	tough.ID, tough.BossName = "tough", "Tough"
	weak := bossWith("Slash", 0)
	weak.ID, weak.BossName = "weak", "Weak"
	broken := bossWith("", math.NaN())
	broken.ID = "broken"

	results := RankBossesForWeapon(weapon("uchigatana", "Katana", 115), []*model.BossStats{tough, broken, weak})
	require.Len(t, results, 2)
	assert.Equal(t, "weak", results[0].BossID)
	assert.Equal(t, "Weak", results[0].BossName)
	assert.Equal(t, "tough", results[1].BossID)

	assert.Empty(t, RankBossesForWeapon(nil, []*model.BossStats{weak}))
}

func TestRankForPlayer(t *testing.T) {
	results := []*model.EffectivenessResult{
		{WeaponID: "a", Score: 90},
		{WeaponID: "b", Score: 80},
		nil,
		{WeaponID: "c", Score: 70},
		{WeaponID: "d", Score: 60},
	}
	categories := map[string]string{"a": "Katana", "c": "Greatsword"}

	recs := RankForPlayer(results, []string{"d", "c"}, categories)
	require.Len(t, recs, 4)

	got := make([]string, len(recs))
	for i, r := range recs {
		got[i] = r.WeaponID
	}
	assert.Equal(t, []string{"c", "d", "a", "b"}, got)

	assert.True(t, recs[0].AlreadyOwned)
	assert.True(t, recs[1].AlreadyOwned)
	assert.False(t, recs[2].AlreadyOwned)
	assert.Equal(t, "Greatsword", recs[0].Category)
	assert.Equal(t, "Katana", recs[2].Category)
	assert.Equal(t, "", recs[3].Category)
}

func TestRankForPlayerNilCategories(t *testing.T) {
	recs := RankForPlayer([]*model.EffectivenessResult{{WeaponID: "a", Score: 1}}, nil, nil)
	require.Len(t, recs, 1)
	assert.False(t, recs[0].AlreadyOwned)
}
