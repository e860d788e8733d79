package service

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eldenlens.dev/backend/internal/model"
	"eldenlens.dev/backend/internal/model/types"
	"eldenlens.dev/backend/internal/pkg/pgerr"
)

func resultWeaponIDs(results []*model.EffectivenessResult) []string {
	return lo.Map(results, func(r *model.EffectivenessResult, _ int) string { return r.WeaponID })
}

func resultScores(results []*model.EffectivenessResult) []float64 {
	return lo.Map(results, func(r *model.EffectivenessResult, _ int) float64 { return r.Score })
}

func analysisWeaponIDs(analyses []*model.BuildAnalysis) []string {
	return lo.Map(analyses, func(a *model.BuildAnalysis, _ int) string { return a.WeaponID })
}

func TestGetBestWeaponsForBoss(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	ranked, err := ts.analysis.GetBestWeaponsForBoss(ctx, "margit, the fell omen")
	require.NoError(t, err)
	assert.Equal(t, []string{"club", "uchigatana", "moonveil", "dagger"}, resultWeaponIDs(ranked))
	assert.InDeltaSlice(t, []float64{72, 52, 47, 47}, resultScores(ranked), 1e-9)
	assert.Equal(t, "Strike damage effective, Solid damage (103)", ranked[0].Reasoning)

	ranked, err = ts.analysis.GetBestWeaponsForBoss(ctx, "Rennala, Queen of the Full Moon")
	require.NoError(t, err)
	assert.Equal(t, []string{"uchigatana", "moonveil", "club", "dagger"}, resultWeaponIDs(ranked))
	assert.InDeltaSlice(t, []float64{75, 70, 55, 50}, resultScores(ranked), 1e-9)

	_, err = ts.analysis.GetBestWeaponsForBoss(ctx, "Malenia")
	assert.True(t, pgerr.IsNotFound(err))
}

func TestGetMatchupsForWeapon(t *testing.T) {
	ts := newTestServices(t)

	ranked, err := ts.analysis.GetMatchupsForWeapon(context.Background(), "club")
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Margit, the Fell Omen", ranked[0].BossName)
	assert.InDelta(t, 72, ranked[0].Score, 1e-9)
	assert.Equal(t, "rennala", ranked[1].BossID)
	assert.InDelta(t, 55, ranked[1].Score, 1e-9)

	_, err = ts.analysis.GetMatchupsForWeapon(context.Background(), "zweihander")
	assert.True(t, pgerr.IsNotFound(err))
}

func TestGetWeaponRecommendationsForBoss(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	ranked, err := ts.analysis.GetWeaponRecommendationsForBoss(ctx, "margit-the-fell-omen")
	require.NoError(t, err)
	assert.Equal(t, "club", ranked[0].WeaponID)
	assert.LessOrEqual(t, len(ranked), BossRecommendationsLimit)

	ranked, err = ts.analysis.GetWeaponRecommendationsForBoss(ctx, "godrick-the-grafted")
	require.NoError(t, err, "a boss without stats has no recommendations")
	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)

	_, err = ts.analysis.GetWeaponRecommendationsForBoss(ctx, "nobody")
	assert.True(t, pgerr.IsNotFound(err))
}

func TestCalculateMatchup(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	q := types.DefaultMatchupQuery()
	q.WeaponName = "club"
	result, err := ts.analysis.CalculateMatchup(ctx, "Margit, the Fell Omen", &q)
	require.NoError(t, err)

	assert.Equal(t, "Margit, the Fell Omen", result.BossName)
	assert.Equal(t, "Club", result.WeaponName)
	assert.Equal(t, 150, result.PlayerLevel)
	// 0.5 + level 0.18 + score 0.22 + stats 0.0333
	assert.InDelta(t, 93.33, result.WinProbability, 1e-9)
	assert.Equal(t, 2, result.BossTier)
	assert.Equal(t, 4174, result.BossHealth)
	assert.Equal(t, "Strike", result.BossWeakness)
	assert.InDelta(t, 72, result.Effectiveness.Score, 1e-9)
	assert.Equal(t, []string{"club", "uchigatana", "moonveil", "dagger"}, resultWeaponIDs(result.RecommendedWeapons))

	q.WeaponName = "zweihander"
	_, err = ts.analysis.CalculateMatchup(ctx, "Margit, the Fell Omen", &q)
	assert.True(t, pgerr.IsNotFound(err))
}

func TestCalculateMatchupUnderleveled(t *testing.T) {
	ts := newTestServices(t)

	q := types.MatchupQuery{WeaponName: "Dagger", PlayerLevel: 1}
	result, err := ts.analysis.CalculateMatchup(context.Background(), "Rennala, Queen of the Full Moon", &q)
	require.NoError(t, err)
	// 0.5 + level -0.178 + score 0 + stats -0.1
	assert.InDelta(t, 22.2, result.WinProbability, 1e-9)
}

func TestRecommendForPlayer(t *testing.T) {
	ts := newTestServices(t)
	p := &model.PlayerProgress{
		ID:                "p1",
		PlayerName:        "Vyke",
		ObtainedWeaponIDs: []string{"club", "dagger"},
	}

	recs, err := ts.analysis.RecommendForPlayer(context.Background(), p, "Rennala, Queen of the Full Moon")
	require.NoError(t, err)
	assert.Equal(t, "Vyke", recs.PlayerName)
	assert.Equal(t, 2, recs.TotalWeaponsOwned)

	ids := lo.Map(recs.Recommendations, func(r *model.WeaponRecommendation, _ int) string { return r.WeaponID })
	assert.Equal(t, []string{"club", "dagger", "uchigatana", "moonveil"}, ids)
	assert.True(t, recs.Recommendations[0].AlreadyOwned)
	assert.Equal(t, "Hammer", recs.Recommendations[0].Category)
	assert.False(t, recs.Recommendations[2].AlreadyOwned)
	assert.Equal(t, "Katana", recs.Recommendations[2].Category)
}

func TestRankWeaponIDsForBossSkipsMissing(t *testing.T) {
	ts := newTestServices(t)

	ranked, err := ts.analysis.RankWeaponIDsForBoss(context.Background(), "Margit, the Fell Omen", []string{"dagger", "zweihander", "club"})
	require.NoError(t, err)
	assert.Equal(t, []string{"club", "dagger"}, resultWeaponIDs(ranked))
}

func TestAnalyzeWeapon(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	a, err := ts.analysis.AnalyzeWeapon(ctx, "club", &model.PlayerBuild{Level: 30, Strength: 12})
	require.NoError(t, err)
	assert.True(t, a.MeetsRequirements)
	assert.InDelta(t, 103+0.12*103*0.9, a.TotalDamage, 1e-9)

	a, err = ts.analysis.AnalyzeWeapon(ctx, "moonveil", &model.PlayerBuild{Level: 30, Strength: 12, Dexterity: 18})
	require.NoError(t, err)
	assert.False(t, a.MeetsRequirements)
	assert.Equal(t, []string{"Int 23"}, a.MissingStats)
	assert.Zero(t, a.TotalDamage)

	_, err = ts.analysis.AnalyzeWeapon(ctx, "zweihander", &model.PlayerBuild{})
	assert.True(t, pgerr.IsNotFound(err))
}

func TestFindBestWeapons(t *testing.T) {
	ts := newTestServices(t)
	build := &model.PlayerBuild{Level: 40, Strength: 12, Dexterity: 15, Intelligence: 10}

	best, err := ts.analysis.FindBestWeapons(context.Background(), build, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"uchigatana", "club", "dagger"}, analysisWeaponIDs(best))
	for _, a := range best {
		assert.True(t, a.MeetsRequirements)
	}

	best, err = ts.analysis.FindBestWeapons(context.Background(), build, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"uchigatana", "club"}, analysisWeaponIDs(best))
}

func TestCompareWeapons(t *testing.T) {
	ts := newTestServices(t)
	build := &model.PlayerBuild{Level: 40, Strength: 12, Dexterity: 15}

	analyses, err := ts.analysis.CompareWeapons(context.Background(), []string{"dagger", "zweihander", "moonveil", "club"}, build)
	require.NoError(t, err)
	assert.Equal(t, []string{"club", "dagger", "moonveil"}, analysisWeaponIDs(analyses), "unusable weapons sort last with zero damage")
	assert.False(t, analyses[2].MeetsRequirements)
}

func TestCompareWeaponsCanceled(t *testing.T) {
	ts := newTestServices(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ts.analysis.CompareWeapons(ctx, []string{"club", "dagger"}, &model.PlayerBuild{})
	assert.True(t, errors.Is(err, context.Canceled))
}
