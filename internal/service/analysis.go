package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"eldenlens.dev/backend/internal/app/appconfig"
	"eldenlens.dev/backend/internal/model"
	"eldenlens.dev/backend/internal/model/types"
	"eldenlens.dev/backend/internal/pkg/async"
	"eldenlens.dev/backend/internal/pkg/observability"
	"eldenlens.dev/backend/internal/pkg/pgerr"
	"eldenlens.dev/backend/internal/util/matchup"
)

const (
	BestWeaponsLimit         = 10
	BossRecommendationsLimit = 5
	MatchupAlternativesLimit = 5
	PlayerRecommendLimit     = 10
	DefaultBestForBuildLimit = 10

	directionWeapons = "weapons"
	directionBosses  = "bosses"
	directionBuild   = "build"
)

// Analysis combines cached reference data with the matchup scorer. Results
// are computed per request and never cached.
type Analysis struct {
	Config           *appconfig.Config
	WeaponService    *Weapon
	BossStatsService *BossStats
	BossService      *Boss
}

func NewAnalysis(conf *appconfig.Config, weaponService *Weapon, bossStatsService *BossStats, bossService *Boss) *Analysis {
	return &Analysis{
		Config:           conf,
		WeaponService:    weaponService,
		BossStatsService: bossStatsService,
		BossService:      bossService,
	}
}

// GetBestWeaponsForBoss ranks every weapon against the named boss.
func (s *Analysis) GetBestWeaponsForBoss(ctx context.Context, bossName string) ([]*model.EffectivenessResult, error) {
	boss, err := s.BossStatsService.GetBossStatsByName(ctx, bossName)
	if err != nil {
		return nil, err
	}
	ranked, err := s.rankWeapons(ctx, boss)
	if err != nil {
		return nil, err
	}
	return lo.Subset(ranked, 0, BestWeaponsLimit), nil
}

// GetMatchupsForWeapon ranks every boss against the weapon with the given id.
func (s *Analysis) GetMatchupsForWeapon(ctx context.Context, weaponID string) ([]*model.EffectivenessResult, error) {
	weapon, err := s.WeaponService.GetWeaponByID(ctx, weaponID)
	if err != nil {
		return nil, err
	}
	bosses, err := s.BossStatsService.GetAllBossStats(ctx)
	if err != nil {
		return nil, err
	}

	defer observeRanking(directionBosses, time.Now())
	ranked := matchup.RankBossesForWeapon(weapon, bosses)
	observeSkipped(directionBosses, len(bosses)-len(ranked))
	return ranked, nil
}

// GetWeaponRecommendationsForBoss ranks weapons against the boss with the
// given id. A boss without a combat profile has no recommendations.
func (s *Analysis) GetWeaponRecommendationsForBoss(ctx context.Context, bossID string) ([]*model.EffectivenessResult, error) {
	stats, err := s.BossService.GetBossStats(ctx, bossID)
	if pgerr.IsNotFound(err) {
		if _, bossErr := s.BossService.GetBossByID(ctx, bossID); bossErr != nil {
			return nil, bossErr
		}
		return []*model.EffectivenessResult{}, nil
	} else if err != nil {
		return nil, err
	}
	ranked, err := s.rankWeapons(ctx, stats)
	if err != nil {
		return nil, err
	}
	return lo.Subset(ranked, 0, BossRecommendationsLimit), nil
}

// CalculateMatchup estimates how a build wielding the named weapon fares
// against the named boss, and suggests the best alternatives.
func (s *Analysis) CalculateMatchup(ctx context.Context, bossName string, q *types.MatchupQuery) (*model.MatchupResult, error) {
	boss, err := s.BossStatsService.GetBossStatsByName(ctx, bossName)
	if err != nil {
		return nil, err
	}
	weapon, err := s.WeaponService.GetWeaponByName(ctx, q.WeaponName)
	if err != nil {
		return nil, err
	}
	ranked, err := s.rankWeapons(ctx, boss)
	if err != nil {
		return nil, err
	}

	build := q.Build()
	return &model.MatchupResult{
		BossName:           boss.BossName,
		WeaponName:         weapon.Name,
		PlayerLevel:        build.Level,
		WinProbability:     math.Round(matchup.WinProbability(build, boss, weapon)*100*100) / 100,
		BossTier:           boss.Tier,
		BossHealth:         boss.HealthPoints,
		BossWeakness:       boss.Weakness,
		Effectiveness:      matchup.Score(weapon, boss),
		RecommendedWeapons: lo.Subset(ranked, 0, MatchupAlternativesLimit),
	}, nil
}

// RecommendForPlayer ranks weapons against the named boss, putting the ones
// the player already owns first.
func (s *Analysis) RecommendForPlayer(ctx context.Context, p *model.PlayerProgress, bossName string) (*model.PlayerRecommendations, error) {
	boss, err := s.BossStatsService.GetBossStatsByName(ctx, bossName)
	if err != nil {
		return nil, err
	}
	weapons, err := s.WeaponService.GetWeapons(ctx)
	if err != nil {
		return nil, err
	}

	defer observeRanking(directionWeapons, time.Now())
	ranked := matchup.RankWeaponsForBoss(boss, weapons)
	observeSkipped(directionWeapons, len(weapons)-len(ranked))

	categories := make(map[string]string, len(weapons))
	for _, w := range weapons {
		if w != nil {
			categories[w.ID] = w.Category
		}
	}
	recommendations := matchup.RankForPlayer(ranked, p.ObtainedWeaponIDs, categories)

	return &model.PlayerRecommendations{
		BossName:          boss.BossName,
		PlayerName:        p.PlayerName,
		TotalWeaponsOwned: len(p.ObtainedWeaponIDs),
		Recommendations:   lo.Subset(recommendations, 0, PlayerRecommendLimit),
	}, nil
}

// RankWeaponIDsForBoss ranks the given weapons against the named boss. Weapons
// are loaded concurrently; ones that fail to load are left out.
func (s *Analysis) RankWeaponIDsForBoss(ctx context.Context, bossName string, weaponIDs []string) ([]*model.EffectivenessResult, error) {
	boss, err := s.BossStatsService.GetBossStatsByName(ctx, bossName)
	if err != nil {
		return nil, err
	}
	weapons, err := s.loadWeapons(ctx, weaponIDs, directionWeapons)
	if err != nil {
		return nil, err
	}

	defer observeRanking(directionWeapons, time.Now())
	ranked := matchup.RankWeaponsForBoss(boss, weapons)
	observeSkipped(directionWeapons, len(weapons)-len(ranked))
	return ranked, nil
}

// AnalyzeWeapon estimates the damage of the weapon with the given id for build.
func (s *Analysis) AnalyzeWeapon(ctx context.Context, weaponID string, build *model.PlayerBuild) (*model.BuildAnalysis, error) {
	weapon, err := s.WeaponService.GetWeaponByID(ctx, weaponID)
	if err != nil {
		return nil, err
	}
	analysis := matchup.AnalyzeBuild(weapon, build)
	return &analysis, nil
}

// FindBestWeapons returns the weapons build can wield, highest damage first.
func (s *Analysis) FindBestWeapons(ctx context.Context, build *model.PlayerBuild, limit int) ([]*model.BuildAnalysis, error) {
	if limit <= 0 {
		limit = DefaultBestForBuildLimit
	}
	usable, err := s.WeaponService.GetUsableWeapons(ctx, build)
	if err != nil {
		return nil, err
	}

	defer observeRanking(directionBuild, time.Now())
	analyses := make([]*model.BuildAnalysis, 0, len(usable))
	for _, w := range usable {
		a := matchup.AnalyzeBuild(w, build)
		if a.MeetsRequirements {
			analyses = append(analyses, &a)
		}
	}
	sortByDamage(analyses)
	return lo.Subset(analyses, 0, uint(limit)), nil
}

// CompareWeapons analyses the given weapons side by side, highest damage
// first. Weapons that fail to load are left out.
func (s *Analysis) CompareWeapons(ctx context.Context, weaponIDs []string, build *model.PlayerBuild) ([]*model.BuildAnalysis, error) {
	weapons, err := s.loadWeapons(ctx, weaponIDs, directionBuild)
	if err != nil {
		return nil, err
	}

	defer observeRanking(directionBuild, time.Now())
	analyses := lo.Map(weapons, func(w *model.Weapon, _ int) *model.BuildAnalysis {
		a := matchup.AnalyzeBuild(w, build)
		return &a
	})
	sortByDamage(analyses)
	return analyses, nil
}

func (s *Analysis) rankWeapons(ctx context.Context, boss *model.BossStats) ([]*model.EffectivenessResult, error) {
	weapons, err := s.WeaponService.GetWeapons(ctx)
	if err != nil {
		return nil, err
	}

	defer observeRanking(directionWeapons, time.Now())
	ranked := matchup.RankWeaponsForBoss(boss, weapons)
	observeSkipped(directionWeapons, len(weapons)-len(ranked))
	return ranked, nil
}

// loadWeapons fetches weapons by id with bounded concurrency, keeping the
// order of ids. Individual failures are logged and skipped; running out of
// time fails the whole load.
func (s *Analysis) loadWeapons(ctx context.Context, ids []string, direction string) ([]*model.Weapon, error) {
	if s.Config.AnalysisTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Config.AnalysisTimeout)
		defer cancel()
	}

	results, errs := async.Map(ctx, ids, s.Config.AnalysisFanoutLimit, func(ctx context.Context, id string) (*model.Weapon, error) {
		return s.WeaponService.GetWeaponByID(ctx, id)
	})
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "load weapons for analysis")
	}

	weapons, err := async.Collect(results, errs)
	if err != nil {
		observeSkipped(direction, len(ids)-len(weapons))
		log.Warn().
			Err(err).
			Str("evt.name", "analysis.load").
			Int("requested", len(ids)).
			Int("loaded", len(weapons)).
			Msg("some weapons could not be loaded and were left out")
	}
	return weapons, nil
}

func sortByDamage(analyses []*model.BuildAnalysis) {
	sort.SliceStable(analyses, func(i, j int) bool {
		return analyses[i].TotalDamage > analyses[j].TotalDamage
	})
}

func observeRanking(direction string, start time.Time) {
	observability.RankingDuration.WithLabelValues(direction).Observe(time.Since(start).Seconds())
}

func observeSkipped(direction string, n int) {
	if n > 0 {
		observability.RankingSkipped.WithLabelValues(direction).Add(float64(n))
	}
}
