package service

import (
	"context"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"eldenlens.dev/backend/internal/model"
	modelcache "eldenlens.dev/backend/internal/model/cache"
	"eldenlens.dev/backend/internal/model/types"
	"eldenlens.dev/backend/internal/pkg/pgerr"
	"eldenlens.dev/backend/internal/repo"
)

const defaultStartingLevel = 1

type Progress struct {
	ProgressRepo  ProgressStore
	WeaponService *Weapon
	BossService   *Boss
	Caches        *modelcache.Caches
}

func NewProgress(progressRepo ProgressStore, weaponService *Weapon, bossService *Boss, caches *modelcache.Caches) *Progress {
	return &Progress{
		ProgressRepo:  progressRepo,
		WeaponService: weaponService,
		BossService:   bossService,
		Caches:        caches,
	}
}

func (s *Progress) CreateProgress(ctx context.Context, userID string, req *types.CreateProgressRequest) (*model.PlayerProgress, error) {
	level := req.StartingLevel
	if level == 0 {
		level = defaultStartingLevel
	}
	p := &model.PlayerProgress{
		ID:                 uuid.NewString(),
		UserID:             userID,
		PlayerName:         strings.TrimSpace(req.PlayerName),
		PSNID:              req.PSNID,
		CurrentLevel:       level,
		VisitedLocationIDs: []string{},
		DefeatedBossIDs:    []string{},
		ObtainedWeaponIDs:  []string{},
		DiscoveredGraceIDs: []string{},
		UnlockedRegions:    []string{},
	}
	if err := s.ProgressRepo.CreateProgress(ctx, p); err != nil {
		return nil, err
	}
	s.Caches.InvalidateProgress(ctx, p)
	log.Info().
		Str("evt.name", "progress.created").
		Str("progressId", p.ID).
		Str("userId", userID).
		Msg("player progress created")
	return p, nil
}

// Cache: progress#id:{id}, 30m
func (s *Progress) GetProgressByID(ctx context.Context, id string) (*model.PlayerProgress, error) {
	p, err := s.Caches.ProgressByID.MutexGetSet(ctx, id, func(ctx context.Context) (model.PlayerProgress, error) {
		p, err := s.ProgressRepo.GetProgressByID(ctx, id)
		return deref(p, err)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Cache: progress#name:{lower(playerName)}, 30m
func (s *Progress) GetProgressByName(ctx context.Context, playerName string) (*model.PlayerProgress, error) {
	p, err := s.Caches.ProgressByName.MutexGetSet(ctx, modelcache.NameKey(playerName), func(ctx context.Context) (model.PlayerProgress, error) {
		p, err := s.ProgressRepo.GetProgressByName(ctx, playerName)
		return deref(p, err)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Cache: progresses#userId:{userId}, 10m
func (s *Progress) GetProgressesByUser(ctx context.Context, userID string) ([]*model.PlayerProgress, error) {
	return s.Caches.ProgressesByUser.MutexGetSet(ctx, userID, func(ctx context.Context) ([]*model.PlayerProgress, error) {
		return s.ProgressRepo.GetProgressesByUserID(ctx, userID)
	})
}

// GetOwnedProgress returns the progress with the given id if userID owns it.
func (s *Progress) GetOwnedProgress(ctx context.Context, userID, id string) (*model.PlayerProgress, error) {
	p, err := s.GetProgressByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, pgerr.ErrForbidden
	}
	return p, nil
}

func (s *Progress) GetDetailedProgress(ctx context.Context, p *model.PlayerProgress) (*model.DetailedProgress, error) {
	weapons, err := s.WeaponService.GetWeapons(ctx)
	if err != nil {
		return nil, err
	}
	bosses, err := s.BossService.GetBosses(ctx)
	if err != nil {
		return nil, err
	}

	return &model.DetailedProgress{
		PlayerProgress:        p,
		TotalBossesDefeated:   len(p.DefeatedBossIDs),
		TotalWeaponsCollected: len(p.ObtainedWeaponIDs),
		TotalLocationsVisited: len(p.VisitedLocationIDs),
		DefeatedBosses: lo.Filter(bosses, func(b *model.Boss, _ int) bool {
			return p.HasDefeated(b.ID)
		}),
		CollectedWeapons: lo.Filter(weapons, func(w *model.Weapon, _ int) bool {
			return p.OwnsWeapon(w.ID)
		}),
		BossCompletionPercentage:   percentage(len(p.DefeatedBossIDs), model.TotalBosses),
		WeaponCompletionPercentage: percentage(len(p.ObtainedWeaponIDs), model.TotalWeapons),
	}, nil
}

func (s *Progress) VisitLocation(ctx context.Context, p *model.PlayerProgress, locationID string) (*model.PlayerProgress, error) {
	return s.edit(ctx, p, func(ctx context.Context) (*model.PlayerProgress, error) {
		return s.ProgressRepo.AddToList(ctx, p.ID, repo.VisitedLocations, locationID)
	})
}

func (s *Progress) DefeatBoss(ctx context.Context, p *model.PlayerProgress, bossID string) (*model.PlayerProgress, error) {
	if _, err := s.BossService.GetBossByID(ctx, bossID); err != nil {
		return nil, err
	}
	return s.MarkBossDefeated(ctx, p, bossID)
}

// MarkBossDefeated records bossID as defeated without checking that the boss exists.
func (s *Progress) MarkBossDefeated(ctx context.Context, p *model.PlayerProgress, bossID string) (*model.PlayerProgress, error) {
	return s.edit(ctx, p, func(ctx context.Context) (*model.PlayerProgress, error) {
		return s.ProgressRepo.AddToList(ctx, p.ID, repo.DefeatedBosses, bossID)
	})
}

func (s *Progress) ObtainWeapon(ctx context.Context, p *model.PlayerProgress, weaponID string) (*model.PlayerProgress, error) {
	if _, err := s.WeaponService.GetWeaponByID(ctx, weaponID); err != nil {
		return nil, err
	}
	return s.edit(ctx, p, func(ctx context.Context) (*model.PlayerProgress, error) {
		return s.ProgressRepo.AddToList(ctx, p.ID, repo.ObtainedWeapons, weaponID)
	})
}

func (s *Progress) RemoveWeapon(ctx context.Context, p *model.PlayerProgress, weaponID string) (*model.PlayerProgress, error) {
	return s.edit(ctx, p, func(ctx context.Context) (*model.PlayerProgress, error) {
		return s.ProgressRepo.RemoveFromList(ctx, p.ID, repo.ObtainedWeapons, weaponID)
	})
}

func (s *Progress) RemoveDefeatedBoss(ctx context.Context, p *model.PlayerProgress, bossID string) (*model.PlayerProgress, error) {
	return s.edit(ctx, p, func(ctx context.Context) (*model.PlayerProgress, error) {
		return s.ProgressRepo.RemoveFromList(ctx, p.ID, repo.DefeatedBosses, bossID)
	})
}

func (s *Progress) RecordDeath(ctx context.Context, p *model.PlayerProgress) (*model.PlayerProgress, error) {
	return s.edit(ctx, p, func(ctx context.Context) (*model.PlayerProgress, error) {
		return s.ProgressRepo.IncrementDeaths(ctx, p.ID)
	})
}

func (s *Progress) DeleteProgress(ctx context.Context, p *model.PlayerProgress) error {
	if err := s.ProgressRepo.DeleteProgress(ctx, p.ID); err != nil {
		return err
	}
	s.Caches.InvalidateProgress(ctx, p)
	log.Info().
		Str("evt.name", "progress.deleted").
		Str("progressId", p.ID).
		Msg("player progress deleted")
	return nil
}

// edit runs a write and then drops every cached copy of the progress, both
// under its previous and its updated keys.
func (s *Progress) edit(ctx context.Context, p *model.PlayerProgress, write func(ctx context.Context) (*model.PlayerProgress, error)) (*model.PlayerProgress, error) {
	updated, err := write(ctx)
	if err != nil {
		return nil, err
	}
	s.Caches.InvalidateProgress(ctx, p)
	if updated.PlayerName != p.PlayerName || updated.UserID != p.UserID {
		s.Caches.InvalidateProgress(ctx, updated)
	}
	return updated, nil
}

// percentage is part/total*100 rounded to one decimal place.
func percentage(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}
