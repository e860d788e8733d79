package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"eldenlens.dev/backend/internal/model"
	modelcache "eldenlens.dev/backend/internal/model/cache"
	"eldenlens.dev/backend/internal/model/types"
	"eldenlens.dev/backend/internal/pkg/pgerr"
)

var ErrNoActiveSession = pgerr.ErrInvalidReq.Msg("no active fight session for this boss; start one first")

type Fight struct {
	FightRepo       FightStore
	ProgressService *Progress
	BossService     *Boss
	Caches          *modelcache.Caches
}

func NewFight(fightRepo FightStore, progressService *Progress, bossService *Boss, caches *modelcache.Caches) *Fight {
	return &Fight{
		FightRepo:       fightRepo,
		ProgressService: progressService,
		BossService:     bossService,
		Caches:          caches,
	}
}

// StartSession opens a fight session against a boss. While one is already
// active for the same boss, that session is returned instead.
func (s *Fight) StartSession(ctx context.Context, p *model.PlayerProgress, req *types.StartFightRequest) (*model.FightSession, error) {
	active, err := s.FightRepo.GetActiveSession(ctx, p.ID, req.BossID)
	if err == nil {
		return active, nil
	} else if !pgerr.IsNotFound(err) {
		return nil, err
	}

	bossName := strings.TrimSpace(req.BossName)
	if bossName == "" {
		boss, err := s.BossService.GetBossByID(ctx, req.BossID)
		if err != nil {
			return nil, err
		}
		bossName = boss.Name
	}

	session := &model.FightSession{
		ID:              uuid.NewString(),
		ProgressID:      p.ID,
		BossID:          req.BossID,
		BossName:        bossName,
		IsActive:        true,
		WeaponsTriedIDs: []string{},
	}
	if err := s.FightRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	s.Caches.InvalidateFightSession(ctx, session)
	log.Info().
		Str("evt.name", "fight.started").
		Str("sessionId", session.ID).
		Str("progressId", p.ID).
		Str("bossId", req.BossID).
		Msg("fight session started")
	return session, nil
}

// RecordAttempt appends an attempt to the active session against the boss.
// A victory closes the session and marks the boss defeated; anything else
// counts as a death.
func (s *Fight) RecordAttempt(ctx context.Context, p *model.PlayerProgress, req *types.RecordAttemptRequest) (*model.FightAttempt, error) {
	active, err := s.FightRepo.GetActiveSession(ctx, p.ID, req.BossID)
	if pgerr.IsNotFound(err) {
		return nil, ErrNoActiveSession
	} else if err != nil {
		return nil, err
	}

	bossName := strings.TrimSpace(req.BossName)
	if bossName == "" {
		bossName = active.BossName
	}
	attempt := &model.FightAttempt{
		ID:            uuid.NewString(),
		ProgressID:    p.ID,
		BossID:        req.BossID,
		BossName:      bossName,
		WeaponID:      req.WeaponID,
		Victory:       req.Victory,
		TimeSpentSecs: req.TimeSpentSecs,
		DamageTaken:   req.DamageTaken,
		PlayerLevel:   req.PlayerLevel,
		Notes:         req.Notes,
	}
	session, err := s.FightRepo.AppendAttempt(ctx, active.ID, attempt)
	if err != nil {
		return nil, err
	}
	s.Caches.InvalidateFightSession(ctx, session)

	if attempt.Victory {
		_, err = s.ProgressService.MarkBossDefeated(ctx, p, req.BossID)
	} else {
		_, err = s.ProgressService.RecordDeath(ctx, p)
	}
	if err != nil {
		// the attempt is committed; a retry would record it twice
		log.Error().
			Err(err).
			Str("evt.name", "fight.progress").
			Str("progressId", p.ID).
			Str("sessionId", session.ID).
			Bool("victory", attempt.Victory).
			Msg("failed to apply fight attempt to player progress")
	}
	return attempt, nil
}

// EndSession gives up on a session. Ending a closed session is a no-op.
func (s *Fight) EndSession(ctx context.Context, session *model.FightSession) (*model.FightSession, error) {
	ended, err := s.FightRepo.EndSession(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	s.Caches.InvalidateFightSession(ctx, ended)
	return ended, nil
}

// Cache: fightSession#id:{id}, 30m
func (s *Fight) GetSession(ctx context.Context, id string) (*model.FightSession, error) {
	session, err := s.Caches.FightSessionByID.MutexGetSet(ctx, id, func(ctx context.Context) (model.FightSession, error) {
		session, err := s.FightRepo.GetSessionByID(ctx, id)
		return deref(session, err)
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetOwnedSession returns the session with the given id if userID owns the
// progress it belongs to.
func (s *Fight) GetOwnedSession(ctx context.Context, userID, id string) (*model.FightSession, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.ProgressService.GetOwnedProgress(ctx, userID, session.ProgressID); err != nil {
		return nil, err
	}
	return session, nil
}

// Cache: fightSessions#progressId:{progressId}, 30m
func (s *Fight) GetSessionsByProgress(ctx context.Context, progressID string) ([]*model.FightSession, error) {
	return s.Caches.FightSessionsByProgress.MutexGetSet(ctx, progressID, func(ctx context.Context) ([]*model.FightSession, error) {
		return s.FightRepo.GetSessionsByProgressID(ctx, progressID)
	})
}

// Cache: fightAttempts#sessionId:{sessionId}, 30m
func (s *Fight) GetAttemptsBySession(ctx context.Context, sessionID string) ([]*model.FightAttempt, error) {
	return s.Caches.FightAttemptsBySession.MutexGetSet(ctx, sessionID, func(ctx context.Context) ([]*model.FightAttempt, error) {
		return s.FightRepo.GetAttemptsBySessionID(ctx, sessionID)
	})
}

func (s *Fight) GetHistory(ctx context.Context, progressID, bossID string) (*model.FightHistory, error) {
	attempts, err := s.FightRepo.GetAttemptsByProgressAndBoss(ctx, progressID, bossID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.GetSessionsByProgress(ctx, progressID)
	if err != nil {
		return nil, err
	}
	bossSessions := lo.Filter(sessions, func(session *model.FightSession, _ int) bool {
		return session.BossID == bossID
	})

	return &model.FightHistory{
		ProgressID:    progressID,
		BossID:        bossID,
		TotalAttempts: len(attempts),
		TotalSessions: len(bossSessions),
		Victories: lo.CountBy(bossSessions, func(session *model.FightSession) bool {
			return session.Victory
		}),
		Sessions: bossSessions,
		Attempts: attempts,
	}, nil
}

// GetDeathStatistics counts lost attempts per boss, most deaths first.
func (s *Fight) GetDeathStatistics(ctx context.Context, p *model.PlayerProgress) (*model.DeathStatistics, error) {
	attempts, err := s.FightRepo.GetAttemptsByProgressID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	byBoss := make(map[string]*model.BossDeathStat)
	stats := make([]*model.BossDeathStat, 0)
	for _, a := range attempts {
		if a.Victory {
			continue
		}
		stat, ok := byBoss[a.BossID]
		if !ok {
			stat = &model.BossDeathStat{BossID: a.BossID, BossName: a.BossName}
			byBoss[a.BossID] = stat
			stats = append(stats, stat)
		}
		stat.Deaths++
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Deaths > stats[j].Deaths
	})

	result := &model.DeathStatistics{
		TotalDeaths:  p.TotalDeaths,
		DeathsByBoss: stats,
	}
	if len(stats) > 0 {
		result.MostDifficultBoss = stats[0].BossName
	}
	return result, nil
}
