package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"

	"eldenlens.dev/backend/internal/model"
	"eldenlens.dev/backend/internal/pkg/pgerr"
	"eldenlens.dev/backend/internal/repo/selector"
)

var ErrSessionClosed = pgerr.ErrConflict.Msg("fight session has already ended")

type Fight struct {
	db         *bun.DB
	sessionSel selector.S[model.FightSession]
	attemptSel selector.S[model.FightAttempt]
}

func NewFight(db *bun.DB) *Fight {
	return &Fight{
		db:         db,
		sessionSel: selector.New[model.FightSession](db),
		attemptSel: selector.New[model.FightAttempt](db),
	}
}

func (r *Fight) CreateSession(ctx context.Context, s *model.FightSession) error {
	_, err := r.db.NewInsert().Model(s).Returning("*").Exec(ctx)
	return err
}

func (r *Fight) GetSessionByID(ctx context.Context, id string) (*model.FightSession, error) {
	return r.sessionSel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("id = ?", id)
	})
}

func (r *Fight) GetActiveSession(ctx context.Context, progressID, bossID string) (*model.FightSession, error) {
	return r.sessionSel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("progress_id = ?", progressID).
			Where("boss_id = ?", bossID).
			Where("is_active").
			Order("started_at DESC").
			Limit(1)
	})
}

func (r *Fight) GetSessionsByProgressID(ctx context.Context, progressID string) ([]*model.FightSession, error) {
	return r.sessionSel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("progress_id = ?", progressID).Order("started_at DESC")
	})
}

func (r *Fight) GetAttemptsBySessionID(ctx context.Context, sessionID string) ([]*model.FightAttempt, error) {
	return r.attemptSel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("session_id = ?", sessionID).Order("attempt_number ASC")
	})
}

func (r *Fight) GetAttemptsByProgressID(ctx context.Context, progressID string) ([]*model.FightAttempt, error) {
	return r.attemptSel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("progress_id = ?", progressID).Order("attempted_at ASC")
	})
}

func (r *Fight) GetAttemptsByProgressAndBoss(ctx context.Context, progressID, bossID string) ([]*model.FightAttempt, error) {
	return r.attemptSel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("progress_id = ?", progressID).
			Where("boss_id = ?", bossID).
			Order("attempted_at ASC")
	})
}

// AppendAttempt numbers attempt after the session's last one, stores it and
// folds it into the session totals. A victorious attempt closes the session.
// The session row is locked for the duration so attempt numbers never repeat.
func (r *Fight) AppendAttempt(ctx context.Context, sessionID string, attempt *model.FightAttempt) (*model.FightSession, error) {
	var session model.FightSession
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().Model(&session).Where("id = ?", sessionID).For("UPDATE").Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return pgerr.ErrNotFound
		} else if err != nil {
			return err
		}
		if !session.IsActive {
			return ErrSessionClosed
		}

		session.TotalAttempts++
		session.TotalTimeSpentSecs += attempt.TimeSpentSecs
		attempt.SessionID = session.ID
		attempt.AttemptNumber = session.TotalAttempts
		if attempt.WeaponID.Valid && !lo.Contains(session.WeaponsTriedIDs, attempt.WeaponID.String) {
			session.WeaponsTriedIDs = append(session.WeaponsTriedIDs, attempt.WeaponID.String)
		}
		if attempt.Victory {
			session.IsActive = false
			session.Victory = true
			session.EndedAt = null.TimeFrom(time.Now())
			session.VictoryWeaponID = attempt.WeaponID
			session.VictoryAttemptNumber = null.IntFrom(int64(attempt.AttemptNumber))
		}

		if _, err := tx.NewInsert().Model(attempt).Returning("*").Exec(ctx); err != nil {
			return errors.Wrap(err, "insert fight attempt")
		}
		_, err = tx.NewUpdate().Model(&session).WherePK().Exec(ctx)
		return errors.Wrap(err, "update fight session")
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// EndSession closes an active session without a victory. Ending a closed
// session returns it unchanged.
func (r *Fight) EndSession(ctx context.Context, sessionID string) (*model.FightSession, error) {
	var session model.FightSession
	err := r.db.NewUpdate().Model(&session).
		Set("is_active = FALSE").
		Set("ended_at = COALESCE(ended_at, current_timestamp)").
		Where("id = ?", sessionID).
		Returning("*").
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pgerr.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return &session, nil
}
