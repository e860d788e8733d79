package repo

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	"eldenlens.dev/backend/internal/model"
	"eldenlens.dev/backend/internal/pkg/pgerr"
	"eldenlens.dev/backend/internal/repo/selector"
)

// ProgressList is an id list column of player_progress that can be edited
// element-wise.
type ProgressList string

const (
	VisitedLocations ProgressList = "visited_location_ids"
	DefeatedBosses   ProgressList = "defeated_boss_ids"
	ObtainedWeapons  ProgressList = "obtained_weapon_ids"
)

type Progress struct {
	db  *bun.DB
	sel selector.S[model.PlayerProgress]
}

func NewProgress(db *bun.DB) *Progress {
	return &Progress{
		db:  db,
		sel: selector.New[model.PlayerProgress](db),
	}
}

func (r *Progress) CreateProgress(ctx context.Context, p *model.PlayerProgress) error {
	_, err := r.db.NewInsert().Model(p).Returning("*").Exec(ctx)
	if err != nil && isUniqueViolation(err) {
		return pgerr.ErrConflict.Msg("player name %q is already taken", p.PlayerName)
	}
	return err
}

func (r *Progress) GetProgressByID(ctx context.Context, id string) (*model.PlayerProgress, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("id = ?", id)
	})
}

func (r *Progress) GetProgressByName(ctx context.Context, playerName string) (*model.PlayerProgress, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("LOWER(player_name) = LOWER(?)", playerName).Limit(1)
	})
}

func (r *Progress) GetProgressesByUserID(ctx context.Context, userID string) ([]*model.PlayerProgress, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("user_id = ?", userID).Order("created_at ASC")
	})
}

// AddToList appends id to list unless it is already there and returns the
// updated row. The check and the append happen in one statement.
func (r *Progress) AddToList(ctx context.Context, progressID string, list ProgressList, id string) (*model.PlayerProgress, error) {
	return r.update(ctx, progressID, func(q *bun.UpdateQuery) *bun.UpdateQuery {
		return q.Set("? = CASE WHEN ? = ANY(?) THEN ? ELSE array_append(?, ?) END",
			bun.Ident(list), id, bun.Ident(list), bun.Ident(list), bun.Ident(list), id)
	})
}

// RemoveFromList removes every occurrence of id from list and returns the updated row.
func (r *Progress) RemoveFromList(ctx context.Context, progressID string, list ProgressList, id string) (*model.PlayerProgress, error) {
	return r.update(ctx, progressID, func(q *bun.UpdateQuery) *bun.UpdateQuery {
		return q.Set("? = array_remove(?, ?)", bun.Ident(list), bun.Ident(list), id)
	})
}

func (r *Progress) IncrementDeaths(ctx context.Context, progressID string) (*model.PlayerProgress, error) {
	return r.update(ctx, progressID, func(q *bun.UpdateQuery) *bun.UpdateQuery {
		return q.Set("total_deaths = total_deaths + 1")
	})
}

func (r *Progress) DeleteProgress(ctx context.Context, id string) error {
	res, err := r.db.NewDelete().Model((*model.PlayerProgress)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return pgerr.ErrNotFound
	}
	return nil
}

func (r *Progress) update(ctx context.Context, progressID string, fn func(q *bun.UpdateQuery) *bun.UpdateQuery) (*model.PlayerProgress, error) {
	var p model.PlayerProgress
	err := fn(r.db.NewUpdate().Model(&p)).
		Set("updated_at = current_timestamp").
		Where("id = ?", progressID).
		Returning("*").
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pgerr.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return &p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == "23505"
}
