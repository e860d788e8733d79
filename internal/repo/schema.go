package repo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"go.uber.org/fx"

	"eldenlens.dev/backend/internal/model"
)

type Schema struct {
	db *bun.DB
}

func NewSchema(db *bun.DB) *Schema {
	return &Schema{db: db}
}

var tables = []any{
	(*model.Weapon)(nil),
	(*model.BossStats)(nil),
	(*model.Boss)(nil),
	(*model.PlayerProgress)(nil),
	(*model.FightSession)(nil),
	(*model.FightAttempt)(nil),
}

var indexes = []struct {
	model   any
	name    string
	columns []string
}{
	{(*model.BossStats)(nil), "idx_boss_stats_boss_name", []string{"LOWER(boss_name)"}},
	{(*model.PlayerProgress)(nil), "idx_player_progress_user_id", []string{"user_id"}},
	{(*model.FightSession)(nil), "idx_fight_sessions_progress_boss", []string{"progress_id", "boss_id"}},
	{(*model.FightAttempt)(nil), "idx_fight_attempts_session_id", []string{"session_id"}},
	{(*model.FightAttempt)(nil), "idx_fight_attempts_progress_boss", []string{"progress_id", "boss_id"}},
}

// Ensure creates every table and index that does not exist yet.
func (r *Schema) Ensure(ctx context.Context) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, m := range tables {
			if _, err := tx.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
				return errors.Wrapf(err, "create table for %T", m)
			}
		}
		for _, idx := range indexes {
			q := tx.NewCreateIndex().Model(idx.model).Index(idx.name).IfNotExists()
			for _, c := range idx.columns {
				q = q.ColumnExpr(c)
			}
			if _, err := q.Exec(ctx); err != nil {
				return errors.Wrapf(err, "create index %s", idx.name)
			}
		}
		log.Info().Str("evt.name", "schema.ensure").Int("tables", len(tables)).Int("indexes", len(indexes)).Msg("schema ensured")
		return nil
	})
}

// InTx runs fn in one transaction.
func (r *Schema) InTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	return r.db.RunInTx(ctx, nil, fn)
}

// EnsureOnStart creates missing tables before the application starts serving.
func EnsureOnStart(lc fx.Lifecycle, schema *Schema) {
	lc.Append(fx.Hook{
		OnStart: schema.Ensure,
	})
}
