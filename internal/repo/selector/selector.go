package selector

import (
	"context"
	"database/sql"
	"errors"
	"reflect"

	"github.com/uptrace/bun"

	"eldenlens.dev/backend/internal/pkg/pgerr"
)

// S runs typed selects against the table of T.
type S[T any] struct {
	DB *bun.DB

	notFound *pgerr.APIError
}

func New[T any](db *bun.DB) S[T] {
	table := db.Table(reflect.TypeOf((*T)(nil)).Elem())
	return S[T]{
		DB:       db,
		notFound: pgerr.ErrNotFound.Msg("no %s found with given parameters", table.Name),
	}
}

// SelectOne returns the first matching row, or a NOT_FOUND error naming the table.
func (r S[T]) SelectOne(ctx context.Context, fn func(q *bun.SelectQuery) *bun.SelectQuery) (*T, error) {
	var model T
	err := fn(r.DB.NewSelect().Model(&model)).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.notFound
	} else if err != nil {
		return nil, err
	}

	return &model, nil
}

// SelectMany returns every matching row. No match is an empty, non-nil slice.
func (r S[T]) SelectMany(ctx context.Context, fn func(q *bun.SelectQuery) *bun.SelectQuery) ([]*T, error) {
	model := []*T{}
	err := fn(r.DB.NewSelect().Model(&model)).Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	return model, nil
}
