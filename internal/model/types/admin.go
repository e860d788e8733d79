package types

import "gopkg.in/guregu/null.v3"

type PurgeCacheRequest struct {
	Pairs []PurgeCachePair `json:"pairs" validate:"required,min=1,dive"`
}

// PurgeCachePair names a cache and, optionally, one key inside it. Without a
// key the whole cache is purged.
type PurgeCachePair struct {
	Name string      `json:"name" validate:"required"`
	Key  null.String `json:"key" swaggertype:"string"`
}
