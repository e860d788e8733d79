package model

import "github.com/uptrace/bun"

type DropEntry struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

type Boss struct {
	bun.BaseModel `bun:"bosses,alias:b"`

	ID           string      `bun:",pk" json:"id"`
	Name         string      `bun:",notnull" json:"name"`
	Image        string      `json:"image"`
	Description  string      `json:"description"`
	Region       string      `json:"region"`
	Location     string      `json:"location"`
	Drops        []DropEntry `bun:",type:jsonb" json:"drops"`
	HealthPoints string      `json:"healthPoints"`
}
