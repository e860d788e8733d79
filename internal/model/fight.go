package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// FightSession groups a player's attempts at one boss until victory or until
// the player gives up. At most one session per (progress, boss) is active.
type FightSession struct {
	bun.BaseModel `bun:"fight_sessions,alias:fs"`

	ID                   string      `bun:",pk" json:"id"`
	ProgressID           string      `bun:",notnull" json:"progressId"`
	BossID               string      `bun:",notnull" json:"bossId"`
	BossName             string      `json:"bossName"`
	StartedAt            time.Time   `bun:",nullzero,notnull,default:current_timestamp" json:"startedAt"`
	EndedAt              null.Time   `json:"endedAt" swaggertype:"string"`
	IsActive             bool        `bun:",notnull" json:"isActive"`
	Victory              bool        `bun:",notnull" json:"victory"`
	TotalAttempts        int         `json:"totalAttempts"`
	TotalTimeSpentSecs   int         `bun:"total_time_spent_secs" json:"totalTimeSpentSeconds"`
	WeaponsTriedIDs      []string    `bun:"weapons_tried_ids,array" json:"weaponsTriedIds"`
	Notes                null.String `json:"notes" swaggertype:"string"`
	VictoryWeaponID      null.String `json:"victoryWeaponId" swaggertype:"string"`
	VictoryAttemptNumber null.Int    `json:"victoryAttemptNumber" swaggertype:"integer"`
}

type FightAttempt struct {
	bun.BaseModel `bun:"fight_attempts,alias:fa"`

	ID            string      `bun:",pk" json:"id"`
	SessionID     string      `bun:",notnull" json:"sessionId"`
	ProgressID    string      `bun:",notnull" json:"progressId"`
	BossID        string      `bun:",notnull" json:"bossId"`
	BossName      string      `json:"bossName"`
	AttemptNumber int         `json:"attemptNumber"`
	WeaponID      null.String `json:"weaponId" swaggertype:"string"`
	Victory       bool        `bun:",notnull" json:"victory"`
	TimeSpentSecs int         `bun:"time_spent_secs" json:"timeSpentSeconds"`
	DamageTaken   null.Int    `json:"damageTaken" swaggertype:"integer"`
	PlayerLevel   null.Int    `json:"playerLevel" swaggertype:"integer"`
	Notes         null.String `json:"notes" swaggertype:"string"`
	AttemptedAt   time.Time   `bun:",nullzero,notnull,default:current_timestamp" json:"attemptedAt"`
}
