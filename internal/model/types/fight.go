package types

import "gopkg.in/guregu/null.v3"

type StartFightRequest struct {
	ProgressID string `json:"progressId" validate:"required"`
	BossID     string `json:"bossId" validate:"required"`
	BossName   string `json:"bossName"`
}

type RecordAttemptRequest struct {
	ProgressID    string      `json:"progressId" validate:"required"`
	BossID        string      `json:"bossId" validate:"required"`
	BossName      string      `json:"bossName"`
	WeaponID      null.String `json:"weaponId" swaggertype:"string"`
	Victory       bool        `json:"victory"`
	TimeSpentSecs int         `json:"timeSpentSeconds" validate:"gte=0"`
	DamageTaken   null.Int    `json:"damageTaken" validate:"omitempty,gte=0" swaggertype:"integer"`
	PlayerLevel   null.Int    `json:"playerLevel" validate:"omitempty,gte=1,lte=713" swaggertype:"integer"`
	Notes         null.String `json:"notes" validate:"omitempty,max=1000" swaggertype:"string"`
}
