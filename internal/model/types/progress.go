package types

import "gopkg.in/guregu/null.v3"

type CreateProgressRequest struct {
	PlayerName    string      `json:"playerName" validate:"required,nonblank,max=64"`
	PSNID         null.String `json:"psnId" swaggertype:"string"`
	StartingLevel int         `json:"startingLevel" validate:"omitempty,gte=1,lte=713"`
}

type VisitLocationRequest struct {
	LocationID string `json:"locationId" validate:"required"`
}

type DefeatBossRequest struct {
	BossID string `json:"bossId" validate:"required"`
}

type ObtainWeaponRequest struct {
	WeaponID string `json:"weaponId" validate:"required"`
}
