package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

const (
	// TotalBosses and TotalWeapons are the denominators of completion percentages.
	TotalBosses  = 106
	TotalWeapons = 306
)

// PlayerProgress is a user's play-through record. It is the only reference to
// game data that users can write to, so every write path must invalidate the
// cache keys returned by cache.ProgressKeys.
type PlayerProgress struct {
	bun.BaseModel `bun:"player_progress,alias:pp"`

	ID                  string      `bun:",pk" json:"id"`
	UserID              string      `bun:",notnull" json:"userId"`
	PlayerName          string      `bun:",notnull,unique" json:"playerName"`
	PSNID               null.String `bun:"psn_id" json:"psnId" swaggertype:"string"`
	CurrentLevel        int         `json:"currentLevel"`
	CurrentRunes        int64       `json:"currentRunes"`
	VisitedLocationIDs  []string    `bun:"visited_location_ids,array" json:"visitedLocationIds"`
	DefeatedBossIDs     []string    `bun:"defeated_boss_ids,array" json:"defeatedBossIds"`
	ObtainedWeaponIDs   []string    `bun:"obtained_weapon_ids,array" json:"obtainedWeaponIds"`
	DiscoveredGraceIDs  []string    `bun:"discovered_grace_ids,array" json:"discoveredGraceIds"`
	UnlockedRegions     []string    `bun:",array" json:"unlockedRegions"`
	TotalDeaths         int         `json:"totalDeaths"`
	PlaytimeHours       float64     `json:"playtimeHours"`
	GreatRunesCollected int         `json:"greatRunesCollected"`
	CurrentBuildID      null.String `bun:"current_build_id" json:"currentBuildId" swaggertype:"string"`
	CreatedAt           time.Time   `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt           time.Time   `bun:",nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

func (p *PlayerProgress) OwnsWeapon(weaponID string) bool {
	return contains(p.ObtainedWeaponIDs, weaponID)
}

func (p *PlayerProgress) HasDefeated(bossID string) bool {
	return contains(p.DefeatedBossIDs, bossID)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
