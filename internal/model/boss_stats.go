package model

import "github.com/uptrace/bun"

// BossStats is the combat profile of a boss used for matchup scoring.
type BossStats struct {
	bun.BaseModel `bun:"boss_stats,alias:bs"`

	ID               string  `bun:",pk" json:"id"`
	Name             string  `bun:",notnull" json:"name"`
	Image            string  `json:"image"`
	Description      string  `json:"description"`
	BossName         string  `json:"bossName"`
	HealthPoints     int     `json:"healthPoints"`
	PhysicalResist   float64 `json:"physicalResist"`
	MagicResist      float64 `json:"magicResist"`
	FireResist       float64 `json:"fireResist"`
	LightningResist  float64 `json:"lightningResist"`
	HolyResist       float64 `json:"holyResist"`
	BleedImmune      bool    `json:"bleedImmune"`
	PoisonImmune     bool    `json:"poisonImmune"`
	FrostImmune      bool    `json:"frostImmune"`
	ScarletRotImmune bool    `json:"scarletRotImmune"`
	MadnessImmune    bool    `json:"madnessImmune"`
	SleepImmune      bool    `json:"sleepImmune"`
	Weakness         string  `json:"weakness"`
	Tier             int     `json:"tier"`
	AverageDamage    int     `json:"averageDamage"`
}

func (b *BossStats) AverageResistance() float64 {
	return (b.PhysicalResist + b.MagicResist + b.FireResist + b.LightningResist + b.HolyResist) / 5
}
