package model

// EffectivenessResult is the score of one weapon against one boss. It is
// computed per request and never cached.
type EffectivenessResult struct {
	WeaponID   string  `json:"weaponId"`
	WeaponName string  `json:"weaponName"`
	BossID     string  `json:"bossId,omitempty"`
	BossName   string  `json:"bossName,omitempty"`
	Score      float64 `json:"score"`
	Reasoning  string  `json:"reasoning"`
}

// WeaponRecommendation is an EffectivenessResult annotated for a player.
type WeaponRecommendation struct {
	EffectivenessResult
	Category     string `json:"category"`
	AlreadyOwned bool   `json:"alreadyOwned"`
}

type MatchupResult struct {
	BossName           string                 `json:"bossName"`
	WeaponName         string                 `json:"weaponName"`
	PlayerLevel        int                    `json:"playerLevel"`
	WinProbability     float64                `json:"winProbability"`
	BossTier           int                    `json:"bossTier"`
	BossHealth         int                    `json:"bossHealth"`
	BossWeakness       string                 `json:"bossWeakness"`
	Effectiveness      EffectivenessResult    `json:"effectiveness"`
	RecommendedWeapons []*EffectivenessResult `json:"recommendedWeapons"`
}

// BuildAnalysis estimates how a weapon performs in the hands of a build.
type BuildAnalysis struct {
	WeaponID          string   `json:"weaponId"`
	WeaponName        string   `json:"weaponName"`
	Category          string   `json:"category"`
	MeetsRequirements bool     `json:"meetsRequirements"`
	MissingStats      []string `json:"missingStats"`
	PhysicalDamage    float64  `json:"physicalDamage"`
	MagicDamage       float64  `json:"magicDamage"`
	FireDamage        float64  `json:"fireDamage"`
	LightningDamage   float64  `json:"lightningDamage"`
	HolyDamage        float64  `json:"holyDamage"`
	TotalDamage       float64  `json:"totalDamage"`
	ScalingBonus      float64  `json:"scalingBonus"`
	Score             float64  `json:"score"`
	Recommendation    string   `json:"recommendation"`
}

type DetailedProgress struct {
	*PlayerProgress
	TotalBossesDefeated        int       `json:"totalBossesDefeated"`
	TotalWeaponsCollected      int       `json:"totalWeaponsCollected"`
	TotalLocationsVisited      int       `json:"totalLocationsVisited"`
	DefeatedBosses             []*Boss   `json:"defeatedBosses"`
	CollectedWeapons           []*Weapon `json:"collectedWeapons"`
	BossCompletionPercentage   float64   `json:"bossCompletionPercentage"`
	WeaponCompletionPercentage float64   `json:"weaponCompletionPercentage"`
}

type BossDeathStat struct {
	BossID   string `json:"bossId"`
	BossName string `json:"bossName"`
	Deaths   int    `json:"deaths"`
}

type DeathStatistics struct {
	TotalDeaths       int              `json:"totalDeaths"`
	DeathsByBoss      []*BossDeathStat `json:"deathsByBoss"`
	MostDifficultBoss string           `json:"mostDifficultBoss,omitempty"`
}

type FightHistory struct {
	ProgressID    string          `json:"progressId"`
	BossID        string          `json:"bossId"`
	TotalAttempts int             `json:"totalAttempts"`
	TotalSessions int             `json:"totalSessions"`
	Victories     int             `json:"victories"`
	Sessions      []*FightSession `json:"sessions"`
	Attempts      []*FightAttempt `json:"attempts"`
}

type PlayerRecommendations struct {
	BossName          string                  `json:"bossName"`
	PlayerName        string                  `json:"playerName"`
	TotalWeaponsOwned int                     `json:"totalWeaponsOwned"`
	Recommendations   []*WeaponRecommendation `json:"recommendations"`
}
