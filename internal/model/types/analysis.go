package types

import "eldenlens.dev/backend/internal/model"

// MatchupQuery is the build of a matchup calculation, read from the query
// string. Unset attributes fall back to the defaults of DefaultMatchupQuery.
type MatchupQuery struct {
	WeaponName   string `query:"weaponName" validate:"required"`
	PlayerLevel  int    `query:"playerLevel" validate:"gte=1,lte=713"`
	Vigor        int    `query:"vigor" validate:"gte=0,lte=99"`
	Strength     int    `query:"strength" validate:"gte=0,lte=99"`
	Dexterity    int    `query:"dexterity" validate:"gte=0,lte=99"`
	Intelligence int    `query:"intelligence" validate:"gte=0,lte=99"`
	Faith        int    `query:"faith" validate:"gte=0,lte=99"`
}

func DefaultMatchupQuery() MatchupQuery {
	return MatchupQuery{
		PlayerLevel:  150,
		Vigor:        40,
		Strength:     50,
		Dexterity:    50,
		Intelligence: 10,
		Faith:        10,
	}
}

func (q MatchupQuery) Build() *model.PlayerBuild {
	return &model.PlayerBuild{
		Level:        q.PlayerLevel,
		Vigor:        q.Vigor,
		Mind:         20,
		Endurance:    30,
		Strength:     q.Strength,
		Dexterity:    q.Dexterity,
		Intelligence: q.Intelligence,
		Faith:        q.Faith,
		Arcane:       10,
	}
}

type CompareWeaponsRequest struct {
	WeaponIDs []string          `json:"weaponIds" validate:"required,min=1,max=50,dive,required"`
	Build     model.PlayerBuild `json:"build"`
}

type RankWeaponsRequest struct {
	WeaponIDs []string `json:"weaponIds" validate:"required,min=1,max=500,dive,required"`
}

type UsableWeaponsQuery struct {
	Strength     int `query:"str" validate:"gte=0,lte=99"`
	Dexterity    int `query:"dex" validate:"gte=0,lte=99"`
	Intelligence int `query:"int" validate:"gte=0,lte=99"`
	Faith        int `query:"fai" validate:"gte=0,lte=99"`
	Arcane       int `query:"arc" validate:"gte=0,lte=99"`
}

type WeightRangeQuery struct {
	Min float64 `query:"min" validate:"gte=0"`
	Max float64 `query:"max" validate:"gtefield=Min"`
}
