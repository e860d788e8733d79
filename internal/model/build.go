package model

import "strings"

// PlayerBuild is a character's level and attribute spread.
type PlayerBuild struct {
	Level        int `json:"level" query:"level" validate:"gte=1,lte=713"`
	Vigor        int `json:"vigor" query:"vigor" validate:"gte=0,lte=99"`
	Mind         int `json:"mind" query:"mind" validate:"gte=0,lte=99"`
	Endurance    int `json:"endurance" query:"endurance" validate:"gte=0,lte=99"`
	Strength     int `json:"strength" query:"strength" validate:"gte=0,lte=99"`
	Dexterity    int `json:"dexterity" query:"dexterity" validate:"gte=0,lte=99"`
	Intelligence int `json:"intelligence" query:"intelligence" validate:"gte=0,lte=99"`
	Faith        int `json:"faith" query:"faith" validate:"gte=0,lte=99"`
	Arcane       int `json:"arcane" query:"arcane" validate:"gte=0,lte=99"`
}

// Attribute returns the build's value for an attribute name such as "Str" or "faith".
func (b *PlayerBuild) Attribute(name string) int {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "str", "strength":
		return b.Strength
	case "dex", "dexterity":
		return b.Dexterity
	case "int", "intelligence":
		return b.Intelligence
	case "fai", "faith":
		return b.Faith
	case "arc", "arcane":
		return b.Arcane
	}
	return 0
}
