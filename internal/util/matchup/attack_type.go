package matchup

import "strings"

type AttackType string

const (
	Slash    AttackType = "Slash"
	Strike   AttackType = "Strike"
	Pierce   AttackType = "Pierce"
	Standard AttackType = "Standard"
)

var categoryAttackTypes = map[string]AttackType{
	"dagger":                Pierce,
	"straight sword":        Slash,
	"greatsword":            Slash,
	"colossal sword":        Slash,
	"katana":                Slash,
	"curved sword":          Slash,
	"curved greatsword":     Slash,
	"thrusting sword":       Pierce,
	"heavy thrusting sword": Pierce,
	"axe":                   Slash,
	"greataxe":              Slash,
	"hammer":                Strike,
	"great hammer":          Strike,
	"flail":                 Strike,
	"spear":                 Pierce,
	"great spear":           Pierce,
	"halberd":               Slash,
	"reaper":                Slash,
	"whip":                  Strike,
	"fist":                  Strike,
	"claw":                  Slash,
}

// ClassifyAttackType maps a weapon category to its attack type. Unknown
// categories are Standard.
func ClassifyAttackType(category string) AttackType {
	if t, ok := categoryAttackTypes[strings.ToLower(strings.TrimSpace(category))]; ok {
		return t
	}
	return Standard
}

// Keyword is the weakness-text keyword matching t. Standard has none.
func (t AttackType) Keyword() string {
	if t == Standard {
		return ""
	}
	return strings.ToLower(string(t))
}
