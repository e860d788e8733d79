package model

import (
	"strings"

	"github.com/uptrace/bun"
)

// AttackEntry is one damage (or damage negation) line of a weapon, e.g. {"Phy", 115}.
type AttackEntry struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// ScalingEntry is an attribute scaling grade, e.g. {"Dex", "B"}.
type ScalingEntry struct {
	Name  string `json:"name"`
	Grade string `json:"scaling"`
}

// RequirementEntry is a minimum attribute requirement, e.g. {"Str", 11}.
type RequirementEntry struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

type Weapon struct {
	bun.BaseModel `bun:"weapons,alias:w"`

	ID                 string             `bun:",pk" json:"id"`
	Name               string             `bun:",notnull" json:"name"`
	Image              string             `json:"image"`
	Description        string             `json:"description"`
	Category           string             `json:"category"`
	Weight             float64            `json:"weight"`
	Attack             []AttackEntry      `bun:",type:jsonb" json:"attack"`
	Defence            []AttackEntry      `bun:",type:jsonb" json:"defence"`
	ScalesWith         []ScalingEntry     `bun:",type:jsonb" json:"scalesWith"`
	RequiredAttributes []RequirementEntry `bun:",type:jsonb" json:"requiredAttributes"`
}

// AttackAmount returns the amount of the first attack entry whose name equals
// one of names, case-insensitively, and whether one was found.
func (w *Weapon) AttackAmount(names ...string) (float64, bool) {
	for _, a := range w.Attack {
		for _, n := range names {
			if strings.EqualFold(strings.TrimSpace(a.Name), n) {
				return a.Amount, true
			}
		}
	}
	return 0, false
}

// Requirement returns the required amount of attribute, or 0 when unspecified.
func (w *Weapon) Requirement(attribute string) int {
	for _, r := range w.RequiredAttributes {
		if strings.EqualFold(strings.TrimSpace(r.Name), attribute) {
			return r.Amount
		}
	}
	return 0
}

// ScalingGrade returns the scaling grade for attribute, or "-" when the weapon
// does not scale with it.
func (w *Weapon) ScalingGrade(attribute string) string {
	for _, s := range w.ScalesWith {
		if strings.EqualFold(strings.TrimSpace(s.Name), attribute) {
			return strings.TrimSpace(s.Grade)
		}
	}
	return "-"
}
