// Package gamedata decodes the game-data CSV exports into reference models.
//
// Every decoder skips the header row and drops rows that are too short to
// hold the columns it needs. Rows are never rejected for bad cell values:
// numbers that do not parse become zero (or a documented default).
package gamedata

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"eldenlens.dev/backend/internal/model"
)

const (
	weaponColumns    = 10
	bossStatsColumns = 20
	bossColumns      = 5

	defaultScalingGrade = "None"
	defaultBossTier     = 1
	unknownHealth       = "Unknown"
)

// Report counts what a decoder did with the rows it saw.
type Report struct {
	Decoded int
	Skipped int
}

// rows reads every record after the header and hands the ones with at least
// minColumns cells to fn.
func rows(r io.Reader, minColumns int, fn func(record []string)) (Report, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	var report Report
	header := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return report, nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				log.Warn().Err(err).Str("evt.name", "gamedata.decode").Msg("skipping malformed csv row")
				report.Skipped++
				continue
			}
			return report, errors.Wrap(err, "gamedata: read csv")
		}
		if header {
			header = false
			continue
		}
		if len(record) < minColumns || blank(record) {
			report.Skipped++
			continue
		}
		fn(record)
		report.Decoded++
	}
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cell(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// DecodeWeapons reads the weapons export:
// id, name, image, description, attack, defence, scalesWith, requiredAttributes, category, weight.
func DecodeWeapons(r io.Reader, slugs *SlugContext) ([]*model.Weapon, Report, error) {
	var weapons []*model.Weapon
	report, err := rows(r, weaponColumns, func(record []string) {
		name := cell(record, 1)
		weapons = append(weapons, &model.Weapon{
			ID:                 slugs.Slug(name),
			Name:               name,
			Image:              cell(record, 2),
			Description:        cell(record, 3),
			Attack:             attackEntries(cell(record, 4)),
			Defence:            attackEntries(cell(record, 5)),
			ScalesWith:         scalingEntries(cell(record, 6)),
			RequiredAttributes: requirementEntries(cell(record, 7)),
			Category:           cell(record, 8),
			Weight:             parseFloat(cell(record, 9)),
		})
	})
	return weapons, report, err
}

// DecodeBossStats reads the boss combat stats export:
// id, name, image, bossName, description, hp, five resistances, six immunities,
// weakness, tier, averageDamage.
func DecodeBossStats(r io.Reader, slugs *SlugContext) ([]*model.BossStats, Report, error) {
	var stats []*model.BossStats
	report, err := rows(r, bossStatsColumns, func(record []string) {
		name := cell(record, 1)
		stats = append(stats, &model.BossStats{
			ID:               slugs.Slug(name),
			Name:             name,
			Image:            cell(record, 2),
			BossName:         cell(record, 3),
			Description:      cell(record, 4),
			HealthPoints:     parseInt(cell(record, 5), 0),
			PhysicalResist:   parseFloat(cell(record, 6)),
			MagicResist:      parseFloat(cell(record, 7)),
			FireResist:       parseFloat(cell(record, 8)),
			LightningResist:  parseFloat(cell(record, 9)),
			HolyResist:       parseFloat(cell(record, 10)),
			BleedImmune:      parseBool(cell(record, 11)),
			PoisonImmune:     parseBool(cell(record, 12)),
			FrostImmune:      parseBool(cell(record, 13)),
			ScarletRotImmune: parseBool(cell(record, 14)),
			MadnessImmune:    parseBool(cell(record, 15)),
			SleepImmune:      parseBool(cell(record, 16)),
			Weakness:         cell(record, 17),
			Tier:             parseInt(cell(record, 18), defaultBossTier),
			AverageDamage:    parseInt(cell(record, 19), 0),
		})
	})
	return stats, report, err
}

// DecodeBosses reads the bosses export:
// id, name, image, region, description, location, drops, healthPoints.
// The last three columns are optional.
func DecodeBosses(r io.Reader, slugs *SlugContext) ([]*model.Boss, Report, error) {
	var bosses []*model.Boss
	report, err := rows(r, bossColumns, func(record []string) {
		name := cell(record, 1)
		health := cell(record, 7)
		if health == "" {
			health = unknownHealth
		}
		bosses = append(bosses, &model.Boss{
			ID:           slugs.Slug(name),
			Name:         name,
			Image:        cell(record, 2),
			Region:       cell(record, 3),
			Description:  cell(record, 4),
			Location:     cell(record, 5),
			Drops:        dropEntries(cell(record, 6)),
			HealthPoints: health,
		})
	})
	return bosses, report, err
}

func attackEntries(column string) []model.AttackEntry {
	entries := parseList(column)
	out := make([]model.AttackEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, model.AttackEntry{Name: e.Name, Amount: parseFloat(e.Amount)})
	}
	return out
}

func scalingEntries(column string) []model.ScalingEntry {
	entries := parseList(column)
	out := make([]model.ScalingEntry, 0, len(entries))
	for _, e := range entries {
		grade := e.Scaling
		if grade == "" {
			grade = defaultScalingGrade
		}
		out = append(out, model.ScalingEntry{Name: e.Name, Grade: grade})
	}
	return out
}

func requirementEntries(column string) []model.RequirementEntry {
	entries := parseList(column)
	out := make([]model.RequirementEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, model.RequirementEntry{Name: e.Name, Amount: parseInt(e.Amount, 0)})
	}
	return out
}

func dropEntries(column string) []model.DropEntry {
	entries := parseList(column)
	out := make([]model.DropEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, model.DropEntry{Name: e.Name, Amount: e.Amount})
	}
	return out
}
