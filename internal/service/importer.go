package service

import (
	"context"
	"os"
	"path/filepath"

	"github.com/go-redsync/redsync/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"

	"eldenlens.dev/backend/internal/app/appconfig"
	"eldenlens.dev/backend/internal/model"
	modelcache "eldenlens.dev/backend/internal/model/cache"
	"eldenlens.dev/backend/internal/pkg/pgerr"
	"eldenlens.dev/backend/internal/repo"
	"eldenlens.dev/backend/internal/util/gamedata"
)

const (
	WeaponsFile   = "weapons.csv"
	BossStatsFile = "bossStats.csv"
	BossesFile    = "bosses.csv"

	importLockName = "import#reference"
)

var ErrImportRunning = pgerr.ErrConflict.Msg("another import is already running")

// Dataset is one decoded set of game-data exports.
type Dataset struct {
	Weapons   []*model.Weapon
	BossStats []*model.BossStats
	Bosses    []*model.Boss
	Reports   map[string]gamedata.Report
}

type Importer struct {
	Config        *appconfig.Config
	RedSync       *redsync.Redsync
	SchemaRepo    *repo.Schema
	WeaponRepo    *repo.Weapon
	BossStatsRepo *repo.BossStats
	BossRepo      *repo.Boss
	Caches        *modelcache.Caches
}

func NewImporter(
	conf *appconfig.Config,
	rs *redsync.Redsync,
	schemaRepo *repo.Schema,
	weaponRepo *repo.Weapon,
	bossStatsRepo *repo.BossStats,
	bossRepo *repo.Boss,
	caches *modelcache.Caches,
) *Importer {
	return &Importer{
		Config:        conf,
		RedSync:       rs,
		SchemaRepo:    schemaRepo,
		WeaponRepo:    weaponRepo,
		BossStatsRepo: bossStatsRepo,
		BossRepo:      bossRepo,
		Caches:        caches,
	}
}

// Import loads the exports found in dir into the database in one transaction
// and then drops every cached piece of reference data. Only one import runs
// at a time across all instances.
func (s *Importer) Import(ctx context.Context, dir string) (*Dataset, error) {
	dataset, err := ReadDataset(dir)
	if err != nil {
		return nil, err
	}

	mutex := s.RedSync.NewMutex(importLockName,
		redsync.WithExpiry(s.Config.ImportLockExpiry),
		redsync.WithTries(1),
	)
	if err := mutex.LockContext(ctx); err != nil {
		log.Warn().Err(err).Str("evt.name", "import.lock").Msg("failed to acquire import lock")
		return nil, ErrImportRunning
	}
	defer func() {
		if _, err := mutex.UnlockContext(ctx); err != nil {
			log.Warn().Err(err).Str("evt.name", "import.lock").Msg("failed to release import lock")
		}
	}()

	if err := s.SchemaRepo.Ensure(ctx); err != nil {
		return nil, err
	}
	err = s.SchemaRepo.InTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := s.WeaponRepo.UpsertWeapons(ctx, tx, dataset.Weapons); err != nil {
			return errors.Wrap(err, "upsert weapons")
		}
		if err := s.BossStatsRepo.UpsertBossStats(ctx, tx, dataset.BossStats); err != nil {
			return errors.Wrap(err, "upsert boss stats")
		}
		if err := s.BossRepo.UpsertBosses(ctx, tx, dataset.Bosses); err != nil {
			return errors.Wrap(err, "upsert bosses")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Caches.FlushReference(ctx)
	log.Info().
		Str("evt.name", "import.done").
		Int("weapons", len(dataset.Weapons)).
		Int("bossStats", len(dataset.BossStats)).
		Int("bosses", len(dataset.Bosses)).
		Msg("reference data imported")
	return dataset, nil
}

// ReadDataset decodes the three exports in dir. Every export gets its own id
// namespace, so a boss and its combat profile may share an id.
func ReadDataset(dir string) (*Dataset, error) {
	d := &Dataset{Reports: make(map[string]gamedata.Report, 3)}

	err := decodeFile(dir, WeaponsFile, d.Reports, func(f *os.File) (gamedata.Report, error) {
		var (
			report gamedata.Report
			err    error
		)
		d.Weapons, report, err = gamedata.DecodeWeapons(f, gamedata.NewSlugContext())
		return report, err
	})
	if err != nil {
		return nil, err
	}
	err = decodeFile(dir, BossStatsFile, d.Reports, func(f *os.File) (gamedata.Report, error) {
		var (
			report gamedata.Report
			err    error
		)
		d.BossStats, report, err = gamedata.DecodeBossStats(f, gamedata.NewSlugContext())
		return report, err
	})
	if err != nil {
		return nil, err
	}
	err = decodeFile(dir, BossesFile, d.Reports, func(f *os.File) (gamedata.Report, error) {
		var (
			report gamedata.Report
			err    error
		)
		d.Bosses, report, err = gamedata.DecodeBosses(f, gamedata.NewSlugContext())
		return report, err
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func decodeFile(dir, name string, reports map[string]gamedata.Report, decode func(f *os.File) (gamedata.Report, error)) error {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return errors.Wrapf(err, "open %s", name)
	}
	defer f.Close()

	report, err := decode(f)
	if err != nil {
		return errors.Wrapf(err, "decode %s", name)
	}
	reports[name] = report
	log.Info().
		Str("evt.name", "import.decode").
		Str("file", name).
		Int("decoded", report.Decoded).
		Int("skipped", report.Skipped).
		Msg("decoded game data export")
	return nil
}
