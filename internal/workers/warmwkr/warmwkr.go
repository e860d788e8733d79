package warmwkr

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"eldenlens.dev/backend/internal/app/appconfig"
	"eldenlens.dev/backend/internal/app/appcontext"
	"eldenlens.dev/backend/internal/service"
)

type WorkerDeps struct {
	fx.In

	WeaponService    *service.Weapon
	BossService      *service.Boss
	BossStatsService *service.BossStats
}

type task struct {
	name string
	run  func(ctx context.Context) error
}

type Worker struct {
	// count counts batches worker has completed so far
	count atomic.Int64

	// sep describes the separation time in-between different tasks
	sep time.Duration

	// interval describes the interval in-between different batches of tasks
	interval time.Duration

	tasks []task
}

func New(sep, interval time.Duration, deps WorkerDeps) *Worker {
	return &Worker{
		sep:      sep,
		interval: interval,
		tasks: []task{
			{name: "weapons", run: func(ctx context.Context) error {
				_, err := deps.WeaponService.GetWeapons(ctx)
				return err
			}},
			{name: "bosses", run: func(ctx context.Context) error {
				_, err := deps.BossService.GetBosses(ctx)
				return err
			}},
			{name: "bossStats", run: func(ctx context.Context) error {
				_, err := deps.BossStatsService.GetAllBossStats(ctx)
				return err
			}},
			{name: "bossStatsByName", run: func(ctx context.Context) error {
				all, err := deps.BossStatsService.GetAllBossStats(ctx)
				if err != nil {
					return err
				}
				for _, stats := range all {
					if _, err := deps.BossStatsService.GetBossStatsByName(ctx, stats.BossName); err != nil {
						return err
					}
				}
				return nil
			}},
		},
	}
}

// Start runs the worker alongside the server. CLI invocations never start it.
func Start(conf *appconfig.Config, deps WorkerDeps, lc fx.Lifecycle) {
	if !conf.WorkerEnabled || conf.AppContext.Env != appcontext.EnvServer {
		log.Info().Str("evt.name", "worker.warm.disabled").Msg("cache warm worker disabled")
		return
	}

	w := New(conf.WorkerSeparation, conf.WorkerInterval, deps)
	var cancel context.CancelFunc
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			cancel = w.do()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel != nil {
				cancel()
			}
			return nil
		},
	})
}

func (w *Worker) do() context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		for {
			w.RunBatch(ctx)
			if !sleep(ctx, w.interval) {
				return
			}
		}
	}()

	return cancel
}

// RunBatch runs every warm task once. A failing task is logged and the batch
// moves on to the next one.
func (w *Worker) RunBatch(ctx context.Context) {
	log.Info().
		Int64("count", w.count.Load()).
		Msg("worker batch started")

	for i, t := range w.tasks {
		if i > 0 && !sleep(ctx, w.sep) {
			return
		}
		log.Debug().Str("task", t.name).Msg("worker warming")
		if err := observeWarmDuration(t.name, func() error { return t.run(ctx) }); err != nil {
			log.Error().Err(err).Str("task", t.name).Msg("worker failed to warm cache")
			continue
		}
		log.Debug().Str("task", t.name).Msg("worker finished")
	}

	log.Info().Int64("count", w.count.Load()).Msg("worker batch finished")
	w.count.Add(1)
}

func (w *Worker) Count() int {
	return int(w.count.Load())
}

// sleep waits for d and reports whether ctx is still alive.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
