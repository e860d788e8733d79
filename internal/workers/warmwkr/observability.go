package warmwkr

import (
	"time"

	"eldenlens.dev/backend/internal/pkg/observability"
)

func observeWarmDuration(task string, f func() error) error {
	start := time.Now()
	defer func() {
		observability.WorkerWarmDuration.WithLabelValues(task).Set(time.Since(start).Seconds())
	}()
	return f()
}
