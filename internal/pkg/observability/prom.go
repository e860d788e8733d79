package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "eldenlens"
)

var (
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "cache", "requests_total"),
		Help: "Cache lookups partitioned by named cache and result (hit, miss)",
	}, []string{"cache", "result"})
	CacheInvalidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "cache", "invalidations_total"),
		Help: "Cache keys removed by write paths, partitioned by entity kind",
	}, []string{"entity"})
	RankingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "analysis", "ranking_duration_seconds"),
		Help:    "Duration of recommendation rankings in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	}, []string{"direction"})
	RankingSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "analysis", "skipped_entities_total"),
		Help: "Entities excluded from rankings because they were malformed or failed to load",
	}, []string{"direction"})
	WorkerWarmDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "worker", "warm_duration_seconds"),
		Help: "Duration of last cache warm task in seconds",
	}, []string{"task"})
)
