package cache

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds the cache counters only, so a textfile export carries no
// process metrics.
var Registry = prometheus.NewRegistry()

var (
	cacheHits = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Name: "league_cache_hits_total",
		Help: "Player stats served from a snapshot",
	})

	cacheMisses = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Name: "league_cache_misses_total",
		Help: "Player stats lookups that found no snapshot",
	})

	cacheFallbacks = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Name: "league_cache_fallbacks_total",
		Help: "Snapshot reads that failed and were recomputed live",
	})

	snapshotsWritten = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Name: "league_cache_snapshots_written_total",
		Help: "Snapshot rows written by rebuilds",
	})
)

// WriteTextfile dumps the cache counters in the node-exporter textfile format.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
