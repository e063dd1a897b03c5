package metrics

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
	"github.com/pkg/errors"
)

var (
	mu      sync.RWMutex
	storage tstorage.Storage
)

// InitMetrics opens the time-series gauge store under workdir/metrics.
func InitMetrics(workdir string) error {
	mu.Lock()
	defer mu.Unlock()
	s, err := tstorage.NewStorage(
		tstorage.WithDataPath(filepath.Join(workdir, "metrics")),
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithRetention(7*24*time.Hour),
	)
	if err != nil {
		return errors.Wrap(err, "open metrics storage")
	}
	storage = s
	return nil
}

// SetGauge records the current value of a named gauge.
func SetGauge(name string, value int64) {
	mu.RLock()
	defer mu.RUnlock()
	if storage == nil {
		return
	}
	_ = storage.InsertRows([]tstorage.Row{
		{
			Metric:    name,
			DataPoint: tstorage.DataPoint{Timestamp: time.Now().Unix(), Value: float64(value)},
		},
	})
}

// LatestGauge returns the most recent recorded value of a gauge within the
// past hour, or 0 when nothing has been recorded.
func LatestGauge(name string) float64 {
	mu.RLock()
	defer mu.RUnlock()
	if storage == nil {
		return 0
	}
	end := time.Now().Unix()
	points, err := storage.Select(name, nil, end-3600, end+1)
	if err != nil || len(points) == 0 {
		return 0
	}
	return points[len(points)-1].Value
}

// GaugeSeries returns the recorded points of a gauge between start and end.
func GaugeSeries(name string, start, end int64) ([]*tstorage.DataPoint, error) {
	mu.RLock()
	defer mu.RUnlock()
	if storage == nil {
		return nil, errors.New("metrics storage not initialized")
	}
	return storage.Select(name, nil, start, end)
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return nil
	}
	err := storage.Close()
	storage = nil
	return err
}
