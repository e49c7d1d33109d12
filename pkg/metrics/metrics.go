package metrics

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
)

// Lightweight embedded metrics store. Gauges and counters are written as
// time-series points under <workdir>/metrics.

var (
	storage  tstorage.Storage
	mu       sync.Mutex
	counters = make(map[string]int64)
)

func InitMetrics(workdir string) error {
	s, err := tstorage.NewStorage(
		tstorage.WithDataPath(filepath.Join(workdir, "metrics")),
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithRetention(7*24*time.Hour),
	)
	if err != nil {
		return err
	}
	mu.Lock()
	storage = s
	mu.Unlock()
	return nil
}

// SetGauge records the current value of a gauge metric
func SetGauge(name string, value int64) {
	insert(name, float64(value))
}

// IncrCounter increments a monotonic counter and records its new value
func IncrCounter(name string, delta int64) {
	mu.Lock()
	counters[name] += delta
	v := counters[name]
	mu.Unlock()
	insert(name, float64(v))
}

func insert(name string, value float64) {
	mu.Lock()
	s := storage
	mu.Unlock()
	if s == nil {
		return
	}
	_ = s.InsertRows([]tstorage.Row{
		{
			Metric:    name,
			DataPoint: tstorage.DataPoint{Timestamp: time.Now().Unix(), Value: value},
		},
	})
}

// Select returns datapoints of a metric within [start, end]
func Select(name string, start, end int64) ([]*tstorage.DataPoint, error) {
	mu.Lock()
	s := storage
	mu.Unlock()
	if s == nil {
		return nil, nil
	}
	return s.Select(name, nil, start, end)
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
