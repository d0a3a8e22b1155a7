package storage

import (
	"context"
	"time"

	"github.com/2beens/workouttracker/internal/telemetry/metrics"
)

var _ Store = (*InstrumentedStore)(nil)

// InstrumentedStore records call durations and failures of the wrapped store.
// A missing key is not counted as an error.
type InstrumentedStore struct {
	store          Store
	metricsManager *metrics.Manager
}

func NewInstrumentedStore(store Store, metricsManager *metrics.Manager) *InstrumentedStore {
	return &InstrumentedStore{
		store:          store,
		metricsManager: metricsManager,
	}
}

func (is *InstrumentedStore) observe(op string, start time.Time, err error) {
	is.metricsManager.HistogramStoreDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil && !IsNotFound(err) {
		is.metricsManager.CounterStoreErrors.WithLabelValues(op).Inc()
	}
}

func (is *InstrumentedStore) Get(ctx context.Context, key string) (string, error) {
	start := time.Now()
	val, err := is.store.Get(ctx, key)
	is.observe("get", start, err)
	return val, err
}

func (is *InstrumentedStore) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	err := is.store.Set(ctx, key, value)
	is.observe("set", start, err)
	return err
}

func (is *InstrumentedStore) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := is.store.Delete(ctx, key)
	is.observe("delete", start, err)
	return err
}

func (is *InstrumentedStore) Close() error {
	return is.store.Close()
}
