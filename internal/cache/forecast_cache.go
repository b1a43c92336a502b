package cache

import (
	"log"
	"sync"
	"time"

	"github.com/orionasc/enflow/internal/domain"
)

// DayKey canonicalizes a timestamp to its calendar-day cache key.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Store is the durable medium behind a ForecastCache. Implementations
// persist three independent tables sharing the day keyspace. A nil Store
// yields a memory-only cache.
type Store interface {
	// Load returns the full persisted state. Called once at construction.
	Load() (waves map[string][]float64, accuracy map[string]float64, forecasts map[string]domain.DayEnergyForecast, err error)
	SaveWave(key string, values []float64) error
	SaveAccuracy(key string, value float64) error
	SaveForecast(key string, forecast domain.DayEnergyForecast) error
	DeleteForecast(key string) error
	Clear() error
}

// ForecastCache is a day-keyed store of waveforms, accuracy numbers, and
// forecast records. All operations are safe under concurrent access.
type ForecastCache interface {
	Wave(day time.Time) ([]float64, bool)
	SetWave(day time.Time, values []float64)
	Accuracy(day time.Time) (float64, bool)
	SetAccuracy(day time.Time, value float64)
	Forecast(day time.Time) (*domain.DayEnergyForecast, bool)
	// SaveForecast stores the record. A record with empty values and the
	// defaultHeuristic source is treated as absence: any existing entry for
	// that day is removed instead.
	SaveForecast(forecast domain.DayEnergyForecast)
	// RemoveForecast deletes the forecast entry for the day. Prefer this
	// over the SaveForecast sentinel when deletion is the intent.
	RemoveForecast(day time.Time)
	// TrailingAccuracy averages recorded accuracy over the `days` calendar
	// days ending at `end`, skipping days with no recorded value. The second
	// return is false when no value exists in the window.
	TrailingAccuracy(end time.Time, days int) (float64, bool)
	Clear()
	// Reset is an alias of Clear.
	Reset()
}

type forecastCache struct {
	mu        sync.Mutex // single-writer discipline; no mutation interleaves
	store     Store
	waves     map[string][]float64
	accuracy  map[string]float64
	forecasts map[string]domain.DayEnergyForecast
}

// NewForecastCache builds a cache backed by store. A failed initial load
// degrades to a cold in-memory cache; write failures are logged and the
// in-memory value stays authoritative.
func NewForecastCache(store Store) ForecastCache {
	c := &forecastCache{
		store:     store,
		waves:     make(map[string][]float64),
		accuracy:  make(map[string]float64),
		forecasts: make(map[string]domain.DayEnergyForecast),
	}
	if store != nil {
		waves, accuracy, forecasts, err := store.Load()
		if err != nil {
			log.Printf("forecast cache: load failed, starting cold: %v", err)
		} else {
			if waves != nil {
				c.waves = waves
			}
			if accuracy != nil {
				c.accuracy = accuracy
			}
			if forecasts != nil {
				c.forecasts = forecasts
			}
		}
	}
	return c
}

func (c *forecastCache) Wave(day time.Time) ([]float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	values, ok := c.waves[DayKey(day)]
	if !ok {
		return nil, false
	}
	return copyValues(values), true
}

func (c *forecastCache) SetWave(day time.Time, values []float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := DayKey(day)
	c.waves[key] = copyValues(values)
	if c.store != nil {
		if err := c.store.SaveWave(key, values); err != nil {
			log.Printf("forecast cache: persist wave %s failed: %v", key, err)
		}
	}
}

func (c *forecastCache) Accuracy(day time.Time) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.accuracy[DayKey(day)]
	return value, ok
}

func (c *forecastCache) SetAccuracy(day time.Time, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := DayKey(day)
	c.accuracy[key] = value
	if c.store != nil {
		if err := c.store.SaveAccuracy(key, value); err != nil {
			log.Printf("forecast cache: persist accuracy %s failed: %v", key, err)
		}
	}
}

func (c *forecastCache) Forecast(day time.Time) (*domain.DayEnergyForecast, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	forecast, ok := c.forecasts[DayKey(day)]
	if !ok {
		return nil, false
	}
	out := forecast
	out.Values = copyValues(forecast.Values)
	out.MissingMetrics = append([]domain.MetricKind(nil), forecast.MissingMetrics...)
	return &out, true
}

func (c *forecastCache) SaveForecast(forecast domain.DayEnergyForecast) {
	if len(forecast.Values) == 0 && forecast.SourceType == domain.SourceDefaultHeuristic {
		c.RemoveForecast(forecast.Date)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	key := DayKey(forecast.Date)
	stored := forecast
	stored.Values = copyValues(forecast.Values)
	stored.MissingMetrics = append([]domain.MetricKind(nil), forecast.MissingMetrics...)
	c.forecasts[key] = stored
	if c.store != nil {
		if err := c.store.SaveForecast(key, stored); err != nil {
			log.Printf("forecast cache: persist forecast %s failed: %v", key, err)
		}
	}
}

func (c *forecastCache) RemoveForecast(day time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := DayKey(day)
	delete(c.forecasts, key)
	if c.store != nil {
		if err := c.store.DeleteForecast(key); err != nil {
			log.Printf("forecast cache: delete forecast %s failed: %v", key, err)
		}
	}
}

func (c *forecastCache) TrailingAccuracy(end time.Time, days int) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if days <= 0 {
		return 0, false
	}
	sum := 0.0
	found := 0
	for i := 0; i < days; i++ {
		key := DayKey(end.AddDate(0, 0, -i))
		if value, ok := c.accuracy[key]; ok {
			sum += value
			found++
		}
	}
	if found == 0 {
		return 0, false
	}
	return sum / float64(found), true
}

func (c *forecastCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.waves = make(map[string][]float64)
	c.accuracy = make(map[string]float64)
	c.forecasts = make(map[string]domain.DayEnergyForecast)
	if c.store != nil {
		if err := c.store.Clear(); err != nil {
			log.Printf("forecast cache: clear failed: %v", err)
		}
	}
}

func (c *forecastCache) Reset() {
	c.Clear()
}

func copyValues(values []float64) []float64 {
	if values == nil {
		return nil
	}
	out := make([]float64, len(values))
	copy(out, values)
	return out
}
