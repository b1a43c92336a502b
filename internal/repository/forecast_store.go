package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/orionasc/enflow/internal/cache"
	"github.com/orionasc/enflow/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Entry kinds; each (user, day, kind) triple is one row, so the three
// logical tables share the day keyspace.
const (
	entryKindWave     = "wave"
	entryKindAccuracy = "accuracy"
	entryKindForecast = "forecast"
)

// ForecastCacheEntry is one persisted cache value.
type ForecastCacheEntry struct {
	UserID    uuid.UUID      `gorm:"type:uuid;primaryKey"`
	DayKey    string         `gorm:"type:varchar(10);primaryKey"`
	Kind      string         `gorm:"type:varchar(16);primaryKey"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (ForecastCacheEntry) TableName() string {
	return "forecast_cache_entries"
}

// ForecastStoreFactory scopes durable cache stores to a user. The core
// cache itself is day-keyed; multi-user isolation lives here.
type ForecastStoreFactory interface {
	ForUser(userID uuid.UUID) cache.Store
}

type forecastStoreFactory struct {
	db *gorm.DB
}

func NewForecastStoreFactory(db *gorm.DB) ForecastStoreFactory {
	return &forecastStoreFactory{db: db}
}

func (f *forecastStoreFactory) ForUser(userID uuid.UUID) cache.Store {
	return &forecastStore{db: f.db, userID: userID}
}

type forecastStore struct {
	db     *gorm.DB
	userID uuid.UUID
}

func (s *forecastStore) Load() (map[string][]float64, map[string]float64, map[string]domain.DayEnergyForecast, error) {
	var entries []ForecastCacheEntry
	err := s.db.WithContext(context.Background()).
		Where("user_id = ?", s.userID).
		Find(&entries).Error
	if err != nil {
		return nil, nil, nil, err
	}

	waves := make(map[string][]float64)
	accuracy := make(map[string]float64)
	forecasts := make(map[string]domain.DayEnergyForecast)
	for _, entry := range entries {
		switch entry.Kind {
		case entryKindWave:
			var values []float64
			if json.Unmarshal(entry.Payload, &values) == nil {
				waves[entry.DayKey] = values
			}
		case entryKindAccuracy:
			var value float64
			if json.Unmarshal(entry.Payload, &value) == nil {
				accuracy[entry.DayKey] = value
			}
		case entryKindForecast:
			var forecast domain.DayEnergyForecast
			if json.Unmarshal(entry.Payload, &forecast) == nil {
				forecasts[entry.DayKey] = forecast
			}
		}
	}
	return waves, accuracy, forecasts, nil
}

func (s *forecastStore) SaveWave(key string, values []float64) error {
	return s.put(key, entryKindWave, values)
}

func (s *forecastStore) SaveAccuracy(key string, value float64) error {
	return s.put(key, entryKindAccuracy, value)
}

func (s *forecastStore) SaveForecast(key string, forecast domain.DayEnergyForecast) error {
	return s.put(key, entryKindForecast, forecast)
}

func (s *forecastStore) DeleteForecast(key string) error {
	return s.db.WithContext(context.Background()).
		Where("user_id = ? AND day_key = ? AND kind = ?", s.userID, key, entryKindForecast).
		Delete(&ForecastCacheEntry{}).Error
}

func (s *forecastStore) Clear() error {
	return s.db.WithContext(context.Background()).
		Where("user_id = ?", s.userID).
		Delete(&ForecastCacheEntry{}).Error
}

func (s *forecastStore) put(key, kind string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	entry := ForecastCacheEntry{
		UserID:  s.userID,
		DayKey:  key,
		Kind:    kind,
		Payload: datatypes.JSON(data),
	}
	return s.db.WithContext(context.Background()).Save(&entry).Error
}
