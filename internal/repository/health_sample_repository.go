package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/orionasc/enflow/internal/domain"
	"github.com/orionasc/enflow/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HealthSampleRepository interface {
	// Upsert inserts or replaces the sample for its user and day.
	Upsert(ctx context.Context, record *domain.HealthSampleRecord) error
	// ListRange returns samples with date in [from, to], ascending by date.
	ListRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.HealthSampleRecord, error)
	// List returns samples newest-first with cursor pagination.
	List(ctx context.Context, userID uuid.UUID, filter domain.HealthSampleFilter) ([]domain.HealthSampleRecord, error)
}

type healthSampleRepository struct {
	db *gorm.DB
}

func NewHealthSampleRepository(db *gorm.DB) HealthSampleRepository {
	return &healthSampleRepository{db: db}
}

func (r *healthSampleRepository) Upsert(ctx context.Context, record *domain.HealthSampleRecord) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"hrv", "resting_hr", "sleep_efficiency", "sleep_latency",
			"deep_sleep_minutes", "rem_sleep_minutes", "step_count",
			"active_energy", "available_metrics", "has_samples",
		}),
	}).Create(record).Error
}

func (r *healthSampleRepository) ListRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.HealthSampleRecord, error) {
	var records []domain.HealthSampleRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *healthSampleRepository) List(ctx context.Context, userID uuid.UUID, filter domain.HealthSampleFilter) ([]domain.HealthSampleRecord, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC")

	if filter.From != nil {
		query = query.Where("date >= ?", filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", filter.To)
	}

	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err == nil && cursor != nil {
			query = query.Where("date < ?", cursor.Date)
		}
	}

	// Fetch one extra to determine if there are more results
	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var records []domain.HealthSampleRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
