package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/orionasc/enflow/internal/domain"
	"gorm.io/gorm"
)

type CalendarEventRepository interface {
	Create(ctx context.Context, record *domain.CalendarEventRecord) error
	// ListRange returns events starting in [from, to), ascending by start.
	ListRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.CalendarEventRecord, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type calendarEventRepository struct {
	db *gorm.DB
}

func NewCalendarEventRepository(db *gorm.DB) CalendarEventRepository {
	return &calendarEventRepository{db: db}
}

func (r *calendarEventRepository) Create(ctx context.Context, record *domain.CalendarEventRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *calendarEventRepository) ListRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.CalendarEventRecord, error) {
	var records []domain.CalendarEventRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("start_at >= ? AND start_at < ?", from, to).
		Order("start_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *calendarEventRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&domain.CalendarEventRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
