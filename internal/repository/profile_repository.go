package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/orionasc/enflow/internal/domain"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	// Get returns the user's profile, or domain.ErrNotFound if none exists.
	Get(ctx context.Context, userID uuid.UUID) (*domain.ProfileRecord, error)
	// Upsert creates or replaces the user's profile.
	Upsert(ctx context.Context, record *domain.ProfileRecord) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.ProfileRecord, error) {
	var record domain.ProfileRecord
	err := r.db.WithContext(ctx).First(&record, "user_id = ?", userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *profileRepository) Upsert(ctx context.Context, record *domain.ProfileRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}
