package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/orionasc/enflow/internal/domain"
)

// MockHealthSampleRepository is a mock implementation of HealthSampleRepository
type MockHealthSampleRepository struct {
	records map[uuid.UUID][]domain.HealthSampleRecord
	err     error
}

func NewMockHealthSampleRepository() *MockHealthSampleRepository {
	return &MockHealthSampleRepository{
		records: make(map[uuid.UUID][]domain.HealthSampleRecord),
	}
}

func (m *MockHealthSampleRepository) Upsert(ctx context.Context, record *domain.HealthSampleRecord) error {
	if m.err != nil {
		return m.err
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	m.records[record.UserID] = append(m.records[record.UserID], *record)
	return nil
}

func (m *MockHealthSampleRepository) ListRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.HealthSampleRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.HealthSampleRecord
	for _, record := range m.records[userID] {
		if !record.Date.Before(from) && !record.Date.After(to) {
			out = append(out, record)
		}
	}
	return out, nil
}

func (m *MockHealthSampleRepository) List(ctx context.Context, userID uuid.UUID, filter domain.HealthSampleFilter) ([]domain.HealthSampleRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.records[userID], nil
}

func (m *MockHealthSampleRepository) SetError(err error) {
	m.err = err
}

// MockCalendarEventRepository is a mock implementation of CalendarEventRepository
type MockCalendarEventRepository struct {
	events map[uuid.UUID][]domain.CalendarEventRecord
	err    error
}

func NewMockCalendarEventRepository() *MockCalendarEventRepository {
	return &MockCalendarEventRepository{
		events: make(map[uuid.UUID][]domain.CalendarEventRecord),
	}
}

func (m *MockCalendarEventRepository) Create(ctx context.Context, record *domain.CalendarEventRecord) error {
	if m.err != nil {
		return m.err
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	m.events[record.UserID] = append(m.events[record.UserID], *record)
	return nil
}

func (m *MockCalendarEventRepository) ListRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.CalendarEventRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.CalendarEventRecord
	for _, record := range m.events[userID] {
		if !record.StartAt.Before(from) && record.StartAt.Before(to) {
			out = append(out, record)
		}
	}
	return out, nil
}

func (m *MockCalendarEventRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	records := m.events[userID]
	for i, record := range records {
		if record.ID == id {
			m.events[userID] = append(records[:i], records[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *MockCalendarEventRepository) SetError(err error) {
	m.err = err
}

// MockProfileRepository is a mock implementation of ProfileRepository
type MockProfileRepository struct {
	profiles map[uuid.UUID]*domain.ProfileRecord
	err      error
}

func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{
		profiles: make(map[uuid.UUID]*domain.ProfileRecord),
	}
}

func (m *MockProfileRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.ProfileRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	profile, ok := m.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return profile, nil
}

func (m *MockProfileRepository) Upsert(ctx context.Context, record *domain.ProfileRecord) error {
	if m.err != nil {
		return m.err
	}
	m.profiles[record.UserID] = record
	return nil
}

func (m *MockProfileRepository) SetError(err error) {
	m.err = err
}
