package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a tracked person. The timezone anchors day boundaries for
// waveforms and day-keyed caches.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DisplayName string    `gorm:"type:varchar(120);not null" json:"display_name"`
	Timezone    string    `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// CreateUserRequest is the request body for creating a user
type CreateUserRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=1,max=120" example:"Alex"`
	Timezone    string `json:"timezone" validate:"required,timezone" example:"Europe/Amsterdam"`
}

// UserResponse is the response body for user endpoints
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	Timezone    string    `json:"timezone"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Timezone:    u.Timezone,
		CreatedAt:   u.CreatedAt,
	}
}
