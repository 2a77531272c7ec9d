package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Trainer struct {
	ID          gocql.UUID `json:"id"`
	Name        string     `json:"name"`
	Specialty   string     `json:"specialty"`
	Bio         string     `json:"bio,omitempty"`
	PhotoURL    string     `json:"photo_url,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	PerSession  float64    `json:"per_session"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type TrainerBooking struct {
	ID        gocql.UUID `json:"id"`
	TrainerID gocql.UUID `json:"trainer_id"`
	Email     string     `json:"email"`
	DayName   string     `json:"day_name"`
	Hour      string     `json:"hour"` // "HH:00"
	Status    string     `json:"status"` // "pending", "confirmed", "cancelled"
	CreatedAt time.Time  `json:"created_at"`
}
