package model

import (
	"time"

	"github.com/google/uuid"
)

type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
	PlanB2B     Plan = "b2b"
)

// Unmetered reports whether the plan bypasses the monthly AI quota.
func (p Plan) Unmetered() bool {
	return p == PlanPremium || p == PlanB2B
}

// Usage is the monthly AI request counter. Count is only meaningful for LastResetMonth (0-11).
type Usage struct {
	Count          int `gorm:"not null;default:0" json:"count"`
	LastResetMonth int `gorm:"not null;default:0" json:"last_reset_month"`
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"type:varchar(255)" json:"name"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Plan         Plan      `gorm:"type:varchar(20);not null;default:free" json:"plan"`
	Usage        Usage     `gorm:"embedded;embeddedPrefix:usage_" json:"usage"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) TableName() string {
	return "users"
}

// MonthIndex returns the zero based calendar month (0-11) of t.
func MonthIndex(t time.Time) int {
	return int(t.Month()) - 1
}
