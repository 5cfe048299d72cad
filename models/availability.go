package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AvailabilityRule is a weekly recurring availability template. At most one
// active rule may exist per day of week; the write surface enforces this.
type AvailabilityRule struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	DayOfWeek    int       `json:"day_of_week" gorm:"index" validate:"min=0,max=6"` // 0 = Sunday ... 6 = Saturday
	StartTime    string    `json:"start_time" validate:"required"`                  // "HH:MM", 24h
	EndTime      string    `json:"end_time" validate:"required"`
	SlotDuration int       `json:"slot_duration" validate:"min=1"` // minutes per bookable slot
	BreakTime    int       `json:"break_time" validate:"min=0"` // minutes inserted between slots
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (r *AvailabilityRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type ExceptionType string

const (
	ExceptionUnavailable ExceptionType = "unavailable"
	ExceptionCustomHours ExceptionType = "custom-hours"
)

// AvailabilityException overrides the weekly rule for one calendar date.
// An "unavailable" exception blocks the whole day; "custom-hours" replaces
// the rule's window but keeps its slot duration and break.
type AvailabilityException struct {
	ID        string        `json:"id" gorm:"primaryKey"`
	Date      string        `json:"date" gorm:"index" validate:"required"` // "YYYY-MM-DD"
	Type      ExceptionType `json:"type" validate:"required,oneof=unavailable custom-hours"`
	Reason    string        `json:"reason"`
	StartTime string        `json:"start_time"` // custom-hours only
	EndTime   string        `json:"end_time"`
	IsActive  bool          `json:"is_active"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (e *AvailabilityException) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// DefaultRules is the seeded weekly template: Monday through Friday,
// 09:00-18:00, hour-long slots, no break.
func DefaultRules() []AvailabilityRule {
	rules := make([]AvailabilityRule, 0, 5)
	for day := 1; day <= 5; day++ {
		rules = append(rules, AvailabilityRule{
			DayOfWeek:    day,
			StartTime:    "09:00",
			EndTime:      "18:00",
			SlotDuration: 60,
			BreakTime:    0,
			IsActive:     true,
		})
	}
	return rules
}
