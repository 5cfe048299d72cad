package models

import (
	"fmt"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCanceled  AppointmentStatus = "canceled"
	StatusCompleted AppointmentStatus = "completed"
)

// Appointment is one booked slot. Date and StartTime mirror the engine's
// string formats so booked times can be compared against generated slots
// without timezone conversion.
type Appointment struct {
	gorm.Model
	Date         string            `json:"date" gorm:"index" validate:"required"` // "YYYY-MM-DD"
	StartTime    string            `json:"start_time" validate:"required"`        // "HH:MM"
	EndTime      string            `json:"end_time"`
	ClientName   string            `json:"client_name" validate:"required"`
	ClientPhone  string            `json:"client_phone"`
	ClientEmail  string            `json:"client_email" validate:"omitempty,email"`
	Notes        string            `json:"notes"`
	Status       AppointmentStatus `json:"status"`
	ReminderSent bool              `json:"-"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

// CanTransition reports whether a status change is allowed. Pending
// appointments can be confirmed or canceled, confirmed ones completed or
// canceled; completed and canceled are terminal.
func CanTransition(from, to AppointmentStatus) error {
	switch from {
	case StatusPending:
		if to != StatusConfirmed && to != StatusCanceled {
			return fmt.Errorf("invalid transition from pending to %s", to)
		}
	case StatusConfirmed:
		if to != StatusCompleted && to != StatusCanceled {
			return fmt.Errorf("invalid transition from confirmed to %s", to)
		}
	case StatusCompleted, StatusCanceled:
		return fmt.Errorf("no transitions allowed from %s", from)
	}
	return nil
}

// UpdateStatus applies a guarded status change and persists it.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	if err := CanTransition(a.Status, newStatus); err != nil {
		return err
	}
	a.Status = newStatus
	return tx.Save(a).Error
}
