package models

import "time"

// AvailabilitySettings is the global booking policy. A single row (id 1) is
// kept in the database and replaced wholesale on every save.
type AvailabilitySettings struct {
	ID                   uint      `json:"-" gorm:"primaryKey"`
	AdvanceBookingDays   int       `json:"advance_booking_days" validate:"min=1"`
	SameDayBooking       bool      `json:"same_day_booking"`
	BufferTime           int       `json:"buffer_time" validate:"min=0"` // hours of lead time before the first bookable day
	MaxDailyAppointments int       `json:"max_daily_appointments" validate:"min=0"`
	AutoConfirm          bool      `json:"auto_confirm"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func DefaultSettings() AvailabilitySettings {
	return AvailabilitySettings{
		ID:                   1,
		AdvanceBookingDays:   30,
		SameDayBooking:       false,
		BufferTime:           2,
		MaxDailyAppointments: 8,
		AutoConfirm:          false,
	}
}
