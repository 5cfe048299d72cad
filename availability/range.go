package availability

import (
	"time"

	"crm-booking-service/models"
)

// BookedTimesFunc supplies booked start times for one date during a forward
// scan. A nil func scans without booking context.
type BookedTimesFunc func(date string) []string

// SlotRef points at one concrete bookable slot.
type SlotRef struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// scanStart applies the same-day and buffer policy to the start of a forward
// scan. The buffer rounds up to the day after now+buffer rather than allowing
// a later same-day slot that technically clears it.
func scanStart(from, now time.Time, settings models.AvailabilitySettings) time.Time {
	start := dateOf(from)
	if !settings.SameDayBooking {
		start = start.AddDate(0, 0, 1)
	}
	if settings.BufferTime > 0 {
		buffered := now.Add(time.Duration(settings.BufferTime) * time.Hour)
		if start.Before(buffered) {
			start = dateOf(buffered).AddDate(0, 0, 1)
		}
	}
	return start
}

// AvailableDates walks the booking window day by day and returns the dates
// that resolve as available. The scan carries no booked-times context; a day
// already fully booked still appears and is filtered at slot level by the
// caller.
func AvailableDates(from, now time.Time, rules []models.AvailabilityRule, exceptions []models.AvailabilityException, settings models.AvailabilitySettings) []string {
	end := dateOf(from).AddDate(0, 0, settings.AdvanceBookingDays)

	dates := make([]string, 0)
	for day := scanStart(from, now, settings); !day.After(end); day = day.AddDate(0, 0, 1) {
		if ResolveDay(day, rules, exceptions, nil).IsAvailable {
			dates = append(dates, day.Format(DateLayout))
		}
	}
	return dates
}

// NextAvailableSlot walks the same window and returns the first open slot,
// short-circuiting on the first hit. The second return is false when the
// whole window is exhausted.
func NextAvailableSlot(from, now time.Time, rules []models.AvailabilityRule, exceptions []models.AvailabilityException, settings models.AvailabilitySettings, booked BookedTimesFunc) (SlotRef, bool) {
	end := dateOf(from).AddDate(0, 0, settings.AdvanceBookingDays)

	for day := scanStart(from, now, settings); !day.After(end); day = day.AddDate(0, 0, 1) {
		var taken []string
		if booked != nil {
			taken = booked(day.Format(DateLayout))
		}
		resolved := ResolveDay(day, rules, exceptions, taken)
		if !resolved.IsAvailable {
			continue
		}
		for _, slot := range resolved.TimeSlots {
			if slot.Available {
				return SlotRef{Date: resolved.Date, Time: slot.Time}, true
			}
		}
	}
	return SlotRef{}, false
}
