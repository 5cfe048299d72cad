package availability

import (
	"time"

	"crm-booking-service/models"
)

// DayAvailability is the resolved picture for one date: whether it is
// bookable, the generated slots, and which rule/exception applied.
type DayAvailability struct {
	Date        string                        `json:"date"`
	DayOfWeek   int                           `json:"day_of_week"`
	IsAvailable bool                          `json:"is_available"`
	TimeSlots   []TimeSlot                    `json:"time_slots"`
	Rule        *models.AvailabilityRule      `json:"rule,omitempty"`
	Exception   *models.AvailabilityException `json:"exception,omitempty"`
}

// RuleForWeekday returns the first active rule matching the weekday.
// Callers pass rules ordered most-recently-updated first, so overlapping
// legacy data resolves deterministically.
func RuleForWeekday(rules []models.AvailabilityRule, weekday int) *models.AvailabilityRule {
	for i := range rules {
		if rules[i].IsActive && rules[i].DayOfWeek == weekday {
			return &rules[i]
		}
	}
	return nil
}

// ExceptionForDate returns the first active exception matching the date.
func ExceptionForDate(exceptions []models.AvailabilityException, date string) *models.AvailabilityException {
	for i := range exceptions {
		if exceptions[i].IsActive && exceptions[i].Date == date {
			return &exceptions[i]
		}
	}
	return nil
}

// ResolveDay combines the weekly rule, the date exception and the booked
// times into a single verdict. A date is available only when a rule exists,
// no "unavailable" exception blocks it, and at least one slot fits the
// effective window.
func ResolveDay(date time.Time, rules []models.AvailabilityRule, exceptions []models.AvailabilityException, booked []string) DayAvailability {
	weekday := int(date.Weekday())
	rule := RuleForWeekday(rules, weekday)
	exception := ExceptionForDate(exceptions, date.Format(DateLayout))
	slots := GenerateSlots(rule, exception, booked)

	available := rule != nil &&
		(exception == nil || exception.Type == models.ExceptionCustomHours) &&
		len(slots) > 0

	return DayAvailability{
		Date:        date.Format(DateLayout),
		DayOfWeek:   weekday,
		IsAvailable: available,
		TimeSlots:   slots,
		Rule:        rule,
		Exception:   exception,
	}
}
