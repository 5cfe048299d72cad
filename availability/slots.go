package availability

import "crm-booking-service/models"

// BookedSentinel marks a slot whose start time is already taken when the
// caller supplies booked times without appointment identifiers.
const BookedSentinel = "booked"

// TimeSlot is one bookable unit derived from a rule window. Slots are
// computed fresh on every query and never persisted.
type TimeSlot struct {
	Time          string `json:"time"`
	Available     bool   `json:"available"`
	AppointmentID string `json:"appointment_id,omitempty"`
}

// GenerateSlots expands the effective window for one date into ordered slots.
//
// An active "unavailable" exception blocks the whole day. A "custom-hours"
// exception replaces the rule's window but keeps its slot duration and break;
// without an underlying rule there is no template and no slots are produced.
// A slot is emitted only when it fits entirely inside the window, so a window
// shorter than one slot duration yields nothing.
func GenerateSlots(rule *models.AvailabilityRule, exception *models.AvailabilityException, booked []string) []TimeSlot {
	if exception != nil && exception.Type == models.ExceptionUnavailable {
		return nil
	}
	if rule == nil || rule.SlotDuration <= 0 {
		return nil
	}

	windowStart, windowEnd := rule.StartTime, rule.EndTime
	if exception != nil && exception.Type == models.ExceptionCustomHours {
		windowStart, windowEnd = exception.StartTime, exception.EndTime
	}

	start, ok := ParseClock(windowStart)
	if !ok {
		return nil
	}
	end, ok := ParseClock(windowEnd)
	if !ok || start >= end {
		return nil
	}

	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	step := rule.SlotDuration + rule.BreakTime
	if step <= 0 {
		return nil
	}

	var slots []TimeSlot
	for cur := start; cur+rule.SlotDuration <= end; cur += step {
		slot := TimeSlot{Time: FormatClock(cur), Available: true}
		if _, ok := taken[slot.Time]; ok {
			slot.Available = false
			slot.AppointmentID = BookedSentinel
		}
		slots = append(slots, slot)
	}
	return slots
}
