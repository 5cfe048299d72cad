package availability

import (
	"fmt"
	"testing"
	"time"

	"crm-booking-service/models"
)

// 2026-09-07 is a Monday.
var testMonday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func weeklyRules() []models.AvailabilityRule {
	rules := make([]models.AvailabilityRule, 0, 5)
	for day := 1; day <= 5; day++ {
		rules = append(rules, models.AvailabilityRule{
			ID:           fmt.Sprintf("rule-%d", day),
			DayOfWeek:    day,
			StartTime:    "09:00",
			EndTime:      "18:00",
			SlotDuration: 60,
			IsActive:     true,
		})
	}
	return rules
}

func TestResolveDay_RuleMatched(t *testing.T) {
	resolved := ResolveDay(testMonday, weeklyRules(), nil, nil)
	if !resolved.IsAvailable {
		t.Fatal("expected Monday to be available")
	}
	if resolved.DayOfWeek != 1 {
		t.Errorf("expected day_of_week 1, got %d", resolved.DayOfWeek)
	}
	if resolved.Rule == nil || resolved.Rule.DayOfWeek != 1 {
		t.Errorf("expected the Monday rule to be reported, got %+v", resolved.Rule)
	}
	if len(resolved.TimeSlots) != 9 {
		t.Errorf("expected 9 hourly slots between 09:00 and 18:00, got %d", len(resolved.TimeSlots))
	}
}

func TestResolveDay_NoRuleForWeekday(t *testing.T) {
	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	resolved := ResolveDay(sunday, weeklyRules(), nil, nil)
	if resolved.IsAvailable {
		t.Fatal("expected Sunday to be unavailable without a rule")
	}
	if len(resolved.TimeSlots) != 0 {
		t.Errorf("expected no slots, got %v", resolved.TimeSlots)
	}
}

func TestResolveDay_InactiveRuleIgnored(t *testing.T) {
	rules := weeklyRules()
	rules[0].IsActive = false
	if resolved := ResolveDay(testMonday, rules, nil, nil); resolved.IsAvailable {
		t.Fatal("expected an inactive rule to be ignored entirely")
	}
}

func TestResolveDay_UnavailableException(t *testing.T) {
	exceptions := []models.AvailabilityException{{
		ID:       "exc-1",
		Date:     "2026-09-07",
		Type:     models.ExceptionUnavailable,
		Reason:   "maintenance",
		IsActive: true,
	}}
	resolved := ResolveDay(testMonday, weeklyRules(), exceptions, nil)
	if resolved.IsAvailable {
		t.Fatal("expected an unavailable exception to block the day")
	}
	if len(resolved.TimeSlots) != 0 {
		t.Errorf("expected no slots, got %v", resolved.TimeSlots)
	}
	if resolved.Exception == nil || resolved.Exception.Reason != "maintenance" {
		t.Errorf("expected the matched exception to be reported, got %+v", resolved.Exception)
	}
}

func TestResolveDay_CustomHoursKeepAvailable(t *testing.T) {
	exceptions := []models.AvailabilityException{{
		ID:        "exc-2",
		Date:      "2026-09-07",
		Type:      models.ExceptionCustomHours,
		StartTime: "10:00",
		EndTime:   "12:00",
		IsActive:  true,
	}}
	resolved := ResolveDay(testMonday, weeklyRules(), exceptions, nil)
	if !resolved.IsAvailable {
		t.Fatal("expected custom hours to keep the day available")
	}
	if len(resolved.TimeSlots) != 2 {
		t.Errorf("expected 2 slots inside custom hours, got %d", len(resolved.TimeSlots))
	}
}

func TestResolveDay_ZeroSlotsMeansUnavailable(t *testing.T) {
	// A rule exists but its window cannot fit a single slot.
	rules := []models.AvailabilityRule{{
		ID:           "rule-short",
		DayOfWeek:    1,
		StartTime:    "09:00",
		EndTime:      "09:30",
		SlotDuration: 60,
		IsActive:     true,
	}}
	if resolved := ResolveDay(testMonday, rules, nil, nil); resolved.IsAvailable {
		t.Fatal("a rule with zero generatable slots must not be available")
	}
}

func TestRuleForWeekday_FirstActiveMatchWins(t *testing.T) {
	rules := []models.AvailabilityRule{
		{ID: "a", DayOfWeek: 1, StartTime: "08:00", EndTime: "12:00", SlotDuration: 60, IsActive: false},
		{ID: "b", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", SlotDuration: 60, IsActive: true},
		{ID: "c", DayOfWeek: 1, StartTime: "10:00", EndTime: "16:00", SlotDuration: 60, IsActive: true},
	}
	matched := RuleForWeekday(rules, 1)
	if matched == nil || matched.ID != "b" {
		t.Fatalf("expected the first active rule to win, got %+v", matched)
	}
}
