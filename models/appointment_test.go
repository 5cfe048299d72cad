package models

import "testing"

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to AppointmentStatus }{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCanceled},
		{StatusConfirmed, StatusCompleted},
		{StatusConfirmed, StatusCanceled},
	}
	for _, c := range allowed {
		if err := CanTransition(c.from, c.to); err != nil {
			t.Errorf("%s -> %s should be allowed: %v", c.from, c.to, err)
		}
	}

	denied := []struct{ from, to AppointmentStatus }{
		{StatusPending, StatusCompleted},
		{StatusConfirmed, StatusPending},
		{StatusCompleted, StatusConfirmed},
		{StatusCompleted, StatusCanceled},
		{StatusCanceled, StatusPending},
		{StatusCanceled, StatusConfirmed},
	}
	for _, c := range denied {
		if err := CanTransition(c.from, c.to); err == nil {
			t.Errorf("%s -> %s should be rejected", c.from, c.to)
		}
	}
}

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()
	if len(rules) != 5 {
		t.Fatalf("expected 5 seeded rules, got %d", len(rules))
	}
	for i, rule := range rules {
		if rule.DayOfWeek != i+1 {
			t.Errorf("rule %d: expected weekday %d, got %d", i, i+1, rule.DayOfWeek)
		}
		if rule.StartTime != "09:00" || rule.EndTime != "18:00" {
			t.Errorf("rule %d: unexpected window %s-%s", i, rule.StartTime, rule.EndTime)
		}
		if rule.SlotDuration != 60 || rule.BreakTime != 0 || !rule.IsActive {
			t.Errorf("rule %d: unexpected slot config %+v", i, rule)
		}
	}
}
