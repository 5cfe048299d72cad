package cron

import (
	"testing"
	"time"
)

func TestReminderWindow_SameDay(t *testing.T) {
	now := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	startDate, startTime, endDate, endTime := reminderWindow(now)

	if startDate != "2026-09-07" || endDate != "2026-09-07" {
		t.Fatalf("expected both edges on 2026-09-07, got %s / %s", startDate, endDate)
	}
	if startTime != "10:55" || endTime != "11:05" {
		t.Errorf("expected window 10:55-11:05, got %s-%s", startTime, endTime)
	}
}

func TestReminderWindow_StraddlesMidnight(t *testing.T) {
	now := time.Date(2026, 9, 7, 23, 0, 0, 0, time.UTC)
	startDate, startTime, endDate, endTime := reminderWindow(now)

	if startDate != "2026-09-07" || startTime != "23:55" {
		t.Errorf("expected start edge 2026-09-07 23:55, got %s %s", startDate, startTime)
	}
	if endDate != "2026-09-08" || endTime != "00:05" {
		t.Errorf("expected end edge 2026-09-08 00:05, got %s %s", endDate, endTime)
	}
}

func TestReminderWindow_FullyNextDay(t *testing.T) {
	now := time.Date(2026, 9, 7, 23, 30, 0, 0, time.UTC)
	_, startTime, endDate, endTime := reminderWindow(now)

	if endDate != "2026-09-08" {
		t.Fatalf("expected end edge on 2026-09-08, got %s", endDate)
	}
	if startTime != "00:25" || endTime != "00:35" {
		t.Errorf("expected window 00:25-00:35, got %s-%s", startTime, endTime)
	}
}
