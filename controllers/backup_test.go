package controllers

import (
	"encoding/json"
	"testing"
	"time"

	"crm-booking-service/models"
)

func TestParseImportPayload_Malformed(t *testing.T) {
	for _, body := range []string{"", "{", "[]", `"rules"`} {
		if _, err := parseImportPayload([]byte(body)); err == nil {
			t.Errorf("expected parse failure for %q", body)
		}
	}
}

func TestParseImportPayload_PartialKeys(t *testing.T) {
	payload, err := parseImportPayload([]byte(`{"settings":{"advance_booking_days":14}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Rules != nil || payload.Exceptions != nil {
		t.Error("absent keys must stay nil so stored data is left untouched")
	}
	if payload.Settings == nil || payload.Settings.AdvanceBookingDays != 14 {
		t.Fatalf("expected settings with advance_booking_days=14, got %+v", payload.Settings)
	}
}

func TestParseImportPayload_EmptyCollectionsArePresent(t *testing.T) {
	payload, err := parseImportPayload([]byte(`{"rules":[],"exceptions":[]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Rules == nil || len(*payload.Rules) != 0 {
		t.Error("an explicit empty rules array must count as present")
	}
	if payload.Exceptions == nil || len(*payload.Exceptions) != 0 {
		t.Error("an explicit empty exceptions array must count as present")
	}
	if payload.Settings != nil {
		t.Error("settings was not in the input")
	}
}

func TestConfigBundle_RoundTrip(t *testing.T) {
	bundle := ConfigBundle{
		Rules: []models.AvailabilityRule{{
			ID: "r1", DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00",
			SlotDuration: 60, IsActive: true,
		}, {
			ID: "r2", DayOfWeek: 2, StartTime: "10:00", EndTime: "16:00",
			SlotDuration: 30, IsActive: false,
		}},
		Exceptions: []models.AvailabilityException{{
			ID: "e1", Date: "2026-12-24", Type: models.ExceptionUnavailable,
			Reason: "holiday", IsActive: true,
		}, {
			ID: "e2", Date: "2026-12-25", Type: models.ExceptionUnavailable,
			Reason: "retired", IsActive: false,
		}},
		Settings:   models.DefaultSettings(),
		ExportedAt: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(bundle)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	payload, err := parseImportPayload(raw)
	if err != nil {
		t.Fatalf("an exported bundle must import cleanly: %v", err)
	}
	if payload.Rules == nil || len(*payload.Rules) != 2 || (*payload.Rules)[0].ID != "r1" {
		t.Fatalf("rules did not round-trip: %+v", payload.Rules)
	}
	if (*payload.Rules)[1].IsActive {
		t.Error("an inactive rule must stay inactive through export and import")
	}
	if payload.Exceptions == nil || (*payload.Exceptions)[0].Reason != "holiday" {
		t.Fatalf("exceptions did not round-trip: %+v", payload.Exceptions)
	}
	if (*payload.Exceptions)[1].IsActive {
		t.Error("an inactive exception must stay inactive through export and import")
	}
	if payload.Settings == nil || payload.Settings.AdvanceBookingDays != 30 {
		t.Fatalf("settings did not round-trip: %+v", payload.Settings)
	}
	if err := checkBundle(payload); err != nil {
		t.Fatalf("an exported bundle must pass import validation: %v", err)
	}
}

func TestCheckBundle_RejectsBadRecords(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"inverted rule window", `{"rules":[{"id":"r1","day_of_week":1,"start_time":"18:00","end_time":"09:00","slot_duration":60}]}`},
		{"rule day out of range", `{"rules":[{"id":"r1","day_of_week":7,"start_time":"09:00","end_time":"18:00","slot_duration":60}]}`},
		{"rule without duration", `{"rules":[{"id":"r1","day_of_week":1,"start_time":"09:00","end_time":"18:00"}]}`},
		{"custom-hours without window", `{"exceptions":[{"id":"e1","date":"2026-12-24","type":"custom-hours"}]}`},
		{"unknown exception type", `{"exceptions":[{"id":"e1","date":"2026-12-24","type":"vacation"}]}`},
		{"exception with bad date", `{"exceptions":[{"id":"e1","date":"24-12-2026","type":"unavailable"}]}`},
		{"settings advance days zero", `{"settings":{"advance_booking_days":0}}`},
	}
	for _, tc := range cases {
		payload, err := parseImportPayload([]byte(tc.body))
		if err != nil {
			t.Fatalf("%s: unexpected parse error: %v", tc.name, err)
		}
		if err := checkBundle(payload); err == nil {
			t.Errorf("%s: expected validation failure", tc.name)
		}
	}
}

func TestCheckBundle_AcceptsValidPayload(t *testing.T) {
	body := `{
		"rules":[{"id":"r1","day_of_week":1,"start_time":"09:00","end_time":"18:00","slot_duration":60,"break_time":15,"is_active":true}],
		"exceptions":[{"id":"e1","date":"2026-12-24","type":"custom-hours","start_time":"10:00","end_time":"14:00","is_active":true}],
		"settings":{"advance_booking_days":14,"same_day_booking":true,"buffer_time":1,"max_daily_appointments":5,"auto_confirm":false}
	}`
	payload, err := parseImportPayload([]byte(body))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := checkBundle(payload); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}
