package appointment

import (
	"testing"
	"time"
)

func mustClock(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := ParseClock(value)
	if err != nil {
		t.Fatalf("Failed to parse time %q: %v", value, err)
	}
	return parsed
}

func scheduled(id, start, end string) AppointmentResponse {
	return AppointmentResponse{
		ID:        id,
		StartTime: start,
		EndTime:   end,
		Status:    StatusScheduled,
	}
}

// TestGenerateSlots_EmptyDay tests the full grid with no bookings
func TestGenerateSlots_EmptyDay(t *testing.T) {
	slots := GenerateSlots(nil, "")

	if len(slots) != 16 {
		t.Fatalf("Expected 16 slots, got %d", len(slots))
	}
	if slots[0].Time != "09:00" {
		t.Errorf("Expected first slot 09:00, got %s", slots[0].Time)
	}
	if slots[len(slots)-1].Time != "16:30" {
		t.Errorf("Expected last slot 16:30, got %s", slots[len(slots)-1].Time)
	}
	for _, slot := range slots {
		if !slot.Available {
			t.Errorf("Expected slot %s to be available", slot.Time)
		}
	}
}

// TestGenerateSlots_DisplayFormat tests the 12-hour display rendering
func TestGenerateSlots_DisplayFormat(t *testing.T) {
	slots := GenerateSlots(nil, "")

	if slots[0].Display != "09:00 AM" {
		t.Errorf("Expected display '09:00 AM', got '%s'", slots[0].Display)
	}
	if slots[len(slots)-1].Display != "04:30 PM" {
		t.Errorf("Expected display '04:30 PM', got '%s'", slots[len(slots)-1].Display)
	}
}

// TestGenerateSlots_BookedSlotUnavailable tests that a booking blocks exactly its slots
func TestGenerateSlots_BookedSlotUnavailable(t *testing.T) {
	booked := []AppointmentResponse{scheduled("a1", "10:00", "10:30")}

	slots := GenerateSlots(booked, "")

	for _, slot := range slots {
		switch slot.Time {
		case "10:00":
			if slot.Available {
				t.Error("Expected 10:00 to be unavailable")
			}
		case "09:30", "10:30":
			if !slot.Available {
				t.Errorf("Expected %s to be available (back-to-back)", slot.Time)
			}
		}
	}
}

// TestGenerateSlots_LongAppointment tests that a long booking blocks every covered slot
func TestGenerateSlots_LongAppointment(t *testing.T) {
	booked := []AppointmentResponse{scheduled("a1", "10:00", "11:30")}

	slots := GenerateSlots(booked, "")

	blocked := map[string]bool{"10:00": true, "10:30": true, "11:00": true}
	for _, slot := range slots {
		if blocked[slot.Time] && slot.Available {
			t.Errorf("Expected %s to be blocked", slot.Time)
		}
		if slot.Time == "11:30" && !slot.Available {
			t.Error("Expected 11:30 to be available")
		}
	}
}

// TestGenerateSlots_CancelledIgnored tests that non-scheduled rows never block
func TestGenerateSlots_CancelledIgnored(t *testing.T) {
	booked := []AppointmentResponse{
		{ID: "a1", StartTime: "10:00", EndTime: "10:30", Status: StatusCancelled},
		{ID: "a2", StartTime: "11:00", EndTime: "11:30", Status: StatusCompleted},
	}

	slots := GenerateSlots(booked, "")

	for _, slot := range slots {
		if !slot.Available {
			t.Errorf("Expected slot %s to be available", slot.Time)
		}
	}
}

// TestGenerateSlots_SelectedStaysAvailable tests selected-time handling for edit forms
func TestGenerateSlots_SelectedStaysAvailable(t *testing.T) {
	booked := []AppointmentResponse{scheduled("a1", "10:00", "10:30")}

	slots := GenerateSlots(booked, "10:00")

	for _, slot := range slots {
		if slot.Time == "10:00" {
			if !slot.Selected {
				t.Error("Expected 10:00 to be selected")
			}
			if !slot.Available {
				t.Error("Expected selected slot to stay available")
			}
		} else if slot.Selected {
			t.Errorf("Expected only 10:00 selected, got %s", slot.Time)
		}
	}
}

// TestValidateNoOverlap_NoConflict tests a free interval
func TestValidateNoOverlap_NoConflict(t *testing.T) {
	existing := []AppointmentResponse{scheduled("a1", "09:00", "09:30")}

	conflict := ValidateNoOverlap(existing, mustClock(t, "10:00"), mustClock(t, "10:30"), "")
	if conflict != nil {
		t.Errorf("Expected no conflict, got %s", conflict.ID)
	}
}

// TestValidateNoOverlap_BackToBack tests that touching intervals do not conflict
func TestValidateNoOverlap_BackToBack(t *testing.T) {
	existing := []AppointmentResponse{scheduled("a1", "10:00", "10:30")}

	if conflict := ValidateNoOverlap(existing, mustClock(t, "10:30"), mustClock(t, "11:00"), ""); conflict != nil {
		t.Errorf("Expected no conflict after existing, got %s", conflict.ID)
	}
	if conflict := ValidateNoOverlap(existing, mustClock(t, "09:30"), mustClock(t, "10:00"), ""); conflict != nil {
		t.Errorf("Expected no conflict before existing, got %s", conflict.ID)
	}
}

// TestValidateNoOverlap_Conflict tests partial overlap rejection
func TestValidateNoOverlap_Conflict(t *testing.T) {
	existing := []AppointmentResponse{scheduled("a1", "10:00", "11:00")}

	conflict := ValidateNoOverlap(existing, mustClock(t, "10:30"), mustClock(t, "11:30"), "")
	if conflict == nil {
		t.Fatal("Expected conflict, got nil")
	}
	if conflict.ID != "a1" {
		t.Errorf("Expected conflict with a1, got %s", conflict.ID)
	}
}

// TestValidateNoOverlap_Containment tests an interval inside an existing booking
func TestValidateNoOverlap_Containment(t *testing.T) {
	existing := []AppointmentResponse{scheduled("a1", "10:00", "12:00")}

	if ValidateNoOverlap(existing, mustClock(t, "10:30"), mustClock(t, "11:00"), "") == nil {
		t.Error("Expected conflict for contained interval")
	}
	if ValidateNoOverlap(existing, mustClock(t, "09:00"), mustClock(t, "13:00"), "") == nil {
		t.Error("Expected conflict for containing interval")
	}
}

// TestValidateNoOverlap_ExcludeSelf tests that an edit never conflicts with itself
func TestValidateNoOverlap_ExcludeSelf(t *testing.T) {
	existing := []AppointmentResponse{scheduled("a1", "10:00", "10:30")}

	conflict := ValidateNoOverlap(existing, mustClock(t, "10:00"), mustClock(t, "10:30"), "a1")
	if conflict != nil {
		t.Errorf("Expected unchanged save to pass, got conflict %s", conflict.ID)
	}
}

// TestValidateNoOverlap_FirstInOrder tests that the first conflicting row wins
func TestValidateNoOverlap_FirstInOrder(t *testing.T) {
	existing := []AppointmentResponse{
		scheduled("a1", "10:00", "10:30"),
		scheduled("a2", "10:00", "11:00"),
	}

	conflict := ValidateNoOverlap(existing, mustClock(t, "10:15"), mustClock(t, "10:45"), "")
	if conflict == nil {
		t.Fatal("Expected conflict, got nil")
	}
	if conflict.ID != "a1" {
		t.Errorf("Expected first conflict a1, got %s", conflict.ID)
	}
}

// TestDurationMinutes tests duration derivation including the midnight wrap
func TestDurationMinutes(t *testing.T) {
	testCases := []struct {
		start, end string
		want       int
	}{
		{"10:00", "10:30", 30},
		{"09:00", "13:00", 240},
		{"23:30", "00:30", 60},
		{"23:00", "01:00", 120},
	}

	for _, tc := range testCases {
		if got := DurationMinutes(tc.start, tc.end); got != tc.want {
			t.Errorf("DurationMinutes(%s, %s): expected %d, got %d", tc.start, tc.end, tc.want, got)
		}
	}
}
