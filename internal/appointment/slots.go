package appointment

import (
	"time"
)

// Working day grid for bookable slots
const (
	DayStartHour    = 9
	DayEndHour      = 17
	SlotStepMinutes = 30

	MinDurationMinutes     = 15
	MaxDurationMinutes     = 240
	DefaultDurationMinutes = 30
)

// TimeSlot represents a bookable slot in the daily grid
type TimeSlot struct {
	Time      string `json:"time"`    // 24h "15:04"
	Display   string `json:"display"` // "03:04 PM"
	Available bool   `json:"available"`
	Selected  bool   `json:"selected"`
}

// ParseClock parses a wall-clock time in "15:04" format
func ParseClock(value string) (time.Time, error) {
	return time.Parse("15:04", value)
}

// FormatDisplay renders a wall-clock time as "03:04 PM"
func FormatDisplay(t time.Time) string {
	return t.Format("03:04 PM")
}

// DurationMinutes returns the minutes between two wall-clock times.
// An end before the start means the appointment crosses midnight.
func DurationMinutes(startTime, endTime string) int {
	start, err := ParseClock(startTime)
	if err != nil {
		return 0
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return 0
	}

	if end.Before(start) {
		end = end.Add(24 * time.Hour)
	}
	return int(end.Sub(start).Minutes())
}

// GenerateSlots builds the daily slot grid against the given booked
// appointments. Callers pass only the rows that can block a slot (one
// dentist, one date, scheduled status). A slot equal to selected is marked
// and kept available so an edit form can re-offer the current time.
func GenerateSlots(booked []AppointmentResponse, selected string) []TimeSlot {
	dayStart := time.Date(0, 1, 1, DayStartHour, 0, 0, 0, time.UTC)
	dayEnd := time.Date(0, 1, 1, DayEndHour, 0, 0, 0, time.UTC)
	step := time.Duration(SlotStepMinutes) * time.Minute

	var slots []TimeSlot
	for cursor := dayStart; cursor.Before(dayEnd); cursor = cursor.Add(step) {
		slotStart := cursor
		slotEnd := cursor.Add(step)

		available := true
		for _, appt := range booked {
			if appt.Status != StatusScheduled {
				continue
			}
			apptStart, err := ParseClock(appt.StartTime)
			if err != nil {
				continue
			}
			apptEnd, err := ParseClock(appt.EndTime)
			if err != nil {
				continue
			}
			if slotStart.Before(apptEnd) && slotEnd.After(apptStart) {
				available = false
				break
			}
		}

		slot := TimeSlot{
			Time:      slotStart.Format("15:04"),
			Display:   FormatDisplay(slotStart),
			Available: available,
		}
		if selected != "" && slot.Time == selected {
			slot.Selected = true
			slot.Available = true
		}

		slots = append(slots, slot)
	}

	return slots
}

// ValidateNoOverlap returns the first existing appointment that overlaps the
// [start, end) interval, or nil when the interval is free. Rows whose ID
// equals excludeID are skipped so an edit never conflicts with itself; only
// scheduled rows block.
func ValidateNoOverlap(existing []AppointmentResponse, start, end time.Time, excludeID string) *AppointmentResponse {
	for i := range existing {
		appt := &existing[i]
		if excludeID != "" && appt.ID == excludeID {
			continue
		}
		if appt.Status != StatusScheduled {
			continue
		}

		apptStart, err := ParseClock(appt.StartTime)
		if err != nil {
			continue
		}
		apptEnd, err := ParseClock(appt.EndTime)
		if err != nil {
			continue
		}

		if start.Before(apptEnd) && end.After(apptStart) {
			return appt
		}
	}
	return nil
}
