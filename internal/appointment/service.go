package appointment

import (
	"context"
	"log"
	"time"

	"github.com/dentchartzz/clinic-service/internal/messaging"
)

// PatientRecords is the slice of patient data the scheduler writes back to
type PatientRecords interface {
	SetChiefComplaint(ctx context.Context, patientID, complaint string) error
}

// ConflictRecorder counts rejected overlapping booking requests
type ConflictRecorder interface {
	RecordSlotConflict(ctx context.Context, dentistID string)
}

type Service struct {
	repo      RepositoryInterface
	patients  PatientRecords
	publisher messaging.PublisherInterface
	conflicts ConflictRecorder // optional
}

func NewService(repo RepositoryInterface, patients PatientRecords, publisher messaging.PublisherInterface, conflicts ConflictRecorder) *Service {
	return &Service{
		repo:      repo,
		patients:  patients,
		publisher: publisher,
		conflicts: conflicts,
	}
}

func deriveEndTime(startTime string, duration int) (string, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return "", ErrInvalidTime
	}
	return start.Add(time.Duration(duration) * time.Minute).Format("15:04"), nil
}

func (s *Service) validateSchedule(date, startTime string, duration int) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ErrInvalidDate
	}
	if _, err := ParseClock(startTime); err != nil {
		return ErrInvalidTime
	}
	if duration < MinDurationMinutes || duration > MaxDurationMinutes {
		return ErrInvalidDuration
	}
	return nil
}

// checkOverlap rejects the [start, end) interval when it overlaps a scheduled
// appointment of the same dentist on the same date. excludeID skips the
// appointment being edited.
func (s *Service) checkOverlap(ctx context.Context, dentistID, date, startTime, endTime, excludeID string) error {
	existing, err := s.repo.ListScheduledForDentist(ctx, dentistID, date)
	if err != nil {
		return err
	}

	start, err := ParseClock(startTime)
	if err != nil {
		return ErrInvalidTime
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return ErrInvalidTime
	}
	if end.Before(start) {
		end = end.Add(24 * time.Hour)
	}

	conflict := ValidateNoOverlap(existing, start, end, excludeID)
	if conflict == nil {
		return nil
	}

	if s.conflicts != nil {
		s.conflicts.RecordSlotConflict(ctx, dentistID)
	}

	conflictStart, _ := ParseClock(conflict.StartTime)
	return &ConflictError{
		DentistName: conflict.DentistName,
		Date:        date,
		StartTime:   FormatDisplay(conflictStart),
	}
}

func (s *Service) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*AppointmentResponse, error) {
	if req.PatientID == "" {
		return nil, ErrMissingPatient
	}
	if req.DentistID == "" {
		return nil, ErrMissingDentist
	}
	if req.Date == "" {
		return nil, ErrMissingDate
	}
	if req.StartTime == "" {
		return nil, ErrMissingStartTime
	}
	if req.Duration == 0 {
		req.Duration = DefaultDurationMinutes
	}
	if err := s.validateSchedule(req.Date, req.StartTime, req.Duration); err != nil {
		return nil, err
	}

	endTime, err := deriveEndTime(req.StartTime, req.Duration)
	if err != nil {
		return nil, err
	}

	if err := s.checkOverlap(ctx, req.DentistID, req.Date, req.StartTime, endTime, ""); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateAppointment(ctx, req, endTime)
	if err != nil {
		if err == ErrSlotTaken {
			// Lost the race between overlap check and insert; re-check so
			// the conflict names the winning appointment's dentist
			if conflictErr := s.checkOverlap(ctx, req.DentistID, req.Date, req.StartTime, endTime, ""); conflictErr != nil {
				return nil, conflictErr
			}
			if s.conflicts != nil {
				s.conflicts.RecordSlotConflict(ctx, req.DentistID)
			}
			start, _ := ParseClock(req.StartTime)
			return nil, &ConflictError{
				DentistName: "the selected dentist",
				Date:        req.Date,
				StartTime:   FormatDisplay(start),
			}
		}
		return nil, err
	}

	if req.ChiefComplaint != "" {
		if err := s.patients.SetChiefComplaint(ctx, req.PatientID, req.ChiefComplaint); err != nil {
			log.Printf("Warning: failed to update chief complaint for patient %s: %v", req.PatientID, err)
		}
	}

	event := messaging.AppointmentScheduledEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventAppointmentScheduled),
		Data: messaging.AppointmentScheduledData{
			AppointmentID: created.ID,
			PatientID:     created.PatientID,
			DentistID:     created.DentistID,
			Date:          created.Date,
			StartTime:     created.StartTime,
			EndTime:       created.EndTime,
			Duration:      created.Duration,
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventAppointmentScheduled, event); err != nil {
		log.Printf("Warning: failed to publish appointment.scheduled event: %v", err)
	}

	return created, nil
}

func (s *Service) ListAppointments(ctx context.Context, f Filters) ([]AppointmentResponse, error) {
	if f.Status != "" && !ValidStatus(f.Status) {
		return nil, ErrInvalidStatus
	}

	appointments, err := s.repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, err
	}
	if appointments == nil {
		appointments = []AppointmentResponse{}
	}
	return appointments, nil
}

func (s *Service) GetAppointment(ctx context.Context, id string) (*AppointmentResponse, error) {
	return s.repo.GetAppointment(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]AppointmentResponse, error) {
	appointments, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if appointments == nil {
		appointments = []AppointmentResponse{}
	}
	return appointments, nil
}

// Calendar returns the week of appointments starting at weekStart
// (YYYY-MM-DD). An empty weekStart defaults to Monday of the current week.
func (s *Service) Calendar(ctx context.Context, weekStart string) (*CalendarResponse, error) {
	var start time.Time
	if weekStart != "" {
		parsed, err := time.Parse("2006-01-02", weekStart)
		if err != nil {
			return nil, ErrInvalidDate
		}
		start = parsed
	} else {
		now := time.Now()
		offset := (int(now.Weekday()) + 6) % 7 // Monday = 0
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -offset)
	}

	end := start.AddDate(0, 0, 6)

	appointments, err := s.repo.ListByDateRange(ctx, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	byDate := make(map[string][]AppointmentResponse)
	for _, appt := range appointments {
		byDate[appt.Date] = append(byDate[appt.Date], appt)
	}

	days := make([]CalendarDay, 0, 7)
	for d := 0; d < 7; d++ {
		date := start.AddDate(0, 0, d).Format("2006-01-02")
		dayAppointments := byDate[date]
		if dayAppointments == nil {
			dayAppointments = []AppointmentResponse{}
		}
		days = append(days, CalendarDay{Date: date, Appointments: dayAppointments})
	}

	return &CalendarResponse{
		Success:   true,
		WeekStart: start.Format("2006-01-02"),
		WeekEnd:   end.Format("2006-01-02"),
		PrevWeek:  start.AddDate(0, 0, -7).Format("2006-01-02"),
		NextWeek:  start.AddDate(0, 0, 7).Format("2006-01-02"),
		Days:      days,
	}, nil
}

func (s *Service) UpdateAppointment(ctx context.Context, id string, req UpdateAppointmentRequest) (*AppointmentResponse, error) {
	existing, err := s.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && !ValidStatus(*req.Status) {
		return nil, ErrInvalidStatus
	}

	// Merge the schedule fields to re-derive the end time and re-check
	// overlap against the final dentist/date/interval
	dentistID := existing.DentistID
	if req.DentistID != nil {
		dentistID = *req.DentistID
	}
	date := existing.Date
	if req.Date != nil {
		date = *req.Date
	}
	startTime := existing.StartTime
	if req.StartTime != nil {
		startTime = *req.StartTime
	}
	duration := existing.Duration
	if req.Duration != nil {
		duration = *req.Duration
	}

	if err := s.validateSchedule(date, startTime, duration); err != nil {
		return nil, err
	}

	var endTime *string
	if req.StartTime != nil || req.Duration != nil {
		derived, err := deriveEndTime(startTime, duration)
		if err != nil {
			return nil, err
		}
		endTime = &derived
	}

	finalEnd := existing.EndTime
	if endTime != nil {
		finalEnd = *endTime
	}

	status := existing.Status
	if req.Status != nil {
		status = *req.Status
	}
	if status == StatusScheduled {
		if err := s.checkOverlap(ctx, dentistID, date, startTime, finalEnd, id); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.UpdateAppointment(ctx, id, req, endTime)
	if err != nil {
		if err == ErrSlotTaken {
			if conflictErr := s.checkOverlap(ctx, dentistID, date, startTime, finalEnd, id); conflictErr != nil {
				return nil, conflictErr
			}
			start, _ := ParseClock(startTime)
			return nil, &ConflictError{
				DentistName: "the selected dentist",
				Date:        date,
				StartTime:   FormatDisplay(start),
			}
		}
		return nil, err
	}

	if req.Status != nil && *req.Status != existing.Status {
		s.publishStatusChanged(ctx, updated, existing.Status)
	}

	return updated, nil
}

// CancelAppointment marks the appointment cancelled, freeing its slots
func (s *Service) CancelAppointment(ctx context.Context, id string) (*AppointmentResponse, error) {
	cancelled, err := s.repo.UpdateStatus(ctx, id, StatusCancelled)
	if err != nil {
		return nil, err
	}

	event := messaging.AppointmentCancelledEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventAppointmentCancelled),
		Data: messaging.AppointmentCancelledData{
			AppointmentID: cancelled.ID,
			PatientID:     cancelled.PatientID,
			DentistID:     cancelled.DentistID,
			Date:          cancelled.Date,
			StartTime:     cancelled.StartTime,
			CancelledAt:   time.Now().UTC(),
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventAppointmentCancelled, event); err != nil {
		log.Printf("Warning: failed to publish appointment.cancelled event: %v", err)
	}

	return cancelled, nil
}

// TimeSlots returns the slot grid for a dentist on a date. The appointment
// being edited is excluded so its own time shows as available.
func (s *Service) TimeSlots(ctx context.Context, dentistID, date, excludeAppointmentID, selected string) (*TimeSlotsResponse, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}

	booked, err := s.repo.ListScheduledForDentist(ctx, dentistID, date)
	if err != nil {
		return nil, err
	}

	if excludeAppointmentID != "" {
		filtered := booked[:0]
		for _, appt := range booked {
			if appt.ID != excludeAppointmentID {
				filtered = append(filtered, appt)
			}
		}
		booked = filtered
	}

	return &TimeSlotsResponse{TimeSlots: GenerateSlots(booked, selected)}, nil
}

func (s *Service) publishStatusChanged(ctx context.Context, appt *AppointmentResponse, oldStatus string) {
	event := messaging.AppointmentStatusChangedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventAppointmentStatusChanged),
		Data: messaging.AppointmentStatusChangedData{
			AppointmentID: appt.ID,
			PatientID:     appt.PatientID,
			OldStatus:     oldStatus,
			NewStatus:     appt.Status,
			ChangedAt:     time.Now().UTC(),
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventAppointmentStatusChanged, event); err != nil {
		log.Printf("Warning: failed to publish appointment.status_changed event: %v", err)
	}
}
