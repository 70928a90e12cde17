package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/mindwell-clinic/clinic-api/internal/model"
	"github.com/mindwell-clinic/clinic-api/internal/repository"
)

// Overview is the read-only aggregation the dashboards render. It is
// computed from the same store every other view reads, so a booking made
// anywhere is immediately reflected here.
type Overview struct {
	TotalAppointments int                             `json:"total_appointments"`
	ByStatus          map[model.AppointmentStatus]int `json:"by_status"`
	TodayCount        int                             `json:"today_count"`
	UpcomingCount     int                             `json:"upcoming_count"`
	Revenue           float64                         `json:"revenue"`
	ActivePatients    int                             `json:"active_patients"`
}

type Service struct {
	appointments repository.AppointmentRepository
	patients     repository.PatientRepository
}

func NewService(appointments repository.AppointmentRepository, patients repository.PatientRepository) *Service {
	return &Service{appointments: appointments, patients: patients}
}

func (s *Service) GetOverview(ctx context.Context) (*Overview, error) {
	appointments, err := s.appointments.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	patients, err := s.patients.List(ctx, &model.PatientFilters{Status: model.PatientStatusActive})
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	now := time.Now()
	overview := &Overview{
		TotalAppointments: len(appointments),
		ByStatus:          make(map[model.AppointmentStatus]int),
		ActivePatients:    len(patients),
	}

	for _, appt := range appointments {
		overview.ByStatus[appt.Status]++
		if model.SameDay(appt.ScheduledAt, now) && appt.IsLive() {
			overview.TodayCount++
		}
		if appt.ScheduledAt.After(now) && appt.IsLive() {
			overview.UpcomingCount++
		}
		if appt.Status == model.AppointmentStatusCompleted && appt.PaymentStatus == model.PaymentStatusPaid {
			overview.Revenue += appt.Price
		}
	}

	return overview, nil
}
