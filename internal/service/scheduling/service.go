package scheduling

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/mindwell-clinic/clinic-api/internal/model"
	"github.com/mindwell-clinic/clinic-api/internal/repository"
	"github.com/mindwell-clinic/clinic-api/internal/service/audit"
	apperrors "github.com/mindwell-clinic/clinic-api/pkg/errors"
	"github.com/mindwell-clinic/clinic-api/pkg/metrics"
)

const (
	availabilityTTL     = time.Minute
	availabilityCleanup = 5 * time.Minute
)

// allowedTransitions is the appointment state machine. Same-status sets are
// idempotent and handled before this table is consulted; completed and
// cancelled are terminal.
var allowedTransitions = map[model.AppointmentStatus]map[model.AppointmentStatus]bool{
	model.AppointmentStatusScheduled: {
		model.AppointmentStatusConfirmed: true,
		model.AppointmentStatusCancelled: true,
	},
	model.AppointmentStatusConfirmed: {
		model.AppointmentStatusCompleted: true,
		model.AppointmentStatusCancelled: true,
	},
}

// Service is the appointment lifecycle manager. All mutation of the
// appointment collection goes through it; the repository enforces the
// slot-uniqueness invariant atomically and the service maps violations to
// caller-facing errors, invalidates cached availability views, and audits.
type Service struct {
	repo    repository.AppointmentRepository
	auditor *audit.Service
	metrics *metrics.Metrics

	rulesMu sync.RWMutex
	rules   model.AvailabilityRules

	cacheMu      sync.Mutex
	cacheGen     uint64
	availability *gocache.Cache
}

func NewService(repo repository.AppointmentRepository, rules model.AvailabilityRules, auditor *audit.Service, m *metrics.Metrics) *Service {
	return &Service{
		repo:         repo,
		rules:        rules,
		auditor:      auditor,
		metrics:      m,
		availability: gocache.New(availabilityTTL, availabilityCleanup),
	}
}

func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if req.PatientID == uuid.Nil {
		return nil, apperrors.Validation("patient is required")
	}
	if req.ScheduledAt.IsZero() {
		return nil, apperrors.Validation("scheduled date and time are required")
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = model.DefaultDurationMinutes
	}
	if !model.ValidDuration(duration) {
		return nil, apperrors.Validation(fmt.Sprintf("invalid duration: %d minutes", duration))
	}

	appointmentType := req.Type
	if appointmentType == "" {
		appointmentType = model.AppointmentTypeRemote
	}
	if !appointmentType.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid appointment type: %s", appointmentType))
	}

	now := time.Now()
	appt := &model.Appointment{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PatientID:       req.PatientID,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: duration,
		Type:            appointmentType,
		Status:          model.AppointmentStatusScheduled,
		Price:           req.Price,
		PaymentStatus:   model.PaymentStatusPending,
		SessionNotes:    req.SessionNotes,
	}

	if err := s.repo.Create(ctx, appt); err != nil {
		if err == repository.ErrSlotTaken {
			s.metrics.BookingConflicts.Inc()
			return nil, apperrors.SlotUnavailable(appt.SlotKey(), err)
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.metrics.BookingsTotal.Inc()
	s.invalidateAvailability()
	s.auditor.Log(ctx, "create", "appointment", appt.ID, appt)

	return appt, nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appt, err := s.repo.Get(ctx, id)
	if err != nil {
		if err == repository.ErrAppointmentNotFound {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appt, nil
}

func (s *Service) ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// UpdateAppointment merges the patch into the stored appointment and
// refreshes UpdatedAt. The merge commits inside the store's critical
// section; moving ScheduledAt into an occupied live slot is rejected with
// SlotUnavailable.
func (s *Service) UpdateAppointment(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	if req.DurationMinutes != nil && !model.ValidDuration(*req.DurationMinutes) {
		return nil, apperrors.Validation(fmt.Sprintf("invalid duration: %d minutes", *req.DurationMinutes))
	}
	if req.Type != nil && !req.Type.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid appointment type: %s", *req.Type))
	}

	var slotKey string
	appt, err := s.repo.Mutate(ctx, id, func(a *model.Appointment) error {
		if req.ScheduledAt != nil {
			a.ScheduledAt = *req.ScheduledAt
		}
		if req.DurationMinutes != nil {
			a.DurationMinutes = *req.DurationMinutes
		}
		if req.Type != nil {
			a.Type = *req.Type
		}
		if req.Price != nil {
			a.Price = *req.Price
		}
		if req.PaymentStatus != nil {
			a.PaymentStatus = *req.PaymentStatus
		}
		if req.SessionNotes != nil {
			a.SessionNotes = *req.SessionNotes
		}
		a.UpdatedAt = time.Now()
		slotKey = a.SlotKey()
		return nil
	})
	if err != nil {
		switch err {
		case repository.ErrSlotTaken:
			s.metrics.BookingConflicts.Inc()
			return nil, apperrors.SlotUnavailable(slotKey, err)
		case repository.ErrAppointmentNotFound:
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	s.invalidateAvailability()
	s.auditor.Log(ctx, "update", "appointment", id, req)

	return appt, nil
}

// SetStatus drives the appointment state machine. Setting the current
// status again is idempotent: only UpdatedAt changes. Anything not in the
// transition table, including any move out of a terminal state, is
// rejected. The table is checked against the committed status inside the
// store's critical section, so a concurrent cancel cannot be overwritten
// by a confirm that read the pre-cancel state.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) (*model.Appointment, error) {
	if !status.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid status: %s", status))
	}

	appt, err := s.repo.Mutate(ctx, id, func(a *model.Appointment) error {
		if a.Status != status {
			if !allowedTransitions[a.Status][status] {
				return apperrors.InvalidTransition(string(a.Status), string(status))
			}
			a.Status = status
		}
		a.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		if err == repository.ErrAppointmentNotFound {
			return nil, apperrors.NotFound("appointment", err)
		}
		if apperrors.IsCode(err, apperrors.ErrInvalidTransition) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}

	s.metrics.StatusTransitions.WithLabelValues(string(status)).Inc()
	s.invalidateAvailability()
	s.auditor.Log(ctx, "set_status", "appointment", id, map[string]string{"status": string(status)})

	return appt, nil
}

// CancelAppointment is the only path that frees a slot: cancellation is a
// status, never a removal.
func (s *Service) CancelAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.SetStatus(ctx, id, model.AppointmentStatusCancelled)
}

// AvailableSlots returns the bookable "HH:MM" starts for the given day and
// modality, served through a short-lived cache that every mutation flushes.
// A fill computed concurrently with a mutation is discarded instead of
// re-populating the cache with a pre-mutation view.
func (s *Service) AvailableSlots(ctx context.Context, date time.Time, modality model.AppointmentType) ([]string, error) {
	s.metrics.AvailabilityChecks.Inc()

	key := date.Format("2006-01-02") + "|" + string(modality)
	gen, cached, ok := s.cachedSlots(key)
	if ok {
		s.metrics.AvailabilityHits.Inc()
		return cached, nil
	}

	appointments, err := s.repo.ListByDay(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments for availability: %w", err)
	}

	slots := AvailableSlots(date, modality, s.Rules(), appointments)
	s.storeSlots(key, gen, slots)
	return slots, nil
}

// cachedSlots looks up key and returns the generation the caller must hand
// back to storeSlots on a miss.
func (s *Service) cachedSlots(key string) (uint64, []string, bool) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if cached, ok := s.availability.Get(key); ok {
		return s.cacheGen, cached.([]string), true
	}
	return s.cacheGen, nil, false
}

// storeSlots caches a computed view unless a mutation invalidated the cache
// after gen was observed; the flush wins over the in-flight fill.
func (s *Service) storeSlots(key string, gen uint64, slots []string) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if s.cacheGen != gen {
		return
	}
	s.availability.Set(key, slots, gocache.DefaultExpiration)
}

// Rules returns the current per-modality availability rules.
func (s *Service) Rules() model.AvailabilityRules {
	s.rulesMu.RLock()
	defer s.rulesMu.RUnlock()
	return s.rules
}

// UpdateRules replaces the rules for the modalities present in the patch
// and invalidates cached availability views.
func (s *Service) UpdateRules(ctx context.Context, req *model.UpdateAvailabilityRulesRequest) (model.AvailabilityRules, error) {
	s.rulesMu.Lock()
	defer s.rulesMu.Unlock()

	if req.Remote != nil {
		if err := validateRule(*req.Remote); err != nil {
			return model.AvailabilityRules{}, err
		}
		s.rules.Remote = *req.Remote
	}
	if req.InPerson != nil {
		if err := validateRule(*req.InPerson); err != nil {
			return model.AvailabilityRules{}, err
		}
		s.rules.InPerson = *req.InPerson
	}

	s.invalidateAvailability()
	s.auditor.Log(ctx, "update", "availability_rules", uuid.Nil, s.rules)

	return s.rules, nil
}

func (s *Service) invalidateAvailability() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.cacheGen++
	s.availability.Flush()
}

func validateRule(rule model.AvailabilityRule) error {
	start, err := parseClock(rule.StartTime)
	if err != nil {
		return apperrors.Validation(fmt.Sprintf("invalid start time %q", rule.StartTime))
	}
	end, err := parseClock(rule.EndTime)
	if err != nil {
		return apperrors.Validation(fmt.Sprintf("invalid end time %q", rule.EndTime))
	}
	if start >= end {
		return apperrors.Validation("start time must be before end time")
	}
	// Zero falls back to the default hourly interval in Catalog.
	if rule.IntervalMinutes < 0 {
		return apperrors.Validation("slot interval must not be negative")
	}
	for _, wd := range rule.Weekdays {
		if wd < time.Sunday || wd > time.Saturday {
			return apperrors.Validation(fmt.Sprintf("invalid weekday %d", wd))
		}
	}
	return nil
}
