package scheduling

import (
	"fmt"
	"time"

	"github.com/mindwell-clinic/clinic-api/internal/model"
)

// Catalog generates the ordered "HH:MM" slot starts a rule offers on the
// given weekday. A weekday outside the rule's working days yields nil, not
// an error. The bounds are half-open: a slot starting at the end bound is
// not offered.
func Catalog(rule model.AvailabilityRule, weekday time.Weekday) []string {
	if !rule.ActiveOn(weekday) {
		return nil
	}

	start, err := parseClock(rule.StartTime)
	if err != nil {
		return nil
	}
	end, err := parseClock(rule.EndTime)
	if err != nil {
		return nil
	}

	interval := rule.IntervalMinutes
	if interval <= 0 {
		interval = 60
	}

	var slots []string
	for t := start; t < end; t += interval {
		slots = append(slots, fmt.Sprintf("%02d:%02d", t/60, t%60))
	}
	return slots
}

// AvailableSlots answers "which slots are free?" for a (date, modality)
// pair. It filters the appointment collection to live appointments on the
// same calendar day, collects their slot starts as an occupied set, and
// returns the catalog minus that set in catalog order. Pure function: safe
// to call repeatedly over the same inputs.
//
// Occupancy is not filtered by modality: a single practitioner holds one
// session at a time, so a live in-person booking blocks the remote catalog
// slot at the same start and vice versa.
func AvailableSlots(date time.Time, modality model.AppointmentType, rules model.AvailabilityRules, appointments []*model.Appointment) []string {
	catalog := Catalog(rules.For(modality), date.Weekday())
	if len(catalog) == 0 {
		return nil
	}

	occupied := make(map[string]struct{})
	for _, appt := range appointments {
		if !appt.IsLive() {
			continue
		}
		if !model.SameDay(appt.ScheduledAt, date) {
			continue
		}
		occupied[appt.SlotKey()] = struct{}{}
	}

	available := make([]string, 0, len(catalog))
	for _, slot := range catalog {
		if _, taken := occupied[slot]; !taken {
			available = append(available, slot)
		}
	}
	return available
}

// parseClock converts "HH:MM" to minutes after midnight.
func parseClock(value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", value, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
