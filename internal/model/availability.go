package model

import "time"

// AvailabilityRule is the practitioner-configured weekly window for one
// modality: the weekdays the practitioner works and the slot bounds within
// each working day. It is configuration, not an entity with a lifecycle.
// An IntervalMinutes of 0 means the default hourly interval.
type AvailabilityRule struct {
	Weekdays        []time.Weekday `json:"weekdays"`
	StartTime       string         `json:"start_time"` // "HH:MM"
	EndTime         string         `json:"end_time"`   // "HH:MM"
	IntervalMinutes int            `json:"interval_minutes"`
}

// ActiveOn reports whether the rule offers slots on the given weekday.
func (r AvailabilityRule) ActiveOn(day time.Weekday) bool {
	for _, wd := range r.Weekdays {
		if wd == day {
			return true
		}
	}
	return false
}

// AvailabilityRules holds one rule per modality.
type AvailabilityRules struct {
	Remote   AvailabilityRule `json:"remote"`
	InPerson AvailabilityRule `json:"in_person"`
}

// For returns the rule for the given modality.
func (r AvailabilityRules) For(t AppointmentType) AvailabilityRule {
	if t == AppointmentTypeInPerson {
		return r.InPerson
	}
	return r.Remote
}

type UpdateAvailabilityRulesRequest struct {
	Remote   *AvailabilityRule `json:"remote"`
	InPerson *AvailabilityRule `json:"in_person"`
}
