package model

import (
	"time"

	"github.com/glowdesk/booking-bot/pkg/timeslot"
)

// Salon is one configured tenant. Immutable at runtime; changes happen
// through configuration, not through the booking flow.
type Salon struct {
	ID           string                        `json:"id"`
	Name         string                        `json:"name"`
	Phone        string                        `json:"phone"`
	Address      string                        `json:"address"`
	Timezone     string                        `json:"timezone"`
	Hours        map[time.Weekday]timeslot.Range `json:"-"`
	SlotInterval int                           `json:"slot_interval"`
	Active       bool                          `json:"active"`
}

// Location resolves the salon's timezone, falling back to UTC.
func (s *Salon) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// HoursOn returns the working window for a weekday; ok is false on
// closed days.
func (s *Salon) HoursOn(day time.Weekday) (timeslot.Range, bool) {
	r, ok := s.Hours[day]
	return r, ok
}
