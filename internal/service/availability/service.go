package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/glowdesk/booking-bot/internal/model"
	"github.com/glowdesk/booking-bot/internal/repository"
	"github.com/glowdesk/booking-bot/internal/service/salon"
	apperrors "github.com/glowdesk/booking-bot/pkg/errors"
	"github.com/glowdesk/booking-bot/pkg/timeslot"
)

const defaultSlotInterval = 30

// Service computes free time slots for a staff member on a date.
type Service struct {
	directory *salon.Directory
	bookings  repository.BookingRepository
}

func NewService(directory *salon.Directory, bookings repository.BookingRepository) *Service {
	return &Service{directory: directory, bookings: bookings}
}

// AvailableSlots generates the candidate slots from the salon's working
// hours for that date and removes every candidate whose start exactly
// matches a confirmed booking. The result is chronological; menus shown
// to the customer are 1-indexed against this exact ordering.
//
// Matching is exact-start only. Service durations longer than the slot
// interval are not merged out of neighbouring slots.
func (s *Service) AvailableSlots(ctx context.Context, staffName, salonID, date string) ([]timeslot.Minutes, error) {
	sal, err := s.directory.Get(salonID)
	if err != nil {
		return nil, err
	}

	day, err := time.ParseInLocation("2006-01-02", date, sal.Location())
	if err != nil {
		return nil, apperrors.Validation(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date))
	}

	window, open := sal.HoursOn(day.Weekday())
	if !open {
		return nil, nil
	}

	interval := sal.SlotInterval
	if interval <= 0 {
		interval = defaultSlotInterval
	}

	booked, err := s.bookings.ListForStaffDate(ctx, salonID, staffName, date)
	if err != nil {
		return nil, err
	}
	taken := make(map[timeslot.Minutes]struct{}, len(booked))
	for _, b := range booked {
		if b.Status == model.BookingStatusConfirmed {
			taken[b.TimeSlot] = struct{}{}
		}
	}

	var free []timeslot.Minutes
	for _, slot := range window.Slots(interval) {
		if _, ok := taken[slot]; !ok {
			free = append(free, slot)
		}
	}
	return free, nil
}
