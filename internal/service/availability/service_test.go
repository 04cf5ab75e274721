package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdesk/booking-bot/internal/model"
	"github.com/glowdesk/booking-bot/internal/repository/memory"
	"github.com/glowdesk/booking-bot/internal/service/salon"
	apperrors "github.com/glowdesk/booking-bot/pkg/errors"
	"github.com/glowdesk/booking-bot/pkg/timeslot"
)

func allWeek(r timeslot.Range) map[time.Weekday]timeslot.Range {
	hours := make(map[time.Weekday]timeslot.Range)
	for d := time.Sunday; d <= time.Saturday; d++ {
		hours[d] = r
	}
	return hours
}

func newTestService(t *testing.T) (*Service, *memory.Repository) {
	t.Helper()
	directory := salon.NewDirectory([]model.Salon{
		{
			ID:           "salon_a",
			Name:         "Glamour Cuts",
			Timezone:     "UTC",
			SlotInterval: 30,
			Hours:        allWeek(timeslot.Range{Open: 540, Close: 1020}),
			Active:       true,
		},
		{
			ID:           "salon_weekdays",
			Name:         "Weekday Salon",
			Timezone:     "UTC",
			SlotInterval: 30,
			Hours: map[time.Weekday]timeslot.Range{
				time.Monday: {Open: 540, Close: 1020},
			},
			Active: true,
		},
	})
	repo := memory.New()
	return NewService(directory, repo), repo
}

func TestAvailableSlotsFullDay(t *testing.T) {
	svc, _ := newTestService(t)

	slots, err := svc.AvailableSlots(context.Background(), "Maria", "salon_a", "2026-03-02")
	require.NoError(t, err)
	require.Len(t, slots, 16)
	assert.Equal(t, timeslot.Minutes(540), slots[0])
	assert.Equal(t, timeslot.Minutes(990), slots[15])
	for i := 1; i < len(slots); i++ {
		assert.Greater(t, slots[i], slots[i-1])
	}
}

func TestAvailableSlotsExcludesBooked(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	for _, slot := range []timeslot.Minutes{540, 750} {
		require.NoError(t, repo.Create(ctx, &model.Booking{
			SalonID:   "salon_a",
			StaffName: "Maria",
			Date:      "2026-03-02",
			TimeSlot:  slot,
			Status:    model.BookingStatusConfirmed,
		}))
	}

	slots, err := svc.AvailableSlots(ctx, "Maria", "salon_a", "2026-03-02")
	require.NoError(t, err)
	assert.Len(t, slots, 14)
	assert.NotContains(t, slots, timeslot.Minutes(540))
	assert.NotContains(t, slots, timeslot.Minutes(750))
}

// Free and booked slots must partition the working-hours grid: nothing
// shared, nothing lost.
func TestAvailableSlotsDisjointFromBookings(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	booked := []timeslot.Minutes{570, 600, 900}
	for _, slot := range booked {
		require.NoError(t, repo.Create(ctx, &model.Booking{
			SalonID:   "salon_a",
			StaffName: "Maria",
			Date:      "2026-03-02",
			TimeSlot:  slot,
			Status:    model.BookingStatusConfirmed,
		}))
	}

	free, err := svc.AvailableSlots(ctx, "Maria", "salon_a", "2026-03-02")
	require.NoError(t, err)

	seen := make(map[timeslot.Minutes]struct{})
	for _, s := range free {
		seen[s] = struct{}{}
	}
	for _, s := range booked {
		_, overlap := seen[s]
		assert.False(t, overlap, "booked slot %v also offered as free", s)
		seen[s] = struct{}{}
	}
	assert.Len(t, seen, 16)
}

func TestAvailableSlotsScopedToStaff(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Booking{
		SalonID:   "salon_a",
		StaffName: "James",
		Date:      "2026-03-02",
		TimeSlot:  540,
		Status:    model.BookingStatusConfirmed,
	}))

	slots, err := svc.AvailableSlots(ctx, "Maria", "salon_a", "2026-03-02")
	require.NoError(t, err)
	assert.Contains(t, slots, timeslot.Minutes(540))
}

func TestAvailableSlotsClosedDay(t *testing.T) {
	svc, _ := newTestService(t)

	// 2026-03-03 is a Tuesday; salon_weekdays only opens Mondays.
	slots, err := svc.AvailableSlots(context.Background(), "Maria", "salon_weekdays", "2026-03-03")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlotsInvalidDate(t *testing.T) {
	svc, _ := newTestService(t)

	for _, date := range []string{"03/02/2026", "not-a-date", ""} {
		_, err := svc.AvailableSlots(context.Background(), "Maria", "salon_a", date)
		require.Error(t, err, "date %q", date)
		assert.True(t, apperrors.IsValidation(err), "date %q should classify as validation, got %v", date, err)
	}
}

func TestAvailableSlotsUnknownSalon(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AvailableSlots(context.Background(), "Maria", "nope", "2026-03-02")
	assert.True(t, apperrors.IsNotFound(err))
}
