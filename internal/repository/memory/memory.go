package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/glowdesk/booking-bot/internal/model"
	apperrors "github.com/glowdesk/booking-bot/pkg/errors"
)

// Repository is an in-memory implementation of the catalog and booking
// repositories, used in tests and when running without Postgres. The
// booking side provides the same atomicity guarantee as the database
// unique index, via a single mutex around check-then-reserve.
type Repository struct {
	mu       sync.Mutex
	services map[string][]model.Service     // salonID -> services
	staff    map[string][]model.StaffMember // salonID -> staff
	bookings map[uuid.UUID]model.Booking
	reserved map[string]struct{} // salon|staff|date|slot for confirmed bookings
}

func New() *Repository {
	return &Repository{
		services: make(map[string][]model.Service),
		staff:    make(map[string][]model.StaffMember),
		bookings: make(map[uuid.UUID]model.Booking),
		reserved: make(map[string]struct{}),
	}
}

// Seed loads catalog data, replacing whatever was there.
func (r *Repository) Seed(services []model.Service, staff []model.StaffMember) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services = make(map[string][]model.Service)
	r.staff = make(map[string][]model.StaffMember)
	for _, s := range services {
		r.services[s.SalonID] = append(r.services[s.SalonID], s)
	}
	for _, m := range staff {
		r.staff[m.SalonID] = append(r.staff[m.SalonID], m)
	}
}

func slotKey(salonID, staffName, date string, slot int) string {
	return fmt.Sprintf("%s|%s|%s|%d", salonID, staffName, date, slot)
}

func (r *Repository) ListServices(_ context.Context, salonID string) ([]model.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]model.Service(nil), r.services[salonID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Repository) GetService(_ context.Context, salonID, serviceID string) (*model.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.services[salonID] {
		if s.ID == serviceID {
			svc := s
			return &svc, nil
		}
	}
	return nil, apperrors.NotFound("service", nil)
}

func (r *Repository) ListStaff(_ context.Context, salonID string) ([]model.StaffMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]model.StaffMember(nil), r.staff[salonID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Repository) ListStaffForService(_ context.Context, salonID, serviceID string) ([]model.StaffMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.StaffMember
	for _, m := range r.staff[salonID] {
		if m.Offers(serviceID) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Repository) GetStaff(_ context.Context, salonID, name string) (*model.StaffMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.staff[salonID] {
		if m.Name == name {
			member := m
			return &member, nil
		}
	}
	return nil, apperrors.NotFound("staff member", nil)
}

func (r *Repository) Create(_ context.Context, booking *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := slotKey(booking.SalonID, booking.StaffName, booking.Date, int(booking.TimeSlot))
	if booking.Status == model.BookingStatusConfirmed {
		if _, taken := r.reserved[key]; taken {
			return apperrors.Conflict("time slot is already booked")
		}
	}

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}

	r.bookings[booking.ID] = *booking
	if booking.Status == model.BookingStatusConfirmed {
		r.reserved[key] = struct{}{}
	}
	return nil
}

func (r *Repository) ListForStaffDate(_ context.Context, salonID, staffName, date string) ([]model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Booking
	for _, b := range r.bookings {
		if b.SalonID == salonID && b.StaffName == staffName && b.Date == date && b.Status == model.BookingStatusConfirmed {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TimeSlot < out[j].TimeSlot })
	return out, nil
}

func (r *Repository) ListAll(_ context.Context) ([]model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
