package repository

import (
	"context"

	"github.com/glowdesk/booking-bot/internal/model"
)

// All repository interfaces in one file
type (
	// CatalogRepository lists services and staff per tenant.
	CatalogRepository interface {
		ListServices(ctx context.Context, salonID string) ([]model.Service, error)
		GetService(ctx context.Context, salonID, serviceID string) (*model.Service, error)
		ListStaff(ctx context.Context, salonID string) ([]model.StaffMember, error)
		ListStaffForService(ctx context.Context, salonID, serviceID string) ([]model.StaffMember, error)
		GetStaff(ctx context.Context, salonID, name string) (*model.StaffMember, error)
	}

	// BookingRepository persists reservations. Create must be atomic
	// with respect to concurrent bookings of the same
	// (salon, staff, date, slot) tuple and return a conflict error when
	// the slot is already confirmed.
	BookingRepository interface {
		Create(ctx context.Context, booking *model.Booking) error
		ListForStaffDate(ctx context.Context, salonID, staffName, date string) ([]model.Booking, error)
		ListAll(ctx context.Context) ([]model.Booking, error)
	}
)
