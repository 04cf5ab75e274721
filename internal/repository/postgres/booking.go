package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/glowdesk/booking-bot/internal/model"
	apperrors "github.com/glowdesk/booking-bot/pkg/errors"
)

const uniqueViolation = "23505"

type bookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepository(db *sqlx.DB) *bookingRepository {
	return &bookingRepository{db: db}
}

// Create inserts the booking. The partial unique index over
// (salon_id, staff_name, date, time_slot) WHERE status = 'confirmed'
// makes the check-then-reserve atomic: a concurrent winner causes a
// unique violation here, which is reported as a conflict.
func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (
			id, salon_id, service_id, service_name, staff_name,
			date, time_slot, phone, contact_name,
			status, source, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.SalonID,
		booking.ServiceID,
		booking.ServiceName,
		booking.StaffName,
		booking.Date,
		booking.TimeSlot,
		booking.Phone,
		booking.ContactName,
		booking.Status,
		booking.Source,
		booking.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return apperrors.Conflict("time slot is already booked")
		}
		return apperrors.Upstream("failed to create booking", err)
	}
	return nil
}

func (r *bookingRepository) ListForStaffDate(ctx context.Context, salonID, staffName, date string) ([]model.Booking, error) {
	query := `
		SELECT id, salon_id, service_id, service_name, staff_name,
			   date, time_slot, phone, contact_name,
			   status, source, created_at
		FROM bookings
		WHERE salon_id = $1 AND staff_name = $2 AND date = $3 AND status = 'confirmed'
		ORDER BY time_slot ASC
	`
	var bookings []model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, salonID, staffName, date); err != nil {
		return nil, apperrors.Upstream(fmt.Sprintf("failed to list bookings for %s on %s", staffName, date), err)
	}
	return bookings, nil
}

func (r *bookingRepository) ListAll(ctx context.Context) ([]model.Booking, error) {
	query := `
		SELECT id, salon_id, service_id, service_name, staff_name,
			   date, time_slot, phone, contact_name,
			   status, source, created_at
		FROM bookings
		ORDER BY created_at DESC
	`
	var bookings []model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query); err != nil {
		return nil, apperrors.Upstream("failed to list bookings", err)
	}
	return bookings, nil
}
