package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/glowdesk/booking-bot/pkg/timeslot"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a committed reservation of a staff member's time. The tuple
// (salon_id, staff_name, date, time_slot) is unique among confirmed
// bookings; that is the one hard consistency invariant of the system.
type Booking struct {
	ID          uuid.UUID        `db:"id" json:"id"`
	SalonID     string           `db:"salon_id" json:"salon_id"`
	ServiceID   string           `db:"service_id" json:"service_id"`
	ServiceName string           `db:"service_name" json:"service_name"`
	StaffName   string           `db:"staff_name" json:"staff_name"`
	Date        string           `db:"date" json:"date"` // YYYY-MM-DD
	TimeSlot    timeslot.Minutes `db:"time_slot" json:"time_slot"`
	Phone       string           `db:"phone" json:"phone"`
	ContactName string           `db:"contact_name" json:"contact_name"`
	Status      BookingStatus    `db:"status" json:"status"`
	Source      string           `db:"source" json:"source"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
}

// BookingRequest carries everything the transaction needs to commit.
type BookingRequest struct {
	SalonID     string           `json:"salon_id" validate:"required"`
	ServiceID   string           `json:"service_id" validate:"required"`
	ServiceName string           `json:"service_name"`
	StaffName   string           `json:"staff_name" validate:"required"`
	Date        string           `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot    timeslot.Minutes `json:"time_slot" validate:"min=0,max=1439"`
	Phone       string           `json:"phone" validate:"required"`
	ContactName string           `json:"contact_name"`
}
