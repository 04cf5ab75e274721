package booking

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/glowdesk/booking-bot/internal/email"
	"github.com/glowdesk/booking-bot/internal/model"
	"github.com/glowdesk/booking-bot/internal/repository"
	"github.com/glowdesk/booking-bot/internal/service/salon"
	apperrors "github.com/glowdesk/booking-bot/pkg/errors"
	"github.com/glowdesk/booking-bot/pkg/metrics"
)

// Service commits reservations. Availability quoted earlier in the
// conversation is advisory only; the repository's atomic insert is the
// authority at commit time.
type Service struct {
	repo      repository.BookingRepository
	catalog   repository.CatalogRepository
	directory *salon.Directory
	notifier  email.Notifier
	metrics   *metrics.Metrics
	validate  *validator.Validate
}

func NewService(repo repository.BookingRepository, catalog repository.CatalogRepository, directory *salon.Directory, notifier email.Notifier, m *metrics.Metrics) *Service {
	return &Service{
		repo:      repo,
		catalog:   catalog,
		directory: directory,
		notifier:  notifier,
		metrics:   m,
		validate:  validator.New(),
	}
}

// Book validates and persists the reservation. A conflict error means
// the slot was lost to a concurrent booking between quoting and
// committing; the caller reports it and does not retry.
func (s *Service) Book(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	b := &model.Booking{
		ID:          uuid.New(),
		SalonID:     req.SalonID,
		ServiceID:   req.ServiceID,
		ServiceName: req.ServiceName,
		StaffName:   req.StaffName,
		Date:        req.Date,
		TimeSlot:    req.TimeSlot,
		Phone:       req.Phone,
		ContactName: req.ContactName,
		Status:      model.BookingStatusConfirmed,
		Source:      "chat",
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, b); err != nil {
		if apperrors.IsConflict(err) && s.metrics != nil {
			s.metrics.BookingConflicts.WithLabelValues(req.SalonID).Inc()
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingsConfirmed.WithLabelValues(req.SalonID).Inc()
	}

	s.notifyStaff(b)
	return b, nil
}

// ListAll exposes the booking log for admin tooling.
func (s *Service) ListAll(ctx context.Context) ([]model.Booking, error) {
	return s.repo.ListAll(ctx)
}

// notifyStaff emails the staff member about the new booking. Delivery
// is best effort; a failure is logged and never surfaced to the chat.
func (s *Service) notifyStaff(b *model.Booking) {
	if s.notifier == nil {
		return
	}

	staff, err := s.catalog.GetStaff(context.Background(), b.SalonID, b.StaffName)
	if err != nil || staff.Email == "" {
		return
	}
	salonName := b.SalonID
	if sal, err := s.directory.Get(b.SalonID); err == nil {
		salonName = sal.Name
	}

	go func() {
		if err := s.notifier.NotifyBooking(staff.Email, salonName, b); err != nil {
			log.Warn().Err(err).
				Str("salon", b.SalonID).
				Str("staff", b.StaffName).
				Msg("failed to send booking notification email")
		}
	}()
}
