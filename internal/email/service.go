package email

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/glowdesk/booking-bot/internal/model"
)

// Notifier delivers booking notifications to staff.
type Notifier interface {
	NotifyBooking(to string, salonName string, booking *model.Booking) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPNotifier(cfg Config) Notifier {
	return &smtpNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (n *smtpNotifier) NotifyBooking(to string, salonName string, b *model.Booking) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("New booking at %s: %s on %s", salonName, b.ServiceName, b.Date))
	m.SetBody("text/plain", fmt.Sprintf(
		"You have a new booking.\n\nSalon: %s\nService: %s\nDate: %s\nTime: %s\nCustomer: %s (%s)\n",
		salonName, b.ServiceName, b.Date, b.TimeSlot.Format(), b.ContactName, b.Phone,
	))

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send booking notification: %w", err)
	}
	return nil
}

type noopNotifier struct{}

// NewNoopNotifier is used when SMTP is not configured.
func NewNoopNotifier() Notifier { return noopNotifier{} }

func (noopNotifier) NotifyBooking(string, string, *model.Booking) error { return nil }
