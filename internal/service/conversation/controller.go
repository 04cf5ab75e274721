package conversation

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/glowdesk/booking-bot/internal/model"
	"github.com/glowdesk/booking-bot/internal/repository"
	"github.com/glowdesk/booking-bot/internal/service/availability"
	"github.com/glowdesk/booking-bot/internal/service/booking"
	"github.com/glowdesk/booking-bot/internal/service/salon"
	"github.com/glowdesk/booking-bot/internal/session"
	apperrors "github.com/glowdesk/booking-bot/pkg/errors"
	"github.com/glowdesk/booking-bot/pkg/metrics"
)

// event classes the controller dispatches on, together with the
// session step. Keywords act globally; numbers are interpreted against
// the step's menu; everything else gets the help prompt.
type eventKind int

const (
	eventGreeting eventKind = iota
	eventRestart
	eventNumber
	eventUnknown
)

// Controller drives the booking funnel. One call handles one inbound
// message end to end: it loads or creates the session, dispatches on
// (step, event), talks to the catalog, availability and booking
// collaborators, mutates the session and returns the reply text.
//
// Callers must serialize calls per phone (session.Store.Lock); calls
// for different phones are independent.
type Controller struct {
	sessions     *session.Store
	directory    *salon.Directory
	catalog      repository.CatalogRepository
	availability *availability.Service
	booking      *booking.Service
	metrics      *metrics.Metrics

	// now is replaceable in tests.
	now func() time.Time
}

func NewController(
	sessions *session.Store,
	directory *salon.Directory,
	catalog repository.CatalogRepository,
	availabilitySvc *availability.Service,
	bookingSvc *booking.Service,
	m *metrics.Metrics,
) *Controller {
	return &Controller{
		sessions:     sessions,
		directory:    directory,
		catalog:      catalog,
		availability: availabilitySvc,
		booking:      bookingSvc,
		metrics:      m,
		now:          time.Now,
	}
}

// Handle processes one inbound message already resolved to a tenant.
func (c *Controller) Handle(ctx context.Context, phone, contactName, text, salonID string, prov model.Provenance) string {
	sess, existed := c.sessions.Get(phone)
	if !existed {
		sess = model.NewSession(phone)
	}
	sess.SalonID = salonID
	sess.Provenance = prov
	if contactName != "" && contactName != "Unknown" {
		sess.ContactName = contactName
	}

	kind, number := classify(text)

	if c.metrics != nil {
		c.metrics.MessagesProcessed.WithLabelValues(salonID, string(sess.Step)).Inc()
		c.metrics.TenantResolutions.WithLabelValues(string(prov)).Inc()
	}

	reply, err := c.dispatch(ctx, sess, kind, number)
	if err != nil {
		// Abort policy: an unexpected fault clears the session and
		// apologizes; internal detail never reaches the chat.
		log.Error().Err(err).
			Str("phone", phone).
			Str("salon", salonID).
			Str("step", string(sess.Step)).
			Msg("conversation turn failed, aborting session")
		if c.metrics != nil {
			c.metrics.MessagesFailed.WithLabelValues(salonID).Inc()
		}
		c.sessions.Delete(phone)
		c.updateSessionGauge()
		return replyInternalError()
	}

	if sess.Step == model.StepDone {
		c.sessions.Delete(phone)
	} else {
		c.sessions.Put(sess)
	}
	c.updateSessionGauge()
	return reply
}

func (c *Controller) updateSessionGauge() {
	if c.metrics != nil {
		c.metrics.ActiveSessions.Set(float64(c.sessions.Count()))
	}
}

func (c *Controller) dispatch(ctx context.Context, sess *model.Session, kind eventKind, number int) (string, error) {
	switch kind {
	case eventRestart:
		sess.ResetSelections()
		return c.greet(ctx, sess)
	case eventGreeting:
		return c.greet(ctx, sess)
	case eventNumber:
		switch sess.Step {
		case model.StepAwaitService:
			return c.chooseService(ctx, sess, number)
		case model.StepAwaitStaff:
			return c.chooseStaff(ctx, sess, number)
		case model.StepAwaitDate:
			return c.chooseDate(ctx, sess, number)
		case model.StepAwaitTime:
			return c.chooseTime(ctx, sess, number)
		}
	}
	return c.help(sess), nil
}

// classify buckets the raw text into an event. Keyword matching is
// case-insensitive on the trimmed text; a "hi <token>" greeting is
// still a greeting here, the token was already consumed by the tenant
// resolver.
func classify(text string) (eventKind, int) {
	t := strings.ToLower(strings.TrimSpace(text))
	switch t {
	case "restart", "start":
		return eventRestart, 0
	case "hi", "hello":
		return eventGreeting, 0
	}
	if strings.HasPrefix(t, "hi ") || strings.HasPrefix(t, "hello ") {
		return eventGreeting, 0
	}
	if n, err := strconv.Atoi(t); err == nil && n > 0 {
		return eventNumber, n
	}
	return eventUnknown, 0
}

func (c *Controller) greet(ctx context.Context, sess *model.Session) (string, error) {
	sal, err := c.directory.Get(sess.SalonID)
	if err != nil {
		return "", err
	}

	services, err := c.catalog.ListServices(ctx, sess.SalonID)
	if err != nil {
		return "", err
	}
	if len(services) == 0 {
		sess.Step = model.StepGreeting
		return replyNoServices(sal.Name), nil
	}

	sess.ServiceMenu = services
	sess.Step = model.StepAwaitService
	return replyWelcome(sal.Name, services), nil
}

func (c *Controller) chooseService(ctx context.Context, sess *model.Session, n int) (string, error) {
	menu := sess.ServiceMenu
	if n < 1 || n > len(menu) {
		return replyInvalidService(menu), nil
	}
	selected := menu[n-1]

	staff, err := c.catalog.ListStaffForService(ctx, sess.SalonID, selected.ID)
	if err != nil {
		return "", err
	}
	if len(staff) == 0 {
		// Dead end: this service has nobody to perform it. Re-offer
		// the service list rather than leaving the session stuck.
		return replyNoStaff(menu), nil
	}

	sess.ServiceID = selected.ID
	sess.ServiceName = selected.Name
	sess.StaffMenu = staff
	sess.Step = model.StepAwaitStaff
	return replyStaffList(selected.Name, staff), nil
}

func (c *Controller) chooseStaff(_ context.Context, sess *model.Session, n int) (string, error) {
	menu := sess.StaffMenu
	if n < 1 || n > len(menu) {
		return replyInvalidStaff(menu), nil
	}

	sess.StaffName = menu[n-1].Name
	sess.Step = model.StepAwaitDate

	today, tomorrow := c.dateOptions(sess.SalonID)
	return replyDateOptions(sess.StaffName, today, tomorrow), nil
}

func (c *Controller) chooseDate(ctx context.Context, sess *model.Session, n int) (string, error) {
	today, tomorrow := c.dateOptions(sess.SalonID)

	var picked time.Time
	switch n {
	case 1:
		picked = today
	case 2:
		picked = tomorrow
	default:
		return replyInvalidDate(today, tomorrow), nil
	}

	date := picked.Format("2006-01-02")
	slots, err := c.availability.AvailableSlots(ctx, sess.StaffName, sess.SalonID, date)
	if err != nil {
		return "", err
	}
	if len(slots) == 0 {
		// Fall back to date selection; do not auto-advance to the
		// other date.
		sess.Date = ""
		sess.Step = model.StepAwaitDate
		return replyNoSlots(picked), nil
	}

	sess.Date = date
	sess.SlotMenu = slots
	sess.Step = model.StepAwaitTime
	return replySlotList(picked, slots), nil
}

func (c *Controller) chooseTime(ctx context.Context, sess *model.Session, n int) (string, error) {
	menu := sess.SlotMenu
	if n < 1 || n > len(menu) {
		return replyInvalidSlot(menu, mustParseDate(sess.Date)), nil
	}
	slot := menu[n-1]

	b, err := c.booking.Book(ctx, &model.BookingRequest{
		SalonID:     sess.SalonID,
		ServiceID:   sess.ServiceID,
		ServiceName: sess.ServiceName,
		StaffName:   sess.StaffName,
		Date:        sess.Date,
		TimeSlot:    slot,
		Phone:       sess.Phone,
		ContactName: sess.ContactName,
	})
	if err != nil {
		if apperrors.IsConflict(err) {
			// The slot was lost to a race between quoting and
			// committing. No retry, no alternate offer; the customer
			// starts over.
			sess.Step = model.StepDone
			return replyConflict(), nil
		}
		return "", err
	}

	salonName := sess.SalonID
	if sal, derr := c.directory.Get(sess.SalonID); derr == nil {
		salonName = sal.Name
	}

	sess.Step = model.StepDone
	return replyConfirmation(salonName, b, sess.ContactName), nil
}

func (c *Controller) help(sess *model.Session) string {
	salonName := sess.SalonID
	if sal, err := c.directory.Get(sess.SalonID); err == nil {
		salonName = sal.Name
	}
	return replyHelp(salonName)
}

// dateOptions returns today and tomorrow in the salon's timezone.
func (c *Controller) dateOptions(salonID string) (time.Time, time.Time) {
	loc := time.UTC
	if sal, err := c.directory.Get(salonID); err == nil {
		loc = sal.Location()
	}
	now := c.now().In(loc)
	return now, now.AddDate(0, 0, 1)
}

func mustParseDate(date string) time.Time {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}
	}
	return t
}
