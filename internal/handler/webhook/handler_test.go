package webhook

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdesk/booking-bot/internal/email"
	"github.com/glowdesk/booking-bot/internal/model"
	"github.com/glowdesk/booking-bot/internal/repository/memory"
	"github.com/glowdesk/booking-bot/internal/service/availability"
	"github.com/glowdesk/booking-bot/internal/service/booking"
	"github.com/glowdesk/booking-bot/internal/service/conversation"
	"github.com/glowdesk/booking-bot/internal/service/salon"
	"github.com/glowdesk/booking-bot/internal/service/tenant"
	"github.com/glowdesk/booking-bot/internal/session"
	"github.com/glowdesk/booking-bot/pkg/timeslot"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hours := make(map[time.Weekday]timeslot.Range)
	for d := time.Sunday; d <= time.Saturday; d++ {
		hours[d] = timeslot.Range{Open: 540, Close: 1020}
	}

	directory := salon.NewDirectory([]model.Salon{
		{ID: "salon_a", Name: "Glamour Cuts", Phone: "14155550101", Timezone: "UTC", SlotInterval: 30, Hours: hours, Active: true},
		{ID: "salon_b", Name: "Style Studio", Phone: "14155550102", Timezone: "UTC", SlotInterval: 30, Hours: hours, Active: true},
	})

	repo := memory.New()
	repo.Seed(
		[]model.Service{
			{ID: "svc_cut", SalonID: "salon_a", Name: "Haircut", Duration: 30, Price: 25},
			{ID: "svc_blow", SalonID: "salon_b", Name: "Blowout", Duration: 45, Price: 40},
		},
		[]model.StaffMember{
			{Name: "Maria", SalonID: "salon_a", ServiceIDs: []string{"svc_cut"}},
			{Name: "Priya", SalonID: "salon_b", ServiceIDs: []string{"svc_blow"}},
		},
	)

	sessions := session.NewStore(time.Minute)
	accessLog := tenant.NewMemoryAccessLog(time.Minute)
	resolver := tenant.NewResolver(directory, accessLog, "salon_a")
	availabilitySvc := availability.NewService(directory, repo)
	bookingSvc := booking.NewService(repo, repo, directory, email.NewNoopNotifier(), nil)
	controller := conversation.NewController(sessions, directory, repo, availabilitySvc, bookingSvc, nil)

	h := NewHandler(sessions, resolver, controller, directory, accessLog)
	engine := gin.New()
	h.RegisterRoutes(engine.Group(""))
	return engine
}

func post(t *testing.T, engine *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeReply(t *testing.T, w *httptest.ResponseRecorder) model.Reply {
	t.Helper()
	var reply model.Reply
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	return reply
}

func TestScopedWebhookGreeting(t *testing.T) {
	engine := newTestEngine(t)

	w := post(t, engine, "/webhook/whatsapp/salon_b", gin.H{
		"from": "555@c.us",
		"body": "hi",
	})

	require.Equal(t, http.StatusOK, w.Code)
	reply := decodeReply(t, w)
	require.NotNil(t, reply.Reply)
	assert.Contains(t, *reply.Reply, "Style Studio")
}

func TestScopedWebhookUnknownSalon(t *testing.T) {
	engine := newTestEngine(t)

	w := post(t, engine, "/webhook/whatsapp/salon_z", gin.H{
		"from": "555@c.us",
		"body": "hi",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWebhookMissingFields(t *testing.T) {
	engine := newTestEngine(t)

	w := post(t, engine, "/webhook/whatsapp/salon_a", gin.H{"from": "555@c.us"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(t, engine, "/webhook/whatsapp/salon_a", gin.H{"body": "hi"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookIgnoresGroupMessages(t *testing.T) {
	engine := newTestEngine(t)

	w := post(t, engine, "/webhook/whatsapp/salon_a", gin.H{
		"from":       "group123@g.us",
		"body":       "hi",
		"isGroupMsg": true,
	})

	require.Equal(t, http.StatusOK, w.Code)
	reply := decodeReply(t, w)
	assert.Nil(t, reply.Reply)
}

func TestLegacyWebhookRoutesByDestination(t *testing.T) {
	engine := newTestEngine(t)

	w := post(t, engine, "/webhook/whatsapp", gin.H{
		"from": "555@c.us",
		"body": "hi",
		"to":   "14155550102",
	})

	require.Equal(t, http.StatusOK, w.Code)
	reply := decodeReply(t, w)
	require.NotNil(t, reply.Reply)
	assert.Contains(t, *reply.Reply, "Style Studio")
}

func TestLegacyWebhookExplicitCommandWins(t *testing.T) {
	engine := newTestEngine(t)

	// The "hi salon_b" command overrides the destination mapping.
	w := post(t, engine, "/webhook/whatsapp", gin.H{
		"from": "555@c.us",
		"body": "hi salon_b",
		"to":   "14155550101",
	})

	require.Equal(t, http.StatusOK, w.Code)
	reply := decodeReply(t, w)
	require.NotNil(t, reply.Reply)
	assert.Contains(t, *reply.Reply, "Style Studio")
}

func TestEntryPointTouchesAccessLog(t *testing.T) {
	engine := newTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/qr/salon_b", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hi salon_b")

	// A tenant-less message right after the visit binds to the visited
	// salon via the recent-access marker.
	resp := post(t, engine, "/webhook/whatsapp", gin.H{
		"from": "555@c.us",
		"body": "hi",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	reply := decodeReply(t, resp)
	require.NotNil(t, reply.Reply)
	assert.Contains(t, *reply.Reply, "Style Studio")
}

func TestEntryPointUnknownSalon(t *testing.T) {
	engine := newTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/qr/salon_z", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
