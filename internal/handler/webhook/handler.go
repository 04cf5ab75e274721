package webhook

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/glowdesk/booking-bot/internal/handler"
	"github.com/glowdesk/booking-bot/internal/model"
	"github.com/glowdesk/booking-bot/internal/service/conversation"
	"github.com/glowdesk/booking-bot/internal/service/salon"
	"github.com/glowdesk/booking-bot/internal/service/tenant"
	"github.com/glowdesk/booking-bot/internal/session"
)

// Handler is the inbound chat entry point. It validates the envelope,
// resolves the tenant, serializes per phone and hands the turn to the
// conversation controller.
type Handler struct {
	sessions   *session.Store
	resolver   *tenant.Resolver
	controller *conversation.Controller
	directory  *salon.Directory
	accessLog  tenant.AccessLog
}

func NewHandler(
	sessions *session.Store,
	resolver *tenant.Resolver,
	controller *conversation.Controller,
	directory *salon.Directory,
	accessLog tenant.AccessLog,
) *Handler {
	return &Handler{
		sessions:   sessions,
		resolver:   resolver,
		controller: controller,
		directory:  directory,
		accessLog:  accessLog,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/webhook/whatsapp/:salon_id", h.HandleSalonWebhook)
	r.POST("/webhook/whatsapp", h.HandleLegacyWebhook)
	r.GET("/qr/:salon_id", h.HandleEntryPoint)
}

// HandleSalonWebhook receives one chat message scoped to a tenant by
// the URL. The tenant resolver still runs: an explicit "hi <token>"
// command in the message can rebind the conversation.
func (h *Handler) HandleSalonWebhook(c *gin.Context) {
	salonID := c.Param("salon_id")
	sal, err := h.directory.Get(salonID)
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse(fmt.Sprintf("salon %s not found", salonID)))
		return
	}

	h.handleMessage(c, sal.Phone)
}

// HandleLegacyWebhook is the tenant-less variant; the destination phone
// number carried in the envelope feeds the resolver's static mapping.
func (h *Handler) HandleLegacyWebhook(c *gin.Context) {
	h.handleMessage(c, "")
}

func (h *Handler) handleMessage(c *gin.Context, destPhone string) {
	var msg model.InboundMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("missing required data"))
		return
	}

	// Group chats are never answered.
	if msg.IsGroup() {
		c.JSON(http.StatusOK, model.Reply{Reply: nil})
		return
	}

	if destPhone == "" {
		destPhone = msg.To
	}

	phone := msg.SenderPhone()

	// One turn at a time per phone; concurrent messages for the same
	// customer would otherwise corrupt the session.
	unlock := h.sessions.Lock(phone)
	defer unlock()

	sess, _ := h.sessions.Get(phone)
	salonID, prov := h.resolver.Resolve(c.Request.Context(), msg.Body, sess, destPhone)

	log.Info().
		Str("phone", phone).
		Str("salon", salonID).
		Str("provenance", string(prov)).
		Msg("processing inbound message")

	reply := h.controller.Handle(c.Request.Context(), phone, msg.ContactName, msg.Body, salonID, prov)
	c.JSON(http.StatusOK, model.Reply{Reply: &reply})
}

// HandleEntryPoint is the tenant landing page visited from a QR code.
// Visiting it records the recent-access marker the resolver's weakest
// rule consults.
func (h *Handler) HandleEntryPoint(c *gin.Context) {
	salonID := c.Param("salon_id")
	sal, err := h.directory.Get(salonID)
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse(fmt.Sprintf("salon %s not found", salonID)))
		return
	}

	if h.accessLog != nil {
		if err := h.accessLog.Touch(c.Request.Context(), salonID); err != nil {
			log.Warn().Err(err).Str("salon", salonID).Msg("failed to record entry-point access")
		}
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"salon":   sal,
		"command": fmt.Sprintf("hi %s", sal.ID),
	}))
}
