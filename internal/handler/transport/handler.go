package transport

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/glowdesk/booking-bot/internal/handler"
	apperrors "github.com/glowdesk/booking-bot/pkg/errors"
	"github.com/glowdesk/booking-bot/pkg/metrics"
	"github.com/glowdesk/booking-bot/pkg/whatsapp"
)

// Handler proxies outbound messages to the WhatsApp bridge so admin
// tooling can message customers without talking to the bridge directly.
type Handler struct {
	client  *whatsapp.Client
	metrics *metrics.Metrics
}

func NewHandler(client *whatsapp.Client, m *metrics.Metrics) *Handler {
	return &Handler{client: client, metrics: m}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/messages", h.SendMessage)
}

type sendMessageRequest struct {
	To      string `json:"to" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("to and message are required"))
		return
	}

	start := time.Now()
	err := h.client.Send(c.Request.Context(), req.To, req.Message)
	if h.metrics != nil {
		h.metrics.TransportLatency.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if h.metrics != nil {
			h.metrics.TransportErrors.Inc()
		}
		log.Error().Err(err).Str("to", req.To).Msg("outbound message failed")
		if apperrors.IsUpstream(err) {
			c.JSON(http.StatusServiceUnavailable, handler.NewErrorResponse("message delivery unavailable"))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to send message"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"delivered": true}))
}
