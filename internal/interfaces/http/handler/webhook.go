package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	assistantapp "github.com/Lmt310104/BookNow-BE-sub000/internal/application/assistant"
)

// WebhookHandler handles assistant fulfillment callbacks
type WebhookHandler struct {
	BaseHandler
	webhookService *assistantapp.WebhookService
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(webhookService *assistantapp.WebhookService) *WebhookHandler {
	return &WebhookHandler{
		webhookService: webhookService,
	}
}

// Handle godoc
// @Summary      Assistant fulfillment webhook
// @Description  Resolves an intent into fulfillment messages. Always returns
// @Description  200 with a conversational reply so the bot flow never breaks.
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Param        request body assistantapp.WebhookRequest true "Fulfillment request"
// @Success      200 {object} assistantapp.WebhookResponse
// @Router       /assistant/webhook [post]
func (h *WebhookHandler) Handle(c *gin.Context) {
	var req assistantapp.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid webhook payload")
		return
	}

	// The webhook protocol expects the fulfillment response as the raw
	// body, not wrapped in the API envelope.
	resp := h.webhookService.Handle(c.Request.Context(), req)
	c.JSON(http.StatusOK, resp)
}
