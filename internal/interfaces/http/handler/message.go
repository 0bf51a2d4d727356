package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	messagingapp "github.com/Lmt310104/BookNow-BE-sub000/internal/application/messaging"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/interfaces/http/middleware"
)

// MessageHandler handles customer support chat endpoints
type MessageHandler struct {
	BaseHandler
	messageService *messagingapp.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageService *messagingapp.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// ChatTokenRequest optionally overrides the display name embedded in
// the chat token. Defaults to the account email.
type ChatTokenRequest struct {
	DisplayName string `json:"displayName" binding:"max=255"`
}

// Send godoc
// @Summary      Send a message to the shop
// @Description  Creates the customer's conversation on first contact.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        request body messagingapp.SendMessageRequest true "Message content"
// @Success      201 {object} dto.Response{data=messagingapp.MessageResponse}
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req messagingapp.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	message, err := h.messageService.CustomerSend(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, message)
}

// MyConversation godoc
// @Summary      Get the current user's conversation with the shop
// @Tags         messages
// @Produce      json
// @Success      200 {object} dto.Response{data=messagingapp.ConversationResponse}
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /messages/conversation [get]
func (h *MessageHandler) MyConversation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	conversation, err := h.messageService.GetCustomerConversation(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, conversation)
}

// ListConversations godoc
// @Summary      List customer conversations (admin)
// @Description  Sorted by most recent activity, with unread counts.
// @Tags         messages
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        take query int false "Items per page" default(10)
// @Success      200 {object} dto.PaginatedResponse{data=[]messagingapp.ConversationResponse}
// @Security     BearerAuth
// @Router       /messages/conversations [get]
func (h *MessageHandler) ListConversations(c *gin.Context) {
	var filter messagingapp.ConversationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	conversations, total, err := h.messageService.ListConversations(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, conversations, total, filter.Page, filter.Take)
}

// ListMessages godoc
// @Summary      Page through a conversation's messages
// @Description  Reading marks the counterpart's messages as read.
// @Tags         messages
// @Produce      json
// @Param        id path string true "Conversation ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        take query int false "Items per page" default(10)
// @Success      200 {object} dto.PaginatedResponse{data=[]messagingapp.MessageResponse}
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /messages/conversations/{id} [get]
func (h *MessageHandler) ListMessages(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid conversation ID format")
		return
	}

	var filter messagingapp.MessageListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	messages, total, err := h.messageService.ListMessages(c.Request.Context(), conversationID, userID, isAdmin(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, messages, total, filter.Page, filter.Take)
}

// ShopSend godoc
// @Summary      Reply to a customer conversation (admin)
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        id path string true "Conversation ID" format(uuid)
// @Param        request body messagingapp.SendMessageRequest true "Message content"
// @Success      201 {object} dto.Response{data=messagingapp.MessageResponse}
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /messages/conversations/{id} [post]
func (h *MessageHandler) ShopSend(c *gin.Context) {
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid conversation ID format")
		return
	}

	var req messagingapp.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	message, err := h.messageService.ShopSend(c.Request.Context(), conversationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, message)
}

// ChatToken godoc
// @Summary      Issue a token for the external chat widget
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        request body ChatTokenRequest false "Optional display name"
// @Success      200 {object} dto.Response{data=messagingapp.ChatTokenResponse}
// @Failure      502 {object} dto.ErrorResponse
// @Failure      503 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /messages/chat-token [post]
func (h *MessageHandler) ChatToken(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ChatTokenRequest
	// Body is optional.
	_ = c.ShouldBindJSON(&req)

	displayName := req.DisplayName
	if displayName == "" {
		displayName = middleware.GetJWTEmail(c)
	}

	token, err := h.messageService.IssueChatToken(c.Request.Context(), userID, displayName)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, token)
}
