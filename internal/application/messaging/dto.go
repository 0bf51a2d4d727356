package messaging

import (
	"time"

	"github.com/google/uuid"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/messaging"
)

// SendMessageRequest is the payload for posting a chat message
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// ConversationListFilter captures conversation list query parameters
type ConversationListFilter struct {
	Page int `form:"page"`
	Take int `form:"take"`
}

// MessageListFilter captures message page query parameters
type MessageListFilter struct {
	Page int `form:"page"`
	Take int `form:"take"`
}

// MessageResponse is the API representation of a chat message
type MessageResponse struct {
	ID             uuid.UUID  `json:"id"`
	ConversationID uuid.UUID  `json:"conversationId"`
	Sender         string     `json:"sender"`
	Content        string     `json:"content"`
	ReadAt         *time.Time `json:"readAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// ConversationResponse is the API representation of a chat thread.
// UnreadCount counts messages the requesting side has not read yet.
type ConversationResponse struct {
	ID            uuid.UUID  `json:"id"`
	CustomerID    uuid.UUID  `json:"customerId"`
	LastMessageAt *time.Time `json:"lastMessageAt,omitempty"`
	UnreadCount   int64      `json:"unreadCount"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// ChatTokenResponse carries a token minted by the external chat provider
type ChatTokenResponse struct {
	Token string `json:"token"`
}

// ToMessageResponse converts a domain message to its API representation
func ToMessageResponse(m *messaging.Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Sender:         string(m.Sender),
		Content:        m.Content,
		ReadAt:         m.ReadAt,
		CreatedAt:      m.CreatedAt,
	}
}

// ToMessageResponses converts a slice of domain messages
func ToMessageResponses(messages []messaging.Message) []MessageResponse {
	responses := make([]MessageResponse, len(messages))
	for i := range messages {
		responses[i] = ToMessageResponse(&messages[i])
	}
	return responses
}

// ToConversationResponse converts a domain conversation to its API representation
func ToConversationResponse(c *messaging.Conversation, unread int64) ConversationResponse {
	return ConversationResponse{
		ID:            c.ID,
		CustomerID:    c.CustomerID,
		LastMessageAt: c.LastMessageAt,
		UnreadCount:   unread,
		CreatedAt:     c.CreatedAt,
	}
}
