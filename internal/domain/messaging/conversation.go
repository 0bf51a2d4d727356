package messaging

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// SenderKind identifies which side of a conversation sent a message
type SenderKind string

const (
	SenderCustomer SenderKind = "customer"
	SenderShop     SenderKind = "shop"
)

// Conversation is a chat thread between one customer and the shop
type Conversation struct {
	shared.BaseEntity
	CustomerID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	LastMessageAt *time.Time
	Messages      []Message `gorm:"foreignKey:ConversationID"`
}

// TableName returns the table name for GORM
func (Conversation) TableName() string {
	return "conversations"
}

// Message is one chat message inside a conversation
type Message struct {
	shared.BaseEntity
	ConversationID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Sender         SenderKind `gorm:"type:varchar(20);not null"`
	Content        string     `gorm:"type:text;not null"`
	ReadAt         *time.Time
}

// TableName returns the table name for GORM
func (Message) TableName() string {
	return "messages"
}

// NewConversation opens a conversation for a customer
func NewConversation(customerID uuid.UUID) (*Conversation, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Conversation must belong to a customer")
	}
	return &Conversation{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
	}, nil
}

// Append adds a message to the conversation and bumps LastMessageAt
func (c *Conversation) Append(sender SenderKind, content string) (*Message, error) {
	if content == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Message content cannot be empty")
	}
	if sender != SenderCustomer && sender != SenderShop {
		return nil, shared.NewDomainError("INVALID_SENDER", "Unknown message sender")
	}

	msg := Message{
		BaseEntity:     shared.NewBaseEntity(),
		ConversationID: c.ID,
		Sender:         sender,
		Content:        content,
	}
	c.Messages = append(c.Messages, msg)
	now := time.Now()
	c.LastMessageAt = &now
	c.UpdatedAt = now

	return &c.Messages[len(c.Messages)-1], nil
}

// ConversationRepository defines the interface for chat persistence
type ConversationRepository interface {
	// FindByID finds a conversation by ID (without messages)
	FindByID(ctx context.Context, id uuid.UUID) (*Conversation, error)

	// FindByCustomerID finds a customer's conversation.
	// Returns shared.ErrNotFound when none exists yet.
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) (*Conversation, error)

	// FindAll lists conversations ordered by last activity
	FindAll(ctx context.Context, filter shared.Filter) ([]Conversation, error)

	// FindMessages lists a conversation's messages, newest page first
	FindMessages(ctx context.Context, conversationID uuid.UUID, filter shared.Filter) ([]Message, error)

	// Save creates or updates a conversation
	Save(ctx context.Context, conversation *Conversation) error

	// SaveMessage appends a message
	SaveMessage(ctx context.Context, message *Message) error

	// MarkRead marks every unread message from the given sender as read
	MarkRead(ctx context.Context, conversationID uuid.UUID, sender SenderKind) error

	// CountUnread counts a conversation's unread messages from the given sender
	CountUnread(ctx context.Context, conversationID uuid.UUID, sender SenderKind) (int64, error)

	// CountMessages counts a conversation's messages
	CountMessages(ctx context.Context, conversationID uuid.UUID) (int64, error)

	// Count counts conversations matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
