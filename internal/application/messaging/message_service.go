package messaging

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/messaging"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// TokenIssuer mints chat tokens against the external chat provider so
// the frontend can open its realtime connection.
type TokenIssuer interface {
	IssueToken(ctx context.Context, userID uuid.UUID, displayName string) (string, error)
}

// MessageService handles customer/shop chat threads
type MessageService struct {
	conversationRepo messaging.ConversationRepository
	tokenIssuer      TokenIssuer
	logger           *zap.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(conversationRepo messaging.ConversationRepository, tokenIssuer TokenIssuer, logger *zap.Logger) *MessageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageService{
		conversationRepo: conversationRepo,
		tokenIssuer:      tokenIssuer,
		logger:           logger,
	}
}

// CustomerSend posts a message from the customer to their own thread,
// opening the thread on first contact.
func (s *MessageService) CustomerSend(ctx context.Context, customerID uuid.UUID, req SendMessageRequest) (*MessageResponse, error) {
	conversation, err := s.findOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.append(ctx, conversation, messaging.SenderCustomer, req.Content)
}

// ShopSend posts a staff reply into an existing thread
func (s *MessageService) ShopSend(ctx context.Context, conversationID uuid.UUID, req SendMessageRequest) (*MessageResponse, error) {
	conversation, err := s.conversationRepo.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return s.append(ctx, conversation, messaging.SenderShop, req.Content)
}

// GetCustomerConversation returns the customer's thread with the count
// of shop messages they have not read yet. Customers with no thread get
// one opened.
func (s *MessageService) GetCustomerConversation(ctx context.Context, customerID uuid.UUID) (*ConversationResponse, error) {
	conversation, err := s.findOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}

	unread, err := s.conversationRepo.CountUnread(ctx, conversation.ID, messaging.SenderShop)
	if err != nil {
		return nil, err
	}

	response := ToConversationResponse(conversation, unread)
	return &response, nil
}

// ListConversations lists threads for the staff inbox, most recent
// activity first, with per-thread unread customer message counts.
func (s *MessageService) ListConversations(ctx context.Context, filter ConversationListFilter) ([]ConversationResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:   filter.Page,
		Take:   filter.Take,
		SortBy: "last_message_at",
		Order:  "DESC",
	}
	domainFilter.Normalize()

	conversations, err := s.conversationRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.conversationRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ConversationResponse, len(conversations))
	for i := range conversations {
		unread, err := s.conversationRepo.CountUnread(ctx, conversations[i].ID, messaging.SenderCustomer)
		if err != nil {
			return nil, 0, err
		}
		responses[i] = ToConversationResponse(&conversations[i], unread)
	}

	return responses, total, nil
}

// ListMessages pages through a thread's messages and marks the other
// side's messages as read. Customers can only read their own thread.
func (s *MessageService) ListMessages(ctx context.Context, conversationID, requesterID uuid.UUID, isAdmin bool, filter MessageListFilter) ([]MessageResponse, int64, error) {
	conversation, err := s.conversationRepo.FindByID(ctx, conversationID)
	if err != nil {
		return nil, 0, err
	}
	if !isAdmin && conversation.CustomerID != requesterID {
		return nil, 0, shared.ErrForbidden
	}

	domainFilter := shared.Filter{
		Page:   filter.Page,
		Take:   filter.Take,
		SortBy: "created_at",
		Order:  "DESC",
	}
	domainFilter.Normalize()

	messages, err := s.conversationRepo.FindMessages(ctx, conversationID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.conversationRepo.CountMessages(ctx, conversationID)
	if err != nil {
		return nil, 0, err
	}

	// Reading the thread clears the other side's unread counter.
	counterpart := messaging.SenderShop
	if isAdmin {
		counterpart = messaging.SenderCustomer
	}
	if err := s.conversationRepo.MarkRead(ctx, conversationID, counterpart); err != nil {
		s.logger.Warn("Failed to mark messages read",
			zap.String("conversation_id", conversationID.String()), zap.Error(err))
	}

	return ToMessageResponses(messages), total, nil
}

// IssueChatToken mints a token for the frontend chat widget
func (s *MessageService) IssueChatToken(ctx context.Context, userID uuid.UUID, displayName string) (*ChatTokenResponse, error) {
	if s.tokenIssuer == nil {
		return nil, shared.NewDomainError("CHAT_DISABLED", "Chat token service is not configured")
	}

	token, err := s.tokenIssuer.IssueToken(ctx, userID, displayName)
	if err != nil {
		s.logger.Error("Chat token issuance failed",
			zap.String("user_id", userID.String()), zap.Error(err))
		return nil, shared.NewDomainError("CHAT_TOKEN_FAILED", "Could not issue a chat token")
	}

	return &ChatTokenResponse{Token: token}, nil
}

func (s *MessageService) findOrCreate(ctx context.Context, customerID uuid.UUID) (*messaging.Conversation, error) {
	conversation, err := s.conversationRepo.FindByCustomerID(ctx, customerID)
	if err == nil {
		return conversation, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	conversation, err = messaging.NewConversation(customerID)
	if err != nil {
		return nil, err
	}
	if err := s.conversationRepo.Save(ctx, conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

func (s *MessageService) append(ctx context.Context, conversation *messaging.Conversation, sender messaging.SenderKind, content string) (*MessageResponse, error) {
	msg, err := conversation.Append(sender, content)
	if err != nil {
		return nil, err
	}

	if err := s.conversationRepo.SaveMessage(ctx, msg); err != nil {
		return nil, err
	}
	if err := s.conversationRepo.Save(ctx, conversation); err != nil {
		return nil, err
	}

	response := ToMessageResponse(msg)
	return &response, nil
}
