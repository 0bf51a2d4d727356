package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/messaging"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// GormConversationRepository implements messaging.ConversationRepository using GORM
type GormConversationRepository struct {
	db *gorm.DB
}

// NewGormConversationRepository creates a new GormConversationRepository
func NewGormConversationRepository(db *gorm.DB) *GormConversationRepository {
	return &GormConversationRepository{db: db}
}

// FindByID finds a conversation by ID without messages
func (r *GormConversationRepository) FindByID(ctx context.Context, id uuid.UUID) (*messaging.Conversation, error) {
	var conversation messaging.Conversation
	if err := r.db.WithContext(ctx).First(&conversation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

// FindByCustomerID finds a customer's conversation
func (r *GormConversationRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) (*messaging.Conversation, error) {
	var conversation messaging.Conversation
	if err := r.db.WithContext(ctx).
		First(&conversation, "customer_id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

// FindAll lists conversations ordered by last activity
func (r *GormConversationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]messaging.Conversation, error) {
	var conversations []messaging.Conversation
	query := r.db.WithContext(ctx).Model(&messaging.Conversation{})

	if filter.Page > 0 && filter.Take > 0 {
		offset := (filter.Page - 1) * filter.Take
		query = query.Offset(offset).Limit(filter.Take)
	}

	sortField := ValidateSortField(filter.SortBy, ConversationSortFields, "last_message_at")
	orderDir := ValidateSortOrder(filter.Order)

	if err := query.Order(sortField + " " + orderDir).Find(&conversations).Error; err != nil {
		return nil, err
	}
	return conversations, nil
}

// FindMessages lists a conversation's messages, newest page first
func (r *GormConversationRepository) FindMessages(ctx context.Context, conversationID uuid.UUID, filter shared.Filter) ([]messaging.Message, error) {
	var messages []messaging.Message
	query := r.db.WithContext(ctx).
		Model(&messaging.Message{}).
		Where("conversation_id = ?", conversationID)

	if filter.Page > 0 && filter.Take > 0 {
		offset := (filter.Page - 1) * filter.Take
		query = query.Offset(offset).Limit(filter.Take)
	}

	orderDir := ValidateSortOrder(filter.Order)
	if err := query.Order("created_at " + orderDir).Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// Save creates or updates a conversation
func (r *GormConversationRepository) Save(ctx context.Context, conversation *messaging.Conversation) error {
	return r.db.WithContext(ctx).Omit("Messages").Save(conversation).Error
}

// SaveMessage appends a message
func (r *GormConversationRepository) SaveMessage(ctx context.Context, message *messaging.Message) error {
	return r.db.WithContext(ctx).Save(message).Error
}

// MarkRead marks every unread message from the given sender as read
func (r *GormConversationRepository) MarkRead(ctx context.Context, conversationID uuid.UUID, sender messaging.SenderKind) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&messaging.Message{}).
		Where("conversation_id = ? AND sender = ? AND read_at IS NULL", conversationID, sender).
		Update("read_at", now).Error
}

// CountUnread counts a conversation's unread messages from the given sender
func (r *GormConversationRepository) CountUnread(ctx context.Context, conversationID uuid.UUID, sender messaging.SenderKind) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&messaging.Message{}).
		Where("conversation_id = ? AND sender = ? AND read_at IS NULL", conversationID, sender).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountMessages counts a conversation's messages
func (r *GormConversationRepository) CountMessages(ctx context.Context, conversationID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&messaging.Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Count counts conversations matching the filter
func (r *GormConversationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&messaging.Conversation{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ messaging.ConversationRepository = (*GormConversationRepository)(nil)
