package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/catalog"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/order"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// Intent names the conversational-AI platform is configured with
const (
	IntentBookSearch    = "book.search"
	IntentBookDetail    = "book.detail"
	IntentBookRecommend = "book.recommend"
	IntentOrderLookup   = "order.lookup"
)

const searchResultLimit = 5

// Summarizer produces a short natural-language blurb for a book via
// the external generative-AI service.
type Summarizer interface {
	Summarize(ctx context.Context, title, description string) (string, error)
}

// WebhookService fulfills chatbot intents. Every intent resolves to a
// reply; lookup failures become apologetic text rather than webhook
// errors so the conversation keeps flowing.
type WebhookService struct {
	bookRepo   catalog.BookRepository
	orderRepo  order.OrderRepository
	summarizer Summarizer
	logger     *zap.Logger
}

// NewWebhookService creates a new WebhookService
func NewWebhookService(
	bookRepo catalog.BookRepository,
	orderRepo order.OrderRepository,
	summarizer Summarizer,
	logger *zap.Logger,
) *WebhookService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookService{
		bookRepo:   bookRepo,
		orderRepo:  orderRepo,
		summarizer: summarizer,
		logger:     logger,
	}
}

// Handle dispatches the webhook request to its intent handler
func (s *WebhookService) Handle(ctx context.Context, req WebhookRequest) WebhookResponse {
	intent := req.QueryResult.Intent.DisplayName
	params := req.QueryResult.Parameters

	switch intent {
	case IntentBookSearch:
		return s.searchBooks(ctx, stringParam(params, "title", "query"))
	case IntentBookDetail:
		return s.bookDetail(ctx, stringParam(params, "title", "query"))
	case IntentBookRecommend:
		return s.recommendBooks(ctx)
	case IntentOrderLookup:
		return s.lookupOrder(ctx, stringParam(params, "orderId", "order_id"))
	default:
		s.logger.Debug("Unhandled webhook intent", zap.String("intent", intent))
		return textResponse("Sorry, I didn't catch that. You can ask me to find books, recommend something, or check an order.")
	}
}

func (s *WebhookService) searchBooks(ctx context.Context, query string) WebhookResponse {
	if query == "" {
		return textResponse("Which book are you looking for?")
	}

	books, err := s.findBooks(ctx, shared.Filter{Take: searchResultLimit, Search: query})
	if err != nil {
		s.logger.Error("Webhook book search failed", zap.String("query", query), zap.Error(err))
		return textResponse("Something went wrong while searching. Please try again.")
	}
	if len(books) == 0 {
		return textResponse(fmt.Sprintf("I couldn't find any books matching %q.", query))
	}

	return cardsResponse(
		fmt.Sprintf("Here's what I found for %q:", query),
		s.bookCards(books),
	)
}

func (s *WebhookService) bookDetail(ctx context.Context, title string) WebhookResponse {
	if title == "" {
		return textResponse("Which book would you like to know more about?")
	}

	books, err := s.findBooks(ctx, shared.Filter{Take: 1, Search: title})
	if err != nil || len(books) == 0 {
		return textResponse(fmt.Sprintf("I couldn't find a book called %q.", title))
	}
	book := &books[0]

	lines := []string{
		fmt.Sprintf("%s costs %s VND.", book.Title, book.EffectivePrice().Amount().StringFixed(0)),
	}
	if book.InStock() {
		lines = append(lines, fmt.Sprintf("%d copies are in stock.", book.StockQuantity))
	} else {
		lines = append(lines, "It is currently out of stock.")
	}
	if book.TotalReviews > 0 {
		lines = append(lines, fmt.Sprintf("Readers rate it %s out of 5 across %d reviews.",
			book.AvgStars.StringFixed(1), book.TotalReviews))
	}

	if summary := s.summarize(ctx, book); summary != "" {
		lines = append(lines, summary)
	}

	return textResponse(lines...)
}

func (s *WebhookService) recommendBooks(ctx context.Context) WebhookResponse {
	books, err := s.findBooks(ctx, shared.Filter{
		Take:   searchResultLimit,
		SortBy: "sold_quantity",
		Order:  "DESC",
	})
	if err != nil {
		s.logger.Error("Webhook recommendation failed", zap.Error(err))
		return textResponse("Something went wrong while looking up recommendations.")
	}
	if len(books) == 0 {
		return textResponse("I don't have any recommendations right now.")
	}

	return cardsResponse("Our readers' current favorites:", s.bookCards(books))
}

func (s *WebhookService) lookupOrder(ctx context.Context, rawID string) WebhookResponse {
	orderID, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return textResponse("Please give me the order ID you'd like me to check.")
	}

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return textResponse(fmt.Sprintf("I couldn't find an order with ID %s.", orderID))
	}

	return textResponse(fmt.Sprintf(
		"Order %s is %s. It has %d books for a total of %s VND.",
		shortID(o.ID), o.Status, o.ItemCount(), o.TotalPrice.StringFixed(0),
	))
}

func (s *WebhookService) findBooks(ctx context.Context, filter shared.Filter) ([]catalog.Book, error) {
	filter.Filters = map[string]interface{}{"status": string(catalog.BookStatusActive)}
	filter.Normalize()
	return s.bookRepo.FindAll(ctx, filter)
}

func (s *WebhookService) bookCards(books []catalog.Book) []Card {
	cards := make([]Card, len(books))
	for i := range books {
		book := &books[i]
		card := Card{
			Type:     "info",
			Title:    book.Title,
			Subtitle: fmt.Sprintf("%s VND", book.EffectivePrice().Amount().StringFixed(0)),
		}
		if len(book.CoverURLs) > 0 {
			card.ImageURL = book.CoverURLs[0]
		}
		cards[i] = card
	}
	return cards
}

// summarize asks the generative service for a blurb. A missing or
// failing summarizer just means no blurb.
func (s *WebhookService) summarize(ctx context.Context, book *catalog.Book) string {
	if s.summarizer == nil || book.Description == "" {
		return ""
	}
	summary, err := s.summarizer.Summarize(ctx, book.Title, book.Description)
	if err != nil {
		s.logger.Warn("Book summarization failed",
			zap.String("book_id", book.ID.String()), zap.Error(err))
		return ""
	}
	return summary
}

// stringParam returns the first non-empty string parameter among keys
func stringParam(params map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if value, ok := params[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

func shortID(id uuid.UUID) string {
	return strings.Split(id.String(), "-")[0]
}
