package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/cart"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/catalog"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/identity"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/order"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// CheckoutStore commits the order, its items and the cart clear in one
// transaction.
type CheckoutStore interface {
	CheckoutTx(ctx context.Context, o *order.Order, cartID uuid.UUID) error
}

// Notifier delivers order notifications out of band. Failures are
// logged and never fail the operation that triggered them.
type Notifier interface {
	// SendOrderConfirmation emails the customer after checkout
	SendOrderConfirmation(ctx context.Context, email string, o *order.Order) error

	// SendStatusUpdate texts the customer when the order status changes
	SendStatusUpdate(ctx context.Context, phone string, orderID uuid.UUID, status order.Status) error
}

// OrderService handles checkout and the order lifecycle
type OrderService struct {
	orderRepo     order.OrderRepository
	cartRepo      cart.CartRepository
	bookRepo      catalog.BookRepository
	userRepo      identity.UserRepository
	checkoutStore CheckoutStore
	notifier      Notifier
	logger        *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo order.OrderRepository,
	cartRepo cart.CartRepository,
	bookRepo catalog.BookRepository,
	userRepo identity.UserRepository,
	checkoutStore CheckoutStore,
	notifier Notifier,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		cartRepo:      cartRepo,
		bookRepo:      bookRepo,
		userRepo:      userRepo,
		checkoutStore: checkoutStore,
		notifier:      notifier,
		logger:        logger,
	}
}

// Checkout converts the user's cart into a pending order. Each line
// snapshots the book's title and effective price at this moment; the
// cart is cleared in the same transaction. Stock is not decremented
// here; it moves through inventory entries.
func (s *OrderService) Checkout(ctx context.Context, userID uuid.UUID, req CheckoutRequest) (*OrderResponse, error) {
	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrEmptyCart
		}
		return nil, err
	}
	if c.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}

	bookIDs := make([]uuid.UUID, 0, len(c.Items))
	for i := range c.Items {
		bookIDs = append(bookIDs, c.Items[i].BookID)
	}

	books, err := s.bookRepo.FindByIDs(ctx, bookIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Book, len(books))
	for i := range books {
		byID[books[i].ID] = &books[i]
	}

	lines := make([]order.Line, 0, len(c.Items))
	for i := range c.Items {
		item := &c.Items[i]
		book, ok := byID[item.BookID]
		if !ok {
			return nil, shared.NewDomainError("NOT_FOUND", "A book in the cart no longer exists")
		}
		if item.Quantity == 0 {
			continue // out-of-stock line kept in the cart for display only
		}
		lines = append(lines, order.Line{
			BookID:    book.ID,
			BookTitle: book.Title,
			UnitPrice: book.EffectivePrice().Amount(),
			Quantity:  item.Quantity,
		})
	}

	o, err := order.NewOrder(userID, order.ShippingInfo{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.ShippingAddress,
	}, lines)
	if err != nil {
		return nil, err
	}

	if err := s.checkoutStore.CheckoutTx(ctx, o, c.ID); err != nil {
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.String("order_id", o.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("total", o.TotalPrice.String()))

	s.notifyConfirmation(ctx, userID, o)

	response := ToOrderResponse(o)
	return &response, nil
}

// GetByID returns an order. Customers only see their own orders.
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID, requesterID uuid.UUID, isAdmin bool) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.UserID != requesterID {
		return nil, shared.ErrForbidden
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// List returns orders. Customers are always scoped to their own.
func (s *OrderService) List(ctx context.Context, requesterID uuid.UUID, isAdmin bool, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:    filter.Page,
		Take:    filter.Take,
		SortBy:  filter.SortBy,
		Order:   filter.Order,
		Filters: make(map[string]interface{}),
	}
	domainFilter.Normalize()

	if !isAdmin {
		domainFilter.Filters["user_id"] = requesterID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderResponses(orders), total, nil
}

// UpdateStatus moves an order to the next lifecycle state (admin only).
// Delivery bumps each book's sold counter.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	next := order.Status(req.Status)
	if err := o.TransitionTo(next); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	if next == order.StatusDelivered {
		s.recordSales(ctx, o)
	}

	s.logger.Info("Order status changed",
		zap.String("order_id", o.ID.String()),
		zap.String("status", string(next)))

	s.notifyStatusUpdate(ctx, o)

	response := ToOrderResponse(o)
	return &response, nil
}

// Cancel lets a customer cancel their own order while it is still
// pending or processing.
func (s *OrderService) Cancel(ctx context.Context, orderID, requesterID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != requesterID {
		return nil, shared.ErrForbidden
	}

	if err := o.Cancel(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("Order cancelled by customer",
		zap.String("order_id", o.ID.String()))

	s.notifyStatusUpdate(ctx, o)

	response := ToOrderResponse(o)
	return &response, nil
}

func (s *OrderService) recordSales(ctx context.Context, o *order.Order) {
	for i := range o.Items {
		item := &o.Items[i]
		book, err := s.bookRepo.FindByID(ctx, item.BookID)
		if err != nil {
			s.logger.Warn("Delivered book no longer in catalog",
				zap.String("book_id", item.BookID.String()), zap.Error(err))
			continue
		}
		book.RecordSold(item.Quantity)
		if err := s.bookRepo.Save(ctx, book); err != nil {
			s.logger.Error("Failed to update sold counter",
				zap.String("book_id", book.ID.String()), zap.Error(err))
		}
	}
}

func (s *OrderService) notifyConfirmation(ctx context.Context, userID uuid.UUID, o *order.Order) {
	if s.notifier == nil {
		return
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("Cannot notify: user lookup failed", zap.Error(err))
		return
	}
	if err := s.notifier.SendOrderConfirmation(ctx, user.Email, o); err != nil {
		s.logger.Warn("Order confirmation email failed",
			zap.String("order_id", o.ID.String()), zap.Error(err))
	}
}

func (s *OrderService) notifyStatusUpdate(ctx context.Context, o *order.Order) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendStatusUpdate(ctx, o.PhoneNumber, o.ID, o.Status); err != nil {
		s.logger.Warn("Order status SMS failed",
			zap.String("order_id", o.ID.String()), zap.Error(err))
	}
}
