package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/cart"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/catalog"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/identity"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/order"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByUserBefore(ctx context.Context, userID uuid.UUID, before time.Time) (int64, error) {
	args := m.Called(ctx, userID, before)
	return args.Get(0).(int64), args.Error(1)
}

// MockCartRepository is a mock implementation of cart.CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteItems(ctx context.Context, cartID uuid.UUID) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBookRepository is a mock implementation of catalog.BookRepository
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Book), args.Error(1)
}

func (m *MockBookRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Book, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Book), args.Error(1)
}

func (m *MockBookRepository) FindByISBN(ctx context.Context, isbn string) (*catalog.Book, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Book), args.Error(1)
}

func (m *MockBookRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Book, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Book), args.Error(1)
}

func (m *MockBookRepository) Save(ctx context.Context, book *catalog.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	args := m.Called(ctx, isbn)
	return args.Bool(0), args.Error(1)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockCheckoutStore is a mock implementation of CheckoutStore
type MockCheckoutStore struct {
	mock.Mock
}

func (m *MockCheckoutStore) CheckoutTx(ctx context.Context, o *order.Order, cartID uuid.UUID) error {
	args := m.Called(ctx, o, cartID)
	return args.Error(0)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendOrderConfirmation(ctx context.Context, email string, o *order.Order) error {
	args := m.Called(ctx, email, o)
	return args.Error(0)
}

func (m *MockNotifier) SendStatusUpdate(ctx context.Context, phone string, orderID uuid.UUID, status order.Status) error {
	args := m.Called(ctx, phone, orderID, status)
	return args.Error(0)
}

type orderServiceMocks struct {
	orderRepo     *MockOrderRepository
	cartRepo      *MockCartRepository
	bookRepo      *MockBookRepository
	userRepo      *MockUserRepository
	checkoutStore *MockCheckoutStore
	notifier      *MockNotifier
}

func newTestOrderService() (*OrderService, *orderServiceMocks) {
	m := &orderServiceMocks{
		orderRepo:     new(MockOrderRepository),
		cartRepo:      new(MockCartRepository),
		bookRepo:      new(MockBookRepository),
		userRepo:      new(MockUserRepository),
		checkoutStore: new(MockCheckoutStore),
		notifier:      new(MockNotifier),
	}
	service := NewOrderService(
		m.orderRepo, m.cartRepo, m.bookRepo, m.userRepo,
		m.checkoutStore, m.notifier, zap.NewNop(),
	)
	return service, m
}

func newCheckoutFixture(t *testing.T) (uuid.UUID, *cart.Cart, *catalog.Book, *identity.User) {
	t.Helper()
	user, err := identity.NewUser("reader@booknow.vn", "sup3rSecret", "Linh Tran")
	require.NoError(t, err)

	book, err := catalog.NewBook("Dune", uuid.New(), decimal.NewFromInt(99000))
	require.NoError(t, err)
	require.NoError(t, book.AdjustStock(10))

	c, err := cart.NewCart(user.ID)
	require.NoError(t, err)
	_, err = c.AddItem(book, 2)
	require.NoError(t, err)

	return user.ID, c, book, user
}

func shippingRequest() CheckoutRequest {
	return CheckoutRequest{
		FullName:        "Linh Tran",
		PhoneNumber:     "0901234567",
		ShippingAddress: "12 Nguyen Hue, District 1, HCMC",
	}
}

func TestOrderService_Checkout(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshots prices and clears the cart atomically", func(t *testing.T) {
		service, m := newTestOrderService()
		userID, c, book, user := newCheckoutFixture(t)
		require.NoError(t, book.SetPricing(decimal.NewFromInt(99000), decimal.NewFromInt(10)))

		m.cartRepo.On("FindByUserID", ctx, userID).Return(c, nil)
		m.bookRepo.On("FindByIDs", ctx, []uuid.UUID{book.ID}).Return([]catalog.Book{*book}, nil)
		m.checkoutStore.On("CheckoutTx", ctx, mock.AnythingOfType("*order.Order"), c.ID).Return(nil)
		m.userRepo.On("FindByID", ctx, userID).Return(user, nil)
		m.notifier.On("SendOrderConfirmation", ctx, user.Email, mock.Anything).Return(nil)

		resp, err := service.Checkout(ctx, userID, shippingRequest())

		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "Dune", resp.Items[0].BookTitle)
		assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.NewFromInt(89100)),
			"unit price should snapshot the discounted price, got %s", resp.Items[0].UnitPrice)
		assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(178200)))
		m.checkoutStore.AssertExpectations(t)
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		service, m := newTestOrderService()
		userID := uuid.New()
		c, err := cart.NewCart(userID)
		require.NoError(t, err)

		m.cartRepo.On("FindByUserID", ctx, userID).Return(c, nil)

		_, err = service.Checkout(ctx, userID, shippingRequest())
		assert.ErrorIs(t, err, shared.ErrEmptyCart)
		m.checkoutStore.AssertNotCalled(t, "CheckoutTx")
	})

	t.Run("missing cart counts as empty", func(t *testing.T) {
		service, m := newTestOrderService()
		userID := uuid.New()

		m.cartRepo.On("FindByUserID", ctx, userID).Return(nil, shared.ErrNotFound)

		_, err := service.Checkout(ctx, userID, shippingRequest())
		assert.ErrorIs(t, err, shared.ErrEmptyCart)
	})

	t.Run("vanished book leaves the cart untouched", func(t *testing.T) {
		service, m := newTestOrderService()
		userID, c, book, _ := newCheckoutFixture(t)

		m.cartRepo.On("FindByUserID", ctx, userID).Return(c, nil)
		m.bookRepo.On("FindByIDs", ctx, []uuid.UUID{book.ID}).Return([]catalog.Book{}, nil)

		_, err := service.Checkout(ctx, userID, shippingRequest())

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
		m.checkoutStore.AssertNotCalled(t, "CheckoutTx")
		assert.Len(t, c.Items, 1, "cart must stay intact")
	})

	t.Run("confirmation email failure does not fail checkout", func(t *testing.T) {
		service, m := newTestOrderService()
		userID, c, book, user := newCheckoutFixture(t)

		m.cartRepo.On("FindByUserID", ctx, userID).Return(c, nil)
		m.bookRepo.On("FindByIDs", ctx, []uuid.UUID{book.ID}).Return([]catalog.Book{*book}, nil)
		m.checkoutStore.On("CheckoutTx", ctx, mock.Anything, c.ID).Return(nil)
		m.userRepo.On("FindByID", ctx, userID).Return(user, nil)
		m.notifier.On("SendOrderConfirmation", ctx, user.Email, mock.Anything).Return(assert.AnError)

		_, err := service.Checkout(ctx, userID, shippingRequest())
		assert.NoError(t, err)
	})
}

func newPendingOrder(t *testing.T, userID uuid.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(userID, order.ShippingInfo{
		FullName:    "Linh Tran",
		PhoneNumber: "0901234567",
		Address:     "12 Nguyen Hue, District 1, HCMC",
	}, []order.Line{{
		BookID:    uuid.New(),
		BookTitle: "Dune",
		UnitPrice: decimal.NewFromInt(99000),
		Quantity:  2,
	}})
	require.NoError(t, err)
	return o
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("pending to processing", func(t *testing.T) {
		service, m := newTestOrderService()
		o := newPendingOrder(t, uuid.New())

		m.orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		m.orderRepo.On("Save", ctx, o).Return(nil)
		m.notifier.On("SendStatusUpdate", ctx, o.PhoneNumber, o.ID, order.StatusProcessing).Return(nil)

		resp, err := service.UpdateStatus(ctx, o.ID, UpdateStatusRequest{Status: "processing"})

		require.NoError(t, err)
		assert.Equal(t, "processing", resp.Status)
	})

	t.Run("illegal transition is rejected", func(t *testing.T) {
		service, m := newTestOrderService()
		o := newPendingOrder(t, uuid.New())

		m.orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

		_, err := service.UpdateStatus(ctx, o.ID, UpdateStatusRequest{Status: "delivered"})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
		m.orderRepo.AssertNotCalled(t, "Save")
	})

	t.Run("delivery bumps sold counters", func(t *testing.T) {
		service, m := newTestOrderService()
		o := newPendingOrder(t, uuid.New())
		require.NoError(t, o.TransitionTo(order.StatusProcessing))
		book, err := catalog.NewBook("Dune", uuid.New(), decimal.NewFromInt(99000))
		require.NoError(t, err)
		o.Items[0].BookID = book.ID

		m.orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		m.orderRepo.On("Save", ctx, o).Return(nil)
		m.bookRepo.On("FindByID", ctx, book.ID).Return(book, nil)
		m.bookRepo.On("Save", ctx, book).Return(nil)
		m.notifier.On("SendStatusUpdate", ctx, o.PhoneNumber, o.ID, order.StatusDelivered).Return(nil)

		resp, err := service.UpdateStatus(ctx, o.ID, UpdateStatusRequest{Status: "delivered"})

		require.NoError(t, err)
		assert.Equal(t, "delivered", resp.Status)
		assert.Equal(t, 2, book.SoldQuantity)
	})
}

func TestOrderService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("customer cancels own pending order", func(t *testing.T) {
		service, m := newTestOrderService()
		userID := uuid.New()
		o := newPendingOrder(t, userID)

		m.orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		m.orderRepo.On("Save", ctx, o).Return(nil)
		m.notifier.On("SendStatusUpdate", ctx, o.PhoneNumber, o.ID, order.StatusCancelled).Return(nil)

		resp, err := service.Cancel(ctx, o.ID, userID)

		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
	})

	t.Run("cannot cancel someone else's order", func(t *testing.T) {
		service, m := newTestOrderService()
		o := newPendingOrder(t, uuid.New())

		m.orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

		_, err := service.Cancel(ctx, o.ID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("cannot cancel a delivered order", func(t *testing.T) {
		service, m := newTestOrderService()
		userID := uuid.New()
		o := newPendingOrder(t, userID)
		require.NoError(t, o.TransitionTo(order.StatusProcessing))
		require.NoError(t, o.TransitionTo(order.StatusDelivered))

		m.orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

		_, err := service.Cancel(ctx, o.ID, userID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
	})
}

func TestOrderService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("customer reads own order", func(t *testing.T) {
		service, m := newTestOrderService()
		userID := uuid.New()
		o := newPendingOrder(t, userID)

		m.orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

		resp, err := service.GetByID(ctx, o.ID, userID, false)
		require.NoError(t, err)
		assert.Equal(t, o.ID, resp.ID)
	})

	t.Run("customer cannot read another customer's order", func(t *testing.T) {
		service, m := newTestOrderService()
		o := newPendingOrder(t, uuid.New())

		m.orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

		_, err := service.GetByID(ctx, o.ID, uuid.New(), false)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("admin reads any order", func(t *testing.T) {
		service, m := newTestOrderService()
		o := newPendingOrder(t, uuid.New())

		m.orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

		resp, err := service.GetByID(ctx, o.ID, uuid.New(), true)
		require.NoError(t, err)
		assert.Equal(t, o.ID, resp.ID)
	})
}
