package inventory

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/catalog"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/inventory"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/partner"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// StockStore commits a stock entry together with the book update it
// implies in one transaction, so a movement is never recorded without
// its stock effect.
type StockStore interface {
	RecordTx(ctx context.Context, entry *inventory.StockEntry, book *catalog.Book) error
}

// StockService records stock movements and keeps the book's stock
// quantity and entry price in step with them.
type StockService struct {
	entryRepo    inventory.StockEntryRepository
	bookRepo     catalog.BookRepository
	supplierRepo partner.SupplierRepository
	store        StockStore
	logger       *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(
	entryRepo inventory.StockEntryRepository,
	bookRepo catalog.BookRepository,
	supplierRepo partner.SupplierRepository,
	store StockStore,
	logger *zap.Logger,
) *StockService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockService{
		entryRepo:    entryRepo,
		bookRepo:     bookRepo,
		supplierRepo: supplierRepo,
		store:        store,
		logger:       logger,
	}
}

// CreateReceipt records stock received from a supplier. The book's
// stock quantity grows by the received amount and its entry price is
// set to the receipt's unit cost.
func (s *StockService) CreateReceipt(ctx context.Context, req CreateReceiptRequest) (*StockEntryResponse, error) {
	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid book ID")
	}
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid supplier ID")
	}

	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.IsActive() {
		return nil, shared.NewDomainError("SUPPLIER_INACTIVE", "Cannot receive stock from an inactive supplier")
	}

	entry, err := inventory.NewReceipt(bookID, supplierID, req.Quantity, req.UnitCost, req.Note)
	if err != nil {
		return nil, err
	}

	if err := book.AdjustStock(req.Quantity); err != nil {
		return nil, err
	}
	if err := book.SetEntryPrice(req.UnitCost); err != nil {
		return nil, err
	}

	if err := s.store.RecordTx(ctx, entry, book); err != nil {
		return nil, err
	}

	s.logger.Info("Stock received",
		zap.String("book_id", bookID.String()),
		zap.String("supplier_id", supplierID.String()),
		zap.Int("quantity", req.Quantity))

	response := ToStockEntryResponse(entry)
	return &response, nil
}

// CreateAdjustment records a signed manual correction. Negative
// adjustments cannot push the book's stock below zero.
func (s *StockService) CreateAdjustment(ctx context.Context, req CreateAdjustmentRequest) (*StockEntryResponse, error) {
	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid book ID")
	}

	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	entry, err := inventory.NewAdjustment(bookID, req.Quantity, req.Note)
	if err != nil {
		return nil, err
	}

	if err := book.AdjustStock(req.Quantity); err != nil {
		return nil, err
	}

	if err := s.store.RecordTx(ctx, entry, book); err != nil {
		return nil, err
	}

	s.logger.Info("Stock adjusted",
		zap.String("book_id", bookID.String()),
		zap.Int("quantity", req.Quantity))

	response := ToStockEntryResponse(entry)
	return &response, nil
}

// GetByID returns a single stock entry
func (s *StockService) GetByID(ctx context.Context, id uuid.UUID) (*StockEntryResponse, error) {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToStockEntryResponse(entry)
	return &response, nil
}

// List returns stock entries matching the filter with a total count
func (s *StockService) List(ctx context.Context, filter StockEntryListFilter) ([]StockEntryResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:    filter.Page,
		Take:    filter.Take,
		SortBy:  filter.SortBy,
		Order:   filter.Order,
		Filters: make(map[string]interface{}),
	}
	domainFilter.Normalize()

	if filter.BookID != "" {
		bookID, err := uuid.Parse(filter.BookID)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid book ID")
		}
		domainFilter.Filters["book_id"] = bookID
	}
	if filter.SupplierID != "" {
		supplierID, err := uuid.Parse(filter.SupplierID)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid supplier ID")
		}
		domainFilter.Filters["supplier_id"] = supplierID
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}

	entries, err := s.entryRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.entryRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToStockEntryResponses(entries), total, nil
}
