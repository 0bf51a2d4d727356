package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogapp "github.com/Lmt310104/BookNow-BE-sub000/internal/application/catalog"
)

// BookHandler handles book catalog API endpoints
type BookHandler struct {
	BaseHandler
	bookService  *catalogapp.BookService
	coverService *catalogapp.CoverService
}

// NewBookHandler creates a new BookHandler
func NewBookHandler(bookService *catalogapp.BookService, coverService *catalogapp.CoverService) *BookHandler {
	return &BookHandler{
		bookService:  bookService,
		coverService: coverService,
	}
}

// SetDiscountRequest applies a discount percentage to a book
type SetDiscountRequest struct {
	DiscountPercent decimal.Decimal `json:"discountPercent" binding:"required"`
}

// CoverDownloadResponse carries a presigned download URL for a cover image
type CoverDownloadResponse struct {
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Create godoc
// @Summary      Create a new book (admin)
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateBookRequest true "Book details"
// @Success      201 {object} dto.Response{data=catalogapp.BookResponse}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req catalogapp.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	book, err := h.bookService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, book)
}

// GetByID godoc
// @Summary      Get a book by ID
// @Tags         books
// @Produce      json
// @Param        id path string true "Book ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.BookResponse}
// @Failure      404 {object} dto.ErrorResponse
// @Router       /books/{id} [get]
func (h *BookHandler) GetByID(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid book ID format")
		return
	}

	book, err := h.bookService.GetByID(c.Request.Context(), bookID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, book)
}

// List godoc
// @Summary      List books
// @Tags         books
// @Produce      json
// @Param        search query string false "Search in title and ISBN"
// @Param        status query string false "Status filter" Enums(active, inactive)
// @Param        categoryId query string false "Category filter" format(uuid)
// @Param        authorId query string false "Author filter" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        take query int false "Items per page" default(10)
// @Param        sortBy query string false "Sort field"
// @Param        order query string false "Sort order" Enums(ASC, DESC)
// @Success      200 {object} dto.PaginatedResponse{data=[]catalogapp.BookResponse}
// @Router       /books [get]
func (h *BookHandler) List(c *gin.Context) {
	var filter catalogapp.BookListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	books, total, err := h.bookService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, books, total, filter.Page, filter.Take)
}

// Update godoc
// @Summary      Update a book (admin)
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id path string true "Book ID" format(uuid)
// @Param        request body catalogapp.UpdateBookRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=catalogapp.BookResponse}
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /books/{id} [patch]
func (h *BookHandler) Update(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid book ID format")
		return
	}

	var req catalogapp.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	book, err := h.bookService.Update(c.Request.Context(), bookID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, book)
}

// SetDiscount godoc
// @Summary      Set a book's discount percentage (admin)
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id path string true "Book ID" format(uuid)
// @Param        request body SetDiscountRequest true "Discount percentage (0-100)"
// @Success      200 {object} dto.Response{data=catalogapp.BookResponse}
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /books/{id}/discount [put]
func (h *BookHandler) SetDiscount(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid book ID format")
		return
	}

	var req SetDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	book, err := h.bookService.SetDiscount(c.Request.Context(), bookID, req.DiscountPercent)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, book)
}

// Activate godoc
// @Summary      Activate a book (admin)
// @Tags         books
// @Produce      json
// @Param        id path string true "Book ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.BookResponse}
// @Security     BearerAuth
// @Router       /books/{id}/activate [post]
func (h *BookHandler) Activate(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid book ID format")
		return
	}

	book, err := h.bookService.Activate(c.Request.Context(), bookID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, book)
}

// Deactivate godoc
// @Summary      Deactivate a book (admin)
// @Tags         books
// @Produce      json
// @Param        id path string true "Book ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.BookResponse}
// @Security     BearerAuth
// @Router       /books/{id}/deactivate [post]
func (h *BookHandler) Deactivate(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid book ID format")
		return
	}

	book, err := h.bookService.Deactivate(c.Request.Context(), bookID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, book)
}

// RequestCoverUpload godoc
// @Summary      Request a presigned URL for a cover upload (admin)
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id path string true "Book ID" format(uuid)
// @Param        request body catalogapp.RequestCoverUploadRequest true "File name and content type"
// @Success      200 {object} dto.Response{data=catalogapp.CoverUploadResponse}
// @Failure      422 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /books/{id}/covers/upload-url [post]
func (h *BookHandler) RequestCoverUpload(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid book ID format")
		return
	}

	var req catalogapp.RequestCoverUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	upload, err := h.coverService.RequestUpload(c.Request.Context(), bookID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, upload)
}

// ConfirmCover godoc
// @Summary      Confirm an uploaded cover and attach it to the book (admin)
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id path string true "Book ID" format(uuid)
// @Param        request body catalogapp.ConfirmCoverRequest true "Storage key returned by the upload URL request"
// @Success      200 {object} dto.Response{data=catalogapp.BookResponse}
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /books/{id}/covers [post]
func (h *BookHandler) ConfirmCover(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid book ID format")
		return
	}

	var req catalogapp.ConfirmCoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	book, err := h.coverService.ConfirmUpload(c.Request.Context(), bookID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, book)
}

// CoverDownloadURL godoc
// @Summary      Get a presigned download URL for a cover image
// @Tags         books
// @Produce      json
// @Param        id path string true "Book ID" format(uuid)
// @Param        key query string true "Cover storage key"
// @Success      200 {object} dto.Response{data=CoverDownloadResponse}
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /books/{id}/covers/download-url [get]
func (h *BookHandler) CoverDownloadURL(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid book ID format")
		return
	}

	storageKey := c.Query("key")
	if storageKey == "" {
		h.BadRequest(c, "Missing cover storage key")
		return
	}

	url, expiresAt, err := h.coverService.DownloadURL(c.Request.Context(), bookID, storageKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, CoverDownloadResponse{
		DownloadURL: url,
		ExpiresAt:   expiresAt,
	})
}

// RemoveCover godoc
// @Summary      Remove a cover image from a book (admin)
// @Tags         books
// @Produce      json
// @Param        id path string true "Book ID" format(uuid)
// @Param        key query string true "Cover storage key"
// @Success      204
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /books/{id}/covers [delete]
func (h *BookHandler) RemoveCover(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid book ID format")
		return
	}

	storageKey := c.Query("key")
	if storageKey == "" {
		h.BadRequest(c, "Missing cover storage key")
		return
	}

	if err := h.coverService.RemoveCover(c.Request.Context(), bookID, storageKey); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
