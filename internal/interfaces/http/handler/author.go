package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/Lmt310104/BookNow-BE-sub000/internal/application/catalog"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// AuthorHandler handles author catalog API endpoints
type AuthorHandler struct {
	BaseHandler
	authorService *catalogapp.AuthorService
}

// NewAuthorHandler creates a new AuthorHandler
func NewAuthorHandler(authorService *catalogapp.AuthorService) *AuthorHandler {
	return &AuthorHandler{
		authorService: authorService,
	}
}

// listQuery captures common list query parameters for shared.Filter consumers
type listQuery struct {
	Search string `form:"search"`
	Status string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Take   int    `form:"take" binding:"omitempty,min=1,max=50"`
	SortBy string `form:"sortBy"`
	Order  string `form:"order" binding:"omitempty,oneof=ASC DESC"`
}

func (q listQuery) toFilter() shared.Filter {
	filter := shared.Filter{
		Page:   q.Page,
		Take:   q.Take,
		SortBy: q.SortBy,
		Order:  q.Order,
		Search: q.Search,
	}
	if q.Status != "" {
		filter.Filters = map[string]interface{}{"status": q.Status}
	}
	return filter
}

// Create godoc
// @Summary      Create a new author (admin)
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateAuthorRequest true "Author details"
// @Success      201 {object} dto.Response{data=catalogapp.AuthorResponse}
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /authors [post]
func (h *AuthorHandler) Create(c *gin.Context) {
	var req catalogapp.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	author, err := h.authorService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, author)
}

// GetByID godoc
// @Summary      Get an author by ID
// @Tags         authors
// @Produce      json
// @Param        id path string true "Author ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.AuthorResponse}
// @Failure      404 {object} dto.ErrorResponse
// @Router       /authors/{id} [get]
func (h *AuthorHandler) GetByID(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid author ID format")
		return
	}

	author, err := h.authorService.GetByID(c.Request.Context(), authorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, author)
}

// List godoc
// @Summary      List authors
// @Tags         authors
// @Produce      json
// @Param        search query string false "Search by name"
// @Param        status query string false "Status filter" Enums(active, inactive)
// @Param        page query int false "Page number" default(1)
// @Param        take query int false "Items per page" default(10)
// @Success      200 {object} dto.PaginatedResponse{data=[]catalogapp.AuthorResponse}
// @Router       /authors [get]
func (h *AuthorHandler) List(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := q.toFilter()
	authors, total, err := h.authorService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, authors, total, filter.Page, filter.Take)
}

// Update godoc
// @Summary      Update an author (admin)
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        id path string true "Author ID" format(uuid)
// @Param        request body catalogapp.UpdateAuthorRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=catalogapp.AuthorResponse}
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /authors/{id} [patch]
func (h *AuthorHandler) Update(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid author ID format")
		return
	}

	var req catalogapp.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	author, err := h.authorService.Update(c.Request.Context(), authorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, author)
}

// Activate godoc
// @Summary      Activate an author (admin)
// @Tags         authors
// @Produce      json
// @Param        id path string true "Author ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.AuthorResponse}
// @Security     BearerAuth
// @Router       /authors/{id}/activate [post]
func (h *AuthorHandler) Activate(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid author ID format")
		return
	}

	author, err := h.authorService.Activate(c.Request.Context(), authorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, author)
}

// Deactivate godoc
// @Summary      Deactivate an author (admin)
// @Tags         authors
// @Produce      json
// @Param        id path string true "Author ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.AuthorResponse}
// @Security     BearerAuth
// @Router       /authors/{id}/deactivate [post]
func (h *AuthorHandler) Deactivate(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid author ID format")
		return
	}

	author, err := h.authorService.Deactivate(c.Request.Context(), authorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, author)
}
