package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"perpustakaan/internal/auth"
	"perpustakaan/internal/errors"
	"perpustakaan/internal/service"
)

// BookHandler handles catalog endpoints.
type BookHandler struct {
	catalogService service.CatalogService
}

// NewBookHandler creates a new book handler.
func NewBookHandler(catalogService service.CatalogService) *BookHandler {
	return &BookHandler{catalogService: catalogService}
}

// BookRequest represents a catalog upsert request. A non-zero id updates that
// book; a zero id inserts a new one.
type BookRequest struct {
	ID       uint   `json:"id"`
	Title    string `json:"title" validate:"required"`
	Author   string `json:"author"`
	Year     int    `json:"year"`
	Genre    string `json:"genre"`
	CoverURL string `json:"cover_url"`
	Stock    int    `json:"stock" validate:"gte=0"`
}

// ListBooks godoc
// @Summary List the whole catalog
// @Tags books
// @Produce json
// @Success 200 {array} model.Book
// @Failure 500 {object} errors.ErrorResponse
// @Router /books [get]
func (h *BookHandler) ListBooks(c echo.Context) error {
	books, err := h.catalogService.ListBooks(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, books)
}

// UpsertBook godoc
// @Summary Create or update a book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BookRequest true "Book fields, optional id"
// @Success 200 {object} map[string]interface{}
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /books [post]
func (h *BookHandler) UpsertBook(c echo.Context) error {
	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	claims := auth.FromEchoContext(c)
	if claims == nil {
		return unauthorized()
	}

	book, err := h.catalogService.UpsertBook(c.Request().Context(), claims, service.UpsertBookInput{
		ID:       req.ID,
		Title:    req.Title,
		Author:   req.Author,
		Year:     req.Year,
		Genre:    req.Genre,
		CoverURL: req.CoverURL,
		Stock:    req.Stock,
	})
	if err != nil {
		return domainError(err)
	}

	if req.ID != 0 {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"message": "book updated successfully",
			"book":    book,
		})
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "book added successfully",
		"book":    book,
	})
}

// UpdateBook godoc
// @Summary Update a book by id
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param request body BookRequest true "Book fields"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /books/{id} [put]
func (h *BookHandler) UpdateBook(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	claims := auth.FromEchoContext(c)
	if claims == nil {
		return unauthorized()
	}

	book, err := h.catalogService.UpsertBook(c.Request().Context(), claims, service.UpsertBookInput{
		ID:       id,
		Title:    req.Title,
		Author:   req.Author,
		Year:     req.Year,
		Genre:    req.Genre,
		CoverURL: req.CoverURL,
		Stock:    req.Stock,
	})
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "book updated successfully",
		"book":    book,
	})
}

// DeleteBook godoc
// @Summary Delete a book
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /books/{id} [delete]
func (h *BookHandler) DeleteBook(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	claims := auth.FromEchoContext(c)
	if claims == nil {
		return unauthorized()
	}

	if err := h.catalogService.DeleteBook(c.Request().Context(), claims, id); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "book deleted successfully",
	})
}

func parseIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}
