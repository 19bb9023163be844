package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"perpustakaan/internal/auth"
	"perpustakaan/internal/errors"
	"perpustakaan/internal/service"
)

// LoanHandler handles borrow/return endpoints.
type LoanHandler struct {
	loanService service.LoanService
}

// NewLoanHandler creates a new loan handler.
func NewLoanHandler(loanService service.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// BorrowRequest represents a borrow request.
type BorrowRequest struct {
	BookID        uint   `json:"book_id" validate:"required"`
	BorrowerName  string `json:"borrower_name" validate:"required"`
	BorrowerPhone string `json:"borrower_phone" validate:"required"`
}

// ReturnRequest represents a return request.
type ReturnRequest struct {
	BorrowingID uint `json:"borrowing_id" validate:"required"`
}

// Borrow godoc
// @Summary Borrow one copy of a book
// @Tags loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BorrowRequest true "Borrow data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /borrow [post]
func (h *LoanHandler) Borrow(c echo.Context) error {
	var req BorrowRequest
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

	if err := h.loanService.Borrow(c.Request().Context(), claims, req.BookID, req.BorrowerName, req.BorrowerPhone); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "book borrowed successfully",
	})
}

// Return godoc
// @Summary Return a borrowed book
// @Tags loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ReturnRequest true "Return data"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /return [post]
func (h *LoanHandler) Return(c echo.Context) error {
	var req ReturnRequest
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

	if err := h.loanService.Return(c.Request().Context(), claims, req.BorrowingID); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "book returned successfully",
	})
}

// ListBorrowings godoc
// @Summary List borrowing history
// @Description Admins see every loan; members only their own.
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.BorrowingWithBook
// @Failure 403 {object} errors.ErrorResponse
// @Router /borrowings/all [get]
func (h *LoanHandler) ListBorrowings(c echo.Context) error {
	claims := auth.FromEchoContext(c)
	if claims == nil {
		return unauthorized()
	}

	borrowings, err := h.loanService.ListBorrowings(c.Request().Context(), claims)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, borrowings)
}
