package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrBookNotFound is returned when a book is not found.
	ErrBookNotFound = errors.New("book not found")
	// ErrOutOfStock is returned when a borrow hits a book with no copies left.
	ErrOutOfStock = errors.New("book out of stock")
	// ErrBorrowingNotFound is returned when a borrowing record is not found.
	ErrBorrowingNotFound = errors.New("borrowing not found")
	// ErrAlreadyReturned is returned when a borrowing has already been closed.
	ErrAlreadyReturned = errors.New("borrowing already returned")
	// ErrBookOnLoan is returned when deleting a book that has an open borrowing.
	ErrBookOnLoan = errors.New("book has an active borrowing")
	// ErrForbidden is returned when the caller's role does not allow the operation.
	ErrForbidden = errors.New("insufficient role")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Out-of-stock borrows and
// deleting a loaned book are business conflicts but surface as 400 on the
// wire; a double return surfaces as 409.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrBookNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "BOOK_NOT_FOUND")
	case ErrOutOfStock:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "OUT_OF_STOCK")
	case ErrBorrowingNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "BORROWING_NOT_FOUND")
	case ErrAlreadyReturned:
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_RETURNED")
	case ErrBookOnLoan:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "BOOK_ON_LOAN")
	case ErrForbidden:
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
