package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"perpustakaan/internal/errors"
)

// domainError converts a domain error into an echo HTTP error with the
// standard {error, code} body.
func domainError(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func unauthorized() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
		Error: "missing credentials",
		Code:  "UNAUTHORIZED",
	})
}
