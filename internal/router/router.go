package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"perpustakaan/internal/config"
	"perpustakaan/internal/handler"
	"perpustakaan/internal/model"
)

// RegisterAuth wires the auth service routes and middleware.
func RegisterAuth(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	e.Validator = NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// Public routes
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/admin/login", authHandler.AdminLogin)
	e.POST("/refresh", authHandler.Refresh)
	e.POST("/logout", authHandler.Logout)

	// Secured routes
	secured := e.Group("", JWTMiddleware(cfg.JWTSecret))
	secured.GET("/profile", userHandler.GetProfile)
	secured.PUT("/profile", userHandler.UpdateProfile)
}

// RegisterMain wires the main service routes and middleware.
func RegisterMain(
	e *echo.Echo,
	cfg *config.Config,
	bookHandler *handler.BookHandler,
	loanHandler *handler.LoanHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	e.Validator = NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public catalog listing
	e.GET("/books", bookHandler.ListBooks)

	authed := e.Group("", JWTMiddleware(cfg.JWTSecret))

	// Catalog mutation, admin only
	admin := authed.Group("", RequireRole(model.RoleAdmin))
	admin.POST("/books", bookHandler.UpsertBook)
	admin.PUT("/books/:id", bookHandler.UpdateBook)
	admin.POST("/books/:id", bookHandler.UpdateBook)
	admin.DELETE("/books/:id", bookHandler.DeleteBook)

	// Loan transactions and history, any authenticated role
	authed.POST("/borrow", loanHandler.Borrow)
	authed.POST("/return", loanHandler.Return)
	authed.GET("/borrowings/all", loanHandler.ListBorrowings)
}
