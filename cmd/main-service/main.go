package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"perpustakaan/docs"

	"perpustakaan/internal/cache"
	"perpustakaan/internal/config"
	"perpustakaan/internal/db"
	"perpustakaan/internal/handler"
	"perpustakaan/internal/model"
	"perpustakaan/internal/repository"
	"perpustakaan/internal/router"
	"perpustakaan/internal/service"
)

const defaultPort = "5002"

// @title Library Main Service API
// @version 1.0
// @description Book catalog and borrow/return transactions, gated by JWTs issued by the auth service.
// @host localhost:5002
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load(defaultPort)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.Book{},
		&model.Borrowing{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	bookRepo := repository.NewBookRepository(gormDB)
	borrowingRepo := repository.NewBorrowingRepository(gormDB)

	catalogService := service.NewCatalogService(bookRepo, borrowingRepo, cacheClient)
	loanService := service.NewLoanService(bookRepo, borrowingRepo, cacheClient)

	bookHandler := handler.NewBookHandler(catalogService)
	loanHandler := handler.NewLoanHandler(loanService)

	router.RegisterMain(e, cfg, bookHandler, loanHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
