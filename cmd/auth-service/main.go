package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"perpustakaan/internal/auth"
	"perpustakaan/internal/cache"
	"perpustakaan/internal/config"
	"perpustakaan/internal/db"
	"perpustakaan/internal/handler"
	"perpustakaan/internal/model"
	"perpustakaan/internal/repository"
	"perpustakaan/internal/router"
	"perpustakaan/internal/service"
)

const defaultPort = "5001"

func main() {
	cfg := config.Load(defaultPort)

	e := echo.New()

	gormDB, err := db.NewMySQL(cfg.AuthMySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	router.RegisterAuth(e, cfg, authHandler, userHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
