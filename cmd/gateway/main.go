package main

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"perpustakaan/internal/config"
)

const defaultPort = "8080"

// The gateway has no business logic: it serves the static client and the
// three browser entry points.
func main() {
	cfg := config.Load(defaultPort)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Static("/", cfg.StaticDir)

	e.GET("/", pageHandler(cfg.StaticDir, "index.html"))
	e.GET("/admin", pageHandler(cfg.StaticDir, "admin.html"))
	e.GET("/register", pageHandler(cfg.StaticDir, "register.html"))

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

func pageHandler(dir, page string) echo.HandlerFunc {
	path := filepath.Join(dir, page)
	return func(c echo.Context) error {
		return c.File(path)
	}
}
