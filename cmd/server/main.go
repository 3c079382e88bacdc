package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"mailpress/internal/auth"
	"mailpress/internal/cache"
	"mailpress/internal/config"
	"mailpress/internal/db"
	"mailpress/internal/handler"
	"mailpress/internal/model"
	"mailpress/internal/repository"
	"mailpress/internal/router"
	"mailpress/internal/service"
)

// @title Mailpress API
// @version 1.0
// @description Authenticated CRUD API for user-owned mail templates.
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Template{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.JWTExpiresInHours)

	userService := service.NewUserService(repository.NewCollection[model.User](gormDB), jwtService)
	templateService := service.NewTemplateService(repository.NewCollection[model.Template](gormDB))

	authHandler := handler.NewAuthHandler(userService)
	templateHandler := handler.NewTemplateHandler(templateService)
	healthHandler := handler.NewHealthHandler(gormDB, cacheClient)

	router.Register(e, jwtService, authHandler, templateHandler, healthHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
