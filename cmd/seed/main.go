package main

import (
	"context"
	"log"

	"mailpress/internal/auth"
	"mailpress/internal/config"
	"mailpress/internal/db"
	"mailpress/internal/model"
	"mailpress/internal/repository"
	"mailpress/internal/service"
)

const (
	demoEmail    = "demo@mailpress.local"
	demoPassword = "secret123"
)

var demoTemplates = []struct {
	Name    string
	Subject string
	Body    string
}{
	{
		Name:    "welcome",
		Subject: "Welcome aboard",
		Body:    "Hi {{first_name}}, thanks for signing up!",
	},
	{
		Name:    "password-reset",
		Subject: "Reset your password",
		Body:    "Hi {{first_name}}, use the link below to reset your password.",
	},
	{
		Name:    "weekly-digest",
		Subject: "Your weekly digest",
		Body:    "Hi {{first_name}}, here is what happened this week.",
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Template{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.JWTExpiresInHours)
	users := service.NewUserService(repository.NewCollection[model.User](gormDB), jwtService)
	templates := service.NewTemplateService(repository.NewCollection[model.Template](gormDB))

	ctx := context.Background()

	user, err := users.FindOne(ctx, repository.Filter{"email": demoEmail})
	if err != nil {
		log.Fatalf("Failed to look up demo user: %v", err)
	}
	if user == nil {
		user, err = users.RegisterAccount(ctx, service.Fields{
			"email":      demoEmail,
			"first_name": "Demo",
			"last_name":  "User",
			"password":   demoPassword,
		})
		if err != nil {
			log.Fatalf("Failed to register demo user: %v", err)
		}
		log.Printf("Created demo user %s", demoEmail)
	}

	created := 0
	for _, tpl := range demoTemplates {
		existing, err := templates.FindOne(ctx, repository.Filter{
			"user_id": user.ID.String(),
			"name":    tpl.Name,
			"deleted": false,
		})
		if err != nil {
			log.Fatalf("Failed to look up template %s: %v", tpl.Name, err)
		}
		if existing != nil {
			continue
		}
		if _, err := templates.Create(ctx, service.Fields{
			"name":    tpl.Name,
			"subject": tpl.Subject,
			"body":    tpl.Body,
			"user_id": user.ID.String(),
		}); err != nil {
			log.Fatalf("Failed to create template %s: %v", tpl.Name, err)
		}
		created++
	}

	log.Printf("Seed completed: %d new templates for %s", created, demoEmail)
}
