package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/goaltrack/goaltrack-backend/internal/auth"
	"github.com/goaltrack/goaltrack-backend/internal/config"
	"github.com/goaltrack/goaltrack-backend/internal/goals"
	"github.com/goaltrack/goaltrack-backend/internal/router"
	"github.com/goaltrack/goaltrack-backend/internal/store"
	"github.com/goaltrack/goaltrack-backend/internal/users"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	client, err := store.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("error connecting to store: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)
	if err := store.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("error creating indexes: %v", err)
	}

	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	userRepo := users.NewRepository(db)
	goalRepo := goals.NewRepository(db)

	app := fiber.New(fiber.Config{
		ErrorHandler: router.ErrorHandler(cfg.Production()),
	})
	app.Use(router.Cors(cfg.CORSOrigin))
	app.Use(router.RequestLogger())

	r := &router.Router{
		Users:     users.NewHandler(userRepo, tokens, cfg.BcryptCost),
		Goals:     goals.NewHandler(goalRepo),
		AuthMW:    auth.Middleware(tokens, userRepo),
		AuthLimit: router.RateLimitAuth(cfg.AuthRateMax, cfg.AuthRateWindow),
	}
	r.RegisterRoutes(app)

	log.Println("Listening on port", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
