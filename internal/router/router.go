package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goaltrack/goaltrack-backend/internal/goals"
	"github.com/goaltrack/goaltrack-backend/internal/users"
)

type Router struct {
	Users     *users.Handler
	Goals     *goals.Handler
	AuthMW    fiber.Handler
	AuthLimit fiber.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	app.Get("/health", health)
	app.Get("/api/health", health)

	if r.Users != nil {
		if r.AuthLimit != nil {
			app.Post("/api/users/register", r.AuthLimit, r.Users.Register)
			app.Post("/api/users/login", r.AuthLimit, r.Users.Login)
		} else {
			app.Post("/api/users/register", r.Users.Register)
			app.Post("/api/users/login", r.Users.Login)
		}
		app.Get("/api/users", r.AuthMW, r.Users.Profile)
	}

	if r.Goals != nil {
		app.Get("/api/goals", r.AuthMW, r.Goals.List)
		app.Post("/api/goals", r.AuthMW, r.Goals.Create)
		app.Get("/api/goals/report", r.AuthMW, r.Goals.Report)
		app.Put("/api/goals/:id", r.AuthMW, r.Goals.Update)
		app.Delete("/api/goals/:id", r.AuthMW, r.Goals.Delete)
	}
}

func health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}
