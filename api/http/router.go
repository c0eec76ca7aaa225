package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ndanilchenko/tasktrack/api/http/handlers"
	"github.com/ndanilchenko/tasktrack/api/http/presenter"
)

// Register wires all HTTP routes onto given Fiber app. The auth middleware
// guards every task route and /auth/me, but never registration or login.
func Register(app *fiber.App, auth *handlers.AuthHandler, tasks *handlers.TaskHandler, health *handlers.HealthHandler, authMW fiber.Handler) {
	// Health and readiness endpoints for probes/monitoring
	app.Get("/health", health.Health)
	app.Get("/ready", health.Ready)

	api := app.Group("/api")

	a := api.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)
	a.Get("/me", authMW, auth.Me)

	t := api.Group("/tasks", authMW)
	t.Post("/", tasks.Create)
	t.Get("/", tasks.List)
	// stats before :id so it is not captured as a task id
	t.Get("/stats", tasks.Stats)
	t.Get("/:id", tasks.GetByID)
	t.Put("/:id", tasks.Update)
	t.Delete("/:id", tasks.Delete)

	app.Use(func(c *fiber.Ctx) error {
		return presenter.Error(c, fiber.StatusNotFound, "Route not found")
	})
}
