package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/foodtrack/internal/middleware"
)

// Handlers groups the route handlers served under /api
type Handlers struct {
	Users   *UserHandler
	Diary   *DiaryHandler
	Catalog *CatalogHandler
	Health  *HealthHandler
}

// RegisterRoutes mounts every API route on api. Routes under /users/:username
// are restricted to that user; catalog routes need any valid token.
func RegisterRoutes(api fiber.Router, h Handlers, auth middleware.Authenticator) {
	requireUser := middleware.AuthUser(auth)

	if h.Health != nil {
		api.Get("/health", h.Health.Health)
	}

	api.Post("/users", h.Users.Register)
	api.Post("/login", h.Users.Login)

	users := api.Group("/users/:username", requireUser, middleware.RequireOwner())
	users.Get("", h.Users.GetUser)
	users.Put("", h.Users.UpdateUser)
	users.Delete("", h.Users.DeleteUser)
	users.Post("/meals/:ref", h.Users.SaveMeal)
	users.Delete("/meals/:ref", h.Users.UnsaveMeal)

	users.Get("/diary", h.Diary.ListEntries)
	users.Post("/diary", h.Diary.AppendEntry)
	users.Put("/diary/:entryId", h.Diary.UpdateEntry)
	users.Delete("/diary/:entryId", h.Diary.DeleteEntry)

	foods := api.Group("/food-list", requireUser)
	foods.Get("", h.Catalog.ListFoods)
	foods.Post("", h.Catalog.CreateFood)
	foods.Get("/:name", h.Catalog.GetFood)
	foods.Put("/:name", h.Catalog.UpdateFood)
	foods.Delete("/:name", h.Catalog.DeleteFood)

	meals := api.Group("/meals", requireUser)
	meals.Get("", h.Catalog.ListMeals)
	meals.Post("", h.Catalog.CreateMeal)
	meals.Get("/:name", h.Catalog.GetMeal)
	meals.Put("/:name", h.Catalog.UpdateMeal)
	meals.Delete("/:name", h.Catalog.DeleteMeal)
}
