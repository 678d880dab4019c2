package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/foodtrack/internal/services"
	"github.com/localnerve/foodtrack/internal/utils"
)

// CatalogHandler handles the shared food and meal catalog
type CatalogHandler struct {
	Catalog *services.CatalogService
}

// ListFoods handles GET /api/food-list
// @Summary List foods
// @Tags Foods
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Food
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /food-list [get]
func (h *CatalogHandler) ListFoods(c *fiber.Ctx) error {
	foods, err := h.Catalog.ListFoods(c.UserContext())
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, foods, fiber.StatusOK)
}

// GetFood handles GET /api/food-list/:name
// @Summary Get a food by name
// @Tags Foods
// @Produce json
// @Security BearerAuth
// @Param name path string true "Food name"
// @Success 200 {object} models.Food
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /food-list/{name} [get]
func (h *CatalogHandler) GetFood(c *fiber.Ctx) error {
	food, err := h.Catalog.GetFood(c.UserContext(), param(c, "name"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, food, fiber.StatusOK)
}

// CreateFood handles POST /api/food-list
// @Summary Create a food
// @Description Names are unique and case sensitive
// @Tags Foods
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param food body services.FoodInput true "Food"
// @Success 201 {object} models.Food
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /food-list [post]
func (h *CatalogHandler) CreateFood(c *fiber.Ctx) error {
	var input services.FoodInput
	if err := bind(c, &input); err != nil {
		return err
	}

	food, err := h.Catalog.CreateFood(c.UserContext(), input)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, food, fiber.StatusCreated)
}

// UpdateFood handles PUT /api/food-list/:name
// @Summary Replace a food
// @Description Absent weight and quantity are cleared. An empty name keeps the current one.
// @Tags Foods
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param name path string true "Food name"
// @Param food body services.FoodInput true "Food"
// @Success 200 {object} models.Food
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /food-list/{name} [put]
func (h *CatalogHandler) UpdateFood(c *fiber.Ctx) error {
	var input services.FoodInput
	if err := bind(c, &input); err != nil {
		return err
	}

	food, err := h.Catalog.UpdateFood(c.UserContext(), param(c, "name"), input)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, food, fiber.StatusOK)
}

// DeleteFood handles DELETE /api/food-list/:name
// @Summary Delete a food
// @Tags Foods
// @Produce json
// @Security BearerAuth
// @Param name path string true "Food name"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /food-list/{name} [delete]
func (h *CatalogHandler) DeleteFood(c *fiber.Ctx) error {
	name := param(c, "name")
	if err := h.Catalog.DeleteFood(c.UserContext(), name); err != nil {
		return err
	}
	return utils.MessageResponse(c, fmt.Sprintf("%s was deleted.", name))
}

// ListMeals handles GET /api/meals
// @Summary List meals
// @Tags Meals
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Meal
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /meals [get]
func (h *CatalogHandler) ListMeals(c *fiber.Ctx) error {
	meals, err := h.Catalog.ListMeals(c.UserContext())
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, meals, fiber.StatusOK)
}

// GetMeal handles GET /api/meals/:name
// @Summary Get a meal by name
// @Tags Meals
// @Produce json
// @Security BearerAuth
// @Param name path string true "Meal name"
// @Success 200 {object} models.Meal
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /meals/{name} [get]
func (h *CatalogHandler) GetMeal(c *fiber.Ctx) error {
	meal, err := h.Catalog.GetMeal(c.UserContext(), param(c, "name"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, meal, fiber.StatusOK)
}

// CreateMeal handles POST /api/meals
// @Summary Create a meal
// @Tags Meals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param meal body services.MealInput true "Meal"
// @Success 201 {object} models.Meal
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /meals [post]
func (h *CatalogHandler) CreateMeal(c *fiber.Ctx) error {
	var input services.MealInput
	if err := bind(c, &input); err != nil {
		return err
	}

	meal, err := h.Catalog.CreateMeal(c.UserContext(), input)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, meal, fiber.StatusCreated)
}

// UpdateMeal handles PUT /api/meals/:name
// @Summary Replace a meal
// @Tags Meals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param name path string true "Meal name"
// @Param meal body services.MealInput true "Meal"
// @Success 200 {object} models.Meal
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /meals/{name} [put]
func (h *CatalogHandler) UpdateMeal(c *fiber.Ctx) error {
	var input services.MealInput
	if err := bind(c, &input); err != nil {
		return err
	}

	meal, err := h.Catalog.UpdateMeal(c.UserContext(), param(c, "name"), input)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, meal, fiber.StatusOK)
}

// DeleteMeal handles DELETE /api/meals/:name
// @Summary Delete a meal
// @Tags Meals
// @Produce json
// @Security BearerAuth
// @Param name path string true "Meal name"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /meals/{name} [delete]
func (h *CatalogHandler) DeleteMeal(c *fiber.Ctx) error {
	name := param(c, "name")
	if err := h.Catalog.DeleteMeal(c.UserContext(), name); err != nil {
		return err
	}
	return utils.MessageResponse(c, fmt.Sprintf("%s was deleted.", name))
}
