package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/localnerve/foodtrack/internal/models"
	"github.com/localnerve/foodtrack/internal/types"
)

// CatalogStore is the persistence the catalog service needs
type CatalogStore interface {
	CreateFood(ctx context.Context, food *models.Food) error
	FindFood(ctx context.Context, name string) (*models.Food, error)
	ListFoods(ctx context.Context) ([]models.Food, error)
	ReplaceFood(ctx context.Context, name string, food *models.Food) (*models.Food, error)
	DeleteFood(ctx context.Context, name string) error

	CreateMeal(ctx context.Context, meal *models.Meal) error
	FindMeal(ctx context.Context, name string) (*models.Meal, error)
	ListMeals(ctx context.Context) ([]models.Meal, error)
	ReplaceMeal(ctx context.Context, name string, meal *models.Meal) (*models.Meal, error)
	DeleteMeal(ctx context.Context, name string) error
}

// FoodInput is a full food record. On update an empty name keeps the current one.
type FoodInput struct {
	Name     string             `json:"name" validate:"max=255"`
	Weight   *types.FlexFloat64 `json:"weight" validate:"omitnil,finite,gte=0"`
	Quantity *types.FlexFloat64 `json:"quantity" validate:"omitnil,finite,gte=0"`
	Protein  *types.FlexFloat64 `json:"protein" validate:"required,finite,gte=0"`
	Carbs    *types.FlexFloat64 `json:"carbs" validate:"required,finite,gte=0"`
	Fat      *types.FlexFloat64 `json:"fat" validate:"required,finite,gte=0"`
	Calories *types.FlexFloat64 `json:"calories" validate:"required,finite,gte=0"`
}

// MealInput is a full meal record. Foods lists food references in order and
// the aggregate values are stored as given.
type MealInput struct {
	Name     string             `json:"name" validate:"max=255"`
	Foods    types.FlexStrings  `json:"foods"`
	Protein  *types.FlexFloat64 `json:"protein" validate:"omitnil,finite,gte=0"`
	Carbs    *types.FlexFloat64 `json:"carbs" validate:"omitnil,finite,gte=0"`
	Fat      *types.FlexFloat64 `json:"fat" validate:"omitnil,finite,gte=0"`
	Calories *types.FlexFloat64 `json:"calories" validate:"omitnil,finite,gte=0"`
}

// CatalogService maintains the shared food and meal catalog
type CatalogService struct {
	store CatalogStore
}

// NewCatalogService creates a catalog service
func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

// CreateFood adds a food. Names are unique and case sensitive.
func (s *CatalogService) CreateFood(ctx context.Context, input FoodInput) (*models.Food, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, types.Validation("name is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	food := input.food()
	food.ID = uuid.NewString()
	if err := s.store.CreateFood(ctx, food); err != nil {
		return nil, err
	}

	logger.Info().Str("food", food.Name).Msg("Created food")
	return food, nil
}

// GetFood returns the food called name
func (s *CatalogService) GetFood(ctx context.Context, name string) (*models.Food, error) {
	return s.store.FindFood(ctx, name)
}

// ListFoods returns every food
func (s *CatalogService) ListFoods(ctx context.Context) ([]models.Food, error) {
	return s.store.ListFoods(ctx)
}

// UpdateFood replaces the food called name. Absent optional values are cleared.
func (s *CatalogService) UpdateFood(ctx context.Context, name string, input FoodInput) (*models.Food, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		input.Name = name
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	food, err := s.store.ReplaceFood(ctx, name, input.food())
	if err != nil {
		return nil, err
	}

	logger.Info().Str("food", name).Str("name", food.Name).Msg("Replaced food")
	return food, nil
}

// DeleteFood removes the food called name
func (s *CatalogService) DeleteFood(ctx context.Context, name string) error {
	if err := s.store.DeleteFood(ctx, name); err != nil {
		return err
	}
	logger.Info().Str("food", name).Msg("Deleted food")
	return nil
}

// CreateMeal adds a meal. Names are unique.
func (s *CatalogService) CreateMeal(ctx context.Context, input MealInput) (*models.Meal, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, types.Validation("name is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	meal := input.meal()
	meal.ID = uuid.NewString()
	if err := s.store.CreateMeal(ctx, meal); err != nil {
		return nil, err
	}

	logger.Info().Str("meal", meal.Name).Int("foods", len(meal.Foods)).Msg("Created meal")
	return meal, nil
}

// GetMeal returns the meal called name
func (s *CatalogService) GetMeal(ctx context.Context, name string) (*models.Meal, error) {
	return s.store.FindMeal(ctx, name)
}

// ListMeals returns every meal
func (s *CatalogService) ListMeals(ctx context.Context) ([]models.Meal, error) {
	return s.store.ListMeals(ctx)
}

// UpdateMeal replaces the meal called name
func (s *CatalogService) UpdateMeal(ctx context.Context, name string, input MealInput) (*models.Meal, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		input.Name = name
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	meal, err := s.store.ReplaceMeal(ctx, name, input.meal())
	if err != nil {
		return nil, err
	}

	logger.Info().Str("meal", name).Str("name", meal.Name).Msg("Replaced meal")
	return meal, nil
}

// DeleteMeal removes the meal called name
func (s *CatalogService) DeleteMeal(ctx context.Context, name string) error {
	if err := s.store.DeleteMeal(ctx, name); err != nil {
		return err
	}
	logger.Info().Str("meal", name).Msg("Deleted meal")
	return nil
}

func (in FoodInput) food() *models.Food {
	return &models.Food{
		Name:     in.Name,
		Weight:   in.Weight.Ptr(),
		Quantity: in.Quantity.Ptr(),
		Protein:  in.Protein.Ptr(),
		Carbs:    in.Carbs.Ptr(),
		Fat:      in.Fat.Ptr(),
		Calories: in.Calories.Ptr(),
	}
}

func (in MealInput) meal() *models.Meal {
	foods := models.RefList{}
	foods = append(foods, in.Foods.Slice()...)
	return &models.Meal{
		Name:     in.Name,
		Foods:    foods,
		Protein:  in.Protein.Ptr(),
		Carbs:    in.Carbs.Ptr(),
		Fat:      in.Fat.Ptr(),
		Calories: in.Calories.Ptr(),
	}
}
