package store

import (
	"context"
	"errors"

	"github.com/localnerve/foodtrack/internal/models"
	"github.com/localnerve/foodtrack/internal/types"
	"gorm.io/gorm"
)

// Columns rewritten by a replace, nil values included
var (
	foodColumns = []string{"name", "weight", "quantity", "protein", "carbs", "fat", "calories", "updated_at"}
	mealColumns = []string{"name", "foods", "protein", "carbs", "fat", "calories", "updated_at"}
)

// CreateFood inserts a food. An existing name is a conflict and the stored record is left as it was.
func (s *Store) CreateFood(ctx context.Context, food *models.Food) error {
	return createNamed(s.conn(ctx), food, food.Name)
}

// FindFood loads a food by exact name
func (s *Store) FindFood(ctx context.Context, name string) (*models.Food, error) {
	return findNamed[models.Food](s.quiet(ctx), name)
}

// ListFoods returns all foods ordered by name
func (s *Store) ListFoods(ctx context.Context) ([]models.Food, error) {
	return listNamed[models.Food](s.quiet(ctx))
}

// ReplaceFood overwrites every column of the food called name with food
func (s *Store) ReplaceFood(ctx context.Context, name string, food *models.Food) (*models.Food, error) {
	return replaceNamed(s.conn(ctx), name, food, foodColumns)
}

// DeleteFood removes the food called name
func (s *Store) DeleteFood(ctx context.Context, name string) error {
	return deleteNamed[models.Food](s.conn(ctx), name)
}

// CreateMeal inserts a meal. An existing name is a conflict.
func (s *Store) CreateMeal(ctx context.Context, meal *models.Meal) error {
	return createNamed(s.conn(ctx), meal, meal.Name)
}

// FindMeal loads a meal by exact name
func (s *Store) FindMeal(ctx context.Context, name string) (*models.Meal, error) {
	return findNamed[models.Meal](s.quiet(ctx), name)
}

// ListMeals returns all meals ordered by name
func (s *Store) ListMeals(ctx context.Context) ([]models.Meal, error) {
	return listNamed[models.Meal](s.quiet(ctx))
}

// ReplaceMeal overwrites every column of the meal called name with meal
func (s *Store) ReplaceMeal(ctx context.Context, name string, meal *models.Meal) (*models.Meal, error) {
	return replaceNamed(s.conn(ctx), name, meal, mealColumns)
}

// DeleteMeal removes the meal called name
func (s *Store) DeleteMeal(ctx context.Context, name string) error {
	return deleteNamed[models.Meal](s.conn(ctx), name)
}

func createNamed[T any](db *gorm.DB, record *T, name string) error {
	err := db.Create(record).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return types.Conflict("%s already exists", name)
	}
	if err != nil {
		return types.Storage("create", err)
	}
	return nil
}

func findNamed[T any](db *gorm.DB, name string) (*T, error) {
	var record T
	if err := db.Where("name = ?", name).First(&record).Error; err != nil {
		return nil, notFoundOr(err, "find", "%s was not found", name)
	}
	return &record, nil
}

func listNamed[T any](db *gorm.DB) ([]T, error) {
	records := []T{}
	if err := db.Order("name").Find(&records).Error; err != nil {
		return nil, types.Storage("list", err)
	}
	return records, nil
}

// replaceNamed locates the record by name and rewrites the given columns,
// including nil and zero values, in one transaction.
func replaceNamed[T any](db *gorm.DB, name string, record *T, columns []string) (*T, error) {
	var updated T

	err := db.Transaction(func(tx *gorm.DB) error {
		var existing T
		if err := forUpdate(tx).Where("name = ?", name).First(&existing).Error; err != nil {
			return err
		}
		if err := tx.Model(&existing).Select(columns).Updates(record).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", idOf(&existing)).First(&updated).Error
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, types.Conflict("%s already exists", nameOf(record))
	}
	if err != nil {
		return nil, notFoundOr(err, "replace", "%s was not found", name)
	}
	return &updated, nil
}

func deleteNamed[T any](db *gorm.DB, name string) error {
	var record T
	result := db.Where("name = ?", name).Delete(&record)
	if result.Error != nil {
		return types.Storage("delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return types.NotFound("%s was not found", name)
	}
	return nil
}

func idOf(record interface{}) string {
	switch r := record.(type) {
	case *models.Food:
		return r.ID
	case *models.Meal:
		return r.ID
	}
	return ""
}

func nameOf(record interface{}) string {
	switch r := record.(type) {
	case *models.Food:
		return r.Name
	case *models.Meal:
		return r.Name
	}
	return ""
}
