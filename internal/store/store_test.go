package store_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/localnerve/foodtrack/internal/models"
	"github.com/localnerve/foodtrack/internal/store"
	"github.com/localnerve/foodtrack/internal/testutil"
	"github.com/localnerve/foodtrack/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *store.Store {
	return store.New(testutil.NewTestDB(t))
}

func createUser(t *testing.T, s *store.Store, username string) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        username + "@example.com",
		EmailKey:     username + "@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func appendWeight(t *testing.T, s *store.Store, userID string, value float64) models.DiaryEntry {
	t.Helper()
	entry := models.NewWeightEntry(uuid.NewString(), userID, "2024-01-01", value)
	require.NoError(t, s.AppendEntry(context.Background(), &entry))
	return entry
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestCreateUserConflicts(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	createUser(t, s, "alice123")

	dupName := &models.User{ID: uuid.NewString(), Username: "alice123", Email: "x@example.com", EmailKey: "x@example.com", PasswordHash: "h"}
	err := s.CreateUser(ctx, dupName)
	assert.True(t, types.IsKind(err, types.KindConflict), "got %v", err)
	assert.ErrorContains(t, err, "alice123")

	dupEmail := &models.User{ID: uuid.NewString(), Username: "bob12345", Email: "alice123@example.com", EmailKey: "alice123@example.com", PasswordHash: "h"}
	err = s.CreateUser(ctx, dupEmail)
	assert.True(t, types.IsKind(err, types.KindConflict), "got %v", err)

	_, err = s.FindUserByUsername(ctx, "bob12345")
	assert.True(t, types.IsKind(err, types.KindNotFound))
}

func TestFindUserLoadsDiaryInOrder(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	user := createUser(t, s, "alice123")

	first := appendWeight(t, s, user.ID, 70)
	second := appendWeight(t, s, user.ID, 69.5)

	found, err := s.FindUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, found.Diary, 2)
	assert.Equal(t, first.EntryID, found.Diary[0].EntryID)
	assert.Equal(t, second.EntryID, found.Diary[1].EntryID)

	byKey, err := s.FindUserByEmailKey(ctx, "alice123@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byKey.ID)
}

func TestUpdateUser(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	user := createUser(t, s, "alice123")
	createUser(t, s, "bob12345")

	updated, err := s.UpdateUser(ctx, "alice123", map[string]interface{}{"goal_weight": 65.0})
	require.NoError(t, err)
	require.NotNil(t, updated.GoalWeight)
	assert.Equal(t, 65.0, *updated.GoalWeight)
	assert.Equal(t, "alice123@example.com", updated.Email)

	_, err = s.UpdateUser(ctx, "alice123", map[string]interface{}{"username": "bob12345"})
	assert.True(t, types.IsKind(err, types.KindConflict), "got %v", err)

	_, err = s.UpdateUser(ctx, "nobody12", map[string]interface{}{"sex": "f"})
	assert.True(t, types.IsKind(err, types.KindNotFound), "got %v", err)

	renamed, err := s.UpdateUser(ctx, "alice123", map[string]interface{}{"username": "alice456"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, renamed.ID)
}

func TestSavedMealsAreASet(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	createUser(t, s, "alice123")

	_, err := s.AddSavedMeal(ctx, "alice123", "meal-1")
	require.NoError(t, err)
	user, err := s.AddSavedMeal(ctx, "alice123", "meal-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"meal-1"}, user.MealRefs())

	user, err = s.RemoveSavedMeal(ctx, "alice123", "meal-1")
	require.NoError(t, err)
	assert.Empty(t, user.MealRefs())

	_, err = s.RemoveSavedMeal(ctx, "alice123", "meal-1")
	assert.NoError(t, err)

	_, err = s.AddSavedMeal(ctx, "nobody12", "meal-1")
	assert.True(t, types.IsKind(err, types.KindNotFound))
}

func TestDeleteUserLeavesCatalog(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	user := createUser(t, s, "alice123")
	appendWeight(t, s, user.ID, 70)
	_, err := s.AddSavedMeal(ctx, "alice123", "chicken")
	require.NoError(t, err)
	require.NoError(t, s.CreateFood(ctx, &models.Food{ID: uuid.NewString(), Name: "chicken", Protein: floatPtr(31), Carbs: floatPtr(0), Fat: floatPtr(3.6), Calories: floatPtr(165)}))

	require.NoError(t, s.DeleteUser(ctx, "alice123"))

	_, err = s.FindUserByUsername(ctx, "alice123")
	assert.True(t, types.IsKind(err, types.KindNotFound))
	entries, err := s.ListEntries(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
	_, err = s.FindFood(ctx, "chicken")
	assert.NoError(t, err)

	err = s.DeleteUser(ctx, "alice123")
	assert.True(t, types.IsKind(err, types.KindNotFound))
}

func TestAppendEntryUnknownUser(t *testing.T) {
	s := newStore(t)
	entry := models.NewWeightEntry(uuid.NewString(), uuid.NewString(), "2024-01-01", 70)
	err := s.AppendEntry(context.Background(), &entry)
	assert.True(t, types.IsKind(err, types.KindNotFound), "got %v", err)
}

func TestDeleteEntryKeepsSiblings(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	user := createUser(t, s, "alice123")

	a := appendWeight(t, s, user.ID, 70)
	b := appendWeight(t, s, user.ID, 71)
	c := appendWeight(t, s, user.ID, 72)

	require.NoError(t, s.DeleteEntry(ctx, user.ID, b.EntryID))

	entries, err := s.ListEntries(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, a.EntryID, entries[0].EntryID)
	assert.Equal(t, c.EntryID, entries[1].EntryID)

	err = s.DeleteEntry(ctx, user.ID, b.EntryID)
	assert.True(t, types.IsKind(err, types.KindNotFound))
}

func TestEntryMutationsScopedByOwner(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	alice := createUser(t, s, "alice123")
	bob := createUser(t, s, "bob12345")
	entry := appendWeight(t, s, alice.ID, 70)

	_, err := s.UpdateEntry(ctx, bob.ID, entry.EntryID, func(*models.DiaryEntry) (map[string]interface{}, error) {
		return map[string]interface{}{"weight_value": 1.0}, nil
	})
	assert.True(t, types.IsKind(err, types.KindNotFound), "got %v", err)

	err = s.DeleteEntry(ctx, bob.ID, entry.EntryID)
	assert.True(t, types.IsKind(err, types.KindNotFound))

	entries, err := s.ListEntries(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 70.0, *entries[0].WeightValue)
}

func TestUpdateEntry(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	user := createUser(t, s, "alice123")
	entry := appendWeight(t, s, user.ID, 70)

	updated, err := s.UpdateEntry(ctx, user.ID, entry.EntryID, func(e *models.DiaryEntry) (map[string]interface{}, error) {
		assert.Equal(t, models.KindWeight, e.Kind)
		return map[string]interface{}{"weight_value": 68.2}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 68.2, *updated.WeightValue)
	assert.Equal(t, entry.EntryID, updated.EntryID)
	assert.Nil(t, updated.Protein)

	_, err = s.UpdateEntry(ctx, user.ID, entry.EntryID, func(*models.DiaryEntry) (map[string]interface{}, error) {
		return nil, types.Validation("rejected")
	})
	assert.True(t, types.IsKind(err, types.KindValidation))

	entries, err := s.ListEntries(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 68.2, *entries[0].WeightValue)
}

func TestFoodConflictLeavesOriginal(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	original := &models.Food{ID: uuid.NewString(), Name: "chicken", Protein: floatPtr(31), Carbs: floatPtr(0), Fat: floatPtr(3.6), Calories: floatPtr(165)}
	require.NoError(t, s.CreateFood(ctx, original))

	dup := &models.Food{ID: uuid.NewString(), Name: "chicken", Protein: floatPtr(1), Carbs: floatPtr(1), Fat: floatPtr(1), Calories: floatPtr(1)}
	err := s.CreateFood(ctx, dup)
	assert.True(t, types.IsKind(err, types.KindConflict), "got %v", err)

	found, err := s.FindFood(ctx, "chicken")
	require.NoError(t, err)
	assert.Equal(t, original.ID, found.ID)
	assert.Equal(t, 165.0, *found.Calories)

	// Names are case sensitive
	upper := &models.Food{ID: uuid.NewString(), Name: "Chicken", Protein: floatPtr(1), Carbs: floatPtr(1), Fat: floatPtr(1), Calories: floatPtr(1)}
	require.NoError(t, s.CreateFood(ctx, upper))

	found, err = s.FindFood(ctx, "Chicken")
	require.NoError(t, err)
	assert.Equal(t, upper.ID, found.ID)

	_, err = s.FindFood(ctx, "CHICKEN")
	assert.True(t, types.IsKind(err, types.KindNotFound), "got %v", err)

	foods, err := s.ListFoods(ctx)
	require.NoError(t, err)
	assert.Len(t, foods, 2)
}

func TestReplaceFood(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	food := &models.Food{ID: uuid.NewString(), Name: "rice", Weight: floatPtr(100), Quantity: floatPtr(1), Protein: floatPtr(2.7), Carbs: floatPtr(28), Fat: floatPtr(0.3), Calories: floatPtr(130)}
	require.NoError(t, s.CreateFood(ctx, food))
	require.NoError(t, s.CreateFood(ctx, &models.Food{ID: uuid.NewString(), Name: "beans", Protein: floatPtr(1), Carbs: floatPtr(1), Fat: floatPtr(1), Calories: floatPtr(1)}))

	replaced, err := s.ReplaceFood(ctx, "rice", &models.Food{Name: "brown rice", Protein: floatPtr(2.6), Carbs: floatPtr(23), Fat: floatPtr(0.9), Calories: floatPtr(111)})
	require.NoError(t, err)
	assert.Equal(t, food.ID, replaced.ID)
	assert.Equal(t, "brown rice", replaced.Name)
	assert.Nil(t, replaced.Weight)
	assert.Nil(t, replaced.Quantity)

	_, err = s.ReplaceFood(ctx, "brown rice", &models.Food{Name: "beans", Protein: floatPtr(1), Carbs: floatPtr(1), Fat: floatPtr(1), Calories: floatPtr(1)})
	assert.True(t, types.IsKind(err, types.KindConflict), "got %v", err)

	_, err = s.ReplaceFood(ctx, "rice", &models.Food{Name: "rice"})
	assert.True(t, types.IsKind(err, types.KindNotFound), "got %v", err)

	require.NoError(t, s.DeleteFood(ctx, "brown rice"))
	assert.True(t, types.IsKind(s.DeleteFood(ctx, "brown rice"), types.KindNotFound))
}

func TestMealsKeepFoodOrder(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	meal := &models.Meal{ID: uuid.NewString(), Name: "breakfast", Foods: models.RefList{"eggs", "toast", "eggs"}, Calories: floatPtr(450)}
	require.NoError(t, s.CreateMeal(ctx, meal))

	found, err := s.FindMeal(ctx, "breakfast")
	require.NoError(t, err)
	assert.Equal(t, models.RefList{"eggs", "toast", "eggs"}, found.Foods)
	assert.Nil(t, found.Protein)

	replaced, err := s.ReplaceMeal(ctx, "breakfast", &models.Meal{Name: "breakfast", Foods: models.RefList{"oats"}})
	require.NoError(t, err)
	assert.Equal(t, models.RefList{"oats"}, replaced.Foods)
	assert.Nil(t, replaced.Calories)

	meals, err := s.ListMeals(ctx)
	require.NoError(t, err)
	assert.Len(t, meals, 1)

	err = s.CreateMeal(ctx, &models.Meal{ID: uuid.NewString(), Name: "breakfast", Foods: models.RefList{}})
	assert.True(t, types.IsKind(err, types.KindConflict))
}
