package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/localnerve/foodtrack/internal/models"
	"github.com/localnerve/foodtrack/internal/store"
	"github.com/localnerve/foodtrack/internal/testutil"
	"github.com/localnerve/foodtrack/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type diaryFixture struct {
	diary       *DiaryService
	credentials *CredentialService
	sessions    *SessionService
	store       *store.Store
}

func newDiaryFixture(t *testing.T) *diaryFixture {
	s := store.New(testutil.NewTestDB(t))
	return &diaryFixture{
		diary:       NewDiaryService(s),
		credentials: NewCredentialService(s, testCost, true),
		sessions:    NewSessionService("secret", time.Hour, s),
		store:       s,
	}
}

func (f *diaryFixture) user(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := f.credentials.Register(context.Background(), RegisterInput{Username: username, Password: "p@ss1234", Email: username + "@example.com"})
	require.NoError(t, err)
	return user
}

func chickenInput() EntryInput {
	return EntryInput{
		Kind:     "food",
		Date:     strPtr("2024-01-01"),
		FoodName: strPtr("chicken"),
		Nutrition: &NutritionInput{
			Protein:  flexPtr(27),
			Carbs:    flexPtr(0),
			Fat:      flexPtr(3.6),
			Calories: flexPtr(138),
		},
	}
}

func weightInput(value float64) EntryInput {
	return EntryInput{Kind: "weight", Date: strPtr("2024-01-02"), WeightValue: flexPtr(value)}
}

// register, fail a login, log in, append with the token, read back
func TestDiaryLoginScenario(t *testing.T) {
	f := newDiaryFixture(t)
	ctx := context.Background()

	_, err := f.credentials.Register(ctx, RegisterInput{Username: "alice123", Password: "p@ss1234", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = f.credentials.Verify(ctx, "alice123", "wrong")
	assert.True(t, types.IsAuthReason(err, types.ReasonWrongPassword), "got %v", err)

	user, err := f.credentials.Verify(ctx, "alice123", "p@ss1234")
	require.NoError(t, err)
	token, err := f.sessions.Issue(user)
	require.NoError(t, err)

	authed, err := f.sessions.Authenticate(ctx, token)
	require.NoError(t, err)
	entry, err := f.diary.Append(ctx, authed.ID, chickenInput())
	require.NoError(t, err)

	stored, err := f.store.FindUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, stored.Diary, 1)

	got := stored.Diary[0]
	assert.Equal(t, entry.EntryID, got.EntryID)
	assert.NotEmpty(t, got.EntryID)
	assert.Equal(t, models.KindFood, got.Kind)
	assert.Equal(t, "2024-01-01", got.Date)
	assert.Equal(t, &models.FoodEntry{
		FoodName:  "chicken",
		Nutrition: models.Nutrition{Protein: 27, Carbs: 0, Fat: 3.6, Calories: 138},
	}, got.Food())
	assert.Nil(t, got.WeightValue)
}

func TestAppendAssignsFreshIDs(t *testing.T) {
	f := newDiaryFixture(t)
	ctx := context.Background()
	user := f.user(t, "alice123")

	first, err := f.diary.Append(ctx, user.ID, weightInput(70))
	require.NoError(t, err)
	second, err := f.diary.Append(ctx, user.ID, weightInput(70))
	require.NoError(t, err)

	assert.NotEqual(t, first.EntryID, second.EntryID)

	entries, err := f.diary.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first.EntryID, entries[0].EntryID)
	assert.Equal(t, second.EntryID, entries[1].EntryID)
}

func TestAppendDefaultsDate(t *testing.T) {
	f := newDiaryFixture(t)
	f.diary.today = func() string { return "2024-06-30" }
	user := f.user(t, "alice123")

	entry, err := f.diary.Append(context.Background(), user.ID, EntryInput{Kind: "weight", WeightValue: flexPtr(70)})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-30", entry.Date)
}

func TestAppendValidation(t *testing.T) {
	f := newDiaryFixture(t)
	user := f.user(t, "alice123")

	missingMacro := chickenInput()
	missingMacro.Nutrition.Fat = nil

	foodWithWeight := chickenInput()
	foodWithWeight.WeightValue = flexPtr(70)

	weightWithFood := weightInput(70)
	weightWithFood.FoodName = strPtr("chicken")

	nanMacro := chickenInput()
	nanMacro.Nutrition.Protein = flexPtr(math.NaN())

	infiniteFoodWeight := chickenInput()
	infiniteFoodWeight.Weight = flexPtr(math.Inf(1))

	cases := map[string]EntryInput{
		"unknown kind":          {Kind: "drink"},
		"missing kind":          {WeightValue: flexPtr(70)},
		"food without macros":   {Kind: "food", FoodName: strPtr("chicken")},
		"food missing a macro":  missingMacro,
		"food with weightValue": foodWithWeight,
		"weight without value":  {Kind: "weight"},
		"weight with food":      weightWithFood,
		"negative weight":       weightInput(-1),
		"infinite weight":       weightInput(math.Inf(1)),
		"negative infinity":     weightInput(math.Inf(-1)),
		"NaN macro":             nanMacro,
		"infinite food weight":  infiniteFoodWeight,
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.diary.Append(context.Background(), user.ID, input)
			assert.True(t, types.IsKind(err, types.KindValidation), "got %v", err)
		})
	}

	entries, err := f.diary.List(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAppendUnknownUser(t *testing.T) {
	f := newDiaryFixture(t)
	_, err := f.diary.Append(context.Background(), "missing", weightInput(70))
	assert.True(t, types.IsKind(err, types.KindNotFound), "got %v", err)
}

func TestUpdateWeightEntry(t *testing.T) {
	f := newDiaryFixture(t)
	ctx := context.Background()
	user := f.user(t, "alice123")

	entry, err := f.diary.Append(ctx, user.ID, weightInput(70))
	require.NoError(t, err)

	updated, err := f.diary.UpdateEntry(ctx, user.ID, entry.EntryID, EntryPatch{WeightValue: flexPtr(68.5)})
	require.NoError(t, err)
	assert.Equal(t, 68.5, updated.WeightMeasurement().WeightValue)
	assert.Equal(t, "2024-01-02", updated.Date)
	assert.Nil(t, updated.Food())
	assert.Nil(t, updated.Protein)
	assert.Nil(t, updated.Calories)
}

func TestUpdateRejectsNonFiniteValues(t *testing.T) {
	f := newDiaryFixture(t)
	ctx := context.Background()
	user := f.user(t, "alice123")

	entry, err := f.diary.Append(ctx, user.ID, weightInput(70))
	require.NoError(t, err)

	_, err = f.diary.UpdateEntry(ctx, user.ID, entry.EntryID, EntryPatch{WeightValue: flexPtr(math.Inf(1))})
	assert.True(t, types.IsKind(err, types.KindValidation), "got %v", err)

	entries, err := f.diary.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 70.0, entries[0].WeightMeasurement().WeightValue)
}

func TestUpdateFoodEntryPartial(t *testing.T) {
	f := newDiaryFixture(t)
	ctx := context.Background()
	user := f.user(t, "alice123")

	entry, err := f.diary.Append(ctx, user.ID, chickenInput())
	require.NoError(t, err)

	updated, err := f.diary.UpdateEntry(ctx, user.ID, entry.EntryID, EntryPatch{
		MealLabel: strPtr("dinner"),
		Nutrition: &NutritionInput{Calories: flexPtr(150)},
	})
	require.NoError(t, err)

	food := updated.Food()
	require.NotNil(t, food)
	assert.Equal(t, "dinner", food.MealLabel)
	assert.Equal(t, "chicken", food.FoodName)
	assert.Equal(t, models.Nutrition{Protein: 27, Carbs: 0, Fat: 3.6, Calories: 150}, food.Nutrition)
}

func TestUpdateRejectsOtherVariantFields(t *testing.T) {
	f := newDiaryFixture(t)
	ctx := context.Background()
	user := f.user(t, "alice123")

	weight, err := f.diary.Append(ctx, user.ID, weightInput(70))
	require.NoError(t, err)
	food, err := f.diary.Append(ctx, user.ID, chickenInput())
	require.NoError(t, err)

	_, err = f.diary.UpdateEntry(ctx, user.ID, weight.EntryID, EntryPatch{
		WeightValue: flexPtr(50),
		Nutrition:   &NutritionInput{Protein: flexPtr(1)},
	})
	assert.True(t, types.IsKind(err, types.KindValidation), "got %v", err)

	_, err = f.diary.UpdateEntry(ctx, user.ID, food.EntryID, EntryPatch{WeightValue: flexPtr(50)})
	assert.True(t, types.IsKind(err, types.KindValidation), "got %v", err)

	_, err = f.diary.UpdateEntry(ctx, user.ID, food.EntryID, EntryPatch{Kind: "weight"})
	assert.True(t, types.IsKind(err, types.KindValidation), "got %v", err)

	entries, err := f.diary.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 70.0, entries[0].WeightMeasurement().WeightValue)
	assert.Equal(t, 27.0, entries[1].Food().Nutrition.Protein)
	assert.Nil(t, entries[1].WeightValue)
}

func TestEntriesScopedByOwner(t *testing.T) {
	f := newDiaryFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice123")
	bob := f.user(t, "bob12345")

	entry, err := f.diary.Append(ctx, alice.ID, weightInput(70))
	require.NoError(t, err)

	_, err = f.diary.UpdateEntry(ctx, bob.ID, entry.EntryID, EntryPatch{WeightValue: flexPtr(1)})
	assert.True(t, types.IsKind(err, types.KindNotFound), "got %v", err)

	err = f.diary.DeleteEntry(ctx, bob.ID, entry.EntryID)
	assert.True(t, types.IsKind(err, types.KindNotFound), "got %v", err)

	_, err = f.diary.UpdateEntry(ctx, alice.ID, "missing", EntryPatch{WeightValue: flexPtr(1)})
	assert.True(t, types.IsKind(err, types.KindNotFound), "got %v", err)
}

func TestDeleteEntryRemovesExactlyOne(t *testing.T) {
	f := newDiaryFixture(t)
	ctx := context.Background()
	user := f.user(t, "alice123")

	var ids []string
	for _, w := range []float64{70, 71, 72, 73} {
		entry, err := f.diary.Append(ctx, user.ID, weightInput(w))
		require.NoError(t, err)
		ids = append(ids, entry.EntryID)
	}

	require.NoError(t, f.diary.DeleteEntry(ctx, user.ID, ids[1]))

	entries, err := f.diary.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, id := range []string{ids[0], ids[2], ids[3]} {
		assert.Equal(t, id, entries[i].EntryID)
	}
	assert.Equal(t, 72.0, entries[1].WeightMeasurement().WeightValue)
}
