// diary.go
//
// A nutrition tracking data service with a shared food catalog
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of foodtrack.
// foodtrack is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// foodtrack is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with foodtrack.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/foodtrack/internal/models"
	"github.com/localnerve/foodtrack/internal/store"
	"github.com/localnerve/foodtrack/internal/types"
)

// DiaryStore is the persistence the diary ledger needs
type DiaryStore interface {
	AppendEntry(ctx context.Context, entry *models.DiaryEntry) error
	ListEntries(ctx context.Context, userID string) ([]models.DiaryEntry, error)
	UpdateEntry(ctx context.Context, userID, entryID string, mutate store.EntryMutation) (*models.DiaryEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID string) error
}

// NutritionInput carries macro values. On append all four are required, on
// update only the supplied ones are written.
type NutritionInput struct {
	Protein  *types.FlexFloat64 `json:"protein" validate:"omitnil,finite,gte=0"`
	Carbs    *types.FlexFloat64 `json:"carbs" validate:"omitnil,finite,gte=0"`
	Fat      *types.FlexFloat64 `json:"fat" validate:"omitnil,finite,gte=0"`
	Calories *types.FlexFloat64 `json:"calories" validate:"omitnil,finite,gte=0"`
}

// EntryInput is a diary entry of either kind. Kind selects which fields apply.
// It doubles as the patch for updates, where every field is optional.
type EntryInput struct {
	Kind        string             `json:"kind" validate:"omitempty,oneof=food weight"`
	Date        *string            `json:"date" validate:"omitnil,max=32"`
	MealLabel   *string            `json:"mealLabel" validate:"omitnil,max=64"`
	FoodName    *string            `json:"foodName" validate:"omitnil,max=255"`
	Weight      *types.FlexFloat64 `json:"weight" validate:"omitnil,finite,gte=0"`
	Quantity    *types.FlexFloat64 `json:"quantity" validate:"omitnil,finite,gte=0"`
	Nutrition   *NutritionInput    `json:"nutrition"`
	WeightValue *types.FlexFloat64 `json:"weightValue" validate:"omitnil,finite,gte=0"`
}

// EntryPatch is the set of fields an update overwrites
type EntryPatch = EntryInput

// DiaryService appends to and edits a user's diary ledger
type DiaryService struct {
	store DiaryStore
	today func() string
}

// NewDiaryService creates a diary service
func NewDiaryService(store DiaryStore) *DiaryService {
	return &DiaryService{
		store: store,
		today: func() string {
			return time.Now().UTC().Format(time.DateOnly)
		},
	}
}

// Append adds a new entry at the end of the user's ledger
func (s *DiaryService) Append(ctx context.Context, userID string, input EntryInput) (*models.DiaryEntry, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	date := s.today()
	if input.Date != nil && strings.TrimSpace(*input.Date) != "" {
		date = strings.TrimSpace(*input.Date)
	}

	var entry models.DiaryEntry
	switch models.EntryKind(input.Kind) {
	case models.KindFood:
		if input.WeightValue != nil {
			return nil, types.Validation("weightValue is not allowed on a food entry")
		}
		n := input.Nutrition
		if n == nil || n.Protein == nil || n.Carbs == nil || n.Fat == nil || n.Calories == nil {
			return nil, types.Validation("nutrition requires protein, carbs, fat and calories")
		}
		entry = models.NewFoodEntry(uuid.NewString(), userID, date, models.FoodEntry{
			MealLabel: deref(input.MealLabel),
			FoodName:  deref(input.FoodName),
			Weight:    input.Weight.Ptr(),
			Quantity:  input.Quantity.Ptr(),
			Nutrition: models.Nutrition{
				Protein:  n.Protein.Float64(),
				Carbs:    n.Carbs.Float64(),
				Fat:      n.Fat.Float64(),
				Calories: n.Calories.Float64(),
			},
		})

	case models.KindWeight:
		if field := input.foodField(); field != "" {
			return nil, types.Validation("%s is not allowed on a weight entry", field)
		}
		if input.WeightValue == nil {
			return nil, types.Validation("weightValue is required")
		}
		entry = models.NewWeightEntry(uuid.NewString(), userID, date, input.WeightValue.Float64())

	default:
		return nil, types.Validation("kind must be one of [food weight]")
	}

	if err := entry.Validate(); err != nil {
		return nil, types.Validation("%v", err)
	}
	if err := s.store.AppendEntry(ctx, &entry); err != nil {
		return nil, err
	}

	logger.Info().Str("user", userID).Str("entry", entry.EntryID).Str("kind", string(entry.Kind)).Msg("Appended diary entry")
	return &entry, nil
}

// List returns the user's entries in insertion order
func (s *DiaryService) List(ctx context.Context, userID string) ([]models.DiaryEntry, error) {
	return s.store.ListEntries(ctx, userID)
}

// UpdateEntry overwrites the fields present in patch on the entry entryID owned
// by userID. A patch naming fields of the other kind writes nothing.
func (s *DiaryService) UpdateEntry(ctx context.Context, userID, entryID string, patch EntryPatch) (*models.DiaryEntry, error) {
	if err := validateInput(patch); err != nil {
		return nil, err
	}

	entry, err := s.store.UpdateEntry(ctx, userID, entryID, func(entry *models.DiaryEntry) (map[string]interface{}, error) {
		return patch.fieldsFor(entry.Kind)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Str("user", userID).Str("entry", entryID).Msg("Updated diary entry")
	return entry, nil
}

// DeleteEntry removes the entry entryID owned by userID
func (s *DiaryService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	if err := s.store.DeleteEntry(ctx, userID, entryID); err != nil {
		return err
	}
	logger.Info().Str("user", userID).Str("entry", entryID).Msg("Deleted diary entry")
	return nil
}

// fieldsFor maps the patch onto columns of an entry of the given kind
func (p EntryPatch) fieldsFor(kind models.EntryKind) (map[string]interface{}, error) {
	if p.Kind != "" && models.EntryKind(p.Kind) != kind {
		return nil, types.Validation("entry kind cannot change from %s to %s", kind, p.Kind)
	}

	fields := map[string]interface{}{}
	if p.Date != nil {
		fields["date"] = strings.TrimSpace(*p.Date)
	}

	switch kind {
	case models.KindFood:
		if p.WeightValue != nil {
			return nil, types.Validation("weightValue is not allowed on a food entry")
		}
		if p.MealLabel != nil {
			fields["meal_label"] = *p.MealLabel
		}
		if p.FoodName != nil {
			fields["food_name"] = *p.FoodName
		}
		if p.Weight != nil {
			fields["weight"] = p.Weight.Float64()
		}
		if p.Quantity != nil {
			fields["quantity"] = p.Quantity.Float64()
		}
		if n := p.Nutrition; n != nil {
			if n.Protein != nil {
				fields["protein"] = n.Protein.Float64()
			}
			if n.Carbs != nil {
				fields["carbs"] = n.Carbs.Float64()
			}
			if n.Fat != nil {
				fields["fat"] = n.Fat.Float64()
			}
			if n.Calories != nil {
				fields["calories"] = n.Calories.Float64()
			}
		}

	case models.KindWeight:
		if field := p.foodField(); field != "" {
			return nil, types.Validation("%s is not allowed on a weight entry", field)
		}
		if p.WeightValue != nil {
			fields["weight_value"] = p.WeightValue.Float64()
		}
	}

	return fields, nil
}

// foodField names the first food only field present, or returns ""
func (p EntryInput) foodField() string {
	switch {
	case p.MealLabel != nil:
		return "mealLabel"
	case p.FoodName != nil:
		return "foodName"
	case p.Weight != nil:
		return "weight"
	case p.Quantity != nil:
		return "quantity"
	case p.Nutrition != nil:
		return "nutrition"
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
