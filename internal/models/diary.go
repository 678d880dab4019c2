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

package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// EntryKind discriminates the diary entry variants
type EntryKind string

const (
	KindFood   EntryKind = "food"
	KindWeight EntryKind = "weight"
)

// Nutrition is the macro content of a food entry
type Nutrition struct {
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Calories float64 `json:"calories"`
}

// FoodEntry is the food consumption variant
type FoodEntry struct {
	MealLabel string    `json:"mealLabel,omitempty"`
	FoodName  string    `json:"foodName,omitempty"`
	Weight    *float64  `json:"weight,omitempty"`
	Quantity  *float64  `json:"quantity,omitempty"`
	Nutrition Nutrition `json:"nutrition"`
}

// WeightEntry is the body weight measurement variant
type WeightEntry struct {
	WeightValue float64 `json:"weightValue"`
}

// DiaryEntry is one row of a user's diary ledger.
// The variant columns are nullable; only the columns of Kind are ever set.
// Seq preserves insertion order, EntryID is the public address.
type DiaryEntry struct {
	Seq     uint64    `gorm:"primaryKey;autoIncrement"`
	EntryID string    `gorm:"type:char(36);uniqueIndex;not null"`
	UserID  string    `gorm:"type:char(36);index:idx_diary_user;not null"`
	Kind    EntryKind `gorm:"size:16;not null"`
	Date    string    `gorm:"size:32"`

	MealLabel *string  `gorm:"size:64"`
	FoodName  *string  `gorm:"size:255"`
	Weight    *float64
	Quantity  *float64
	Protein   *float64
	Carbs     *float64
	Fat       *float64
	Calories  *float64

	WeightValue *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for DiaryEntry
func (DiaryEntry) TableName() string {
	return "diary_entries"
}

// NewFoodEntry builds a food variant row
func NewFoodEntry(id, userID, date string, food FoodEntry) DiaryEntry {
	n := food.Nutrition
	return DiaryEntry{
		EntryID:   id,
		UserID:    userID,
		Kind:      KindFood,
		Date:      date,
		MealLabel: optString(food.MealLabel),
		FoodName:  optString(food.FoodName),
		Weight:    food.Weight,
		Quantity:  food.Quantity,
		Protein:   &n.Protein,
		Carbs:     &n.Carbs,
		Fat:       &n.Fat,
		Calories:  &n.Calories,
	}
}

// NewWeightEntry builds a weight variant row
func NewWeightEntry(id, userID, date string, value float64) DiaryEntry {
	return DiaryEntry{
		EntryID:     id,
		UserID:      userID,
		Kind:        KindWeight,
		Date:        date,
		WeightValue: &value,
	}
}

// Food returns the food variant, or nil for other kinds
func (e *DiaryEntry) Food() *FoodEntry {
	if e.Kind != KindFood {
		return nil
	}
	return &FoodEntry{
		MealLabel: deref(e.MealLabel),
		FoodName:  deref(e.FoodName),
		Weight:    e.Weight,
		Quantity:  e.Quantity,
		Nutrition: Nutrition{
			Protein:  derefFloat(e.Protein),
			Carbs:    derefFloat(e.Carbs),
			Fat:      derefFloat(e.Fat),
			Calories: derefFloat(e.Calories),
		},
	}
}

// WeightMeasurement returns the weight variant, or nil for other kinds
func (e *DiaryEntry) WeightMeasurement() *WeightEntry {
	if e.Kind != KindWeight {
		return nil
	}
	return &WeightEntry{WeightValue: derefFloat(e.WeightValue)}
}

// Validate checks the variant rules: required columns are set and
// no column of the other variant is populated.
func (e *DiaryEntry) Validate() error {
	foodCols := []bool{e.MealLabel != nil, e.FoodName != nil, e.Weight != nil, e.Quantity != nil,
		e.Protein != nil, e.Carbs != nil, e.Fat != nil, e.Calories != nil}

	switch e.Kind {
	case KindFood:
		if e.Protein == nil || e.Carbs == nil || e.Fat == nil || e.Calories == nil {
			return fmt.Errorf("food entry requires protein, carbs, fat and calories")
		}
		if e.WeightValue != nil {
			return fmt.Errorf("food entry cannot carry weightValue")
		}
	case KindWeight:
		if e.WeightValue == nil {
			return fmt.Errorf("weight entry requires weightValue")
		}
		for _, set := range foodCols {
			if set {
				return fmt.Errorf("weight entry cannot carry food fields")
			}
		}
	default:
		return fmt.Errorf("unknown entry kind %q", e.Kind)
	}
	return nil
}

// MarshalJSON renders the entry as its variant
func (e DiaryEntry) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"id":   e.EntryID,
		"kind": e.Kind,
		"date": e.Date,
	}

	switch e.Kind {
	case KindFood:
		f := e.Food()
		if f.MealLabel != "" {
			out["mealLabel"] = f.MealLabel
		}
		if f.FoodName != "" {
			out["foodName"] = f.FoodName
		}
		if f.Weight != nil {
			out["weight"] = *f.Weight
		}
		if f.Quantity != nil {
			out["quantity"] = *f.Quantity
		}
		out["nutrition"] = f.Nutrition
	case KindWeight:
		out["weightValue"] = e.WeightMeasurement().WeightValue
	}

	return json.Marshal(out)
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
