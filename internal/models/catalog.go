package models

import (
	"time"
)

// Food is a catalog item keyed by its unique name
type Food struct {
	ID       string   `gorm:"type:char(36);primaryKey" json:"id"`
	Name     string   `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Weight   *float64 `json:"weight"`
	Quantity *float64 `json:"quantity"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
	Calories *float64 `json:"calories"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Meal is a named, ordered list of food references with caller supplied totals.
// The totals are stored as given and never recomputed.
type Meal struct {
	ID       string   `gorm:"type:char(36);primaryKey" json:"id"`
	Name     string   `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Foods    RefList  `json:"foods"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
	Calories *float64 `json:"calories"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Food
func (Food) TableName() string {
	return "foods"
}

// TableName overrides the table name for Meal
func (Meal) TableName() string {
	return "meals"
}
