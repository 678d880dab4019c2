package models

import (
	"time"
)

// User is the identity root. Diary entries and saved meal references hang off it.
type User struct {
	ID           string `gorm:"type:char(36);primaryKey" json:"id"`
	Username     string `gorm:"size:15;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:320;not null" json:"email"`
	EmailKey     string `gorm:"size:320;uniqueIndex;not null" json:"-"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	Sex           *string  `gorm:"size:32" json:"sex,omitempty"`
	Birthdate     *string  `gorm:"size:32" json:"birthdate,omitempty"`
	Height        *float64 `json:"height,omitempty"`
	CurrentWeight *float64 `json:"currentWeight,omitempty"`
	GoalWeight    *float64 `json:"goalWeight,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Diary []DiaryEntry `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"diary"`
	Meals []SavedMeal  `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// SavedMeal is a non-owning reference from a user to a Food or Meal id
type SavedMeal struct {
	UserID    string `gorm:"type:char(36);primaryKey"`
	Ref       string `gorm:"size:64;primaryKey"`
	CreatedAt time.Time
}

// MealRefs returns the saved references in the order they were added
func (u *User) MealRefs() []string {
	refs := make([]string, 0, len(u.Meals))
	for _, m := range u.Meals {
		refs = append(refs, m.Ref)
	}
	return refs
}

// UserView is the JSON shape returned to clients
type UserView struct {
	*User
	Meals []string `json:"meals"`
}

// View wraps the user for serialization with its saved meal references flattened
func (u *User) View() UserView {
	if u.Diary == nil {
		u.Diary = []DiaryEntry{}
	}
	return UserView{User: u, Meals: u.MealRefs()}
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// TableName overrides the table name for SavedMeal
func (SavedMeal) TableName() string {
	return "user_saved_meals"
}
