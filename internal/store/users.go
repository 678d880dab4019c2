// users.go
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

package store

import (
	"context"
	"errors"

	"github.com/localnerve/foodtrack/internal/models"
	"github.com/localnerve/foodtrack/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateUser inserts a new user. Username and email key collisions are
// reported by the unique indexes, not by a prior read.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	err := s.conn(ctx).Omit(clause.Associations).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return s.conflictFor(ctx, user.Username, user.EmailKey, "")
	}
	if err != nil {
		return types.Storage("create user", err)
	}
	user.Diary = []models.DiaryEntry{}
	return nil
}

// FindUserByID loads a user with diary and saved meals
func (s *Store) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := loadUser(s.quiet(ctx), "id = ?", id)
	return user, notFoundOr(err, "find user", "user %s was not found", id)
}

// FindUserByUsername loads a user with diary and saved meals
func (s *Store) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := loadUser(s.quiet(ctx), "username = ?", username)
	return user, notFoundOr(err, "find user", "%s was not found", username)
}

// FindUserByEmailKey loads the user owning a unique email key
func (s *Store) FindUserByEmailKey(ctx context.Context, key string) (*models.User, error) {
	user, err := loadUser(s.quiet(ctx), "email_key = ?", key)
	return user, notFoundOr(err, "find user", "%s was not found", key)
}

// UpdateUser overwrites the given columns of the user named username
func (s *Store) UpdateUser(ctx context.Context, username string, fields map[string]interface{}) (*models.User, error) {
	var updated *models.User
	var userID string

	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := forUpdate(tx).Where("username = ?", username).First(&user).Error; err != nil {
			return err
		}
		userID = user.ID

		if len(fields) > 0 {
			if err := tx.Model(&user).Updates(fields).Error; err != nil {
				return err
			}
		}

		var err error
		updated, err = loadUser(tx, "id = ?", user.ID)
		return err
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		newName, _ := fields["username"].(string)
		newKey, _ := fields["email_key"].(string)
		return nil, s.conflictFor(ctx, newName, newKey, userID)
	}
	return updated, notFoundOr(err, "update user", "%s was not found", username)
}

// DeleteUser removes the user with its diary ledger and saved meal references.
// Catalog records the user referenced are left alone.
func (s *Store) DeleteUser(ctx context.Context, username string) error {
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := forUpdate(tx).Where("username = ?", username).First(&user).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.DiaryEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.SavedMeal{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	return notFoundOr(err, "delete user", "%s was not found", username)
}

// AddSavedMeal adds ref to the user's saved meals if it is not already there
func (s *Store) AddSavedMeal(ctx context.Context, username, ref string) (*models.User, error) {
	return s.changeSavedMeals(ctx, username, func(tx *gorm.DB, userID string) error {
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.SavedMeal{UserID: userID, Ref: ref}).Error
	})
}

// RemoveSavedMeal removes ref from the user's saved meals. Removing an absent ref is not an error.
func (s *Store) RemoveSavedMeal(ctx context.Context, username, ref string) (*models.User, error) {
	return s.changeSavedMeals(ctx, username, func(tx *gorm.DB, userID string) error {
		return tx.Where("user_id = ? AND ref = ?", userID, ref).Delete(&models.SavedMeal{}).Error
	})
}

func (s *Store) changeSavedMeals(ctx context.Context, username string, change func(tx *gorm.DB, userID string) error) (*models.User, error) {
	var updated *models.User

	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id").Where("username = ?", username).First(&user).Error; err != nil {
			return err
		}
		if err := change(tx, user.ID); err != nil {
			return err
		}
		var err error
		updated, err = loadUser(tx, "id = ?", user.ID)
		return err
	})

	return updated, notFoundOr(err, "update saved meals", "%s was not found", username)
}

// conflictFor works out which unique key a failed insert or update collided on
func (s *Store) conflictFor(ctx context.Context, username, emailKey, selfID string) error {
	if username != "" && s.taken(ctx, "username", username, selfID) {
		return types.Conflict("%s already exists", username)
	}
	if emailKey != "" && s.taken(ctx, "email_key", emailKey, selfID) {
		return types.Conflict("%s already exists", emailKey)
	}
	return types.Conflict("user already exists")
}

func (s *Store) taken(ctx context.Context, column, value, selfID string) bool {
	query := s.quiet(ctx).Model(&models.User{}).Where(column+" = ?", value)
	if selfID != "" {
		query = query.Where("id <> ?", selfID)
	}
	var count int64
	return query.Count(&count).Error == nil && count > 0
}

func loadUser(db *gorm.DB, query string, args ...interface{}) (*models.User, error) {
	var user models.User
	err := db.
		Preload("Diary", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("seq")
		}).
		Preload("Meals", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at").Order("ref")
		}).
		Where(query, args...).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
