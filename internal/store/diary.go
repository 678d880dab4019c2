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

package store

import (
	"context"

	"github.com/localnerve/foodtrack/internal/models"
	"github.com/localnerve/foodtrack/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// EntryMutation inspects the locked entry and returns the columns to overwrite.
// Returning an error aborts the update with nothing written.
type EntryMutation func(entry *models.DiaryEntry) (map[string]interface{}, error)

// AppendEntry appends entry to the end of its user's ledger
func (s *Store) AppendEntry(ctx context.Context, entry *models.DiaryEntry) error {
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id").Where("id = ?", entry.UserID).First(&user).Error; err != nil {
			return err
		}
		return tx.Clauses(hints.CommentBefore("insert", "diary.append")).Create(entry).Error
	})
	return notFoundOr(err, "append diary entry", "user %s was not found", entry.UserID)
}

// ListEntries returns the user's ledger in insertion order
func (s *Store) ListEntries(ctx context.Context, userID string) ([]models.DiaryEntry, error) {
	entries := []models.DiaryEntry{}
	err := s.quiet(ctx).
		Clauses(hints.Comment("select", "diary.list")).
		Where("user_id = ?", userID).
		Order("seq").
		Find(&entries).Error
	if err != nil {
		return nil, types.Storage("list diary entries", err)
	}
	return entries, nil
}

// UpdateEntry locks the entry owned by userID, asks mutate for the new column
// values, writes them and returns the stored result.
func (s *Store) UpdateEntry(ctx context.Context, userID, entryID string, mutate EntryMutation) (*models.DiaryEntry, error) {
	var updated models.DiaryEntry

	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var entry models.DiaryEntry
		if err := forUpdate(tx).
			Clauses(hints.Comment("select", "diary.update")).
			Where("user_id = ? AND entry_id = ?", userID, entryID).
			First(&entry).Error; err != nil {
			return err
		}

		fields, err := mutate(&entry)
		if err != nil {
			return err
		}

		if len(fields) > 0 {
			if err := tx.Model(&entry).Updates(fields).Error; err != nil {
				return err
			}
		}

		return tx.Where("seq = ?", entry.Seq).First(&updated).Error
	})

	if err != nil {
		return nil, notFoundOr(err, "update diary entry", "diary entry %s was not found", entryID)
	}
	return &updated, nil
}

// DeleteEntry removes the single entry entryID owned by userID
func (s *Store) DeleteEntry(ctx context.Context, userID, entryID string) error {
	result := s.conn(ctx).
		Clauses(hints.CommentBefore("delete", "diary.delete")).
		Where("user_id = ? AND entry_id = ?", userID, entryID).
		Delete(&models.DiaryEntry{})
	if result.Error != nil {
		return types.Storage("delete diary entry", result.Error)
	}
	if result.RowsAffected == 0 {
		return types.NotFound("diary entry %s was not found", entryID)
	}
	return nil
}
