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

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/foodtrack/internal/middleware"
	"github.com/localnerve/foodtrack/internal/services"
	"github.com/localnerve/foodtrack/internal/types"
	"github.com/localnerve/foodtrack/internal/utils"
)

// DiaryHandler handles the authenticated user's diary ledger.
// Routes run behind AuthUser and RequireOwner.
type DiaryHandler struct {
	Diary *services.DiaryService
}

// ListEntries handles GET /api/users/:username/diary
// @Summary List diary entries
// @Description Entries in the order they were added
// @Tags Diary
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {array} models.DiaryEntry
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /users/{username}/diary [get]
func (h *DiaryHandler) ListEntries(c *fiber.Ctx) error {
	userID, err := ownerID(c)
	if err != nil {
		return err
	}

	entries, err := h.Diary.List(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, entries, fiber.StatusOK)
}

// AppendEntry handles POST /api/users/:username/diary
// @Summary Append a diary entry
// @Description kind "food" requires nutrition, kind "weight" requires weightValue
// @Tags Diary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param entry body services.EntryInput true "Diary entry"
// @Success 201 {object} models.DiaryEntry
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /users/{username}/diary [post]
func (h *DiaryHandler) AppendEntry(c *fiber.Ctx) error {
	userID, err := ownerID(c)
	if err != nil {
		return err
	}

	var input services.EntryInput
	if err := bind(c, &input); err != nil {
		return err
	}

	entry, err := h.Diary.Append(c.UserContext(), userID, input)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, entry, fiber.StatusCreated)
}

// UpdateEntry handles PUT /api/users/:username/diary/:entryId
// @Summary Update a diary entry
// @Description Only the supplied fields are changed. Fields of the other kind are rejected.
// @Tags Diary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param entryId path string true "Entry ID"
// @Param entry body services.EntryInput true "Fields to change"
// @Success 200 {object} models.DiaryEntry
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /users/{username}/diary/{entryId} [put]
func (h *DiaryHandler) UpdateEntry(c *fiber.Ctx) error {
	userID, err := ownerID(c)
	if err != nil {
		return err
	}

	var patch services.EntryPatch
	if err := bind(c, &patch); err != nil {
		return err
	}

	entry, err := h.Diary.UpdateEntry(c.UserContext(), userID, c.Params("entryId"), patch)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, entry, fiber.StatusOK)
}

// DeleteEntry handles DELETE /api/users/:username/diary/:entryId
// @Summary Delete a diary entry
// @Tags Diary
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param entryId path string true "Entry ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{username}/diary/{entryId} [delete]
func (h *DiaryHandler) DeleteEntry(c *fiber.Ctx) error {
	userID, err := ownerID(c)
	if err != nil {
		return err
	}

	entryID := c.Params("entryId")
	if err := h.Diary.DeleteEntry(c.UserContext(), userID, entryID); err != nil {
		return err
	}
	return utils.MessageResponse(c, entryID+" was deleted")
}

func ownerID(c *fiber.Ctx) (string, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return "", types.Auth(types.ReasonInvalidToken, "not authenticated")
	}
	return user.ID, nil
}
