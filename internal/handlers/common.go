// common.go
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
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/foodtrack/internal/types"
)

// bind decodes the request body into out. Malformed bodies are validation errors.
func bind(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return types.Validation("request body is required")
	}

	if err := c.BodyParser(out); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		var domainErr *types.Error
		switch {
		case errors.As(err, &domainErr):
			return domainErr
		case errors.As(err, &typeErr):
			return types.Validation("%s has the wrong type", typeErr.Field)
		case errors.As(err, &syntaxErr):
			return types.Validation("request body is not valid JSON")
		case errors.Is(err, fiber.ErrUnprocessableEntity):
			return types.Validation("request body must be JSON")
		}
		return types.Validation("invalid request body: %v", err)
	}
	return nil
}

// param returns the unescaped route parameter name, so catalog names may
// contain spaces and other escaped characters.
func param(c *fiber.Ctx, name string) string {
	raw := c.Params(name)
	value, err := url.PathUnescape(raw)
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return strings.TrimSpace(value)
}
