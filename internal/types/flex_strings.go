// flex_strings.go
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

package types

import (
	"encoding/json"
	"strings"
)

// FlexStrings is a list of strings that can be unmarshaled from a JSON array,
// a single JSON string, or a comma separated JSON string.
type FlexStrings []string

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexStrings) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	// If it starts with '[', treat it as a normal array
	if data[0] == '[' {
		var slice []string
		if err := json.Unmarshal(data, &slice); err != nil {
			return err
		}
		*f = compact(slice)
		return nil
	}

	// Otherwise a single string, possibly comma separated
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = compact(strings.Split(s, ","))
	return nil
}

// Slice converts FlexStrings back to []string.
func (f FlexStrings) Slice() []string {
	return []string(f)
}

// compact trims values and drops empties, keeping order and duplicates
func compact(values []string) FlexStrings {
	out := make(FlexStrings, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
