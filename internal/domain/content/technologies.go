package content

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Technologies is the canonical ordered list of a project's technologies.
// Older documents store a single comma separated string; both shapes are
// accepted when decoding and only the list shape is ever written.
type Technologies []string

// UnmarshalJSON accepts either a JSON array of strings or a single string.
func (t *Technologies) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*t = Technologies{}
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("technologies: %w", err)
		}
		*t = normalize(list)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("technologies must be a string or a list of strings: %w", err)
	}
	*t = ParseTechnologies(s)
	return nil
}

// MarshalJSON always writes a list, never null.
func (t Technologies) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}

// String joins the list the way the admin form displays it.
func (t Technologies) String() string {
	return strings.Join(t, ", ")
}

// ParseTechnologies splits a comma separated list, trimming blanks.
func ParseTechnologies(s string) Technologies {
	return normalize(strings.Split(s, ","))
}

func normalize(items []string) Technologies {
	out := make(Technologies, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
