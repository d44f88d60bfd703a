package dto

import (
	"encoding/json"
	"strings"
)

// StringList decodes either a JSON array of strings or a single
// comma-separated string.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = nil
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = compact(items)
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*l = compact(strings.Split(single, ","))
	return nil
}

func compact(items []string) StringList {
	out := make(StringList, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
