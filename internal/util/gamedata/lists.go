package gamedata

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// entry is one element of a list column such as
// [{'name': 'Phy', 'amount': 115}] or ['Str', 'Dex'].
type entry struct {
	Name    string
	Amount  string
	Scaling string
}

// parseList decodes a list column. The source data quotes with single quotes,
// so they are swapped for double quotes first. A column that still is not a
// JSON array becomes a single entry named after its stripped text.
func parseList(column string) []entry {
	column = strings.TrimSpace(column)
	if column == "" || column == "[]" || strings.EqualFold(column, "['None']") {
		return nil
	}

	var raw []any
	if err := json.Unmarshal([]byte(strings.ReplaceAll(column, "'", `"`)), &raw); err != nil {
		stripped := strings.Trim(strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(column, "["), "]")), `'"`)
		if stripped == "" {
			return nil
		}
		return []entry{{Name: stripped}}
	}

	entries := make([]entry, 0, len(raw))
	for _, el := range raw {
		switch v := el.(type) {
		case string:
			if name := strings.TrimSpace(v); name != "" {
				entries = append(entries, entry{Name: name})
			}
		case map[string]any:
			e := entry{
				Name:    strings.TrimSpace(text(field(v, "name"))),
				Amount:  strings.TrimSpace(text(field(v, "amount"))),
				Scaling: strings.TrimSpace(text(field(v, "scaling"))),
			}
			if e.Name != "" {
				entries = append(entries, e)
			}
		}
	}
	return entries
}

// field looks key up case-insensitively.
func field(m map[string]any, key string) any {
	if v, ok := m[key]; ok {
		return v
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return nil
}

func text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseInt(s string, fallback int) int {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	// "1,234" style and "1234.0" style numbers
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil {
		return int(f)
	}
	return fallback
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}
