package messenger

import (
	"fmt"
	"strings"
)

type flagName struct {
	bit  uint8
	name string
}

// formatFlags renders the set bits of v as name|name, in table order.
func formatFlags(v uint8, names []flagName) string {
	if v == 0 {
		return "none"
	}
	var sb strings.Builder
	for _, f := range names {
		if v&f.bit == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(f.name)
	}
	if sb.Len() == 0 {
		return "none"
	}
	return sb.String()
}

// parseFlags accepts names and presets separated by ',' or '|'.
func parseFlags(kind, s string, names []flagName, presets map[string]uint8) (uint8, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '|' || r == ' '
	})
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty %s filter (expected a flag name or none)", kind)
	}
	var v uint8
next:
	for _, field := range fields {
		field = strings.ToLower(field)
		if bits, ok := presets[field]; ok {
			v |= bits
			continue
		}
		for _, f := range names {
			if f.name == field {
				v |= f.bit
				continue next
			}
		}
		return 0, fmt.Errorf("invalid %s %q (expected: %s)", kind, field, expectedNames(names, presets))
	}
	return v, nil
}

func expectedNames(names []flagName, presets map[string]uint8) string {
	parts := make([]string, 0, len(names)+len(presets))
	for _, f := range names {
		parts = append(parts, f.name)
	}
	for _, p := range presetOrder {
		if _, ok := presets[p]; ok {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "|")
}

var presetOrder = []string{"none", "all", "errors-only", "errors-and-warnings"}
