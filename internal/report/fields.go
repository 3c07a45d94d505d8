package report

import (
	"strconv"
	"strings"
)

func parseInt(raw string) (int, bool) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return value, true
}

func parseIntList(raw string) []int {
	parts := strings.Split(raw, ",")
	values := make([]int, 0, len(parts))
	for _, part := range parts {
		if value, ok := parseInt(part); ok {
			values = append(values, value)
		}
	}
	return values
}

// parseDecimal accepts a leading "$" and trailing units ("15.0 min").
func parseDecimal(raw string) float64 {
	trimmed := strings.TrimSpace(strings.ReplaceAll(raw, "$", ""))
	if fields := strings.Fields(trimmed); len(fields) > 0 {
		trimmed = fields[0]
	}
	trimmed = strings.ReplaceAll(trimmed, ",", "")

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0
	}
	return value
}
