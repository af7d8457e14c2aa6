package loader

import (
	"math"
	"strconv"
	"strings"
)

// ParseCommitment coerces a commitment cell to a float. Blank, non-numeric
// and non-finite text yields nil.
func ParseCommitment(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return &value
}

var newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// cleanText replaces embedded line breaks with a single space and trims.
func cleanText(raw string) string {
	return strings.TrimSpace(newlineReplacer.Replace(raw))
}

// matchesAny reports whether value contains any phrase, ignoring case.
func matchesAny(value string, phrases []string) bool {
	lower := strings.ToLower(value)
	for _, phrase := range phrases {
		if phrase == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func blankRow(row []string, width int) bool {
	for i := 0; i < width && i < len(row); i++ {
		if strings.TrimSpace(row[i]) != "" {
			return false
		}
	}
	return true
}

func normalizeSheetNames(names []string) map[string]struct{} {
	result := make(map[string]struct{}, len(names))
	for _, name := range names {
		result[strings.TrimSpace(name)] = struct{}{}
	}
	return result
}
