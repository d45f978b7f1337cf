package services

import (
	"strings"

	"booking-engine-server/models"
)

// Suggestion matching thresholds. DebounceWindowMillis is advisory for
// callers typing into a comment field; the matcher itself never waits.
const (
	DefaultSuggestionMinChars = 3
	DebounceWindowMillis      = 400
)

// SuggestAddOns returns the category's add-ons whose keyword list has a
// case-insensitive substring match in the comment, in catalog order. Comments
// shorter than minChars after trimming yield no suggestions. Pure; a zero or
// negative minChars falls back to the default.
func SuggestAddOns(category models.CategoryKey, comment string, minChars int) []models.AddOn {
	if minChars <= 0 {
		minChars = DefaultSuggestionMinChars
	}

	trimmed := strings.TrimSpace(comment)
	if len(trimmed) < minChars {
		return nil
	}
	lowered := strings.ToLower(trimmed)

	var matches []models.AddOn
	for _, addOn := range GetCategoryAddOns(category) {
		for _, keyword := range addOn.Keywords {
			if strings.Contains(lowered, strings.ToLower(keyword)) {
				matches = append(matches, addOn)
				break
			}
		}
	}
	return matches
}
