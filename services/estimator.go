package services

import (
	"math"

	"booking-engine-server/models"
)

// Labor-hour tables. The cleaning category estimates from cleaning type and
// room count; every other category starts from a flat category base.
var (
	cleaningTypeBaseHours = map[string]float64{
		"standard":          3.0,
		"deep-clean":        5.0,
		"move-in-out":       6.0,
		"post-construction": 8.0,
	}

	roomCountMultipliers = map[string]float64{
		"1-2": 1.0,
		"3-4": 1.5,
		"5+":  2.0,
	}

	categoryBaseHours = map[models.CategoryKey]float64{
		models.CategoryPlumbing:   3.0,
		models.CategoryElectrical: 3.0,
		models.CategoryCleaning:   3.0,
		models.CategoryGardening:  5.0,
		models.CategoryPool:       5.0,
		models.CategoryChef:       5.0,
		models.CategoryHandyman:   5.0,
	}
)

const (
	defaultCategoryHours = 5.0
	hoursPerAddOn        = 0.5
)

// EstimateHours returns the estimated labor hours for a selection, rounded to
// one decimal. Pure and deterministic; unknown keys fall back to defaults.
func EstimateHours(category models.CategoryKey, sel models.PricingSelections) float64 {
	addOnHours := float64(len(sel.AddOnIDs)) * hoursPerAddOn

	var hours float64
	if category == models.CategoryCleaning {
		cleaningType := sel.CleaningType
		if cleaningType == "" {
			cleaningType = sel.OptionKey
		}
		base, ok := cleaningTypeBaseHours[cleaningType]
		if !ok {
			base = cleaningTypeBaseHours["standard"]
		}
		multiplier, ok := roomCountMultipliers[sel.RoomCountBucket]
		if !ok {
			multiplier = roomCountMultipliers["1-2"]
		}
		hours = base*multiplier + addOnHours
	} else {
		base, ok := categoryBaseHours[category]
		if !ok {
			base = defaultCategoryHours
		}
		hours = base + addOnHours
	}

	return math.Round(hours*10) / 10
}
