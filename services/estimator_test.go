package services

import (
	"testing"

	"booking-engine-server/models"
)

func TestEstimateHoursCleaning(t *testing.T) {
	tests := []struct {
		name string
		sel  models.PricingSelections
		want float64
	}{
		{
			name: "defaults with two add-ons",
			sel:  models.PricingSelections{AddOnIDs: []string{"windows", "oven"}},
			want: 4.0, // 3 * 1.0 + 2 * 0.5
		},
		{
			name: "deep clean large home",
			sel:  models.PricingSelections{CleaningType: "deep-clean", RoomCountBucket: "3-4"},
			want: 7.5, // 5 * 1.5
		},
		{
			name: "unknown type and bucket fall back to defaults",
			sel:  models.PricingSelections{CleaningType: "sparkling", RoomCountBucket: "mansion"},
			want: 3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateHours(models.CategoryCleaning, tt.sel); got != tt.want {
				t.Errorf("EstimateHours = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEstimateHoursOtherCategories(t *testing.T) {
	tests := []struct {
		category models.CategoryKey
		addOns   int
		want     float64
	}{
		{models.CategoryPlumbing, 0, 3.0},
		{models.CategoryElectrical, 1, 3.5},
		{models.CategoryGardening, 2, 6.0},
		{models.CategoryChef, 0, 5.0},
		{models.CategoryKey("unknown-category"), 0, 5.0},
	}

	for _, tt := range tests {
		sel := models.PricingSelections{AddOnIDs: make([]string, tt.addOns)}
		if got := EstimateHours(tt.category, sel); got != tt.want {
			t.Errorf("EstimateHours(%s, %d add-ons) = %v, want %v", tt.category, tt.addOns, got, tt.want)
		}
	}
}

func TestEstimateHoursIsDeterministic(t *testing.T) {
	sel := models.PricingSelections{CleaningType: "move-in-out", RoomCountBucket: "5+", AddOnIDs: []string{"windows"}}
	first := EstimateHours(models.CategoryCleaning, sel)
	second := EstimateHours(models.CategoryCleaning, sel)
	if first != second {
		t.Errorf("estimator is not deterministic: %v vs %v", first, second)
	}
}
