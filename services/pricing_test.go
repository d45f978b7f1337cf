package services

import (
	"reflect"
	"testing"

	"booking-engine-server/models"
)

func TestComputePricingCleaningDeepClean(t *testing.T) {
	result := ComputePricing("house-cleaning", models.PricingSelections{
		CleaningType: "deep-clean",
		SizeKey:      "medium",
		AddOnIDs:     []string{"windows"},
		Materials:    MaterialsBring,
	})

	if result.BasePrice != 585 {
		t.Errorf("BasePrice = %v, want 585", result.BasePrice)
	}
	if result.AddOnsPrice != 80 {
		t.Errorf("AddOnsPrice = %v, want 80", result.AddOnsPrice)
	}
	if result.MaterialsDiscount != 100 {
		t.Errorf("MaterialsDiscount = %v, want 100 (round of 665*0.15)", result.MaterialsDiscount)
	}
	if result.TotalPrice != 565 {
		t.Errorf("TotalPrice = %v, want 565", result.TotalPrice)
	}
}

func TestComputePricingPlumbingFlatUrgencyFee(t *testing.T) {
	result := ComputePricing("plumbing", models.PricingSelections{
		OptionKey: "burst-pipe",
		Urgency:   "emergency",
	})

	// The issue price table overrides the generic base and the emergency
	// callout fee is flat, not multiplicative.
	if result.BasePrice != 1000 {
		t.Errorf("BasePrice = %v, want 1000 (850 + 150 flat fee)", result.BasePrice)
	}
	if result.TotalPrice != 1000 {
		t.Errorf("TotalPrice = %v, want 1000", result.TotalPrice)
	}
}

func TestComputePricingMultiplicativeUrgency(t *testing.T) {
	standard := ComputePricing("house-cleaning", models.PricingSelections{
		CleaningType: "standard",
		Urgency:      "standard",
	})
	emergency := ComputePricing("house-cleaning", models.PricingSelections{
		CleaningType: "standard",
		Urgency:      "emergency",
	})

	if standard.BasePrice != 300 {
		t.Errorf("standard BasePrice = %v, want 300", standard.BasePrice)
	}
	if emergency.BasePrice != 750 {
		t.Errorf("emergency BasePrice = %v, want 750 (300 * 2.5)", emergency.BasePrice)
	}
}

func TestComputePricingUnknownServiceIsZero(t *testing.T) {
	result := ComputePricing("no-such-service", models.PricingSelections{
		OptionKey: "burst-pipe",
		AddOnIDs:  []string{"windows"},
	})

	if result != (models.PricingResult{}) {
		t.Errorf("unknown service should yield an all-zero result, got %+v", result)
	}
}

func TestComputePricingUnknownAddOnsIgnored(t *testing.T) {
	result := ComputePricing("house-cleaning", models.PricingSelections{
		CleaningType: "standard",
		AddOnIDs:     []string{"windows", "jacuzzi", "not-a-real-addon"},
	})

	if result.AddOnsPrice != 80 {
		t.Errorf("AddOnsPrice = %v, want 80 (unknown ids silently ignored)", result.AddOnsPrice)
	}
}

func TestComputePricingIsPure(t *testing.T) {
	sel := models.PricingSelections{
		CleaningType:   "deep-clean",
		SizeKey:        "large",
		AddOnIDs:       []string{"windows", "oven"},
		Materials:      MaterialsBring,
		RecurrenceTier: "weekly",
		TimeSlot:       EarlyBirdSlot,
	}

	first := ComputePricing("house-cleaning", sel)
	second := ComputePricing("house-cleaning", sel)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical input produced different output: %+v vs %+v", first, second)
	}
}

func TestComputePricingDiscountsAreIndependent(t *testing.T) {
	base := models.PricingSelections{
		CleaningType: "deep-clean",
		Materials:    MaterialsBring,
	}

	withoutRecurrence := ComputePricing("house-cleaning", base)

	withRecurrence := base
	withRecurrence.RecurrenceTier = "weekly"
	withWeekly := ComputePricing("house-cleaning", withRecurrence)

	// Turning a second discount on must not change the first one's value.
	if withoutRecurrence.MaterialsDiscount != withWeekly.MaterialsDiscount {
		t.Errorf("MaterialsDiscount changed from %v to %v when recurrence was enabled",
			withoutRecurrence.MaterialsDiscount, withWeekly.MaterialsDiscount)
	}
	if withWeekly.RecurringDiscount == 0 {
		t.Error("RecurringDiscount should be non-zero for weekly tier")
	}
}

func TestComputePricingRecurrenceTiers(t *testing.T) {
	tests := []struct {
		tier string
		want float64
	}{
		{"weekly", 45},    // round(300 * 0.15)
		{"bi-weekly", 30}, // round(300 * 0.10)
		{"monthly", 24},   // round(300 * 0.08)
		{"one-time", 0},
		{"", 0},
	}

	for _, tt := range tests {
		result := ComputePricing("house-cleaning", models.PricingSelections{
			CleaningType:   "standard",
			RecurrenceTier: tt.tier,
		})
		if result.RecurringDiscount != tt.want {
			t.Errorf("tier %q: RecurringDiscount = %v, want %v", tt.tier, result.RecurringDiscount, tt.want)
		}
	}
}

func TestComputePricingEarlyBirdSlot(t *testing.T) {
	early := ComputePricing("house-cleaning", models.PricingSelections{
		CleaningType: "standard",
		TimeSlot:     EarlyBirdSlot,
	})
	if early.TimeDiscount != 30 {
		t.Errorf("TimeDiscount = %v, want 30 (round of 300*0.10)", early.TimeDiscount)
	}

	midday := ComputePricing("house-cleaning", models.PricingSelections{
		CleaningType: "standard",
		TimeSlot:     "afternoon",
	})
	if midday.TimeDiscount != 0 {
		t.Errorf("TimeDiscount = %v for non-early slot, want 0", midday.TimeDiscount)
	}
}

func TestComputePricingTotalNeverNegative(t *testing.T) {
	// Sweep every service with every discount stacked on the cheapest options.
	for _, serviceID := range CatalogServiceIDs() {
		svc, _ := GetServiceConfig(serviceID)
		selections := []models.PricingSelections{
			{},
			{Materials: MaterialsBring, RecurrenceTier: "weekly", TimeSlot: EarlyBirdSlot},
			{Urgency: "flexible", Materials: MaterialsBring, RecurrenceTier: "weekly", TimeSlot: EarlyBirdSlot},
			{OptionKey: "faucet", Materials: MaterialsBring, RecurrenceTier: "weekly", TimeSlot: EarlyBirdSlot},
		}
		for _, sel := range selections {
			result := ComputePricing(serviceID, sel)
			if result.TotalPrice < 0 {
				t.Errorf("%s (%s): TotalPrice = %v, want >= 0", serviceID, svc.Name, result.TotalPrice)
			}
		}
	}
}
