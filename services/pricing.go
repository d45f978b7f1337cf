package services

import (
	"math"

	"booking-engine-server/models"
)

// Discount rates. Each discount is computed independently as a percentage of
// (base + add-ons); discounts are never compounded on each other.
const (
	MaterialsBringDiscountRate = 0.15
	EarlyBirdDiscountRate      = 0.10

	// MaterialsBring is the selection value that grants the materials discount.
	MaterialsBring = "bring"

	// EarlyBirdSlot is the one time slot that grants the time discount.
	EarlyBirdSlot = "early-morning"
)

// recurrenceDiscountRates maps a recurrence tier to its discount rate. Tiers
// are mutually exclusive; only the selected one applies.
var recurrenceDiscountRates = map[string]float64{
	"weekly":    0.15,
	"bi-weekly": 0.10,
	"monthly":   0.08,
}

// ComputePricing resolves the full price breakdown for one service selection.
// It is pure and never fails: an unknown service id yields an all-zero result
// so a price is always renderable, and unknown option keys or add-on ids are
// silently ignored.
func ComputePricing(serviceID string, sel models.PricingSelections) models.PricingResult {
	svc, ok := GetServiceConfig(serviceID)
	if !ok {
		return models.PricingResult{}
	}

	base := resolveBase(svc, sel)

	var addOns float64
	for _, id := range sel.AddOnIDs {
		if addOn, ok := svc.AddOnByID(id); ok {
			addOns += addOn.Price
		}
	}

	gross := base + addOns

	var materials, recurring, timeDiscount float64
	if sel.Materials == MaterialsBring {
		materials = math.Round(gross * MaterialsBringDiscountRate)
	}
	if rate, ok := recurrenceDiscountRates[sel.RecurrenceTier]; ok {
		recurring = math.Round(gross * rate)
	}
	if sel.TimeSlot == EarlyBirdSlot {
		timeDiscount = math.Round(gross * EarlyBirdDiscountRate)
	}

	total := gross - materials - recurring - timeDiscount
	if total < 0 {
		total = 0
	}

	// BasePrice and TotalPrice are rounded independently; the occasional
	// one-unit drift between them is accepted behavior.
	return models.PricingResult{
		BasePrice:         math.Round(base),
		AddOnsPrice:       addOns,
		MaterialsDiscount: materials,
		RecurringDiscount: recurring,
		TimeDiscount:      timeDiscount,
		TotalPrice:        math.Round(total),
	}
}

// resolveBase applies the catalog tables to the selection. A fixed option
// price (issue, menu, cleaning type) overrides the generic base and its
// property-type multiplier; size and condition multipliers apply either way,
// and urgency is applied last in the service's own mode.
func resolveBase(svc *models.ServiceConfig, sel models.PricingSelections) float64 {
	optionKey := sel.OptionKey
	if optionKey == "" {
		optionKey = sel.CleaningType
	}

	var base float64
	if price, ok := svc.OptionPrices[optionKey]; ok {
		base = price
	} else {
		base = svc.BasePrice
		if m, ok := svc.PropertyTypeMultipliers[sel.PropertyType]; ok {
			base *= m
		}
	}

	if m, ok := svc.SizeMultipliers[sel.SizeKey]; ok {
		base *= m
	}
	if m, ok := svc.ConditionMultipliers[sel.ConditionKey]; ok {
		base *= m
	}

	switch svc.UrgencyMode {
	case models.UrgencyModeFlatFee:
		if fee, ok := svc.UrgencyFlatFees[sel.Urgency]; ok {
			base += fee
		}
	case models.UrgencyModeMultiplier:
		if m, ok := svc.UrgencyMultipliers[sel.Urgency]; ok {
			base *= m
		}
	}

	return base
}
