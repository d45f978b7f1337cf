package services

import (
	"math"

	"booking-engine-server/models"
)

// AggregatePayments merges previously parked drafts and the draft currently
// being edited into one billing snapshot. It runs the pricing calculator per
// draft and is purely in-memory, so the caller can preview the final bill
// before anything is persisted. Drafts with unknown service ids contribute
// zero lines rather than failing the whole preview.
func AggregatePayments(pendingDrafts []models.BookingDraft, currentDraft *models.BookingDraft) models.PaymentSnapshot {
	drafts := make([]models.BookingDraft, 0, len(pendingDrafts)+1)
	drafts = append(drafts, pendingDrafts...)
	if currentDraft != nil {
		drafts = append(drafts, *currentDraft)
	}

	snapshot := models.PaymentSnapshot{
		Services:  make([]string, 0, len(drafts)),
		LineItems: make([]models.PaymentLineItem, 0, len(drafts)),
	}

	for _, draft := range drafts {
		pricing := ComputePricing(draft.ServiceID, draft.Selections)

		name := draft.ServiceID
		if svc, ok := GetServiceConfig(draft.ServiceID); ok {
			name = svc.Name
		}

		line := models.PaymentLineItem{
			ServiceID: draft.ServiceID,
			Name:      name,
			BasePrice: pricing.BasePrice,
			AddOns:    pricing.AddOnsPrice,
			Discounts: pricing.TotalDiscounts(),
			Total:     pricing.TotalPrice,
		}

		snapshot.Services = append(snapshot.Services, draft.ServiceID)
		snapshot.LineItems = append(snapshot.LineItems, line)
		snapshot.Subtotal += pricing.BasePrice + pricing.AddOnsPrice
		snapshot.TotalDiscounts += line.Discounts
		snapshot.GrandTotal += line.Total
	}

	snapshot.Commission = math.Round(snapshot.GrandTotal * PlatformFeeRate())
	return snapshot
}
