package services

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"booking-engine-server/models"
)

func TestComputeOrderTotalsExcludesTipsFromFee(t *testing.T) {
	items := []models.CartItem{
		{Subtotal: 600, TipAmount: 60},
		{Subtotal: 400, TipAmount: 40},
	}

	totals := ComputeOrderTotals(items)

	if totals.Subtotal != 1000 {
		t.Errorf("Subtotal = %v, want 1000", totals.Subtotal)
	}
	if totals.TotalTips != 100 {
		t.Errorf("TotalTips = %v, want 100", totals.TotalTips)
	}
	if totals.PlatformFee != 150 {
		t.Errorf("PlatformFee = %v, want 150 (15%% of pre-tip subtotal)", totals.PlatformFee)
	}
	if totals.TotalAmount != 1250 {
		t.Errorf("TotalAmount = %v, want 1250", totals.TotalAmount)
	}
}

func TestComputeOrderTotalsEmpty(t *testing.T) {
	totals := ComputeOrderTotals(nil)
	if totals.TotalAmount != 0 || totals.PlatformFee != 0 {
		t.Errorf("empty cart totals should be zero, got %+v", totals)
	}
}

func TestNewOrderNumberFormat(t *testing.T) {
	now := time.Date(2026, time.March, 14, 15, 9, 26, 535_000_000, time.UTC)
	number := NewOrderNumber(now)

	want := fmt.Sprintf("BE-2026-%06d", now.UnixMilli()%1000000)
	if number != want {
		t.Errorf("NewOrderNumber = %q, want %q", number, want)
	}

	pattern := regexp.MustCompile(`^BE-\d{4}-\d{6}$`)
	if !pattern.MatchString(number) {
		t.Errorf("order number %q does not match BE-<year>-<6 digits>", number)
	}
}

func TestPaymentDescriptorValidation(t *testing.T) {
	tests := []struct {
		name       string
		descriptor models.PaymentDescriptor
		want       bool
	}{
		{"card with brand and last4", models.PaymentDescriptor{Method: "card", Brand: "visa", Last4: "4242"}, true},
		{"card missing last4", models.PaymentDescriptor{Method: "card", Brand: "visa"}, false},
		{"card with truncated last4", models.PaymentDescriptor{Method: "card", Brand: "visa", Last4: "42"}, false},
		{"bank with name", models.PaymentDescriptor{Method: "bank", Bank: "First National"}, true},
		{"bank without name", models.PaymentDescriptor{Method: "bank"}, false},
		{"no method", models.PaymentDescriptor{Brand: "visa", Last4: "4242"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.descriptor.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
