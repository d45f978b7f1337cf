package models

// PaymentLineItem is one service line inside an aggregated billing snapshot.
type PaymentLineItem struct {
	ServiceID string  `json:"service_id"`
	Name      string  `json:"name"`
	BasePrice float64 `json:"base_price"`
	AddOns    float64 `json:"add_ons"`
	Discounts float64 `json:"discounts"`
	Total     float64 `json:"total"`
}

// PaymentSnapshot merges parked drafts and the draft currently being edited
// into one billing preview. It is computed purely in memory so the final bill
// is available before anything is persisted or captured.
type PaymentSnapshot struct {
	Services       []string          `json:"services"`
	LineItems      []PaymentLineItem `json:"line_items"`
	Subtotal       float64           `json:"subtotal"`
	TotalDiscounts float64           `json:"total_discounts"`
	GrandTotal     float64           `json:"grand_total"`
	Commission     float64           `json:"commission"`
}
