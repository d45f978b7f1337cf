package models

// CategoryKey identifies a known service category. The set is closed: pricing,
// estimation and suggestions only ever branch on these values via data tables.
type CategoryKey string

const (
	CategoryCleaning   CategoryKey = "cleaning"
	CategoryPlumbing   CategoryKey = "plumbing"
	CategoryElectrical CategoryKey = "electrical"
	CategoryGardening  CategoryKey = "gardening"
	CategoryPool       CategoryKey = "pool"
	CategoryChef       CategoryKey = "chef"
	CategoryHandyman   CategoryKey = "handyman"
)

// UrgencyMode selects how a service applies its urgency tiers. Some services
// charge a flat callout fee per tier, others scale the resolved base price.
// The distinction is intentional and per-service.
type UrgencyMode string

const (
	UrgencyModeNone       UrgencyMode = "none"
	UrgencyModeFlatFee    UrgencyMode = "flat_fee"
	UrgencyModeMultiplier UrgencyMode = "multiplier"
)

// AddOn is an optional priced extra bundled into a booking. Keywords drive the
// free-text suggestion matcher.
type AddOn struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Keywords []string `json:"keywords"`
}

// ServiceConfig is the read-only catalog entry for one bookable service.
// Option tables are keyed by selection values; a missing key simply does not
// contribute to the price.
type ServiceConfig struct {
	ID       string      `json:"id"`
	Category CategoryKey `json:"category"`
	Name     string      `json:"name"`

	// BasePrice is the generic starting price, used only when no entry of
	// OptionPrices matches the selection.
	BasePrice float64 `json:"base_price"`

	// PropertyTypeMultipliers scale BasePrice; not applied when an
	// OptionPrices entry overrides the base.
	PropertyTypeMultipliers map[string]float64 `json:"property_type_multipliers,omitempty"`

	// OptionPrices is the service-specific fixed price table (plumbing issue,
	// electrical issue, chef menu, cleaning type). A matching entry overrides
	// BasePrice and the property-type multiplier.
	OptionPrices map[string]float64 `json:"option_prices,omitempty"`

	// SizeMultipliers and ConditionMultipliers further multiply the resolved
	// base (property size, garden size, pool condition).
	SizeMultipliers      map[string]float64 `json:"size_multipliers,omitempty"`
	ConditionMultipliers map[string]float64 `json:"condition_multipliers,omitempty"`

	UrgencyMode        UrgencyMode        `json:"urgency_mode"`
	UrgencyFlatFees    map[string]float64 `json:"urgency_flat_fees,omitempty"`
	UrgencyMultipliers map[string]float64 `json:"urgency_multipliers,omitempty"`

	AddOns []AddOn `json:"add_ons,omitempty"`
}

// AddOnByID returns the add-on with the given id, if the service offers it.
func (sc *ServiceConfig) AddOnByID(id string) (AddOn, bool) {
	for _, a := range sc.AddOns {
		if a.ID == id {
			return a, true
		}
	}
	return AddOn{}, false
}

// PricingSelections is the caller-supplied selection set for one service.
// All fields are optional; unknown values degrade to no-ops, never errors.
type PricingSelections struct {
	PropertyType    string   `json:"property_type"`
	OptionKey       string   `json:"option_key"`
	SizeKey         string   `json:"size_key"`
	ConditionKey    string   `json:"condition_key"`
	Urgency         string   `json:"urgency"`
	AddOnIDs        []string `json:"add_on_ids"`
	Materials       string   `json:"materials"`
	RecurrenceTier  string   `json:"recurrence_tier"`
	TimeSlot        string   `json:"time_slot"`
	CleaningType    string   `json:"cleaning_type"`
	RoomCountBucket string   `json:"room_count_bucket"`
}

// PricingResult is the full price breakdown for one service selection.
// BasePrice and TotalPrice are rounded to whole currency units independently;
// the occasional one-unit drift between them is accepted behavior.
type PricingResult struct {
	BasePrice         float64 `json:"base_price"`
	AddOnsPrice       float64 `json:"add_ons_price"`
	MaterialsDiscount float64 `json:"materials_discount"`
	RecurringDiscount float64 `json:"recurring_discount"`
	TimeDiscount      float64 `json:"time_discount"`
	TotalPrice        float64 `json:"total_price"`
}

// TotalDiscounts sums the independently computed discount fields.
func (r PricingResult) TotalDiscounts() float64 {
	return r.MaterialsDiscount + r.RecurringDiscount + r.TimeDiscount
}

// BookingDraft is an ephemeral, in-memory selection set for one service. It is
// never persisted; the caller passes it into the pricing calculator and the
// payment aggregator after each discrete selection change.
type BookingDraft struct {
	ServiceID  string            `json:"service_id"`
	Selections PricingSelections `json:"selections"`
	Comments   string            `json:"comments"`
	TipAmount  float64           `json:"tip_amount"`
}
