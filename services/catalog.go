package services

import "booking-engine-server/models"

// The service catalog is read-only reference data, loaded once at package
// init. All per-service pricing behavior lives in these tables; the
// calculator itself carries no service-specific branching.

var serviceCatalog = map[string]*models.ServiceConfig{
	"house-cleaning": {
		ID:        "house-cleaning",
		Category:  models.CategoryCleaning,
		Name:      "House Cleaning",
		BasePrice: 300,
		PropertyTypeMultipliers: map[string]float64{
			"apartment": 1.0,
			"house":     1.2,
			"villa":     1.5,
			"office":    1.3,
		},
		// Cleaning type is a fixed price table and overrides BasePrice.
		OptionPrices: map[string]float64{
			"standard":          300,
			"deep-clean":        450,
			"move-in-out":       500,
			"post-construction": 600,
		},
		SizeMultipliers: map[string]float64{
			"small":  1.0,
			"medium": 1.3,
			"large":  1.6,
			"xl":     2.0,
		},
		UrgencyMode: models.UrgencyModeMultiplier,
		UrgencyMultipliers: map[string]float64{
			"emergency": 2.5,
			"same-day":  1.8,
			"urgent":    1.4,
			"standard":  1.0,
			"flexible":  0.9,
		},
		AddOns: []models.AddOn{
			{ID: "windows", Name: "Window Cleaning", Price: 80, Keywords: []string{"window", "glass"}},
			{ID: "fridge", Name: "Fridge Deep Clean", Price: 60, Keywords: []string{"fridge", "refrigerator"}},
			{ID: "oven", Name: "Oven Cleaning", Price: 70, Keywords: []string{"oven", "stove", "grease"}},
			{ID: "laundry", Name: "Laundry & Ironing", Price: 50, Keywords: []string{"laundry", "iron", "wash"}},
			{ID: "balcony", Name: "Balcony Cleaning", Price: 40, Keywords: []string{"balcony", "terrace"}},
		},
	},
	"plumbing": {
		ID:        "plumbing",
		Category:  models.CategoryPlumbing,
		Name:      "Plumbing",
		BasePrice: 250,
		OptionPrices: map[string]float64{
			"burst-pipe":   850,
			"water-heater": 600,
			"leak":         350,
			"clog":         280,
			"toilet":       220,
			"faucet":       180,
		},
		UrgencyMode: models.UrgencyModeFlatFee,
		UrgencyFlatFees: map[string]float64{
			"emergency": 150,
			"urgent":    100,
			"scheduled": 50,
		},
		AddOns: []models.AddOn{
			{ID: "pipe-insulation", Name: "Pipe Insulation", Price: 120, Keywords: []string{"insulation", "freeze", "pipes"}},
			{ID: "camera-inspection", Name: "Camera Inspection", Price: 200, Keywords: []string{"camera", "inspect", "drain"}},
			{ID: "water-test", Name: "Water Quality Test", Price: 90, Keywords: []string{"water quality", "test"}},
		},
	},
	"electrical": {
		ID:        "electrical",
		Category:  models.CategoryElectrical,
		Name:      "Electrical",
		BasePrice: 220,
		OptionPrices: map[string]float64{
			"panel-upgrade": 900,
			"wiring":        550,
			"power-outage":  400,
			"lighting":      200,
			"outlet":        150,
		},
		UrgencyMode: models.UrgencyModeFlatFee,
		UrgencyFlatFees: map[string]float64{
			"emergency": 150,
			"urgent":    100,
			"scheduled": 50,
		},
		AddOns: []models.AddOn{
			{ID: "surge-protection", Name: "Surge Protection", Price: 180, Keywords: []string{"surge", "protection"}},
			{ID: "smart-switches", Name: "Smart Switch Install", Price: 140, Keywords: []string{"smart", "switch", "dimmer"}},
			{ID: "safety-audit", Name: "Safety Audit", Price: 110, Keywords: []string{"safety", "audit", "check"}},
		},
	},
	"gardening": {
		ID:        "gardening",
		Category:  models.CategoryGardening,
		Name:      "Gardening",
		BasePrice: 200,
		PropertyTypeMultipliers: map[string]float64{
			"apartment": 1.0,
			"house":     1.2,
			"villa":     1.6,
		},
		SizeMultipliers: map[string]float64{
			"small":  1.0,
			"medium": 1.4,
			"large":  1.8,
		},
		ConditionMultipliers: map[string]float64{
			"maintained": 1.0,
			"overgrown":  1.5,
			"neglected":  2.0,
		},
		UrgencyMode: models.UrgencyModeMultiplier,
		UrgencyMultipliers: map[string]float64{
			"same-day": 1.5,
			"urgent":   1.2,
			"standard": 1.0,
			"flexible": 0.9,
		},
		AddOns: []models.AddOn{
			{ID: "hedge-trim", Name: "Hedge Trimming", Price: 70, Keywords: []string{"hedge", "trim", "bushes"}},
			{ID: "lawn-feed", Name: "Lawn Fertilizing", Price: 60, Keywords: []string{"fertilize", "lawn", "grass"}},
			{ID: "tree-prune", Name: "Tree Pruning", Price: 120, Keywords: []string{"tree", "prune", "branches"}},
		},
	},
	"pool-maintenance": {
		ID:        "pool-maintenance",
		Category:  models.CategoryPool,
		Name:      "Pool Maintenance",
		BasePrice: 350,
		SizeMultipliers: map[string]float64{
			"small":  1.0,
			"medium": 1.3,
			"large":  1.7,
		},
		ConditionMultipliers: map[string]float64{
			"clean": 1.0,
			"dirty": 1.3,
			"green": 1.8,
		},
		UrgencyMode: models.UrgencyModeMultiplier,
		UrgencyMultipliers: map[string]float64{
			"same-day": 1.4,
			"standard": 1.0,
			"flexible": 0.9,
		},
		AddOns: []models.AddOn{
			{ID: "filter-change", Name: "Filter Change", Price: 90, Keywords: []string{"filter", "cartridge"}},
			{ID: "tile-scrub", Name: "Tile Scrubbing", Price: 75, Keywords: []string{"tile", "scrub", "algae"}},
			{ID: "chemical-balance", Name: "Chemical Balancing", Price: 55, Keywords: []string{"chlorine", "ph", "chemical"}},
		},
	},
	"private-chef": {
		ID:        "private-chef",
		Category:  models.CategoryChef,
		Name:      "Private Chef",
		BasePrice: 800,
		// Menus are fixed-price packages and override BasePrice.
		OptionPrices: map[string]float64{
			"dinner-party-4": 1200,
			"brunch-8":       1500,
			"cocktail-12":    1800,
			"tasting-menu":   2500,
		},
		UrgencyMode: models.UrgencyModeMultiplier,
		UrgencyMultipliers: map[string]float64{
			"same-day": 1.6,
			"urgent":   1.3,
			"standard": 1.0,
		},
		AddOns: []models.AddOn{
			{ID: "wine-pairing", Name: "Wine Pairing", Price: 300, Keywords: []string{"wine", "pairing", "sommelier"}},
			{ID: "dessert-course", Name: "Dessert Course", Price: 150, Keywords: []string{"dessert", "cake", "sweet"}},
			{ID: "waitstaff", Name: "Waitstaff", Price: 220, Keywords: []string{"waiter", "service", "staff"}},
		},
	},
	"handyman": {
		ID:        "handyman",
		Category:  models.CategoryHandyman,
		Name:      "Handyman",
		BasePrice: 180,
		PropertyTypeMultipliers: map[string]float64{
			"apartment": 1.0,
			"house":     1.1,
			"villa":     1.3,
			"office":    1.2,
		},
		UrgencyMode: models.UrgencyModeFlatFee,
		UrgencyFlatFees: map[string]float64{
			"emergency": 100,
			"urgent":    60,
			"scheduled": 30,
		},
		AddOns: []models.AddOn{
			{ID: "furniture-assembly", Name: "Furniture Assembly", Price: 85, Keywords: []string{"furniture", "assemble", "ikea"}},
			{ID: "wall-mounting", Name: "TV / Shelf Mounting", Price: 65, Keywords: []string{"mount", "tv", "shelf", "wall"}},
			{ID: "door-repair", Name: "Door Repair", Price: 95, Keywords: []string{"door", "hinge", "lock"}},
		},
	},
}

// GetServiceConfig looks up a catalog entry by service id.
func GetServiceConfig(serviceID string) (*models.ServiceConfig, bool) {
	svc, ok := serviceCatalog[serviceID]
	return svc, ok
}

// GetCategoryAddOns returns the add-on catalog for a category. Categories with
// several services are merged in catalog order; unknown categories yield nil.
func GetCategoryAddOns(category models.CategoryKey) []models.AddOn {
	var addOns []models.AddOn
	for _, svc := range serviceCatalogOrder {
		cfg := serviceCatalog[svc]
		if cfg.Category == category {
			addOns = append(addOns, cfg.AddOns...)
		}
	}
	return addOns
}

// CatalogServiceIDs returns every catalog service id in display order.
func CatalogServiceIDs() []string {
	ids := make([]string, len(serviceCatalogOrder))
	copy(ids, serviceCatalogOrder)
	return ids
}

// serviceCatalogOrder keeps deterministic iteration for merged lookups.
var serviceCatalogOrder = []string{
	"house-cleaning",
	"plumbing",
	"electrical",
	"gardening",
	"pool-maintenance",
	"private-chef",
	"handyman",
}
