package product

func ptrFloat(v float64) *float64 { return &v }

// DefaultSeed is the storefront's catalog: a single product. It is only
// inserted when the slug is missing, so edits made via the admin route
// survive restarts.
var DefaultSeed = Product{
	Name:          "SafeHeat Propane Garage Heater",
	Slug:          "safeheat-propane-heater",
	Tagline:       "Powerful, Portable & Safe for Indoor Use",
	Description:   "Built for garages, workshops & basements. Instant heat without smoke or smell, with industry-leading safety features designed specifically for enclosed spaces.",
	Price:         179.99,
	OriginalPrice: ptrFloat(249.99),
	Currency:      "USD",
	Badge:         "Best Seller",
	InStock:       true,
	Images: []Image{
		{ID: "img-1", URL: "/images/heater-front.jpg", Alt: "SafeHeat Propane Heater Front View"},
		{ID: "img-2", URL: "/images/heater-side.jpg", Alt: "SafeHeat Propane Heater Side View"},
		{ID: "img-3", URL: "/images/heater-action.jpg", Alt: "SafeHeat Propane Heater in Garage"},
	},
	Features: []Feature{
		{ID: "feat-1", Title: "Powerful BTU Output", Description: "9,000-18,000 BTU adjustable heat settings", Icon: "flame"},
		{ID: "feat-2", Title: "Indoor-Safe Design", Description: "Auto shut-off + oxygen depletion sensor", Icon: "shield-check"},
		{ID: "feat-3", Title: "Fast Heating", Description: "Heats up to 500 sq ft in minutes", Icon: "zap"},
		{ID: "feat-4", Title: "Universal Compatibility", Description: "Works with all standard propane tanks", Icon: "check-circle"},
		{ID: "feat-5", Title: "Fast U.S. Shipping", Description: "Arrives in 2-5 business days", Icon: "truck"},
		{ID: "feat-6", Title: "Portable Design", Description: "Lightweight and easy to move between spaces", Icon: "move"},
	},
	Specifications: []Specification{
		{Label: "Heat Output", Value: "9,000 - 18,000 BTU"},
		{Label: "Coverage Area", Value: "Up to 500 sq ft"},
		{Label: "Fuel Type", Value: "Propane (standard tanks)"},
		{Label: "Safety Features", Value: "Oxygen depletion sensor, auto shut-off, tip-over protection"},
		{Label: "Dimensions", Value: `18" H x 12" W x 10" D`},
		{Label: "Weight", Value: "12 lbs (without tank)"},
		{Label: "Ignition Type", Value: "Piezo electric ignition"},
		{Label: "Warranty", Value: "2-year manufacturer warranty"},
	},
	SafetyFeatures: []string{
		"Oxygen Depletion Sensor (ODS) - automatically shuts off if oxygen levels drop",
		"Tip-over safety switch - instantly cuts gas flow if knocked over",
		"Overheat protection - prevents surface temperatures from becoming dangerous",
		"CSA certified for indoor use in well-ventilated spaces",
		"Low-emission burner technology - cleaner burn, less odor",
	},
	Certifications: []string{"CSA Certified", "EPA Compliant", "ANSI Z21.97 Standard"},
}
