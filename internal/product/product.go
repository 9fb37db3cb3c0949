package product

// Product is the storefront's single catalog entry. Document-style columns
// (images, features, specifications) live as JSONB and are served verbatim
// to the product page.
type Product struct {
	ID             int             `json:"productId"`
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	Tagline        string          `json:"tagline,omitempty"`
	Description    string          `json:"description,omitempty"`
	Price          float64         `json:"price"`
	OriginalPrice  *float64        `json:"originalPrice,omitempty"`
	Currency       string          `json:"currency"`
	Badge          string          `json:"badge,omitempty"`
	InStock        bool            `json:"inStock"`
	Images         []Image         `json:"images,omitempty"`
	Features       []Feature       `json:"features,omitempty"`
	Specifications []Specification `json:"specifications,omitempty"`
	SafetyFeatures []string        `json:"safetyFeatures,omitempty"`
	Certifications []string        `json:"certifications,omitempty"`
}

type Image struct {
	ID  string `json:"id"`
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

type Feature struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

type Specification struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
