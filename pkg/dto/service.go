package dto

type CreateServiceRequest struct {
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	// JSON-encoded array of strings, e.g. `["4K","2 revisions"]`.
	Features         *string `json:"features,omitempty"`
	PriceDescription *string `json:"priceDescription,omitempty"`
	IsActive         *bool   `json:"isActive,omitempty"`
	DisplayOrder     *int    `json:"displayOrder,omitempty"`
}

type UpdateServiceRequest struct {
	Name             *string `json:"name,omitempty"`
	Description      *string `json:"description,omitempty"`
	Features         *string `json:"features,omitempty"`
	PriceDescription *string `json:"priceDescription,omitempty"`
	IsActive         *bool   `json:"isActive,omitempty"`
	DisplayOrder     *int    `json:"displayOrder,omitempty"`
}
