package models

import (
	"encoding/json"
	"time"
)

// Service is a service offering shown on the pricing page.
type Service struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Features         string    `json:"features"`
	PriceDescription *string   `json:"priceDescription"`
	IsActive         bool      `json:"isActive"`
	DisplayOrder     int       `json:"displayOrder"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// FeatureList decodes the JSON-encoded feature array.
func (s *Service) FeatureList() ([]string, error) {
	var features []string
	if err := json.Unmarshal([]byte(s.Features), &features); err != nil {
		return nil, err
	}
	return features, nil
}
