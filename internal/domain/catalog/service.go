package catalog

import "strings"

// CustomField is an extra input a service asks the client for (e.g. "pet name").
type CustomField struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Type        string   `json:"type"`
	Required    bool     `json:"required"`
	Placeholder string   `json:"placeholder,omitempty"`
	Options     []string `json:"options,omitempty"`
}

func (f CustomField) DisplayName() string {
	if l := strings.TrimSpace(f.Label); l != "" {
		return l
	}
	return f.ID
}

// Service is a bookable offering. BasePrice is in minor currency units (cents) and is
// nil when the provider quotes on request.
type Service struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Description       string        `json:"description,omitempty"`
	DurationMinutes   int           `json:"durationMinutes,omitempty"`
	BasePrice         *int64        `json:"basePrice"`
	RequiresDeposit   bool          `json:"requiresDeposit"`
	DepositPercentage int           `json:"depositPercentage"`
	CustomFields      []CustomField `json:"customFields,omitempty"`
}

func (s *Service) HasPrice() bool {
	return s != nil && s.BasePrice != nil
}
