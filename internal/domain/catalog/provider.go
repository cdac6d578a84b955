package catalog

import "slices"

type Provider struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	ServiceIDs []string `json:"serviceIds,omitempty"`
}

// Offers reports whether the provider lists serviceID. Providers without a service list
// are treated as offering everything.
func (p Provider) Offers(serviceID string) bool {
	return len(p.ServiceIDs) == 0 || slices.Contains(p.ServiceIDs, serviceID)
}
