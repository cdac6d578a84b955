package catalog

// Catalog is a read-only snapshot of the services and providers fetched on mount.
type Catalog struct {
	services  []Service
	providers []Provider
	byService map[string]int
	byProv    map[string]int
}

func New(services []Service, providers []Provider) *Catalog {
	c := &Catalog{
		services:  services,
		providers: providers,
		byService: make(map[string]int, len(services)),
		byProv:    make(map[string]int, len(providers)),
	}
	for i, s := range services {
		c.byService[s.ID] = i
	}
	for i, p := range providers {
		c.byProv[p.ID] = i
	}
	return c
}

func (c *Catalog) Service(id string) (*Service, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.byService[id]
	if !ok {
		return nil, false
	}
	return &c.services[i], true
}

func (c *Catalog) Provider(id string) (*Provider, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.byProv[id]
	if !ok {
		return nil, false
	}
	return &c.providers[i], true
}

func (c *Catalog) Services() []Service {
	if c == nil {
		return nil
	}
	return c.services
}

func (c *Catalog) Providers() []Provider {
	if c == nil {
		return nil
	}
	return c.providers
}

// CustomFields returns the fields declared by serviceID, or nil when it is unknown.
func (c *Catalog) CustomFields(serviceID string) []CustomField {
	s, ok := c.Service(serviceID)
	if !ok {
		return nil
	}
	return s.CustomFields
}
