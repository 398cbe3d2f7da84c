package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Catalog indexes stars by name.
type Catalog struct {
	byName map[string]*Star
}

func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]*Star)}
}

// Add inserts a star, replacing any existing entry with the same name.
func (c *Catalog) Add(star *Star) {
	c.byName[star.Name] = star
}

// Get returns the star with the given name.
func (c *Catalog) Get(name string) (*Star, bool) {
	star, ok := c.byName[name]
	return star, ok
}

func (c *Catalog) Len() int {
	return len(c.byName)
}

// Names returns every star name in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stars returns every star in name order.
func (c *Catalog) Stars() []*Star {
	names := c.Names()
	stars := make([]*Star, 0, len(names))
	for _, name := range names {
		stars = append(stars, c.byName[name])
	}
	return stars
}

// ParseCatalog decodes a systems.json document: a JSON array of stars.
// Entries without a name are rejected; duplicate names keep the last entry.
func ParseCatalog(data []byte) (*Catalog, error) {
	var stars []*Star
	if err := json.Unmarshal(data, &stars); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	catalog := NewCatalog()
	for i, star := range stars {
		if star == nil || star.Name == "" {
			return nil, fmt.Errorf("parse catalog: entry %d has no name", i+1)
		}
		catalog.Add(star)
	}
	return catalog, nil
}
