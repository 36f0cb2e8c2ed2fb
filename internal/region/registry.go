// Package region manages the named screenshot regions and cuts them
// out of captured frames.
package region

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"poker-templater/pkg/geometry"
)

// Type tags a region with the labeling flow it feeds.
type Type string

const (
	TypeCard       Type = "card"
	TypeTextDigits Type = "text_digits"
	TypeTextMixed  Type = "text_mixed"
	TypeMarker     Type = "marker"
	TypeCombo      Type = "combo"
)

// Region is one named rectangle within the client window, with the
// semantic type that routes it to the right labeling flow.
type Region struct {
	X      int  `json:"x"`
	Y      int  `json:"y"`
	Width  int  `json:"w"`
	Height int  `json:"h"`
	Type   Type `json:"type"`
}

// Rect returns the region's rectangle.
func (r Region) Rect() geometry.RectInt {
	return geometry.NewRectInt(r.X, r.Y, r.Width, r.Height)
}

// Registry holds the named regions loaded from regions.json.
type Registry struct {
	path    string
	regions map[string]Region
}

// Load reads a regions file. A missing file is an error: the region
// layout is hand-authored per client and the tool cannot invent one.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("regions file not found: %w", err)
	}

	regions := make(map[string]Region)
	if err := json.Unmarshal(data, &regions); err != nil {
		return nil, fmt.Errorf("cannot parse regions file %s: %w", path, err)
	}

	return &Registry{path: path, regions: regions}, nil
}

// Save writes the regions back to the file they were loaded from.
func (r *Registry) Save() error {
	data, err := json.MarshalIndent(r.regions, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot serialize regions: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write regions file: %w", err)
	}
	return nil
}

// Get returns the region with the given id.
func (r *Registry) Get(id string) (Region, bool) {
	region, ok := r.regions[id]
	return region, ok
}

// SetRect updates the rectangle of an existing region, keeping its type.
func (r *Registry) SetRect(id string, rect geometry.RectInt) bool {
	region, ok := r.regions[id]
	if !ok {
		return false
	}
	region.X, region.Y = rect.X, rect.Y
	region.Width, region.Height = rect.Width, rect.Height
	r.regions[id] = region
	return true
}

// IDs returns all region ids, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.regions))
	for id := range r.regions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IDsByType returns the ids of regions with the given type, sorted.
func (r *Registry) IDsByType(t Type) []string {
	var ids []string
	for id, region := range r.regions {
		if region.Type == t {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
