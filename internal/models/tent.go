package models

import (
	"strings"
	"sync"
)

// TentFeatures lists what a rental package includes.
type TentFeatures struct {
	Tent         bool `json:"tent"`
	Discobar     bool `json:"discobar"`
	Lighting     bool `json:"lighting"`
	SmokeMachine bool `json:"smokeMachine"`
}

// TentOption is one entry of the static rental catalog. The catalog is
// code, not data: prices change by editing this file, and the booking flow
// always prices from here rather than trusting the client.
type TentOption struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	BasePrice float64      `json:"price"`
	Features  TentFeatures `json:"features"`
	ImagePath string       `json:"imagePath,omitempty"`
}

var tentCatalog = []TentOption{
	{
		ID:        "basic",
		Name:      "Tent Only",
		BasePrice: 250,
		Features: TentFeatures{
			Tent: true,
		},
		ImagePath: "tents/basic.jpg",
	},
	{
		ID:        "full",
		Name:      "Full Option",
		BasePrice: 350,
		Features: TentFeatures{
			Tent:         true,
			Discobar:     true,
			Lighting:     true,
			SmokeMachine: true,
		},
		ImagePath: "tents/full.jpg",
	},
}

// catalogMu guards ImagePath, the only field mutated after boot (by the
// admin image upload).
var catalogMu sync.RWMutex

// TentOptions returns the full catalog.
func TentOptions() []TentOption {
	catalogMu.RLock()
	defer catalogMu.RUnlock()

	out := make([]TentOption, len(tentCatalog))
	copy(out, tentCatalog)
	return out
}

// FindTentOption resolves a catalog entry by id or display name. The
// booking form historically sent the display name, so both are accepted.
func FindTentOption(idOrName string) (TentOption, bool) {
	catalogMu.RLock()
	defer catalogMu.RUnlock()

	for _, opt := range tentCatalog {
		if opt.ID == idOrName || strings.EqualFold(opt.Name, idOrName) {
			return opt, true
		}
	}
	return TentOption{}, false
}

// SetTentImage points a catalog entry at a newly uploaded gallery image.
func SetTentImage(id, path string) bool {
	catalogMu.Lock()
	defer catalogMu.Unlock()

	for i := range tentCatalog {
		if tentCatalog[i].ID == id {
			tentCatalog[i].ImagePath = path
			return true
		}
	}
	return false
}
