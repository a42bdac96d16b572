package config

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"vanrent/internal/model"
)

// OfficesFile is the offices.yaml document: the full catalogue of rental
// offices with their weekly schedules and special days.
type OfficesFile struct {
	Offices []model.Office `yaml:"offices"`
}

// LoadOffices reads and validates the office catalogue.
func LoadOffices(path string) ([]model.Office, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = []byte(os.ExpandEnv(string(data)))

	var file OfficesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse offices config: %w", err)
	}

	seen := make(map[string]bool, len(file.Offices))
	for _, o := range file.Offices {
		if o.ID == "" {
			return nil, fmt.Errorf("office %q has no id", o.Name)
		}
		if seen[o.ID] {
			return nil, fmt.Errorf("duplicate office id %q", o.ID)
		}
		seen[o.ID] = true
	}

	return file.Offices, nil
}

// Catalogue is the in-memory office lookup, replaced wholesale on config
// reload. Safe for concurrent use.
type Catalogue struct {
	mu   sync.RWMutex
	byID map[string]*model.Office
	ids  []string
}

// NewCatalogue builds a catalogue from an initial office list.
func NewCatalogue(offices []model.Office) *Catalogue {
	c := &Catalogue{}
	c.Replace(offices)
	return c
}

// Replace swaps in a new office list.
func (c *Catalogue) Replace(offices []model.Office) {
	byID := make(map[string]*model.Office, len(offices))
	ids := make([]string, 0, len(offices))
	for i := range offices {
		o := offices[i]
		byID[o.ID] = &o
		ids = append(ids, o.ID)
	}

	c.mu.Lock()
	c.byID = byID
	c.ids = ids
	c.mu.Unlock()
}

// Get returns the office with the given id, or nil.
func (c *Catalogue) Get(id string) *model.Office {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.byID[id]
}

// List returns all offices in config order.
func (c *Catalogue) List() []*model.Office {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*model.Office, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.byID[id])
	}
	return out
}
