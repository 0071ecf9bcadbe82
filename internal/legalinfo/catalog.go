// Package legalinfo serves the built-in catalog of legal resources.
package legalinfo

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/zangerai/zanger/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed resources.yaml
var resourcesYAML []byte

// ErrNotFound is returned when a resource id is not in the catalog.
var ErrNotFound = errors.New("resource not found")

// Resource is one entry in the legal information browser.
type Resource struct {
	ID            string  `yaml:"id" json:"id"`
	Category      string  `yaml:"category" json:"category"`
	Kind          string  `yaml:"kind" json:"kind"` // law, article, precedent, guideline
	TitleRU       string  `yaml:"title_ru" json:"title_ru"`
	TitleEN       string  `yaml:"title_en" json:"title_en"`
	Source        string  `yaml:"source" json:"source"`
	Rating        float64 `yaml:"rating" json:"rating"`
	Updated       string  `yaml:"updated" json:"updated"`
	DescriptionRU string  `yaml:"description_ru" json:"description_ru"`
	DescriptionEN string  `yaml:"description_en" json:"description_en"`
}

// Title returns the localized title.
func (r Resource) Title(lang domain.Language) string {
	if lang == domain.LanguageEN {
		return r.TitleEN
	}
	return r.TitleRU
}

// Description returns the localized description.
func (r Resource) Description(lang domain.Language) string {
	if lang == domain.LanguageEN {
		return r.DescriptionEN
	}
	return r.DescriptionRU
}

// Catalog is the immutable resource collection.
type Catalog struct {
	resources []Resource
}

type resourcesFile struct {
	Resources []Resource `yaml:"resources"`
}

// Load parses the embedded resource fixtures.
func Load() (*Catalog, error) {
	var f resourcesFile
	if err := yaml.Unmarshal(resourcesYAML, &f); err != nil {
		return nil, fmt.Errorf("parse legal resources: %w", err)
	}
	return &Catalog{resources: f.Resources}, nil
}

// List returns all resources in catalog order.
func (c *Catalog) List() []Resource {
	return append([]Resource(nil), c.resources...)
}

// Get looks up a resource by id.
func (c *Catalog) Get(id string) (Resource, error) {
	for _, r := range c.resources {
		if r.ID == id {
			return r, nil
		}
	}
	return Resource{}, ErrNotFound
}

// Search filters resources by a case-insensitive substring over titles,
// descriptions and category. An empty term returns the full list.
func (c *Catalog) Search(term string) []Resource {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return c.List()
	}

	var out []Resource
	for _, r := range c.resources {
		if strings.Contains(strings.ToLower(r.TitleRU), term) ||
			strings.Contains(strings.ToLower(r.TitleEN), term) ||
			strings.Contains(strings.ToLower(r.DescriptionRU), term) ||
			strings.Contains(strings.ToLower(r.DescriptionEN), term) ||
			strings.Contains(strings.ToLower(r.Category), term) {
			out = append(out, r)
		}
	}
	return out
}
