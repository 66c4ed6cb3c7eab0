package io

import (
	"context"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/HubOfCJ/testcase-manager/internal/model"
)

// CatalogYAMLRepository loads catalog seeds (users and tasks) from YAML files.
type CatalogYAMLRepository struct {
	fs fs.FS
}

// NewCatalogYAMLRepository creates a new YAML catalog repository.
func NewCatalogYAMLRepository(filesystem fs.FS) *CatalogYAMLRepository {
	return &CatalogYAMLRepository{fs: filesystem}
}

// GetCatalog loads a catalog from a YAML file and returns a validated domain model.
func (r *CatalogYAMLRepository) GetCatalog(ctx context.Context, path string) (model.Catalog, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.Catalog{}, fmt.Errorf("reading catalog file: %w", err)
	}

	if ctx.Err() != nil {
		return model.Catalog{}, ctx.Err()
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return model.Catalog{}, fmt.Errorf("parsing YAML: %w", err)
	}

	c := catalog.toModel()
	if err := c.Validate(); err != nil {
		return model.Catalog{}, fmt.Errorf("invalid catalog: %w", err)
	}

	return c, nil
}

// Catalog represents the YAML structure for a catalog seed.
type Catalog struct {
	Users []UserSpec `yaml:"users"`
	Tasks []TaskSpec `yaml:"tasks"`
}

// UserSpec represents the YAML structure for a user seed.
type UserSpec struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Role     string `yaml:"role"`
}

// TaskSpec represents the YAML structure for a task seed.
type TaskSpec struct {
	Title         string   `yaml:"title"`
	Tooltip       string   `yaml:"tooltip"`
	IntervalWeeks int      `yaml:"interval_weeks"`
	Area          string   `yaml:"area"`
	Assignees     []string `yaml:"assignees"`
}

func (c Catalog) toModel() model.Catalog {
	catalog := model.Catalog{}

	for _, u := range c.Users {
		role := u.Role
		if role == "" {
			role = string(model.RoleTester)
		}
		catalog.Users = append(catalog.Users, model.UserSpec{
			Username: u.Username,
			Email:    u.Email,
			Role:     model.Role(role),
		})
	}

	for _, t := range c.Tasks {
		catalog.Tasks = append(catalog.Tasks, model.TaskSpec{
			Title:         t.Title,
			Tooltip:       t.Tooltip,
			IntervalWeeks: t.IntervalWeeks,
			Area:          t.Area,
			Assignees:     t.Assignees,
		})
	}

	return catalog
}
