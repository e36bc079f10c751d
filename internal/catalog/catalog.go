// Package catalog holds the fixed, read-only reference lists the dashboard
// forms choose from: filter fields and operators, plans, departments, roles,
// permissions, modules and users.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

// Option is an identifier with a human readable label.
type Option struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// Entity is a selectable reference item (a module or a user). DisplayName and
// Category are the searchable attributes; Detail is informational only.
type Entity struct {
	ID          string `json:"id" yaml:"id"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	Category    string `json:"category" yaml:"category"`
	Detail      string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

type Plan struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	PriceMonthly  int      `json:"priceMonthly" yaml:"priceMonthly"`
	Features      []string `json:"features" yaml:"features"`
	Recommended   bool     `json:"recommended" yaml:"recommended"`
	StripePriceID string   `json:"-" yaml:"stripePriceId,omitempty"`
}

type Role struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

type Catalog struct {
	Fields      []Option `json:"fields" yaml:"fields"`
	Operators   []Option `json:"operators" yaml:"operators"`
	Plans       []Plan   `json:"plans" yaml:"plans"`
	Departments []string `json:"departments" yaml:"departments"`
	Roles       []Role   `json:"roles" yaml:"roles"`
	Permissions []string `json:"permissions" yaml:"permissions"`
	Modules     []Entity `json:"modules" yaml:"modules"`
	Users       []Entity `json:"users" yaml:"users"`
}

// Load reads a YAML catalog from path. Sections missing from the file keep
// their Default values.
func Load(path string) (Catalog, error) {
	cat := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cat, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file Catalog
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cat, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	if len(file.Fields) > 0 {
		cat.Fields = file.Fields
	}
	if len(file.Operators) > 0 {
		cat.Operators = file.Operators
	}
	if len(file.Plans) > 0 {
		cat.Plans = file.Plans
	}
	if len(file.Departments) > 0 {
		cat.Departments = file.Departments
	}
	if len(file.Roles) > 0 {
		cat.Roles = file.Roles
	}
	if len(file.Permissions) > 0 {
		cat.Permissions = file.Permissions
	}
	if len(file.Modules) > 0 {
		cat.Modules = file.Modules
	}
	if len(file.Users) > 0 {
		cat.Users = file.Users
	}

	if err := cat.Validate(); err != nil {
		return cat, err
	}
	return cat, nil
}

// Validate checks that identifiers are unique and that the plan list can
// always yield a selection.
func (c Catalog) Validate() error {
	if len(c.Plans) == 0 {
		return fmt.Errorf("%w: at least one plan is required", ErrInvalidCatalog)
	}
	if len(c.Operators) == 0 {
		return fmt.Errorf("%w: at least one operator is required", ErrInvalidCatalog)
	}

	checks := map[string][]string{
		"field":      optionIDs(c.Fields),
		"operator":   optionIDs(c.Operators),
		"department": c.Departments,
		"permission": c.Permissions,
		"module":     entityIDs(c.Modules),
		"user":       entityIDs(c.Users),
	}
	plans := make([]string, len(c.Plans))
	for i, p := range c.Plans {
		plans[i] = p.ID
	}
	checks["plan"] = plans
	roles := make([]string, len(c.Roles))
	for i, r := range c.Roles {
		roles[i] = r.ID
	}
	checks["role"] = roles

	for kind, ids := range checks {
		seen := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			if id == "" {
				return fmt.Errorf("%w: empty %s id", ErrInvalidCatalog, kind)
			}
			if _, dup := seen[id]; dup {
				return fmt.Errorf("%w: duplicate %s id %q", ErrInvalidCatalog, kind, id)
			}
			seen[id] = struct{}{}
		}
	}
	return nil
}

func (c Catalog) HasField(id string) bool {
	return slices.ContainsFunc(c.Fields, func(o Option) bool { return o.ID == id })
}

func (c Catalog) HasOperator(id string) bool {
	return slices.ContainsFunc(c.Operators, func(o Option) bool { return o.ID == id })
}

func (c Catalog) HasDepartment(name string) bool {
	return slices.Contains(c.Departments, name)
}

func (c Catalog) HasRole(id string) bool {
	return slices.ContainsFunc(c.Roles, func(r Role) bool { return r.ID == id })
}

func (c Catalog) HasPermission(name string) bool {
	return slices.Contains(c.Permissions, name)
}

func (c Catalog) HasModule(id string) bool {
	return slices.ContainsFunc(c.Modules, func(e Entity) bool { return e.ID == id })
}

func (c Catalog) HasUser(id string) bool {
	return slices.ContainsFunc(c.Users, func(e Entity) bool { return e.ID == id })
}

// Plan returns the plan with the given id.
func (c Catalog) Plan(id string) (Plan, bool) {
	idx := slices.IndexFunc(c.Plans, func(p Plan) bool { return p.ID == id })
	if idx < 0 {
		return Plan{}, false
	}
	return c.Plans[idx], true
}

func optionIDs(options []Option) []string {
	ids := make([]string, len(options))
	for i, o := range options {
		ids[i] = o.ID
	}
	return ids
}

func entityIDs(entities []Entity) []string {
	ids := make([]string, len(entities))
	for i, e := range entities {
		ids[i] = e.ID
	}
	return ids
}
