package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"adminforms/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cat := catalog.Default()

	require.NoError(t, cat.Validate())
	assert.Len(t, cat.Fields, 8)
	assert.Len(t, cat.Operators, 8)
	assert.Len(t, cat.Departments, 15)
	assert.Len(t, cat.Roles, 4)
	assert.Len(t, cat.Permissions, 5)

	pro, ok := cat.Plan("pro")
	require.True(t, ok)
	assert.True(t, pro.Recommended)
	assert.Equal(t, 49, pro.PriceMonthly)
}

func TestCatalog_Lookups(t *testing.T) {
	cat := catalog.Default()

	assert.True(t, cat.HasField(catalog.FieldLastActive))
	assert.False(t, cat.HasField("salary"))
	assert.True(t, cat.HasOperator(catalog.OperatorIn))
	assert.False(t, cat.HasOperator("like"))
	assert.True(t, cat.HasDepartment("Research & Development"))
	assert.False(t, cat.HasDepartment("research & development"))
	assert.True(t, cat.HasRole("viewer"))
	assert.True(t, cat.HasPermission("Manage billing"))
	assert.True(t, cat.HasModule("2"))
	assert.False(t, cat.HasUser("3"))

	_, ok := cat.Plan("platinum")
	assert.False(t, ok)
}

func TestCatalog_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*catalog.Catalog)
	}{
		{
			name:   "no_plans",
			mutate: func(c *catalog.Catalog) { c.Plans = nil },
		},
		{
			name:   "no_operators",
			mutate: func(c *catalog.Catalog) { c.Operators = nil },
		},
		{
			name: "duplicate_module",
			mutate: func(c *catalog.Catalog) {
				c.Modules = append(c.Modules, catalog.Entity{ID: "1", DisplayName: "Copy"})
			},
		},
		{
			name:   "empty_role_id",
			mutate: func(c *catalog.Catalog) { c.Roles[0].ID = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := catalog.Default()
			tt.mutate(&cat)
			assert.ErrorIs(t, cat.Validate(), catalog.ErrInvalidCatalog)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := `
plans:
  - id: starter
    name: Starter
    priceMonthly: 9
    features: ["One seat"]
  - id: team
    name: Team
    priceMonthly: 29
    recommended: true
    stripePriceId: price_team
modules:
  - id: m-1
    displayName: Payroll
    category: Finance
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cat, err := catalog.Load(path)
	require.NoError(t, err)

	require.Len(t, cat.Plans, 2)
	assert.Equal(t, "price_team", cat.Plans[1].StripePriceID)
	require.Len(t, cat.Modules, 1)
	assert.Equal(t, "Payroll", cat.Modules[0].DisplayName)
	// untouched sections keep their defaults
	assert.Len(t, cat.Departments, 15)
	assert.Len(t, cat.Users, 2)
}

func TestLoad_Errors(t *testing.T) {
	_, err := catalog.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "dup.yaml")
	require.NoError(t, os.WriteFile(path, []byte("departments: [Legal, Legal]\n"), 0o600))
	_, err = catalog.Load(path)
	assert.ErrorIs(t, err, catalog.ErrInvalidCatalog)
}
