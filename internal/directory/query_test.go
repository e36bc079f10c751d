package directory_test

import (
	"strings"
	"testing"
	"time"

	"adminforms/internal/directory"
	"adminforms/internal/form"
	"adminforms/internal/form/filter"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func where(query string) string {
	_, after, found := strings.Cut(query, " WHERE ")
	if !found {
		return ""
	}
	clause, _, _ := strings.Cut(after, " ORDER BY ")
	return clause
}

func TestCompile_NoCriteria(t *testing.T) {
	query, args, err := directory.Compile(nil)

	require.NoError(t, err)
	assert.Empty(t, where(query))
	assert.Empty(t, args)
	assert.True(t, strings.HasSuffix(query, "ORDER BY last_name, first_name"))
}

func TestCompile_Operators(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}

	tests := []struct {
		name      string
		criterion filter.Criterion
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "text_equals",
			criterion: filter.Criterion{Field: "status", Operator: "equals", Value: "active"},
			wantWhere: "status = $1",
			wantArgs:  []any{"active"},
		},
		{
			name:      "name_contains",
			criterion: filter.Criterion{Field: "name", Operator: "contains", Value: "jo"},
			wantWhere: "(first_name || ' ' || last_name) ILIKE $1",
			wantArgs:  []any{"%jo%"},
		},
		{
			name:      "starts_with",
			criterion: filter.Criterion{Field: "department", Operator: "startsWith", Value: "Fin"},
			wantWhere: "department ILIKE $1",
			wantArgs:  []any{"Fin%"},
		},
		{
			name:      "ends_with_escapes_wildcards",
			criterion: filter.Criterion{Field: "role", Operator: "endsWith", Value: "50%_off"},
			wantWhere: "COALESCE(role, '') ILIKE $1",
			wantArgs:  []any{`%50\%\_off`},
		},
		{
			name:      "number_greater_than",
			criterion: filter.Criterion{Field: "modulesAssigned", Operator: "greaterThan", Value: "3"},
			wantWhere: "modules_assigned > $1",
			wantArgs:  []any{int64(3)},
		},
		{
			name:      "date_less_than",
			criterion: filter.Criterion{Field: "lastActive", Operator: "lessThan", Value: "2024-06-01"},
			wantWhere: "last_active_at::date < $1::date",
			wantArgs:  []any{day("2024-06-01")},
		},
		{
			name:      "date_equals_compares_days",
			criterion: filter.Criterion{Field: "createdAt", Operator: "equals", Value: "2024-01-15"},
			wantWhere: "created_at::date = $1::date",
			wantArgs:  []any{day("2024-01-15")},
		},
		{
			name:      "date_between_includes_last_day",
			criterion: filter.Criterion{Field: "updatedAt", Operator: "between", Value: "2024-01-01, 2024-12-31"},
			wantWhere: "updated_at::date BETWEEN $1::date AND $2::date",
			wantArgs:  []any{day("2024-01-01"), day("2024-12-31")},
		},
		{
			name:      "text_in_list",
			criterion: filter.Criterion{Field: "department", Operator: "in", Value: "Finance, HR,,"},
			wantWhere: "department = ANY($1)",
			wantArgs:  []any{pq.Array([]string{"Finance", "HR"})},
		},
		{
			name:      "number_in_list",
			criterion: filter.Criterion{Field: "modulesAssigned", Operator: "in", Value: "1,2"},
			wantWhere: "modules_assigned = ANY($1)",
			wantArgs:  []any{pq.Array([]int64{1, 2})},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := directory.Compile([]filter.Criterion{tt.criterion})

			require.NoError(t, err)
			assert.Equal(t, tt.wantWhere, where(query))
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestCompile_CombinesInOrder(t *testing.T) {
	criteria := []filter.Criterion{
		{Field: "status", Operator: "equals", Value: "active"},
		{Field: "createdAt", Operator: "between", Value: "2024-01-01,2024-02-01"},
		{Field: "role", Operator: "startsWith", Value: "man"},
	}

	query, args, err := directory.Compile(criteria)

	require.NoError(t, err)
	assert.Equal(t, "status = $1 AND created_at::date BETWEEN $2::date AND $3::date AND COALESCE(role, '') ILIKE $4", where(query))
	assert.Len(t, args, 4)
	assert.Equal(t, "man%", args[3])
}

func TestCompile_SkipsUnfinishedRows(t *testing.T) {
	criteria := []filter.Criterion{
		filter.DefaultCriterion(),
		{Field: "status", Operator: "equals", Value: "  "},
		{Field: "", Operator: "contains", Value: "orphan value"},
		{Field: "department", Operator: "equals", Value: "Legal"},
	}

	query, args, err := directory.Compile(criteria)

	require.NoError(t, err)
	assert.Equal(t, "department = $1", where(query))
	assert.Equal(t, []any{"Legal"}, args)
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name      string
		criterion filter.Criterion
		wantErr   error
	}{
		{"unknown_field", filter.Criterion{Field: "salary", Operator: "equals", Value: "1"}, form.ErrUnknownOption},
		{"unknown_operator", filter.Criterion{Field: "status", Operator: "like", Value: "a"}, form.ErrUnknownOption},
		{"between_one_bound", filter.Criterion{Field: "modulesAssigned", Operator: "between", Value: "3"}, form.ErrInvalidValue},
		{"between_three_bounds", filter.Criterion{Field: "modulesAssigned", Operator: "between", Value: "1,2,3"}, form.ErrInvalidValue},
		{"contains_on_number", filter.Criterion{Field: "modulesAssigned", Operator: "contains", Value: "3"}, form.ErrInvalidValue},
		{"non_numeric_bound", filter.Criterion{Field: "modulesAssigned", Operator: "greaterThan", Value: "many"}, form.ErrInvalidValue},
		{"malformed_date", filter.Criterion{Field: "createdAt", Operator: "lessThan", Value: "yesterday"}, form.ErrInvalidValue},
		{"in_on_date", filter.Criterion{Field: "createdAt", Operator: "in", Value: "2024-01-01"}, form.ErrInvalidValue},
		{"in_only_commas", filter.Criterion{Field: "department", Operator: "in", Value: ", ,,"}, form.ErrInvalidValue},
		{"in_only_commas_number", filter.Criterion{Field: "modulesAssigned", Operator: "in", Value: ","}, form.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := directory.Compile([]filter.Criterion{tt.criterion})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
