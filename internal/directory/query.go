package directory

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"adminforms/internal/catalog"
	"adminforms/internal/form"
	"adminforms/internal/form/filter"

	"github.com/lib/pq"
)

type columnKind int

const (
	kindText columnKind = iota
	kindNumber
	kindTime
)

type column struct {
	expr string
	kind columnKind
}

// Date columns compare by calendar day, so a day bound covers the whole day.
func (c column) lhs() string {
	if c.kind == kindTime {
		return c.expr + "::date"
	}
	return c.expr
}

func (c column) param(n int) string {
	if c.kind == kindTime {
		return fmt.Sprintf("$%d::date", n)
	}
	return fmt.Sprintf("$%d", n)
}

var columns = map[string]column{
	catalog.FieldName:            {expr: "(first_name || ' ' || last_name)", kind: kindText},
	catalog.FieldDepartment:      {expr: "department", kind: kindText},
	catalog.FieldRole:            {expr: "COALESCE(role, '')", kind: kindText},
	catalog.FieldStatus:          {expr: "status", kind: kindText},
	catalog.FieldLastActive:      {expr: "last_active_at", kind: kindTime},
	catalog.FieldModulesAssigned: {expr: "modules_assigned", kind: kindNumber},
	catalog.FieldCreatedAt:       {expr: "created_at", kind: kindTime},
	catalog.FieldUpdatedAt:       {expr: "updated_at", kind: kindTime},
}

const selectMembers = `SELECT id, first_name, last_name, email, department, COALESCE(role, ''), status, modules_assigned, last_active_at, created_at, updated_at FROM members`

// Compile turns criteria into a parameterised member query. Criteria are
// ANDed in order. A criterion with no field or no value is an unfinished
// row and is skipped.
func Compile(criteria []filter.Criterion) (string, []any, error) {
	var (
		clauses []string
		args    []any
	)

	for idx, c := range criteria {
		if c.Field == "" || strings.TrimSpace(c.Value) == "" {
			continue
		}

		col, ok := columns[c.Field]
		if !ok {
			return "", nil, fmt.Errorf("criterion %d: %w: field %q", idx, form.ErrUnknownOption, c.Field)
		}

		clause, clauseArgs, err := compileCriterion(col, c.Operator, c.Value, len(args)+1)
		if err != nil {
			return "", nil, fmt.Errorf("criterion %d (%s %s): %w", idx, c.Field, c.Operator, err)
		}

		clauses = append(clauses, clause)
		args = append(args, clauseArgs...)
	}

	query := selectMembers
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY last_name, first_name"

	return query, args, nil
}

func compileCriterion(col column, operator, value string, n int) (string, []any, error) {
	switch operator {
	case catalog.OperatorEquals:
		v, err := parseValue(col.kind, value)
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("%s = %s", col.lhs(), col.param(n)), []any{v}, nil

	case catalog.OperatorContains, catalog.OperatorStartsWith, catalog.OperatorEndsWith:
		if col.kind != kindText {
			return "", nil, fmt.Errorf("%w: %s applies to text fields only", form.ErrInvalidValue, operator)
		}
		pattern := escapeLike(value)
		switch operator {
		case catalog.OperatorContains:
			pattern = "%" + pattern + "%"
		case catalog.OperatorStartsWith:
			pattern = pattern + "%"
		case catalog.OperatorEndsWith:
			pattern = "%" + pattern
		}
		return fmt.Sprintf("%s ILIKE $%d", col.expr, n), []any{pattern}, nil

	case catalog.OperatorGreaterThan, catalog.OperatorLessThan:
		v, err := parseValue(col.kind, value)
		if err != nil {
			return "", nil, err
		}
		op := ">"
		if operator == catalog.OperatorLessThan {
			op = "<"
		}
		return fmt.Sprintf("%s %s %s", col.lhs(), op, col.param(n)), []any{v}, nil

	case catalog.OperatorBetween:
		parts := splitList(value)
		if len(parts) != 2 {
			return "", nil, fmt.Errorf("%w: between takes two comma-separated bounds, got %q", form.ErrInvalidValue, value)
		}
		lo, err := parseValue(col.kind, parts[0])
		if err != nil {
			return "", nil, err
		}
		hi, err := parseValue(col.kind, parts[1])
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("%s BETWEEN %s AND %s", col.lhs(), col.param(n), col.param(n+1)), []any{lo, hi}, nil

	case catalog.OperatorIn:
		parts := splitList(value)
		if len(parts) == 0 {
			return "", nil, fmt.Errorf("%w: in takes at least one value, got %q", form.ErrInvalidValue, value)
		}
		switch col.kind {
		case kindText:
			return fmt.Sprintf("%s = ANY($%d)", col.expr, n), []any{pq.Array(parts)}, nil
		case kindNumber:
			nums := make([]int64, len(parts))
			for i, p := range parts {
				v, err := strconv.ParseInt(p, 10, 64)
				if err != nil {
					return "", nil, fmt.Errorf("%w: %q is not a whole number", form.ErrInvalidValue, p)
				}
				nums[i] = v
			}
			return fmt.Sprintf("%s = ANY($%d)", col.expr, n), []any{pq.Array(nums)}, nil
		default:
			return "", nil, fmt.Errorf("%w: in does not apply to date fields", form.ErrInvalidValue)
		}

	default:
		return "", nil, fmt.Errorf("%w: operator %q", form.ErrUnknownOption, operator)
	}
}

var timeLayouts = []string{time.RFC3339, "2006-01-02"}

func parseValue(kind columnKind, value string) (any, error) {
	value = strings.TrimSpace(value)

	switch kind {
	case kindNumber:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a whole number", form.ErrInvalidValue, value)
		}
		return v, nil
	case kindTime:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				return t, nil
			}
		}
		return nil, fmt.Errorf("%w: %q is not a date", form.ErrInvalidValue, value)
	default:
		return value, nil
	}
}

func splitList(value string) []string {
	var parts []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
