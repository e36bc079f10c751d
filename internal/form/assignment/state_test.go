package assignment_test

import (
	"testing"

	"adminforms/internal/catalog"
	"adminforms/internal/form/assignment"

	"github.com/stretchr/testify/assert"
)

func TestSelection_ToggleIsIdempotent(t *testing.T) {
	s := assignment.New().ToggleModule("1", true)
	again := s.ToggleModule("1", true)

	assert.Equal(t, s, again)
	assert.Equal(t, []string{"1"}, again.ModuleIDs)
}

func TestSelection_ToggleRoundTrip(t *testing.T) {
	prior := assignment.New().ToggleModule("2", true)

	got := prior.ToggleModule("1", true).ToggleModule("1", false)

	assert.Equal(t, prior, got)
}

func TestSelection_RemoveMissingIsNoop(t *testing.T) {
	s := assignment.New().ToggleUser("1", true)

	assert.Equal(t, s, s.ToggleUser("2", false))
}

func TestSelection_KeepsSelectionOrder(t *testing.T) {
	s := assignment.New().
		ToggleUser("2", true).
		ToggleUser("1", true).
		ToggleUser("2", true)

	assert.Equal(t, []string{"2", "1"}, s.UserIDs)
}

func TestSelection_SetsAreIndependent(t *testing.T) {
	s := assignment.New().ToggleModule("1", true)

	assert.Equal(t, []string{"1"}, s.ModuleIDs)
	assert.Empty(t, s.UserIDs)
}

func TestSelection_DoesNotMutatePriorSnapshot(t *testing.T) {
	prior := assignment.New().ToggleModule("1", true).ToggleModule("2", true)

	_ = prior.ToggleModule("1", false)
	_ = prior.SetSearchTerm("hr")

	assert.Equal(t, []string{"1", "2"}, prior.ModuleIDs)
	assert.Empty(t, prior.SearchTerm)
}

func TestSelection_CanSubmit(t *testing.T) {
	tests := []struct {
		name string
		sel  assignment.Selection
		want bool
	}{
		{"nothing_selected", assignment.New(), false},
		{"users_only", assignment.New().ToggleUser("1", true), false},
		{"modules_only", assignment.New().ToggleModule("1", true), false},
		{"both", assignment.New().ToggleModule("1", true).ToggleUser("1", true), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sel.CanSubmit())
		})
	}
}

func TestFilterEntities(t *testing.T) {
	modules := catalog.Default().Modules

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"empty_term_keeps_all", "", []string{"1", "2"}},
		{"case_insensitive_category", "fin", []string{"1"}},
		{"upper_case_term", "HR", []string{"2"}},
		{"display_name", "suite", []string{"1"}},
		{"matches_both", "s", []string{"1", "2"}},
		{"description_is_not_searched", "comprehensive", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := assignment.FilterEntities(modules, tt.term)
			ids := make([]string, len(got))
			for i, e := range got {
				ids[i] = e.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterEntities_CategoryFinance(t *testing.T) {
	got := assignment.FilterEntities([]catalog.Entity{
		{ID: "x", DisplayName: "Ledger", Category: "Finance"},
	}, "fin")

	assert.Len(t, got, 1)
}
