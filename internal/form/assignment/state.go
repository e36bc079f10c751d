// Package assignment implements the module-to-user assignment form: two
// independent selections of module and user ids, narrowed by one shared
// search term.
package assignment

import (
	"slices"
	"strings"

	"adminforms/internal/catalog"
)

// Selection is the form state. The id lists behave as sets and keep the
// order in which ids were first selected.
type Selection struct {
	ModuleIDs  []string `json:"selectedModules"`
	UserIDs    []string `json:"selectedUsers"`
	SearchTerm string   `json:"searchTerm"`
}

func New() Selection {
	return Selection{ModuleIDs: []string{}, UserIDs: []string{}}
}

func (s Selection) SetSearchTerm(term string) Selection {
	s.ModuleIDs = slices.Clone(s.ModuleIDs)
	s.UserIDs = slices.Clone(s.UserIDs)
	s.SearchTerm = term
	return s
}

func (s Selection) ToggleModule(id string, included bool) Selection {
	s.ModuleIDs = toggle(s.ModuleIDs, id, included)
	s.UserIDs = slices.Clone(s.UserIDs)
	return s
}

func (s Selection) ToggleUser(id string, included bool) Selection {
	s.ModuleIDs = slices.Clone(s.ModuleIDs)
	s.UserIDs = toggle(s.UserIDs, id, included)
	return s
}

// CanSubmit reports whether at least one module and one user are selected.
func (s Selection) CanSubmit() bool {
	return len(s.ModuleIDs) > 0 && len(s.UserIDs) > 0
}

func toggle(ids []string, id string, included bool) []string {
	out := make([]string, 0, len(ids)+1)
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	if !included {
		return out
	}
	if slices.Contains(ids, id) {
		// keep the original position of an already selected id
		return slices.Clone(ids)
	}
	return append(out, id)
}

// FilterEntities returns the entities whose display name or category
// contains term, ignoring case. An empty term keeps every entity.
func FilterEntities(entities []catalog.Entity, term string) []catalog.Entity {
	needle := strings.ToLower(term)
	out := make([]catalog.Entity, 0, len(entities))
	for _, e := range entities {
		if strings.Contains(strings.ToLower(e.DisplayName), needle) ||
			strings.Contains(strings.ToLower(e.Category), needle) {
			out = append(out, e)
		}
	}
	return out
}
