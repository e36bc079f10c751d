package filter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"adminforms/internal/catalog"
	"adminforms/internal/form"
)

// Match is one member returned by a search.
type Match struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Department      string     `json:"department"`
	Role            string     `json:"role"`
	Status          string     `json:"status"`
	ModulesAssigned int        `json:"modulesAssigned"`
	LastActive      *time.Time `json:"lastActive,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Searcher runs a criteria list against the member directory.
type Searcher interface {
	Search(ctx context.Context, criteria []Criterion) ([]Match, error)
}

type Form struct {
	logger   *slog.Logger
	catalog  catalog.Catalog
	searcher Searcher
	recorder form.Recorder
}

func NewForm(logger *slog.Logger, cat catalog.Catalog, searcher Searcher, recorder form.Recorder) *Form {
	if recorder == nil {
		recorder = form.NopRecorder{}
	}
	return &Form{logger: logger, catalog: cat, searcher: searcher, recorder: recorder}
}

// Update applies an attribute change after checking field and operator
// values against the catalog. A blank field is allowed; it is the "Select
// Field" placeholder.
func (f *Form) Update(s Set, index int, attr Attribute, value string) (Set, error) {
	switch attr {
	case AttributeField:
		if value != "" && !f.catalog.HasField(value) {
			return s, fmt.Errorf("%w: field %q", form.ErrUnknownOption, value)
		}
	case AttributeOperator:
		if !f.catalog.HasOperator(value) {
			return s, fmt.Errorf("%w: operator %q", form.ErrUnknownOption, value)
		}
	case AttributeValue:
	default:
		return s, fmt.Errorf("%w: %q", form.ErrUnknownAttribute, attr)
	}

	return s.Update(index, attr, value), nil
}

// Submit hands the criteria to the searcher exactly as they are; blank
// fields and values are not filtered out here.
func (f *Form) Submit(ctx context.Context, s Set) ([]Match, error) {
	criteria := s.clone()

	matches, err := f.searcher.Search(ctx, criteria)
	if err != nil {
		return nil, form.Rejected(form.NameFilters, err)
	}

	f.logger.InfoContext(ctx, "Applied filters", "filters", criteria, "matches", len(matches))

	if err := f.recorder.Record(ctx, form.NewSubmission(form.NameFilters, criteria)); err != nil {
		f.logger.WarnContext(ctx, "Failed to record filter submission", "error", err)
	}

	return matches, nil
}

// LogSearcher stands in for the directory when no database is configured.
type LogSearcher struct {
	Logger *slog.Logger
}

func (s LogSearcher) Search(ctx context.Context, criteria []Criterion) ([]Match, error) {
	s.Logger.InfoContext(ctx, "Search requested without directory backend", "criteria", criteria)
	return []Match{}, nil
}
