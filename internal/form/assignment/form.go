package assignment

import (
	"context"
	"fmt"
	"log/slog"

	"adminforms/internal/catalog"
	"adminforms/internal/form"
)

// Assigner grants every selected module to every selected user.
type Assigner interface {
	Assign(ctx context.Context, moduleIDs, userIDs []string) error
}

// Candidates are the catalog entries visible under the current search term.
type Candidates struct {
	Modules []catalog.Entity `json:"modules"`
	Users   []catalog.Entity `json:"users"`
}

type Form struct {
	logger   *slog.Logger
	catalog  catalog.Catalog
	assigner Assigner
	recorder form.Recorder
}

func NewForm(logger *slog.Logger, cat catalog.Catalog, assigner Assigner, recorder form.Recorder) *Form {
	if recorder == nil {
		recorder = form.NopRecorder{}
	}
	return &Form{logger: logger, catalog: cat, assigner: assigner, recorder: recorder}
}

func (f *Form) Candidates(s Selection) Candidates {
	return Candidates{
		Modules: FilterEntities(f.catalog.Modules, s.SearchTerm),
		Users:   FilterEntities(f.catalog.Users, s.SearchTerm),
	}
}

func (f *Form) ToggleModule(s Selection, id string, included bool) (Selection, error) {
	if !f.catalog.HasModule(id) {
		return s, fmt.Errorf("%w: module %q", form.ErrUnknownOption, id)
	}
	return s.ToggleModule(id, included), nil
}

func (f *Form) ToggleUser(s Selection, id string, included bool) (Selection, error) {
	if !f.catalog.HasUser(id) {
		return s, fmt.Errorf("%w: user %q", form.ErrUnknownOption, id)
	}
	return s.ToggleUser(id, included), nil
}

type Result struct {
	ModuleIDs []string `json:"selectedModules"`
	UserIDs   []string `json:"selectedUsers"`
}

// Submit hands both selections to the assigner. It is blocked while either
// selection is empty.
func (f *Form) Submit(ctx context.Context, s Selection) (Result, error) {
	if !s.CanSubmit() {
		return Result{}, fmt.Errorf("%w: select at least one module and one user", form.ErrSubmissionBlocked)
	}

	result := Result{ModuleIDs: s.ModuleIDs, UserIDs: s.UserIDs}
	if err := f.assigner.Assign(ctx, result.ModuleIDs, result.UserIDs); err != nil {
		return Result{}, form.Rejected(form.NameAssignment, err)
	}

	f.logger.InfoContext(ctx, "Modules assigned", "selected_modules", result.ModuleIDs, "selected_users", result.UserIDs)

	if err := f.recorder.Record(ctx, form.NewSubmission(form.NameAssignment, result)); err != nil {
		f.logger.WarnContext(ctx, "Failed to record assignment submission", "error", err)
	}

	return result, nil
}

// LogAssigner stands in for the authorization store when it is disabled.
type LogAssigner struct {
	Logger *slog.Logger
}

func (a LogAssigner) Assign(ctx context.Context, moduleIDs, userIDs []string) error {
	a.Logger.InfoContext(ctx, "Assignment requested without authorization backend", "modules", moduleIDs, "users", userIDs)
	return nil
}
