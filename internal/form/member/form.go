package member

import (
	"context"
	"fmt"
	"log/slog"

	"adminforms/internal/catalog"
	"adminforms/internal/form"
)

// Saver stores a submitted member in the member directory.
type Saver interface {
	SaveMember(ctx context.Context, record Record) error
}

type Validator interface {
	Validate(i interface{}) error
}

type Form struct {
	logger    *slog.Logger
	catalog   catalog.Catalog
	validator Validator
	saver     Saver
	recorder  form.Recorder
}

func NewForm(logger *slog.Logger, cat catalog.Catalog, validator Validator, saver Saver, recorder form.Recorder) *Form {
	if recorder == nil {
		recorder = form.NopRecorder{}
	}
	return &Form{logger: logger, catalog: cat, validator: validator, saver: saver, recorder: recorder}
}

// UpdateField sets one scalar attribute. Department and role must come from
// the catalog; an empty value clears them.
func (f *Form) UpdateField(r Record, field Field, value string) (Record, error) {
	switch field {
	case FieldDepartment:
		if value != "" && !f.catalog.HasDepartment(value) {
			return r, fmt.Errorf("%w: department %q", form.ErrUnknownOption, value)
		}
	case FieldRole:
		if value != "" && !f.catalog.HasRole(value) {
			return r, fmt.Errorf("%w: role %q", form.ErrUnknownOption, value)
		}
	case FieldFirstName, FieldLastName, FieldEmail:
	default:
		return r, fmt.Errorf("%w: %q", form.ErrUnknownAttribute, field)
	}
	return r.UpdateField(field, value), nil
}

func (f *Form) TogglePermission(r Record, name string, included bool) (Record, error) {
	if !f.catalog.HasPermission(name) {
		return r, fmt.Errorf("%w: permission %q", form.ErrUnknownOption, name)
	}
	return r.TogglePermission(name, included), nil
}

// Submit validates the required fields and hands the record to the saver.
// A record without a role is accepted.
func (f *Form) Submit(ctx context.Context, r Record) (Record, error) {
	if err := f.validator.Validate(r); err != nil {
		return Record{}, err
	}

	if r.Role == "" {
		f.logger.WarnContext(ctx, "Team member submitted without a role", "email", r.Email)
	}

	if err := f.saver.SaveMember(ctx, r); err != nil {
		return Record{}, form.Rejected(form.NameMember, err)
	}

	f.logger.InfoContext(ctx, "Team member data", "member", r)

	if err := f.recorder.Record(ctx, form.NewSubmission(form.NameMember, r)); err != nil {
		f.logger.WarnContext(ctx, "Failed to record member submission", "error", err)
	}

	return r, nil
}

// LogSaver stands in for the member directory when no database is configured.
type LogSaver struct {
	Logger *slog.Logger
}

func (s LogSaver) SaveMember(ctx context.Context, record Record) error {
	s.Logger.InfoContext(ctx, "Member save requested without directory backend", "email", record.Email)
	return nil
}
