package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"adminforms/internal/form"
	"adminforms/internal/storage"
)

// SubmissionWriter persists the submission envelope, e.g. in the
// submissions table.
type SubmissionWriter interface {
	WriteSubmission(ctx context.Context, s form.Submission) error
}

// Counter is told about every recorded submission.
type Counter interface {
	SubmissionRecorded(ctx context.Context, formName string)
}

// Auditor records accepted submissions. Each of its sinks is optional.
type Auditor struct {
	logger  *slog.Logger
	writer  SubmissionWriter
	archive storage.Storage
	counter Counter
}

func NewAuditor(logger *slog.Logger, writer SubmissionWriter, archive storage.Storage, counter Counter) *Auditor {
	return &Auditor{logger: logger, writer: writer, archive: archive, counter: counter}
}

// Key is the archive key of s: <form>/<yyyy>/<mm>/<id>.json.
func Key(s form.Submission) string {
	return fmt.Sprintf("%s/%d/%02d/%s.json",
		s.Form,
		s.SubmittedAt.Year(),
		s.SubmittedAt.Month(),
		s.ID.String(),
	)
}

func (a *Auditor) Record(ctx context.Context, s form.Submission) error {
	var errs []error

	if a.writer != nil {
		if err := a.writer.WriteSubmission(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}

	if a.archive != nil {
		data, err := json.Marshal(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to marshal submission: %w", err))
		} else if err := a.archive.Put(ctx, Key(s), bytes.NewReader(data), "application/json"); err != nil {
			errs = append(errs, fmt.Errorf("failed to archive submission: %w", err))
		}
	}

	if a.counter != nil {
		a.counter.SubmissionRecorded(ctx, s.Form)
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}

	a.logger.DebugContext(ctx, "Submission recorded", "form", s.Form, "id", s.ID)
	return nil
}
