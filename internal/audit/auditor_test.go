package audit_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"adminforms/internal/audit"
	"adminforms/internal/form"
	"adminforms/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteSubmission(ctx context.Context, s form.Submission) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type countingCounter struct {
	forms []string
}

func (c *countingCounter) SubmissionRecorded(_ context.Context, formName string) {
	c.forms = append(c.forms, formName)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func submission() form.Submission {
	return form.Submission{
		ID:          uuid.MustParse("7f9c2b4e-1d3a-4c5b-9e8f-0a1b2c3d4e5f"),
		Form:        form.NameAssignment,
		Payload:     map[string]any{"selectedModules": []string{"1"}},
		SubmittedAt: time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC),
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "assignment/2025/03/7f9c2b4e-1d3a-4c5b-9e8f-0a1b2c3d4e5f.json", audit.Key(submission()))
}

func TestAuditor_RecordArchivesAndWrites(t *testing.T) {
	ctx := context.Background()
	archive, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	writer := &MockWriter{}
	writer.On("WriteSubmission", mock.Anything, submission()).Return(nil)
	counter := &countingCounter{}

	a := audit.NewAuditor(discardLogger(), writer, archive, counter)
	require.NoError(t, a.Record(ctx, submission()))

	r, err := archive.Get(ctx, audit.Key(submission()))
	require.NoError(t, err)
	defer r.Close()

	var stored map[string]any
	require.NoError(t, json.NewDecoder(r).Decode(&stored))
	assert.Equal(t, "assignment", stored["form"])
	assert.Equal(t, "7f9c2b4e-1d3a-4c5b-9e8f-0a1b2c3d4e5f", stored["id"])

	writer.AssertExpectations(t)
	assert.Equal(t, []string{"assignment"}, counter.forms)
}

func TestAuditor_RecordWithoutSinks(t *testing.T) {
	a := audit.NewAuditor(discardLogger(), nil, nil, nil)
	assert.NoError(t, a.Record(context.Background(), submission()))
}

func TestAuditor_RecordReportsWriterFailure(t *testing.T) {
	cause := errors.New("connection reset")
	writer := &MockWriter{}
	writer.On("WriteSubmission", mock.Anything, mock.Anything).Return(cause)

	archive, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	a := audit.NewAuditor(discardLogger(), writer, archive, nil)
	err = a.Record(context.Background(), submission())

	assert.ErrorIs(t, err, cause)

	// the archive copy is still written
	exists, err := archive.Exists(context.Background(), audit.Key(submission()))
	require.NoError(t, err)
	assert.True(t, exists)
}
