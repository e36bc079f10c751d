package assignment_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"adminforms/internal/catalog"
	"adminforms/internal/form"
	"adminforms/internal/form/assignment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAssigner struct {
	mock.Mock
}

func (m *MockAssigner) Assign(ctx context.Context, moduleIDs, userIDs []string) error {
	args := m.Called(ctx, moduleIDs, userIDs)
	return args.Error(0)
}

type recorderFunc func(ctx context.Context, submission form.Submission) error

func (f recorderFunc) Record(ctx context.Context, submission form.Submission) error {
	return f(ctx, submission)
}

func newForm(assigner assignment.Assigner, recorder form.Recorder) *assignment.Form {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return assignment.NewForm(logger, catalog.Default(), assigner, recorder)
}

func TestForm_Candidates(t *testing.T) {
	f := newForm(&MockAssigner{}, nil)

	got := f.Candidates(assignment.New().SetSearchTerm("fin"))

	require.Len(t, got.Modules, 1)
	assert.Equal(t, "Financial Reporting Suite", got.Modules[0].DisplayName)
	require.Len(t, got.Users, 1)
	assert.Equal(t, "John Doe", got.Users[0].DisplayName)
}

func TestForm_ToggleRejectsUnknownIDs(t *testing.T) {
	f := newForm(&MockAssigner{}, nil)
	s := assignment.New()

	_, err := f.ToggleModule(s, "99", true)
	assert.ErrorIs(t, err, form.ErrUnknownOption)

	_, err = f.ToggleUser(s, "99", true)
	assert.ErrorIs(t, err, form.ErrUnknownOption)

	got, err := f.ToggleUser(s, "2", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, got.UserIDs)
}

func TestForm_SubmitBlockedWithoutModules(t *testing.T) {
	assigner := &MockAssigner{}
	f := newForm(assigner, nil)

	s := assignment.New().ToggleUser("1", true)
	_, err := f.Submit(context.Background(), s)

	assert.ErrorIs(t, err, form.ErrSubmissionBlocked)
	assigner.AssertNotCalled(t, "Assign", mock.Anything, mock.Anything, mock.Anything)
}

func TestForm_Submit(t *testing.T) {
	assigner := &MockAssigner{}
	var recorded []form.Submission
	f := newForm(assigner, recorderFunc(func(_ context.Context, sub form.Submission) error {
		recorded = append(recorded, sub)
		return nil
	}))

	s := assignment.New().ToggleModule("1", true).ToggleModule("2", true).ToggleUser("2", true)
	assigner.On("Assign", mock.Anything, []string{"1", "2"}, []string{"2"}).Return(nil)

	result, err := f.Submit(context.Background(), s)

	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, result.ModuleIDs)
	assert.Equal(t, []string{"2"}, result.UserIDs)
	require.Len(t, recorded, 1)
	assert.Equal(t, form.NameAssignment, recorded[0].Form)
	assigner.AssertExpectations(t)
}

func TestForm_SubmitRejected(t *testing.T) {
	assigner := &MockAssigner{}
	f := newForm(assigner, nil)

	cause := errors.New("store unreachable")
	assigner.On("Assign", mock.Anything, mock.Anything, mock.Anything).Return(cause)

	s := assignment.New().ToggleModule("1", true).ToggleUser("1", true)
	_, err := f.Submit(context.Background(), s)

	var subErr *form.SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, form.ErrSubmissionBlocked)
}
