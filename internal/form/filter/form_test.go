package filter_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"adminforms/internal/catalog"
	"adminforms/internal/form"
	"adminforms/internal/form/filter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) Search(ctx context.Context, criteria []filter.Criterion) ([]filter.Match, error) {
	args := m.Called(ctx, criteria)
	return args.Get(0).([]filter.Match), args.Error(1)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, submission form.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestForm_Update(t *testing.T) {
	f := filter.NewForm(discardLogger(), catalog.Default(), &MockSearcher{}, nil)

	tests := []struct {
		name    string
		attr    filter.Attribute
		value   string
		wantErr error
	}{
		{"known_field", filter.AttributeField, "lastActive", nil},
		{"placeholder_field", filter.AttributeField, "", nil},
		{"unknown_field", filter.AttributeField, "salary", form.ErrUnknownOption},
		{"known_operator", filter.AttributeOperator, "between", nil},
		{"empty_operator", filter.AttributeOperator, "", form.ErrUnknownOption},
		{"unknown_operator", filter.AttributeOperator, "like", form.ErrUnknownOption},
		{"free_text_value", filter.AttributeValue, "anything at all", nil},
		{"unknown_attribute", filter.Attribute("label"), "x", form.ErrUnknownAttribute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := filter.New()
			got, err := f.Update(s, 0, tt.attr, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, s, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, s.Update(0, tt.attr, tt.value), got)
		})
	}
}

func TestForm_SubmitPassesCriteriaThrough(t *testing.T) {
	searcher := &MockSearcher{}
	recorder := &MockRecorder{}
	f := filter.NewForm(discardLogger(), catalog.Default(), searcher, recorder)

	s := filter.New().Add().Update(1, filter.AttributeField, "department")
	want := []filter.Criterion{
		{Field: "", Operator: "equals", Value: ""},
		{Field: "department", Operator: "equals", Value: ""},
	}
	matches := []filter.Match{{ID: "m-1", Name: "John Doe"}}

	searcher.On("Search", mock.Anything, want).Return(matches, nil)
	recorder.On("Record", mock.Anything, mock.MatchedBy(func(sub form.Submission) bool {
		return sub.Form == form.NameFilters
	})).Return(nil)

	got, err := f.Submit(context.Background(), s)

	require.NoError(t, err)
	assert.Equal(t, matches, got)
	searcher.AssertExpectations(t)
	recorder.AssertExpectations(t)
}

func TestForm_SubmitRejected(t *testing.T) {
	searcher := &MockSearcher{}
	recorder := &MockRecorder{}
	f := filter.NewForm(discardLogger(), catalog.Default(), searcher, recorder)

	cause := errors.New("directory unavailable")
	searcher.On("Search", mock.Anything, mock.Anything).Return([]filter.Match(nil), cause)

	_, err := f.Submit(context.Background(), filter.New())

	var subErr *form.SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, form.NameFilters, subErr.Form)
	assert.ErrorIs(t, err, cause)
	recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestForm_SubmitIgnoresRecorderFailure(t *testing.T) {
	searcher := &MockSearcher{}
	recorder := &MockRecorder{}
	f := filter.NewForm(discardLogger(), catalog.Default(), searcher, recorder)

	searcher.On("Search", mock.Anything, mock.Anything).Return([]filter.Match{}, nil)
	recorder.On("Record", mock.Anything, mock.Anything).Return(errors.New("archive down"))

	_, err := f.Submit(context.Background(), filter.New())
	assert.NoError(t, err)
}

func TestLogSearcher(t *testing.T) {
	matches, err := filter.LogSearcher{Logger: discardLogger()}.Search(context.Background(), filter.New())

	require.NoError(t, err)
	assert.Empty(t, matches)
}
