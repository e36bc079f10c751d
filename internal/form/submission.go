package form

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	NameFilters      = "filters"
	NameAssignment   = "assignment"
	NameSubscription = "subscription"
	NameMember       = "member"
)

// Submission is the record of one accepted hand-off to a collaborator.
type Submission struct {
	ID          uuid.UUID `json:"id"`
	Form        string    `json:"form"`
	Payload     any       `json:"payload"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func NewSubmission(formName string, payload any) Submission {
	return Submission{
		ID:          uuid.New(),
		Form:        formName,
		Payload:     payload,
		SubmittedAt: time.Now().UTC(),
	}
}

// Recorder receives every accepted submission after its collaborator succeeded.
type Recorder interface {
	Record(ctx context.Context, submission Submission) error
}

type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Submission) error { return nil }
