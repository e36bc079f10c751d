package openfga

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

const RelationAssignee = "assignee"

// AuthorizationModel grants users the assignee relation on modules.
const AuthorizationModel = `{
  "schema_version": "1.1",
  "type_definitions": [
    {"type": "user"},
    {
      "type": "module",
      "relations": {"assignee": {"this": {}}},
      "metadata": {
        "relations": {
          "assignee": {"directly_related_user_types": [{"type": "user"}]}
        }
      }
    }
  ]
}`

// Tuple is an OpenFGA relationship tuple.
type Tuple struct {
	User     string `json:"user"`
	Relation string `json:"relation"`
	Object   string `json:"object"`
}

// AssignmentTuples returns one assignee tuple per module and user pair,
// grouped by module in selection order.
func AssignmentTuples(moduleIDs, userIDs []string) []Tuple {
	tuples := make([]Tuple, 0, len(moduleIDs)*len(userIDs))
	for _, m := range moduleIDs {
		for _, u := range userIDs {
			tuples = append(tuples, Tuple{
				User:     fmt.Sprintf("user:%s", u),
				Relation: RelationAssignee,
				Object:   fmt.Sprintf("module:%s", m),
			})
		}
	}
	return tuples
}

// ErrTupleExists reports tuples the store already holds.
var ErrTupleExists = errors.New("tuple already exists")

type TupleWriter interface {
	WriteTuples(ctx context.Context, tuples []Tuple) error
}

// Assigner records module assignments as OpenFGA tuples.
type Assigner struct {
	logger *slog.Logger
	writer TupleWriter
}

func NewAssigner(logger *slog.Logger, writer TupleWriter) *Assigner {
	return &Assigner{logger: logger, writer: writer}
}

func (a *Assigner) Assign(ctx context.Context, moduleIDs, userIDs []string) error {
	tuples := AssignmentTuples(moduleIDs, userIDs)

	// Assigning a module twice leaves the existing assignment in place.
	err := a.writer.WriteTuples(ctx, tuples)
	switch {
	case errors.Is(err, ErrTupleExists):
		a.logger.InfoContext(ctx, "Some module assignments already existed", "error", err)
	case err != nil:
		return fmt.Errorf("failed to assign modules: %w", err)
	}

	a.logger.InfoContext(ctx, "Module assignments written", "modules", len(moduleIDs), "users", len(userIDs))
	return nil
}
