// Package filter implements the advanced filter builder: an ordered list of
// field/operator/value criteria applied against the member directory.
package filter

import (
	"fmt"

	"adminforms/internal/catalog"
	"adminforms/internal/form"
)

type Attribute string

const (
	AttributeField    Attribute = "field"
	AttributeOperator Attribute = "operator"
	AttributeValue    Attribute = "value"
)

func ParseAttribute(s string) (Attribute, error) {
	switch Attribute(s) {
	case AttributeField, AttributeOperator, AttributeValue:
		return Attribute(s), nil
	default:
		return "", fmt.Errorf("%w: %q", form.ErrUnknownAttribute, s)
	}
}

// Criterion is one filter clause. An empty Field means none was chosen yet.
type Criterion struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

func DefaultCriterion() Criterion {
	return Criterion{Operator: catalog.OperatorEquals}
}

// Set is an ordered sequence of criteria. Every method returns a new Set and
// leaves the receiver untouched.
type Set []Criterion

// New returns the initial state: one blank criterion.
func New() Set {
	return Set{DefaultCriterion()}
}

func (s Set) clone() Set {
	out := make(Set, len(s))
	copy(out, s)
	return out
}

func (s Set) Add() Set {
	return append(s.clone(), DefaultCriterion())
}

// Remove drops the criterion at index. An index outside the set removes nothing.
func (s Set) Remove(index int) Set {
	out := make(Set, 0, len(s))
	for i, c := range s {
		if i != index {
			out = append(out, c)
		}
	}
	return out
}

// Update replaces one attribute of the criterion at index. An index outside
// the set leaves the set unchanged.
func (s Set) Update(index int, attr Attribute, value string) Set {
	out := s.clone()
	if index < 0 || index >= len(out) {
		return out
	}

	switch attr {
	case AttributeField:
		out[index].Field = value
	case AttributeOperator:
		out[index].Operator = value
	case AttributeValue:
		out[index].Value = value
	}
	return out
}

func (s Set) Reset() Set {
	return New()
}
