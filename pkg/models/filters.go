package models

import (
	"errors"
	"fmt"
)

var ErrUnknownOutcome = errors.New("unknown outcome filter")
var ErrUnknownRelationship = errors.New("unknown relationship field")

// OutcomeFilter server evaluated predicate narrowing executions by outcome
type OutcomeFilter uint8

const (
	OutcomeNone OutcomeFilter = iota
	OutcomeSucceededOnly
	OutcomeFailedOnly
	OutcomePendingOnly
)

// Outcomes lists the selectable outcome filters in menu order
var Outcomes = []OutcomeFilter{OutcomeSucceededOnly, OutcomeFailedOnly, OutcomePendingOnly}

// WireName is the query parameter used by the filtered executions endpoint
func (outcome OutcomeFilter) WireName() string {
	switch outcome {
	case OutcomeSucceededOnly:
		return "succeededOnly"
	case OutcomeFailedOnly:
		return "failedOnly"
	case OutcomePendingOnly:
		return "pendingOnly"
	}
	return ""
}

func (outcome OutcomeFilter) Text() string {
	switch outcome {
	case OutcomeSucceededOnly:
		return "Succeeded Only"
	case OutcomeFailedOnly:
		return "Failed Only"
	case OutcomePendingOnly:
		return "Pending Only"
	}
	return ""
}

// Color of the active filter tag
func (outcome OutcomeFilter) Color() string {
	switch outcome {
	case OutcomeSucceededOnly:
		return "green"
	case OutcomeFailedOnly:
		return "red"
	case OutcomePendingOnly:
		return "yellow"
	}
	return ""
}

func (outcome OutcomeFilter) String() string {
	if outcome == OutcomeNone {
		return "none"
	}
	return outcome.WireName()
}

// ParseOutcomeFilter maps a wire name to an outcome, the empty string maps to OutcomeNone
func ParseOutcomeFilter(value string) (OutcomeFilter, error) {
	if value == "" {
		return OutcomeNone, nil
	}
	for _, outcome := range Outcomes {
		if outcome.WireName() == value {
			return outcome, nil
		}
	}
	return OutcomeNone, fmt.Errorf("%w: %q", ErrUnknownOutcome, value)
}

// RelationshipField client evaluated foreign key column
type RelationshipField uint8

const (
	RelationshipNone RelationshipField = iota
	RelationshipDataSchemaID
	RelationshipDataSourceID
)

var RelationshipFields = []RelationshipField{RelationshipDataSchemaID, RelationshipDataSourceID}

func (field RelationshipField) WireName() string {
	switch field {
	case RelationshipDataSchemaID:
		return "dataSchemaId"
	case RelationshipDataSourceID:
		return "dataSourceId"
	}
	return ""
}

func (field RelationshipField) Text() string {
	switch field {
	case RelationshipDataSchemaID:
		return "Data Schema Id"
	case RelationshipDataSourceID:
		return "Data Source Id"
	}
	return ""
}

// Placeholder of the search input shown for the field
func (field RelationshipField) Placeholder() string {
	switch field {
	case RelationshipDataSchemaID:
		return "Search by Data Schema ID"
	case RelationshipDataSourceID:
		return "Search by Data Source ID"
	}
	return ""
}

// Value resolves the field against an execution
func (field RelationshipField) Value(execution *ExecutionRecord) (string, bool) {
	switch field {
	case RelationshipDataSchemaID:
		return execution.DataSchemaID()
	case RelationshipDataSourceID:
		return execution.DataSourceID()
	}
	return "", false
}

func (field RelationshipField) String() string {
	if field == RelationshipNone {
		return "none"
	}
	return field.WireName()
}

func ParseRelationshipField(value string) (RelationshipField, error) {
	if value == "" {
		return RelationshipNone, nil
	}
	for _, field := range RelationshipFields {
		if field.WireName() == value {
			return field, nil
		}
	}
	return RelationshipNone, fmt.Errorf("%w: %q", ErrUnknownRelationship, value)
}
