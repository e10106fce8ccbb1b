package models

import (
	"github.com/goccy/go-json"
)

// ResourceIdentifier a JSON:API linkage object, {type, id}
type ResourceIdentifier struct {
	Type string `json:"type" fake:"{randomstring:[DataSchema,DataSource]}"`
	ID   string `json:"id" fake:"{number:1,200}"`
}

// Relationship wraps a single resource linkage under "data"
type Relationship struct {
	Data *ResourceIdentifier `json:"data,omitempty"`
}

// ExecutionAttributes the attributes of an execution record as sent by the API.
// StartTime is nil both when the key is absent and when it is null.
type ExecutionAttributes struct {
	UUID         string  `json:"uuid" fake:"{regex:[0-9a-f]{32}}"`
	ReceivedTime string  `json:"receivedTime" fake:"skip"`
	ScheduleTime string  `json:"scheduleTime" fake:"skip"`
	StartTime    *string `json:"startTime,omitempty" fake:"skip"`
	EndTime      *string `json:"endTime,omitempty" fake:"skip"`
	Canceled     *bool   `json:"canceled,omitempty" fake:"skip"`
}

type ExecutionRelationships struct {
	DataSchema *Relationship `json:"dataSchema,omitempty"`
	DataSource *Relationship `json:"dataSource,omitempty"`
}

type Links struct {
	Self string `json:"self,omitempty"`
}

// ExecutionRecord a single processing run of a data source against a data schema
type ExecutionRecord struct {
	Type          string                  `json:"type" fake:"{randomstring:[execution]}"`
	ID            string                  `json:"id" fake:"{number:1,999}"`
	Attributes    ExecutionAttributes     `json:"attributes"`
	Relationships *ExecutionRelationships `json:"relationships,omitempty" fake:"skip"`
	Links         *Links                  `json:"links,omitempty" fake:"skip"`
}

// RelatedEntity an entity from the "included" section (DataSchema, DataSchemaField, DataSource)
type RelatedEntity struct {
	Type          string                     `json:"type"`
	ID            string                     `json:"id"`
	Attributes    map[string]json.RawMessage `json:"attributes,omitempty"`
	Relationships map[string]json.RawMessage `json:"relationships,omitempty"`
	Links         *Links                     `json:"links,omitempty"`
}

// ExecutionsDocument the JSON:API document carried in the envelope
type ExecutionsDocument struct {
	Data     []ExecutionRecord `json:"data"`
	Included []RelatedEntity   `json:"included,omitempty"`
}

// ExecutionsEnvelope top level response of every executions endpoint
type ExecutionsEnvelope struct {
	Data ExecutionsDocument `json:"data"`
}

// IsActionable returns true when the execution has not started yet
func (execution *ExecutionRecord) IsActionable() bool {
	return execution.Attributes.StartTime == nil
}

// DataSchemaID returns the related data schema id, false when the path does not resolve
func (execution *ExecutionRecord) DataSchemaID() (string, bool) {
	if execution.Relationships == nil {
		return "", false
	}
	return relationshipID(execution.Relationships.DataSchema)
}

// DataSourceID returns the related data source id, false when the path does not resolve
func (execution *ExecutionRecord) DataSourceID() (string, bool) {
	if execution.Relationships == nil {
		return "", false
	}
	return relationshipID(execution.Relationships.DataSource)
}

func relationshipID(relationship *Relationship) (string, bool) {
	if relationship == nil || relationship.Data == nil {
		return "", false
	}
	return relationship.Data.ID, true
}
