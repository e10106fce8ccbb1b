package table

import (
	"execdash/pkg/constants"
	"execdash/pkg/models"
	"execdash/pkg/utils"
	"strconv"
	"strings"
	"time"
)

const (
	ColumnID           = "id"
	ColumnUUID         = "uuid"
	ColumnReceivedTime = "receivedTime"
	ColumnScheduleTime = "scheduleTime"
	ColumnDataSchemaID = "dataSchemaId"
	ColumnDataSourceID = "dataSourceId"
	ColumnAction       = "action"
)

const (
	GroupExecution = "Execution"
	GroupDetails   = "Details"
)

const ActionEnabledText = "Click Me"
const ActionDisabledText = "No action"

// Column describes one table column. value resolves the raw cell value, ok is false when the
// path into the record cannot be resolved.
type Column struct {
	ID       string
	Header   string
	Group    string
	Sortable bool
	IsTime   bool
	value    func(execution *models.ExecutionRecord) (string, bool)
}

// Columns in display order
var Columns = []Column{
	{
		ID:       ColumnID,
		Header:   "ID",
		Group:    GroupExecution,
		Sortable: true,
		value: func(execution *models.ExecutionRecord) (string, bool) {
			return execution.ID, execution.ID != ""
		},
	},
	{
		ID:       ColumnUUID,
		Header:   "UUID",
		Group:    GroupDetails,
		Sortable: true,
		value: func(execution *models.ExecutionRecord) (string, bool) {
			return execution.Attributes.UUID, execution.Attributes.UUID != ""
		},
	},
	{
		ID:       ColumnReceivedTime,
		Header:   "Received Time",
		Group:    GroupDetails,
		Sortable: true,
		IsTime:   true,
		value: func(execution *models.ExecutionRecord) (string, bool) {
			return execution.Attributes.ReceivedTime, execution.Attributes.ReceivedTime != ""
		},
	},
	{
		ID:       ColumnScheduleTime,
		Header:   "Schedule Time",
		Group:    GroupDetails,
		Sortable: true,
		IsTime:   true,
		value: func(execution *models.ExecutionRecord) (string, bool) {
			return execution.Attributes.ScheduleTime, execution.Attributes.ScheduleTime != ""
		},
	},
	{
		ID:       ColumnDataSchemaID,
		Header:   "DataSchema ID",
		Group:    GroupDetails,
		Sortable: true,
		value: func(execution *models.ExecutionRecord) (string, bool) {
			return execution.DataSchemaID()
		},
	},
	{
		ID:       ColumnDataSourceID,
		Header:   "DataSource ID",
		Group:    GroupDetails,
		Sortable: true,
		value: func(execution *models.ExecutionRecord) (string, bool) {
			return execution.DataSourceID()
		},
	},
	{
		ID:     ColumnAction,
		Header: "Action",
		Group:  GroupDetails,
		value: func(execution *models.ExecutionRecord) (string, bool) {
			if execution.IsActionable() {
				return ActionEnabledText, true
			}
			return ActionDisabledText, true
		},
	},
}

func columnByID(id string) (Column, bool) {
	for _, column := range Columns {
		if column.ID == id {
			return column, true
		}
	}
	return Column{}, false
}

// Text the displayed cell text, time columns are rendered in the display location
func (column Column) Text(displayTime *utils.DisplayTime, execution *models.ExecutionRecord) string {
	value, ok := column.value(execution)
	if !ok {
		return constants.MissingValuePlaceholder
	}
	if column.IsTime {
		return displayTime.Format(value)
	}
	return value
}

// sortKey a precomputed comparable value for one row
type sortKey struct {
	missing bool
	instant time.Time
	number  int64
	numeric bool
	text    string
}

func (column Column) sortKey(displayTime *utils.DisplayTime, execution *models.ExecutionRecord) sortKey {
	value, ok := column.value(execution)
	if !ok {
		return sortKey{missing: true}
	}

	if column.IsTime {
		instant, err := displayTime.Parse(value)
		if err != nil {
			return sortKey{missing: true}
		}
		return sortKey{instant: instant}
	}

	if number, err := strconv.ParseInt(value, 10, 64); err == nil {
		return sortKey{number: number, numeric: true, text: value}
	}

	return sortKey{text: value}
}

// compareKeys orders missing values first, numbers before text and numbers numerically
func compareKeys(a, b sortKey) int {
	switch {
	case a.missing && b.missing:
		return 0
	case a.missing:
		return -1
	case b.missing:
		return 1
	}

	if !a.instant.IsZero() || !b.instant.IsZero() {
		return a.instant.Compare(b.instant)
	}

	if a.numeric && b.numeric {
		switch {
		case a.number < b.number:
			return -1
		case a.number > b.number:
			return 1
		}
		return 0
	}
	if a.numeric != b.numeric {
		if a.numeric {
			return -1
		}
		return 1
	}

	return strings.Compare(a.text, b.text)
}
