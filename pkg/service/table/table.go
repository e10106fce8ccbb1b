package table

import (
	"context"
	"errors"
	"execdash/pkg/models"
	"execdash/pkg/service/provider"
	"execdash/pkg/utils"
	"fmt"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/exp/slices"
	"strings"
	"sync"
)

var ErrUnknownColumn = errors.New("unknown column")
var ErrNotSortable = errors.New("column is not sortable")

type SortDirection uint8

const (
	SortNone SortDirection = iota
	SortAscending
	SortDescending
)

func (direction SortDirection) String() string {
	switch direction {
	case SortAscending:
		return "asc"
	case SortDescending:
		return "desc"
	}
	return "none"
}

// next steps the per column cycle unsorted, ascending, descending, unsorted
func (direction SortDirection) next() SortDirection {
	switch direction {
	case SortNone:
		return SortAscending
	case SortAscending:
		return SortDescending
	}
	return SortNone
}

type Cell struct {
	ColumnID string `json:"columnId"`
	Text     string `json:"text"`
}

type Row struct {
	ID         string                 `json:"id"`
	Cells      []Cell                 `json:"cells"`
	Actionable bool                   `json:"actionable"`
	Record     models.ExecutionRecord `json:"-"`
}

// Cell returns the text of the cell in columnID
func (row Row) Cell(columnID string) string {
	for _, cell := range row.Cells {
		if cell.ColumnID == columnID {
			return cell.Text
		}
	}
	return ""
}

type TableView interface {
	Mount(ctx context.Context) error
	SelectOutcome(ctx context.Context, outcome models.OutcomeFilter) *provider.Request
	ClearOutcome(ctx context.Context) *provider.Request
	SelectRelationship(ctx context.Context, field models.RelationshipField) *provider.Request
	ClearRelationship(ctx context.Context) *provider.Request
	SetFilterInput(value string)
	ToggleSort(columnID string) error
	SetSort(columnID string, direction SortDirection) error
	Retry(ctx context.Context) *provider.Request
	Rows() []Row
	Render() ViewModel
	Provider() provider.DataProvider
}

// tableView holds the UI state of one dashboard. The mutex is never held across a fetch.
type tableView struct {
	logger            hclog.Logger
	dataProvider      provider.DataProvider
	displayTime       *utils.DisplayTime
	mtx               sync.RWMutex
	outcome           models.OutcomeFilter
	relationshipField models.RelationshipField
	filterInput       string
	sortColumn        string
	sortDirection     SortDirection
}

func NewTableView(logger hclog.Logger, dataProvider provider.DataProvider, displayTime *utils.DisplayTime) TableView {
	return &tableView{
		logger:       logger.Named("table-view"),
		dataProvider: dataProvider,
		displayTime:  displayTime,
	}
}

func (tableView *tableView) Provider() provider.DataProvider {
	return tableView.dataProvider
}

// Mount this will load the unfiltered executions
func (tableView *tableView) Mount(ctx context.Context) error {
	return tableView.dataProvider.Mount(ctx)
}

// SelectOutcome switches the active outcome tag and issues the filtered fetch.
// The tag and the provider sequence are updated under one lock so the last tag set is the last fetch begun.
func (tableView *tableView) SelectOutcome(ctx context.Context, outcome models.OutcomeFilter) *provider.Request {
	tableView.mtx.Lock()
	defer tableView.mtx.Unlock()

	tableView.outcome = outcome
	tableView.logger.Debug("outcome selected", "outcome", outcome.String())
	return tableView.dataProvider.Begin(ctx, outcome)
}

func (tableView *tableView) ClearOutcome(ctx context.Context) *provider.Request {
	return tableView.SelectOutcome(ctx, models.OutcomeNone)
}

// SelectRelationship chooses the column the filter input applies to, RelationshipNone clears it.
// Only clearing fetches, otherwise the returned request is nil.
func (tableView *tableView) SelectRelationship(ctx context.Context, field models.RelationshipField) *provider.Request {
	if field == models.RelationshipNone {
		return tableView.ClearRelationship(ctx)
	}

	tableView.mtx.Lock()
	tableView.relationshipField = field
	tableView.mtx.Unlock()

	tableView.logger.Debug("relationship selected", "field", field.String())
	return nil
}

// ClearRelationship empties the input, drops the outcome tag and re-fetches the unfiltered set
func (tableView *tableView) ClearRelationship(ctx context.Context) *provider.Request {
	tableView.mtx.Lock()
	defer tableView.mtx.Unlock()

	tableView.relationshipField = models.RelationshipNone
	tableView.filterInput = ""
	tableView.outcome = models.OutcomeNone
	return tableView.dataProvider.Begin(ctx, models.OutcomeNone)
}

func (tableView *tableView) SetFilterInput(value string) {
	tableView.mtx.Lock()
	defer tableView.mtx.Unlock()

	tableView.filterInput = value
}

func (tableView *tableView) ToggleSort(columnID string) error {
	column, ok := columnByID(columnID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, columnID)
	}
	if !column.Sortable {
		return fmt.Errorf("%w: %q", ErrNotSortable, columnID)
	}

	tableView.mtx.Lock()
	defer tableView.mtx.Unlock()

	if tableView.sortColumn != columnID {
		tableView.sortColumn = columnID
		tableView.sortDirection = SortAscending
		return nil
	}

	tableView.sortDirection = tableView.sortDirection.next()
	if tableView.sortDirection == SortNone {
		tableView.sortColumn = ""
	}
	return nil
}

// SetSort sets the sort state directly, SortNone removes it
func (tableView *tableView) SetSort(columnID string, direction SortDirection) error {
	if direction != SortNone {
		column, ok := columnByID(columnID)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownColumn, columnID)
		}
		if !column.Sortable {
			return fmt.Errorf("%w: %q", ErrNotSortable, columnID)
		}
	}

	tableView.mtx.Lock()
	defer tableView.mtx.Unlock()

	if direction == SortNone {
		columnID = ""
	}
	tableView.sortColumn = columnID
	tableView.sortDirection = direction
	return nil
}

// Retry re-issues the last fetch, the UI state is kept
func (tableView *tableView) Retry(ctx context.Context) *provider.Request {
	return tableView.dataProvider.BeginRetry(ctx)
}

type uiState struct {
	outcome           models.OutcomeFilter
	relationshipField models.RelationshipField
	filterInput       string
	sortColumn        string
	sortDirection     SortDirection
}

func (tableView *tableView) state() uiState {
	tableView.mtx.RLock()
	defer tableView.mtx.RUnlock()

	return uiState{
		outcome:           tableView.outcome,
		relationshipField: tableView.relationshipField,
		filterInput:       tableView.filterInput,
		sortColumn:        tableView.sortColumn,
		sortDirection:     tableView.sortDirection,
	}
}

// Rows the loaded records after the relationship filter and the sort
func (tableView *tableView) Rows() []Row {
	return tableView.rows(tableView.dataProvider.Snapshot().Records, tableView.state())
}

func (tableView *tableView) rows(records []models.ExecutionRecord, state uiState) []Row {
	filtered := filterRecords(records, state.relationshipField, state.filterInput)

	if column, ok := columnByID(state.sortColumn); ok && state.sortDirection != SortNone {
		filtered = tableView.sortRecords(filtered, column, state.sortDirection)
	}

	rows := make([]Row, 0, len(filtered))
	for i := range filtered {
		rows = append(rows, tableView.row(&filtered[i]))
	}
	return rows
}

func (tableView *tableView) row(execution *models.ExecutionRecord) Row {
	cells := make([]Cell, 0, len(Columns))
	for _, column := range Columns {
		cells = append(cells, Cell{
			ColumnID: column.ID,
			Text:     column.Text(tableView.displayTime, execution),
		})
	}

	return Row{
		ID:         execution.ID,
		Cells:      cells,
		Actionable: execution.IsActionable(),
		Record:     *execution,
	}
}

// filterRecords keeps records whose relationship id contains input, ignoring case
func filterRecords(records []models.ExecutionRecord, field models.RelationshipField, input string) []models.ExecutionRecord {
	needle := strings.ToLower(strings.TrimSpace(input))
	if field == models.RelationshipNone || needle == "" {
		return records
	}

	filtered := make([]models.ExecutionRecord, 0, len(records))
	for i := range records {
		value, ok := field.Value(&records[i])
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(value), needle) {
			filtered = append(filtered, records[i])
		}
	}
	return filtered
}

type keyedRecord struct {
	key    sortKey
	record models.ExecutionRecord
}

func (tableView *tableView) sortRecords(records []models.ExecutionRecord, column Column, direction SortDirection) []models.ExecutionRecord {
	keyed := make([]keyedRecord, 0, len(records))
	for i := range records {
		keyed = append(keyed, keyedRecord{
			key:    column.sortKey(tableView.displayTime, &records[i]),
			record: records[i],
		})
	}

	slices.SortStableFunc(keyed, func(a, b keyedRecord) int {
		if direction == SortDescending {
			return compareKeys(b.key, a.key)
		}
		return compareKeys(a.key, b.key)
	})

	sorted := make([]models.ExecutionRecord, 0, len(keyed))
	for _, k := range keyed {
		sorted = append(sorted, k.record)
	}
	return sorted
}
