package table

import (
	"execdash/pkg/models"
	"execdash/pkg/service/provider"
)

const BannerText = "Filterable / Sortable"
const LoadingText = "Fetching Executions"
const NoFilterText = "No current Filter selected"
const TagPrefix = "Current Filter: "

// Tag the active outcome filter indicator
type Tag struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
}

type OutcomeOption struct {
	Value  string `json:"value"`
	Text   string `json:"text"`
	Color  string `json:"color"`
	Active bool   `json:"active"`
}

type RelationshipOption struct {
	Value  string `json:"value"`
	Text   string `json:"text"`
	Active bool   `json:"active"`
}

type Header struct {
	ColumnID  string `json:"columnId"`
	Label     string `json:"label"`
	Sortable  bool   `json:"sortable"`
	Sort      string `json:"sort"`
	SortClass string `json:"sortClass,omitempty"`
}

type HeaderGroup struct {
	Name    string   `json:"name"`
	Headers []Header `json:"headers"`
}

// ViewModel everything needed to draw the dashboard once
type ViewModel struct {
	Banner             string               `json:"banner"`
	State              string               `json:"state"`
	Loading            bool                 `json:"loading"`
	LoadingText        string               `json:"loadingText,omitempty"`
	Failed             bool                 `json:"failed"`
	Error              string               `json:"error,omitempty"`
	Tag                *Tag                 `json:"tag,omitempty"`
	NoFilterText       string               `json:"noFilterText,omitempty"`
	Outcomes           []OutcomeOption      `json:"outcomes"`
	Relationships      []RelationshipOption `json:"relationships"`
	RelationshipField  string               `json:"relationshipField"`
	FilterInput        string               `json:"filterInput"`
	FilterPlaceholder  string               `json:"filterPlaceholder,omitempty"`
	FilterInputEnabled bool                 `json:"filterInputEnabled"`
	HeaderGroups       []HeaderGroup        `json:"headerGroups"`
	Rows               []Row                `json:"rows"`
	LoadedCount        int                  `json:"loadedCount"`
}

// Render builds the view model from one provider snapshot. Rows are withheld while loading.
func (tableView *tableView) Render() ViewModel {
	snapshot := tableView.dataProvider.Snapshot()
	state := tableView.state()

	viewModel := ViewModel{
		Banner:             BannerText,
		State:              snapshot.State.String(),
		Loading:            snapshot.State == provider.StateLoading,
		Failed:             snapshot.State == provider.StateFetchFailed,
		RelationshipField:  state.relationshipField.WireName(),
		FilterInput:        state.filterInput,
		FilterPlaceholder:  state.relationshipField.Placeholder(),
		FilterInputEnabled: state.relationshipField != models.RelationshipNone,
		HeaderGroups:       headerGroups(state),
		Rows:               []Row{},
		LoadedCount:        len(snapshot.Records),
	}

	if viewModel.Loading {
		viewModel.LoadingText = LoadingText
	} else {
		viewModel.Rows = tableView.rows(snapshot.Records, state)
	}

	if viewModel.Failed && snapshot.Err != nil {
		viewModel.Error = snapshot.Err.Error()
	}

	if state.outcome == models.OutcomeNone {
		viewModel.NoFilterText = NoFilterText
	} else {
		viewModel.Tag = &Tag{
			Value: state.outcome.WireName(),
			Label: TagPrefix + state.outcome.WireName(),
			Color: state.outcome.Color(),
		}
	}

	for _, outcome := range models.Outcomes {
		viewModel.Outcomes = append(viewModel.Outcomes, OutcomeOption{
			Value:  outcome.WireName(),
			Text:   outcome.Text(),
			Color:  outcome.Color(),
			Active: outcome == state.outcome,
		})
	}

	for _, field := range models.RelationshipFields {
		viewModel.Relationships = append(viewModel.Relationships, RelationshipOption{
			Value:  field.WireName(),
			Text:   field.Text(),
			Active: field == state.relationshipField,
		})
	}

	return viewModel
}

func headerGroups(state uiState) []HeaderGroup {
	groups := []HeaderGroup{}
	for _, column := range Columns {
		header := Header{
			ColumnID: column.ID,
			Label:    column.Header,
			Sortable: column.Sortable,
			Sort:     SortNone.String(),
		}
		if column.ID == state.sortColumn && state.sortDirection != SortNone {
			header.Sort = state.sortDirection.String()
			header.SortClass = "sort-" + state.sortDirection.String()
		}

		if len(groups) == 0 || groups[len(groups)-1].Name != column.Group {
			groups = append(groups, HeaderGroup{Name: column.Group})
		}
		last := &groups[len(groups)-1]
		last.Headers = append(last.Headers, header)
	}
	return groups
}
