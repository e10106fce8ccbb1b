package cmd

import (
	"context"
	"execdash/pkg/client"
	"execdash/pkg/config"
	"execdash/pkg/models"
	"execdash/pkg/service/provider"
	"execdash/pkg/service/table"
	"execdash/pkg/utils"
	"fmt"
	prettyTable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"io"
	"strings"
)

var listOutcome = ""
var listField = ""
var listValue = ""
var listSort = ""

// listOptions the flags of a one shot listing
type listOptions struct {
	outcome string
	field   string
	value   string
	sort    string
}

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List executions in the terminal",
	Long: `
Fetches the executions once and prints them as a table.

Usage:

	execdash list --outcome failedOnly
	execdash list --field dataSchemaId --value 102 --sort receivedTime:desc

Outcomes are succeededOnly, failedOnly and pendingOnly. Sorting defaults to ascending.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configurations, logger, err := loadConfigurations(config.NewDashboardConfig())
		if err != nil {
			return err
		}

		displayTime, err := utils.NewDisplayTime(configurations.DisplayTimezone)
		if err != nil {
			return err
		}

		executionsClient := client.NewExecutionsClient(logger, configurations)
		tableView := table.NewTableView(logger, provider.NewDataProvider(logger, executionsClient), displayTime)

		options := listOptions{outcome: listOutcome, field: listField, value: listValue, sort: listSort}
		if err := loadListing(cmd.Context(), tableView, options); err != nil {
			return err
		}

		renderListing(cmd.OutOrStdout(), tableView)
		return nil
	},
}

// parseSort reads column[:asc|desc]
func parseSort(value string) (string, table.SortDirection, error) {
	if value == "" {
		return "", table.SortNone, nil
	}

	column, direction, _ := strings.Cut(value, ":")
	switch strings.ToLower(direction) {
	case "", "asc":
		return column, table.SortAscending, nil
	case "desc":
		return column, table.SortDescending, nil
	}
	return "", table.SortNone, fmt.Errorf("invalid sort direction %q, expected asc or desc", direction)
}

// loadListing applies the options to the view the same way the dashboard controls do
func loadListing(ctx context.Context, tableView table.TableView, options listOptions) error {
	outcome, err := models.ParseOutcomeFilter(options.outcome)
	if err != nil {
		return err
	}

	field, err := models.ParseRelationshipField(options.field)
	if err != nil {
		return err
	}
	if field == models.RelationshipNone && options.value != "" {
		return fmt.Errorf("--value requires --field")
	}

	column, direction, err := parseSort(options.sort)
	if err != nil {
		return err
	}
	if err := tableView.SetSort(column, direction); err != nil {
		return err
	}

	if err := tableView.SelectOutcome(ctx, outcome).Do(); err != nil {
		return err
	}

	if field != models.RelationshipNone {
		tableView.SelectRelationship(ctx, field)
		tableView.SetFilterInput(options.value)
	}

	return nil
}

func renderListing(w io.Writer, tableView table.TableView) {
	viewModel := tableView.Render()

	t := prettyTable.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(viewModel.Banner)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault

	groupRow := prettyTable.Row{}
	headerRow := prettyTable.Row{}
	for _, group := range viewModel.HeaderGroups {
		for _, header := range group.Headers {
			groupRow = append(groupRow, group.Name)
			label := header.Label
			switch header.Sort {
			case table.SortAscending.String():
				label += " ^"
			case table.SortDescending.String():
				label += " v"
			}
			headerRow = append(headerRow, label)
		}
	}
	t.AppendHeader(groupRow, prettyTable.RowConfig{AutoMerge: true})
	t.AppendHeader(headerRow)

	for _, row := range viewModel.Rows {
		cells := prettyTable.Row{}
		for _, cell := range row.Cells {
			cells = append(cells, cell.Text)
		}
		t.AppendRow(cells)
	}

	filter := viewModel.NoFilterText
	if viewModel.Tag != nil {
		filter = viewModel.Tag.Label
	}
	t.AppendFooter(prettyTable.Row{"Total", fmt.Sprintf("%d of %d", len(viewModel.Rows), viewModel.LoadedCount), filter})
	t.Render()
}

func init() {
	ListCmd.Flags().StringVarP(&listOutcome, "outcome", "o", "", "succeededOnly, failedOnly or pendingOnly")
	ListCmd.Flags().StringVarP(&listField, "field", "f", "", "dataSchemaId or dataSourceId")
	ListCmd.Flags().StringVarP(&listValue, "value", "v", "", "substring the relationship id must contain")
	ListCmd.Flags().StringVarP(&listSort, "sort", "s", "", "column[:asc|desc]")
}
