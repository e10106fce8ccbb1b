package cmd

import (
	"bytes"
	"context"
	"execdash/pkg/client"
	"execdash/pkg/service/provider"
	"execdash/pkg/service/table"
	"execdash/pkg/test_helpers"
	"execdash/pkg/utils"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func newListingView(t *testing.T) (table.TableView, *test_helpers.FixtureServer) {
	logger := hclog.New(&hclog.LoggerOptions{Name: "list-test", Level: hclog.LevelFromString("DEBUG")})
	fixtureServer := test_helpers.NewFixtureServer(t)
	displayTime, err := utils.NewDisplayTime("UTC")
	require.NoError(t, err)

	executionsClient := client.NewExecutionsClientWithHTTPClient(logger, fixtureServer.Client(), fixtureServer.URL, "/executions", "/api/get/executions")
	return table.NewTableView(logger, provider.NewDataProvider(logger, executionsClient), displayTime), fixtureServer
}

func Test_ParseSort(t *testing.T) {
	column, direction, err := parseSort("receivedTime")
	assert.NoError(t, err)
	assert.Equal(t, "receivedTime", column)
	assert.Equal(t, table.SortAscending, direction)

	column, direction, err = parseSort("id:DESC")
	assert.NoError(t, err)
	assert.Equal(t, "id", column)
	assert.Equal(t, table.SortDescending, direction)

	_, direction, err = parseSort("")
	assert.NoError(t, err)
	assert.Equal(t, table.SortNone, direction)

	_, _, err = parseSort("id:sideways")
	assert.Error(t, err)
}

func Test_Listing(t *testing.T) {
	ctx := context.Background()

	t.Run("should list every execution", func(t *testing.T) {
		tableView, fixtureServer := newListingView(t)
		require.NoError(t, loadListing(ctx, tableView, listOptions{}))

		var out bytes.Buffer
		renderListing(&out, tableView)
		assert.Equal(t, 7, strings.Count(out.String(), "| 703 "))
		assert.Contains(t, out.String(), "8 of 8")
		assert.Contains(t, out.String(), "No current Filter selected")
		assert.Contains(t, out.String(), "Received Time")
		assert.Contains(t, out.String(), "| Total ")
		assert.Equal(t, []string{"/executions"}, fixtureServer.Requests())
	})

	t.Run("should apply outcome, relationship and sort", func(t *testing.T) {
		tableView, fixtureServer := newListingView(t)
		require.NoError(t, loadListing(ctx, tableView, listOptions{
			outcome: "pendingOnly",
			field:   "dataSourceId",
			value:   "2",
			sort:    "receivedTime:desc",
		}))

		rows := tableView.Rows()
		require.Len(t, rows, 1)
		assert.Equal(t, "903", rows[0].ID)

		var out bytes.Buffer
		renderListing(&out, tableView)
		assert.Contains(t, out.String(), "Current Filter: pendingOnly")
		assert.Equal(t, []string{"/api/get/executions?pendingOnly=true"}, fixtureServer.Requests())
	})

	t.Run("should reject invalid options before fetching", func(t *testing.T) {
		tableView, fixtureServer := newListingView(t)

		assert.Error(t, loadListing(ctx, tableView, listOptions{outcome: "everything"}))
		assert.Error(t, loadListing(ctx, tableView, listOptions{value: "102"}))
		assert.ErrorIs(t, loadListing(ctx, tableView, listOptions{sort: "action"}), table.ErrNotSortable)
		assert.Empty(t, fixtureServer.Requests())
	})
}
