package client

import (
	"context"
	"errors"
	"execdash/pkg/models"
	"execdash/pkg/test_helpers"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"testing"
)

func newTestClient(fixtureServer *test_helpers.FixtureServer) ExecutionsClient {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "executions-client-test",
		Level: hclog.LevelFromString("DEBUG"),
	})
	return NewExecutionsClientWithHTTPClient(logger, fixtureServer.Client(), fixtureServer.URL+"/", "/executions", "/api/get/executions")
}

func TestExecutionsClient_URLFor(t *testing.T) {
	fixtureServer := test_helpers.NewFixtureServer(t)
	executionsClient := newTestClient(fixtureServer)

	assert.Equal(t, fixtureServer.URL+"/executions", executionsClient.URLFor(models.OutcomeNone))
	assert.Equal(t, fixtureServer.URL+"/api/get/executions?succeededOnly=true", executionsClient.URLFor(models.OutcomeSucceededOnly))
	assert.Equal(t, fixtureServer.URL+"/api/get/executions?failedOnly=true", executionsClient.URLFor(models.OutcomeFailedOnly))
	assert.Equal(t, fixtureServer.URL+"/api/get/executions?pendingOnly=true", executionsClient.URLFor(models.OutcomePendingOnly))
}

func TestExecutionsClient_GetExecutions(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes the unfiltered envelope", func(t *testing.T) {
		fixtureServer := test_helpers.NewFixtureServer(t)
		executionsClient := newTestClient(fixtureServer)

		document, err := executionsClient.GetExecutions(ctx, models.OutcomeNone)
		require.NoError(t, err)

		assert.Len(t, document.Data, 8)
		assert.Len(t, document.Included, 6)
		assert.Equal(t, "903", document.Data[0].ID)
		assert.Nil(t, document.Data[0].Attributes.StartTime)
		assert.Nil(t, document.Data[1].Attributes.StartTime)
		require.NotNil(t, document.Data[2].Attributes.StartTime)
		assert.Equal(t, "2020-03-11T19:46:00.034+0000", *document.Data[2].Attributes.StartTime)

		schemaID, ok := document.Data[3].DataSchemaID()
		assert.True(t, ok)
		assert.Equal(t, "102", schemaID)

		assert.Equal(t, []string{"/executions"}, fixtureServer.Requests())
	})

	t.Run("hits the filter specific endpoint", func(t *testing.T) {
		fixtureServer := test_helpers.NewFixtureServer(t)
		executionsClient := newTestClient(fixtureServer)

		for _, outcome := range models.Outcomes {
			document, err := executionsClient.GetExecutions(ctx, outcome)
			require.NoError(t, err)
			require.Len(t, document.Data, 1)
			assert.Equal(t, "903", document.Data[0].ID)
			assert.Empty(t, document.Included)
		}

		assert.Equal(t, []string{
			"/api/get/executions?succeededOnly=true",
			"/api/get/executions?failedOnly=true",
			"/api/get/executions?pendingOnly=true",
		}, fixtureServer.Requests())
	})

	t.Run("returns a fetch error on non 2xx", func(t *testing.T) {
		fixtureServer := test_helpers.NewFixtureServer(t)
		fixtureServer.Fail("/executions", http.StatusBadGateway)
		executionsClient := newTestClient(fixtureServer)

		document, err := executionsClient.GetExecutions(ctx, models.OutcomeNone)
		assert.Nil(t, document)

		var fetchError *FetchError
		require.True(t, errors.As(err, &fetchError))
		assert.Equal(t, http.StatusBadGateway, fetchError.StatusCode)
		assert.Equal(t, fixtureServer.URL+"/executions", fetchError.URL)
	})

	t.Run("returns a fetch error on malformed payload", func(t *testing.T) {
		fixtureServer := test_helpers.NewFixtureServer(t)
		fixtureServer.SetPayload("/executions", []byte(`{"data": [`))
		executionsClient := newTestClient(fixtureServer)

		_, err := executionsClient.GetExecutions(ctx, models.OutcomeNone)

		var fetchError *FetchError
		require.True(t, errors.As(err, &fetchError))
		assert.Zero(t, fetchError.StatusCode)
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		fixtureServer := test_helpers.NewFixtureServer(t)
		release := fixtureServer.Hold("/executions")
		defer release()
		executionsClient := newTestClient(fixtureServer)

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := executionsClient.GetExecutions(canceled, models.OutcomeNone)
		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("tolerates records without relationships", func(t *testing.T) {
		fixtureServer := test_helpers.NewFixtureServer(t)
		fixtureServer.SetPayload("/executions", []byte(`{"data":{"data":[{"type":"execution","id":"1","attributes":{"uuid":"u"}}]},"success":true}`))
		executionsClient := newTestClient(fixtureServer)

		document, err := executionsClient.GetExecutions(ctx, models.OutcomeNone)
		require.NoError(t, err)
		require.Len(t, document.Data, 1)

		_, ok := document.Data[0].DataSourceID()
		assert.False(t, ok)
		assert.True(t, document.Data[0].IsActionable())
	})
}
