package session

import (
	"context"
	"execdash/pkg/client"
	"execdash/pkg/models"
	"execdash/pkg/service/provider"
	"execdash/pkg/service/table"
	"execdash/pkg/test_helpers"
	"execdash/pkg/utils"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func newTestStore(t *testing.T, idleTimeout time.Duration, maxSessions int) (Store, *test_helpers.FixtureServer) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "session-test",
		Level: hclog.LevelFromString("DEBUG"),
	})
	fixtureServer := test_helpers.NewFixtureServer(t)
	displayTime, err := utils.NewDisplayTime("UTC")
	require.NoError(t, err)

	dispatcher := utils.NewDispatcher(ctx, logger, 2, 8)
	dispatcher.Run()

	newView := func() table.TableView {
		executionsClient := client.NewExecutionsClientWithHTTPClient(logger, fixtureServer.Client(), fixtureServer.URL, "/executions", "/api/get/executions")
		return table.NewTableView(logger, provider.NewDataProvider(logger, executionsClient), displayTime)
	}

	return NewStore(ctx, logger, dispatcher, idleTimeout, maxSessions, newView), fixtureServer
}

func waitForLoaded(t *testing.T, session *Session) {
	require.Eventually(t, func() bool {
		return session.View.Provider().Snapshot().State == provider.StateLoaded
	}, 5*time.Second, 5*time.Millisecond)
}

func Test_Store(t *testing.T) {
	t.Run("should create and mount a session for an unknown id", func(t *testing.T) {
		store, fixtureServer := newTestStore(t, time.Minute, 8)

		session, created := store.GetOrCreate("")
		assert.True(t, created)
		assert.NotEmpty(t, session.ID)
		assert.Equal(t, 1, store.Count())

		waitForLoaded(t, session)
		assert.Len(t, session.View.Rows(), 8)
		assert.Equal(t, 1, fixtureServer.CountRequests("/executions"))
	})

	t.Run("should be loading right after creation", func(t *testing.T) {
		store, fixtureServer := newTestStore(t, time.Minute, 8)
		release := fixtureServer.Hold("/executions")

		session, _ := store.GetOrCreate("unknown")
		assert.True(t, session.View.Render().Loading)

		release()
		waitForLoaded(t, session)
	})

	t.Run("should return the existing session", func(t *testing.T) {
		store, _ := newTestStore(t, time.Minute, 8)

		session, _ := store.GetOrCreate("")
		again, created := store.GetOrCreate(session.ID)
		assert.False(t, created)
		assert.Same(t, session, again)
		assert.Equal(t, 1, store.Count())
	})

	t.Run("should run dispatched fetches on the pool", func(t *testing.T) {
		store, fixtureServer := newTestStore(t, time.Minute, 8)

		session, _ := store.GetOrCreate("")
		waitForLoaded(t, session)

		store.Dispatch(session, "select-outcome", session.View.SelectOutcome(session.Context(), models.OutcomePendingOnly))
		require.Eventually(t, func() bool {
			return fixtureServer.CountRequests("/api/get/executions?pendingOnly=true") == 1 && !session.View.Provider().IsLoading()
		}, 5*time.Second, 5*time.Millisecond)
		assert.Len(t, session.View.Rows(), 1)

		store.Dispatch(session, "noop", nil)
	})

	t.Run("should unmount deleted sessions", func(t *testing.T) {
		store, _ := newTestStore(t, time.Minute, 8)

		session, _ := store.GetOrCreate("")
		waitForLoaded(t, session)

		assert.True(t, store.Delete(session.ID))
		assert.False(t, store.Delete(session.ID))
		assert.Equal(t, 0, store.Count())
		assert.Error(t, session.Context().Err())
		assert.Empty(t, session.View.Provider().Snapshot().Records)

		_, ok := store.Get(session.ID)
		assert.False(t, ok)
	})

	t.Run("should sweep only idle sessions", func(t *testing.T) {
		store, _ := newTestStore(t, time.Minute, 8)

		idle, _ := store.GetOrCreate("")
		active, _ := store.GetOrCreate("")

		assert.Equal(t, 0, store.Sweep(time.Now()))

		later := time.Now().Add(2 * time.Minute)
		active.touch(later)
		assert.Equal(t, 1, store.Sweep(later))

		_, ok := store.Get(idle.ID)
		assert.False(t, ok)
		_, ok = store.Get(active.ID)
		assert.True(t, ok)
	})
	t.Run("should evict the least recently seen session at the limit", func(t *testing.T) {
		store, _ := newTestStore(t, time.Minute, 2)

		oldest, _ := store.GetOrCreate("")
		newer, _ := store.GetOrCreate("")
		oldest.touch(time.Now().Add(-time.Minute))

		newest, created := store.GetOrCreate("")
		assert.True(t, created)
		assert.Equal(t, 2, store.Count())
		assert.Error(t, oldest.Context().Err())

		_, ok := store.Get(oldest.ID)
		assert.False(t, ok)
		_, ok = store.Get(newer.ID)
		assert.True(t, ok)
		_, ok = store.Get(newest.ID)
		assert.True(t, ok)
	})
}
