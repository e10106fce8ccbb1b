package utils

import (
	"context"
	"errors"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"sync"
	"testing"
	"time"
)

func Test_Dispatcher(t *testing.T) {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "dispatcher-test",
		Level: hclog.LevelFromString("DEBUG"),
	})

	t.Run("no block queue logs and drains a failing effector", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		dispatcher := NewDispatcher(ctx, logger, 1, 1)
		dispatcher.Run()

		ran := make(chan struct{})
		dispatcher.NoBlockQueue("failure", func(successChannel chan any, errorChannel chan any) {
			defer close(ran)
			errorChannel <- errors.New("boom")
		})

		select {
		case <-ran:
		case <-time.After(5 * time.Second):
			t.Fatal("queued work did not run")
		}
	})

	t.Run("no block queue returns once the dispatcher is stopped", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		dispatcher := NewDispatcher(ctx, logger, 1, 1)
		cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := 0; i < 3; i++ {
				dispatcher.NoBlockQueue("late", func(successChannel chan any, errorChannel chan any) {
					errorChannel <- nil
				})
			}
		}()

		assert.Eventually(t, func() bool {
			select {
			case <-done:
				return true
			default:
				return false
			}
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("no block queue runs every queued effector", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		dispatcher := NewDispatcher(ctx, logger, 3, 10)
		dispatcher.Run()

		wg := sync.WaitGroup{}
		wg.Add(10)
		for i := 0; i < 10; i++ {
			dispatcher.NoBlockQueue("count", func(successChannel chan any, errorChannel chan any) {
				defer wg.Done()
				errorChannel <- nil
			})
		}

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("queued work did not run")
		}
	})
}
