package session

import (
	"context"
	"errors"
	"execdash/pkg/constants"
	"execdash/pkg/models"
	"execdash/pkg/service/provider"
	"execdash/pkg/service/table"
	"execdash/pkg/utils"
	"github.com/hashicorp/go-hclog"
	"github.com/segmentio/ksuid"
	"sync"
	"time"
)

// Session one browser's dashboard. Its context is canceled when the session is deleted.
type Session struct {
	ID       string
	View     table.TableView
	ctx      context.Context
	cancel   context.CancelFunc
	mtx      sync.Mutex
	lastSeen time.Time
}

func (session *Session) Context() context.Context {
	return session.ctx
}

func (session *Session) touch(now time.Time) {
	session.mtx.Lock()
	defer session.mtx.Unlock()
	session.lastSeen = now
}

func (session *Session) LastSeen() time.Time {
	session.mtx.Lock()
	defer session.mtx.Unlock()
	return session.lastSeen
}

// ViewFactory builds the table view of a new session
type ViewFactory func() table.TableView

type Store interface {
	GetOrCreate(id string) (*Session, bool)
	Get(id string) (*Session, bool)
	Delete(id string) bool
	Dispatch(session *Session, name string, request *provider.Request)
	Sweep(now time.Time) int
	Start(ctx context.Context)
	Count() int
}

type store struct {
	ctx         context.Context
	logger      hclog.Logger
	dispatcher  *utils.Dispatcher
	newView     ViewFactory
	idleTimeout time.Duration
	maxSessions int
	mtx         sync.Mutex
	sessions    map[string]*Session
	now         func() time.Time
}

// NewStore maxSessions caps the mounted sessions, the least recently seen one is evicted to make room
func NewStore(ctx context.Context, logger hclog.Logger, dispatcher *utils.Dispatcher, idleTimeout time.Duration, maxSessions int, newView ViewFactory) Store {
	return &store{
		ctx:         ctx,
		logger:      logger.Named("session-store"),
		dispatcher:  dispatcher,
		newView:     newView,
		idleTimeout: idleTimeout,
		maxSessions: maxSessions,
		sessions:    map[string]*Session{},
		now:         time.Now,
	}
}

func (store *store) Get(id string) (*Session, bool) {
	store.mtx.Lock()
	defer store.mtx.Unlock()

	session, ok := store.sessions[id]
	if ok {
		session.touch(store.now())
	}
	return session, ok
}

// GetOrCreate returns the session for id, or mounts a new one under a fresh id.
// The second return value is true when the session was created.
func (store *store) GetOrCreate(id string) (*Session, bool) {
	if session, ok := store.Get(id); ok {
		return session, false
	}

	ctx, cancel := context.WithCancel(store.ctx)
	session := &Session{
		ID:       ksuid.New().String(),
		View:     store.newView(),
		ctx:      ctx,
		cancel:   cancel,
		lastSeen: store.now(),
	}

	store.mtx.Lock()
	evicted := store.leastRecentlySeen()
	store.sessions[session.ID] = session
	store.mtx.Unlock()

	if evicted != "" {
		store.logger.Warn("session limit reached, evicting", "session", evicted, "limit", store.maxSessions)
		store.Delete(evicted)
	}
	store.logger.Info("session created", "session", session.ID)

	request := session.View.Provider().Begin(session.ctx, models.OutcomeNone)
	store.Dispatch(session, "mount", request)

	return session, true
}

// leastRecentlySeen the session to evict before one more fits, empty while under the limit.
// The caller holds store.mtx.
func (store *store) leastRecentlySeen() string {
	if store.maxSessions <= 0 || len(store.sessions) < store.maxSessions {
		return ""
	}

	oldestID := ""
	var oldest time.Time
	for id, session := range store.sessions {
		lastSeen := session.LastSeen()
		if oldestID == "" || lastSeen.Before(oldest) {
			oldestID, oldest = id, lastSeen
		}
	}
	return oldestID
}

// Dispatch runs the fetch on the worker pool, superseded and unmounted fetches are not failures
func (store *store) Dispatch(session *Session, name string, request *provider.Request) {
	if request == nil {
		return
	}

	store.dispatcher.NoBlockQueue(name+"-"+session.ID, func(successChannel chan any, errorChannel chan any) {
		err := request.Do()
		if err != nil && !errors.Is(err, provider.ErrSuperseded) && !errors.Is(err, provider.ErrUnmounted) {
			errorChannel <- err
			return
		}
		successChannel <- true
	})
}

// Delete unmounts the session, any fetch in flight is canceled
func (store *store) Delete(id string) bool {
	store.mtx.Lock()
	session, ok := store.sessions[id]
	delete(store.sessions, id)
	store.mtx.Unlock()

	if !ok {
		return false
	}

	session.View.Provider().Unmount()
	session.cancel()
	store.logger.Info("session deleted", "session", id)
	return true
}

// Sweep deletes sessions idle for longer than the idle timeout and returns how many it deleted
func (store *store) Sweep(now time.Time) int {
	store.mtx.Lock()
	expired := []string{}
	for id, session := range store.sessions {
		if now.Sub(session.LastSeen()) > store.idleTimeout {
			expired = append(expired, id)
		}
	}
	store.mtx.Unlock()

	for _, id := range expired {
		store.Delete(id)
	}
	if len(expired) > 0 {
		store.logger.Debug("swept idle sessions", "count", len(expired))
	}
	return len(expired)
}

// Start sweeps on a ticker until ctx is done
func (store *store) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(time.Duration(constants.SessionSweepIntervalSeconds) * time.Second)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				store.Sweep(now)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (store *store) Count() int {
	store.mtx.Lock()
	defer store.mtx.Unlock()
	return len(store.sessions)
}
