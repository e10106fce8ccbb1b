package provider

import (
	"context"
	"errors"
	"execdash/pkg/client"
	"execdash/pkg/models"
	"github.com/hashicorp/go-hclog"
	"sync"
)

// ErrSuperseded is returned by a fetch whose response arrived after a newer fetch was issued.
// Its records are discarded.
var ErrSuperseded = errors.New("fetch superseded by a newer request")

// ErrUnmounted is returned by fetches issued or completed after Unmount
var ErrUnmounted = errors.New("provider is unmounted")

type LoadState uint8

const (
	StateIdle LoadState = iota
	StateLoading
	StateLoaded
	StateFetchFailed
)

func (state LoadState) String() string {
	switch state {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFetchFailed:
		return "fetchFailed"
	}
	return "idle"
}

// Snapshot a consistent copy of the provider state
type Snapshot struct {
	Records    []models.ExecutionRecord
	Included   []models.RelatedEntity
	State      LoadState
	Err        error
	LastFilter models.OutcomeFilter
}

type DataProvider interface {
	Mount(ctx context.Context) error
	Fetch(ctx context.Context, outcome models.OutcomeFilter) error
	Begin(ctx context.Context, outcome models.OutcomeFilter) *Request
	Retry(ctx context.Context) error
	BeginRetry(ctx context.Context) *Request
	SetRecords(records []models.ExecutionRecord)
	Snapshot() Snapshot
	IsLoading() bool
	Unmount()
}

// provider owns the execution record set and its load state. Every fetch takes a sequence number
// and cancels the one before it, only the latest issued fetch may store its response.
type provider struct {
	logger     hclog.Logger
	client     client.ExecutionsClient
	mtx        sync.Mutex
	records    []models.ExecutionRecord
	included   []models.RelatedEntity
	state      LoadState
	lastErr    error
	lastFilter models.OutcomeFilter
	seq        uint64
	cancel     context.CancelFunc
	unmounted  bool
}

// Request a fetch that has been issued (the provider is loading) but not performed yet
type Request struct {
	provider *provider
	ctx      context.Context
	cancel   context.CancelFunc
	outcome  models.OutcomeFilter
	seq      uint64
	err      error
}

func NewDataProvider(logger hclog.Logger, executionsClient client.ExecutionsClient) DataProvider {
	return &provider{
		logger:  logger.Named("data-provider"),
		client:  executionsClient,
		records: []models.ExecutionRecord{},
		state:   StateIdle,
	}
}

// Mount performs the initial unfiltered fetch
func (provider *provider) Mount(ctx context.Context) error {
	return provider.Fetch(ctx, models.OutcomeNone)
}

// Fetch replaces the record set with the response for outcome
func (provider *provider) Fetch(ctx context.Context, outcome models.OutcomeFilter) error {
	return provider.Begin(ctx, outcome).Do()
}

// Begin issues a fetch: the provider switches to loading and the previous fetch in flight is canceled.
// The GET itself happens in Request.Do.
func (provider *provider) Begin(ctx context.Context, outcome models.OutcomeFilter) *Request {
	provider.mtx.Lock()
	defer provider.mtx.Unlock()

	if provider.unmounted {
		return &Request{provider: provider, outcome: outcome, err: ErrUnmounted}
	}
	if provider.cancel != nil {
		provider.cancel()
	}
	provider.seq++
	fetchCtx, cancel := context.WithCancel(ctx)
	provider.cancel = cancel
	provider.state = StateLoading
	provider.lastErr = nil
	provider.lastFilter = outcome

	return &Request{
		provider: provider,
		ctx:      fetchCtx,
		cancel:   cancel,
		outcome:  outcome,
		seq:      provider.seq,
	}
}

// Outcome the filter this request fetches
func (request *Request) Outcome() models.OutcomeFilter {
	return request.outcome
}

// Do performs the GET and stores the response unless a newer request was issued meanwhile.
// A nil request has nothing to fetch.
func (request *Request) Do() error {
	if request == nil {
		return nil
	}
	if request.err != nil {
		return request.err
	}
	defer request.cancel()

	provider := request.provider
	outcome := request.outcome

	provider.logger.Debug("fetching executions", "outcome", outcome.String(), "seq", request.seq)
	document, err := provider.client.GetExecutions(request.ctx, outcome)

	provider.mtx.Lock()
	defer provider.mtx.Unlock()

	if provider.unmounted {
		return ErrUnmounted
	}

	if request.seq != provider.seq {
		provider.logger.Debug("discarding superseded response", "outcome", outcome.String(), "seq", request.seq, "latest", provider.seq)
		return ErrSuperseded
	}

	provider.cancel = nil

	if err != nil {
		provider.state = StateFetchFailed
		provider.lastErr = err
		provider.logger.Error("failed to fetch executions", "outcome", outcome.String(), "error", err.Error())
		return err
	}

	provider.records = document.Data
	provider.included = document.Included
	provider.state = StateLoaded
	provider.logger.Info("loaded executions", "outcome", outcome.String(), "count", len(document.Data))

	return nil
}

// Retry re-issues the last requested fetch
func (provider *provider) Retry(ctx context.Context) error {
	return provider.BeginRetry(ctx).Do()
}

func (provider *provider) BeginRetry(ctx context.Context) *Request {
	provider.mtx.Lock()
	outcome := provider.lastFilter
	provider.mtx.Unlock()

	return provider.Begin(ctx, outcome)
}

// SetRecords replaces the record set directly and supersedes any fetch in flight
func (provider *provider) SetRecords(records []models.ExecutionRecord) {
	provider.mtx.Lock()
	defer provider.mtx.Unlock()

	if provider.cancel != nil {
		provider.cancel()
		provider.cancel = nil
	}
	provider.seq++
	if records == nil {
		records = []models.ExecutionRecord{}
	}
	provider.records = records
	provider.state = StateLoaded
	provider.lastErr = nil
}

func (provider *provider) Snapshot() Snapshot {
	provider.mtx.Lock()
	defer provider.mtx.Unlock()

	return Snapshot{
		Records:    append([]models.ExecutionRecord{}, provider.records...),
		Included:   append([]models.RelatedEntity{}, provider.included...),
		State:      provider.state,
		Err:        provider.lastErr,
		LastFilter: provider.lastFilter,
	}
}

func (provider *provider) IsLoading() bool {
	provider.mtx.Lock()
	defer provider.mtx.Unlock()

	return provider.state == StateLoading
}

// Unmount cancels the fetch in flight and discards the record set
func (provider *provider) Unmount() {
	provider.mtx.Lock()
	defer provider.mtx.Unlock()

	if provider.cancel != nil {
		provider.cancel()
		provider.cancel = nil
	}
	provider.unmounted = true
	provider.records = []models.ExecutionRecord{}
	provider.included = nil
	provider.state = StateIdle
}
