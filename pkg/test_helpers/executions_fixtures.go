package test_helpers

import (
	"embed"
	"execdash/pkg/models"
	"fmt"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/goccy/go-json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

//go:embed fixtures/*.json
var fixtures embed.FS

const (
	ExecutionsFixture    = "fixtures/executions.json"
	SucceededOnlyFixture = "fixtures/succeeded_only.json"
	FailedOnlyFixture    = "fixtures/failed_only.json"
	PendingOnlyFixture   = "fixtures/pending_only.json"
)

// Fixture returns the raw payload of an embedded fixture
func Fixture(t testing.TB, name string) []byte {
	data, err := fixtures.ReadFile(name)
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", name, err)
	}
	return data
}

// FixtureEnvelope decodes an embedded fixture
func FixtureEnvelope(t testing.TB, name string) models.ExecutionsEnvelope {
	var envelope models.ExecutionsEnvelope
	if err := json.Unmarshal(Fixture(t, name), &envelope); err != nil {
		t.Fatalf("failed to decode fixture %s: %v", name, err)
	}
	return envelope
}

// FixtureServer mimics the executions API with the fixed payloads of the mocked endpoints
type FixtureServer struct {
	*httptest.Server
	mtx      sync.Mutex
	requests []string
	payloads map[string][]byte
	status   map[string]int
	gates    map[string]chan struct{}
}

func NewFixtureServer(t testing.TB) *FixtureServer {
	fixtureServer := &FixtureServer{
		payloads: map[string][]byte{
			"/executions": Fixture(t, ExecutionsFixture),
			"/api/get/executions?succeededOnly=true": Fixture(t, SucceededOnlyFixture),
			"/api/get/executions?failedOnly=true":    Fixture(t, FailedOnlyFixture),
			"/api/get/executions?pendingOnly=true":   Fixture(t, PendingOnlyFixture),
		},
		status: map[string]int{},
		gates:  map[string]chan struct{}{},
	}

	fixtureServer.Server = httptest.NewServer(http.HandlerFunc(fixtureServer.serve))
	t.Cleanup(fixtureServer.Close)
	t.Cleanup(fixtureServer.releaseAll)

	return fixtureServer
}

func (fixtureServer *FixtureServer) serve(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Path
	if r.URL.RawQuery != "" {
		key = fmt.Sprintf("%s?%s", r.URL.Path, r.URL.RawQuery)
	}

	fixtureServer.mtx.Lock()
	fixtureServer.requests = append(fixtureServer.requests, key)
	payload, ok := fixtureServer.payloads[key]
	status, failing := fixtureServer.status[key]
	gate := fixtureServer.gates[key]
	fixtureServer.mtx.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}

	if failing {
		w.WriteHeader(status)
		return
	}

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(payload)
}

// Requests returns every request key (path plus raw query) received so far
func (fixtureServer *FixtureServer) Requests() []string {
	fixtureServer.mtx.Lock()
	defer fixtureServer.mtx.Unlock()

	return append([]string{}, fixtureServer.requests...)
}

// CountRequests returns how many times key was requested
func (fixtureServer *FixtureServer) CountRequests(key string) int {
	count := 0
	for _, request := range fixtureServer.Requests() {
		if request == key {
			count++
		}
	}
	return count
}

// Fail makes key answer with status until Heal is called
func (fixtureServer *FixtureServer) Fail(key string, status int) {
	fixtureServer.mtx.Lock()
	defer fixtureServer.mtx.Unlock()

	fixtureServer.status[key] = status
}

func (fixtureServer *FixtureServer) Heal(key string) {
	fixtureServer.mtx.Lock()
	defer fixtureServer.mtx.Unlock()

	delete(fixtureServer.status, key)
}

// Hold blocks responses for key until the returned release func is called
func (fixtureServer *FixtureServer) Hold(key string) (release func()) {
	gate := make(chan struct{})

	fixtureServer.mtx.Lock()
	fixtureServer.gates[key] = gate
	fixtureServer.mtx.Unlock()

	return func() {
		fixtureServer.mtx.Lock()
		defer fixtureServer.mtx.Unlock()

		if fixtureServer.gates[key] == gate {
			delete(fixtureServer.gates, key)
			close(gate)
		}
	}
}

func (fixtureServer *FixtureServer) releaseAll() {
	fixtureServer.mtx.Lock()
	defer fixtureServer.mtx.Unlock()

	for key, gate := range fixtureServer.gates {
		close(gate)
		delete(fixtureServer.gates, key)
	}
}

// SetPayload replaces the body served for key
func (fixtureServer *FixtureServer) SetPayload(key string, payload []byte) {
	fixtureServer.mtx.Lock()
	defer fixtureServer.mtx.Unlock()

	fixtureServer.payloads[key] = payload
}

// CreateFakeExecutions builds n random execution records. Roughly half of them have started.
func CreateFakeExecutions(n int) []models.ExecutionRecord {
	executions := make([]models.ExecutionRecord, 0, n)
	for i := 0; i < n; i++ {
		var execution models.ExecutionRecord
		_ = gofakeit.Struct(&execution)

		received := gofakeit.DateRange(time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC))
		execution.Attributes.ReceivedTime = received.Format("2006-01-02T15:04:05.000-0700")
		execution.Attributes.ScheduleTime = received.Add(time.Duration(gofakeit.Number(1, 600)) * time.Minute).Format(time.RFC3339)
		if gofakeit.Bool() {
			started := received.Add(time.Hour).Format(time.RFC3339)
			execution.Attributes.StartTime = &started
		}

		execution.Relationships = &models.ExecutionRelationships{
			DataSchema: &models.Relationship{Data: &models.ResourceIdentifier{Type: "DataSchema", ID: fmt.Sprint(gofakeit.Number(100, 105))}},
			DataSource: &models.Relationship{Data: &models.ResourceIdentifier{Type: "DataSource", ID: fmt.Sprint(gofakeit.Number(1, 9))}},
		}

		executions = append(executions, execution)
	}
	return executions
}

// EnvelopePayload encodes executions the way the API does
func EnvelopePayload(t testing.TB, executions []models.ExecutionRecord) []byte {
	data, err := json.Marshal(models.ExecutionsEnvelope{Data: models.ExecutionsDocument{Data: executions}})
	if err != nil {
		t.Fatalf("failed to encode executions: %v", err)
	}
	return data
}
