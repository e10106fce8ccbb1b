package client

import (
	"context"
	"execdash/pkg/config"
	"execdash/pkg/constants/headers"
	"execdash/pkg/models"
	"fmt"
	"github.com/goccy/go-json"
	"github.com/hashicorp/go-hclog"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// FetchError a failed GET against the executions API. StatusCode is 0 when no response arrived.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (fetchError *FetchError) Error() string {
	if fetchError.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", fetchError.URL, fetchError.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", fetchError.URL, fetchError.Err)
}

func (fetchError *FetchError) Unwrap() error {
	return fetchError.Err
}

//go:generate mockery --name ExecutionsClient --output ./ --inpackage
type ExecutionsClient interface {
	GetExecutions(ctx context.Context, outcome models.OutcomeFilter) (*models.ExecutionsDocument, error)
	URLFor(outcome models.OutcomeFilter) string
}

type executionsHTTPClient struct {
	logger                 hclog.Logger
	httpClient             *http.Client
	baseURL                string
	executionsPath         string
	filteredExecutionsPath string
}

func NewExecutionsClient(logger hclog.Logger, configurations *config.DashboardConfigurations) ExecutionsClient {
	httpClient := &http.Client{
		Timeout: time.Duration(configurations.RequestTimeoutMs) * time.Millisecond,
	}
	return NewExecutionsClientWithHTTPClient(
		logger,
		httpClient,
		configurations.APIBaseURL,
		configurations.ExecutionsPath,
		configurations.FilteredExecutionsPath,
	)
}

func NewExecutionsClientWithHTTPClient(logger hclog.Logger, httpClient *http.Client, baseURL string, executionsPath string, filteredExecutionsPath string) ExecutionsClient {
	return &executionsHTTPClient{
		logger:                 logger.Named("executions-client"),
		httpClient:             httpClient,
		baseURL:                strings.TrimRight(baseURL, "/"),
		executionsPath:         executionsPath,
		filteredExecutionsPath: filteredExecutionsPath,
	}
}

// URLFor returns the unfiltered list url for OutcomeNone and <filtered path>?<outcome>=true otherwise
func (client *executionsHTTPClient) URLFor(outcome models.OutcomeFilter) string {
	if outcome == models.OutcomeNone {
		return client.baseURL + client.executionsPath
	}
	query := url.Values{}
	query.Set(outcome.WireName(), "true")
	return fmt.Sprintf("%s%s?%s", client.baseURL, client.filteredExecutionsPath, query.Encode())
}

// GetExecutions issues a single GET, no retries. The records are returned as decoded, without validation.
func (client *executionsHTTPClient) GetExecutions(ctx context.Context, outcome models.OutcomeFilter) (*models.ExecutionsDocument, error) {
	requestURL := client.URLFor(outcome)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &FetchError{URL: requestURL, Err: err}
	}
	req.Header.Set(headers.AcceptHeader, headers.JSONContentType)

	start := time.Now()
	res, err := client.httpClient.Do(req)
	if err != nil {
		client.logger.Error("failed to fetch executions", "url", requestURL, "error", err.Error())
		return nil, &FetchError{URL: requestURL, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, res.Body)
		client.logger.Error("executions api returned an error", "url", requestURL, "status code", res.StatusCode)
		return nil, &FetchError{URL: requestURL, StatusCode: res.StatusCode}
	}

	var envelope models.ExecutionsEnvelope
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		client.logger.Error("failed to decode executions", "url", requestURL, "error", err.Error())
		return nil, &FetchError{URL: requestURL, Err: fmt.Errorf("decode: %w", err)}
	}

	if envelope.Data.Data == nil {
		envelope.Data.Data = []models.ExecutionRecord{}
	}

	client.logger.Debug("fetched executions", "url", requestURL, "count", len(envelope.Data.Data), "duration", time.Since(start))

	return &envelope.Data, nil
}
