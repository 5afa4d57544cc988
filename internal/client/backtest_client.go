package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/yourorg/backtest-analytics/internal/model"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// BacktestClient handles communication with the backtest execution service:
// submitting runs, polling their status and fetching finished results.
type BacktestClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewBacktestClient creates a new backtest execution service client.
func NewBacktestClient(baseURL string, timeout time.Duration, logger *zap.Logger) *BacktestClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &BacktestClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// BaseURL returns the configured service URL.
func (c *BacktestClient) BaseURL() string { return c.baseURL }

// Submit queues a backtest run and returns its run ID and initial status.
func (c *BacktestClient) Submit(ctx context.Context, request *model.BacktestSubmitRequest) (*model.BacktestRunStatus, error) {
	jsonData, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal backtest request: %w", err)
	}

	url := fmt.Sprintf("%s/backtests", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info("Submitting backtest run",
		zap.String("url", url),
		zap.String("strategy", request.Strategy),
		zap.String("symbol", request.Symbol))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return nil, decodeServiceError(resp)
	}

	var status model.BacktestRunStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &status, nil
}

// GetStatus fetches the current status of a run.
func (c *BacktestClient) GetStatus(ctx context.Context, runID string) (*model.BacktestRunStatus, error) {
	url := fmt.Sprintf("%s/backtests/%s/status", c.baseURL, runID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &model.BacktestRunStatus{RunID: runID, Status: model.RunStatusNotFound}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeServiceError(resp)
	}

	var status model.BacktestRunStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &status, nil
}

// GetResult fetches the raw result of a finished run.
func (c *BacktestClient) GetResult(ctx context.Context, runID string) (*model.BacktestResult, error) {
	url := fmt.Sprintf("%s/backtests/%s/result", c.baseURL, runID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to fetch backtest result", zap.Error(err), zap.String("runID", runID))
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("backtest run %s not found", runID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeServiceError(resp)
	}

	var result model.BacktestResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if result.RunID == "" {
		result.RunID = runID
	}
	return &result, nil
}

// WaitForResult polls a run until it finishes, then fetches its result.
// Polling backs off exponentially and stops when ctx is done or the run
// fails.
func (c *BacktestClient) WaitForResult(ctx context.Context, runID string) (*model.BacktestResult, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxInterval = 10 * time.Second
	policy.MaxElapsedTime = 0 // bounded by ctx

	err := backoff.Retry(func() error {
		status, err := c.GetStatus(ctx, runID)
		if err != nil {
			return err
		}
		switch status.Status {
		case model.RunStatusDone:
			return nil
		case model.RunStatusFailed:
			return backoff.Permanent(fmt.Errorf("backtest run %s failed: %s", runID, status.Error))
		case model.RunStatusNotFound:
			return backoff.Permanent(fmt.Errorf("backtest run %s not found", runID))
		default:
			return fmt.Errorf("backtest run %s still %s", runID, status.Status)
		}
	}, backoff.WithContext(policy, ctx))
	if err != nil {
		return nil, err
	}

	return c.GetResult(ctx, runID)
}

// CheckHealth checks if the backtest execution service is reachable.
func (c *BacktestClient) CheckHealth(ctx context.Context) (bool, error) {
	url := fmt.Sprintf("%s/health", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}

func decodeServiceError(resp *http.Response) error {
	var errorResp struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errorResp); err != nil {
		return fmt.Errorf("backtest service returned status %d", resp.StatusCode)
	}
	msg := errorResp.Error
	if msg == "" {
		msg = errorResp.Detail
	}
	return fmt.Errorf("backtest service error: %s", msg)
}
