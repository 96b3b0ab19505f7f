package loadgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/courtzones/internal/domain/model"
	"github.com/okian/courtzones/pkg/logger"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeEmpty
	outcomeFailed
	outcomeInvalid
)

// submitCharts posts every request on a pool of workers and verifies each
// chart that comes back.
func submitCharts(ctx context.Context, config *Config, reqs []ChartRequest, stats *Stats) {
	log := logger.Get().Named("loadgen")
	log.Info(ctx, "submitting charts", logger.Int("charts", len(reqs)), logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/charts"

	var submitted, successful, empty, failed, invalid int64

	reqChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for w := 0; w < config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range reqChan {
				if ctx.Err() != nil {
					return
				}
				res, err := submitChart(ctx, client, url, &reqs[i])
				atomic.AddInt64(&submitted, 1)
				switch res {
				case outcomeSuccess:
					atomic.AddInt64(&successful, 1)
				case outcomeEmpty:
					atomic.AddInt64(&empty, 1)
				case outcomeFailed:
					atomic.AddInt64(&failed, 1)
				case outcomeInvalid:
					atomic.AddInt64(&invalid, 1)
				}
				if err != nil {
					log.Warn(ctx, "chart check failed", logger.String("subject_id", reqs[i].SubjectID), logger.Error(err))
				} else if config.Verbose {
					log.Debug(ctx, "chart verified", logger.String("subject_id", reqs[i].SubjectID))
				}
			}
		}()
	}

	go func() {
		defer close(reqChan)
		for i := range reqs {
			select {
			case <-ctx.Done():
				return
			case reqChan <- i:
			}
		}
	}()

	wg.Wait()

	stats.ChartsSubmitted = int(submitted)
	stats.ChartsSuccessful = int(successful)
	stats.ChartsEmpty = int(empty)
	stats.ChartsFailed = int(failed)
	stats.ChartsInvalid = int(invalid)

	log.Info(ctx, "chart submission completed",
		logger.Int("successful", stats.ChartsSuccessful),
		logger.Int("empty", stats.ChartsEmpty),
		logger.Int("failed", stats.ChartsFailed),
		logger.Int("invalid", stats.ChartsInvalid),
	)
}

func submitChart(ctx context.Context, client *HTTPClient, url string, req *ChartRequest) (outcome, error) {
	resp, err := client.Post(ctx, url, req)
	if err != nil {
		return outcomeFailed, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return outcomeFailed, fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnprocessableEntity:
		// The server was configured to reject empty charts.
		return outcomeEmpty, nil
	default:
		return outcomeFailed, fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var chart model.Chart
	if err := json.Unmarshal(body, &chart); err != nil {
		return outcomeFailed, fmt.Errorf("decode chart: %w", err)
	}
	if err := verifyChart(req, &chart); err != nil {
		return outcomeInvalid, err
	}
	if chart.Empty() {
		return outcomeEmpty, nil
	}
	return outcomeSuccess, nil
}
