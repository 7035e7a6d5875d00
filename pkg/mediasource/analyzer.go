package mediasource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPAnalyzer asks the external source-analysis service to describe a time
// range inside a long-form hosted video.
type HTTPAnalyzer struct {
	baseURL string
	client  *http.Client
}

func NewHTTPAnalyzer(baseURL string, timeout time.Duration) *HTTPAnalyzer {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &HTTPAnalyzer{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type analyzeRangeRequest struct {
	Url      string `json:"url"`
	StartSec int    `json:"start_sec"`
	EndSec   int    `json:"end_sec"`
}

type analyzeRangeResponse struct {
	Description string `json:"description"`
}

func (a *HTTPAnalyzer) AnalyzeRange(ctx context.Context, url string, startSec, endSec int) (string, error) {
	reqBody, err := json.Marshal(analyzeRangeRequest{Url: url, StartSec: startSec, EndSec: endSec})
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/analyze-range", a.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("source analysis request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("source analysis error (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed analyzeRangeResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return "", fmt.Errorf("source analysis decode failed: %w", err)
	}
	return parsed.Description, nil
}
