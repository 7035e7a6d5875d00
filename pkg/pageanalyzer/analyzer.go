package pageanalyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-videobrain-be/pkg/brain"
)

// HTTPAnalyzer calls the external page-analysis service, which fetches the
// page, extracts its structure and captures screenshots.
type HTTPAnalyzer struct {
	baseURL string
	client  *http.Client
}

func NewHTTPAnalyzer(baseURL string, timeout time.Duration) *HTTPAnalyzer {
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	return &HTTPAnalyzer{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type analyzeRequest struct {
	Url string `json:"url"`
}

type analyzeResponse struct {
	Url            string   `json:"url"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Headings       []string `json:"headings"`
	ScreenshotUrls []string `json:"screenshot_urls"`
}

func (a *HTTPAnalyzer) Analyze(ctx context.Context, url string) (*brain.PageAnalysis, error) {
	reqBody, err := json.Marshal(analyzeRequest{Url: url})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/analyze", a.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("page analysis request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page analysis error (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed analyzeResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return nil, fmt.Errorf("page analysis decode failed: %w", err)
	}

	return &brain.PageAnalysis{
		URL:            url,
		Title:          parsed.Title,
		Description:    parsed.Description,
		Headings:       parsed.Headings,
		ScreenshotURLs: parsed.ScreenshotUrls,
		FetchedAt:      time.Now(),
	}, nil
}
