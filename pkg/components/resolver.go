package components

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// HTTPResolver looks a named design-system component up in the external
// component registry and returns its structured context.
type HTTPResolver struct {
	baseURL string
	client  *http.Client
}

func NewHTTPResolver(baseURL string, timeout time.Duration) *HTTPResolver {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &HTTPResolver{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type componentResponse struct {
	Name    string `json:"name"`
	Context string `json:"context"`
}

func (r *HTTPResolver) ResolveComponent(ctx context.Context, name string) (string, error) {
	endpoint := fmt.Sprintf("%s/components/%s", r.baseURL, url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("component lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// Unknown component name: no rewrite, not an error worth surfacing.
		return "", nil
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("component lookup error (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed componentResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return "", fmt.Errorf("component lookup decode failed: %w", err)
	}
	return parsed.Context, nil
}
