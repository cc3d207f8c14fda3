package repository

import (
	"context"
	"net/http"
	"time"

	"trading-journal/pkg/logger"
)

// HTTPConnectivityProbe reports the remote store as reachable when a HEAD
// request to the probe URL gets any response below 500.
type HTTPConnectivityProbe struct {
	url        string
	httpClient *http.Client
	log        *logger.Logger
}

// NewHTTPConnectivityProbe creates a probe against url.
func NewHTTPConnectivityProbe(url string, timeout time.Duration, log *logger.Logger) *HTTPConnectivityProbe {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPConnectivityProbe{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

func (p *HTTPConnectivityProbe) IsOnline(ctx context.Context) bool {
	if p.url == "" {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.url, nil)
	if err != nil {
		p.log.Error("Failed to build connectivity probe", logger.ErrorField(err))
		return false
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.Debug("Connectivity probe failed", logger.ErrorField(err))
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < http.StatusInternalServerError
}
