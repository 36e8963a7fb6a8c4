// Package gateway implements the edge service that validates requests and
// forwards them to the ShareIt server.
package gateway

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Proxy forwards validated requests to the backend server and relays the
// response verbatim.
type Proxy struct {
	serverURL string
	client    *http.Client
	logger    zerolog.Logger
}

// NewProxy creates a Proxy targeting serverURL.
func NewProxy(serverURL string, timeout time.Duration, logger zerolog.Logger) *Proxy {
	return &Proxy{
		serverURL: serverURL,
		client:    &http.Client{Timeout: timeout},
		logger:    logger.With().Str("component", "proxy").Logger(),
	}
}

// Forward relays the request to the backend, preserving method, path, query,
// the sharer header and body. The backend's status and body pass through
// unchanged.
func (p *Proxy) Forward(w http.ResponseWriter, r *http.Request, body []byte) {
	url := p.serverURL + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, bytes.NewReader(body))
	if err != nil {
		p.logger.Error().Err(err).Str("url", url).Msg("building upstream request failed")
		writeError(w, http.StatusInternalServerError, "upstream request failed")
		return
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	if sharer := r.Header.Get("X-Sharer-User-Id"); sharer != "" {
		req.Header.Set("X-Sharer-User-Id", sharer)
	}
	if id := r.Header.Get("X-Request-Id"); id != "" {
		req.Header.Set("X-Request-Id", id)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Error().Err(err).Str("url", url).Msg("upstream request failed")
		writeError(w, http.StatusBadGateway, "backend unavailable")
		return
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		p.logger.Warn().Err(err).Msg("relaying response body failed")
	}
}

// readBody drains and returns the request body.
func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(r.Body)
}
