package goldencheetah

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var userAgent = "goldencheetah-go/0.1"

// fetch issues a GET for endpoint and returns the raw body text. Bodies are
// cached per endpoint, so each distinct endpoint is requested at most once
// per client lifetime; failed fetches are never cached, so a later call may
// retry. Every body runs through the classifier regardless of which endpoint
// produced it: the "unknown athlete" signature shows up on the activity-index
// endpoint too.
func (c *Client) fetch(ctx context.Context, endpoint string) (string, error) {
	body, ok, err := c.store.Get(ctx, endpoint)
	if err != nil {
		return "", fmt.Errorf("reading body cache for %q: %w", endpoint, err)
	}
	if ok {
		c.log.WithField("endpoint", endpoint).Debug("cache hit")
		return body, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", &ServerUnavailableError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", &ServerUnavailableError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ServerUnavailableError{Endpoint: endpoint, Err: err}
	}
	if resp.StatusCode >= 300 {
		return "", &ServerUnavailableError{Endpoint: endpoint, Err: errors.New(http.StatusText(resp.StatusCode))}
	}

	body = string(data)
	kind, detail := c.classify(body)
	switch kind {
	case ErrorKindUnknownAthlete:
		return "", &AthleteNotFoundError{Athlete: detail}
	case ErrorKindFileNotFound:
		return "", &ActivityNotFoundError{Filename: activityFilename(endpoint)}
	}

	if err := c.store.Set(ctx, endpoint, body); err != nil {
		return "", fmt.Errorf("caching body for %q: %w", endpoint, err)
	}
	c.log.WithField("endpoint", endpoint).Debug("fetched")
	return body, nil
}

// activityFilename extracts the trailing path segment after "/activity/".
func activityFilename(endpoint string) string {
	_, filename, ok := strings.Cut(endpoint, "/activity/")
	if !ok {
		return ""
	}
	return filename
}
