package hyperliquid

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
)

const (
	infoPath     = "/info"
	exchangePath = "/exchange"
)

// RetryPolicy controls reissue of failed requests. Only server errors and
// transport failures are retried; 4xx responses are final. Backoff grows by
// Multiplier per attempt, capped at MaxBackoff.
type RetryPolicy struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
}

// DefaultRetryPolicy returns the standard backoff schedule.
func DefaultRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		MaxRetries:     3,
		InitialBackoff: 200 * time.Millisecond,
		MaxBackoff:     3 * time.Second,
		Multiplier:     2.0,
	}
}

func (p *RetryPolicy) normalize() {
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	if p.InitialBackoff <= 0 {
		p.InitialBackoff = 200 * time.Millisecond
	}
	if p.MaxBackoff <= 0 {
		p.MaxBackoff = 3 * time.Second
	}
	if p.Multiplier < 1 {
		p.Multiplier = 2.0
	}
}

// transport posts JSON payloads to the exchange API and classifies failures.
type transport struct {
	baseURL    string
	httpClient *http.Client
	retry      *RetryPolicy // nil disables retries
	debug      bool
	sleep      func(context.Context, time.Duration) error
}

func newTransport(baseURL string, httpClient *http.Client) *transport {
	return &transport{
		baseURL:    baseURL,
		httpClient: httpClient,
		sleep:      sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// post serialises payload and issues a single POST, retrying per policy.
func (t *transport) post(ctx context.Context, path string, payload interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, wrapError(ErrIO, err, "encode request for %s", path)
	}

	if t.retry == nil {
		return t.postOnce(ctx, path, body)
	}

	policy := *t.retry
	policy.normalize()
	backoff := policy.InitialBackoff
	attempt := 0
	for {
		resp, err := t.postOnce(ctx, path, body)
		if err == nil {
			return resp, nil
		}
		if !retryable(err) || attempt >= policy.MaxRetries {
			return nil, err
		}
		attempt++
		if t.debug {
			logx.Debugf("hyperliquid: retrying POST %s after %s (attempt %d/%d): %v",
				path, backoff, attempt, policy.MaxRetries, err)
		}
		if sleepErr := t.sleep(ctx, backoff); sleepErr != nil {
			return nil, wrapError(ErrIO, sleepErr, "retry wait for %s", path)
		}
		next := time.Duration(float64(backoff) * policy.Multiplier)
		if next > policy.MaxBackoff {
			next = policy.MaxBackoff
		}
		backoff = next
	}
}

func (t *transport) postOnce(ctx context.Context, path string, body []byte) (json.RawMessage, error) {
	url := t.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, wrapError(ErrIO, err, "build request for %s", path)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if t.debug {
		logx.Debugf("hyperliquid: POST %s %s", url, string(body))
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, wrapError(ErrIO, err, "POST %s", path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapError(ErrIO, err, "read response from %s", path)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= 300 {
		return nil, httpError(resp.StatusCode, string(respBody))
	}

	if t.debug {
		logx.Debugf("hyperliquid: response %s %s", url, string(respBody))
	}
	return respBody, nil
}

// postJSON posts and decodes the response into result when non-nil.
func (t *transport) postJSON(ctx context.Context, path string, payload, result interface{}) error {
	raw, err := t.post(ctx, path, payload)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return wrapError(ErrIO, err, "decode response from %s", path)
	}
	return nil
}
