package utils

import (
	"log"
	"net/http"
	"os"
	"time"
)

const (
	requestTimeout = 30 * time.Second
	maxAttempts    = 3
	baseBackoff    = 500 * time.Millisecond
)

// RetryClient wraps http.Client with the outbound policy used for the payout
// and proxy backends: 30s per-request timeout, up to 3 attempts with
// exponential backoff. 4xx responses are never retried — only transport
// errors (including timeouts) and 5xx responses are.
type RetryClient struct {
	client *http.Client
}

func NewRetryClient() *RetryClient {
	return &RetryClient{
		client: &http.Client{Timeout: requestTimeout},
	}
}

func (r *RetryClient) Do(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error

	backoff := baseBackoff
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 && req.GetBody != nil {
			body, bodyErr := req.GetBody()
			if bodyErr != nil {
				return nil, bodyErr
			}
			req.Body = body
		}

		resp, err = r.client.Do(req)
		if err == nil && resp.StatusCode < http.StatusInternalServerError {
			return resp, nil
		}

		if attempt == maxAttempts {
			break
		}

		if err == nil {
			// 5xx — drop this response and retry
			resp.Body.Close()
		}

		log.Printf("[HTTP] attempt %d/%d for %s failed, retrying in %s", attempt, maxAttempts, req.URL, backoff)
		time.Sleep(backoff)
		backoff *= 2
	}

	return resp, err
}

// LookupEnv returns the env value or a fallback, logging when the fallback is used.
func LookupEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	log.Printf("⚠️  %s not set, using default: %s", key, fallback)
	return fallback
}
