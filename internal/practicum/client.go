package practicum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"hwbot/pkg/logx"
)

type ClientConfig struct {
	Endpoint string
	Token    string
	// Timeout bounds a single request, transport and body read included.
	Timeout time.Duration
}

// Client performs one GET against the homework review endpoint per call.
// It classifies the outcome into the package error taxonomy and never retries;
// retry timing belongs to the poll loop.
type Client struct {
	cfg  ClientConfig
	http *http.Client
	log  logx.Logger
}

func NewClient(cfg ClientConfig, log logx.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

// Fetch requests homework statuses changed since the given cursor timestamp.
// A 2xx body is returned as raw JSON for the caller to validate; everything
// else maps to ErrUnauthorized, ErrBadRequest, ErrTimeout, ErrConnection or
// *RequestError.
func (c *Client) Fetch(ctx context.Context, from int64) (json.RawMessage, error) {
	u, err := url.Parse(c.cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", c.cfg.Endpoint, err)
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(from, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "OAuth "+c.cfg.Token)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransportErr(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportErr(err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusBadRequest:
		return nil, ErrBadRequest
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &RequestError{Status: resp.StatusCode}
	}

	if !json.Valid(body) {
		return nil, &RequestError{Status: resp.StatusCode, Cause: errors.New("undecodable response body")}
	}

	c.log.Debug("review API call succeeded",
		logx.Int64("from_date", from),
		logx.Duration("took", time.Since(start)))
	return json.RawMessage(body), nil
}

func classifyTransportErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return ErrTimeout
	}
	return fmt.Errorf("%w: %v", ErrConnection, err)
}
