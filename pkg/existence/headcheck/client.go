// Package headcheck provides an existence.Checker that issues HTTP HEAD
// requests. Only HTTP 200 confirms existence; any other status, transport
// failure or timeout is reported as a classified negative result.
package headcheck

import (
	"context"
	"errors"
	"net"
	"net/http"
	"prober/pkg/domain"
	"prober/pkg/existence"
	"prober/pkg/serrors"
	"time"
)

const (
	// DefaultTimeout bounds a single check when no timeout is configured.
	DefaultTimeout = 5 * time.Second
	// DefaultUserAgent is sent with every check unless overridden.
	DefaultUserAgent = "prober/1.0"
)

// Client performs HEAD-based existence checks. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client  // httpClient sends the requests; redirects are followed
	timeout    time.Duration // timeout bounds each check, including redirects
	userAgent  string
}

// Check issues HEAD URL and classifies the response.
func (c *Client) Check(ctx context.Context, URL string) (res domain.Result) {
	start := time.Now()
	res.URL = URL
	defer func() {
		res.Duration = time.Since(start)
	}()

	if err := ctx.Err(); err != nil {
		res.Outcome = domain.OutcomeCanceled
		res.Err = serrors.Wrap(serrors.ErrCanceled, err, "check not started")

		return res
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodHead, URL, nil)
	if err != nil {
		res.Outcome = domain.OutcomeTransportError
		res.Err = serrors.Wrap(serrors.ErrBadRequest, err, "could not create request")

		return res
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		res.Outcome, res.Err = classify(ctx, err)

		return res
	}
	_ = resp.Body.Close()

	res.StatusCode = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		res.Outcome = domain.OutcomeHTTPError
		res.Err = serrors.With(serrors.ErrHTTPStatus, "unexpected status %d", resp.StatusCode)

		return res
	}
	res.Outcome = domain.OutcomeFound

	return res
}

// classify maps a transport-level error to an outcome. A done parent context
// means the run was stopped, which takes precedence over the request's own
// deadline.
func classify(parent context.Context, err error) (domain.Outcome, error) {
	if parent.Err() != nil {
		return domain.OutcomeCanceled, serrors.Wrap(serrors.ErrCanceled, err, "check canceled")
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return domain.OutcomeTimeout, serrors.Wrap(serrors.ErrTimeout, err, "check timed out")
	}

	return domain.OutcomeTransportError, serrors.Wrap(serrors.ErrUnavailable, err, "could not send request")
}

// Ensure Client conforms to the existence.Checker interface at compile time.
var _ existence.Checker = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithUserAgent overrides the User-Agent header sent with each check.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// New constructs a Client sending requests through httpClient, bounding each
// check by timeout. A nil httpClient uses http.DefaultClient and a
// non-positive timeout uses DefaultTimeout.
func New(httpClient *http.Client, timeout time.Duration, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		httpClient: httpClient,
		timeout:    timeout,
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// NewHTTPClient returns an http.Client whose transport keeps enough idle
// connections per host for workers concurrent checks.
func NewHTTPClient(workers int) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone() //nolint: forcetypeassert
	if workers > transport.MaxIdleConnsPerHost {
		transport.MaxIdleConnsPerHost = workers
	}

	return &http.Client{Transport: transport}
}
