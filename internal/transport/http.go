package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"prismslink/internal/domain"
)

// HTTP posts requests to a single servlet URL.
type HTTP struct {
	URL    string
	Client *http.Client
}

// NewHTTP returns a transport for servletURL using a fresh http.Client.
// Deadlines come from the context passed to Send.
func NewHTTP(servletURL string) *HTTP {
	return &HTTP{URL: servletURL, Client: &http.Client{}}
}

var _ domain.Transport = (*HTTP)(nil)

// Send performs one round trip and returns the response body.
func (c *HTTP) Send(ctx context.Context, wire domain.WireRequest) ([]byte, error) {
	form := make(url.Values, len(wire))
	for k, v := range wire {
		form.Set(k, v)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &domain.TransportError{Kind: domain.TransportOther, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Cache-Control", "no-cache")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Kind: classify(err), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Kind: classify(err), Err: err}
	}
	if resp.StatusCode/100 != 2 {
		return nil, &domain.TransportError{
			Kind:   domain.TransportStatus,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("post %s: %s", c.URL, http.StatusText(resp.StatusCode)),
		}
	}
	return body, nil
}

// classify maps a client error to the kind the user is told about.
func classify(err error) domain.TransportKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.TransportTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return domain.TransportTimeout
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return domain.TransportUnreachable
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return domain.TransportUnreachable
	}
	return domain.TransportOther
}
