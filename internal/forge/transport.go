package forge

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/hashicorp/go-cleanhttp"
)

// Method is an HTTP method used against the forge.
type Method string

const (
	MethodGet   Method = http.MethodGet
	MethodPatch Method = http.MethodPatch
	MethodPost  Method = http.MethodPost
)

// Request is one forge exchange. It is built per call and not retained.
type Request struct {
	Body        []byte // nil for requests without a payload
	Credentials Credentials
	Method      Method
	Mimetype    string // sent as Accept
	URL         string // absolute
}

// Response is the raw result of an exchange.
type Response struct {
	Body       []byte
	StatusCode int
}

// Transport issues a single blocking HTTP request.
// A returned error means no response was received; any status code is a
// successful exchange at this layer.
type Transport interface {
	Do(ctx context.Context, req Request) (Response, error)
}

// HTTPTransport implements Transport over net/http.
type HTTPTransport struct {
	client    *http.Client
	log       *clog.Logger
	userAgent string
}

var _ Transport = &HTTPTransport{}

// NewHTTPTransport creates a transport with its own connection pool.
// A zero timeout leaves the client without a deadline.
func NewHTTPTransport(timeout time.Duration, userAgent string) *HTTPTransport {
	client := cleanhttp.DefaultClient()
	client.Timeout = timeout
	return &HTTPTransport{
		client:    client,
		log:       clog.Default().WithPrefix("http"),
		userAgent: userAgent,
	}
}

func (t *HTTPTransport) Do(ctx context.Context, r Request) (Response, error) {
	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, string(r.Method), r.URL, body)
	if err != nil {
		return Response{}, fmt.Errorf("failed to build request: %w", err)
	}
	if r.Mimetype != "" {
		req.Header.Set("Accept", r.Mimetype)
	}
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	if r.Credentials != nil {
		r.Credentials.apply(req)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			t.log.Warn("failed to close response body", "url", r.URL, "error", closeErr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("failed to read response body: %w", err)
	}

	return Response{Body: respBody, StatusCode: resp.StatusCode}, nil
}
