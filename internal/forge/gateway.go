package forge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	clog "github.com/charmbracelet/log"
)

// DefaultMimetype is the Accept value for JSON resources.
const DefaultMimetype = "application/vnd.github.v3+json"

// PatchMimetype asks the forge for a pull request as an mbox patch.
const PatchMimetype = "application/vnd.github.v3.patch"

// Gateway performs authenticated JSON exchanges against one API origin.
type Gateway struct {
	log       *clog.Logger
	origin    string
	tokens    TokenStore
	transport Transport
}

// NewGateway creates a Gateway for origin, which must be an absolute URL ending in "/".
func NewGateway(origin string, tokens TokenStore, transport Transport) *Gateway {
	return &Gateway{
		log:       clog.Default().WithPrefix("forge"),
		origin:    origin,
		tokens:    tokens,
		transport: transport,
	}
}

// Origin returns the API origin every relative path is joined onto.
func (g *Gateway) Origin() string {
	return g.origin
}

// BuildURL returns path unchanged when it already starts with the origin,
// otherwise the origin followed by path without its leading slashes.
func (g *Gateway) BuildURL(path string) string {
	if strings.HasPrefix(path, g.origin) {
		return path
	}
	return g.origin + strings.TrimLeft(path, "/")
}

// Read fetches path and decodes the JSON response into out.
// Requests are sent with the stored token when there is one, anonymously otherwise.
func (g *Gateway) Read(ctx context.Context, path string, out any) error {
	body, err := g.ReadRaw(ctx, path, DefaultMimetype)
	if err != nil {
		return err
	}
	return decode(g.BuildURL(path), body, out)
}

// ReadRaw fetches path with the given Accept mimetype and returns the body undecoded.
func (g *Gateway) ReadRaw(ctx context.Context, path, mimetype string) ([]byte, error) {
	url := g.BuildURL(path)
	token, err := g.storedToken()
	if err != nil {
		return nil, err
	}
	creds, err := g.credentialsFor(url, token, nil)
	if err != nil {
		return nil, err
	}
	return g.exchange(ctx, Request{
		Credentials: creds,
		Method:      MethodGet,
		Mimetype:    mimetype,
		URL:         url,
	}, false)
}

// Create POSTs payload as JSON to path and decodes the response into out.
// A non-nil override replaces the stored token for this request; it is how
// login authenticates before a token exists.
func (g *Gateway) Create(ctx context.Context, path string, payload any, override Credentials, out any) error {
	url := g.BuildURL(path)
	token, err := g.storedToken()
	if err != nil {
		return err
	}
	if token == "" && !isExplicit(override) {
		return ErrAuthRequired
	}
	creds, err := g.credentialsFor(url, token, override)
	if err != nil {
		return err
	}
	return g.send(ctx, MethodPost, url, creds, payload, out)
}

// Update PATCHes payload as JSON to path and decodes the response into out.
// It never sends a request without a stored token.
func (g *Gateway) Update(ctx context.Context, path string, payload any, out any) error {
	url := g.BuildURL(path)
	token, err := g.storedToken()
	if err != nil {
		return err
	}
	if token == "" {
		return ErrAuthRequired
	}
	creds, err := g.credentialsFor(url, token, nil)
	if err != nil {
		return err
	}
	return g.send(ctx, MethodPatch, url, creds, payload, out)
}

func (g *Gateway) send(ctx context.Context, method Method, url string, creds Credentials, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request for %s: %w", url, err)
	}
	body, err := g.exchange(ctx, Request{
		Body:        data,
		Credentials: creds,
		Method:      method,
		Mimetype:    DefaultMimetype,
		URL:         url,
	}, method == MethodPatch)
	if err != nil {
		return err
	}
	return decode(url, body, out)
}

// exchange runs one request and classifies the response status.
func (g *Gateway) exchange(ctx context.Context, req Request, isUpdate bool) ([]byte, error) {
	g.log.Debug("Sending request", "method", req.Method, "url", req.URL, "mimetype", req.Mimetype, "auth", req.Credentials.Scheme())

	resp, err := g.transport.Do(ctx, req)
	if err != nil {
		g.log.Debug("Request failed", "method", req.Method, "url", req.URL, "error", err)
		return nil, &TransportError{Err: err, Method: string(req.Method), URL: req.URL}
	}

	g.log.Debug("Received response", "url", req.URL, "status", resp.StatusCode, "bytes", len(resp.Body))

	if resp.StatusCode >= 400 {
		apiErr := &APIError{
			Body:   string(resp.Body),
			Method: string(req.Method),
			Status: resp.StatusCode,
			URL:    req.URL,
		}
		if isUpdate && apiErr.IsUnprocessable() {
			apiErr.Hint = updateRejectedHint
		}
		return nil, apiErr
	}
	return resp.Body, nil
}

// credentialsFor picks the credentials for url: nothing leaves the API origin
// authenticated, an explicit override wins over the stored token.
func (g *Gateway) credentialsFor(url, token string, override Credentials) (Credentials, error) {
	if !strings.HasPrefix(url, g.origin) {
		return NoCredentials{}, nil
	}
	if isExplicit(override) {
		return override, nil
	}
	if token != "" {
		return TokenCredentials{Token: token}, nil
	}
	return NoCredentials{}, nil
}

func (g *Gateway) storedToken() (string, error) {
	if g.tokens == nil {
		return "", nil
	}
	token, err := g.tokens.Token()
	if err != nil {
		return "", fmt.Errorf("failed to read stored token: %w", err)
	}
	return token, nil
}

func isExplicit(c Credentials) bool {
	if c == nil {
		return false
	}
	_, none := c.(NoCredentials)
	return !none
}

func decode(url string, body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}

// AsAPIError extracts an *APIError from err's chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
