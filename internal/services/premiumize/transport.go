package premiumize

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://www.premiumize.me/api"
	DefaultTimeout = 30 * time.Second

	// maxBodySize bounds how much of a response body is read into memory.
	maxBodySize = 16 << 20
)

// Request is what the pipeline hands to a Transport. Query already carries the credential.
type Request struct {
	Method string
	Path   string
	Query  url.Values
}

// Response is the raw result of a transport call.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport performs the network call for the pipeline. Implementations
// return an error only when no response was obtained; non-2xx statuses are
// returned as a Response so the pipeline can inspect the body.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// HTTPTransport is the net/http backed Transport.
type HTTPTransport struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

var _ Transport = (*HTTPTransport)(nil)

// NewHTTPTransport creates a transport rooted at baseURL. A nil httpClient
// gets one with DefaultTimeout.
func NewHTTPTransport(baseURL string, httpClient *http.Client) *HTTPTransport {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPTransport{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		userAgent:  "gopremiumize/" + Version,
	}
}

// Do sends the request with every parameter in the query string. POST
// requests carry no body.
func (t *HTTPTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	target := t.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, scrubURLError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// scrubURLError drops the query string from *url.Error so the credential
// does not end up in error messages.
func scrubURLError(err error) error {
	urlErr, ok := err.(*url.Error)
	if !ok {
		return err
	}
	if u, perr := url.Parse(urlErr.URL); perr == nil {
		u.RawQuery = ""
		urlErr.URL = u.String()
	}
	return urlErr
}
