package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"github.com/ItsGosho/hydrachain-explorer-requester/params"
)

// Client is a Hydrachain explorer API client.
// It is safe for concurrent use; requests share one pooled transport.
type Client struct {
	urls      URLBuilder
	http      *retryablehttp.Client
	userAgent string
	pageSize  int
	logger    zerolog.Logger
}

// responseKind tells how a response body is validated and returned
type responseKind int

const (
	kindJSON responseKind = iota
	kindText
)

// NewClient creates a new explorer client
func NewClient(logger zerolog.Logger, opts ...Option) *Client {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		transport := cleanhttp.DefaultPooledTransport()
		transport.MaxIdleConnsPerHost = o.poolSize

		httpClient = &http.Client{
			Transport: transport,
			Timeout:   o.timeout,
			// Redirects are reported as unexpected statuses
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = httpClient
	rc.RetryMax = o.retries
	rc.RetryWaitMin = o.retryWaitMin
	rc.RetryWaitMax = o.retryWaitMax
	rc.Logger = retryLogger{logger: logger}
	// Hand the last response back so it goes through status validation
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	if o.responseHook != nil {
		hook := o.responseHook
		rc.ResponseLogHook = func(_ retryablehttp.Logger, resp *http.Response) {
			hook(resp)
		}
	}

	return &Client{
		urls:      o.urls,
		http:      rc,
		userAgent: o.userAgent,
		pageSize:  o.pageSize,
		logger:    logger,
	}
}

// URLs returns the URL builder in use
func (c *Client) URLs() URLBuilder {
	return c.urls
}

// PageSize returns the default page size of the iterators
func (c *Client) PageSize() int {
	return c.pageSize
}

// getJSON performs a GET request and returns the validated JSON body
func (c *Client) getJSON(ctx context.Context, endpoint string, p params.Encoder) (json.RawMessage, error) {
	body, err := c.request(ctx, endpoint, p, kindJSON)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// getText performs a GET request and returns the body unparsed
func (c *Client) getText(ctx context.Context, endpoint string, p params.Encoder) (string, error) {
	body, err := c.request(ctx, endpoint, p, kindText)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// request performs a GET request and validates the response.
// Transport errors are returned untouched.
func (c *Client) request(ctx context.Context, endpoint string, p params.Encoder, kind responseKind) ([]byte, error) {
	requestURL, err := buildURL(endpoint, p)
	if err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	if kind == kindJSON {
		req.Header.Set("Accept", "application/json")
	}

	c.logger.Debug().
		Str("method", http.MethodGet).
		Str("url", requestURL).
		Msg("Starting explorer request")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if err := validateResponse(resp, body, kind, requestURL); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("url", requestURL).
		Int("status", resp.StatusCode).
		Bytes("body", body).
		Msg("Received explorer response")

	return body, nil
}

// buildURL attaches the resolved parameters to endpoint, keeping any query it already has
func buildURL(endpoint string, p params.Encoder) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint URL %q: %w", endpoint, err)
	}
	if p == nil {
		return u.String(), nil
	}

	values, err := p.Values()
	if err != nil {
		return "", err
	}
	if len(values) == 0 {
		return u.String(), nil
	}

	u.RawQuery = params.Merge(u.Query(), values).Encode()
	return u.String(), nil
}

// validateResponse checks the status code, and for JSON endpoints the content type and body
func validateResponse(resp *http.Response, body []byte, kind responseKind, requestURL string) error {
	if resp.StatusCode != http.StatusOK {
		return &UnexpectedStatusError{
			Method:     http.MethodGet,
			URL:        requestURL,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	if kind != kindJSON {
		return nil
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "application/json") {
		return &UnexpectedContentTypeError{
			Method:      http.MethodGet,
			URL:         requestURL,
			StatusCode:  resp.StatusCode,
			ContentType: contentType,
			Body:        string(body),
		}
	}

	if !json.Valid(body) {
		return fmt.Errorf("failed to parse response from %s: invalid JSON", requestURL)
	}

	return nil
}

// Decode unmarshals a JSON result into T
func Decode[T any](raw json.RawMessage) (T, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("failed to decode response: %w", err)
	}
	return out, nil
}

// retryLogger forwards go-retryablehttp's leveled logs to zerolog.
// Its per-attempt debug chatter goes to trace.
type retryLogger struct {
	logger zerolog.Logger
}

func (l retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Trace().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn().Fields(keysAndValues).Msg(msg)
}
