package explorer

import (
	"net/http"
	"time"
)

// Defaults applied by NewClient
const (
	DefaultTimeout      = 30 * time.Second
	DefaultPoolSize     = 10
	DefaultPageSize     = 20
	DefaultRetryWaitMin = 1 * time.Second
	DefaultRetryWaitMax = 30 * time.Second
)

// Version is reported in the default User-Agent
const Version = "0.2.0"

// DefaultUserAgent identifies the client to the explorer
const DefaultUserAgent = "Hydrachain Explorer Requester/" + Version

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	urls         URLBuilder
	timeout      time.Duration
	retries      int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	poolSize     int
	pageSize     int
	userAgent    string
	responseHook func(*http.Response)
	httpClient   *http.Client
}

func defaultOptions() clientOptions {
	return clientOptions{
		urls:         DefaultURLs(),
		timeout:      DefaultTimeout,
		retryWaitMin: DefaultRetryWaitMin,
		retryWaitMax: DefaultRetryWaitMax,
		poolSize:     DefaultPoolSize,
		pageSize:     DefaultPageSize,
		userAgent:    DefaultUserAgent,
	}
}

// WithURLs replaces the URL builder, e.g. to target a local mock or another network.
func WithURLs(urls URLBuilder) Option {
	return func(o *clientOptions) {
		if urls != nil {
			o.urls = urls
		}
	}
}

// WithTimeout sets the per-attempt HTTP timeout.
// It is ignored when a custom client is supplied with WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithRetries sets how many times the transport retries connection errors, 429 and 5xx responses.
// The default is 0: no retries.
func WithRetries(retries int) Option {
	return func(o *clientOptions) {
		if retries >= 0 {
			o.retries = retries
		}
	}
}

// WithRetryWait bounds the exponential backoff between retries.
func WithRetryWait(minWait, maxWait time.Duration) Option {
	return func(o *clientOptions) {
		if minWait > 0 && maxWait >= minWait {
			o.retryWaitMin = minWait
			o.retryWaitMax = maxWait
		}
	}
}

// WithPoolSize sets how many idle connections per host are kept for reuse.
func WithPoolSize(size int) Option {
	return func(o *clientOptions) {
		if size > 0 {
			o.poolSize = size
		}
	}
}

// WithPageSize sets the page size used by the iterators.
func WithPageSize(size int) Option {
	return func(o *clientOptions) {
		if size > 0 {
			o.pageSize = size
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

// WithResponseHook registers a function called with every response received,
// retried attempts included. The hook must not consume the body.
func WithResponseHook(hook func(*http.Response)) Option {
	return func(o *clientOptions) {
		o.responseHook = hook
	}
}

// WithHTTPClient replaces the underlying HTTP client.
// The client must be safe for concurrent use if the explorer Client is shared.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}
