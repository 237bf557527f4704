package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ItsGosho/hydrachain-explorer-requester/params"
)

// newTestClient starts a server and a client whose every endpoint points at it
func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]Option{WithURLs(NewURLs(server.URL, "/7001"))}, opts...)
	return NewClient(zerolog.Nop(), opts...), server
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write([]byte(body))
}

func TestNewClient(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		client := NewClient(zerolog.Nop())
		assert.Equal(t, DefaultURLs(), client.URLs())
		assert.Equal(t, DefaultPageSize, client.PageSize())
		assert.Equal(t, DefaultUserAgent, client.userAgent)
		assert.Equal(t, DefaultTimeout, client.http.HTTPClient.Timeout)
		assert.Equal(t, 0, client.http.RetryMax)
	})

	t.Run("with options", func(t *testing.T) {
		client := NewClient(zerolog.Nop(),
			WithTimeout(500*time.Millisecond),
			WithRetries(3),
			WithPoolSize(4),
			WithPageSize(50),
			WithUserAgent("test-agent"),
		)
		assert.Equal(t, 500*time.Millisecond, client.http.HTTPClient.Timeout)
		assert.Equal(t, 3, client.http.RetryMax)
		assert.Equal(t, 50, client.PageSize())
		assert.Equal(t, "test-agent", client.userAgent)

		transport, ok := client.http.HTTPClient.Transport.(*http.Transport)
		require.True(t, ok)
		assert.Equal(t, 4, transport.MaxIdleConnsPerHost)
	})

	t.Run("with custom http client", func(t *testing.T) {
		custom := &http.Client{Timeout: 10 * time.Second}
		client := NewClient(zerolog.Nop(), WithHTTPClient(custom), WithTimeout(time.Second))
		assert.Same(t, custom, client.http.HTTPClient)
		assert.Equal(t, 10*time.Second, client.http.HTTPClient.Timeout)
	})

	t.Run("invalid values keep defaults", func(t *testing.T) {
		client := NewClient(zerolog.Nop(), WithRetries(-1), WithPageSize(0), WithTimeout(-time.Second), WithURLs(nil))
		assert.Equal(t, 0, client.http.RetryMax)
		assert.Equal(t, DefaultPageSize, client.PageSize())
		assert.Equal(t, DefaultTimeout, client.http.HTTPClient.Timeout)
		assert.Equal(t, DefaultURLs(), client.URLs())
	})
}

func TestClientJSONResponse(t *testing.T) {
	body := `{"hash":"abc","height":156,"transactions":["t1","t2"]}`
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/7001/block/156", r.URL.Path)
		assert.Equal(t, DefaultUserAgent, r.UserAgent())
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		writeJSON(w, body)
	})

	raw, err := client.BlockByHeight(context.Background(), 156)
	require.NoError(t, err)
	assert.JSONEq(t, body, string(raw))

	block, err := Decode[map[string]any](raw)
	require.NoError(t, err)
	assert.Equal(t, "abc", block["hash"])
	assert.Equal(t, float64(156), block["height"])
}

func TestClientScalarJSONResponse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `42`)
	})

	raw, err := client.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage(`42`), raw)
}

func TestClientUnexpectedStatus(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		notFound    bool
		serverError bool
	}{
		{"not found", http.StatusNotFound, true, false},
		{"bad request", http.StatusBadRequest, false, false},
		{"internal error", http.StatusInternalServerError, false, true},
		{"no content", http.StatusNoContent, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				if tt.status != http.StatusNoContent {
					w.Write([]byte(`{"error":"boom"}`))
				}
			})

			_, err := client.Transaction(context.Background(), "abc")
			require.Error(t, err)

			var statusErr *UnexpectedStatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.status, statusErr.StatusCode)
			assert.Equal(t, http.MethodGet, statusErr.Method)
			assert.Equal(t, server.URL+"/7001/tx/abc", statusErr.URL)
			assert.Equal(t, tt.notFound, statusErr.IsNotFound())
			assert.Equal(t, tt.serverError, statusErr.IsServerError())
			if tt.status != http.StatusNoContent {
				assert.Equal(t, `{"error":"boom"}`, statusErr.Body)
			}
		})
	}
}

func TestClientRedirectIsUnexpected(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/7001/info" {
			http.Redirect(w, r, "/elsewhere", http.StatusMovedPermanently)
			return
		}
		writeJSON(w, `{}`)
	})

	_, err := client.Info(context.Background())

	var statusErr *UnexpectedStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusMovedPermanently, statusErr.StatusCode)
}

func TestClientUnexpectedContentType(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html></html>"))
	})

	_, err := client.Address(context.Background(), "Hx")
	require.Error(t, err)

	var typeErr *UnexpectedContentTypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, "text/html", typeErr.ContentType)
	assert.Equal(t, http.StatusOK, typeErr.StatusCode)
	assert.Equal(t, "<html></html>", typeErr.Body)
	assert.Contains(t, typeErr.Error(), "unexpected content type")
}

func TestClientInvalidJSON(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"unterminated"`)
	})

	_, err := client.Info(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestClientTextEndpointsSkipContentType(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		switch r.URL.Path {
		case "/7001/address/Hx/balance/":
			w.Write([]byte("1234567890"))
		case "/7001/address/Hx/balance/staking":
			w.Write([]byte("50000000"))
		case "/7001/raw-tx/abc":
			w.Write([]byte("0200000001"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	balance, err := client.AddressBalance(ctx, "Hx", BalanceTotal)
	require.NoError(t, err)
	assert.Equal(t, "1234567890", balance)

	amount, err := client.AddressBalanceAmount(ctx, "Hx", BalanceStaking)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.5").Equal(amount), amount.String())

	raw, err := client.RawTransaction(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "0200000001", raw)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"1234567890", "12.3456789", false},
		{" 100000000\n", "1", false},
		{`"250000000"`, "2.5", false},
		{"0", "0", false},
		{"abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), got.String())
		})
	}
}

func TestClientQueryParameters(t *testing.T) {
	var got url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/7001/address/Hx/txs", r.URL.Path)
		got = r.URL.Query()
		writeJSON(w, `{"totalCount":0,"transactions":[]}`)
	})

	_, err := client.AddressTransactions(context.Background(), "Hx", TxsAll, "", params.Transactions{
		Pagination: params.Pagination{
			Page: params.Set(0), PageSize: params.Set(3),
			Limit: params.Set(100), Offset: params.Set(0),
		},
		Blocks: params.BlockRange{FromBlock: params.Set(int64(555555)), ToBlock: params.Set(int64(666666))},
	})
	require.NoError(t, err)
	assert.Equal(t, url.Values{
		"page":      {"0"},
		"pageSize":  {"3"},
		"fromBlock": {"555555"},
		"toBlock":   {"666666"},
	}, got)
}

func TestClientNoQueryWhenNothingSet(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		writeJSON(w, `{"tokens":[]}`)
	})

	_, err := client.Tokens(context.Background(), params.Pagination{Limit: params.Set(5)})
	require.NoError(t, err)
}

func TestClientRetries(t *testing.T) {
	t.Run("no retries by default", func(t *testing.T) {
		var attempts atomic.Int32
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			attempts.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := client.Info(context.Background())

		var statusErr *UnexpectedStatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
		assert.Equal(t, int32(1), attempts.Load())
	})

	t.Run("configured retries recover", func(t *testing.T) {
		var attempts atomic.Int32
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if attempts.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			writeJSON(w, `{"ok":true}`)
		}, WithRetries(2), WithRetryWait(time.Millisecond, 2*time.Millisecond))

		raw, err := client.Info(context.Background())
		require.NoError(t, err)
		assert.JSONEq(t, `{"ok":true}`, string(raw))
		assert.Equal(t, int32(3), attempts.Load())
	})

	t.Run("exhausted retries report the last status", func(t *testing.T) {
		var attempts atomic.Int32
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			attempts.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}, WithRetries(1), WithRetryWait(time.Millisecond, 2*time.Millisecond))

		_, err := client.Info(context.Background())

		var statusErr *UnexpectedStatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
		assert.Equal(t, int32(2), attempts.Load())
	})
}

func TestClientResponseHook(t *testing.T) {
	var statuses []int
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{}`)
	}, WithResponseHook(func(resp *http.Response) {
		statuses = append(statuses, resp.StatusCode)
	}))

	_, err := client.Info(context.Background())
	require.NoError(t, err)
	_, err = client.RecentTransactions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{http.StatusOK, http.StatusOK}, statuses)
}

func TestClientTransportErrorIsNotWrapped(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	serverURL := server.URL
	server.Close()

	client := NewClient(zerolog.Nop(), WithURLs(NewURLs(serverURL, "/7001")))
	_, err := client.Info(context.Background())
	require.Error(t, err)

	var urlErr *url.Error
	assert.True(t, errors.As(err, &urlErr))

	var statusErr *UnexpectedStatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestClientContextCancelled(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Info(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClientCustomURLBuilder(t *testing.T) {
	mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/address/Hx", r.URL.Path)
		writeJSON(w, `{"source":"mock"}`)
	}))
	defer mock.Close()

	client := NewClient(zerolog.Nop(), WithURLs(localTransactions{
		URLs:   NewURLs("http://127.0.0.1:1", "/7001"),
		target: mock.URL,
	}))

	raw, err := client.AddressTransactions(context.Background(), "Hx", TxsAll, "", params.Transactions{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"source":"mock"}`, string(raw))
}

func TestBuildURLKeepsExistingQuery(t *testing.T) {
	got, err := buildURL("http://localhost/search?network=test", params.Search{Query: params.Set("a b")})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost/search?network=test&query=a+b", got)

	got, err = buildURL("http://localhost/info", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost/info", got)
}

func TestDecode(t *testing.T) {
	type block struct {
		Height int64  `json:"height"`
		Hash   string `json:"hash"`
	}

	b, err := Decode[block](json.RawMessage(`{"height":5,"hash":"h"}`))
	require.NoError(t, err)
	assert.Equal(t, block{Height: 5, Hash: "h"}, b)

	_, err = Decode[block](json.RawMessage(`[1,2]`))
	require.Error(t, err)
}
