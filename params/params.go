package params

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/go-querystring/query"
)

// Encoder is implemented by every parameter set accepted by the explorer client
type Encoder interface {
	Values() (url.Values, error)
}

// None is an empty parameter set
type None struct{}

// Values returns an empty mapping
func (None) Values() (url.Values, error) {
	return url.Values{}, nil
}

// Merge copies every key of src into dst, replacing existing keys
func Merge(dst, src url.Values) url.Values {
	if dst == nil {
		dst = url.Values{}
	}
	for k, vs := range src {
		dst[k] = append([]string(nil), vs...)
	}
	return dst
}

// encode runs the flat, tag-driven fields of v through go-querystring
func encode(v any) (url.Values, error) {
	values, err := query.Values(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query parameters: %w", err)
	}
	return values, nil
}

// merged resolves each part and merges the results in order
func merged(parts ...Encoder) (url.Values, error) {
	values := url.Values{}
	for _, part := range parts {
		v, err := part.Values()
		if err != nil {
			return nil, err
		}
		Merge(values, v)
	}
	return values, nil
}

// flat adapts a tag-only struct to Encoder
type flat struct{ v any }

func (f flat) Values() (url.Values, error) {
	return encode(f.v)
}

// Search holds the free-text query of the search endpoint
type Search struct {
	Query Param[string] `url:"query,omitempty"`
}

func (s Search) Values() (url.Values, error) {
	return encode(s)
}

// Blocks selects the blocks mined on a given day
type Blocks struct {
	Date Param[Date] `url:"date,omitempty"`
}

func (b Blocks) Values() (url.Values, error) {
	return encode(b)
}

// RecentBlocks limits the number of recent blocks returned
type RecentBlocks struct {
	Count Param[int] `url:"count,omitempty"`
}

func (r RecentBlocks) Values() (url.Values, error) {
	return encode(r)
}

// CallContract carries the ABI-encoded call data and optional sender
type CallContract struct {
	Data   Param[string] `url:"data,omitempty"`
	Sender Param[string] `url:"sender,omitempty"`
}

func (c CallContract) Values() (url.Values, error) {
	return encode(c)
}

// BlockRange restricts results to a block height or time window
type BlockRange struct {
	FromBlock Param[int64]     `url:"fromBlock,omitempty"`
	ToBlock   Param[int64]     `url:"toBlock,omitempty"`
	FromTime  Param[time.Time] `url:"fromTime,omitempty"`
	ToTime    Param[time.Time] `url:"toTime,omitempty"`
}

func (b BlockRange) Values() (url.Values, error) {
	return encode(b)
}

// Transactions is accepted by the address and contract transaction listings
type Transactions struct {
	Pagination Pagination  `url:"-"`
	Blocks     BlockRange  `url:"-"`
	Reversed   Param[bool] `url:"reversed,omitempty"`
}

func (t Transactions) Values() (url.Values, error) {
	return merged(t.Pagination, t.Blocks, flat{t})
}

// BalanceHistory is accepted by the balance history listings
type BalanceHistory struct {
	Pagination Pagination  `url:"-"`
	Reversed   Param[bool] `url:"reversed,omitempty"`
}

func (b BalanceHistory) Values() (url.Values, error) {
	return merged(b.Pagination, flat{b})
}

// SearchLogs filters event logs by emitting contract and topics
type SearchLogs struct {
	Pagination Pagination    `url:"-"`
	Blocks     BlockRange    `url:"-"`
	Contract   Param[string] `url:"contract,omitempty"`
	Topic1     Param[string] `url:"topic1,omitempty"`
	Topic2     Param[string] `url:"topic2,omitempty"`
	Topic3     Param[string] `url:"topic3,omitempty"`
	Topic4     Param[string] `url:"topic4,omitempty"`
}

func (s SearchLogs) Values() (url.Values, error) {
	return merged(s.Pagination, s.Blocks, flat{s})
}
