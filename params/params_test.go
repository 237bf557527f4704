package params

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParam(t *testing.T) {
	t.Run("unset is omitted", func(t *testing.T) {
		var p Param[int]
		assert.False(t, p.IsSet())
		assert.True(t, p.IsZero())

		values := url.Values{}
		require.NoError(t, p.EncodeValues("count", &values))
		assert.Empty(t, values)
	})

	t.Run("set zero is serialized", func(t *testing.T) {
		p := Set(0)
		v, ok := p.Get()
		assert.True(t, ok)
		assert.Equal(t, 0, v)

		values := url.Values{}
		require.NoError(t, p.EncodeValues("count", &values))
		assert.Equal(t, url.Values{"count": {"0"}}, values)
	})

	t.Run("set empty string is serialized", func(t *testing.T) {
		values := url.Values{}
		require.NoError(t, Set("").EncodeValues("sender", &values))
		assert.Equal(t, url.Values{"sender": {""}}, values)
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"string", "abc", "abc"},
		{"int", 42, "42"},
		{"int64", int64(1234567890123), "1234567890123"},
		{"bool", true, "true"},
		{"date", NewDate(2020, time.February, 3), "2020-02-03"},
		{"timestamp", time.Date(2021, 5, 6, 7, 8, 9, 0, time.UTC), "2021-05-06T07:08:09Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, format(tt.value))
		})
	}
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2020-02-03")
	require.NoError(t, err)
	assert.Equal(t, "2020-02-03", d.String())
	assert.Equal(t, d, DateOf(time.Date(2020, 2, 3, 22, 15, 0, 0, time.UTC)))

	_, err = ParseDate("03 February 2020")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
}

func TestPaginationValues(t *testing.T) {
	tests := []struct {
		name       string
		pagination Pagination
		expected   url.Values
	}{
		{
			name:       "nothing set",
			pagination: Pagination{},
			expected:   url.Values{},
		},
		{
			name:       "page and page size",
			pagination: Paged(0, 3),
			expected:   url.Values{"page": {"0"}, "pageSize": {"3"}},
		},
		{
			name: "page beats every other group",
			pagination: Pagination{
				Page: Set(2), PageSize: Set(10),
				Limit: Set(5), Offset: Set(15),
				From: Set(1), To: Set(9),
			},
			expected: url.Values{"page": {"2"}, "pageSize": {"10"}},
		},
		{
			name: "limit offset beats from to",
			pagination: Pagination{
				Limit: Set(5), Offset: Set(15),
				From: Set(1), To: Set(9),
			},
			expected: url.Values{"limit": {"5"}, "offset": {"15"}},
		},
		{
			name:       "from to alone",
			pagination: Range(1, 9),
			expected:   url.Values{"from": {"1"}, "to": {"9"}},
		},
		{
			name:       "only limit is treated as unset",
			pagination: Pagination{Limit: Set(5)},
			expected:   url.Values{},
		},
		{
			name: "incomplete page falls through to complete window",
			pagination: Pagination{
				Page:  Set(1),
				Limit: Set(5), Offset: Set(0),
			},
			expected: url.Values{"limit": {"5"}, "offset": {"0"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := tt.pagination.Values()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, values)
		})
	}
}

func TestPaginationIsEmpty(t *testing.T) {
	assert.True(t, Pagination{}.IsEmpty())
	assert.True(t, Pagination{PageSize: Set(3)}.IsEmpty())
	assert.False(t, Window(10, 0).IsEmpty())
}

func TestTransactionsValues(t *testing.T) {
	p := Transactions{
		Pagination: Paged(0, 3),
		Blocks: BlockRange{
			FromBlock: Set(int64(555555)),
			ToBlock:   Set(int64(666666)),
		},
		Reversed: Set(false),
	}

	values, err := p.Values()
	require.NoError(t, err)
	assert.Equal(t, url.Values{
		"page":      {"0"},
		"pageSize":  {"3"},
		"fromBlock": {"555555"},
		"toBlock":   {"666666"},
		"reversed":  {"false"},
	}, values)
}

func TestSearchLogsValues(t *testing.T) {
	from := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	p := SearchLogs{
		Pagination: Window(20, 40),
		Blocks:     BlockRange{FromTime: Set(from)},
		Contract:   Set("4ab26aaa1803daa638910d71075c06386e391147"),
		Topic1:     Set("ddf252ad"),
		Topic3:     Set(""),
	}

	values, err := p.Values()
	require.NoError(t, err)
	assert.Equal(t, url.Values{
		"limit":    {"20"},
		"offset":   {"40"},
		"fromTime": {"2023-01-01T00:00:00Z"},
		"contract": {"4ab26aaa1803daa638910d71075c06386e391147"},
		"topic1":   {"ddf252ad"},
		"topic3":   {""},
	}, values)
}

func TestSimpleParameterSets(t *testing.T) {
	tests := []struct {
		name     string
		params   Encoder
		expected url.Values
	}{
		{"empty search", Search{}, url.Values{}},
		{"search", Search{Query: Set("LockTrip")}, url.Values{"query": {"LockTrip"}}},
		{"blocks", Blocks{Date: Set(NewDate(2020, 2, 3))}, url.Values{"date": {"2020-02-03"}}},
		{"recent blocks", RecentBlocks{Count: Set(5)}, url.Values{"count": {"5"}}},
		{"call contract without sender", CallContract{Data: Set("06fdde03")}, url.Values{"data": {"06fdde03"}}},
		{"balance history", BalanceHistory{Pagination: Paged(1, 20), Reversed: Set(true)},
			url.Values{"page": {"1"}, "pageSize": {"20"}, "reversed": {"true"}}},
		{"none", None{}, url.Values{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := tt.params.Values()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, values)
		})
	}
}

func TestMerge(t *testing.T) {
	dst := url.Values{"a": {"1"}}
	out := Merge(dst, url.Values{"a": {"2"}, "b": {"3"}})
	assert.Equal(t, url.Values{"a": {"2"}, "b": {"3"}}, out)

	assert.Equal(t, url.Values{"x": {"y"}}, Merge(nil, url.Values{"x": {"y"}}))
}
