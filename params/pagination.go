package params

import "net/url"

// Wire names of the pagination parameters
const (
	NamePage     = "page"
	NamePageSize = "pageSize"
	NameLimit    = "limit"
	NameOffset   = "offset"
	NameFrom     = "from"
	NameTo       = "to"
)

// Pagination holds the three mutually exclusive paging styles supported by
// the explorer. A style only counts when both of its members are set.
// When several are complete, page/pageSize wins over limit/offset, which wins
// over from/to; the others are dropped.
type Pagination struct {
	Page     Param[int]
	PageSize Param[int]
	Limit    Param[int]
	Offset   Param[int]
	From     Param[int]
	To       Param[int]
}

// Paged returns a Pagination requesting one page
func Paged(page, pageSize int) Pagination {
	return Pagination{Page: Set(page), PageSize: Set(pageSize)}
}

// Window returns a Pagination using limit/offset
func Window(limit, offset int) Pagination {
	return Pagination{Limit: Set(limit), Offset: Set(offset)}
}

// Range returns a Pagination using from/to
func Range(from, to int) Pagination {
	return Pagination{From: Set(from), To: Set(to)}
}

// IsPageSet reports whether both page and pageSize are set
func (p Pagination) IsPageSet() bool {
	return p.Page.IsSet() && p.PageSize.IsSet()
}

// IsLimitOffsetSet reports whether both limit and offset are set
func (p Pagination) IsLimitOffsetSet() bool {
	return p.Limit.IsSet() && p.Offset.IsSet()
}

// IsFromToSet reports whether both from and to are set
func (p Pagination) IsFromToSet() bool {
	return p.From.IsSet() && p.To.IsSet()
}

// IsEmpty reports whether no complete paging style is set
func (p Pagination) IsEmpty() bool {
	return !p.IsPageSet() && !p.IsLimitOffsetSet() && !p.IsFromToSet()
}

// Values resolves the active paging style. An empty result leaves paging to
// the server defaults.
func (p Pagination) Values() (url.Values, error) {
	values := url.Values{}

	switch {
	case p.IsPageSet():
		p.Page.pair(values, NamePage)
		p.PageSize.pair(values, NamePageSize)
	case p.IsLimitOffsetSet():
		p.Limit.pair(values, NameLimit)
		p.Offset.pair(values, NameOffset)
	case p.IsFromToSet():
		p.From.pair(values, NameFrom)
		p.To.pair(values, NameTo)
	}

	return values, nil
}
