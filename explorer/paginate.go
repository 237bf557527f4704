package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"

	"github.com/ItsGosho/hydrachain-explorer-requester/params"
)

// PageCursor identifies one page of a paged endpoint
type PageCursor struct {
	Page     int
	PageSize int
}

// PageFetcher fetches the page described by cursor
type PageFetcher func(ctx context.Context, cursor PageCursor) (json.RawMessage, error)

// Paginate walks a paged endpoint from page 0 and yields the elements of the
// field list of every page, decoded as T. Pages are fetched one at a time and
// only when the consumer asks for more items; the walk ends at the first page
// whose list is empty. There is no page limit.
//
// Errors are yielded once and end the sequence. A page without field yields
// ErrMissingDataField. Every range over the returned sequence starts again at
// page 0.
func Paginate[T any](ctx context.Context, field string, pageSize int, fetch PageFetcher) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		if pageSize <= 0 {
			yield(zero, fmt.Errorf("%w: %d", ErrInvalidPageSize, pageSize))
			return
		}

		cursor := PageCursor{Page: 0, PageSize: pageSize}
		for {
			if err := ctx.Err(); err != nil {
				yield(zero, err)
				return
			}

			raw, err := fetch(ctx, cursor)
			if err != nil {
				yield(zero, err)
				return
			}

			items, err := pageItems[T](raw, field)
			if err != nil {
				yield(zero, fmt.Errorf("page %d: %w", cursor.Page, err))
				return
			}

			if len(items) == 0 {
				return
			}

			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}

			cursor.Page++
		}
	}
}

// pageItems extracts and decodes the list stored under field
func pageItems[T any](raw json.RawMessage, field string) ([]T, error) {
	var page map[string]json.RawMessage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("failed to decode page: %w", err)
	}

	data, ok := page[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingDataField, field)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %q items: %w", field, err)
	}

	return items, nil
}

// paginate drives fetch with the client's page size and logs page progress
func (c *Client) paginate(ctx context.Context, field string, fetch PageFetcher) iter.Seq2[json.RawMessage, error] {
	logged := func(ctx context.Context, cursor PageCursor) (json.RawMessage, error) {
		c.logger.Debug().
			Int("page", cursor.Page).
			Int("page_size", cursor.PageSize).
			Str("field", field).
			Msg("Fetching explorer page")
		return fetch(ctx, cursor)
	}
	return Paginate[json.RawMessage](ctx, field, c.pageSize, logged)
}

// AddressTransactionsIter iterates over every transaction of an address.
// The block range and ordering of p apply to each page; its pagination is replaced.
func (c *Client) AddressTransactionsIter(ctx context.Context, address string, variant TransactionVariant, target string, p params.Transactions) iter.Seq2[json.RawMessage, error] {
	return c.paginate(ctx, FieldTransactions, func(ctx context.Context, cursor PageCursor) (json.RawMessage, error) {
		q := p
		q.Pagination = params.Paged(cursor.Page, cursor.PageSize)
		return c.AddressTransactions(ctx, address, variant, target, q)
	})
}

// ContractTransactionsIter iterates over every transaction of a contract
func (c *Client) ContractTransactionsIter(ctx context.Context, contract string, variant TransactionVariant, p params.Transactions) iter.Seq2[json.RawMessage, error] {
	return c.paginate(ctx, FieldTransactions, func(ctx context.Context, cursor PageCursor) (json.RawMessage, error) {
		q := p
		q.Pagination = params.Paged(cursor.Page, cursor.PageSize)
		return c.ContractTransactions(ctx, contract, variant, q)
	})
}

// AddressBalanceHistoryIter iterates over the balance changes of an address
func (c *Client) AddressBalanceHistoryIter(ctx context.Context, address string, p params.BalanceHistory) iter.Seq2[json.RawMessage, error] {
	return c.paginate(ctx, FieldTransactions, func(ctx context.Context, cursor PageCursor) (json.RawMessage, error) {
		q := p
		q.Pagination = params.Paged(cursor.Page, cursor.PageSize)
		return c.AddressBalanceHistory(ctx, address, q)
	})
}

// TokensIter iterates over every QRC20 token
func (c *Client) TokensIter(ctx context.Context) iter.Seq2[json.RawMessage, error] {
	return c.paginate(ctx, FieldTokens, func(ctx context.Context, cursor PageCursor) (json.RawMessage, error) {
		return c.Tokens(ctx, params.Paged(cursor.Page, cursor.PageSize))
	})
}

// RichListIter iterates over the rich list
func (c *Client) RichListIter(ctx context.Context) iter.Seq2[json.RawMessage, error] {
	return c.paginate(ctx, FieldList, func(ctx context.Context, cursor PageCursor) (json.RawMessage, error) {
		return c.RichList(ctx, params.Paged(cursor.Page, cursor.PageSize))
	})
}

// BiggestMinersIter iterates over the biggest miners
func (c *Client) BiggestMinersIter(ctx context.Context) iter.Seq2[json.RawMessage, error] {
	return c.paginate(ctx, FieldList, func(ctx context.Context, cursor PageCursor) (json.RawMessage, error) {
		return c.BiggestMiners(ctx, params.Paged(cursor.Page, cursor.PageSize))
	})
}

// SearchLogsIter iterates over every matching event log
func (c *Client) SearchLogsIter(ctx context.Context, p params.SearchLogs) iter.Seq2[json.RawMessage, error] {
	return c.paginate(ctx, FieldLogs, func(ctx context.Context, cursor PageCursor) (json.RawMessage, error) {
		q := p
		q.Pagination = params.Paged(cursor.Page, cursor.PageSize)
		return c.SearchLogs(ctx, q)
	})
}
