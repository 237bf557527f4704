package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ItsGosho/hydrachain-explorer-requester/params"
)

// CoinDecimals is the number of decimal places of one HYDRA
const CoinDecimals = 8

// Search looks up a block, transaction, address or contract by free text
func (c *Client) Search(ctx context.Context, query string) (json.RawMessage, error) {
	return c.getJSON(ctx, c.urls.Search(), params.Search{Query: params.Set(query)})
}

// Info returns the current chain summary
func (c *Client) Info(ctx context.Context) (json.RawMessage, error) {
	return c.getJSON(ctx, c.urls.Info(), params.None{})
}

// Block returns a block by height or hash
func (c *Client) Block(ctx context.Context, heightOrHash string) (json.RawMessage, error) {
	return c.getJSON(ctx, c.urls.Block(heightOrHash), params.None{})
}

// BlockByHeight returns the block at height
func (c *Client) BlockByHeight(ctx context.Context, height int64) (json.RawMessage, error) {
	return c.Block(ctx, strconv.FormatInt(height, 10))
}

// Blocks returns the blocks of one day
func (c *Client) Blocks(ctx context.Context, p params.Blocks) (json.RawMessage, error) {
	return c.getJSON(ctx, c.urls.Blocks(), p)
}

// RecentBlocks returns the latest blocks
func (c *Client) RecentBlocks(ctx context.Context, p params.RecentBlocks) (json.RawMessage, error) {
	return c.getJSON(ctx, c.urls.RecentBlocks(), p)
}

// RecentTransactions returns the latest transactions
func (c *Client) RecentTransactions(ctx context.Context) (json.RawMessage, error) {
	return c.getJSON(ctx, c.urls.RecentTxs(), params.None{})
}

// Address returns the summary of an address
func (c *Client) Address(ctx context.Context, address string) (json.RawMessage, error) {
	return c.getJSON(ctx, c.urls.Address(address), params.None{})
}

// AddressUTXO returns the unspent outputs of an address
func (c *Client) AddressUTXO(ctx context.Context, address string) (json.RawMessage, error) {
	return c.getJSON(ctx, c.urls.AddressUTXO(address), params.None{})
}

// AddressBalance returns one balance figure of an address as plain text, in satoshis
func (c *Client) AddressBalance(ctx context.Context, address string, category AddressBalanceCategory) (string, error) {
	return c.getText(ctx, c.urls.AddressBalance(address, category), params.None{})
}

// AddressBalanceAmount returns one balance figure of an address in HYDRA
func (c *Client) AddressBalanceAmount(ctx context.Context, address string, category AddressBalanceCategory) (decimal.Decimal, error) {
	text, err := c.AddressBalance(ctx, address, category)
	if err != nil {
		return decimal.Zero, err
	}
	return ParseAmount(text)
}

// ParseAmount converts a satoshi amount as returned by the explorer to HYDRA
func ParseAmount(text string) (decimal.Decimal, error) {
	satoshis, err := decimal.NewFromString(strings.Trim(strings.TrimSpace(text), `"`))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", text, err)
	}
	return satoshis.Shift(-CoinDecimals), nil
}

// AddressBalanceHistory returns one page of balance changes of an address
func (c *Client) AddressBalanceHistory(ctx context.Context, address string, p params.BalanceHistory) (json.RawMessage, error) {
	return c.getJSON(ctx, c.urls.AddressBalanceHistory(address), p)
}

// AddressQRC20BalanceHistory returns one page of token balance changes, for every token when token is empty
func (c *Client) AddressQRC20BalanceHistory(ctx context.Context, address, token string, p params.BalanceHistory) (json.RawMessage, error) {
	return c.getJSON(ctx, c.urls.AddressQRC20BalanceHistory(address, token), p)
}

// AddressTransactions returns one page of an address transaction listing.
// target narrows the contract and QRC20 variants to one contract or token.
func (c *Client) AddressTransactions(ctx context.Context, address string, variant TransactionVariant, target string, p params.Transactions) (json.RawMessage, error) {
	return c.getJSON(ctx, c.urls.AddressTransactions(address, variant, target), p)
}

// Contract returns the summary of a contract
func (c *Client) Contract(ctx context.Context, contract string) (json.RawMessage, error) {
	return c.getJSON(ctx, c.urls.Contract(contract), params.None{})
}

// ContractTransactions returns one page of a contract transaction listing
func (c *Client) ContractTransactions(ctx context.Context, contract string, variant TransactionVariant, p params.Transactions) (json.RawMessage, error) {
	return c.getJSON(ctx, c.urls.ContractTransactions(contract, variant), p)
}

// CallContract executes a read-only contract call
func (c *Client) CallContract(ctx context.Context, contract string, p params.CallContract) (json.RawMessage, error) {
	return c.getJSON(ctx, c.urls.CallContract(contract), p)
}

// Transaction returns a transaction by id
func (c *Client) Transaction(ctx context.Context, id string) (json.RawMessage, error) {
	return c.getJSON(ctx, c.urls.Transaction(id), params.None{})
}

// RawTransaction returns the hex serialized transaction as plain text
func (c *Client) RawTransaction(ctx context.Context, id string) (string, error) {
	return c.getText(ctx, c.urls.RawTransaction(id), params.None{})
}

// Transactions returns several transactions in one request
func (c *Client) Transactions(ctx context.Context, ids []string) (json.RawMessage, error) {
	if len(ids) == 0 {
		return nil, ErrNoTransactions
	}
	return c.getJSON(ctx, c.urls.Transactions(ids), params.None{})
}

// Tokens returns one page of QRC20 tokens
func (c *Client) Tokens(ctx context.Context, p params.Pagination) (json.RawMessage, error) {
	return c.getJSON(ctx, c.urls.Tokens(), p)
}

// RichList returns one page of the richest addresses
func (c *Client) RichList(ctx context.Context, p params.Pagination) (json.RawMessage, error) {
	return c.getJSON(ctx, c.urls.RichList(), p)
}

// BiggestMiners returns one page of the addresses with the most mined blocks
func (c *Client) BiggestMiners(ctx context.Context, p params.Pagination) (json.RawMessage, error) {
	return c.getJSON(ctx, c.urls.BiggestMiners(), p)
}

// DailyTransactions returns the transaction count per day
func (c *Client) DailyTransactions(ctx context.Context) (json.RawMessage, error) {
	return c.getJSON(ctx, c.urls.DailyTransactions(), params.None{})
}

// BlockInterval returns the distribution of block intervals
func (c *Client) BlockInterval(ctx context.Context) (json.RawMessage, error) {
	return c.getJSON(ctx, c.urls.BlockInterval(), params.None{})
}

// AddressGrowth returns the address count per day
func (c *Client) AddressGrowth(ctx context.Context) (json.RawMessage, error) {
	return c.getJSON(ctx, c.urls.AddressGrowth(), params.None{})
}

// SearchLogs returns one page of event logs matching p
func (c *Client) SearchLogs(ctx context.Context, p params.SearchLogs) (json.RawMessage, error) {
	return c.getJSON(ctx, c.urls.SearchLogs(), p)
}
