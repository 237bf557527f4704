package explorer

import (
	"context"
	"encoding/json"
	"iter"

	"github.com/shopspring/decimal"

	"github.com/ItsGosho/hydrachain-explorer-requester/params"
)

// API defines the interface for explorer operations
type API interface {
	Search(ctx context.Context, query string) (json.RawMessage, error)
	Info(ctx context.Context) (json.RawMessage, error)

	// Blocks
	Block(ctx context.Context, heightOrHash string) (json.RawMessage, error)
	BlockByHeight(ctx context.Context, height int64) (json.RawMessage, error)
	Blocks(ctx context.Context, p params.Blocks) (json.RawMessage, error)
	RecentBlocks(ctx context.Context, p params.RecentBlocks) (json.RawMessage, error)
	RecentTransactions(ctx context.Context) (json.RawMessage, error)

	// Addresses
	Address(ctx context.Context, address string) (json.RawMessage, error)
	AddressUTXO(ctx context.Context, address string) (json.RawMessage, error)
	AddressBalance(ctx context.Context, address string, category AddressBalanceCategory) (string, error)
	AddressBalanceAmount(ctx context.Context, address string, category AddressBalanceCategory) (decimal.Decimal, error)
	AddressBalanceHistory(ctx context.Context, address string, p params.BalanceHistory) (json.RawMessage, error)
	AddressQRC20BalanceHistory(ctx context.Context, address, token string, p params.BalanceHistory) (json.RawMessage, error)
	AddressTransactions(ctx context.Context, address string, variant TransactionVariant, target string, p params.Transactions) (json.RawMessage, error)

	// Contracts
	Contract(ctx context.Context, contract string) (json.RawMessage, error)
	ContractTransactions(ctx context.Context, contract string, variant TransactionVariant, p params.Transactions) (json.RawMessage, error)
	CallContract(ctx context.Context, contract string, p params.CallContract) (json.RawMessage, error)

	// Transactions
	Transaction(ctx context.Context, id string) (json.RawMessage, error)
	RawTransaction(ctx context.Context, id string) (string, error)
	Transactions(ctx context.Context, ids []string) (json.RawMessage, error)

	// Lists and statistics
	Tokens(ctx context.Context, p params.Pagination) (json.RawMessage, error)
	RichList(ctx context.Context, p params.Pagination) (json.RawMessage, error)
	BiggestMiners(ctx context.Context, p params.Pagination) (json.RawMessage, error)
	DailyTransactions(ctx context.Context) (json.RawMessage, error)
	BlockInterval(ctx context.Context) (json.RawMessage, error)
	AddressGrowth(ctx context.Context) (json.RawMessage, error)
	SearchLogs(ctx context.Context, p params.SearchLogs) (json.RawMessage, error)
}

// Iterators walks the paged endpoints to completion
type Iterators interface {
	AddressTransactionsIter(ctx context.Context, address string, variant TransactionVariant, target string, p params.Transactions) iter.Seq2[json.RawMessage, error]
	ContractTransactionsIter(ctx context.Context, contract string, variant TransactionVariant, p params.Transactions) iter.Seq2[json.RawMessage, error]
	AddressBalanceHistoryIter(ctx context.Context, address string, p params.BalanceHistory) iter.Seq2[json.RawMessage, error]
	TokensIter(ctx context.Context) iter.Seq2[json.RawMessage, error]
	RichListIter(ctx context.Context) iter.Seq2[json.RawMessage, error]
	BiggestMinersIter(ctx context.Context) iter.Seq2[json.RawMessage, error]
	SearchLogsIter(ctx context.Context, p params.SearchLogs) iter.Seq2[json.RawMessage, error]
}

var (
	_ API       = (*Client)(nil)
	_ Iterators = (*Client)(nil)
)
