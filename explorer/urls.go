package explorer

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// DefaultDomain is the public Hydrachain explorer
	DefaultDomain = "https://explorer.hydrachain.org"
	// DefaultBasePath is the API prefix of the mainnet explorer
	DefaultBasePath = "/7001"
)

// URLBuilder produces the URL of every explorer endpoint. Supply another
// implementation with WithURLs to route some or all endpoints elsewhere; the
// usual way is to embed URLs and redefine the methods that should change.
type URLBuilder interface {
	Search() string
	Info() string
	Block(value string) string
	Blocks() string
	RecentBlocks() string
	RecentTxs() string

	Address(address string) string
	AddressUTXO(address string) string
	AddressBalance(address string, category AddressBalanceCategory) string
	AddressBalanceHistory(address string) string
	AddressQRC20BalanceHistory(address, token string) string
	AddressTransactions(address string, variant TransactionVariant, target string) string

	Contract(contract string) string
	ContractTransactions(contract string, variant TransactionVariant) string
	CallContract(contract string) string

	Transaction(id string) string
	RawTransaction(id string) string
	Transactions(ids []string) string

	Tokens() string
	RichList() string
	BiggestMiners() string
	DailyTransactions() string
	BlockInterval() string
	AddressGrowth() string
	SearchLogs() string
}

// URLs is the default URLBuilder: every endpoint lives under Domain+BasePath
type URLs struct {
	Domain   string
	BasePath string
}

var _ URLBuilder = URLs{}

// NewURLs creates a URL builder for the given domain and base path
func NewURLs(domain, basePath string) URLs {
	return URLs{
		Domain:   strings.TrimRight(domain, "/"),
		BasePath: normalizeBasePath(basePath),
	}
}

// DefaultURLs targets the public explorer
func DefaultURLs() URLs {
	return NewURLs(DefaultDomain, DefaultBasePath)
}

func normalizeBasePath(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

// join appends already escaped segments to the API root
func (u URLs) join(segments ...string) string {
	return u.Domain + u.BasePath + "/" + strings.Join(segments, "/")
}

func esc(s string) string {
	return url.PathEscape(s)
}

func (u URLs) Search() string        { return u.join("search") }
func (u URLs) Info() string          { return u.join("info") }
func (u URLs) Blocks() string        { return u.join("blocks") }
func (u URLs) RecentBlocks() string  { return u.join("recent-blocks") }
func (u URLs) RecentTxs() string     { return u.join("recent-txs") }
func (u URLs) Tokens() string        { return u.join("qrc20") }
func (u URLs) RichList() string      { return u.join("misc", "rich-list") }
func (u URLs) BiggestMiners() string { return u.join("misc", "biggest-miners") }
func (u URLs) SearchLogs() string    { return u.join("searchlogs") }

func (u URLs) DailyTransactions() string { return u.join("stats", "daily-transactions") }
func (u URLs) BlockInterval() string     { return u.join("stats", "block-interval") }
func (u URLs) AddressGrowth() string     { return u.join("stats", "address-growth") }

// Block accepts a height or a block hash
func (u URLs) Block(value string) string {
	return u.join("block", esc(value))
}

func (u URLs) Address(address string) string {
	return u.join("address", esc(address))
}

func (u URLs) AddressUTXO(address string) string {
	return u.join("address", esc(address), "utxo")
}

// AddressBalance always ends with the category segment, which is empty for the plain balance
func (u URLs) AddressBalance(address string, category AddressBalanceCategory) string {
	return u.join("address", esc(address), "balance", esc(string(category)))
}

func (u URLs) AddressBalanceHistory(address string) string {
	return u.join("address", esc(address), "balance-history")
}

// AddressQRC20BalanceHistory narrows the history to one token when token is not empty
func (u URLs) AddressQRC20BalanceHistory(address, token string) string {
	if token == "" {
		return u.join("address", esc(address), "qrc20-balance-history")
	}
	return u.join("address", esc(address), "qrc20-balance-history", esc(token))
}

// AddressTransactions appends target for the contract and token variants when it is not empty
func (u URLs) AddressTransactions(address string, variant TransactionVariant, target string) string {
	if variant == "" {
		variant = TxsAll
	}
	if target != "" && variant.AcceptsTarget() {
		return u.join("address", esc(address), string(variant), esc(target))
	}
	return u.join("address", esc(address), string(variant))
}

func (u URLs) Contract(contract string) string {
	return u.join("contract", esc(contract))
}

func (u URLs) ContractTransactions(contract string, variant TransactionVariant) string {
	if variant == "" {
		variant = TxsAll
	}
	return u.join("contract", esc(contract), string(variant))
}

func (u URLs) CallContract(contract string) string {
	return u.join("contract", esc(contract), "call")
}

func (u URLs) Transaction(id string) string {
	return u.join("tx", esc(id))
}

func (u URLs) RawTransaction(id string) string {
	return u.join("raw-tx", esc(id))
}

// Transactions escapes each id on its own and joins them with literal commas
func (u URLs) Transactions(ids []string) string {
	escaped := make([]string, len(ids))
	for i, id := range ids {
		escaped[i] = esc(id)
	}
	return u.join("txs", strings.Join(escaped, ","))
}

// String describes the API root
func (u URLs) String() string {
	return fmt.Sprintf("%s%s", u.Domain, u.BasePath)
}
