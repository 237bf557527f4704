package explorer

import (
	"fmt"
	"strings"
)

// AddressBalanceCategory selects which balance figure the balance endpoint returns
type AddressBalanceCategory string

const (
	// BalanceTotal is the current spendable balance
	BalanceTotal AddressBalanceCategory = ""
	// BalanceTotalReceived sums every output ever received
	BalanceTotalReceived AddressBalanceCategory = "total-received"
	// BalanceTotalSent sums every output ever spent
	BalanceTotalSent AddressBalanceCategory = "total-sent"
	// BalanceUnconfirmed is the balance of mempool transactions
	BalanceUnconfirmed AddressBalanceCategory = "unconfirmed"
	// BalanceStaking is the balance locked in immature stakes
	BalanceStaking AddressBalanceCategory = "staking"
	// BalanceMature is the balance of matured coinstakes
	BalanceMature AddressBalanceCategory = "mature"
)

// AddressBalanceCategories lists every known category
var AddressBalanceCategories = []AddressBalanceCategory{
	BalanceTotal,
	BalanceTotalReceived,
	BalanceTotalSent,
	BalanceUnconfirmed,
	BalanceStaking,
	BalanceMature,
}

// ParseAddressBalanceCategory validates a category name
func ParseAddressBalanceCategory(s string) (AddressBalanceCategory, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range AddressBalanceCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown balance category: %s", s)
}

// String returns the path segment of the category
func (c AddressBalanceCategory) String() string {
	return string(c)
}

// TransactionVariant selects one of the transaction listings of an address or contract
type TransactionVariant string

const (
	// TxsAll lists every transaction
	TxsAll TransactionVariant = "txs"
	// TxsBasic lists transactions without contract interaction
	TxsBasic TransactionVariant = "basic-txs"
	// TxsContract lists contract transactions, optionally for one contract
	TxsContract TransactionVariant = "contract-txs"
	// TxsQRC20 lists token transfers, optionally for one token
	TxsQRC20 TransactionVariant = "qrc20-txs"
)

// ParseTransactionVariant accepts both the path form ("basic-txs") and the short form ("basic")
func ParseTransactionVariant(s string) (TransactionVariant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "txs":
		return TxsAll, nil
	case "basic", "basic-txs":
		return TxsBasic, nil
	case "contract", "contract-txs":
		return TxsContract, nil
	case "qrc20", "qrc20-txs":
		return TxsQRC20, nil
	default:
		return "", fmt.Errorf("unknown transaction variant: %s", s)
	}
}

// AcceptsTarget reports whether the variant takes a trailing contract or token segment
func (v TransactionVariant) AcceptsTarget() bool {
	return v == TxsContract || v == TxsQRC20
}

// Data fields of the paged list endpoints
const (
	FieldTransactions = "transactions"
	FieldTokens       = "tokens"
	FieldList         = "list"
	FieldLogs         = "logs"
)
