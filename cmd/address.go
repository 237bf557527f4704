package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"os"

	"github.com/spf13/cobra"

	"github.com/ItsGosho/hydrachain-explorer-requester/explorer"
	"github.com/ItsGosho/hydrachain-explorer-requester/params"
)

var (
	balanceCategory string
	balanceRaw      bool
	historyToken    string
	historyQRC20    bool
	txsVariant      string
	txsTarget       string
	reversed        bool
)

// addressCmd represents the address command
var addressCmd = &cobra.Command{
	Use:   "address <address>",
	Short: "Show an address summary, or its balance, UTXOs and transactions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := client.Address(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(os.Stdout, raw)
	},
}

var addressBalanceCmd = &cobra.Command{
	Use:   "balance <address>",
	Short: "Show one balance figure of an address in HYDRA",
	Long: `Show one balance figure of an address.

Categories: total (default), total-received, total-sent, unconfirmed, staking, mature.
The explorer answers in satoshis; use --raw to print that value unconverted.`,
	Args: cobra.ExactArgs(1),
	RunE: runAddressBalance,
}

var addressUTXOCmd = &cobra.Command{
	Use:   "utxo <address>",
	Short: "List the unspent outputs of an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := client.AddressUTXO(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(os.Stdout, raw)
	},
}

var addressHistoryCmd = &cobra.Command{
	Use:   "balance-history <address>",
	Short: "List the balance changes of an address",
	Args:  cobra.ExactArgs(1),
}

var addressTxsCmd = &cobra.Command{
	Use:   "txs <address>",
	Short: "List the transactions of an address",
	Long: `List the transactions of an address.

Variants: all (default), basic, contract, qrc20. The contract and qrc20
variants accept --target to narrow the listing to one contract or token.`,
	Args: cobra.ExactArgs(1),
}

func init() {
	addressBalanceCmd.Flags().StringVar(&balanceCategory, "category", "total", "balance category")
	addressBalanceCmd.Flags().BoolVar(&balanceRaw, "raw", false, "print the satoshi value returned by the explorer")

	historyPages := bindPageFlags(addressHistoryCmd)
	addressHistoryCmd.Flags().BoolVar(&historyQRC20, "qrc20", false, "list token balance changes instead")
	addressHistoryCmd.Flags().StringVar(&historyToken, "token", "", "with --qrc20, only this token")
	addressHistoryCmd.Flags().BoolVar(&reversed, "reversed", false, reversedUsage)
	addressHistoryCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runAddressHistory(cmd, args[0], historyPages)
	}

	txsPages := bindPageFlags(addressTxsCmd)
	txsRange := bindBlockRangeFlags(addressTxsCmd)
	addressTxsCmd.Flags().StringVar(&txsVariant, "variant", "all", "transaction listing variant")
	addressTxsCmd.Flags().StringVar(&txsTarget, "target", "", "contract or token for the contract and qrc20 variants")
	addressTxsCmd.Flags().BoolVar(&reversed, "reversed", false, reversedUsage)
	addressTxsCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runAddressTxs(cmd, args[0], txsPages, txsRange)
	}

	addressCmd.AddCommand(addressBalanceCmd, addressUTXOCmd, addressHistoryCmd, addressTxsCmd)
	rootCmd.AddCommand(addressCmd)
}

func runAddressBalance(cmd *cobra.Command, args []string) error {
	category := balanceCategory
	if category == "total" {
		category = ""
	}
	c, err := explorer.ParseAddressBalanceCategory(category)
	if err != nil {
		return err
	}

	if balanceRaw {
		text, err := client.AddressBalance(cmd.Context(), args[0], c)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	}

	amount, err := client.AddressBalanceAmount(cmd.Context(), args[0], c)
	if err != nil {
		return err
	}
	fmt.Printf("%s HYDRA\n", countColor.Sprint(amount.StringFixed(explorer.CoinDecimals)))
	return nil
}

func runAddressHistory(cmd *cobra.Command, address string, pages *pageFlags) error {
	if historyToken != "" && !historyQRC20 {
		return fmt.Errorf("--token requires --qrc20")
	}

	base := params.BalanceHistory{}
	if cmd.Flags().Changed("reversed") {
		base.Reversed = params.Set(reversed)
	}

	fetch := func(ctx context.Context, p params.Pagination) (json.RawMessage, error) {
		q := base
		q.Pagination = p
		if historyQRC20 {
			return client.AddressQRC20BalanceHistory(ctx, address, historyToken, q)
		}
		return client.AddressBalanceHistory(ctx, address, q)
	}

	walk := func(ctx context.Context) iter.Seq2[json.RawMessage, error] {
		if !historyQRC20 {
			return client.AddressBalanceHistoryIter(ctx, address, base)
		}
		return explorer.Paginate[json.RawMessage](ctx, explorer.FieldTransactions, client.PageSize(),
			func(ctx context.Context, cursor explorer.PageCursor) (json.RawMessage, error) {
				return fetch(ctx, params.Paged(cursor.Page, cursor.PageSize))
			})
	}

	return pages.run(cmd.Context(), fetch, walk)
}

func runAddressTxs(cmd *cobra.Command, address string, pages *pageFlags, blocks *blockRangeFlags) error {
	variant, err := explorer.ParseTransactionVariant(txsVariant)
	if err != nil {
		return err
	}
	if txsTarget != "" && !variant.AcceptsTarget() {
		return fmt.Errorf("--target is only supported by the contract and qrc20 variants")
	}

	base, err := transactionParams(cmd, blocks)
	if err != nil {
		return err
	}

	fetch := func(ctx context.Context, p params.Pagination) (json.RawMessage, error) {
		q := base
		q.Pagination = p
		return client.AddressTransactions(ctx, address, variant, txsTarget, q)
	}
	walk := func(ctx context.Context) iter.Seq2[json.RawMessage, error] {
		return client.AddressTransactionsIter(ctx, address, variant, txsTarget, base)
	}

	return pages.run(cmd.Context(), fetch, walk)
}

// reversedUsage documents --reversed. The value is forwarded as is, the
// explorer decides the ordering when the flag is absent.
const reversedUsage = "pass the explorer's reversed ordering parameter, e.g. --reversed=false (sent only when given)"

// transactionParams collects the block range and ordering flags shared by the transaction listings
func transactionParams(cmd *cobra.Command, blocks *blockRangeFlags) (params.Transactions, error) {
	var p params.Transactions

	r, err := blocks.blockRange()
	if err != nil {
		return p, err
	}
	p.Blocks = r

	if cmd.Flags().Changed("reversed") {
		p.Reversed = params.Set(reversed)
	}
	return p, nil
}
