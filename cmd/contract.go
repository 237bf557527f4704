package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"iter"
	"os"

	"github.com/spf13/cobra"

	"github.com/ItsGosho/hydrachain-explorer-requester/explorer"
	"github.com/ItsGosho/hydrachain-explorer-requester/params"
)

var (
	contractTxsVariant string
	callData           string
	callSender         string
)

// contractCmd represents the contract command
var contractCmd = &cobra.Command{
	Use:   "contract <contract>",
	Short: "Show a contract summary, its transactions, or call it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := client.Contract(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(os.Stdout, raw)
	},
}

var contractTxsCmd = &cobra.Command{
	Use:   "txs <contract>",
	Short: "List the transactions of a contract",
	Args:  cobra.ExactArgs(1),
}

var contractCallCmd = &cobra.Command{
	Use:   "call <contract>",
	Short: "Run a read-only contract call",
	Args:  cobra.ExactArgs(1),
	RunE:  runContractCall,
}

func init() {
	pages := bindPageFlags(contractTxsCmd)
	blocks := bindBlockRangeFlags(contractTxsCmd)
	contractTxsCmd.Flags().StringVar(&contractTxsVariant, "variant", "all", "transaction listing variant (all, basic, contract, qrc20)")
	contractTxsCmd.Flags().BoolVar(&reversed, "reversed", false, reversedUsage)
	contractTxsCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runContractTxs(cmd, args[0], pages, blocks)
	}

	contractCallCmd.Flags().StringVar(&callData, "data", "", "ABI encoded call data, hex")
	contractCallCmd.Flags().StringVar(&callSender, "sender", "", "sender address")

	contractCmd.AddCommand(contractTxsCmd, contractCallCmd)
	rootCmd.AddCommand(contractCmd)
}

func runContractTxs(cmd *cobra.Command, contract string, pages *pageFlags, blocks *blockRangeFlags) error {
	variant, err := explorer.ParseTransactionVariant(contractTxsVariant)
	if err != nil {
		return err
	}

	base, err := transactionParams(cmd, blocks)
	if err != nil {
		return err
	}

	fetch := func(ctx context.Context, p params.Pagination) (json.RawMessage, error) {
		q := base
		q.Pagination = p
		return client.ContractTransactions(ctx, contract, variant, q)
	}
	walk := func(ctx context.Context) iter.Seq2[json.RawMessage, error] {
		return client.ContractTransactionsIter(ctx, contract, variant, base)
	}

	return pages.run(cmd.Context(), fetch, walk)
}

func runContractCall(cmd *cobra.Command, args []string) error {
	if callData == "" {
		return errors.New("--data is required")
	}

	p := params.CallContract{Data: params.Set(callData)}
	if callSender != "" {
		p.Sender = params.Set(callSender)
	}

	raw, err := client.CallContract(cmd.Context(), args[0], p)
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, raw)
}
