package cmd

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentRequests bounds the requests a single command runs in parallel
const maxConcurrentRequests = 5

// txCmd represents the tx command
var txCmd = &cobra.Command{
	Use:   "tx <id> [id...]",
	Short: "Show one transaction, or several in one request",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			raw, err := client.Transaction(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(os.Stdout, raw)
		}

		raw, err := client.Transactions(cmd.Context(), args)
		if err != nil {
			return err
		}
		return printJSON(os.Stdout, raw)
	},
}

// rawTxCmd represents the raw-tx command
var rawTxCmd = &cobra.Command{
	Use:   "raw-tx <id> [id...]",
	Short: "Print serialized transactions as hex",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRawTx,
}

func init() {
	rootCmd.AddCommand(txCmd, rawTxCmd)
}

func runRawTx(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		hex, err := client.RawTransaction(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(hex)
		return nil
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(maxConcurrentRequests)

	var mu sync.Mutex
	results := make(map[string]string, len(args))

	for _, id := range args {
		g.Go(func() error {
			hex, err := client.RawTransaction(ctx, id)
			if err != nil {
				return fmt.Errorf("raw transaction %s: %w", id, err)
			}

			mu.Lock()
			results[id] = hex
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, id := range args {
		printHeading(os.Stdout, id)
		fmt.Println(results[id])
	}
	return nil
}
