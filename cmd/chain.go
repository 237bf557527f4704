package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ItsGosho/hydrachain-explorer-requester/params"
)

var (
	blocksDate  string
	recentCount int
)

var (
	searchCmd = &cobra.Command{
		Use:   "search <query>",
		Short: "Search for a block, transaction, address or contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := client.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(os.Stdout, raw)
		},
	}
	infoCmd = &cobra.Command{
		Use:   "info",
		Short: "Show the current chain summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := client.Info(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(os.Stdout, raw)
		},
	}
	blockCmd = &cobra.Command{
		Use:   "block <height|hash>",
		Short: "Show a block by height or hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := client.Block(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(os.Stdout, raw)
		},
	}
	blocksCmd = &cobra.Command{
		Use:   "blocks",
		Short: "List the blocks mined on one day",
		Args:  cobra.NoArgs,
		RunE:  runBlocks,
	}
	recentBlocksCmd = &cobra.Command{
		Use:   "recent-blocks",
		Short: "List the latest blocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var p params.RecentBlocks
			if cmd.Flags().Changed("count") {
				if recentCount <= 0 {
					return fmt.Errorf("--count must be positive: %d", recentCount)
				}
				p.Count = params.Set(recentCount)
			}
			raw, err := client.RecentBlocks(cmd.Context(), p)
			if err != nil {
				return err
			}
			return printJSON(os.Stdout, raw)
		},
	}
	recentTxsCmd = &cobra.Command{
		Use:   "recent-txs",
		Short: "List the latest transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := client.RecentTransactions(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(os.Stdout, raw)
		},
	}
)

func init() {
	blocksCmd.Flags().StringVar(&blocksDate, "date", "", "day to list, as YYYY-MM-DD (default is today on the server)")
	recentBlocksCmd.Flags().IntVar(&recentCount, "count", 0, "number of blocks")

	rootCmd.AddCommand(searchCmd, infoCmd, blockCmd, blocksCmd, recentBlocksCmd, recentTxsCmd)
}

func runBlocks(cmd *cobra.Command, args []string) error {
	var p params.Blocks
	if blocksDate != "" {
		date, err := params.ParseDate(blocksDate)
		if err != nil {
			return err
		}
		p.Date = params.Set(date)
	}

	raw, err := client.Blocks(cmd.Context(), p)
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, raw)
}
