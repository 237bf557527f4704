package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show daily transactions, block intervals and address growth",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

type statSection struct {
	title string
	fetch func(ctx context.Context) (json.RawMessage, error)
	raw   json.RawMessage
}

func runStats(cmd *cobra.Command, args []string) error {
	sections := []*statSection{
		{title: "Daily transactions", fetch: client.DailyTransactions},
		{title: "Block interval", fetch: client.BlockInterval},
		{title: "Address growth", fetch: client.AddressGrowth},
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	for _, s := range sections {
		g.Go(func() error {
			raw, err := s.fetch(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch %s: %w", s.title, err)
			}
			s.raw = raw
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, s := range sections {
		printHeading(os.Stdout, s.title)
		if err := printJSON(os.Stdout, s.raw); err != nil {
			return err
		}
	}
	return nil
}
