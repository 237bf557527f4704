package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"

	"github.com/spf13/cobra"

	"github.com/ItsGosho/hydrachain-explorer-requester/explorer"
	"github.com/ItsGosho/hydrachain-explorer-requester/params"
)

var (
	logsContract string
	logsTopics   []string
)

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "List QRC20 tokens",
	Args:  cobra.NoArgs,
}

var richListCmd = &cobra.Command{
	Use:   "rich-list",
	Short: "List the richest addresses",
	Args:  cobra.NoArgs,
}

var minersCmd = &cobra.Command{
	Use:   "miners",
	Short: "List the addresses that mined the most blocks",
	Args:  cobra.NoArgs,
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Search contract event logs",
	Args:  cobra.NoArgs,
}

func init() {
	bindListCommand(tokensCmd, (*explorer.Client).Tokens, (*explorer.Client).TokensIter)
	bindListCommand(richListCmd, (*explorer.Client).RichList, (*explorer.Client).RichListIter)
	bindListCommand(minersCmd, (*explorer.Client).BiggestMiners, (*explorer.Client).BiggestMinersIter)

	logsPages := bindPageFlags(logsCmd)
	logsBlocks := bindBlockRangeFlags(logsCmd)
	logsCmd.Flags().StringVar(&logsContract, "contract", "", "emitting contract")
	logsCmd.Flags().StringSliceVar(&logsTopics, "topic", nil, "event topic, up to four in order")
	logsCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runLogs(cmd, logsPages, logsBlocks)
	}

	rootCmd.AddCommand(tokensCmd, richListCmd, minersCmd, logsCmd)
}

// bindListCommand wires a plain paged listing into cmd. The client methods
// are bound when the command runs, after initializeApp created the client.
func bindListCommand(
	cmd *cobra.Command,
	fetchPage func(c *explorer.Client, ctx context.Context, p params.Pagination) (json.RawMessage, error),
	walk func(c *explorer.Client, ctx context.Context) iter.Seq2[json.RawMessage, error],
) {
	pages := bindPageFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return pages.run(cmd.Context(),
			func(ctx context.Context, p params.Pagination) (json.RawMessage, error) {
				return fetchPage(client, ctx, p)
			},
			func(ctx context.Context) iter.Seq2[json.RawMessage, error] {
				return walk(client, ctx)
			},
		)
	}
}

func runLogs(cmd *cobra.Command, pages *pageFlags, blocks *blockRangeFlags) error {
	if len(logsTopics) > 4 {
		return fmt.Errorf("at most four topics are supported, got %d", len(logsTopics))
	}

	var base params.SearchLogs
	r, err := blocks.blockRange()
	if err != nil {
		return err
	}
	base.Blocks = r

	if logsContract != "" {
		base.Contract = params.Set(logsContract)
	}
	topics := []*params.Param[string]{&base.Topic1, &base.Topic2, &base.Topic3, &base.Topic4}
	for i, topic := range logsTopics {
		if topic != "" {
			*topics[i] = params.Set(topic)
		}
	}

	fetch := func(ctx context.Context, p params.Pagination) (json.RawMessage, error) {
		q := base
		q.Pagination = p
		return client.SearchLogs(ctx, q)
	}
	walk := func(ctx context.Context) iter.Seq2[json.RawMessage, error] {
		return client.SearchLogsIter(ctx, base)
	}

	return pages.run(cmd.Context(), fetch, walk)
}
