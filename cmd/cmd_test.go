package cmd

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ItsGosho/hydrachain-explorer-requester/config"
	"github.com/ItsGosho/hydrachain-explorer-requester/params"
)

func TestPageFlagsPagination(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected params.Pagination
	}{
		{
			name: "nothing passed",
		},
		{
			name:     "page zero is kept",
			args:     []string{"--page", "0", "--page-size", "5"},
			expected: params.Paged(0, 5),
		},
		{
			name:     "limit and offset",
			args:     []string{"--limit", "10", "--offset", "0"},
			expected: params.Window(10, 0),
		},
		{
			name:     "lone from",
			args:     []string{"--from", "3"},
			expected: params.Pagination{From: params.Set(3)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "test"}
			pages := bindPageFlags(cmd)
			require.NoError(t, cmd.ParseFlags(tt.args))

			assert.Equal(t, tt.expected, pages.pagination())
		})
	}
}

func TestBlockRangeFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	blocks := bindBlockRangeFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--from-block", "0", "--to-time", "2024-03-05"}))

	r, err := blocks.blockRange()
	require.NoError(t, err)
	assert.Equal(t, params.Set(int64(0)), r.FromBlock)
	assert.False(t, r.ToBlock.IsSet())
	assert.Equal(t, params.Set(time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)), r.ToTime)

	cmd = &cobra.Command{Use: "test"}
	blocks = bindBlockRangeFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--from-time", "yesterday"}))
	_, err = blocks.blockRange()
	assert.Error(t, err)
}

func TestTransactionParamsReversed(t *testing.T) {
	t.Cleanup(func() { reversed = false })

	tests := []struct {
		name     string
		args     []string
		expected params.Param[bool]
	}{
		{name: "omitted when not passed"},
		{name: "explicit false", args: []string{"--reversed=false"}, expected: params.Set(false)},
		{name: "explicit true", args: []string{"--reversed"}, expected: params.Set(true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "test"}
			blocks := bindBlockRangeFlags(cmd)
			cmd.Flags().BoolVar(&reversed, "reversed", false, reversedUsage)
			require.NoError(t, cmd.ParseFlags(tt.args))

			p, err := transactionParams(cmd, blocks)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p.Reversed)
		})
	}
}

func TestParseTime(t *testing.T) {
	got, err := parseTime("2024-03-05T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 5, 10, 30, 0, 0, time.UTC), got)

	got, err = parseTime("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), got)

	_, err = parseTime("05/03/2024")
	assert.Error(t, err)
}

func TestApplyFlagOverrides(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().AddFlagSet(rootCmd.PersistentFlags())
	require.NoError(t, cmd.ParseFlags([]string{"--domain", "http://localhost:3001", "--retries", "2"}))
	t.Cleanup(func() {
		domain, retries = "", 0
		for _, name := range []string{"domain", "retries"} {
			rootCmd.PersistentFlags().Lookup(name).Changed = false
		}
	})

	cfg := config.Default()
	applyFlagOverrides(cmd, cfg)

	assert.Equal(t, "http://localhost:3001", cfg.Explorer.Domain)
	assert.Equal(t, 2, cfg.HTTP.Retries)
	assert.Equal(t, config.DefaultBasePath, cfg.Explorer.BasePath)
	assert.Equal(t, config.DefaultTimeout, cfg.HTTP.Timeout)
}

func TestNewExplorerClient(t *testing.T) {
	cfg := config.Default()
	cfg.Explorer.Domain = "http://localhost:3001/"
	cfg.Explorer.BasePath = "testnet"
	cfg.Pagination.PageSize = 7

	c := newExplorerClient(cfg, setupLogger(cfg.Logging))

	assert.Equal(t, "http://localhost:3001/testnet/info", c.URLs().Info())
	assert.Equal(t, 7, c.PageSize())
}
