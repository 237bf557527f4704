package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ItsGosho/hydrachain-explorer-requester/filter"
	"github.com/ItsGosho/hydrachain-explorer-requester/params"
)

// pageFlags holds the paging flags of a listing command
type pageFlags struct {
	cmd *cobra.Command

	page     int
	pageSize int
	limit    int
	offset   int
	from     int
	to       int
	all      bool
	filter   string
}

// bindPageFlags registers the paging flags on cmd
func bindPageFlags(cmd *cobra.Command) *pageFlags {
	f := &pageFlags{cmd: cmd}
	flags := cmd.Flags()
	flags.IntVar(&f.page, "page", 0, "page number, starting at 0 (with --page-size)")
	flags.IntVar(&f.pageSize, "page-size", 0, "items per page (with --page)")
	flags.IntVar(&f.limit, "limit", 0, "maximum number of items (with --offset)")
	flags.IntVar(&f.offset, "offset", 0, "items to skip (with --limit)")
	flags.IntVar(&f.from, "from", 0, "first item index (with --to)")
	flags.IntVar(&f.to, "to", 0, "last item index (with --from)")
	flags.BoolVar(&f.all, "all", false, "walk every page and print one item per line")
	flags.StringVarP(&f.filter, "filter", "f", "", "with --all, only print items matching this expression or @name")
	return f
}

// pagination builds the pagination from the flags actually passed
func (f *pageFlags) pagination() params.Pagination {
	var p params.Pagination
	set := func(name string, value int) params.Param[int] {
		if f.cmd.Flags().Changed(name) {
			return params.Set(value)
		}
		return params.Param[int]{}
	}

	p.Page = set("page", f.page)
	p.PageSize = set("page-size", f.pageSize)
	p.Limit = set("limit", f.limit)
	p.Offset = set("offset", f.offset)
	p.From = set("from", f.from)
	p.To = set("to", f.to)
	return p
}

// run prints one page with fetchPage, or every item with walk when --all is set
func (f *pageFlags) run(
	ctx context.Context,
	fetchPage func(ctx context.Context, p params.Pagination) (json.RawMessage, error),
	walk func(ctx context.Context) iter.Seq2[json.RawMessage, error],
) error {
	if !f.all {
		if f.filter != "" {
			return errors.New("--filter requires --all")
		}
		raw, err := fetchPage(ctx, f.pagination())
		if err != nil {
			return err
		}
		return printJSON(os.Stdout, raw)
	}

	if !f.pagination().IsEmpty() {
		logger.Warn().Msg("Paging flags are ignored with --all")
	}

	seq := walk(ctx)
	if f.filter != "" {
		flt, err := filters.Resolve(f.filter)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		seq = filter.Matching(seq, flt, func(item json.RawMessage, err error) {
			logger.Debug().Err(err).RawJSON("item", item).Msg("Skipping item the filter could not evaluate")
		})
	}

	return printItems(seq)
}

// printItems streams items to stdout with a spinner on stderr when output is redirected
func printItems(seq iter.Seq2[json.RawMessage, error]) error {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Fetching items"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetVisibility(isTerminal(os.Stderr) && !isTerminal(os.Stdout)),
	)

	count := 0
	for item, err := range seq {
		if err == nil {
			err = printJSONLine(os.Stdout, item)
		}
		if err != nil {
			bar.Finish()
			return err
		}
		count++
		bar.Add(1)
	}

	bar.Finish()
	countColor.Fprintf(os.Stderr, "%d items\n", count)
	return nil
}

// blockRangeFlags holds the block and time window flags of transaction and log listings
type blockRangeFlags struct {
	cmd *cobra.Command

	fromBlock int64
	toBlock   int64
	fromTime  string
	toTime    string
}

func bindBlockRangeFlags(cmd *cobra.Command) *blockRangeFlags {
	f := &blockRangeFlags{cmd: cmd}
	flags := cmd.Flags()
	flags.Int64Var(&f.fromBlock, "from-block", 0, "lowest block height")
	flags.Int64Var(&f.toBlock, "to-block", 0, "highest block height")
	flags.StringVar(&f.fromTime, "from-time", "", "earliest block time (RFC3339 or YYYY-MM-DD)")
	flags.StringVar(&f.toTime, "to-time", "", "latest block time (RFC3339 or YYYY-MM-DD)")
	return f
}

func (f *blockRangeFlags) blockRange() (params.BlockRange, error) {
	var r params.BlockRange
	flags := f.cmd.Flags()

	if flags.Changed("from-block") {
		r.FromBlock = params.Set(f.fromBlock)
	}
	if flags.Changed("to-block") {
		r.ToBlock = params.Set(f.toBlock)
	}
	if f.fromTime != "" {
		t, err := parseTime(f.fromTime)
		if err != nil {
			return r, err
		}
		r.FromTime = params.Set(t)
	}
	if f.toTime != "" {
		t, err := parseTime(f.toTime)
		if err != nil {
			return r, err
		}
		r.ToTime = params.Set(t)
	}
	return r, nil
}

// parseTime accepts RFC3339 timestamps and plain dates
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	d, err := params.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: expected RFC3339 or YYYY-MM-DD", s)
	}
	return d.Time(), nil
}
