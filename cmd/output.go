package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	countColor   = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
)

// isTerminal reports whether f is an interactive terminal
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// setupColor enables colors only when allowed and stdout is a terminal
func setupColor(enabled bool) {
	color.NoColor = !enabled || !isTerminal(os.Stdout)
}

// printJSON writes raw indented to w
func printJSON(w io.Writer, raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

// printJSONLine writes raw compacted on a single line
func printJSONLine(w io.Writer, raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return fmt.Errorf("failed to format item: %w", err)
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

// printHeading writes a colored section title
func printHeading(w io.Writer, title string) {
	headingColor.Fprintln(w, title)
}
