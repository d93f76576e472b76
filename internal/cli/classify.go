package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/dqlkit/internal/querytext"
)

// NewClassifyCommand creates the classify command.
func NewClassifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <query>",
		Short: "Report the collection and result shape of a query",
		Long: `Report the target collection of a DQL query and whether it is an
aggregate or already paginated. Pass "-" to read the query from stdin.

Example:
  dqlkit classify "SELECT COUNT(*) FROM cars"
  echo "SELECT * FROM people LIMIT 5" | dqlkit classify -`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runClassify(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	query, err := queryArg(args, cmd.InOrStdin())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, err.Error(), nil)
	}

	shape := querytext.Inspect(query)
	formatter.VerboseLog("classified %d byte query", len(query))

	collection := shape.Collection
	if !shape.HasCollection {
		collection = "(none)"
	}
	text := fmt.Sprintf("collection: %s\naggregate_or_paginated: %t\npaginated: %t",
		formatter.Accent(collection), shape.AggregateOrPaginated, shape.Paginated)
	return formatter.Render(shape, text)
}

// queryArg joins the positional arguments into one query. A single "-"
// reads the query from in.
func queryArg(args []string, in io.Reader) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
	return strings.Join(args, " "), nil
}

// readInput reads a file, or stdin when path is "" or "-".
func readInput(path string, in io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
