package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/dqlkit/internal/querytext"
)

// PaginateOptions holds flags for the paginate command.
type PaginateOptions struct {
	*RootOptions
	Limit  int
	Offset int
}

// PaginateResult is the JSON payload of the paginate command.
type PaginateResult struct {
	Query   string `json:"query"`
	Changed bool   `json:"changed"`
}

// NewPaginateCommand creates the paginate command.
func NewPaginateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PaginateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "paginate <query>",
		Short: "Append a LIMIT/OFFSET window to an unbounded query",
		Long: `Append a LIMIT (and OFFSET, when positive) to a query that would return
an unbounded result set. Aggregate and already paginated queries are
printed unchanged.

Example:
  dqlkit paginate "SELECT * FROM cars" --limit 100 --offset 200`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPaginate(opts, args, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 100, "page size")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "number of documents to skip")

	return cmd
}

func runPaginate(opts *PaginateOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if opts.Limit <= 0 {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, fmt.Sprintf("--limit must be positive, got %d", opts.Limit), nil)
	}
	if opts.Offset < 0 {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, fmt.Sprintf("--offset must not be negative, got %d", opts.Offset), nil)
	}

	query, err := queryArg(args, cmd.InOrStdin())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, err.Error(), nil)
	}

	paged, changed := querytext.Paginate(query, opts.Limit, opts.Offset)
	if !changed {
		formatter.VerboseLog("query left unchanged")
	}
	return formatter.Render(PaginateResult{Query: paged, Changed: changed}, paged)
}
