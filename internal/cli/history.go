package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/dqlkit/internal/store"
)

// HistoryOptions holds flags for the history commands.
type HistoryOptions struct {
	*RootOptions
	Limit int
}

// RecordResult is the JSON payload of history add.
type RecordResult struct {
	Recorded bool         `json:"recorded"`
	Entry    *store.Entry `json:"entry,omitempty"`
}

// ClearResult is the JSON payload of the clear commands.
type ClearResult struct {
	Removed int64 `json:"removed"`
}

// NewHistoryCommand creates the history command group.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Record and list executed queries",
		Long: `Manage the per-database query history. Every execution is kept,
duplicates included, and listed newest first.

Example:
  dqlkit history add my-db "SELECT * FROM cars"
  dqlkit history list my-db --limit 20`,
	}

	add := &cobra.Command{
		Use:           "add <database-id> <query>",
		Short:         "Record an executed query",
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryAdd(opts, args[0], strings.Join(args[1:], " "), cmd)
		},
	}

	list := &cobra.Command{
		Use:           "list <database-id>",
		Short:         "List recorded queries, newest first",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(opts, args[0], cmd)
		},
	}
	list.Flags().IntVar(&opts.Limit, "limit", store.DefaultHistoryLimit, "maximum entries to list")

	del := &cobra.Command{
		Use:           "delete <entry-id>",
		Short:         "Delete one history entry",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryDelete(opts, args[0], cmd)
		},
	}

	clearCmd := &cobra.Command{
		Use:           "clear <database-id>",
		Short:         "Delete the whole history of a database",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryClear(opts, args[0], cmd)
		},
	}

	cmd.AddCommand(add, list, del, clearCmd)
	return cmd
}

func runHistoryAdd(opts *HistoryOptions, databaseID, query string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, err := opts.openStore()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
	}
	defer closeStore(st)

	entry, ok, err := st.RecordQuery(cmd.Context(), databaseID, query)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeStoreFailed, err.Error(), nil)
	}
	if !ok {
		return formatter.Render(RecordResult{Recorded: false}, "skipped blank query")
	}
	return formatter.Render(RecordResult{Recorded: true, Entry: &entry}, formatter.OK("recorded "+entry.ID))
}

func runHistoryList(opts *HistoryOptions, databaseID string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, err := opts.openStore()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
	}
	defer closeStore(st)

	entries, err := st.History(cmd.Context(), databaseID, opts.Limit)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeStoreFailed, err.Error(), nil)
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s  %s  %s", e.CreatedAt.Format(time.RFC3339), formatter.Accent(e.ID), e.Query))
	}
	if len(lines) == 0 {
		lines = append(lines, "no history for "+databaseID)
	}
	return formatter.Render(entries, strings.Join(lines, "\n"))
}

func runHistoryDelete(opts *HistoryOptions, id string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, err := opts.openStore()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
	}
	defer closeStore(st)

	if err := st.DeleteHistory(cmd.Context(), id); err != nil {
		return storeFailure(formatter, err)
	}
	return formatter.Render(map[string]string{"deleted": id}, formatter.OK("deleted "+id))
}

func runHistoryClear(opts *HistoryOptions, databaseID string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, err := opts.openStore()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
	}
	defer closeStore(st)

	n, err := st.ClearHistory(cmd.Context(), databaseID)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeStoreFailed, err.Error(), nil)
	}
	return formatter.Render(ClearResult{Removed: n}, fmt.Sprintf("removed %d entries", n))
}

// storeFailure maps store.ErrNotFound to E202 and anything else to E201.
func storeFailure(formatter *OutputFormatter, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return formatter.Fail(ExitFailure, ErrCodeNotFound, err.Error(), nil)
	}
	return formatter.Fail(ExitFailure, ErrCodeStoreFailed, err.Error(), nil)
}
