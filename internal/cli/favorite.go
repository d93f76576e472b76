package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// FavoriteOptions holds flags for the favorite commands.
type FavoriteOptions struct {
	*RootOptions
	Args string
}

// NewFavoriteCommand creates the favorite command group.
func NewFavoriteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FavoriteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:     "favorite",
		Aliases: []string{"fav"},
		Short:   "Save and list favorite queries",
		Long: `Manage per-database favorite queries. Saving a query that is already a
favorite returns the stored one.

Example:
  dqlkit favorite add my-db "SELECT * FROM cars WHERE make = :make" --args '{"make":"Ford"}'
  dqlkit favorite list my-db`,
	}

	add := &cobra.Command{
		Use:           "add <database-id> <query>",
		Short:         "Save a favorite query",
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFavoriteAdd(opts, args[0], strings.Join(args[1:], " "), cmd)
		},
	}
	add.Flags().StringVar(&opts.Args, "args", "", "query arguments as JSON")

	list := &cobra.Command{
		Use:           "list <database-id>",
		Short:         "List favorites, newest first",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFavoriteList(opts, args[0], cmd)
		},
	}

	del := &cobra.Command{
		Use:           "delete <favorite-id>",
		Short:         "Delete one favorite",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFavoriteDelete(opts, args[0], cmd)
		},
	}

	clearCmd := &cobra.Command{
		Use:           "clear <database-id>",
		Short:         "Delete every favorite of a database",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFavoriteClear(opts, args[0], cmd)
		},
	}

	cmd.AddCommand(add, list, del, clearCmd)
	return cmd
}

func runFavoriteAdd(opts *FavoriteOptions, databaseID, query string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if strings.TrimSpace(query) == "" {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, "query is empty", nil)
	}

	st, err := opts.openStore()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
	}
	defer closeStore(st)

	fav, err := st.AddFavorite(cmd.Context(), databaseID, query, opts.Args)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeStoreFailed, err.Error(), nil)
	}
	return formatter.Render(fav, formatter.OK("saved "+fav.ID))
}

func runFavoriteList(opts *FavoriteOptions, databaseID string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, err := opts.openStore()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
	}
	defer closeStore(st)

	favs, err := st.Favorites(cmd.Context(), databaseID)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeStoreFailed, err.Error(), nil)
	}

	lines := make([]string, 0, len(favs))
	for _, f := range favs {
		line := fmt.Sprintf("%s  %s", formatter.Accent(f.ID), f.Query)
		if f.Args != "" {
			line += "  args=" + f.Args
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		lines = append(lines, "no favorites for "+databaseID)
	}
	return formatter.Render(favs, strings.Join(lines, "\n"))
}

func runFavoriteDelete(opts *FavoriteOptions, id string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, err := opts.openStore()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
	}
	defer closeStore(st)

	if err := st.DeleteFavorite(cmd.Context(), id); err != nil {
		return storeFailure(formatter, err)
	}
	return formatter.Render(map[string]string{"deleted": id}, formatter.OK("deleted "+id))
}

func runFavoriteClear(opts *FavoriteOptions, databaseID string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, err := opts.openStore()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
	}
	defer closeStore(st)

	n, err := st.ClearFavorites(cmd.Context(), databaseID)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeStoreFailed, err.Error(), nil)
	}
	return formatter.Render(ClearResult{Removed: n}, fmt.Sprintf("removed %d favorites", n))
}
