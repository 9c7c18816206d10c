package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/spherenav/internal/infrastructure/sqlite"
	"github.com/zjrosen/spherenav/internal/render"
)

var (
	restoreList    int
	restoreSession string
	restorePrune   int
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Show or manage the stored location",
	Long: `Show the last stored location, list recent ones or prune the store.

Every address bar update is stored in store.path. A new session resumes at
the newest one when store.restore is set.

Examples:
  spherenav restore
  spherenav restore --list 10
  spherenav restore --list 10 --session 6f1c...
  spherenav restore --prune 100`,
	Args: cobra.NoArgs,
	RunE: runRestore,
}

func init() {
	restoreCmd.Flags().IntVar(&restoreList, "list", 0, "list the newest N locations")
	restoreCmd.Flags().StringVar(&restoreSession, "session", "", "only list locations of this session")
	restoreCmd.Flags().IntVar(&restorePrune, "prune", -1, "keep only the newest N locations")
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(cmd *cobra.Command, _ []string) error {
	if cfg.Store.Path == "" {
		return errors.New("no location store: store.path is empty")
	}
	a, err := newApp(cfg, appOptions{store: true})
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	repo := a.db.LocationRepository()
	out := cmd.OutOrStdout()

	switch {
	case restorePrune >= 0:
		n, err := repo.Prune(ctx, restorePrune)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "pruned %d location(s)\n", n)
		return nil

	case restoreList > 0:
		locs, err := repo.Recent(ctx, restoreSession, restoreList)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, l := range locs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.CreatedAt.Format(time.DateTime), l.SessionID, l.Action, l.Path)
		}
		return tw.Flush()
	}

	loc, err := repo.LastLocation(ctx)
	if errors.Is(err, sqlite.ErrNoLocation) {
		fmt.Fprintln(out, "no stored location")
		return nil
	}
	if err != nil {
		return err
	}

	desc, ok := a.catalog.Resolver().Resolve(loc.Path)
	if !ok {
		fmt.Fprintln(out, render.Miss(loc.Path))
		return nil
	}
	fmt.Fprintln(out, render.Line(desc, cfg.DisplayLocale(), a.catalog.Registry()))
	return nil
}
