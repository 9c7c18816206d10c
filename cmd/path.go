package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/spherenav/internal/sphere"
)

var pathCmd = &cobra.Command{
	Use:   "path <from> <to>",
	Short: "Print the shortest hop path between two spheres",
	Long: `Print the fewest-hop path between two spheres over the adjacency graph.

Adjacency is directed: a sphere lists the neighbours reachable from it.

Examples:
  spherenav path business health
  spherenav path learning personal`,
	Args: cobra.ExactArgs(2),
	RunE: runPath,
}

func init() {
	rootCmd.AddCommand(pathCmd)
}

func runPath(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	from, to := sphere.DomainID(args[0]), sphere.DomainID(args[1])
	reg := a.catalog.Registry()
	for _, id := range []sphere.DomainID{from, to} {
		if _, err := reg.Domain(id); err != nil {
			return err
		}
	}

	hops, ok := a.catalog.Graph().Path(from, to)
	if !ok {
		return fmt.Errorf("no path from %s to %s", from, to)
	}
	names := make([]string, 0, len(hops))
	for _, id := range hops {
		names = append(names, string(id))
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, " → "))
	return nil
}
