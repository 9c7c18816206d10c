package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var graphStrict bool

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Inspect the sphere adjacency graph",
}

var graphCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "List neighbours and report one-way edges",
	Long: `List each sphere's neighbours and report edges with no reverse edge.

One-way edges are allowed, since adjacency is directed, but they are often an
authoring slip. With --strict any one-way edge fails the command.

Examples:
  spherenav graph check
  spherenav graph check --strict`,
	Args: cobra.NoArgs,
	RunE: runGraphCheck,
}

func init() {
	graphCheckCmd.Flags().BoolVar(&graphStrict, "strict", false, "fail when an edge has no reverse edge")
	graphCmd.AddCommand(graphCheckCmd)
	rootCmd.AddCommand(graphCmd)
}

func runGraphCheck(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cfg, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	g := a.catalog.Graph()
	for _, d := range a.catalog.Registry().ListDomains() {
		ns := g.Neighbors(d.ID)
		names := make([]string, 0, len(ns))
		for _, n := range ns {
			names = append(names, string(n))
		}
		fmt.Fprintf(out, "%s: %s\n", d.ID, strings.Join(names, ", "))
	}

	asym := g.Asymmetries()
	if len(asym) == 0 {
		fmt.Fprintln(out, "all edges are symmetric")
		return nil
	}
	for _, e := range asym {
		fmt.Fprintf(out, "one-way: %s → %s (no %s → %s)\n", e.From, e.To, e.To, e.From)
	}
	if graphStrict {
		return fmt.Errorf("%d one-way edge(s)", len(asym))
	}
	return nil
}
