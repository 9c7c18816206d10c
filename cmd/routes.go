package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var routesYAML bool

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List every route in the table",
	Long: `List every canonical path with its title.

The table holds the base views, one entry per sphere and one per sphere and
enabled section. Use --yaml for the full descriptors including breadcrumbs.

Examples:
  spherenav routes
  spherenav routes --locale es
  spherenav routes --yaml > routes.yaml`,
	Args: cobra.NoArgs,
	RunE: runRoutes,
}

func init() {
	routesCmd.Flags().BoolVar(&routesYAML, "yaml", false, "print descriptors as YAML")
	rootCmd.AddCommand(routesCmd)
}

func runRoutes(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cfg, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	routes := a.catalog.Table().Routes()
	if routesYAML {
		return writeYAML(cmd.OutOrStdout(), routes)
	}

	locale := cfg.DisplayLocale()
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, r := range routes {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Path, r.View, r.Title.In(locale))
	}
	return tw.Flush()
}
