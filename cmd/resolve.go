package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/spherenav/internal/render"
	"github.com/zjrosen/spherenav/internal/route"
)

var resolveYAML bool

var resolveCmd = &cobra.Command{
	Use:   "resolve <path>...",
	Short: "Resolve paths to route descriptors",
	Long: `Resolve one or more paths and print their breadcrumb trail.

Hand-assembled paths are normalised first: query strings and fragments are
dropped, repeated and trailing slashes collapse and ids are lower-cased.

Examples:
  spherenav resolve /domain/business/tasks
  spherenav resolve "/Domain/HOME//notes/?tab=2"
  spherenav resolve --yaml /map /domain/finance`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveYAML, "yaml", false, "print descriptors as YAML")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	resolver := a.catalog.Resolver()
	locale := cfg.DisplayLocale()

	var found []route.RouteDescriptor
	misses := 0
	for _, p := range args {
		desc, ok := resolver.Resolve(p)
		if !ok {
			misses++
			if !resolveYAML {
				fmt.Fprintln(out, render.Miss(p))
			}
			continue
		}
		found = append(found, desc)
		if !resolveYAML {
			fmt.Fprintln(out, render.Line(desc, locale, a.catalog.Registry()))
		}
	}

	if resolveYAML && len(found) > 0 {
		if err := writeYAML(out, found); err != nil {
			return err
		}
	}
	if misses > 0 {
		return fmt.Errorf("%d of %d paths not found", misses, len(args))
	}
	return nil
}
