package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/spherenav/internal/route"
	"github.com/zjrosen/spherenav/internal/sphere"
)

var generateLink bool

var generateCmd = &cobra.Command{
	Use:   "generate <view> [domain] [section]",
	Short: "Print the canonical path for a view",
	Long: `Print the canonical path for a navigation target.

View is one of universe, map, overlay, domain or section. Domain and section
views take their ids as further arguments.

Examples:
  spherenav generate map
  spherenav generate domain finance
  spherenav generate section business invoices --link`,
	Args: cobra.RangeArgs(1, 3),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&generateLink, "link", false, "print a deep link instead of a path")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	target, err := parseTarget(args)
	if err != nil {
		return err
	}

	a, err := newApp(cfg, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	reg := a.catalog.Registry()
	if target.Domain != "" {
		if _, err := reg.Domain(target.Domain); err != nil {
			return err
		}
	}
	if target.Section != "" {
		if _, err := reg.Section(target.Section); err != nil {
			return err
		}
	}

	if generateLink {
		fmt.Fprintln(cmd.OutOrStdout(), a.catalog.Codec().Encode(target))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), route.Generate(target))
	return nil
}

// parseTarget reads "<view> [domain] [section]".
func parseTarget(args []string) (route.Target, error) {
	view := route.View(args[0])
	if !view.Valid() {
		return route.Target{}, fmt.Errorf("unknown view %q", args[0])
	}

	want := map[route.View]int{
		route.ViewUniverse: 1,
		route.ViewMap:      1,
		route.ViewOverlay:  1,
		route.ViewDomain:   2,
		route.ViewSection:  3,
	}[view]
	if len(args) != want {
		return route.Target{}, fmt.Errorf("view %q takes %d argument(s), got %d", view, want-1, len(args)-1)
	}

	switch view {
	case route.ViewDomain:
		return route.DomainTarget(sphere.DomainID(args[1])), nil
	case route.ViewSection:
		return route.SectionTarget(sphere.DomainID(args[1]), sphere.SectionID(args[2])), nil
	default:
		return route.Target{View: view}, nil
	}
}
