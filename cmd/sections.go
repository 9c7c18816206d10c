package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zjrosen/spherenav/internal/config"
	"github.com/zjrosen/spherenav/internal/sphere"
)

var (
	sectionsAll  bool
	sectionsNone bool
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List sections and whether they are enabled",
	Args:  cobra.NoArgs,
	RunE:  runSections,
}

var sectionsSetCmd = &cobra.Command{
	Use:   "set [section]...",
	Short: "Choose the enabled extended sections",
	Long: `Write sections.extended to the config file. Core sections are always
enabled. Other settings and comments in the file are kept.

Examples:
  spherenav sections set invoices clients
  spherenav sections set --none
  spherenav sections set --all`,
	RunE: runSectionsSet,
}

func init() {
	sectionsSetCmd.Flags().BoolVar(&sectionsAll, "all", false, "enable every extended section")
	sectionsSetCmd.Flags().BoolVar(&sectionsNone, "none", false, "disable every extended section")
	sectionsCmd.AddCommand(sectionsSetCmd)
	rootCmd.AddCommand(sectionsCmd)
}

func runSections(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cfg, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	reg := a.catalog.Registry()
	locale := cfg.DisplayLocale()
	all := append(sphere.CoreSections(), sphere.ExtendedSections()...)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, s := range all {
		state := "disabled"
		if reg.IsValidSection(s.ID) {
			state = "enabled"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Name.In(locale), s.Tier, state)
	}
	return tw.Flush()
}

func runSectionsSet(cmd *cobra.Command, args []string) error {
	var ids []string
	switch {
	case sectionsAll && sectionsNone:
		return errors.New("--all and --none are exclusive")
	case sectionsAll:
		if len(args) > 0 {
			return errors.New("--all takes no sections")
		}
		ids = nil
	case sectionsNone:
		if len(args) > 0 {
			return errors.New("--none takes no sections")
		}
		ids = []string{}
	default:
		if len(args) == 0 {
			return errors.New("name the sections to enable, or use --all or --none")
		}
		ids = args
	}

	if err := config.ValidateSections(config.SectionsConfig{Extended: ids}); err != nil {
		return err
	}

	path := configPath()
	if err := config.SaveExtendedSections(path, ids); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", path)
	return nil
}
