package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/spherenav/internal/render"
	"github.com/zjrosen/spherenav/internal/route"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Encode and decode deep links",
}

var linkEncodeCmd = &cobra.Command{
	Use:   "encode <path>",
	Short: "Turn a path into a shareable deep link",
	Long: `Resolve a path and print its deep link.

Examples:
  spherenav link encode /domain/business/tasks
  spherenav link encode /map`,
	Args: cobra.ExactArgs(1),
	RunE: runLinkEncode,
}

var linkDecodeCmd = &cobra.Command{
	Use:   "decode <uri>",
	Short: "Resolve a deep link to its route",
	Long: `Decode a deep link and print the route it opens.

The scheme and host must match deeplink.scheme and deeplink.host.

Examples:
  spherenav link decode spherenav://app.spherenav.io/domain/finance/invoices`,
	Args: cobra.ExactArgs(1),
	RunE: runLinkDecode,
}

func init() {
	linkCmd.AddCommand(linkEncodeCmd, linkDecodeCmd)
	rootCmd.AddCommand(linkCmd)
}

func runLinkEncode(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	desc, ok := a.catalog.Resolver().Resolve(args[0])
	if !ok {
		return fmt.Errorf("path not found: %s", args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), a.catalog.Codec().Encode(desc.Target()))
	return nil
}

func runLinkDecode(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	target, ok := a.catalog.Codec().Decode(args[0])
	if !ok {
		return fmt.Errorf("link not recognised: %s", args[0])
	}
	desc, ok := a.catalog.Resolver().Resolve(route.Generate(target))
	if !ok {
		return fmt.Errorf("link not recognised: %s", args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), render.Line(desc, cfg.DisplayLocale(), a.catalog.Registry()))
	return nil
}
