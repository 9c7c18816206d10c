package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/spherenav/internal/navigator"
	"github.com/zjrosen/spherenav/internal/render"
	"github.com/zjrosen/spherenav/internal/templates"
)

// builtinPrefix selects an embedded script, e.g. builtin:tour.
const builtinPrefix = "builtin:"

var (
	replayStrict  bool
	replayRestore bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml|-|builtin:name>",
	Short: "Replay a scripted navigation session",
	Long: `Run a YAML list of navigation steps through one session and print the
address after each step.

Step actions: to_universe, to_map, to_domain, to_section, open_overlay,
close_overlay, toggle_overlay, go_back, reset, navigate (path) and
open_link (link).

Example script:
  steps:
    - action: to_domain
      domain: business
    - action: to_section
      domain: business
      section: tasks
    - action: open_link
      link: spherenav://app.spherenav.io/domain/finance
    - action: go_back

Examples:
  spherenav replay session.yaml
  cat session.yaml | spherenav replay -
  spherenav replay builtin:tour
  spherenav replay --strict --restore session.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&replayStrict, "strict", false, "fail if any step is refused")
	replayCmd.Flags().BoolVar(&replayRestore, "restore", false, "start from the stored location")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	switch {
	case args[0] == "-":
	case strings.HasPrefix(args[0], builtinPrefix):
		data, err := templates.Script(strings.TrimPrefix(args[0], builtinPrefix))
		if err != nil {
			return fmt.Errorf("unknown built-in script %q (have: %s)", args[0], strings.Join(templates.ScriptNames(), ", "))
		}
		in = bytes.NewReader(data)
	default:
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	script, err := navigator.ParseScript(in)
	if err != nil {
		return err
	}

	a, err := newApp(cfg, appOptions{store: true, tracing: true})
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	nav := a.navigator()
	defer nav.Close()
	if replayRestore {
		a.restore(ctx, nav)
	}

	out := cmd.OutOrStdout()
	refused := 0
	for _, r := range nav.Run(ctx, script) {
		mark := "✓"
		if !r.OK {
			mark = "✗"
			refused++
		}
		line := fmt.Sprintf("%s %2d %-14s %s", mark, r.Index+1, r.Step.Action, r.Path)
		if r.Err != nil {
			line += "  " + render.ErrorStyle.Render(r.Err.Error())
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "session %s ended at %s (%d history entries)\n",
		nav.SessionID(), nav.CurrentPath(), len(nav.State().History))

	if replayStrict && refused > 0 {
		return fmt.Errorf("%d of %d steps refused", refused, len(script.Steps))
	}
	return nil
}
