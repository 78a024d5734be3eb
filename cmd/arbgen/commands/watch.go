package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/arbgen/generate"
	"github.com/teranos/arbgen/logger"
)

// WatchCmd represents the watch command
var WatchCmd = &cobra.Command{
	Use:   "watch [packages]",
	Short: "Regenerate on source changes",
	Long: `Generate once, then watch the loaded package directories and regenerate a
package shortly after any of its .go files change. Changes to arbgen's own
output and to _test.go files are ignored. Stop with Ctrl-C.

The quiet period is watch.debounce_ms in arbgen.toml.`,
	RunE: runWatch,
}

func init() {
	addDeriveFlags(WatchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts, cfg, err := runOptions(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := generate.Run(ctx, patterns(args), opts)
	if err != nil {
		return err
	}
	dirs := make([]string, 0, len(results))
	for _, res := range results {
		if err := writeAndReport(cmd, res, opts); err != nil {
			return err
		}
		dirs = append(dirs, res.Package.Dir)
	}

	regenerate := func(ctx context.Context, dir string) error {
		o := opts
		o.Dir = dir
		results, err := generate.Run(ctx, []string{"."}, o)
		if err != nil {
			return err
		}
		for _, res := range results {
			if err := writeAndReport(cmd, res, o); err != nil {
				return err
			}
		}
		return nil
	}

	debounce := time.Duration(cfg.Watch.DebounceMS) * time.Millisecond
	w, err := generate.NewWatcher(dirs, opts, debounce, regenerate)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), pterm.Info.Sprintfln("watching %d package(s), Ctrl-C to stop", len(dirs)))
	return w.Run(ctx)
}

func writeAndReport(cmd *cobra.Command, res *generate.Result, opts generate.Options) error {
	r := newReport(res)
	changes, err := generate.Write(res, opts)
	r.Files = changes
	printReport(cmd.OutOrStdout(), r, logger.Verbosity)
	return err
}
