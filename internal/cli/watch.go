package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sompylasar/draft-js/internal/watcher"
)

func (a *app) watchCommand() *cobra.Command {
	var (
		scripts  []string
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Inspect a document again whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, cmd, args[0], scripts, debounce)
		},
	}
	cmd.Flags().StringArrayVarP(&scripts, "script", "s", nil, "Lua decorator strategy script (repeatable)")
	cmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounce, "Quiet period before a change is reported")
	return cmd
}

// watch prints an inspection now and after every change until ctx ends.
// A document that fails to load is reported and watching continues.
func (a *app) watch(ctx context.Context, cmd *cobra.Command, path string, scripts []string, debounce time.Duration) error {
	w, err := watcher.New(path, watcher.WithDebounce(debounce), watcher.WithLogger(a.log))
	if err != nil {
		return err
	}
	defer w.Close()

	out := cmd.OutOrStdout()
	show := func() {
		if err := a.inspect(out, path, scripts); err != nil {
			a.log.Warn("inspect failed", "path", path, "err", err)
		}
	}
	show()
	err = w.Run(ctx, func(ev watcher.Event) {
		a.log.Info("document changed", "path", ev.Path, "op", ev.Op)
		if _, err := os.Stat(path); err != nil {
			cmd.Printf("--- %s removed\n", path)
			return
		}
		cmd.Printf("--- %s\n", ev.Time.Format(time.TimeOnly))
		show()
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}
