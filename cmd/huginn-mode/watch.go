package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/codestation/huginn-mode/pkg/editor"
)

// settleDelay lets a burst of writes from one save collapse into one render.
const settleDelay = 100 * time.Millisecond

var watchTokens bool

var watchCmd = &cobra.Command{
	Use:   "watch file",
	Short: "Colorize a file again every time it is written",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMode(rulesFile)
		if err != nil {
			return err
		}
		scheme, err := loadScheme(schemeFile, colorMode)
		if err != nil {
			return err
		}

		path := args[0]
		out := cmd.OutOrStdout()
		render := func() error {
			input, err := readSource(nil, path)
			if err != nil {
				return err
			}
			if watchTokens {
				return writeTokens(out, editor.New(m, input, editor.WithLogger(logger)), false)
			}
			return colorize(out, m, input, scheme)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return watchFile(ctx, path, out, render)
	},
}

func init() {
	addColorFlags(watchCmd)
	watchCmd.Flags().BoolVar(&watchTokens, "tokens", false, "Print JSON tokens instead of colored text")
}

// watchFile calls render once, then after every write to path until ctx
// is done. The parent directory is watched so that editors replacing the
// file on save are still followed.
func watchFile(ctx context.Context, path string, w io.Writer, render func() error) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("error watching '%s': %w", path, err)
	}
	if err := render(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name, _ := filepath.Abs(event.Name)
			if name != target || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			time.Sleep(settleDelay)
			drain(watcher.Events)

			logger.Debug("file changed", zap.String("file", path), zap.Stringer("op", event.Op))
			fmt.Fprintf(w, "--- %s\n", path)
			if err := render(); err != nil {
				logger.Error("error rendering file", zap.String("file", path), zap.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", zap.Error(err))
		}
	}
}

// drain discards the events already queued, so one save renders once.
func drain(events <-chan fsnotify.Event) {
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
