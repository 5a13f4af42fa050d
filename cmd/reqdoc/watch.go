package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Re-validate a checklist whenever it changes",
	Long: `Watch monitors a checklist file and re-runs validation on every
write. Editors that replace files on save (rename-over) are handled by
watching the containing directory.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path, err := filepath.Abs(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create watcher: %v\n", err)
			os.Exit(1)
		}
		defer watcher.Close()

		if err := watcher.Add(filepath.Dir(path)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		runValidation := func() {
			if err := validateFile(path); err != nil {
				fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", path, err)
			}
		}
		runValidation()

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

		// Debounce: editors often emit several events per save.
		var pending *time.Timer
		trigger := make(chan struct{}, 1)

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				slog.Debug("file changed", "op", event.Op.String())
				if pending != nil {
					pending.Stop()
				}
				pending = time.AfterFunc(100*time.Millisecond, func() {
					select {
					case trigger <- struct{}{}:
					default:
					}
				})
			case <-trigger:
				runValidation()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("watch error", "error", err)
			case <-sigs:
				return
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
