package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/swarmie/internal/config"
	"github.com/ShayCichocki/swarmie/internal/swarm"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the state file and print agent summaries on change",
	Long: `Watch the swarm state file and print the agent registry every time
another swarmie process saves it. Useful alongside a long-running
dispatch in a second terminal. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	statePath := cfg.Defaults.StateFile
	if flagStateFile != "" {
		statePath = flagStateFile
	}
	absPath, err := filepath.Abs(statePath)
	if err != nil {
		return fmt.Errorf("resolve state path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: saves replace the file, and a
	// watch on the old inode goes stale.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	printStatus("…", fmt.Sprintf("watching %s (Ctrl-C to stop)", absPath), color.FgCyan)
	if err := printStateSummary(absPath); err != nil {
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
			if event.Name != absPath {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if err := printStateSummary(absPath); err != nil {
				printStatus("✗", err.Error(), color.FgRed)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printStatus("✗", fmt.Sprintf("watch error: %v", err), color.FgRed)
		}
	}
}

func printStateSummary(path string) error {
	sw, err := swarm.Load(path)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	summary := struct {
		Agents  []swarm.AgentSummary `json:"agents"`
		History int                  `json:"history_entries"`
	}{
		Agents:  sw.ListAgents(),
		History: len(sw.History()),
	}
	return printJSON(summary)
}
