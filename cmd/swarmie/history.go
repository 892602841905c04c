package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/swarmie/internal/archive"
)

var (
	historyAgent string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Query the invocation archive",
	Long: `Print recent invocations from the SQLite archive, newest first.

The archive records every invocation without the 100-entry bound of
the JSON state file, but only for runs started with --archive. The
--archive flag names the database to query (default .swarmie/archive.db).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := flagArchive
		if path == "" {
			path = archive.DefaultPath
		}

		arch, err := archive.Open(path)
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
		defer arch.Close()

		entries, err := arch.Recent(historyAgent, historyLimit)
		if err != nil {
			return err
		}
		return printJSON(entries)
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyAgent, "agent", "", "Only show invocations for this agent")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of entries to show")
}
