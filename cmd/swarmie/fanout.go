package main

import (
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/swarmie/internal/patterns"
	"github.com/ShayCichocki/swarmie/internal/tools"
)

var (
	fanOutProfile string
	fanOutTools   []string
)

var fanOutCmd = &cobra.Command{
	Use:   "fan-out <task>...",
	Short: "Run independent tasks in parallel",
	Long: `Run each task as an independent Claude invocation, in parallel,
bounded by --max-concurrent. Results come back in task order; a failed
task is reported in place without affecting its siblings.

Example:
  swarmie fan-out "summarize README.md" "list the TODOs in main.go"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFanOut,
}

func init() {
	fanOutCmd.Flags().StringVar(&fanOutProfile, "profile", "", "Tool profile to allow (see 'swarmie profiles')")
	fanOutCmd.Flags().StringSliceVar(&fanOutTools, "allowed-tools", nil, "Tools to allow (names or profile names)")
}

func runFanOut(cmd *cobra.Command, args []string) error {
	allowed, err := tools.Resolve(fanOutProfile, fanOutTools)
	if err != nil {
		return err
	}

	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.close()

	results := patterns.FanOut(sess.ctx, sess.swarm, args, allowed)
	return printJSON(results)
}
