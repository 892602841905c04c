package main

import (
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/swarmie/internal/patterns"
	"github.com/ShayCichocki/swarmie/internal/tools"
)

var (
	hierarchicalProfile     string
	hierarchicalTools       []string
	hierarchicalMaxSubtasks int
)

var hierarchicalCmd = &cobra.Command{
	Use:   "hierarchical <goal>",
	Short: "Plan a goal into subtasks, execute them, and synthesize",
	Long: `Ask a planner invocation to break the goal into independent subtasks,
fan the subtasks out in parallel, then synthesize the worker results
against the original goal.

If the planner's output cannot be parsed as a JSON array of subtasks,
the goal itself is executed as a single task.

Example:
  swarmie hierarchical "audit this repository for common security issues" --max-subtasks 4`,
	Args: cobra.ExactArgs(1),
	RunE: runHierarchical,
}

func init() {
	hierarchicalCmd.Flags().IntVar(&hierarchicalMaxSubtasks, "max-subtasks", 5, "Maximum number of planned subtasks")
	hierarchicalCmd.Flags().StringVar(&hierarchicalProfile, "profile", "", "Tool profile to allow (see 'swarmie profiles')")
	hierarchicalCmd.Flags().StringSliceVar(&hierarchicalTools, "allowed-tools", nil, "Tools to allow (names or profile names)")
}

func runHierarchical(cmd *cobra.Command, args []string) error {
	allowed, err := tools.Resolve(hierarchicalProfile, hierarchicalTools)
	if err != nil {
		return err
	}

	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.close()

	result := patterns.Hierarchical(sess.ctx, sess.swarm, args[0], hierarchicalMaxSubtasks, allowed)
	return printJSON(result)
}
