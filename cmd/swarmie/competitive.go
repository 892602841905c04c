package main

import (
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/swarmie/internal/patterns"
	"github.com/ShayCichocki/swarmie/internal/tools"
)

var (
	competitiveProfile   string
	competitiveTools     []string
	competitiveNumAgents int
)

var competitiveCmd = &cobra.Command{
	Use:   "competitive <task>",
	Short: "Run several attempts at one task and judge the best",
	Long: `Run the same task several times in parallel, each attempt emphasizing
a different quality (clarity, performance, robustness), then ask a
judge invocation to pick the best solution by index and explain why.

The judgment is the judge's own output; swarmie does not validate it.

Example:
  swarmie competitive "write a function that deduplicates a slice" --num-agents 3`,
	Args: cobra.ExactArgs(1),
	RunE: runCompetitive,
}

func init() {
	competitiveCmd.Flags().IntVar(&competitiveNumAgents, "num-agents", 3, "Number of competing attempts")
	competitiveCmd.Flags().StringVar(&competitiveProfile, "profile", "", "Tool profile to allow (see 'swarmie profiles')")
	competitiveCmd.Flags().StringSliceVar(&competitiveTools, "allowed-tools", nil, "Tools to allow (names or profile names)")
}

func runCompetitive(cmd *cobra.Command, args []string) error {
	allowed, err := tools.Resolve(competitiveProfile, competitiveTools)
	if err != nil {
		return err
	}

	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.close()

	result := patterns.Competitive(sess.ctx, sess.swarm, args[0], competitiveNumAgents, allowed)
	return printJSON(result)
}
