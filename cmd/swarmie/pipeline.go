package main

import (
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/swarmie/internal/patterns"
	"github.com/ShayCichocki/swarmie/internal/tools"
)

var (
	pipelineProfile string
	pipelineTools   []string
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline <stage>...",
	Short: "Run stages sequentially, feeding each output into the next",
	Long: `Run stages strictly in order. From the second stage on, the previous
stage's output is appended to the prompt under a '## Previous Stage
Output' heading. A failed stage does not stop the pipeline; its error
text flows forward instead.

Example:
  swarmie pipeline "draft an outline for a blog post about Go generics" \
                   "expand the outline into a full post" \
                   "tighten the prose and fix any errors"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPipeline,
}

func init() {
	pipelineCmd.Flags().StringVar(&pipelineProfile, "profile", "", "Tool profile to allow (see 'swarmie profiles')")
	pipelineCmd.Flags().StringSliceVar(&pipelineTools, "allowed-tools", nil, "Tools to allow (names or profile names)")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	allowed, err := tools.Resolve(pipelineProfile, pipelineTools)
	if err != nil {
		return err
	}

	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.close()

	result := patterns.Pipeline(sess.ctx, sess.swarm, args, allowed)
	return printJSON(result)
}
