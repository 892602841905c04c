package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/swarmie/internal/patterns"
	"github.com/ShayCichocki/swarmie/internal/tools"
)

var (
	mapReduceProfile  string
	mapReduceTools    []string
	mapReduceTemplate string
	mapReduceReduce   string
)

var mapReduceCmd = &cobra.Command{
	Use:   "map-reduce <item>...",
	Short: "Apply a prompt template per item, then reduce the results",
	Long: `Substitute each item into the --map template's {item} placeholder and
run the resulting prompts in parallel, then run the --reduce prompt
once over all map results.

Example:
  swarmie map-reduce auth.py billing.py orders.py \
      --map "Summarize the responsibilities of {item} in two sentences." \
      --reduce "Write an architecture overview from these file summaries."`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMapReduce,
}

func init() {
	mapReduceCmd.Flags().StringVar(&mapReduceTemplate, "map", "", "Map prompt template containing {item} (required)")
	mapReduceCmd.Flags().StringVar(&mapReduceReduce, "reduce", "", "Reduce prompt run over all map results (required)")
	mapReduceCmd.Flags().StringVar(&mapReduceProfile, "profile", "", "Tool profile to allow (see 'swarmie profiles')")
	mapReduceCmd.Flags().StringSliceVar(&mapReduceTools, "allowed-tools", nil, "Tools to allow (names or profile names)")
	mapReduceCmd.MarkFlagRequired("map")
	mapReduceCmd.MarkFlagRequired("reduce")
}

func runMapReduce(cmd *cobra.Command, args []string) error {
	if mapReduceTemplate == "" || mapReduceReduce == "" {
		return fmt.Errorf("both --map and --reduce are required")
	}

	allowed, err := tools.Resolve(mapReduceProfile, mapReduceTools)
	if err != nil {
		return err
	}

	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.close()

	result := patterns.MapReduce(sess.ctx, sess.swarm, args, mapReduceTemplate, mapReduceReduce, allowed)
	return printJSON(result)
}
