package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
)

var (
	flagStateFile     string
	flagWorkDir       string
	flagMaxConcurrent int
	flagArchive       string
)

// CheckClaudeCLI verifies that the 'claude' CLI is available in PATH.
// Returns an error with installation instructions if not found.
func CheckClaudeCLI() error {
	_, err := exec.LookPath("claude")
	if err != nil {
		return fmt.Errorf("claude CLI not found in PATH\n\n" +
			"swarmie orchestrates the Claude Code CLI, so the 'claude' binary must be installed.\n\n" +
			"Install it with:\n" +
			"  npm install -g @anthropic-ai/claude-code\n\n" +
			"For more information, visit:\n" +
			"  https://docs.anthropic.com/en/docs/claude-code\n\n" +
			"Alternatively, set anthropic.use_api (or SWARMIE_USE_API=true) to call the API directly.")
	}
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "swarmie",
	Short: "Claude Code swarm orchestrator",
	Long: `swarmie coordinates multiple Claude Code invocations with persistent
named agents, shared context, and orchestration patterns.

Agents are personas with a role, an optional system prompt, a tool
allow-list, and a rolling memory of their recent work. Agents, shared
context, and invocation history persist in a JSON state file between
runs, so a swarm survives across sequential CLI sessions.

Orchestration patterns:
  fan-out       run independent tasks in parallel
  pipeline      feed each stage's output into the next
  hierarchical  plan a goal into subtasks, execute, synthesize
  competitive   several attempts at one task, judged for the best
  map-reduce    apply a prompt per item, then reduce the results

Agent management lives under 'swarmie manage'.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagStateFile, "state-file", "", "Path to the swarm state file (default from config: .swarm_state.json)")
	rootCmd.PersistentFlags().StringVar(&flagWorkDir, "cwd", "", "Working directory for Claude invocations (default: current directory)")
	rootCmd.PersistentFlags().IntVar(&flagMaxConcurrent, "max-concurrent", 0, "Maximum concurrent Claude invocations (default from config: 5)")
	rootCmd.PersistentFlags().StringVar(&flagArchive, "archive", "", "Record every invocation into an SQLite archive at this path")

	rootCmd.AddCommand(fanOutCmd)
	rootCmd.AddCommand(pipelineCmd)
	rootCmd.AddCommand(hierarchicalCmd)
	rootCmd.AddCommand(competitiveCmd)
	rootCmd.AddCommand(mapReduceCmd)
	rootCmd.AddCommand(manageCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(versionCmd)
}
