package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/swarmie/internal/tools"
)

var manageCmd = &cobra.Command{
	Use:   "manage",
	Short: "Manage agents, shared context, and swarm state",
	Long: `Manage the persistent swarm: register and remove agents, invoke them,
and maintain the shared context all agents see.

State lives in a JSON file (default .swarm_state.json) and carries
agents with their memory, the shared context, and the most recent 100
invocations.`,
}

var (
	addAgentRole         string
	addAgentSystemPrompt string
	addAgentProfile      string
	addAgentTools        []string
)

var addAgentCmd = &cobra.Command{
	Use:   "add-agent <name>",
	Short: "Register an agent persona",
	Long: `Register an agent with a role, an optional system prompt, and a tool
allow-list. Registering an existing name overwrites that agent and
discards its memory.

Example:
  swarmie manage add-agent security --role "security engineer" \
      --system-prompt "Be thorough and flag anything suspicious." \
      --profile readonly`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		allowed, err := tools.Resolve(addAgentProfile, addAgentTools)
		if err != nil {
			return err
		}

		sess, err := newSession()
		if err != nil {
			return err
		}
		defer sess.close()

		agent := sess.swarm.AddAgent(args[0], addAgentRole, addAgentSystemPrompt, allowed)
		printStatus("✓", fmt.Sprintf("registered agent %q", agent.Name), color.FgGreen)
		return nil
	},
}

var removeAgentCmd = &cobra.Command{
	Use:   "remove-agent <name>",
	Short: "Remove an agent and its memory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}
		defer sess.close()

		if !sess.swarm.RemoveAgent(args[0]) {
			return fmt.Errorf("agent %q not found", args[0])
		}
		printStatus("✓", fmt.Sprintf("removed agent %q", args[0]), color.FgGreen)
		return nil
	},
}

var listAgentsCmd = &cobra.Command{
	Use:   "list-agents",
	Short: "List registered agents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}
		defer sess.close()

		return printJSON(sess.swarm.ListAgents())
	},
}

var invokeCmd = &cobra.Command{
	Use:   "invoke <agent> <task>",
	Short: "Run a task against one agent",
	Long: `Run a task against a registered agent. The prompt carries the agent's
persona, the shared context, and the agent's five most recent memory
entries. The result is appended to the agent's memory either way.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}
		defer sess.close()

		result := sess.swarm.Invoke(sess.ctx, args[0], args[1])
		return printJSON(result)
	},
}

var dispatchCmd = &cobra.Command{
	Use:   "dispatch <agent>:<task>...",
	Short: "Run different tasks against different agents in parallel",
	Long: `Run one task per agent concurrently, bounded by --max-concurrent.
Each argument is an agent name and a task separated by the first colon.

Example:
  swarmie manage dispatch "security:scan auth.py" "docs:update the README"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		assignments, err := parseAssignments(args)
		if err != nil {
			return err
		}

		sess, err := newSession()
		if err != nil {
			return err
		}
		defer sess.close()

		results := sess.swarm.Dispatch(sess.ctx, assignments)
		return printAgentResults(results)
	},
}

var broadcastCmd = &cobra.Command{
	Use:   "broadcast <task>",
	Short: "Send the same task to every registered agent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}
		defer sess.close()

		results := sess.swarm.Broadcast(sess.ctx, args[0])
		return printAgentResults(results)
	},
}

var setContextCmd = &cobra.Command{
	Use:   "set-context <key> <value>",
	Short: "Set a shared context key visible to all agents",
	Long: `Set a shared context key. The value is parsed as JSON when possible,
so numbers, booleans, arrays, and objects round-trip with their types;
anything else is stored as a plain string.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}
		defer sess.close()

		sess.swarm.UpdateContext(args[0], parseContextValue(args[1]))
		printStatus("✓", fmt.Sprintf("set context %q", args[0]), color.FgGreen)
		return nil
	},
}

var clearContextCmd = &cobra.Command{
	Use:   "clear-context",
	Short: "Remove all shared context",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}
		defer sess.close()

		sess.swarm.ClearContext()
		printStatus("✓", "cleared shared context", color.FgGreen)
		return nil
	},
}

var showContextCmd = &cobra.Command{
	Use:   "show-context",
	Short: "Print the shared context",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}
		defer sess.close()

		return printJSON(sess.swarm.Context())
	},
}

func init() {
	addAgentCmd.Flags().StringVar(&addAgentRole, "role", "", "Agent role, used in the identity line of every prompt")
	addAgentCmd.Flags().StringVar(&addAgentSystemPrompt, "system-prompt", "", "System prompt prepended to every task")
	addAgentCmd.Flags().StringVar(&addAgentProfile, "profile", "", "Tool profile to allow (see 'swarmie profiles')")
	addAgentCmd.Flags().StringSliceVar(&addAgentTools, "allowed-tools", nil, "Tools to allow (names or profile names)")

	manageCmd.AddCommand(addAgentCmd)
	manageCmd.AddCommand(removeAgentCmd)
	manageCmd.AddCommand(listAgentsCmd)
	manageCmd.AddCommand(invokeCmd)
	manageCmd.AddCommand(dispatchCmd)
	manageCmd.AddCommand(broadcastCmd)
	manageCmd.AddCommand(setContextCmd)
	manageCmd.AddCommand(clearContextCmd)
	manageCmd.AddCommand(showContextCmd)
	manageCmd.AddCommand(importCmd)
	manageCmd.AddCommand(historyCmd)
	manageCmd.AddCommand(watchCmd)
}

// parseAssignments parses <agent>:<task> pairs, splitting on the first
// colon so tasks may themselves contain colons.
func parseAssignments(args []string) (map[string]string, error) {
	assignments := make(map[string]string, len(args))
	for _, arg := range args {
		name, task, found := strings.Cut(arg, ":")
		if !found || name == "" || task == "" {
			return nil, fmt.Errorf("invalid assignment %q: expected <agent>:<task>", arg)
		}
		assignments[name] = task
	}
	return assignments, nil
}

// parseContextValue parses a context value as JSON when possible so
// numbers, booleans, arrays, and objects keep their types; anything
// else is stored as a plain string.
func parseContextValue(raw string) any {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return raw
	}
	return value
}
