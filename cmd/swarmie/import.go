package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/swarmie/internal/agentdef"
)

var importCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Register agents from a YAML definition file",
	Long: `Register every agent defined in a YAML file. Existing agents with the
same name are overwritten.

File format:
  agents:
    - name: security
      role: security engineer
      system_prompt: Be thorough.
      profile: readonly
    - name: builder
      role: developer
      allowed_tools: [Read, Write, Edit, Bash]`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defs, err := agentdef.Load(args[0])
		if err != nil {
			return err
		}

		sess, err := newSession()
		if err != nil {
			return err
		}
		defer sess.close()

		for _, def := range defs {
			sess.swarm.AddAgent(def.Name, def.Role, def.SystemPrompt, def.AllowedTools)
			printStatus("✓", fmt.Sprintf("registered agent %q", def.Name), color.FgGreen)
		}
		return nil
	},
}
