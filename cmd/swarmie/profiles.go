package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/swarmie/internal/tools"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List tool profiles",
	Long: `List the built-in tool profiles accepted by --profile and inside
--allowed-tools. A profile expands to a fixed set of Claude Code tools.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range tools.ProfileNames() {
			fmt.Printf("%s  %s\n",
				color.CyanString("%-10s", name),
				strings.Join(tools.Profiles[name], ", "))
		}
	},
}
