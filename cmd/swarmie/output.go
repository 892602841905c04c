package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"

	"github.com/ShayCichocki/swarmie/pkg/models"
)

// printJSON writes a value as indented JSON to stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// printStatus writes a colored status symbol and message.
func printStatus(symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Printf("%s %s\n", c.Sprint(symbol), message)
}

// printAgentResults prints a colored one-line summary per agent result
// followed by the full JSON payload.
func printAgentResults(results []models.AgentResult) error {
	for _, r := range results {
		if r.Success {
			printStatus("✓", r.Agent, color.FgGreen)
		} else {
			printStatus("✗", fmt.Sprintf("%s: %s", r.Agent, r.Error), color.FgRed)
		}
	}
	return printJSON(results)
}
