package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var agentsJSON bool

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the registered advisory agents",
	Long: `List every agent registered with the orchestrator, in registration
order. Use --json for machine-readable output.`,
	RunE: runAgents,
}

func init() {
	agentsCmd.Flags().BoolVar(&agentsJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(agentsCmd)
}

func runAgents(cmd *cobra.Command, args []string) error {
	e, err := buildEngine()
	if err != nil {
		return err
	}

	infos := e.Orchestrator().Agents()

	if agentsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Agent", "Description"})
	table.SetAutoWrapText(false)
	for _, info := range infos {
		table.Append([]string{info.Name, info.Description})
	}
	table.Render()

	fmt.Printf("\n%d agents enregistrés\n", len(infos))
	return nil
}
