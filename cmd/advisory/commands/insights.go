package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/cabinet-advisory/core/insights"
	"github.com/cabinet-advisory/core/printer"
)

var insightsFrom string

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Rank candidate insights and generate summaries",
	Long: `Load candidate insights from a JSON file, run them through the
admission gate (minimum confidence and relevance, per-type cap) and print
the retained ranking.

Candidate file example:
  [
    {"type": "financial", "title": "Trésorerie tendue",
     "description": "BFR en hausse sur 3 clients BTP",
     "confidence": "high", "relevance": 8,
     "source": {"agent": "revision"}}
  ]`,
	RunE: runInsightsList,
}

var insightsSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Generate a narrative summary of the retained insights",
	RunE:  runInsightsSummary,
}

func init() {
	insightsCmd.PersistentFlags().StringVar(&insightsFrom, "from", "", "JSON file of candidate insights (required)")
	insightsCmd.AddCommand(insightsSummaryCmd)
	rootCmd.AddCommand(insightsCmd)
}

func loadInsights(e *insights.Engine) (admitted int, total int, err error) {
	if insightsFrom == "" {
		return 0, 0, printer.Error("fichier de candidats requis",
			"Indiquez les insights candidats via --from.", []string{
				"Exemple : advisory insights --from candidats.json",
			})
	}

	data, err := os.ReadFile(insightsFrom)
	if err != nil {
		return 0, 0, printer.Error("candidats illisibles", err.Error(), nil)
	}
	var candidates []insights.Insight
	if err := json.Unmarshal(data, &candidates); err != nil {
		return 0, 0, printer.Error("candidats invalides", err.Error(), []string{
			"Le fichier doit contenir un tableau JSON d'insights.",
		})
	}

	for _, candidate := range candidates {
		if _, retained := e.AddInsight(candidate); retained {
			admitted++
		}
	}
	return admitted, len(candidates), nil
}

func runInsightsList(cmd *cobra.Command, args []string) error {
	e, err := buildEngine()
	if err != nil {
		return err
	}

	admitted, total, err := loadInsights(e.Insights())
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Score", "Type", "Confiance", "Titre", "Source"})
	table.SetAutoWrapText(false)
	for _, insight := range e.Insights().All() {
		table.Append([]string{
			fmt.Sprintf("%d", insight.Score()),
			string(insight.Type),
			string(insight.Confidence),
			insight.Title,
			insight.Source.Agent,
		})
	}
	table.Render()

	fmt.Printf("\n%d retenus sur %d candidats\n", admitted, total)
	return nil
}

func runInsightsSummary(cmd *cobra.Command, args []string) error {
	e, err := buildEngine()
	if err != nil {
		return err
	}

	if _, _, err := loadInsights(e.Insights()); err != nil {
		return err
	}

	printer.Println(e.Insights().GenerateSummary(context.Background()))
	return nil
}
