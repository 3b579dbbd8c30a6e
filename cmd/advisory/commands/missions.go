package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/cabinet-advisory/core/advisors"
	"github.com/cabinet-advisory/core/printer"
)

var missionsLetter int

var missionsCmd = &cobra.Command{
	Use:   "missions PROFILE_FILE",
	Short: "Propose advisory missions for a client profile",
	Long: `Read a client profile (JSON) and ask the counsel agent for advisory
mission proposals. With --letter N, also drafts the mission letter for the
Nth proposal (1-based).

Profile file example:
  {
    "name": "Menuiserie Dupont",
    "sector": "BTP",
    "headcount": 12,
    "revenue": 820000,
    "legal_form": "SARL",
    "pain_points": ["trésorerie tendue", "pas de suivi analytique"]
  }`,
	Args: cobra.ExactArgs(1),
	RunE: runMissions,
}

func init() {
	missionsCmd.Flags().IntVar(&missionsLetter, "letter", 0, "Draft the mission letter for the Nth proposal")
	rootCmd.AddCommand(missionsCmd)
}

func runMissions(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return printer.Error("profil client illisible", err.Error(), nil)
	}
	var profile advisors.ClientProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return printer.Error("profil client invalide", err.Error(), []string{
			"Le fichier doit contenir un objet JSON avec au moins 'name' et 'sector'.",
		})
	}

	e, err := buildEngine()
	if err != nil {
		return err
	}

	ctx := context.Background()
	ag, err := e.Orchestrator().Get("conseil")
	if err != nil {
		return printer.Error("agent conseil indisponible", err.Error(), nil)
	}
	counsel := ag.(*advisors.Counsel)

	proposals, err := counsel.GenerateMissionProposals(ctx, profile)
	if err != nil {
		return printer.Error("génération des missions impossible", err.Error(), []string{
			"Vérifiez la clé API et la connectivité vers le fournisseur.",
		})
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Mission", "Priorité", "Honoraires", "Description"})
	table.SetAutoWrapText(false)
	for i, p := range proposals {
		fee := "-"
		if p.EstimatedFee > 0 {
			fee = fmt.Sprintf("%.0f €", p.EstimatedFee)
		}
		table.Append([]string{
			fmt.Sprintf("%d", i+1), p.Title, p.Priority, fee, p.Description,
		})
	}
	table.Render()

	if missionsLetter > 0 {
		if missionsLetter > len(proposals) {
			return printer.Error("proposition inexistante",
				fmt.Sprintf("--letter=%d mais seulement %d propositions.", missionsLetter, len(proposals)), nil)
		}
		letter, err := counsel.DraftMissionLetter(ctx, proposals[missionsLetter-1], profile)
		if err != nil {
			return printer.Error("rédaction de la lettre impossible", err.Error(), nil)
		}
		printer.Println("\n" + strings.TrimSpace(letter))
	}

	return nil
}
