package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cabinet-advisory/core/printer"
)

var askExportJournal bool

var askCmd = &cobra.Command{
	Use:   "ask AGENT QUESTION...",
	Short: "Send a question to a named agent",
	Long: `Send a free-text question to one of the registered agents and print
its reply. The exchange is recorded in the agent's memory and in the
orchestrator journal.

Examples:
  advisory ask conseil "Quelles missions proposer à une SARL du BTP ?"
  advisory ask revision "Que penser d'une OD de régularisation de 50k ?"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askExportJournal, "export-journal", false, "Persist the journal to the snapshot store afterwards")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	e, err := buildEngine()
	if err != nil {
		return err
	}

	ctx := context.Background()
	agentName := args[0]
	question := strings.Join(args[1:], " ")

	answer, err := e.Ask(ctx, agentName, question)
	if err != nil {
		return printer.Error("agent introuvable", err.Error(), []string{
			"Lancez 'advisory agents' pour lister les agents enregistrés.",
		})
	}

	printer.Agent(agentName)
	printer.Println(answer)

	if askExportJournal {
		if err := e.ExportJournal(ctx); err != nil {
			return printer.Error("export du journal impossible", err.Error(), []string{
				"Configurez 'store.path' ou 'store.redis_addr' dans le fichier de configuration.",
			})
		}
		printer.Success("journal exporté\n")
	}

	return nil
}
