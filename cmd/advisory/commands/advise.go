package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cabinet-advisory/core/advisors"
	"github.com/cabinet-advisory/core/printer"
)

var adviseCmd = &cobra.Command{
	Use:   "advise QUESTION...",
	Short: "Ask the safety-screened assistant",
	Long: `Ask the safety-screened assistant a question. Sensitive fiscal or
legal questions are answered with a general-information disclaimer; high-risk
questions (fraud, laundering, illegal schemes) are refused without ever
reaching the language model.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdvise,
}

func init() {
	rootCmd.AddCommand(adviseCmd)
}

func runAdvise(cmd *cobra.Command, args []string) error {
	e, err := buildEngine()
	if err != nil {
		return err
	}

	resp := e.Advise(context.Background(), strings.Join(args, " "))

	switch resp.Safety {
	case advisors.SafetyBlocked:
		printer.Warning("question refusée\n")
	case advisors.SafetyReformulated:
		printer.Warning("question sensible, réponse encadrée\n")
	}

	printer.Println(resp.Content)
	return nil
}
