package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/cabinet-advisory/core/agent"
	"github.com/cabinet-advisory/core/printer"
	"github.com/cabinet-advisory/core/store"
)

var journalCmd = &cobra.Command{
	Use:   "journal [KEY]",
	Short: "Inspect exported audit journals",
	Long: `Without arguments, lists the journal snapshots present in the
snapshot store. With a key, prints the entries of that snapshot as a table.

Snapshots are written by 'advisory ask --export-journal'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runJournal,
}

func init() {
	rootCmd.AddCommand(journalCmd)
}

func runJournal(cmd *cobra.Command, args []string) error {
	e, err := buildEngine()
	if err != nil {
		return err
	}
	snapshots := e.Store()
	if snapshots == nil {
		return printer.Error("aucun store configuré",
			"La consultation du journal nécessite un store de snapshots.", []string{
				"Configurez 'store.path' ou 'store.redis_addr' dans le fichier de configuration.",
			})
	}

	ctx := context.Background()

	if len(args) == 0 {
		keys, err := snapshots.List(ctx)
		if err != nil {
			return printer.Error("lecture du store impossible", err.Error(), nil)
		}
		found := 0
		for _, key := range keys {
			if strings.HasPrefix(key, store.NamespaceJournal+"/") {
				printer.Println(key)
				found++
			}
		}
		if found == 0 {
			printer.Println("Aucun journal exporté.")
		}
		return nil
	}

	entries, err := snapshots.Load(ctx, args[0])
	if err != nil {
		return printer.Error("journal introuvable", err.Error(), []string{
			"Lancez 'advisory journal' pour lister les snapshots disponibles.",
		})
	}

	var trail []agent.ConscienceEntry
	if err := json.Unmarshal(entries[0].Value, &trail); err != nil {
		return printer.Error("journal illisible", err.Error(), nil)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Horodatage", "Agent", "Entrée"})
	table.SetAutoWrapText(false)
	for _, entry := range trail {
		table.Append([]string{
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.Agent,
			entry.Entry,
		})
	}
	table.Render()

	fmt.Printf("\n%d entrées\n", len(trail))
	return nil
}
