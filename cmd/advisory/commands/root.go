package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cabinet-advisory/core/engine"
	"github.com/cabinet-advisory/core/printer"
)

var (
	version string
	commit  string
	date    string

	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "advisory",
	Short: "Advisory - multi-agent advisory core for accounting firms",
	Long: `Advisory hosts a registry of specialized advisory agents (missions,
forecasting, entry review, sector analysis, client strategy, data warehouse
and a safety-screened assistant) behind a single orchestrator.

Every exchange is recorded in an auditable journal, and cross-source
insights are ranked and capped per category.`,
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the CLI. Cobra's own error printing is silenced; commands
// print formatted errors through the printer package instead.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version string shown by --version.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (JSON or YAML)")
}

// buildEngine assembles the advisory runtime from the --config file, or
// from defaults when none is given.
func buildEngine(opts ...engine.Option) (*engine.Engine, error) {
	cfg := engine.DefaultConfig()
	if configFile != "" {
		loaded, err := engine.LoadConfig(configFile)
		if err != nil {
			return nil, printer.Error("configuration invalide", err.Error(), []string{
				"Vérifiez la syntaxe du fichier passé via --config.",
			})
		}
		cfg = *loaded
	}

	e, err := engine.New(cfg, opts...)
	if err != nil {
		return nil, printer.Error("initialisation impossible", err.Error(), nil)
	}
	return e, nil
}
