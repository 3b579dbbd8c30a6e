package advisors

import (
	"context"
	"fmt"

	"github.com/cabinet-advisory/core/agent"
	"github.com/cabinet-advisory/core/core/structured"
	"github.com/cabinet-advisory/core/provider"
)

// scenarioTemperature leaves room for exploratory trajectories.
const scenarioTemperature = 0.7

// Forecaster produces financial forecast scenarios from a client snapshot.
type Forecaster struct {
	*agent.Base
}

// NewForecaster creates the forecaster agent.
func NewForecaster(completer provider.Completer) (*Forecaster, error) {
	base, err := agent.NewBase(agent.Config{
		Name:        "prevision",
		Description: "Construit des scénarios prévisionnels à partir des données financières",
		Instruction: "Tu es un analyste financier au sein d'un cabinet d'expertise comptable. " +
			"Tu construis des scénarios prévisionnels chiffrés, prudents et argumentés.",
		Temperature: 0.6,
		Tags:        []string{"prevision", "scenarios"},
	}, completer)
	if err != nil {
		return nil, err
	}
	return &Forecaster{Base: base}, nil
}

// Process answers free-text forecasting questions.
func (f *Forecaster) Process(ctx context.Context, input string) string {
	return f.Converse(ctx, input)
}

// GenerateScenarios asks the provider for count forecast scenarios built on
// the snapshot.
func (f *Forecaster) GenerateScenarios(ctx context.Context, snapshot FinancialSnapshot, count int) ([]Scenario, error) {
	if count <= 0 {
		count = 3
	}

	prompt := fmt.Sprintf(
		"Situation financière du client :\n%s\n\n"+
			"Construis %d scénarios prévisionnels distincts (par exemple optimiste, central, dégradé). "+
			"Chaque scénario comporte name, assumption, revenue_growth_pct, projected_net_income, "+
			"probability (faible|moyenne|forte) et commentary.\n%s",
		structured.Serialize(snapshot),
		count,
		structured.Instruction("un tableau JSON de scénarios"),
	)

	text, err := f.Complete(ctx, f.Prompt(prompt), scenarioTemperature)
	if err != nil {
		return nil, fmt.Errorf("scenario completion failed: %w", err)
	}

	return structured.Decode[[]Scenario](text)
}
