package advisors

import (
	"context"
	"fmt"

	"github.com/cabinet-advisory/core/agent"
	"github.com/cabinet-advisory/core/core/structured"
	"github.com/cabinet-advisory/core/provider"
)

const strategyTemperature = 0.6

// ClientStrategy recommends development plans for client dossiers.
type ClientStrategy struct {
	*agent.Base
}

// NewClientStrategy creates the client strategy agent.
func NewClientStrategy(completer provider.Completer) (*ClientStrategy, error) {
	base, err := agent.NewBase(agent.Config{
		Name:        "strategie",
		Description: "Recommande des plans de développement pour les clients",
		Instruction: "Tu es un conseiller en stratégie d'entreprise au sein d'un cabinet " +
			"d'expertise comptable. Tu formules des plans d'action concrets et hiérarchisés.",
		Temperature: strategyTemperature,
		Tags:        []string{"strategie", "developpement"},
	}, completer)
	if err != nil {
		return nil, err
	}
	return &ClientStrategy{Base: base}, nil
}

// Process answers free-text strategy questions.
func (c *ClientStrategy) Process(ctx context.Context, input string) string {
	return c.Converse(ctx, input)
}

// RecommendPlan asks the provider for a strategic plan matching the profile.
func (c *ClientStrategy) RecommendPlan(ctx context.Context, profile ClientProfile) (*StrategicPlan, error) {
	prompt := fmt.Sprintf(
		"Profil du client :\n%s\n\n"+
			"Propose un plan stratégique avec horizon (par exemple \"18 mois\"), objectives, "+
			"actions ordonnées par priorité et risques principaux.\n%s",
		structured.Serialize(profile),
		structured.Instruction("un objet JSON de plan stratégique"),
	)

	text, err := c.Complete(ctx, c.Prompt(prompt), strategyTemperature)
	if err != nil {
		return nil, fmt.Errorf("strategic plan completion failed: %w", err)
	}

	plan, err := structured.Decode[StrategicPlan](text)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}
