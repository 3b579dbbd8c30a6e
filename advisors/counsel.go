package advisors

import (
	"context"
	"fmt"

	"github.com/cabinet-advisory/core/agent"
	"github.com/cabinet-advisory/core/core/structured"
	"github.com/cabinet-advisory/core/provider"
)

// missionTemperature keeps mission drafting conservative.
const missionTemperature = 0.3

// Counsel proposes advisory missions and drafts mission letters for client
// dossiers.
type Counsel struct {
	*agent.Base
}

// NewCounsel creates the counsel agent.
func NewCounsel(completer provider.Completer) (*Counsel, error) {
	base, err := agent.NewBase(agent.Config{
		Name:        "conseil",
		Description: "Propose des missions de conseil adaptées au dossier client",
		Instruction: "Tu es un expert-comptable senior spécialisé en conseil. " +
			"Tu identifies des missions à forte valeur ajoutée pour les clients du cabinet " +
			"et tu rédiges des lettres de mission conformes aux usages de la profession.",
		Temperature: 0.5,
		Tags:        []string{"conseil", "missions"},
	}, completer)
	if err != nil {
		return nil, err
	}
	return &Counsel{Base: base}, nil
}

// Process answers free-text questions in the counsel domain.
func (c *Counsel) Process(ctx context.Context, input string) string {
	return c.Converse(ctx, input)
}

// GenerateMissionProposals asks the provider for advisory missions matching
// the client profile. Provider and parse failures are returned as errors
// (structured.FormatError for format issues); nothing panics past this
// boundary.
func (c *Counsel) GenerateMissionProposals(ctx context.Context, profile ClientProfile) ([]MissionProposal, error) {
	prompt := fmt.Sprintf(
		"Voici le profil d'un client du cabinet :\n%s\n\n"+
			"Propose entre 3 et 5 missions de conseil adaptées à ce profil. "+
			"Chaque mission comporte title, description, deliverable, estimated_fee (euros), priority (haute|moyenne|basse) et tags.\n%s",
		structured.Serialize(profile),
		structured.Instruction("un tableau JSON de missions"),
	)

	text, err := c.Complete(ctx, c.Prompt(prompt), missionTemperature)
	if err != nil {
		return nil, fmt.Errorf("mission proposal completion failed: %w", err)
	}

	return structured.Decode[[]MissionProposal](text)
}

// DraftMissionLetter drafts a mission letter for an accepted proposal.
// Provider failure degrades to an error the host renders as a fallback.
func (c *Counsel) DraftMissionLetter(ctx context.Context, proposal MissionProposal, client ClientProfile) (string, error) {
	prompt := fmt.Sprintf(
		"Rédige une lettre de mission pour le client suivant :\n%s\n\n"+
			"Mission retenue :\n%s\n\n"+
			"La lettre respecte les usages de la profession : objet, étendue des travaux, "+
			"obligations réciproques, honoraires, durée et conditions de résiliation.",
		structured.Serialize(client),
		structured.Serialize(proposal),
	)

	text, err := c.Complete(ctx, c.Prompt(prompt), missionTemperature)
	if err != nil {
		return "", fmt.Errorf("mission letter completion failed: %w", err)
	}
	return text, nil
}
