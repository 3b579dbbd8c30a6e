package advisors_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabinet-advisory/core/advisors"
	"github.com/cabinet-advisory/core/core/structured"
)

const missionsBlock = "Voici mes propositions :\n```json\n[\n" +
	`  {"title": "Tableau de bord mensuel", "description": "Mise en place d'un reporting", "estimated_fee": 3600, "priority": "haute"},` + "\n" +
	`  {"title": "Prévisionnel de trésorerie", "description": "Budget de trésorerie glissant", "estimated_fee": 2400, "priority": "moyenne"},` + "\n" +
	`  {"title": "Accompagnement social", "description": "Audit des bulletins de paie", "estimated_fee": 1800, "priority": "basse"}` + "\n" +
	"]\n```\nN'hésitez pas à revenir vers moi."

func testProfile() advisors.ClientProfile {
	return advisors.ClientProfile{
		Name:      "SARL Boulangerie Martin",
		Sector:    "artisanat alimentaire",
		Headcount: 8,
		Revenue:   640000,
		LegalForm: "SARL",
	}
}

func TestGenerateMissionProposalsRoundTrip(t *testing.T) {
	stub := &stubCompleter{content: missionsBlock}
	counsel, err := advisors.NewCounsel(stub)
	require.NoError(t, err)

	missions, err := counsel.GenerateMissionProposals(context.Background(), testProfile())
	require.NoError(t, err)

	require.Len(t, missions, 3)
	assert.Equal(t, "Tableau de bord mensuel", missions[0].Title)
	assert.Equal(t, 3600.0, missions[0].EstimatedFee)
	assert.Equal(t, "haute", missions[0].Priority)
	assert.Equal(t, "Accompagnement social", missions[2].Title)

	// Drafting runs at the conservative mission temperature.
	require.Len(t, stub.calls, 1)
	assert.InDelta(t, 0.3, stub.calls[0].Temperature, 1e-9)
}

func TestGenerateMissionProposalsMissingBlock(t *testing.T) {
	stub := &stubCompleter{content: "Je n'ai pas de données structurées à fournir."}
	counsel, err := advisors.NewCounsel(stub)
	require.NoError(t, err)

	_, err = counsel.GenerateMissionProposals(context.Background(), testProfile())
	require.Error(t, err)
	assert.True(t, structured.IsFormatError(err))
}

func TestGenerateMissionProposalsProviderFailure(t *testing.T) {
	stub := &stubCompleter{err: errors.New("timeout")}
	counsel, err := advisors.NewCounsel(stub)
	require.NoError(t, err)

	_, err = counsel.GenerateMissionProposals(context.Background(), testProfile())
	require.Error(t, err)
	assert.False(t, structured.IsFormatError(err))
}

func TestDraftMissionLetter(t *testing.T) {
	stub := &stubCompleter{content: "Madame, Monsieur,\n\nNous avons le plaisir..."}
	counsel, err := advisors.NewCounsel(stub)
	require.NoError(t, err)

	letter, err := counsel.DraftMissionLetter(context.Background(), advisors.MissionProposal{
		Title: "Tableau de bord mensuel",
	}, testProfile())
	require.NoError(t, err)

	assert.Contains(t, letter, "Madame, Monsieur")
	require.Len(t, stub.calls, 1)
	assert.InDelta(t, 0.3, stub.calls[0].Temperature, 1e-9)
	assert.Contains(t, stub.calls[0].Messages[1].Content, "Boulangerie Martin")
}
