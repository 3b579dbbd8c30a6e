package advisors

import (
	"context"
	"fmt"

	"github.com/cabinet-advisory/core/agent"
	"github.com/cabinet-advisory/core/core/structured"
	"github.com/cabinet-advisory/core/provider"
)

const sectoralTemperature = 0.5

// SectoralAnalyst situates clients within their sector, optionally enriched
// by the retrieval provider's news context.
type SectoralAnalyst struct {
	*agent.Base
	retriever provider.Retriever
}

// NewSectoralAnalyst creates the sectoral analyst. retriever may be nil, in
// which case news enrichment is skipped.
func NewSectoralAnalyst(completer provider.Completer, retriever provider.Retriever) (*SectoralAnalyst, error) {
	base, err := agent.NewBase(agent.Config{
		Name:        "sectoriel",
		Description: "Analyse la position du client au sein de son secteur",
		Instruction: "Tu es un analyste sectoriel. Tu compares les indicateurs d'un client " +
			"aux moyennes de son secteur et tu relies l'actualité économique à sa situation.",
		Temperature: sectoralTemperature,
		Tags:        []string{"secteur", "benchmark"},
	}, completer)
	if err != nil {
		return nil, err
	}
	return &SectoralAnalyst{Base: base, retriever: retriever}, nil
}

// Process answers free-text sectoral questions.
func (s *SectoralAnalyst) Process(ctx context.Context, input string) string {
	return s.Converse(ctx, input)
}

// SectorNews fetches recent prose on the sector through the retrieval
// provider. Retrieval failure is not fatal: the analyst returns an empty
// context and the caller proceeds without enrichment.
func (s *SectoralAnalyst) SectorNews(ctx context.Context, sector string) string {
	if s.retriever == nil {
		return ""
	}

	news, err := s.retriever.Updates(ctx, fmt.Sprintf("actualité économique secteur %s", sector))
	if err != nil {
		return ""
	}
	return news
}

// CompareToSector relates the client's metrics to sector averages, embedding
// retrieved news when available.
func (s *SectoralAnalyst) CompareToSector(ctx context.Context, metrics FinancialSnapshot, averages map[string]float64, sector string) (*SectorComparison, error) {
	news := s.SectorNews(ctx, sector)

	prompt := fmt.Sprintf(
		"Secteur : %s\n\nIndicateurs du client :\n%s\n\nMoyennes sectorielles :\n%s\n",
		sector,
		structured.Serialize(metrics),
		structured.Serialize(averages),
	)
	if news != "" {
		prompt += fmt.Sprintf("\nActualité récente du secteur :\n%s\n", news)
	}
	prompt += fmt.Sprintf(
		"\nPositionne le client par rapport à son secteur. La réponse comporte sector, "+
			"position (au-dessus|dans la moyenne|en-dessous), strengths, weaknesses et commentary.\n%s",
		structured.Instruction("un objet JSON de comparaison sectorielle"),
	)

	text, err := s.Complete(ctx, s.Prompt(prompt), sectoralTemperature)
	if err != nil {
		return nil, fmt.Errorf("sector comparison completion failed: %w", err)
	}

	comparison, err := structured.Decode[SectorComparison](text)
	if err != nil {
		return nil, err
	}
	return &comparison, nil
}
