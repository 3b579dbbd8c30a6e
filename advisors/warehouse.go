package advisors

import (
	"context"
	"fmt"

	"github.com/cabinet-advisory/core/agent"
	"github.com/cabinet-advisory/core/core/structured"
	"github.com/cabinet-advisory/core/provider"
)

const warehouseTemperature = 0.3

// Warehouse answers statistical questions over the cabinet's aggregated
// client dataset.
type Warehouse struct {
	*agent.Base
}

// NewWarehouse creates the warehouse query agent.
func NewWarehouse(completer provider.Completer) (*Warehouse, error) {
	base, err := agent.NewBase(agent.Config{
		Name:        "entrepot",
		Description: "Interroge les statistiques agrégées du cabinet",
		Instruction: "Tu es un analyste de données. Tu réponds aux questions statistiques " +
			"uniquement à partir du jeu de données fourni, en citant les chiffres utilisés. " +
			"Si la donnée manque, tu le dis explicitement.",
		Temperature: warehouseTemperature,
		Tags:        []string{"donnees", "statistiques"},
	}, completer)
	if err != nil {
		return nil, err
	}
	return &Warehouse{Base: base}, nil
}

// Process answers free-text questions without a dataset context.
func (w *Warehouse) Process(ctx context.Context, input string) string {
	return w.Converse(ctx, input)
}

// AnswerWithData embeds the dataset rows in the prompt and extracts a
// structured answer.
func (w *Warehouse) AnswerWithData(ctx context.Context, question string, rows []WarehouseRow) (*WarehouseAnswer, error) {
	prompt := fmt.Sprintf(
		"Jeu de données du cabinet (%d lignes) :\n%s\n\nQuestion : %s\n\n"+
			"Réponds uniquement à partir de ces lignes. La réponse comporte answer, "+
			"figures (chiffres cités) et caveats (limites de la donnée).\n%s",
		len(rows),
		structured.Serialize(rows),
		question,
		structured.Instruction("un objet JSON de réponse statistique"),
	)

	text, err := w.Complete(ctx, w.Prompt(prompt), warehouseTemperature)
	if err != nil {
		return nil, fmt.Errorf("warehouse completion failed: %w", err)
	}

	answer, err := structured.Decode[WarehouseAnswer](text)
	if err != nil {
		return nil, err
	}
	return &answer, nil
}
