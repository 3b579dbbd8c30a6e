package advisors

import (
	"context"
	"fmt"

	"github.com/cabinet-advisory/core/agent"
	"github.com/cabinet-advisory/core/core/structured"
	"github.com/cabinet-advisory/core/provider"
)

// reviewTemperature stays low: anomaly detection is compliance-sensitive.
const reviewTemperature = 0.3

// Review examines journal entries and flags anomalies ahead of closing.
type Review struct {
	*agent.Base
}

// NewReview creates the review agent.
func NewReview(completer provider.Completer) (*Review, error) {
	base, err := agent.NewBase(agent.Config{
		Name:        "revision",
		Description: "Détecte les anomalies dans les écritures comptables",
		Instruction: "Tu es un réviseur comptable rigoureux. Tu examines des écritures " +
			"d'opérations diverses et tu signales toute incohérence de compte, de montant, " +
			"de libellé ou de période, sans jamais inventer d'écriture.",
		Temperature: reviewTemperature,
		Tags:        []string{"revision", "anomalies"},
	}, completer)
	if err != nil {
		return nil, err
	}
	return &Review{Base: base}, nil
}

// Process answers free-text review questions.
func (r *Review) Process(ctx context.Context, input string) string {
	return r.Converse(ctx, input)
}

// DetectAnomalies asks the provider to flag suspicious entries among the
// given écritures. An empty slice with nil error means the review found
// nothing to report.
func (r *Review) DetectAnomalies(ctx context.Context, entries []ODEntry) ([]Anomaly, error) {
	prompt := fmt.Sprintf(
		"Écritures d'opérations diverses à réviser :\n%s\n\n"+
			"Signale chaque écriture suspecte avec entry_id, severity (haute|moyenne|basse), "+
			"reason et suggestion. Réponds avec un tableau vide si rien n'est suspect.\n%s",
		structured.Serialize(entries),
		structured.Instruction("un tableau JSON d'anomalies"),
	)

	text, err := r.Complete(ctx, r.Prompt(prompt), reviewTemperature)
	if err != nil {
		return nil, fmt.Errorf("anomaly detection completion failed: %w", err)
	}

	return structured.Decode[[]Anomaly](text)
}
