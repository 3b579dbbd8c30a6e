package advisors

import (
	"context"
	"strings"

	"github.com/cabinet-advisory/core/agent"
	"github.com/cabinet-advisory/core/core/protocol"
	"github.com/cabinet-advisory/core/provider"
)

// Safety is the terminal classification of a safe-advisor query.
type Safety string

const (
	SafetySafe         Safety = "safe"
	SafetyReformulated Safety = "reformulated"
	SafetyBlocked      Safety = "blocked"
)

// SafeResponse is the safe advisor's answer, tagged with its classification.
type SafeResponse struct {
	Content string `json:"content"`
	Safety  Safety `json:"safety"`
}

// sensitiveTerms triggers reformulation when matched case-insensitively as a
// substring of the query.
var sensitiveTerms = []string{
	"fiscal",
	"tva",
	"impôt",
	"impot",
	"taxe",
	"juridique",
	"légal",
	"legal",
	"fraude",
	"blanchiment",
	"contourner",
	"contournement",
	"illégal",
	"illegal",
	"illégalité",
	"évasion",
	"evasion",
	"sanction",
	"redressement",
}

// highRiskTerms escalates a sensitive match to a refusal.
var highRiskTerms = []string{
	"fraude",
	"illégal",
	"illegal",
	"blanchiment",
}

const refusalMessage = "Je ne peux pas répondre à cette demande. " +
	"Pour toute question touchant à la fraude, au blanchiment ou à des montages illégaux, " +
	"rapprochez-vous d'un professionnel qualifié (expert-comptable ou avocat)."

const disclaimerPrefix = "[Question encadrée — réponse générale uniquement, sans conseil fiscal ou juridique personnalisé] "

const warningBanner = "⚠️ Cette réponse est une information générale et ne constitue pas un conseil fiscal ou juridique. " +
	"Consultez votre expert-comptable pour votre situation particulière.\n\n"

// SafeAdvisor answers general questions behind a sensitivity gate. Each
// query is classified independently: SAFE queries pass through unmodified,
// REFORMULATED queries gain a disclaimer and warning banner, and BLOCKED
// queries get a fixed refusal without a provider call.
type SafeAdvisor struct {
	*agent.Base
}

// NewSafeAdvisor creates the safety-gated advisory agent.
func NewSafeAdvisor(completer provider.Completer) (*SafeAdvisor, error) {
	base, err := agent.NewBase(agent.Config{
		Name:        "assistant-securise",
		Description: "Répond aux questions générales derrière un filtre de sensibilité",
		Instruction: "Tu es un assistant prudent d'un cabinet d'expertise comptable. " +
			"Tu donnes des informations générales et tu renvoies systématiquement vers un " +
			"professionnel pour les situations particulières.",
		Temperature: 0.4,
		Tags:        []string{"assistance", "conformite"},
	}, completer)
	if err != nil {
		return nil, err
	}
	return &SafeAdvisor{Base: base}, nil
}

// Classify scans the query against the sensitive and high-risk term lists
// and returns the terminal outcome for this call.
func (s *SafeAdvisor) Classify(query string) Safety {
	lowered := strings.ToLower(query)

	sensitive := false
	for _, term := range sensitiveTerms {
		if strings.Contains(lowered, term) {
			sensitive = true
			break
		}
	}
	if !sensitive {
		return SafetySafe
	}

	for _, term := range highRiskTerms {
		if strings.Contains(lowered, term) {
			return SafetyBlocked
		}
	}
	return SafetyReformulated
}

// Advise classifies the query and answers accordingly. Provider failure on
// the safe and reformulated paths degrades to the apology string while
// keeping the classification tag.
func (s *SafeAdvisor) Advise(ctx context.Context, query string) SafeResponse {
	switch s.Classify(query) {
	case SafetyBlocked:
		s.ReceiveMessage(ctx, protocol.NewMessage(protocol.RoleUser, query))
		s.SendMessage(ctx, refusalMessage, map[string]string{"safety": string(SafetyBlocked)})
		return SafeResponse{Content: refusalMessage, Safety: SafetyBlocked}

	case SafetyReformulated:
		answer := s.Converse(ctx, disclaimerPrefix+query)
		return SafeResponse{Content: warningBanner + answer, Safety: SafetyReformulated}

	default:
		return SafeResponse{Content: s.Converse(ctx, query), Safety: SafetySafe}
	}
}

// Process satisfies the Processor contract; the gate always applies.
func (s *SafeAdvisor) Process(ctx context.Context, input string) string {
	return s.Advise(ctx, input).Content
}
