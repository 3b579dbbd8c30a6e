package insights

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cabinet-advisory/core/core/protocol"
	"github.com/cabinet-advisory/core/core/structured"
	"github.com/cabinet-advisory/core/observability"
	"github.com/cabinet-advisory/core/provider"
)

// Event types emitted by the engine.
const (
	EventNewInsight observability.EventType = "insights.new"
)

const (
	crossTemperature   = 0.6
	summaryTemperature = 0.5
	summaryTopN        = 10
)

// NoInsightsMessage is returned by GenerateSummary when nothing is retained.
const NoInsightsMessage = "Aucun insight disponible pour le moment. Alimentez le moteur avec des analyses avant de demander une synthèse."

// SummaryFailureMessage is returned when the provider cannot produce a
// narrative summary.
const SummaryFailureMessage = "La synthèse des insights est momentanément indisponible. Les insights individuels restent consultables."

// Engine is the process-wide insight aggregator. Construct one per host and
// pass it by reference; all mutation is serialized by a single mutex so the
// per-type cap holds under concurrent admission.
type Engine struct {
	config    Config
	completer provider.Completer
	observer  observability.Observer

	mu     sync.Mutex
	byType map[Type][]Insight
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver sets the observer receiving new-insight events.
func WithObserver(obs observability.Observer) Option {
	return func(e *Engine) {
		if obs != nil {
			e.observer = obs
		}
	}
}

// NewEngine creates an Engine with the given configuration and completion
// provider.
func NewEngine(cfg Config, completer provider.Completer, opts ...Option) *Engine {
	merged := DefaultConfig()
	merged.Merge(&cfg)

	e := &Engine{
		config:    merged,
		completer: completer,
		observer:  observability.NoOpObserver{},
		byType:    make(map[Type][]Insight),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() Config { return e.config }

// AddInsight assigns an id and timestamp to the candidate and admits it when
// its confidence rank and relevance meet the configured minimums. When the
// per-type population exceeds the cap, the lowest-scoring entries are
// evicted; equal scores are broken by admission order (earlier survives).
//
// The constructed insight is returned in all cases; the boolean reports
// whether it is actually retained, so callers can distinguish stored from
// discarded.
func (e *Engine) AddInsight(candidate Insight) (*Insight, bool) {
	candidate.ID = uuid.Must(uuid.NewV7()).String()
	candidate.Timestamp = time.Now()
	if candidate.Type == "" {
		candidate.Type = TypeStrategic
	}
	if candidate.Confidence == "" {
		candidate.Confidence = ConfidenceMedium
	}

	if candidate.Confidence.Rank() < e.config.MinConfidence.Rank() ||
		candidate.Relevance < e.config.MinRelevance {
		return &candidate, false
	}

	e.mu.Lock()
	bucket := append(e.byType[candidate.Type], candidate)

	// Stable sort keeps admission order among equal scores, so eviction
	// trims from the tail deterministically.
	sort.SliceStable(bucket, func(i, j int) bool {
		return bucket[i].Score() > bucket[j].Score()
	})
	if len(bucket) > e.config.MaxPerType {
		bucket = bucket[:e.config.MaxPerType]
	}
	e.byType[candidate.Type] = bucket

	retained := false
	for _, ins := range bucket {
		if ins.ID == candidate.ID {
			retained = true
			break
		}
	}
	e.mu.Unlock()

	if retained {
		e.observer.OnEvent(context.Background(), observability.Event{
			Type:      EventNewInsight,
			Level:     observability.LevelInfo,
			Timestamp: candidate.Timestamp,
			Agent:     candidate.Source.Agent,
			Source:    "insights.AddInsight",
			Data: map[string]any{
				"insight_type": string(candidate.Type),
				"title":        candidate.Title,
				"score":        candidate.Score(),
			},
		})
	}

	return &candidate, retained
}

// All returns a snapshot of every retained insight, ranked by score
// descending.
func (e *Engine) All() []Insight {
	e.mu.Lock()
	all := make([]Insight, 0)
	for _, bucket := range e.byType {
		all = append(all, bucket...)
	}
	e.mu.Unlock()

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Score() > all[j].Score()
	})
	return all
}

// ByType returns a snapshot of the retained insights of one type, ranked by
// score descending.
func (e *Engine) ByType(t Type) []Insight {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Insight(nil), e.byType[t]...)
}

// rawInsight is the provider-facing shape: type and confidence arrive as
// free text and are mapped onto the closed enums.
type rawInsight struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Confidence  string `json:"confidence"`
	Relevance   int    `json:"relevance"`
}

// GenerateCrossInsights builds one multi-section prompt from the four
// serialized sources, asks the provider for 5-10 cross-cutting insights in a
// fenced block, and admits each parsed candidate. The returned slice holds
// every insight constructed, not necessarily all retained. Provider and
// parse failures yield an empty slice; the operation never panics.
func (e *Engine) GenerateCrossInsights(ctx context.Context, financial, sectoral, client, regulatory any) []Insight {
	prompt := fmt.Sprintf(
		"Croise les quatre sources suivantes pour un cabinet d'expertise comptable.\n\n"+
			"## Données financières\n%s\n\n"+
			"## Données sectorielles\n%s\n\n"+
			"## Données clients\n%s\n\n"+
			"## Veille réglementaire\n%s\n\n"+
			"Dégage entre 5 et 10 insights transversaux. Chaque insight comporte type "+
			"(financial|sectoral|operational|regulatory|strategic|risk), title, description, "+
			"confidence (low|medium|high) et relevance (entier de 1 à 10).\n%s",
		structured.Serialize(financial),
		structured.Serialize(sectoral),
		structured.Serialize(client),
		structured.Serialize(regulatory),
		structured.Instruction("un tableau JSON d'insights"),
	)

	resp, err := e.completer.Complete(ctx, provider.Request{
		Messages: []protocol.Message{
			protocol.NewMessage(protocol.RoleSystem, "Tu es le moteur d'analyse transversale d'un cabinet d'expertise comptable."),
			protocol.NewMessage(protocol.RoleUser, prompt),
		},
		Temperature: crossTemperature,
	})
	if err != nil {
		return []Insight{}
	}

	raws, err := structured.Decode[[]rawInsight](resp.Content)
	if err != nil {
		return []Insight{}
	}

	constructed := make([]Insight, 0, len(raws))
	for _, raw := range raws {
		insight, _ := e.AddInsight(Insight{
			Type:        ParseType(raw.Type),
			Title:       raw.Title,
			Description: raw.Description,
			Confidence:  ParseConfidence(raw.Confidence),
			Relevance:   raw.Relevance,
			Source:      Source{Agent: "moteur-transversal", Data: "analyse croisée"},
		})
		constructed = append(constructed, *insight)
	}

	return constructed
}

// GenerateSummary ranks all retained insights, takes the top 10, and asks
// the provider for a short narrative covering themes, opportunities, risks,
// and 2-3 priority actions. Returns fixed fallback strings when nothing is
// retained or the provider fails.
func (e *Engine) GenerateSummary(ctx context.Context) string {
	ranked := e.All()
	if len(ranked) == 0 {
		return NoInsightsMessage
	}
	if len(ranked) > summaryTopN {
		ranked = ranked[:summaryTopN]
	}

	prompt := fmt.Sprintf(
		"Voici les insights les mieux classés du cabinet :\n%s\n\n"+
			"Rédige une synthèse courte : thèmes dominants, opportunités, risques, "+
			"puis 2 à 3 actions prioritaires.",
		structured.Serialize(ranked),
	)

	resp, err := e.completer.Complete(ctx, provider.Request{
		Messages: []protocol.Message{
			protocol.NewMessage(protocol.RoleSystem, "Tu es le moteur d'analyse transversale d'un cabinet d'expertise comptable."),
			protocol.NewMessage(protocol.RoleUser, prompt),
		},
		Temperature: summaryTemperature,
	})
	if err != nil {
		return SummaryFailureMessage
	}

	return resp.Content
}
