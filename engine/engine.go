// Package engine assembles the advisory core: it wires the completion
// provider, the seven advisor agents, the orchestrator, the insights engine,
// and the snapshot store into one configured runtime.
//
// The engine initializes from configuration via New, creating all subsystems
// internally. Functional options allow test overrides of any subsystem.
//
//	e, err := engine.New(cfg)
//	answer, err := e.Ask(ctx, "conseil", "Quelles missions pour ce dossier ?")
package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cabinet-advisory/core/advisors"
	"github.com/cabinet-advisory/core/insights"
	"github.com/cabinet-advisory/core/observability"
	"github.com/cabinet-advisory/core/orchestrator"
	"github.com/cabinet-advisory/core/provider"
	"github.com/cabinet-advisory/core/store"
)

// Option configures an Engine before subsystem assembly. Overrides replace
// config-created defaults.
type Option func(*Engine)

// WithCompleter overrides the config-created completion client.
func WithCompleter(c provider.Completer) Option {
	return func(e *Engine) { e.completer = c }
}

// WithRetriever overrides the config-created retrieval client.
func WithRetriever(r provider.Retriever) Option {
	return func(e *Engine) { e.retriever = r }
}

// WithObserver overrides the config-named observer.
func WithObserver(o observability.Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithStore overrides the config-created snapshot store.
func WithStore(s store.Store) Option {
	return func(e *Engine) { e.store = s }
}

// Engine is the configured advisory runtime.
type Engine struct {
	config    Config
	completer provider.Completer
	retriever provider.Retriever
	observer  observability.Observer
	store     store.Store

	orchestrator *orchestrator.Orchestrator
	insights     *insights.Engine
	safeAdvisor  *advisors.SafeAdvisor
}

// New creates an Engine from configuration. Subsystems are initialized from
// their respective config sections, the seven advisors are created and
// registered with the orchestrator, and the insights engine shares the same
// completion client. Functional options applied before assembly can override
// any subsystem for testing.
func New(cfg Config, opts ...Option) (*Engine, error) {
	merged := DefaultConfig()
	merged.Merge(&cfg)

	e := &Engine{config: merged}
	for _, opt := range opts {
		opt(e)
	}

	if e.observer == nil {
		obs, err := observability.GetObserver(merged.Observer)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve observer: %w", err)
		}
		e.observer = obs
	}
	if e.completer == nil {
		e.completer = provider.NewOpenAIClient(merged.Provider)
	}
	if e.retriever == nil {
		e.retriever = provider.NewHTTPRetriever(merged.Retrieval)
	}
	if e.store == nil {
		s, err := store.New(merged.Store)
		if err != nil {
			return nil, fmt.Errorf("failed to create snapshot store: %w", err)
		}
		e.store = s
	}

	e.orchestrator = orchestrator.New(orchestrator.WithObserver(e.observer))
	e.insights = insights.NewEngine(merged.Insights, e.completer, insights.WithObserver(e.observer))

	if err := e.registerAdvisors(context.Background()); err != nil {
		return nil, err
	}

	return e, nil
}

func (e *Engine) registerAdvisors(ctx context.Context) error {
	counsel, err := advisors.NewCounsel(e.completer)
	if err != nil {
		return fmt.Errorf("failed to create counsel advisor: %w", err)
	}
	forecaster, err := advisors.NewForecaster(e.completer)
	if err != nil {
		return fmt.Errorf("failed to create forecaster advisor: %w", err)
	}
	review, err := advisors.NewReview(e.completer)
	if err != nil {
		return fmt.Errorf("failed to create review advisor: %w", err)
	}
	sectoral, err := advisors.NewSectoralAnalyst(e.completer, e.retriever)
	if err != nil {
		return fmt.Errorf("failed to create sectoral advisor: %w", err)
	}
	strategy, err := advisors.NewClientStrategy(e.completer)
	if err != nil {
		return fmt.Errorf("failed to create strategy advisor: %w", err)
	}
	warehouse, err := advisors.NewWarehouse(e.completer)
	if err != nil {
		return fmt.Errorf("failed to create warehouse advisor: %w", err)
	}
	safe, err := advisors.NewSafeAdvisor(e.completer)
	if err != nil {
		return fmt.Errorf("failed to create safe advisor: %w", err)
	}
	e.safeAdvisor = safe

	for _, ag := range []orchestrator.Agent{
		counsel, forecaster, review, sectoral, strategy, warehouse, safe,
	} {
		if err := e.orchestrator.Register(ctx, ag); err != nil {
			return fmt.Errorf("failed to register advisor %q: %w", ag.Name(), err)
		}
	}
	return nil
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() Config { return e.config }

// Orchestrator returns the agent registry and router.
func (e *Engine) Orchestrator() *orchestrator.Orchestrator { return e.orchestrator }

// Insights returns the shared insights engine.
func (e *Engine) Insights() *insights.Engine { return e.insights }

// Store returns the snapshot store, or nil when persistence is disabled.
func (e *Engine) Store() store.Store { return e.store }

// Ask delivers user input to the named advisor and returns its reply. The
// advisor records the exchange in its memory and conscience; failures
// degrade to the standard apology rather than an error.
func (e *Engine) Ask(ctx context.Context, agentName, input string) (string, error) {
	ag, err := e.orchestrator.Get(agentName)
	if err != nil {
		return "", err
	}
	return ag.Process(ctx, input), nil
}

// Advise routes user input through the safety screening advisor.
func (e *Engine) Advise(ctx context.Context, query string) advisors.SafeResponse {
	return e.safeAdvisor.Advise(ctx, query)
}

// AnswerFromDataset loads warehouse rows stored under the datasets
// namespace and asks the warehouse agent the question over them.
func (e *Engine) AnswerFromDataset(ctx context.Context, question, key string) (*advisors.WarehouseAnswer, error) {
	if e.store == nil {
		return nil, ErrStoreDisabled
	}

	entries, err := e.store.Load(ctx, store.NamespaceDatasets+"/"+key)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %q: %w", key, err)
	}
	var rows []advisors.WarehouseRow
	if err := json.Unmarshal(entries[0].Value, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode dataset %q: %w", key, err)
	}

	ag, err := e.orchestrator.Get("entrepot")
	if err != nil {
		return nil, err
	}
	return ag.(*advisors.Warehouse).AnswerWithData(ctx, question, rows)
}

// ExportJournal persists the orchestrator journal to the snapshot store.
func (e *Engine) ExportJournal(ctx context.Context) error {
	if e.store == nil {
		return ErrStoreDisabled
	}
	return e.orchestrator.Journal().Snapshot(ctx, e.store)
}

// ExportInsights persists the current insight ranking to the snapshot store.
func (e *Engine) ExportInsights(ctx context.Context) error {
	if e.store == nil {
		return ErrStoreDisabled
	}
	return e.insights.Export(ctx, e.store)
}
