// Package orchestrator owns the agent registry and mediates all inter-agent
// and user-to-agent traffic. Every registration and every routed message
// writes exactly one entry into the session's conscience journal; agent
// conscience events are mirrored into the same journal through the
// subscription taken at registration time.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cabinet-advisory/core/agent"
	"github.com/cabinet-advisory/core/core/protocol"
	"github.com/cabinet-advisory/core/observability"
)

// Sentinel errors for registry and routing contract violations. These are
// the only failures allowed to surface to the direct caller; everything
// transient is absorbed at the agent boundary.
var (
	ErrAgentExists   = errors.New("agent already registered")
	ErrAgentNotFound = errors.New("agent not registered")
)

// Agent is the contract the orchestrator requires of registered actors.
type Agent interface {
	agent.Processor
	AddObserver(obs observability.Observer)
	Conscience() []agent.ConscienceEntry
}

// Info describes a registered agent.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Orchestrator routes messages between registered agents and maintains the
// session journal. Delivery is synchronous: Send returns after the target
// agent has recorded the message.
type Orchestrator struct {
	mu       sync.RWMutex
	agents   map[string]Agent
	order    []string
	journal  *Journal
	observer observability.Observer
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithObserver sets the observer receiving orchestrator events.
func WithObserver(obs observability.Observer) Option {
	return func(o *Orchestrator) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// New creates an Orchestrator with an empty registry and a fresh journal.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		agents:   make(map[string]Agent),
		journal:  NewJournal(),
		observer: observability.NoOpObserver{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Register adds an agent to the registry. A duplicate name fails with
// ErrAgentExists and leaves the registry unchanged. On success the
// orchestrator subscribes to the agent's events so conscience entries are
// mirrored into the global journal, then records the registration.
func (o *Orchestrator) Register(ctx context.Context, ag Agent) error {
	name := ag.Name()
	if name == "" {
		return agent.ErrEmptyName
	}

	o.mu.Lock()
	if _, exists := o.agents[name]; exists {
		o.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrAgentExists, name)
	}
	o.agents[name] = ag
	o.order = append(o.order, name)
	o.mu.Unlock()

	ag.AddObserver(&journalMirror{journal: o.journal, forward: o.observer})

	o.journal.Append(agent.ConscienceEntry{
		Agent: name,
		Entry: fmt.Sprintf("agent enregistré: %s — %s", name, ag.Description()),
	})

	o.emit(ctx, observability.Event{
		Type:      EventRegistered,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Agent:     name,
		Source:    "orchestrator.Register",
		Data:      map[string]any{"description": ag.Description()},
	})

	return nil
}

// Send routes a point-to-point message between two registered agents. The
// sender is recorded in the message metadata; delivery is synchronous.
func (o *Orchestrator) Send(ctx context.Context, from, to, content string, metadata map[string]string) error {
	o.mu.RLock()
	_, fromOK := o.agents[from]
	target, toOK := o.agents[to]
	o.mu.RUnlock()

	if !fromOK {
		return fmt.Errorf("%w: %s", ErrAgentNotFound, from)
	}
	if !toOK {
		return fmt.Errorf("%w: %s", ErrAgentNotFound, to)
	}

	merged := map[string]string{"from": from}
	for k, v := range metadata {
		merged[k] = v
	}
	msg := protocol.NewMessageWithMetadata(protocol.RoleAssistant, content, merged)

	o.journal.Append(agent.ConscienceEntry{
		Agent: from,
		Entry: fmt.Sprintf("message routé %s → %s: %s", from, to, msg.Preview(100)),
	})

	o.emit(ctx, observability.Event{
		Type:      EventRouted,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Agent:     from,
		Source:    "orchestrator.Send",
		Data:      map[string]any{"to": to, "preview": msg.Preview(100)},
	})

	target.ReceiveMessage(ctx, msg)
	return nil
}

// SendUser routes a user-role message to a registered agent.
func (o *Orchestrator) SendUser(ctx context.Context, to, content string, metadata map[string]string) error {
	o.mu.RLock()
	target, ok := o.agents[to]
	o.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrAgentNotFound, to)
	}

	merged := map[string]string{"from": "utilisateur"}
	for k, v := range metadata {
		merged[k] = v
	}
	msg := protocol.NewMessageWithMetadata(protocol.RoleUser, content, merged)

	o.journal.Append(agent.ConscienceEntry{
		Agent: to,
		Entry: fmt.Sprintf("message utilisateur → %s: %s", to, msg.Preview(100)),
	})

	o.emit(ctx, observability.Event{
		Type:      EventRouted,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Agent:     to,
		Source:    "orchestrator.SendUser",
		Data:      map[string]any{"preview": msg.Preview(100)},
	})

	target.ReceiveMessage(ctx, msg)
	return nil
}

// Get returns a registered agent by name.
func (o *Orchestrator) Get(name string) (Agent, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	ag, ok := o.agents[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAgentNotFound, name)
	}
	return ag, nil
}

// Agents returns the registered {name, description} pairs in registration
// order.
func (o *Orchestrator) Agents() []Info {
	o.mu.RLock()
	defer o.mu.RUnlock()

	infos := make([]Info, 0, len(o.order))
	for _, name := range o.order {
		infos = append(infos, Info{Name: name, Description: o.agents[name].Description()})
	}
	return infos
}

// ConscienceLog returns a defensive copy of the full audit trail, oldest
// first.
func (o *Orchestrator) ConscienceLog() []agent.ConscienceEntry {
	return o.journal.Entries()
}

// Journal exposes the session journal for snapshot export.
func (o *Orchestrator) Journal() *Journal {
	return o.journal
}

func (o *Orchestrator) emit(ctx context.Context, event observability.Event) {
	o.observer.OnEvent(ctx, event)
}

// journalMirror subscribes to an agent's events: conscience entries are
// appended to the global journal, and everything is forwarded to the host
// observer.
type journalMirror struct {
	journal *Journal
	forward observability.Observer
}

func (m *journalMirror) OnEvent(ctx context.Context, event observability.Event) {
	if event.Type == agent.EventConscience {
		entry, _ := event.Data["entry"].(string)
		m.journal.Append(agent.ConscienceEntry{
			Agent:     event.Agent,
			Timestamp: event.Timestamp,
			Entry:     entry,
		})
	}

	if m.forward != nil {
		m.forward.OnEvent(ctx, event)
	}
}
