// Package agent implements the base actor shared by all advisors: an
// addressable identity with a domain instruction, an ordered conversation
// memory, a local conscience mirror, and observer fan-out. Concrete agents
// embed Base and implement Process on top of it.
package agent

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/cabinet-advisory/core/core/protocol"
	"github.com/cabinet-advisory/core/observability"
	"github.com/cabinet-advisory/core/provider"
)

// Apology is the user-facing fallback returned by Process when the
// completion provider fails. No agent operation propagates the failure.
const Apology = "Je suis désolé, je rencontre des difficultés techniques pour le moment. Merci de réessayer dans quelques instants."

// previewLimit bounds message previews written to conscience entries.
const previewLimit = 100

// Sentinel errors for agent construction.
var (
	ErrEmptyName   = errors.New("agent name must not be empty")
	ErrNoCompleter = errors.New("agent requires a completion provider")
)

// Processor is the contract every concrete agent satisfies. Process turns
// free-text input into a free-text response and must degrade to an apology
// string on provider failure rather than returning an error.
type Processor interface {
	Name() string
	Description() string
	Process(ctx context.Context, input string) string
	ReceiveMessage(ctx context.Context, msg protocol.Message)
}

// ConscienceEntry is one line of the append-only audit trail. The
// orchestrator owns the global journal; each agent mirrors its own entries.
type ConscienceEntry struct {
	Agent     string    `json:"agent"`
	Timestamp time.Time `json:"timestamp"`
	Entry     string    `json:"entry"`
}

// Config fixes a concrete agent's identity triple and sampling behavior.
type Config struct {
	Name        string
	Description string
	Instruction string
	Temperature float64
	Tags        []string
}

// Base carries the state and behavior shared by all agents. All exported
// methods are safe for concurrent use; memory mutations happen only through
// ReceiveMessage and SendMessage, preserving strict append order.
type Base struct {
	name        string
	description string
	instruction string
	temperature float64
	tags        []string

	completer provider.Completer

	mu         sync.RWMutex
	memory     []protocol.Message
	conscience []ConscienceEntry
	observers  []observability.Observer
}

// NewBase creates a Base from its identity configuration and completion
// provider.
func NewBase(cfg Config, completer provider.Completer) (*Base, error) {
	if cfg.Name == "" {
		return nil, ErrEmptyName
	}
	if completer == nil {
		return nil, ErrNoCompleter
	}

	return &Base{
		name:        cfg.Name,
		description: cfg.Description,
		instruction: cfg.Instruction,
		temperature: cfg.Temperature,
		tags:        slices.Clone(cfg.Tags),
		completer:   completer,
	}, nil
}

// Name returns the agent's unique name.
func (b *Base) Name() string { return b.name }

// Description returns the agent's one-line description.
func (b *Base) Description() string { return b.description }

// Instruction returns the agent's system instruction.
func (b *Base) Instruction() string { return b.instruction }

// Tags returns a copy of the agent's capability tags.
func (b *Base) Tags() []string { return slices.Clone(b.tags) }

// AddObserver subscribes an observer to this agent's events. The
// orchestrator registers itself here to mirror conscience entries into the
// global journal.
func (b *Base) AddObserver(obs observability.Observer) {
	if obs == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = append(b.observers, obs)
}

// ReceiveMessage appends a copy of the message to memory, writes a
// conscience entry with a bounded preview, and emits a message-received
// event. Always succeeds.
func (b *Base) ReceiveMessage(ctx context.Context, msg protocol.Message) {
	stored := msg.Clone()

	b.mu.Lock()
	b.memory = append(b.memory, stored)
	b.mu.Unlock()

	from := stored.Metadata["from"]
	if from == "" {
		from = string(stored.Role)
	}
	b.logConscience(ctx, fmt.Sprintf("message reçu de %s: %s", from, stored.Preview(previewLimit)))

	b.emit(ctx, observability.Event{
		Type:      EventMessageReceived,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Agent:     b.name,
		Source:    "agent.ReceiveMessage",
		Data:      map[string]any{"role": string(stored.Role), "preview": stored.Preview(previewLimit)},
	})
}

// SendMessage constructs an assistant message with the current timestamp,
// appends it to memory, writes a conscience entry, emits a message-sent
// event, and returns the constructed message.
func (b *Base) SendMessage(ctx context.Context, content string, metadata map[string]string) protocol.Message {
	msg := protocol.NewMessageWithMetadata(protocol.RoleAssistant, content, metadata)

	b.mu.Lock()
	b.memory = append(b.memory, msg)
	b.mu.Unlock()

	b.logConscience(ctx, fmt.Sprintf("message envoyé: %s", msg.Preview(previewLimit)))

	b.emit(ctx, observability.Event{
		Type:      EventMessageSent,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Agent:     b.name,
		Source:    "agent.SendMessage",
		Data:      map[string]any{"preview": msg.Preview(previewLimit)},
	})

	return msg.Clone()
}

// Memory returns a defensive copy of the conversation history in append
// order.
func (b *Base) Memory() []protocol.Message {
	b.mu.RLock()
	defer b.mu.RUnlock()

	copied := make([]protocol.Message, len(b.memory))
	for i, msg := range b.memory {
		copied[i] = msg.Clone()
	}
	return copied
}

// Conscience returns a copy of this agent's local conscience mirror, oldest
// first.
func (b *Base) Conscience() []ConscienceEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.conscience)
}

// Converse is the default Process body: it assembles the system instruction,
// the full memory, and the new user turn, delegates to the completion
// provider at the agent's temperature, and records both turns. Provider
// failure degrades to the apology string.
func (b *Base) Converse(ctx context.Context, input string) string {
	user := protocol.NewMessage(protocol.RoleUser, input)
	b.ReceiveMessage(ctx, user)

	content, err := b.Complete(ctx, b.promptMessages(), b.temperature)
	if err != nil {
		b.logConscience(ctx, fmt.Sprintf("échec du fournisseur de complétion: %v", err))
		b.SendMessage(ctx, Apology, nil)
		return Apology
	}

	b.SendMessage(ctx, content, nil)
	return content
}

// Complete delegates a completion call to the provider and returns its text.
// Concrete agents use it for structured extraction at operation-specific
// temperatures.
func (b *Base) Complete(ctx context.Context, messages []protocol.Message, temperature float64) (string, error) {
	resp, err := b.completer.Complete(ctx, provider.Request{
		Messages:    messages,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// Prompt builds a single-turn extraction conversation: the agent's system
// instruction followed by the given user prompt. Extraction operations do
// not involve conversation memory.
func (b *Base) Prompt(userPrompt string) []protocol.Message {
	return []protocol.Message{
		protocol.NewMessage(protocol.RoleSystem, b.instruction),
		protocol.NewMessage(protocol.RoleUser, userPrompt),
	}
}

// Temperature returns the agent's default sampling temperature.
func (b *Base) Temperature() float64 { return b.temperature }

// promptMessages assembles {system instruction, full memory} for a
// conversational completion. ReceiveMessage has already appended the new
// user turn.
func (b *Base) promptMessages() []protocol.Message {
	memory := b.Memory()
	messages := make([]protocol.Message, 0, len(memory)+1)
	if b.instruction != "" {
		messages = append(messages, protocol.NewMessage(protocol.RoleSystem, b.instruction))
	}
	return append(messages, memory...)
}

// logConscience appends to the local mirror and emits a conscience event so
// subscribed journals record the entry.
func (b *Base) logConscience(ctx context.Context, text string) {
	entry := ConscienceEntry{Agent: b.name, Timestamp: time.Now(), Entry: text}

	b.mu.Lock()
	b.conscience = append(b.conscience, entry)
	b.mu.Unlock()

	b.emit(ctx, observability.Event{
		Type:      EventConscience,
		Level:     observability.LevelVerbose,
		Timestamp: entry.Timestamp,
		Agent:     b.name,
		Source:    "agent.logConscience",
		Data:      map[string]any{"entry": entry.Entry},
	})
}

func (b *Base) emit(ctx context.Context, event observability.Event) {
	b.mu.RLock()
	observers := slices.Clone(b.observers)
	b.mu.RUnlock()

	for _, obs := range observers {
		obs.OnEvent(ctx, event)
	}
}
