package engine_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabinet-advisory/core/advisors"
	"github.com/cabinet-advisory/core/engine"
	"github.com/cabinet-advisory/core/insights"
	"github.com/cabinet-advisory/core/orchestrator"
	"github.com/cabinet-advisory/core/provider"
	"github.com/cabinet-advisory/core/store"
)

// stubCompleter returns fixed content and records requests.
type stubCompleter struct {
	content string
	calls   []provider.Request
}

func (s *stubCompleter) Complete(_ context.Context, req provider.Request) (*provider.Completion, error) {
	s.calls = append(s.calls, req)
	return &provider.Completion{Content: s.content, Model: "stub"}, nil
}

func newTestEngine(t *testing.T, stub *stubCompleter, opts ...engine.Option) *engine.Engine {
	t.Helper()
	e, err := engine.New(engine.Config{}, append([]engine.Option{engine.WithCompleter(stub)}, opts...)...)
	require.NoError(t, err)
	return e
}

func TestNewRegistersAllAdvisors(t *testing.T) {
	e := newTestEngine(t, &stubCompleter{})

	infos := e.Orchestrator().Agents()
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}

	assert.Equal(t, []string{
		"conseil", "prevision", "revision", "sectoriel",
		"strategie", "entrepot", "assistant-securise",
	}, names)
}

func TestAskRoutesToNamedAdvisor(t *testing.T) {
	stub := &stubCompleter{content: "Voici trois missions possibles."}
	e := newTestEngine(t, stub)

	answer, err := e.Ask(context.Background(), "conseil", "Quelles missions pour une SARL du BTP ?")
	require.NoError(t, err)
	assert.Equal(t, "Voici trois missions possibles.", answer)

	// The exchange lands in the advisor's memory.
	ag, err := e.Orchestrator().Get("conseil")
	require.NoError(t, err)
	counsel, ok := ag.(*advisors.Counsel)
	require.True(t, ok)
	memory := counsel.Memory()
	require.Len(t, memory, 2)
	assert.Contains(t, memory[0].Content, "SARL du BTP")
}

func TestAskUnknownAdvisor(t *testing.T) {
	e := newTestEngine(t, &stubCompleter{})

	_, err := e.Ask(context.Background(), "inconnu", "bonjour")
	assert.ErrorIs(t, err, orchestrator.ErrAgentNotFound)
}

func TestAdviseBlocksWithoutProviderCall(t *testing.T) {
	stub := &stubCompleter{content: "ne devrait pas être appelé"}
	e := newTestEngine(t, stub)

	resp := e.Advise(context.Background(), "Comment organiser une fraude fiscale ?")

	assert.Equal(t, advisors.SafetyBlocked, resp.Safety)
	assert.Contains(t, resp.Content, "Je ne peux pas répondre")
	assert.Empty(t, stub.calls)
}

func TestExportJournal(t *testing.T) {
	snapshots := store.NewFileStore(t.TempDir())
	e := newTestEngine(t, &stubCompleter{content: "réponse"}, engine.WithStore(snapshots))

	_, err := e.Ask(context.Background(), "revision", "contrôle des OD de juin")
	require.NoError(t, err)

	require.NoError(t, e.ExportJournal(context.Background()))

	keys, err := snapshots.List(context.Background())
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], store.NamespaceJournal+"/"))
}

func TestExportInsights(t *testing.T) {
	snapshots := store.NewFileStore(t.TempDir())
	e := newTestEngine(t, &stubCompleter{}, engine.WithStore(snapshots))

	_, retained := e.Insights().AddInsight(insights.Insight{
		Type:      insights.TypeFinancial,
		Title:     "marge en recul",
		Relevance: 8,
	})
	require.True(t, retained)

	require.NoError(t, e.ExportInsights(context.Background()))

	keys, err := snapshots.List(context.Background())
	require.NoError(t, err)
	require.Len(t, keys, 1)

	entries, err := snapshots.Load(context.Background(), keys[0])
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, string(entries[0].Value), "marge en recul")
}

func TestAnswerFromDataset(t *testing.T) {
	snapshots := store.NewFileStore(t.TempDir())
	rows := `[
		{"client": "Menuiserie Dupont", "period": "2025", "metric": "ca", "value": 820000},
		{"client": "Boulangerie Martin", "period": "2025", "metric": "ca", "value": 310000}
	]`
	require.NoError(t, snapshots.Save(context.Background(), store.Entry{
		Key:   store.NamespaceDatasets + "/ca-2025.json",
		Value: []byte(rows),
	}))

	stub := &stubCompleter{content: "```json\n" +
		`{"answer": "Le CA cumulé est de 1 130 000 €.", "figures": ["820000", "310000"]}` +
		"\n```"}
	e := newTestEngine(t, stub, engine.WithStore(snapshots))

	answer, err := e.AnswerFromDataset(context.Background(), "Quel est le CA cumulé ?", "ca-2025.json")
	require.NoError(t, err)
	assert.Contains(t, answer.Answer, "1 130 000")

	// The dataset rows travel inside the prompt.
	require.Len(t, stub.calls, 1)
	prompt := stub.calls[0].Messages[len(stub.calls[0].Messages)-1].Content
	assert.Contains(t, prompt, "Menuiserie Dupont")

	_, err = e.AnswerFromDataset(context.Background(), "question", "absent.json")
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestExportWithoutStore(t *testing.T) {
	e := newTestEngine(t, &stubCompleter{})

	assert.ErrorIs(t, e.ExportJournal(context.Background()), engine.ErrStoreDisabled)
	assert.ErrorIs(t, e.ExportInsights(context.Background()), engine.ErrStoreDisabled)

	_, err := e.AnswerFromDataset(context.Background(), "question", "ca.json")
	assert.ErrorIs(t, err, engine.ErrStoreDisabled)
}
