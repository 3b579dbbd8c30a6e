package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cabinet-advisory/core/observability"
)

type recordingObserver struct {
	events []observability.Event
}

func (r *recordingObserver) OnEvent(_ context.Context, event observability.Event) {
	r.events = append(r.events, event)
}

func TestLevelMapping(t *testing.T) {
	assert.Equal(t, "DEBUG", observability.LevelVerbose.String())
	assert.Equal(t, "INFO", observability.LevelInfo.String())
	assert.Equal(t, "WARN", observability.LevelWarning.String())
	assert.Equal(t, "ERROR", observability.LevelError.String())

	assert.Equal(t, slog.LevelDebug, observability.LevelVerbose.SlogLevel())
	assert.Equal(t, slog.LevelError, observability.LevelError.SlogLevel())
}

func TestSlogObserverFlattensData(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	obs := observability.NewSlogObserver(logger)
	obs.OnEvent(context.Background(), observability.Event{
		Type:      "agent.message.sent",
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Agent:     "conseil",
		Source:    "agent.SendMessage",
		Data:      map[string]any{"preview": "Bonjour"},
	})

	out := buf.String()
	assert.Contains(t, out, "agent.message.sent")
	assert.Contains(t, out, "agent=conseil")
	assert.Contains(t, out, "preview=Bonjour")
}

func TestZapObserverEmitsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	obs := observability.NewZapObserver(zap.New(core))

	obs.OnEvent(context.Background(), observability.Event{
		Type:   "insights.new",
		Level:  observability.LevelInfo,
		Agent:  "moteur",
		Source: "insights.AddInsight",
		Data:   map[string]any{"type": "financial"},
	})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "insights.new", entry.Message)
	assert.Equal(t, "moteur", entry.ContextMap()["agent"])
	assert.Equal(t, "financial", entry.ContextMap()["type"])
}

func TestMultiObserverSkipsNil(t *testing.T) {
	first := &recordingObserver{}
	second := &recordingObserver{}

	multi := observability.NewMultiObserver(first, nil, second)
	multi.OnEvent(context.Background(), observability.Event{Type: "orchestrator.routed"})

	assert.Len(t, first.events, 1)
	assert.Len(t, second.events, 1)
}

func TestObserverRegistry(t *testing.T) {
	_, err := observability.GetObserver("noop")
	require.NoError(t, err)

	_, err = observability.GetObserver("absent")
	require.Error(t, err)

	rec := &recordingObserver{}
	observability.RegisterObserver("recording", rec)

	got, err := observability.GetObserver("recording")
	require.NoError(t, err)
	assert.Same(t, rec, got.(*recordingObserver))
}
