package provider_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabinet-advisory/core/core/protocol"
	"github.com/cabinet-advisory/core/provider"
)

func chatServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func completionBody(content string) string {
	return `{"model":"test-model","choices":[{"message":{"content":` +
		string(mustJSON(content)) + `},"finish_reason":"stop"}]}`
}

func mustJSON(s string) []byte {
	data, _ := json.Marshal(s)
	return data
}

func TestCompleteReturnsFirstChoice(t *testing.T) {
	var gotBody struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	srv := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(completionBody("Bonjour !")))
	})

	client := provider.NewOpenAIClient(provider.Config{
		BaseURL: srv.URL,
		APIKey:  "secret",
		Model:   "test-model",
	})

	resp, err := client.Complete(context.Background(), provider.Request{
		Messages: []protocol.Message{
			protocol.NewMessage(protocol.RoleSystem, "Tu es un assistant."),
			protocol.NewMessage(protocol.RoleUser, "Salut"),
		},
		Temperature: 0.3,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bonjour !", resp.Content)
	assert.Equal(t, "test-model", resp.Model)
	assert.Equal(t, "stop", resp.FinishReason)

	assert.Equal(t, "test-model", gotBody.Model)
	assert.InDelta(t, 0.3, gotBody.Temperature, 1e-9)
	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
	assert.Equal(t, "Salut", gotBody.Messages[1].Content)
}

func TestCompleteRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(completionBody("après reprise")))
	})

	client := provider.NewOpenAIClient(provider.Config{BaseURL: srv.URL, MaxRetries: 5})

	resp, err := client.Complete(context.Background(), provider.Request{
		Messages: []protocol.Message{protocol.NewMessage(protocol.RoleUser, "ping")},
	})
	require.NoError(t, err)
	assert.Equal(t, "après reprise", resp.Content)
	assert.Equal(t, int32(3), calls.Load())
}

func TestCompleteDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"bad request"}`))
	})

	client := provider.NewOpenAIClient(provider.Config{BaseURL: srv.URL, MaxRetries: 5})

	_, err := client.Complete(context.Background(), provider.Request{
		Messages: []protocol.Message{protocol.NewMessage(protocol.RoleUser, "ping")},
	})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"model":"m","choices":[]}`))
	})

	client := provider.NewOpenAIClient(provider.Config{BaseURL: srv.URL})

	_, err := client.Complete(context.Background(), provider.Request{
		Messages: []protocol.Message{protocol.NewMessage(protocol.RoleUser, "ping")},
	})
	assert.ErrorIs(t, err, provider.ErrEmptyResponse)
}

func TestRetrieverParsesJSONContent(t *testing.T) {
	srv := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, "BTP 2026", r.URL.Query().Get("q"))
		w.Write([]byte(`{"content":"Le secteur du BTP ralentit."}`))
	})

	retriever := provider.NewHTTPRetriever(provider.RetrievalConfig{BaseURL: srv.URL})
	require.NotNil(t, retriever)

	got, err := retriever.Updates(context.Background(), "BTP 2026")
	require.NoError(t, err)
	assert.Equal(t, "Le secteur du BTP ralentit.", got)
}

func TestRetrieverAcceptsPlainProse(t *testing.T) {
	srv := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Actualité brute.\n"))
	})

	retriever := provider.NewHTTPRetriever(provider.RetrievalConfig{BaseURL: srv.URL})

	got, err := retriever.Updates(context.Background(), "secteur")
	require.NoError(t, err)
	assert.Equal(t, "Actualité brute.", got)
}

func TestRetrieverDisabled(t *testing.T) {
	retriever := provider.NewHTTPRetriever(provider.RetrievalConfig{})
	require.Nil(t, retriever)

	_, err := retriever.Updates(context.Background(), "secteur")
	assert.ErrorIs(t, err, provider.ErrRetrievalDisabled)
}
