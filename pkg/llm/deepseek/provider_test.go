package deepseek

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adv-assistant-be/pkg/llm"
)

func newTestProvider(url string) *DeepseekProvider {
	p := NewDeepseekProvider("test-key", "deepseek-chat")
	p.BaseURL = url
	return p
}

func drain(t *testing.T, s *llm.Stream) []string {
	t.Helper()
	var out []string
	for {
		chunk, err := s.Recv()
		if err != nil {
			require.ErrorIs(t, err, io.EOF)
			return out
		}
		out = append(out, chunk)
	}
}

func TestGenerateReturnsMessageContent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"model":"deepseek-chat","choices":[{"message":{"role":"assistant","content":"Bonjour !"}}]}`)
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	got, err := p.Generate(context.Background(), "dis bonjour")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour !", got)
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestGenerateEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"model":"deepseek-chat","choices":[]}`)
	}))
	defer srv.Close()

	got, err := newTestProvider(srv.URL).Generate(context.Background(), "dis bonjour")
	require.NoError(t, err)
	assert.Equal(t, MsgNoAnswer, got)
}

func TestGenerateStatusErrorIsBackendUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestProvider(srv.URL).Generate(context.Background(), "dis bonjour")
	assert.ErrorIs(t, err, llm.ErrBackendUnavailable)
}

func TestGenerateStreamParsesSSEDeltas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, ": keep-alive comment\n\n")
		fmt.Fprint(w, `data: {"choices":[{"delta":{"content":"La "}}]}`+"\n\n")
		fmt.Fprint(w, `data: {"choices":[{"delta":{"content":""}}]}`+"\n\n")
		fmt.Fprint(w, `data: {"choices":[{"delta":{"content":"livraison."}}]}`+"\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
		fmt.Fprint(w, `data: {"choices":[{"delta":{"content":"ignored"}}]}`+"\n\n")
	}))
	defer srv.Close()

	chunks := drain(t, newTestProvider(srv.URL).GenerateStream(context.Background(), "délai ?"))
	assert.Equal(t, []string{"La ", "livraison."}, chunks)
}

func TestGenerateStreamStatusErrorEmitsAPIPlaceholder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	chunks := drain(t, newTestProvider(srv.URL).GenerateStream(context.Background(), "délai ?"))
	assert.Equal(t, []string{"Erreur API: 429"}, chunks)
}

func TestGenerateStreamTransportErrorEmitsPlaceholder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	chunks := drain(t, newTestProvider(srv.URL).GenerateStream(context.Background(), "délai ?"))
	assert.Equal(t, []string{MsgGeneration}, chunks)
}
