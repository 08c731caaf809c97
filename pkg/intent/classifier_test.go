package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"adv-assistant-be/internal/pkg/logger"
	"adv-assistant-be/pkg/language"
	"adv-assistant-be/pkg/llm"
	"adv-assistant-be/pkg/session"
)

// fakeProvider returns a canned completion, or an error.
type fakeProvider struct {
	response string
	err      error
	calls    int
}

func (f *fakeProvider) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeProvider) GenerateStream(ctx context.Context, prompt string, options ...llm.Option) *llm.Stream {
	stream := llm.NewStream()
	go func() {
		defer stream.Close()
		text, err := f.Generate(ctx, prompt, options...)
		if err != nil {
			stream.Fail(ctx, err)
			return
		}
		stream.Send(ctx, text)
	}()
	return stream
}

func newTestClassifier(p llm.Provider) *Classifier {
	normalizer := language.NewNormalizer(nil, logger.NewNopLogger())
	return NewClassifier(p, normalizer, logger.NewNopLogger())
}

func TestStaticFastPathSkipsBackend(t *testing.T) {
	provider := &fakeProvider{response: `{"intent": "PLATFORM_INFO", "confidence": 0.9}`}
	c := newTestClassifier(provider)

	tests := []struct {
		query string
		want  string
	}{
		{query: "bonjour", want: TypeOther},
		{query: "  Bonsoir ", want: TypeOther},
		{query: "BYE", want: TypeOther},
		{query: "je veux poser une question sur le site", want: TypePlatformInfo},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			result, lang := c.Classify(context.Background(), tt.query, session.NewRecord("s1"))
			assert.Equal(t, tt.want, result.Type)
			assert.Equal(t, 1.0, result.Confidence)
			assert.Equal(t, language.WorkingLanguage, lang)
		})
	}
	assert.Zero(t, provider.calls, "fast path must not call the backend")
}

func TestClassifyParsesBackendAnswer(t *testing.T) {
	provider := &fakeProvider{response: "Here you go:\n```json\n{\"intent\": \"PLATFORM_INFO\", \"confidence\": 0.85}\n```"}
	c := newTestClassifier(provider)

	result, _ := c.Classify(context.Background(), "comment suivre ma commande ?", session.NewRecord("s1"))
	assert.Equal(t, TypePlatformInfo, result.Type)
	assert.Equal(t, 0.85, result.Confidence)
}

func TestClassifyMalformedAnswerFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{name: "no json", response: "PLATFORM_INFO"},
		{name: "broken json", response: `{"intent": "PLATFORM_INFO", "confidence":`},
		{name: "unknown type", response: `{"intent": "SHOPPING", "confidence": 0.9}`},
		{name: "confidence out of range", response: `{"intent": "OTHER", "confidence": 1.7}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClassifier(&fakeProvider{response: tt.response})
			result, _ := c.Classify(context.Background(), "une question quelconque", session.NewRecord("s1"))
			assert.Equal(t, TypeOther, result.Type)
			assert.Equal(t, 0.5, result.Confidence)
		})
	}
}

func TestClassifyBackendDownFallsBack(t *testing.T) {
	c := newTestClassifier(&fakeProvider{err: errors.New("connection refused")})

	result, lang := c.Classify(context.Background(), "une question quelconque", session.NewRecord("s1"))
	assert.Equal(t, TypeOther, result.Type)
	assert.Equal(t, 0.1, result.Confidence)
	assert.Equal(t, language.WorkingLanguage, lang)
}

func TestBuildPromptIncludesContext(t *testing.T) {
	c := newTestClassifier(&fakeProvider{})
	rec := session.NewRecord("s1")
	rec.Queries = []string{"première", "deuxième", "troisième"}
	rec.Intent = TypeOther

	prompt := c.buildPrompt("quatrième", rec)
	assert.Contains(t, prompt, "quatrième")
	assert.Contains(t, prompt, "deuxième → troisième")
	assert.NotContains(t, prompt, "première")
	assert.Contains(t, prompt, "Dernier type: OTHER")
}

func TestBuildPromptNilRecord(t *testing.T) {
	c := newTestClassifier(&fakeProvider{})
	prompt := c.buildPrompt("bonjour tout le monde", nil)
	assert.Contains(t, prompt, "Dernières requêtes: Aucune")
}
