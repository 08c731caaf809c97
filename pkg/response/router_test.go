package response

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adv-assistant-be/internal/constant"
	"adv-assistant-be/internal/pkg/logger"
	"adv-assistant-be/pkg/intent"
	"adv-assistant-be/pkg/llm"
)

type namedHandler struct{ name string }

func (h *namedHandler) Handle(_ context.Context, _ PromptContext) *llm.Stream {
	stream := llm.NewStream()
	go func() {
		defer stream.Close()
		stream.Send(context.Background(), h.name)
	}()
	return stream
}

func TestRouteKnownIntents(t *testing.T) {
	platform := &namedHandler{name: "platform"}
	general := &namedHandler{name: "general"}
	r := NewRouter(platform, general, logger.NewNopLogger())

	assert.Same(t, Handler(platform), r.Route(intent.TypePlatformInfo))
	assert.Same(t, Handler(general), r.Route(intent.TypeOther))
}

func TestRouteUnknownIntentFallsBackToGeneral(t *testing.T) {
	platform := &namedHandler{name: "platform"}
	general := &namedHandler{name: "general"}
	r := NewRouter(platform, general, logger.NewNopLogger())

	assert.Same(t, Handler(general), r.Route("SHOPPING"))
	assert.Same(t, Handler(general), r.Route(""))
}

func TestPlatformPromptGroundsInDocument(t *testing.T) {
	h := NewPlatformHandler(nil, "", logger.NewNopLogger())
	prompt := h.buildPrompt(PromptContext{
		Query:             "comment suivre ma commande ?",
		LanguageDirective: "Répondez UNIQUEMENT en français. N'utilisez aucune autre langue.",
	})

	assert.Contains(t, prompt, constant.DefaultPlatformDescription)
	assert.Contains(t, prompt, "comment suivre ma commande ?")
	assert.Contains(t, prompt, constant.MsgUnknownAnswer)
	assert.Contains(t, prompt, "Maximum 40 mots")
	assert.Contains(t, prompt, "Répondez UNIQUEMENT en français")
}

func TestPlatformHandlerLoadsDocumentFile(t *testing.T) {
	docPath := t.TempDir() + "/site_info.txt"
	require.NoError(t, os.WriteFile(docPath, []byte("ADV livre en 48h partout en France."), 0o600))

	h := NewPlatformHandler(nil, docPath, logger.NewNopLogger())
	prompt := h.buildPrompt(PromptContext{Query: "délai de livraison ?"})
	assert.Contains(t, prompt, "ADV livre en 48h partout en France.")
	assert.NotContains(t, prompt, constant.DefaultPlatformDescription)
}

func TestGeneralPromptRedirectsWithHistory(t *testing.T) {
	h := NewGeneralHandler(nil, logger.NewNopLogger())
	prompt := h.buildPrompt(PromptContext{
		Query:         "quel temps fait-il ?",
		RecentQueries: []string{"bonjour", "où est ma commande ?"},
	})

	assert.Contains(t, prompt, "quel temps fait-il ?")
	assert.Contains(t, prompt, "bonjour → où est ma commande ?")
	assert.Contains(t, prompt, "Maximum 40 mots")
}

func TestGeneralPromptTransitionRotates(t *testing.T) {
	h := NewGeneralHandler(nil, logger.NewNopLogger())

	seen := map[string]bool{}
	for n := 0; n < len(transitions); n++ {
		queries := make([]string, n)
		for i := range queries {
			queries[i] = "q"
		}
		prompt := h.buildPrompt(PromptContext{Query: "hors sujet", RecentQueries: queries})
		for _, tr := range transitions {
			if strings.Contains(prompt, tr) {
				seen[tr] = true
			}
		}
	}
	assert.Len(t, seen, len(transitions), "every transition phrase should appear across turns")
}
