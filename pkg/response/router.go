package response

import (
	"context"

	"adv-assistant-be/internal/pkg/logger"
	"adv-assistant-be/pkg/intent"
	"adv-assistant-be/pkg/llm"
)

// PromptContext carries everything a handler needs to build its prompt.
type PromptContext struct {
	Query             string
	RecentQueries     []string
	LanguageDirective string
}

// Handler answers one intent type with a streamed completion. Handlers
// never buffer chunks; the stream comes straight from the backend.
type Handler interface {
	Handle(ctx context.Context, pc PromptContext) *llm.Stream
}

// Router maps intent discriminants to handlers. Unknown intents fall back
// to the general handler, never an error.
type Router struct {
	handlers map[string]Handler
	general  Handler
	log      logger.ILogger
}

func NewRouter(platform, general Handler, log logger.ILogger) *Router {
	return &Router{
		handlers: map[string]Handler{
			intent.TypePlatformInfo: platform,
			intent.TypeOther:        general,
		},
		general: general,
		log:     log,
	}
}

func (r *Router) Route(intentType string) Handler {
	if h, ok := r.handlers[intentType]; ok {
		return h
	}
	r.log.Warn("response", "unknown intent, routing to general handler", map[string]interface{}{
		"intent": intentType,
	})
	return r.general
}
