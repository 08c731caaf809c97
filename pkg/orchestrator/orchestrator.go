package orchestrator

import (
	"context"
	"errors"
	"io"
	"time"

	"adv-assistant-be/internal/constant"
	"adv-assistant-be/internal/pkg/logger"
	"adv-assistant-be/pkg/history"
	"adv-assistant-be/pkg/intent"
	"adv-assistant-be/pkg/language"
	"adv-assistant-be/pkg/response"
	"adv-assistant-be/pkg/session"

	"github.com/google/uuid"
)

// chunkYield paces event emission so slow consumers aren't flooded.
const chunkYield = 10 * time.Millisecond

// Orchestrator runs the full answer pipeline for one query: language
// normalization, history bookkeeping, intent classification, handler
// routing and chunk-by-chunk event emission.
type Orchestrator struct {
	store      session.Store
	normalizer *language.Normalizer
	classifier *intent.Classifier
	router     *response.Router
	log        logger.ILogger
}

func New(store session.Store, normalizer *language.Normalizer, classifier *intent.Classifier, router *response.Router, log logger.ILogger) *Orchestrator {
	return &Orchestrator{
		store:      store,
		normalizer: normalizer,
		classifier: classifier,
		router:     router,
		log:        log,
	}
}

// Answer streams the answer for one query into sink. The method itself
// never returns an error to the caller: pipeline failures surface as a
// single error event on the stream. It returns once the stream is done,
// the consumer is gone or ctx is cancelled.
func (o *Orchestrator) Answer(ctx context.Context, sessionID, query string, sink Sink) {
	txID := uuid.New().String()[:8]

	defer func() {
		if r := recover(); r != nil {
			o.log.Error("orchestrator", "pipeline panic", map[string]interface{}{
				"tx_id":      txID,
				"session_id": sessionID,
				"panic":      r,
			})
			_ = sink(Event{Type: EventError, Data: constant.MsgPipelineFailure})
		}
	}()

	hist := history.NewAggregator(o.store, sessionID, o.log)

	processed, lang := o.normalizer.Process(ctx, query)
	hist.AppendQuery(ctx, processed)
	hist.SetLanguage(ctx, lang)

	rec := hist.Get(ctx)
	result, _ := o.classifier.Classify(ctx, processed, rec)
	hist.SetIntent(ctx, result.Type, result.Confidence)

	o.log.Info("orchestrator", "query classified", map[string]interface{}{
		"tx_id":      txID,
		"session_id": sessionID,
		"intent":     result.Type,
		"confidence": result.Confidence,
		"lang":       lang,
	})

	pc := response.PromptContext{
		Query:             processed,
		RecentQueries:     rec.LastQueries(2),
		LanguageDirective: language.Directive(lang),
	}
	stream := o.router.Route(result.Type).Handle(ctx, pc)

	for {
		chunk, err := stream.Recv()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				o.log.Error("orchestrator", "stream failed mid-answer", map[string]interface{}{
					"tx_id":      txID,
					"session_id": sessionID,
					"error":      err.Error(),
				})
				_ = sink(Event{Type: EventError, Data: constant.MsgStreamFailure})
			}
			return
		}
		if err := sink(Event{Type: EventMessage, Data: chunk}); err != nil {
			o.log.Warn("orchestrator", "consumer gone, stopping stream", map[string]interface{}{
				"tx_id":      txID,
				"session_id": sessionID,
			})
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(chunkYield):
		}
	}
}
