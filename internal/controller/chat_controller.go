package controller

import (
	"bufio"
	"context"
	"fmt"

	"adv-assistant-be/internal/pkg/serverutils"
	"adv-assistant-be/pkg/orchestrator"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	StreamBotQuery(ctx *fiber.Ctx) error
}

type chatController struct {
	orch             *orchestrator.Orchestrator
	defaultSessionID string
	streamSource     string
}

func NewChatController(orch *orchestrator.Orchestrator, defaultSessionID, llmProvider, llmModel string) IChatController {
	return &chatController{
		orch:             orch,
		defaultSessionID: defaultSessionID,
		streamSource:     fmt.Sprintf("%s-%s", llmProvider, llmModel),
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/bot")
	h.Get("/bot-query", c.StreamBotQuery)
}

// StreamBotQuery answers one query as a server-sent event stream. The
// connection stays open until the answer completes or the client leaves.
func (c *chatController) StreamBotQuery(ctx *fiber.Ctx) error {
	query := ctx.Query("query", "")
	if query == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "query parameter is required"))
	}
	sessionID := resolveSessionID(ctx, c.defaultSessionID)

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-store")
	ctx.Set(fiber.HeaderConnection, "keep-alive")
	ctx.Set("X-Stream-Source", c.streamSource)

	orch := c.orch
	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		// The fiber context is gone once this runs; the stream gets its
		// own context, cancelled when the client stops reading.
		streamCtx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sink := func(ev orchestrator.Event) error {
			if _, err := w.WriteString(ev.Format()); err != nil {
				cancel()
				return err
			}
			if err := w.Flush(); err != nil {
				cancel()
				return err
			}
			return nil
		}
		orch.Answer(streamCtx, sessionID, query, sink)
	}))

	return nil
}
