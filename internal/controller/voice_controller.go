package controller

import (
	"bufio"
	"context"
	"strings"

	"adv-assistant-be/internal/pkg/serverutils"
	"adv-assistant-be/pkg/orchestrator"
	"adv-assistant-be/pkg/voice"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type IVoiceController interface {
	RegisterRoutes(r fiber.Router)
	Transcribe(ctx *fiber.Ctx) error
	BotQuery(ctx *fiber.Ctx) error
}

type voiceController struct {
	transcriber      voice.Transcriber
	orch             *orchestrator.Orchestrator
	defaultSessionID string
}

func NewVoiceController(transcriber voice.Transcriber, orch *orchestrator.Orchestrator, defaultSessionID string) IVoiceController {
	return &voiceController{
		transcriber:      transcriber,
		orch:             orch,
		defaultSessionID: defaultSessionID,
	}
}

func (c *voiceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/voice")
	h.Post("/transcribe", c.Transcribe)
	h.Post("/bot-query", c.BotQuery)
}

func (c *voiceController) Transcribe(ctx *fiber.Ctx) error {
	result, status, msg := c.transcribeUpload(ctx)
	if result == nil {
		return ctx.Status(status).JSON(serverutils.ErrorResponse(status, msg))
	}
	return ctx.JSON(result)
}

// BotQuery transcribes an audio question and streams the answer.
func (c *voiceController) BotQuery(ctx *fiber.Ctx) error {
	result, status, msg := c.transcribeUpload(ctx)
	if result == nil {
		return ctx.Status(status).JSON(serverutils.ErrorResponse(status, msg))
	}

	query := strings.TrimSpace(result.Text())
	if query == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "aucun texte détecté dans l'audio"))
	}
	sessionID := resolveSessionID(ctx, c.defaultSessionID)

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-store")
	ctx.Set(fiber.HeaderConnection, "keep-alive")

	orch := c.orch
	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
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

// transcribeUpload validates the multipart upload and runs transcription.
// A nil result means the caller should respond with (status, msg).
func (c *voiceController) transcribeUpload(ctx *fiber.Ctx) (*voice.Transcription, int, string) {
	if c.transcriber == nil {
		return nil, fiber.StatusServiceUnavailable, "service de transcription non configuré"
	}
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, fiber.StatusBadRequest, "un fichier audio est requis (.wav, .mp3, etc)"
	}
	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "audio/") {
		return nil, fiber.StatusBadRequest, "un fichier audio est requis (.wav, .mp3, etc)"
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fiber.StatusInternalServerError, "erreur de lecture du fichier"
	}
	defer file.Close()

	result, err := c.transcriber.Transcribe(ctx.Context(), file, fileHeader.Filename)
	if err != nil {
		return nil, fiber.StatusInternalServerError, "erreur de transcription: " + err.Error()
	}
	return result, fiber.StatusOK, ""
}
