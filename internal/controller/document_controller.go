package controller

import (
	"encoding/json"

	"adv-assistant-be/internal/dto"
	"adv-assistant-be/internal/pkg/serverutils"
	"adv-assistant-be/internal/service"
	"adv-assistant-be/pkg/embedding"
	"adv-assistant-be/pkg/index"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	IndexDocument(ctx *fiber.Ctx) error
	SearchDocuments(ctx *fiber.Ctx) error
}

// documentController feeds the platform document index. Indexing is
// asynchronous: documents are published to the indexer and embedded off
// the request path.
type documentController struct {
	publisher service.IPublisherService
	provider  embedding.Provider
	idx       *index.MemoryIndex
}

func NewDocumentController(publisher service.IPublisherService, provider embedding.Provider, idx *index.MemoryIndex) IDocumentController {
	return &documentController{
		publisher: publisher,
		provider:  provider,
		idx:       idx,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/documents")
	h.Post("/index", c.IndexDocument)
	h.Get("/search", c.SearchDocuments)
}

func (c *documentController) IndexDocument(ctx *fiber.Ctx) error {
	var req dto.IndexDocumentMessage
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if req.Text == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "text is required"))
	}
	if req.DocumentID == "" {
		req.DocumentID = uuid.New().String()
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	if err := c.publisher.Publish(ctx.Context(), payload); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.Status(fiber.StatusAccepted).JSON(fiber.Map{"document_id": req.DocumentID})
}

func (c *documentController) SearchDocuments(ctx *fiber.Ctx) error {
	query := ctx.Query("query", "")
	if query == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "query parameter is required"))
	}
	topK := ctx.QueryInt("top_k", 3)

	vec, err := c.provider.Embed(ctx.Context(), query)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	matches := c.idx.Search(vec, topK)
	out := make([]fiber.Map, 0, len(matches))
	for _, m := range matches {
		out = append(out, fiber.Map{
			"document_id": m.Document.ID,
			"text":        m.Document.Text,
			"score":       m.Score,
		})
	}
	return ctx.JSON(out)
}
