package controller

import (
	"errors"

	"adv-assistant-be/internal/dto"
	"adv-assistant-be/internal/pkg/logger"
	"adv-assistant-be/internal/pkg/serverutils"
	"adv-assistant-be/pkg/history"
	"adv-assistant-be/pkg/session"

	"github.com/gofiber/fiber/v2"
)

type IHistoryController interface {
	RegisterRoutes(r fiber.Router)
	GetHistory(ctx *fiber.Ctx) error
	GetLastQueries(ctx *fiber.Ctx) error
	AddQuery(ctx *fiber.Ctx) error
	SaveContext(ctx *fiber.Ctx) error
	UpdateQueryType(ctx *fiber.Ctx) error
	ClearHistory(ctx *fiber.Ctx) error
}

type historyController struct {
	store            session.Store
	defaultSessionID string
	log              logger.ILogger
}

func NewHistoryController(store session.Store, defaultSessionID string, log logger.ILogger) IHistoryController {
	return &historyController{
		store:            store,
		defaultSessionID: defaultSessionID,
		log:              log,
	}
}

func (c *historyController) RegisterRoutes(r fiber.Router) {
	r.Get("/history", c.GetHistory)
	r.Get("/last-queries", c.GetLastQueries)
	r.Post("/add-query", c.AddQuery)
	r.Post("/save-context", c.SaveContext)
	r.Put("/update-query-type", c.UpdateQueryType)
	r.Delete("/clear", c.ClearHistory)
}

func (c *historyController) aggregator(ctx *fiber.Ctx) *history.Aggregator {
	return history.NewAggregator(c.store, resolveSessionID(ctx, c.defaultSessionID), c.log)
}

// GetHistory returns the raw stored record, 404 when the session has none.
func (c *historyController) GetHistory(ctx *fiber.Ctx) error {
	sessionID := resolveSessionID(ctx, c.defaultSessionID)
	data, err := c.store.Load(ctx.Context(), session.HistoryKey(sessionID))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "no history found for current session"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	rec, err := session.UnmarshalRecord(data)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(dto.HistoryResponse{
		SessionID:  rec.SessionID,
		Timestamp:  rec.Timestamp,
		Intent:     rec.Intent,
		Confidence: rec.Confidence,
		Language:   rec.Language,
		Queries:    rec.Queries,
	})
}

func (c *historyController) GetLastQueries(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 5)
	rec := c.aggregator(ctx).Get(ctx.Context())
	queries := rec.LastQueries(limit)
	if len(queries) == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "no user queries found for current session"))
	}
	return ctx.JSON(dto.LastQueriesResponse{Queries: queries})
}

func (c *historyController) AddQuery(ctx *fiber.Ctx) error {
	var req dto.AddQueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(c.aggregator(ctx).AppendQuery(ctx.Context(), req.Query))
}

func (c *historyController) SaveContext(ctx *fiber.Ctx) error {
	var req dto.SaveContextRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	agg := c.aggregator(ctx)
	rec := agg.Get(ctx.Context())
	rec.Language = req.Language
	rec.Intent = req.Intent
	rec.Confidence = req.Confidence
	return ctx.JSON(agg.Update(ctx.Context(), rec))
}

func (c *historyController) UpdateQueryType(ctx *fiber.Ctx) error {
	var req dto.UpdateQueryTypeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(c.aggregator(ctx).SetIntent(ctx.Context(), req.Intent, req.Confidence))
}

func (c *historyController) ClearHistory(ctx *fiber.Ctx) error {
	if err := c.aggregator(ctx).Delete(ctx.Context()); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(true)
}
