package controller

import (
	"adv-assistant-be/internal/dto"
	"adv-assistant-be/internal/pkg/logger"
	"adv-assistant-be/internal/pkg/serverutils"
	"adv-assistant-be/pkg/history"
	"adv-assistant-be/pkg/intent"
	"adv-assistant-be/pkg/session"

	"github.com/gofiber/fiber/v2"
)

type IClassifierController interface {
	RegisterRoutes(r fiber.Router)
	ClassifyQuery(ctx *fiber.Ctx) error
}

type classifierController struct {
	classifier       *intent.Classifier
	store            session.Store
	defaultSessionID string
	log              logger.ILogger
}

func NewClassifierController(classifier *intent.Classifier, store session.Store, defaultSessionID string, log logger.ILogger) IClassifierController {
	return &classifierController{
		classifier:       classifier,
		store:            store,
		defaultSessionID: defaultSessionID,
		log:              log,
	}
}

func (c *classifierController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/classify")
	h.Post("/classify-query", c.ClassifyQuery)
}

// ClassifyQuery exposes the classifier directly, without generation.
func (c *classifierController) ClassifyQuery(ctx *fiber.Ctx) error {
	var req dto.ClassifyQueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	sessionID := resolveSessionID(ctx, c.defaultSessionID)
	rec := history.NewAggregator(c.store, sessionID, c.log).Get(ctx.Context())

	result, lang := c.classifier.Classify(ctx.Context(), req.Query, rec)
	return ctx.JSON(dto.ClassifyQueryResponse{
		Intent:     result.Type,
		Confidence: result.Confidence,
		Language:   lang,
	})
}
