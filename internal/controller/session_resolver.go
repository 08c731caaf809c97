package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// resolveSessionID picks the session key for a request: explicit header
// first, then query parameter, then the configured default.
func resolveSessionID(ctx *fiber.Ctx, fallback string) string {
	if id := ctx.Get("X-Session-Id"); id != "" {
		return id
	}
	if id := ctx.Query("session_id", ""); id != "" {
		return id
	}
	return fallback
}
