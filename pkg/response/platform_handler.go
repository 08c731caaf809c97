package response

import (
	"context"
	"fmt"
	"os"
	"strings"

	"adv-assistant-be/internal/constant"
	"adv-assistant-be/internal/pkg/logger"
	"adv-assistant-be/pkg/llm"
)

// PlatformHandler answers questions about the platform, grounded strictly
// in a fixed description document. The backend is instructed to emit a
// fixed sentence verbatim when the document does not cover the question.
type PlatformHandler struct {
	provider    llm.Provider
	description string
	log         logger.ILogger
}

var _ Handler = &PlatformHandler{}

// NewPlatformHandler loads the platform document from docPath. An empty
// path or unreadable file falls back to the built-in description.
func NewPlatformHandler(provider llm.Provider, docPath string, log logger.ILogger) *PlatformHandler {
	description := constant.DefaultPlatformDescription
	if docPath != "" {
		data, err := os.ReadFile(docPath)
		if err != nil {
			log.Warn("response", "platform document unreadable, using built-in description", map[string]interface{}{
				"path":  docPath,
				"error": err.Error(),
			})
		} else if trimmed := strings.TrimSpace(string(data)); trimmed != "" {
			description = trimmed
		}
	}
	return &PlatformHandler{provider: provider, description: description, log: log}
}

func (h *PlatformHandler) Handle(ctx context.Context, pc PromptContext) *llm.Stream {
	h.log.Info("response", "platform handler answering", map[string]interface{}{
		"query_len": len(pc.Query),
	})
	return h.provider.GenerateStream(ctx, h.buildPrompt(pc))
}

func (h *PlatformHandler) buildPrompt(pc PromptContext) string {
	var b strings.Builder
	b.WriteString("=== PLATEFORME ADV - ASSISTANT ===\n")
	b.WriteString("[CONTEXTE DU PROJET]\n")
	b.WriteString(h.description)
	b.WriteString("\n\n[QUESTION UTILISATEUR]\n")
	b.WriteString(pc.Query)
	b.WriteString("\n\n[DIRECTIVES DE RÉPONSE]\n")
	b.WriteString("1. Si l'information existe dans le contexte :\n")
	b.WriteString("   - Réponse concise (15-30 mots)\n")
	b.WriteString("   - Format direct sans préambule\n")
	b.WriteString("   - Termes techniques appropriés\n\n")
	b.WriteString("2. Si l'information EST INCONNUE :\n")
	b.WriteString(fmt.Sprintf("   - Répondre strictement : %q\n", constant.MsgUnknownAnswer))
	b.WriteString("   - Ne pas inventer de réponse\n")
	b.WriteString("   - Ne pas proposer de rechercher\n\n")
	b.WriteString("[INTERDICTIONS]\n")
	b.WriteString("- Pas de \"Je suis un assistant...\"\n")
	b.WriteString("- Pas d'excuses ou justifications\n")
	b.WriteString("- Pas de hors-sujet\n")
	b.WriteString("- Maximum 40 mots\n\n")
	b.WriteString("# DIRECTIVES LINGUISTIQUES\n")
	b.WriteString(pc.LanguageDirective)
	b.WriteString("\n\n[RÉPONSE ATTENDUE]\n")
	return b.String()
}
