package response

import (
	"context"
	"fmt"
	"strings"

	"adv-assistant-be/internal/pkg/logger"
	"adv-assistant-be/pkg/llm"
)

// transitions vary the redirect phrasing across turns. Selection rotates
// on history length so consecutive answers don't open identically.
var transitions = []string{
	`"Je comprends ! Pour ça..."`,
	`"Bonne question ! Côté ADV..."`,
	`"Je vois ! En revanche..."`,
	`"Ah oui ! Pour notre plateforme..."`,
	`"Effectivement ! Sur ADV..."`,
}

var closingQuestions = []string{
	`"Que recherchez-vous ?"`,
	`"Besoin d'aide pour trouver quelque chose ?"`,
	`"Une commande à suivre ?"`,
	`"Envie de découvrir nos nouveautés ?"`,
	`"Je peux vous aider avec quoi ?"`,
}

// GeneralHandler answers off-topic queries by acknowledging them and
// redirecting toward the platform's services.
type GeneralHandler struct {
	provider llm.Provider
	log      logger.ILogger
}

var _ Handler = &GeneralHandler{}

func NewGeneralHandler(provider llm.Provider, log logger.ILogger) *GeneralHandler {
	return &GeneralHandler{provider: provider, log: log}
}

func (h *GeneralHandler) Handle(ctx context.Context, pc PromptContext) *llm.Stream {
	h.log.Info("response", "general handler redirecting", map[string]interface{}{
		"query_len": len(pc.Query),
	})
	return h.provider.GenerateStream(ctx, h.buildPrompt(pc))
}

func (h *GeneralHandler) buildPrompt(pc PromptContext) string {
	recent := "Aucun historique"
	if len(pc.RecentQueries) > 0 {
		recent = strings.Join(pc.RecentQueries, " → ")
	}
	transition := transitions[len(pc.RecentQueries)%len(transitions)]
	closing := closingQuestions[len(pc.RecentQueries)%len(closingQuestions)]

	var b strings.Builder
	b.WriteString("Tu es un conseiller ADV. Cette requête est hors-contexte shopping, ton rôle est de ramener naturellement vers nos services.\n\n")
	b.WriteString("# DONNÉES CONTEXTUELLES\n")
	b.WriteString(fmt.Sprintf("Historique récent : %s\n", recent))
	b.WriteString(fmt.Sprintf("Requête actuelle : %q\n\n", pc.Query))
	b.WriteString("# RÈGLES ABSOLUES DE RÉPONSE\n")
	b.WriteString("- Maximum 40 mots au total\n")
	b.WriteString("- Une seule phrase courte de reconnaissance\n")
	b.WriteString("- Une transition naturelle vers ADV\n")
	b.WriteString("- Maximum 2 services mentionnés\n")
	b.WriteString("- Une question finale engageante\n")
	b.WriteString("- Parle comme un humain, pas comme un robot\n")
	b.WriteString("- Aucun titre, bullet point ou structure visible\n\n")
	b.WriteString("# INTERDICTIONS ABSOLUES\n")
	b.WriteString("- Ne jamais dire \"je suis un assistant\" ou variantes\n")
	b.WriteString("- Ne jamais expliquer ta méthode de réponse\n")
	b.WriteString("- Ne jamais inventer des détails d'historique inexistants\n")
	b.WriteString("- Ne jamais dépasser 40 mots au total\n\n")
	b.WriteString("# FORMULE DE TRANSITION À UTILISER\n")
	b.WriteString(transition)
	b.WriteString("\n\n# QUESTION FINALE À UTILISER\n")
	b.WriteString(closing)
	b.WriteString("\n\n# DIRECTIVES LINGUISTIQUES\n")
	b.WriteString(pc.LanguageDirective)
	b.WriteString("\n\n# INSTRUCTION FINALE\n")
	b.WriteString("Génère UNE réponse courte (max 40 mots), naturelle, qui reconnaît la demande et redirige vers ADV sans structure visible. Sois humain, pas robotique.\n")
	return b.String()
}
