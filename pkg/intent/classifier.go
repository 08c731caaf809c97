package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"adv-assistant-be/internal/pkg/logger"
	"adv-assistant-be/pkg/language"
	"adv-assistant-be/pkg/llm"
	"adv-assistant-be/pkg/session"
)

// Intent discriminants. Unknown values route to the general handler.
const (
	TypePlatformInfo = "PLATFORM_INFO"
	TypeOther        = "OTHER"
)

// Intent is the classification outcome. Confidence is advisory; nothing
// downstream gates on it.
type Intent struct {
	Type       string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// staticQueries is the exact-match fast path. These phrases are assumed to
// already be in the working language, so normalization is skipped.
var staticQueries = map[string]Intent{
	"bonjour":                                {Type: TypeOther, Confidence: 1.0},
	"bonsoir":                                {Type: TypeOther, Confidence: 1.0},
	"salut":                                  {Type: TypeOther, Confidence: 1.0},
	"au revoir":                              {Type: TypeOther, Confidence: 1.0},
	"bye":                                    {Type: TypeOther, Confidence: 1.0},
	"je veux poser une question sur le site": {Type: TypePlatformInfo, Confidence: 1.0},
}

// Classifier decides which handler answers a query. It never returns an
// error: every failure mode degrades to a usable OTHER intent.
type Classifier struct {
	provider   llm.Provider
	normalizer *language.Normalizer
	log        logger.ILogger
}

func NewClassifier(provider llm.Provider, normalizer *language.Normalizer, log logger.ILogger) *Classifier {
	return &Classifier{provider: provider, normalizer: normalizer, log: log}
}

// Classify returns the intent of the query plus the detected language
// code. The session record supplies disambiguating context (recent queries
// and the last known intent); it is read, never mutated.
func (c *Classifier) Classify(ctx context.Context, query string, rec *session.Record) (Intent, string) {
	if hit, ok := staticQueries[strings.ToLower(strings.TrimSpace(query))]; ok {
		return hit, language.WorkingLanguage
	}

	processed, lang := c.normalizer.Process(ctx, query)
	prompt := c.buildPrompt(processed, rec)

	raw, err := c.provider.Generate(ctx, prompt, llm.WithTemperature(0))
	if err != nil {
		c.log.Error("classifier", "backend classification failed", map[string]interface{}{
			"error": err.Error(),
		})
		return Intent{Type: TypeOther, Confidence: 0.1}, language.WorkingLanguage
	}

	parsed, ok := parseIntent(raw)
	if !ok {
		c.log.Warn("classifier", "unparseable classification, using fallback", map[string]interface{}{
			"raw": raw,
		})
		return Intent{Type: TypeOther, Confidence: 0.5}, lang
	}
	return parsed, lang
}

func (c *Classifier) buildPrompt(query string, rec *session.Record) string {
	recent := "Aucune"
	lastIntent := ""
	if rec != nil {
		if queries := rec.LastQueries(2); len(queries) > 0 {
			recent = strings.Join(queries, " → ")
		}
		lastIntent = rec.Intent
	}

	var b strings.Builder
	b.WriteString("CLASSIFICATEUR - RÉPONSE JSON UNIQUEMENT\n\n")
	b.WriteString(fmt.Sprintf("TYPES: %s | %s\n\n", TypePlatformInfo, TypeOther))
	b.WriteString("CONTEXTE ACTUEL:\n")
	b.WriteString(fmt.Sprintf("Requête: %q\n", query))
	b.WriteString(fmt.Sprintf("Dernières requêtes: %s\n", recent))
	b.WriteString(fmt.Sprintf("Dernier type: %s\n\n", lastIntent))
	b.WriteString("FORMAT RÉPONSE:\n")
	b.WriteString(`{"intent": "<TYPE>", "confidence": <0.7-1.0>}` + "\n\n")
	b.WriteString("INSTRUCTION FINALE:\n")
	b.WriteString("- respecter le format de réponse json\n")
	b.WriteString("- ne donne pas d'explication, ni ton raisonnement\n\n")
	b.WriteString("Classify:")
	return b.String()
}

// parseIntent pulls the JSON object out of the backend answer. Models
// often wrap it in prose or code fences, so we cut between the first '{'
// and the last '}'.
func parseIntent(raw string) (Intent, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return Intent{}, false
	}

	var parsed Intent
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return Intent{}, false
	}
	if parsed.Type != TypePlatformInfo && parsed.Type != TypeOther {
		return Intent{}, false
	}
	if parsed.Confidence < 0 || parsed.Confidence > 1 {
		return Intent{}, false
	}
	return parsed, true
}
