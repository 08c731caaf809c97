package language

import (
	"context"

	"github.com/abadojack/whatlanggo"

	"adv-assistant-be/internal/pkg/logger"
)

// WorkingLanguage is the language all downstream stages operate in.
const WorkingLanguage = "fr"

// directives tell the generation backend which language to answer in.
// Unrecognized codes fall back to the working language's directive.
var directives = map[string]string{
	"fr": "Répondez UNIQUEMENT en français. N'utilisez aucune autre langue.",
	"en": "STRICT LANGUAGE RULE: You MUST respond in ENGLISH only. Never use other languages.",
	"ar": ".رد باللغة العربية فقط. لا تستخدم أي لغة أخرى",
	"de": "Antworten Sie NUR auf Deutsch. Verwende keine andere Sprache.",
}

// translateTo lists source languages that get translated into the working
// language before classification and generation.
var translateTo = map[string]bool{
	"ar": true,
}

// Normalizer detects a query's language and, for a fixed set of source
// languages, translates it into the working language. Detection and
// translation failures never surface; the pipeline continues with the
// original text and the working language.
type Normalizer struct {
	translator Translator
	log        logger.ILogger
}

func NewNormalizer(translator Translator, log logger.ILogger) *Normalizer {
	return &Normalizer{translator: translator, log: log}
}

// Process returns the (possibly translated) query and the detected
// language code.
func (n *Normalizer) Process(ctx context.Context, query string) (string, string) {
	lang := n.Detect(query)
	if !translateTo[lang] || n.translator == nil {
		return query, lang
	}

	translated, err := n.translator.Translate(ctx, query, lang, WorkingLanguage)
	if err != nil || translated == "" {
		n.log.Warn("language", "translation failed, keeping original query", map[string]interface{}{
			"source_lang": lang,
			"error":       errString(err),
		})
		return query, lang
	}
	n.log.Info("language", "query translated", map[string]interface{}{
		"source_lang": lang,
		"target_lang": WorkingLanguage,
	})
	return translated, lang
}

// Detect returns the two-letter language code of the text, or the working
// language when the text is empty or detection is unreliable.
func (n *Normalizer) Detect(text string) string {
	if text == "" {
		return WorkingLanguage
	}
	info := whatlanggo.Detect(text)
	code := whatlanggo.LangToStringShort(info.Lang)
	if code == "" {
		return WorkingLanguage
	}
	return code
}

// Directive returns the answer-language instruction for a stored language
// code, defaulting to the working language's instruction.
func Directive(code string) string {
	if d, ok := directives[code]; ok {
		return d
	}
	return directives[WorkingLanguage]
}

func errString(err error) string {
	if err == nil {
		return "empty translation"
	}
	return err.Error()
}
