package language

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"adv-assistant-be/internal/pkg/logger"
)

type fakeTranslator struct {
	result string
	err    error
	called bool
}

func (f *fakeTranslator) Translate(_ context.Context, text, _, _ string) (string, error) {
	f.called = true
	if f.err != nil {
		return "", f.err
	}
	return f.result, nil
}

func TestDetectEmptyDefaultsToWorkingLanguage(t *testing.T) {
	n := NewNormalizer(nil, logger.NewNopLogger())
	assert.Equal(t, WorkingLanguage, n.Detect(""))
}

func TestProcessTranslatesArabic(t *testing.T) {
	tr := &fakeTranslator{result: "où est ma commande ?"}
	n := NewNormalizer(tr, logger.NewNopLogger())

	got, lang := n.Process(context.Background(), "أين طلبي؟ أريد أن أعرف متى يصل")
	assert.Equal(t, "ar", lang)
	assert.True(t, tr.called)
	assert.Equal(t, "où est ma commande ?", got)
}

func TestProcessTranslationFailureKeepsOriginal(t *testing.T) {
	tr := &fakeTranslator{err: errors.New("service down")}
	n := NewNormalizer(tr, logger.NewNopLogger())

	original := "أين طلبي؟ أريد أن أعرف متى يصل"
	got, lang := n.Process(context.Background(), original)
	assert.Equal(t, "ar", lang)
	assert.Equal(t, original, got)
}

func TestProcessSkipsTranslationForWorkingLanguage(t *testing.T) {
	tr := &fakeTranslator{result: "should not be used"}
	n := NewNormalizer(tr, logger.NewNopLogger())

	original := "Bonjour, je voudrais suivre ma commande s'il vous plaît"
	got, lang := n.Process(context.Background(), original)
	assert.Equal(t, original, got)
	assert.False(t, tr.called)
	assert.Equal(t, "fr", lang)
}

func TestProcessNoTranslatorConfigured(t *testing.T) {
	n := NewNormalizer(nil, logger.NewNopLogger())
	original := "أين طلبي؟ أريد أن أعرف متى يصل"
	got, lang := n.Process(context.Background(), original)
	assert.Equal(t, original, got)
	assert.Equal(t, "ar", lang)
}

func TestDirective(t *testing.T) {
	assert.Equal(t, directives["fr"], Directive("fr"))
	assert.Equal(t, directives["en"], Directive("en"))
	assert.Equal(t, directives["ar"], Directive("ar"))
	assert.Equal(t, directives["de"], Directive("de"))

	// Unknown codes fall back to the working language.
	assert.Equal(t, directives["fr"], Directive("es"))
	assert.Equal(t, directives["fr"], Directive(""))
}
