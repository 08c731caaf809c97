package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adv-assistant-be/pkg/llm/deepseek"
	"adv-assistant-be/pkg/llm/ollama"
)

func TestNewProviderOllama(t *testing.T) {
	p, err := NewProvider("ollama", "llama3", "", "")
	require.NoError(t, err)

	op, ok := p.(*ollama.OllamaProvider)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:11434", op.BaseURL)
	assert.Equal(t, "llama3", op.Model)
}

func TestNewProviderDeepseek(t *testing.T) {
	p, err := NewProvider("deepseek", "deepseek-chat", "", "key")
	require.NoError(t, err)

	dp, ok := p.(*deepseek.DeepseekProvider)
	require.True(t, ok)
	assert.Equal(t, "deepseek-chat", dp.Model)
}

func TestNewProviderDeepseekRequiresKey(t *testing.T) {
	_, err := NewProvider("deepseek", "deepseek-chat", "", "")
	assert.Error(t, err)
}

func TestNewProviderUnknown(t *testing.T) {
	_, err := NewProvider("gpt9", "", "", "")
	assert.Error(t, err)
}
