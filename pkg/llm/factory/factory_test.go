package factory

import (
	"testing"
	"time"

	"ai-videobrain-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProviderPassesTimeoutToOllama(t *testing.T) {
	p, err := NewLLMProvider("ollama", "llama3", "", "", 45*time.Second, 2)
	require.NoError(t, err)

	provider, ok := p.(*ollama.OllamaProvider)
	require.True(t, ok)
	assert.Equal(t, 45*time.Second, provider.Client.Timeout)
}

func TestNewLLMProviderOpenAIRequiresKey(t *testing.T) {
	_, err := NewLLMProvider("openai", "gpt-4o-mini", "", "", 45*time.Second, 2)
	assert.Error(t, err)
}

func TestNewLLMProviderUnsupported(t *testing.T) {
	_, err := NewLLMProvider("claude", "whatever", "", "", 0, 0)
	assert.Error(t, err)
}
