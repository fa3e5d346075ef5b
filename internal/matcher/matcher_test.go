package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/providerhub/pkg/errors"
)

func TestDetect(t *testing.T) {
	assert.Equal(t, Substring, Detect(""))
	assert.Equal(t, Substring, Detect("gpt"))
	assert.Equal(t, Glob, Detect("gpt-*"))
	assert.Equal(t, Glob, Detect("llama?"))
	assert.Equal(t, Regex, Detect("/^gpt-4/"))
	assert.Equal(t, Substring, Detect("/"))
}

func TestMatch(t *testing.T) {
	tests := []struct {
		term  string
		input string
		want  bool
	}{
		{"", "anything", true},
		{"open", "OpenAI", true},
		{"OPEN", "openrouter", true},
		{"mistral", "openai", false},
		{"gpt-*", "GPT-4o", true},
		{"gpt-*", "chatgpt-4o", false},
		{"llama?", "llama3", true},
		{"/^claude-3-(opus|sonnet)/", "claude-3-opus-latest", true},
		{"/^claude-3-(opus|sonnet)/", "claude-3-haiku", false},
		{"/GEMINI/", "models/gemini-pro", true},
	}
	for _, tt := range tests {
		t.Run(tt.term+"/"+tt.input, func(t *testing.T) {
			m, err := New(tt.term)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Match(tt.input))
		})
	}
}

func TestMatchAny(t *testing.T) {
	m, err := New("cloud")
	require.NoError(t, err)
	assert.True(t, m.MatchAny("beta", "Beta Cloud"))
	assert.False(t, m.MatchAny("alpha", "Alpha AI"))
	assert.False(t, m.MatchAny())
}

func TestNewRejectsBadPatterns(t *testing.T) {
	_, err := New("/(unclosed/")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	_, err = New("[a-")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestPatternAccessors(t *testing.T) {
	m, err := New("gpt-*")
	require.NoError(t, err)
	assert.Equal(t, "gpt-*", m.Pattern())
	assert.Equal(t, Glob, m.Type())
	assert.Equal(t, "glob", m.Type().String())
}
