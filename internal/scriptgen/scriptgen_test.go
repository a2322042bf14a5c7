package scriptgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptInstruction_DerivedFields(t *testing.T) {
	req := ScriptRequest{
		Purpose:     "promote",
		Tone:        "energetic",
		VideoLength: 20,
	}
	instruction := scriptInstruction(req)

	// 20 * 2.5 rounds to 50 words, spoken within [20, 25] seconds.
	assert.Contains(t, instruction, "about 50 words")
	assert.Contains(t, instruction, "20-25 seconds")
}

func TestScriptInstruction_RoundsWordCount(t *testing.T) {
	// 15 * 2.5 = 37.5, which rounds up to 38.
	instruction := scriptInstruction(ScriptRequest{Purpose: "educate", Tone: "calm", VideoLength: 15})
	assert.Contains(t, instruction, "about 38 words")
	assert.Contains(t, instruction, "15-20 seconds")
}

func TestScriptInstruction_OptionalBriefFields(t *testing.T) {
	withExtras := scriptInstruction(ScriptRequest{
		Purpose:     "promote",
		Tone:        "playful",
		KeyPhrase:   "limited drop",
		Keyword:     "sneakers",
		VideoLength: 30,
	})
	assert.Contains(t, withExtras, `"limited drop"`)
	assert.Contains(t, withExtras, `"sneakers"`)

	bare := scriptInstruction(ScriptRequest{Purpose: "promote", Tone: "playful", VideoLength: 30})
	assert.NotContains(t, bare, "phrase")
	assert.NotContains(t, bare, "keyword")
}

func TestParseScriptResult(t *testing.T) {
	payload := `{"title":"T","script":"S","imagePrompt":"I","videoPrompt":"V"}`

	result, err := parseScriptResult(payload)
	require.NoError(t, err)
	assert.Equal(t, ScriptResult{Title: "T", Script: "S", ImagePrompt: "I", VideoPrompt: "V"}, result)
}

func TestParseScriptResult_CodeFence(t *testing.T) {
	payload := "```json\n{\"title\":\"T\",\"script\":\"S\",\"imagePrompt\":\"I\",\"videoPrompt\":\"V\"}\n```"

	result, err := parseScriptResult(payload)
	require.NoError(t, err)
	assert.Equal(t, "T", result.Title)
}

func TestParseScriptResult_Rejections(t *testing.T) {
	cases := map[string]string{
		"not json":       "sure, here is your script!",
		"missing fields": `{"title":"T","script":"S"}`,
		"empty object":   `{}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseScriptResult(payload)
			assert.Error(t, err)
		})
	}
}
