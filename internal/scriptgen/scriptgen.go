package scriptgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// ErrGenerationFailed is returned when the LLM call fails or its response
// cannot be used. The route layer decides whether to substitute fallback
// content; this package never does.
var ErrGenerationFailed = errors.New("script generation failed")

// ErrNotConfigured is returned when no LLM API key was supplied.
var ErrNotConfigured = errors.New("llm credentials not configured")

// ScriptRequest is the creative brief forwarded to the model.
type ScriptRequest struct {
	Purpose     string
	Tone        string
	KeyPhrase   string
	Keyword     string
	VideoLength int
}

// ScriptResult is the strict four-field payload the model must return.
type ScriptResult struct {
	Title       string `json:"title"`
	Script      string `json:"script"`
	ImagePrompt string `json:"imagePrompt"`
	VideoPrompt string `json:"videoPrompt"`
}

// Generator proxies script and prompt generation to a chat-completion model.
type Generator struct {
	client     *openai.Client
	model      string
	configured bool
	logger     *logrus.Logger
}

// NewGenerator creates a Generator. An empty apiKey is allowed so the
// zero-config path fails per call with ErrNotConfigured rather than at
// startup.
func NewGenerator(apiKey, baseURL, model string, logger *logrus.Logger) *Generator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Generator{
		client:     openai.NewClientWithConfig(cfg),
		model:      model,
		configured: apiKey != "",
		logger:     logger,
	}
}

// scriptInstruction renders the fixed instruction template. The target word
// count is round(videoLength * 2.5) and the speaking window runs from
// videoLength to videoLength+5 seconds.
func scriptInstruction(req ScriptRequest) string {
	words := int(math.Round(float64(req.VideoLength) * 2.5))

	var b strings.Builder
	fmt.Fprintf(&b, "You write scripts for short-form vertical videos.\n")
	fmt.Fprintf(&b, "Write a %s script with a %s tone.\n", req.Purpose, req.Tone)
	fmt.Fprintf(&b, "Target length: about %d words, spoken in %d-%d seconds.\n",
		words, req.VideoLength, req.VideoLength+5)
	if req.KeyPhrase != "" {
		fmt.Fprintf(&b, "The script must include the phrase: %q.\n", req.KeyPhrase)
	}
	if req.Keyword != "" {
		fmt.Fprintf(&b, "Work in the keyword: %q.\n", req.Keyword)
	}
	b.WriteString("Respond with a strict JSON object containing exactly these fields: " +
		`"title", "script", "imagePrompt", "videoPrompt". No markdown, no extra keys.`)
	return b.String()
}

// GenerateScript asks the model for a script plus image/video prompts.
func (g *Generator) GenerateScript(ctx context.Context, req ScriptRequest) (ScriptResult, error) {
	content, err := g.complete(ctx, scriptInstruction(req), "Generate the script now.", true)
	if err != nil {
		return ScriptResult{}, err
	}

	result, err := parseScriptResult(content)
	if err != nil {
		g.logger.WithError(err).Warn("LLM returned unusable script payload")
		return ScriptResult{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return result, nil
}

// EnhancePrompt rewrites an image or video generation prompt with more
// visual detail. kind is "image" or "video".
func (g *Generator) EnhancePrompt(ctx context.Context, prompt, kind string) (string, error) {
	system := fmt.Sprintf(
		"You improve %s-generation prompts. Rewrite the user's prompt with concrete visual detail, "+
			"style and composition cues. Answer with the rewritten prompt only.", kind)

	content, err := g.complete(ctx, system, prompt, false)
	if err != nil {
		return "", err
	}
	enhanced := strings.TrimSpace(content)
	if enhanced == "" {
		return "", fmt.Errorf("%w: empty completion", ErrGenerationFailed)
	}
	return enhanced, nil
}

func (g *Generator) complete(ctx context.Context, system, user string, jsonMode bool) (string, error) {
	if !g.configured {
		return "", ErrNotConfigured
	}
	chatReq := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}
	if jsonMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := g.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		g.logger.WithError(err).Error("chat completion request failed")
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrGenerationFailed)
	}
	return resp.Choices[0].Message.Content, nil
}

// parseScriptResult decodes the model output, tolerating a markdown code
// fence around the JSON, and rejects payloads missing any of the four
// required fields.
func parseScriptResult(content string) (ScriptResult, error) {
	cleaned := strings.TrimSpace(content)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var result ScriptResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return ScriptResult{}, fmt.Errorf("unparsable completion: %v", err)
	}
	if result.Title == "" || result.Script == "" || result.ImagePrompt == "" || result.VideoPrompt == "" {
		return ScriptResult{}, errors.New("completion is missing required fields")
	}
	return result, nil
}
