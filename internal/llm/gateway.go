// Package llm wraps the external completion service behind a small gateway.
// The gateway is only constructed when an API key is configured; callers treat
// a nil gateway as "feature unavailable".
package llm

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"gopkg.in/yaml.v3"
)

//go:embed persona.yaml
var personaYAML []byte

// Style tunes a single completion request.
type Style struct {
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// PersonaSpec is the tutor persona plus per-task request styles, loaded from
// the embedded spec file.
type PersonaSpec struct {
	System string `yaml:"system"`
	Quiz   Style  `yaml:"quiz"`
	Answer Style  `yaml:"answer"`
}

const requestTimeout = 60 * time.Second

// Gateway submits persona-framed prompts to the completion service.
type Gateway struct {
	client *openai.Client
	model  string
	spec   PersonaSpec
}

// New builds a gateway from an API key. The caller must not pass an empty key;
// absence of a key means no gateway at all.
func New(apiKey, model string) (*Gateway, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("completion service API key is required")
	}
	return NewWithClient(openai.NewClient(apiKey), model)
}

// NewWithClient builds a gateway around an existing client. Used by tests to
// point the gateway at a fake completion server.
func NewWithClient(client *openai.Client, model string) (*Gateway, error) {
	var spec PersonaSpec
	if err := yaml.Unmarshal(personaYAML, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse persona spec: %w", err)
	}
	if spec.System == "" {
		return nil, fmt.Errorf("persona spec has no system prompt")
	}
	return &Gateway{client: client, model: model, spec: spec}, nil
}

// Quiz asks for a quiz on the given topic and returns the completion verbatim.
func (g *Gateway) Quiz(ctx context.Context, topic string) (string, error) {
	return g.complete(ctx, QuizPrompt(topic), g.spec.Quiz)
}

// Answer asks a free-text question annotated with the user's current topic.
func (g *Gateway) Answer(ctx context.Context, topic, question string) (string, error) {
	return g.complete(ctx, QuestionPrompt(topic, question), g.spec.Answer)
}

func (g *Gateway) complete(ctx context.Context, prompt string, style Style) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: style.Temperature,
		MaxTokens:   style.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: g.spec.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
