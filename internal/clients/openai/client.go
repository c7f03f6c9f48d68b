package openai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/campushq/course-assistant-backend/internal/platform/logger"
	"github.com/campushq/course-assistant-backend/internal/utils"
)

// Client wraps the model provider. One embedding call and one chat
// completion call, both blocking round trips with no retry or caching.
type Client interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Complete(ctx context.Context, system string, user string) (string, error)
}

type client struct {
	log         *logger.Logger
	api         *openai.Client
	embedModel  string
	chatModel   string
	temperature float32
	maxTokens   int
}

func NewClient(log *logger.Logger) (Client, error) {
	clientLog := log.With("client", "OpenAIClient")

	apiKey := utils.GetEnv("OPENAI_API_KEY", "", clientLog)
	if apiKey == "" {
		return nil, fmt.Errorf("missing env var OPENAI_API_KEY")
	}
	embedModel := utils.GetEnv("OPENAI_EMBED_MODEL", "text-embedding-3-small", clientLog)
	chatModel := utils.GetEnv("OPENAI_CHAT_MODEL", "gpt-4o", clientLog)
	temperature := utils.GetEnvAsFloat("OPENAI_TEMPERATURE", 0.7, clientLog)
	maxTokens := utils.GetEnvAsInt("OPENAI_MAX_TOKENS", 1000, clientLog)

	return &client{
		log:         clientLog,
		api:         openai.NewClient(apiKey),
		embedModel:  embedModel,
		chatModel:   chatModel,
		temperature: float32(temperature),
		maxTokens:   maxTokens,
	}, nil
}

func (c *client) Embed(ctx context.Context, text string) ([]float32, error) {
	rsp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(c.embedModel),
	})
	if err != nil {
		return nil, err
	}

	if len(rsp.Data) == 0 || len(rsp.Data[0].Embedding) == 0 {
		return nil, errors.New("empty embedding response")
	}

	return rsp.Data[0].Embedding, nil
}

func (c *client) Complete(ctx context.Context, system string, user string) (string, error) {
	rsp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", err
	}

	if len(rsp.Choices) == 0 || rsp.Choices[0].Message.Content == "" {
		return "", errors.New("empty completion response")
	}

	return rsp.Choices[0].Message.Content, nil
}
