package openaiClient

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	openai "github.com/sashabaranov/go-openai"

	"github.com/akolanti/DoodleAPI/internal/config"
	"github.com/akolanti/DoodleAPI/internal/customHttpClient"
	"github.com/akolanti/DoodleAPI/internal/llm"
	"github.com/akolanti/DoodleAPI/pkg/logger_i"
)

type llmClient struct {
	client    *openai.Client
	modelName string
}

var logger *logger_i.Logger
var openaiInstance *llmClient
var once sync.Once

func GetOpenAIClient(apikey string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_openai")
		if apikey == "" {
			logger.Error("OpenAI API key is empty")
			return
		}
		clientConfig := openai.DefaultConfig(apikey)
		clientConfig.HTTPClient = customHttpClient.GetPooledClient()
		openaiInstance = &llmClient{
			client:    openai.NewClientWithConfig(clientConfig),
			modelName: config.OpenAIModel,
		}
		logger.Info("OpenAI client created", "model", config.OpenAIModel)
	})

	if openaiInstance == nil {
		return nil
	}
	return openaiInstance
}

func (c *llmClient) Complete(ctx context.Context, systemPrompt string, userPrompt string, jsonMode bool) (string, error) {
	request := openai.ChatCompletionRequest{
		Model:       c.modelName,
		Temperature: config.ModelTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}
	if jsonMode {
		request.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	response, err := c.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", fmt.Errorf("openai chat: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", nil
	}
	return response.Choices[0].Message.Content, nil
}

func (c *llmClient) CompleteImage(ctx context.Context, prompt string) (string, error) {
	response, err := c.client.CreateImage(ctx, openai.ImageRequest{
		Model:          config.OpenAIImageModel,
		Prompt:         prompt,
		Size:           config.OpenAIImageSize,
		N:              1,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return "", fmt.Errorf("openai image: %w", err)
	}
	if len(response.Data) == 0 {
		return "", nil
	}
	if response.Data[0].B64JSON != "" {
		return "data:image/png;base64," + response.Data[0].B64JSON, nil
	}
	return response.Data[0].URL, nil
}

func (c *llmClient) ExtractImageText(ctx context.Context, image []byte, mimeType string) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	response, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: config.OCRUserPrompt},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: dataURL}},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai ocr: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", nil
	}
	return response.Choices[0].Message.Content, nil
}
