package generation

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/ai/azopenai"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"

	"pizzabot/internal/config"
)

// AzureOpenAIProvider completes chats against an Azure OpenAI deployment.
type AzureOpenAIProvider struct {
	client      *azopenai.Client
	deployment  string
	temperature float32
	maxTokens   int32
}

// NewAzureOpenAIProvider builds the provider from cfg.Azure.
func NewAzureOpenAIProvider(cfg config.GenerationConfig) (*AzureOpenAIProvider, error) {
	return newAzureProvider(cfg, nil)
}

func newAzureProvider(cfg config.GenerationConfig, opts *azopenai.ClientOptions) (*AzureOpenAIProvider, error) {
	az := cfg.Azure
	if az.Endpoint == "" || az.APIKey == "" || az.DeploymentName == "" {
		return nil, errors.New("azure provider needs AZURE_OPENAI_ENDPOINT, AZURE_OPENAI_API_KEY and AZURE_OPENAI_DEPLOYMENT_NAME")
	}

	client, err := azopenai.NewClientWithKeyCredential(az.Endpoint, azcore.NewKeyCredential(az.APIKey), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure OpenAI client: %w", err)
	}
	return &AzureOpenAIProvider{
		client:      client,
		deployment:  az.DeploymentName,
		temperature: float32(cfg.Temperature),
		maxTokens:   int32(cfg.MaxTokens),
	}, nil
}

func (p *AzureOpenAIProvider) Name() string {
	return "azure"
}

// azureMessage converts one chat message into the SDK's request union.
func azureMessage(m Message) (azopenai.ChatRequestMessageClassification, error) {
	switch m.Role {
	case "system":
		return &azopenai.ChatRequestSystemMessage{Content: azopenai.NewChatRequestSystemMessageContent(m.Content)}, nil
	case "user":
		return &azopenai.ChatRequestUserMessage{Content: azopenai.NewChatRequestUserMessageContent(m.Content)}, nil
	case "assistant":
		return &azopenai.ChatRequestAssistantMessage{Content: azopenai.NewChatRequestAssistantMessageContent(m.Content)}, nil
	}
	return nil, fmt.Errorf("unsupported message role: %s", m.Role)
}

func (p *AzureOpenAIProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	req := azopenai.ChatCompletionsOptions{
		DeploymentName: to.Ptr(p.deployment),
		MaxTokens:      to.Ptr(p.maxTokens),
		Temperature:    to.Ptr(p.temperature),
	}
	for _, m := range messages {
		msg, err := azureMessage(m)
		if err != nil {
			return "", err
		}
		req.Messages = append(req.Messages, msg)
	}

	resp, err := p.client.GetChatCompletions(ctx, req, nil)
	if err != nil {
		return "", fmt.Errorf("azure completion: %w", err)
	}
	for _, choice := range resp.Choices {
		if choice.Message != nil && choice.Message.Content != nil {
			return *choice.Message.Content, nil
		}
	}
	return "", ErrEmptyResponse
}
