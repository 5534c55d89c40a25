package llm

import (
	"context"
	"errors"
	"net/http"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/agenthands/notekeeper/internal/core/model"
)

const claudeMaxTokens = 1000

type ClaudeClient struct {
	client *anthropic.Client
	model  string
}

func NewClaudeClient(apiKey string, model string, baseURL string) *ClaudeClient {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}

	return &ClaudeClient{
		client: anthropic.NewClient(apiKey, opts...),
		model:  model,
	}
}

func (c *ClaudeClient) Generate(ctx context.Context, prompt string) (string, error) {
	return c.send(ctx, []anthropic.Message{textMessage(anthropic.RoleUser, prompt)})
}

func (c *ClaudeClient) Chat(ctx context.Context, history []model.Turn, text string) (string, error) {
	messages := make([]anthropic.Message, 0, len(history)+1)
	for _, t := range history {
		role := anthropic.RoleUser
		if t.Role == model.RoleModel {
			role = anthropic.RoleAssistant
		}
		messages = append(messages, textMessage(role, t.Text))
	}
	messages = append(messages, textMessage(anthropic.RoleUser, text))
	return c.send(ctx, messages)
}

func (c *ClaudeClient) send(ctx context.Context, messages []anthropic.Message) (string, error) {
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(c.model),
		Messages:  messages,
		MaxTokens: claudeMaxTokens,
	})
	if err != nil {
		return "", wrapClaudeError(err)
	}

	if len(resp.Content) > 0 && resp.Content[0].Text != nil {
		return *resp.Content[0].Text, nil
	}
	return "", errNoContent
}

func textMessage(role anthropic.ChatRole, text string) anthropic.Message {
	return anthropic.Message{
		Role: role,
		Content: []anthropic.MessageContent{
			anthropic.NewTextMessageContent(text),
		},
	}
}

func wrapClaudeError(err error) error {
	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) && apiErr.IsRateLimitErr() {
		return rateLimited(err)
	}
	var reqErr *anthropic.RequestError
	if errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusTooManyRequests {
		return rateLimited(err)
	}
	return err
}
