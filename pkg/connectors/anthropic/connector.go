// Package anthropic is a thin connector for the Anthropic API: message
// creation through the Claude SDK and model listing.
package anthropic

import (
	"context"
	"errors"
	"net/url"
	"strings"

	goanthropic "github.com/liushuangls/go-anthropic/v2"

	"github.com/jbcom/vendor-connectors/pkg/connector"
)

const (
	Name          = "anthropic"
	Description   = "Anthropic Claude operations: message creation and model listing."
	CredentialEnv = "ANTHROPIC_API_KEY"

	baseURLEnv     = "ANTHROPIC_API_URL"
	defaultBaseURL = "https://api.anthropic.com/v1"

	apiVersion = "2023-06-01"
)

// BaseURL returns the API base URL, honoring the ANTHROPIC_API_URL
// override.
func BaseURL() string {
	return connector.BaseURL(Name, baseURLEnv, defaultBaseURL)
}

// Connector wraps the Anthropic API. Message creation goes through the
// Claude SDK; model listing uses the shared REST client since the SDK
// does not cover that endpoint.
type Connector struct {
	sdk  *goanthropic.Client
	rest *connector.Client
}

// New creates an Anthropic connector. An empty key falls back to
// ANTHROPIC_API_KEY.
func New(apiKey string, opts ...connector.ClientOption) (*Connector, error) {
	resolved, err := connector.Credential(Name, apiKey, CredentialEnv)
	if err != nil {
		return nil, err
	}

	headers := func(ctx context.Context) (map[string]string, error) {
		return map[string]string{
			"x-api-key":         resolved,
			"anthropic-version": apiVersion,
		}, nil
	}
	opts = append([]connector.ClientOption{connector.WithHeaderFunc(headers)}, opts...)

	return &Connector{
		sdk:  goanthropic.NewClient(resolved, goanthropic.WithBaseURL(BaseURL())),
		rest: connector.NewClient(Name, BaseURL(), opts...),
	}, nil
}

// Message is the reshaped result of a message creation call.
type Message struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Model string `json:"model"`
	Usage Usage  `json:"usage"`
}

// Usage reports token consumption for a message.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// CreateMessage sends a single user prompt to a Claude model. system is
// optional; maxTokens of 0 uses a 1024-token default.
func (c *Connector) CreateMessage(ctx context.Context, model, prompt, system string, maxTokens int) (*Message, error) {
	if model == "" || prompt == "" {
		return nil, connector.ValidationError(Name, "model and prompt are required")
	}
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	req := goanthropic.MessagesRequest{
		Model:     goanthropic.Model(model),
		MaxTokens: maxTokens,
		Messages:  []goanthropic.Message{goanthropic.NewUserTextMessage(prompt)},
	}
	if system != "" {
		req.System = system
	}

	resp, err := c.sdk.CreateMessages(ctx, req)
	if err != nil {
		return nil, wrapSDKErr(err)
	}

	// Claude returns an array of content blocks; concatenate the text ones.
	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != nil {
			text.WriteString(*block.Text)
		}
	}

	return &Message{
		ID:    resp.ID,
		Text:  text.String(),
		Model: string(resp.Model),
		Usage: Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
		},
	}, nil
}

// Model is one available Claude model.
type Model struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// ListModels lists available Claude models, following cursor pagination.
func (c *Connector) ListModels(ctx context.Context) ([]Model, error) {
	var models []Model
	afterID := ""
	for {
		query := url.Values{}
		if afterID != "" {
			query.Set("after_id", afterID)
		}

		var resp struct {
			Data    []Model `json:"data"`
			HasMore bool    `json:"has_more"`
			LastID  string  `json:"last_id"`
		}
		if err := c.rest.Get(ctx, "/models", query, &resp); err != nil {
			return nil, err
		}
		models = append(models, resp.Data...)
		if !resp.HasMore || resp.LastID == "" {
			break
		}
		afterID = resp.LastID
	}
	return models, nil
}

// wrapSDKErr maps Claude SDK errors onto the connector taxonomy.
func wrapSDKErr(err error) error {
	var apiErr *goanthropic.APIError
	if errors.As(err, &apiErr) {
		switch string(apiErr.Type) {
		case "authentication_error", "permission_error":
			return connector.AuthError(Name, apiErr.Message)
		case "invalid_request_error":
			return connector.ValidationError(Name, apiErr.Message)
		case "not_found_error":
			return connector.NotFoundError(Name, apiErr.Message)
		case "rate_limit_error":
			return connector.NewError(Name, connector.TypeRateLimit, apiErr.Message)
		default:
			return connector.NewError(Name, connector.TypeProvider, apiErr.Message)
		}
	}
	return connector.NewError(Name, connector.TypeProvider, err.Error())
}
