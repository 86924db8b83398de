// Package chat is the REST client for the AI support service.
package chat

import (
	"context"
	"log"
	"net/http"
	"net/url"

	"skishop-bff/internal/domain"
	"skishop-bff/internal/upstream"
)

// Chat modes map to distinct assistant endpoints.
const (
	ModeMessage   = "message"
	ModeRecommend = "recommend"
	ModeAdvice    = "advice"
)

type Client struct {
	api *upstream.Client
}

func New(baseURL string, httpClient *http.Client, logger *log.Logger) *Client {
	return &Client{api: upstream.New("ai-support-service", baseURL, httpClient, logger)}
}

// Send forwards a shopper message to the assistant. Unknown modes fall back
// to the plain message endpoint.
func (c *Client) Send(ctx context.Context, in domain.ChatRequest, mode string) (*domain.ChatResponse, error) {
	var resp domain.ChatResponse
	if err := c.api.Do(ctx, http.MethodPost, endpoint(mode), nil, in, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Conversation fetches one conversation transcript.
func (c *Client) Conversation(ctx context.Context, conversationID string) (*domain.ChatConversation, error) {
	var conv domain.ChatConversation
	path := "/api/v1/chat/conversations/" + url.PathEscape(conversationID)
	if err := c.api.Do(ctx, http.MethodGet, path, nil, nil, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

func endpoint(mode string) string {
	switch mode {
	case ModeRecommend:
		return "/api/v1/chat/recommend"
	case ModeAdvice:
		return "/api/v1/chat/advice"
	default:
		return "/api/v1/chat/message"
	}
}
