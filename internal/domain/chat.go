package domain

import "time"

// ChatRequest is a shopper message forwarded to the AI support service.
type ChatRequest struct {
	UserID         string `json:"userId"`
	Content        string `json:"content"`
	ConversationID string `json:"conversationId"`
}

// ChatConversation is one shopper/assistant transcript.
type ChatConversation struct {
	ConversationID string        `json:"conversationId"`
	UserID         string        `json:"userId"`
	Messages       []ChatMessage `json:"messages"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// ChatMessage is a single transcript entry.
type ChatMessage struct {
	MessageID string    `json:"messageId"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatResponse is the assistant's reply.
type ChatResponse struct {
	MessageID      string                 `json:"messageId"`
	ConversationID string                 `json:"conversationId"`
	Content        string                 `json:"content"`
	Intent         string                 `json:"intent,omitempty"`
	Confidence     float64                `json:"confidence,omitempty"`
	Timestamp      time.Time              `json:"timestamp"`
	Context        map[string]interface{} `json:"context,omitempty"`
}
