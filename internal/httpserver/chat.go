package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"skishop-bff/internal/domain"
)

type chatMessageRequest struct {
	Content        string `json:"content"`
	ConversationID string `json:"conversationId"`
	Mode           string `json:"mode"`
}

func chatMessageHandler(stores CartStores, chat Chat) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req chatMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "content required"})
			return
		}

		store := stores.Resolve(c.Request.Context(), deviceID(c))
		userID := store.CustomerID()
		if userID == "" {
			// Guests chat under their device identity.
			userID = deviceID(c)
		}

		resp, err := chat.Send(c.Request.Context(), domain.ChatRequest{
			UserID:         userID,
			Content:        req.Content,
			ConversationID: req.ConversationID,
		}, req.Mode)
		if err != nil {
			status, msg := upstreamStatus(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func chatConversationHandler(chat Chat) gin.HandlerFunc {
	return func(c *gin.Context) {
		conv, err := chat.Conversation(c.Request.Context(), c.Param("id"))
		if err != nil {
			status, msg := upstreamStatus(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}
		c.JSON(http.StatusOK, conv)
	}
}
