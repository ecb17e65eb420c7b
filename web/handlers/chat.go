package handlers

import (
	"context"
	"net/http"
	"time"

	"hospital-agent/agent"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Assistant is what the handler needs from the agent.
type Assistant interface {
	HandleMessage(ctx context.Context, userID, message string) (*agent.Reply, error)
}

type ChatHandler struct {
	assistant Assistant
	logger    *zap.Logger
}

// ChatRequest is the inbound message. Role and createdAt are accepted for
// compatibility with existing clients and ignored.
type ChatRequest struct {
	UserID    string `json:"userId" binding:"required"`
	Message   string `json:"message" binding:"required"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

type MessageResponse struct {
	Content   string `json:"content"`
	ID        string `json:"id"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

func NewChatHandler(assistant Assistant, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		assistant: assistant,
		logger:    logger,
	}
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	reply, err := h.assistant.HandleMessage(c.Request.Context(), req.UserID, req.Message)
	if err != nil {
		h.logger.Error("Exchange failed",
			zap.String("user_id", req.UserID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Assistant is unavailable, please try again"})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{
		Content:   reply.Content,
		ID:        reply.ID,
		Role:      reply.Role,
		CreatedAt: reply.CreatedAt.Format(time.RFC3339),
	})
}
