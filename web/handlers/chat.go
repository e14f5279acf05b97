package handlers

import (
	"context"
	"net/http"

	apperrors "chat-agent/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Version reported by the health endpoint.
const Version = "1.0.0"

const (
	missingFieldsMessage = "Message and sessionId are required."
	internalErrorMessage = "Internal server error"
	healthMessage        = "Chat agent is running"
)

// Responder produces a scripted reply for a session message.
type Responder interface {
	Reply(ctx context.Context, message, sessionID string) (string, error)
}

type ChatHandler struct {
	engine Responder
	logger *zap.Logger
}

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}

func NewChatHandler(engine Responder, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		engine: engine,
		logger: logger,
	}
}

// SendMessage handles POST /api/chat.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithClientError(c, http.StatusBadRequest, missingFieldsMessage)
		return
	}

	if req.Message == "" || req.SessionID == "" {
		respondWithClientError(c, http.StatusBadRequest, missingFieldsMessage)
		return
	}

	reply, err := h.engine.Reply(c.Request.Context(), req.Message, req.SessionID)
	if err != nil {
		if apperrors.IsInvalidInput(err) {
			respondWithClientError(c, http.StatusBadRequest, missingFieldsMessage)
			return
		}
		respondWithError(c, http.StatusInternalServerError, err, internalErrorMessage, h.logger,
			zap.String("session_id", req.SessionID))
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Response: reply})
}

// Health handles GET /api/health. Always 200.
func (h *ChatHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "OK",
		Message: healthMessage,
		Version: Version,
	})
}
