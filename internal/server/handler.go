package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/psellars/fnolgate/internal/model"
	"github.com/psellars/fnolgate/pkg/logger"
)

// Intake is the decision engine behind the claims endpoint.
type Intake interface {
	HandleInbound(ctx context.Context, conversationID, rawBody string) *model.IntakeResponse
}

// ClaimsHandler serves the inbound email endpoint.
type ClaimsHandler struct {
	intake Intake
}

// NewClaimsHandler creates a handler over the given decision engine.
func NewClaimsHandler(intake Intake) *ClaimsHandler {
	return &ClaimsHandler{intake: intake}
}

// Create handles POST /onprem/v2/claims. The body is the raw email payload
// (HTML or plain text); the conversation ID comes from the ConversationID
// header, or from a JSON body field when the payload is JSON.
func (h *ClaimsHandler) Create(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	conversationID := c.GetHeader("ConversationID")
	if conversationID == "" && strings.Contains(c.ContentType(), "application/json") {
		var envelope struct {
			ConversationID string `json:"ConversationID"`
		}
		if err := json.Unmarshal(body, &envelope); err == nil {
			conversationID = envelope.ConversationID
		}
	}

	ctx := c.Request.Context()
	if conversationID != "" {
		ctx = context.WithValue(ctx, logger.ConversationIDKey, conversationID)
	}

	resp := h.intake.HandleInbound(ctx, conversationID, string(body))

	status := http.StatusOK
	if resp.HTTPStatus != 0 {
		status = resp.HTTPStatus
	}
	c.JSON(status, resp)
}
