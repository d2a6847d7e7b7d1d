package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Conceptual-Machines/musicbrain-api/internal/bridge"
	"github.com/Conceptual-Machines/musicbrain-api/internal/gateway"
	"github.com/Conceptual-Machines/musicbrain-api/internal/logger"
	"github.com/gin-gonic/gin"
)

// CommandHandler exposes the gateway operations over HTTP
type CommandHandler struct {
	gateway *gateway.Gateway
}

func NewCommandHandler(gw *gateway.Gateway) *CommandHandler {
	return &CommandHandler{gateway: gw}
}

// GenerateRequest is the HTTP body of POST /api/v1/generate.
// Intent must be present; an empty object is a valid intent.
type GenerateRequest struct {
	Intent       *bridge.EmotionalIntent `json:"intent" binding:"required"`
	OutputFormat *string                 `json:"output_format"`
}

// InterrogateRequest is the HTTP body of POST /api/v1/interrogate.
// Message must be present but may be empty.
type InterrogateRequest struct {
	Message   *string         `json:"message" binding:"required"`
	SessionID *string         `json:"session_id"`
	Context   json.RawMessage `json:"context"`
}

func (h *CommandHandler) GenerateMusic(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	fields := logger.WithContext(c)
	fields["intent_forms"] = req.Intent.Forms()
	if req.OutputFormat != nil {
		fields["output_format"] = *req.OutputFormat
	}
	logger.Debug("Generate music request", fields)

	result, err := h.gateway.GenerateMusic(c.Request.Context(), bridge.GenerateRequest{
		Intent:       *req.Intent,
		OutputFormat: req.OutputFormat,
	})
	respond(c, result, err)
}

func (h *CommandHandler) Interrogate(c *gin.Context) {
	var req InterrogateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := h.gateway.Interrogate(c.Request.Context(), bridge.InterrogateRequest{
		Message:   *req.Message,
		SessionID: req.SessionID,
		Context:   req.Context,
	})
	respond(c, result, err)
}

func (h *CommandHandler) GetEmotions(c *gin.Context) {
	result, err := h.gateway.GetEmotions(c.Request.Context())
	respond(c, result, err)
}

// Dispatch runs a named command with the raw request body as its payload
func (h *CommandHandler) Dispatch(c *gin.Context) {
	command := c.Param("command")

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxCommandPayloadBytes))
	if err != nil {
		badRequest(c, "failed to read request body")
		return
	}

	result, err := h.gateway.Dispatch(c.Request.Context(), command, payload)

	var dispatchErr *gateway.DispatchError
	if errors.As(err, &dispatchErr) {
		status := http.StatusBadRequest
		if dispatchErr.Unknown {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{
			keyOK:        false,
			keyError:     dispatchErr.Error(),
			keyRequestID: c.GetString("request_id"),
		})
		return
	}
	respond(c, result, err)
}

// ListCommands returns the command names accepted by Dispatch
func (h *CommandHandler) ListCommands(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		keyOK:     true,
		keyResult: gateway.Commands(),
	})
}

// respond writes the gateway outcome as the response envelope
func respond(c *gin.Context, result json.RawMessage, err error) {
	requestID := c.GetString("request_id")

	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}

		fields := logger.WithContext(c)
		var gwErr *gateway.Error
		if errors.As(err, &gwErr) {
			fields["operation"] = gwErr.Op
		}
		logger.Warn("Command failed", fields)

		c.JSON(status, gin.H{
			keyOK:        false,
			keyError:     err.Error(),
			keyRequestID: requestID,
		})
		return
	}

	if result == nil {
		result = json.RawMessage("null")
	}
	c.JSON(http.StatusOK, gin.H{
		keyOK:        true,
		keyResult:    result,
		keyRequestID: requestID,
	})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		keyOK:        false,
		keyError:     msg,
		keyRequestID: c.GetString("request_id"),
	})
}
