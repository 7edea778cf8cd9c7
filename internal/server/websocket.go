// ============================================================================
// Blaze - scripting language front end
// ============================================================================
//
// Package:     server
// Description: WebSocket transport of the script service
// Author:      VDFOREVER
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	bzerror "github.com/VDFOREVER/blaze/foundation/core/error"
	bzgrpc "github.com/VDFOREVER/blaze/pkg/core/grpc"
	"github.com/VDFOREVER/blaze/pkg/core/logging"
)

const wsReadTimeout = 120 * time.Second

// WSMessage is a client message
type WSMessage struct {
	Type    string          `json:"type"`    // "ping", "lex", "parse"
	Payload json.RawMessage `json:"payload"` // Request for lex and parse
}

// WSResponse is a server message
type WSResponse struct {
	Type    string      `json:"type"`    // "pong", "result", "error"
	Payload interface{} `json:"payload"` // Response or WSErrorPayload
}

// WSErrorPayload describes a failed message
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WebSocketHandler serves the script service over WebSocket
type WebSocketHandler struct {
	service  *ScriptService
	upgrader websocket.Upgrader
	logger   *logging.Logger
}

// NewWebSocketHandler creates the handler. An empty allowedOrigins list
// accepts every origin.
func NewWebSocketHandler(service *ScriptService, allowedOrigins []string, logger *logging.Logger) *WebSocketHandler {
	if logger == nil {
		logger = logging.New("script-websocket")
	}

	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &WebSocketHandler{
		service: service,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowed) == 0 {
					return true
				}
				return allowed[r.Header.Get("Origin")]
			},
		},
	}
}

// ServeHTTP handles WebSocket upgrade and connections
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	h.handleConnection(r.Context(), conn)
}

// handleConnection answers messages in order until the client leaves
func (h *WebSocketHandler) handleConnection(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	connID := uuid.New().String()
	logger := h.logger.With("connection", connID)
	logger.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
		return nil
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket read error", "error", err)
			} else {
				logger.Info("WebSocket connection closed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		reqCtx := bzgrpc.WithRequestID(ctx, uuid.New().String())

		switch msg.Type {
		case "ping":
			h.send(conn, logger, WSResponse{Type: "pong"})

		case "lex", "parse":
			var req Request
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				h.sendError(conn, logger, "invalid_payload", "Invalid "+msg.Type+" payload")
				continue
			}

			var resp *Response
			var err error
			if msg.Type == "lex" {
				resp, err = h.service.Lex(reqCtx, &req)
			} else {
				resp, err = h.service.Parse(reqCtx, &req)
			}
			if err != nil {
				h.sendError(conn, logger, errorCode(err), err.Error())
				continue
			}
			h.send(conn, logger, WSResponse{Type: "result", Payload: resp})

		default:
			h.sendError(conn, logger, "unknown_type", "Unknown message type: "+msg.Type)
		}
	}
}

func (h *WebSocketHandler) send(conn *websocket.Conn, logger *logging.Logger, resp WSResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		logger.Error("WebSocket send error", "error", err)
	}
}

func (h *WebSocketHandler) sendError(conn *websocket.Conn, logger *logging.Logger, code, message string) {
	h.send(conn, logger, WSResponse{
		Type:    "error",
		Payload: WSErrorPayload{Code: code, Message: message},
	})
}

func errorCode(err error) string {
	switch bzerror.GetCode(err) {
	case bzerror.CodeInvalidInput:
		return "invalid_request"
	default:
		return "internal"
	}
}
