// ============================================================================
// calc - Interaktiver Rechner
// ============================================================================
//
// Package:     server
// Description: WebSocket sessions: one engine per connection, JSON frames
//              for evaluation, ping/pong keepalive
// Author:      msto63
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package server

import (
	"encoding/json"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/msto63/calc/foundation/calc"
	mdwerror "github.com/msto63/calc/foundation/core/error"
	"github.com/msto63/calc/pkg/core/logging"
)

// Message types
const (
	TypeEval    = "eval"
	TypePing    = "ping"
	TypeVars    = "vars"
	TypeResult  = "result"
	TypeError   = "error"
	TypePong    = "pong"
	TypeWelcome = "welcome"
)

// WSMessage represents a client frame
type WSMessage struct {
	Type    string          `json:"type"`    // "eval", "vars", "ping"
	Payload json.RawMessage `json:"payload"` // Message-specific payload
}

// WSEvalPayload carries one input line
type WSEvalPayload struct {
	Line string `json:"line"`
	Tree bool   `json:"tree,omitempty"`
}

// WSResponse represents a server frame
type WSResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// WSResultPayload is the answer to a successful eval
type WSResultPayload struct {
	Result     string      `json:"result"` // "expression" or "declaration"
	Value      interface{} `json:"value"`
	Display    string      `json:"display"`
	Kind       string      `json:"kind"` // "int" or "float"
	Name       string      `json:"name,omitempty"`
	Tree       string      `json:"tree,omitempty"`
	DurationMS float64     `json:"duration_ms"`
}

// WSVariable is one binding in a vars answer
type WSVariable struct {
	Name    string      `json:"name"`
	Value   interface{} `json:"value"`
	Display string      `json:"display"`
	Kind    string      `json:"kind"`
}

// WSErrorPayload represents an error payload
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WSWelcomePayload is sent once after the upgrade
type WSWelcomePayload struct {
	SessionID string `json:"session_id"`
	Version   string `json:"version"`
}

// SessionHandler upgrades connections and runs one session per connection
type SessionHandler struct {
	newEngine EngineFactory
	config    Config
	logger    *logging.Logger
	upgrader  websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*session
	closed   bool
}

// NewSessionHandler creates a session handler
func NewSessionHandler(newEngine EngineFactory, cfg Config, logger *logging.Logger) *SessionHandler {
	h := &SessionHandler{
		newEngine: newEngine,
		config:    cfg,
		logger:    logger,
		sessions:  make(map[string]*session),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// checkOrigin allows every origin when none are configured
func (h *SessionHandler) checkOrigin(r *http.Request) bool {
	if len(h.config.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || slices.Contains(h.config.AllowedOrigins, origin) ||
		slices.Contains(h.config.AllowedOrigins, "*")
}

// Active returns the number of open sessions
func (h *SessionHandler) Active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// CloseAll closes every open connection. Sessions still in the upgrade
// handshake are closed as soon as their connection is attached.
func (h *SessionHandler) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for _, s := range h.sessions {
		if s.conn != nil {
			s.conn.Close()
		}
	}
}

// ServeHTTP handles WebSocket upgrade and connections
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	engine, err := h.newEngine()
	if err != nil {
		h.logger.Error("Engine creation failed", "error", err)
		http.Error(w, "engine unavailable", http.StatusInternalServerError)
		return
	}

	s := &session{id: uuid.NewString(), engine: engine}
	if !h.register(s) {
		h.logger.Warn("Session limit reached", "max_sessions", h.config.MaxSessions)
		http.Error(w, "too many sessions", http.StatusServiceUnavailable)
		return
	}
	defer h.unregister(s.id)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	if !h.attach(s, conn) {
		conn.Close()
		return
	}

	h.handleConnection(s)
}

// register reserves a slot; the connection is attached after the upgrade
func (h *SessionHandler) register(s *session) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	if h.config.MaxSessions > 0 && len(h.sessions) >= h.config.MaxSessions {
		return false
	}
	h.sessions[s.id] = s
	return true
}

// attach publishes the upgraded connection; it fails once CloseAll ran
func (h *SessionHandler) attach(s *session, conn *websocket.Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	s.conn = conn
	return true
}

func (h *SessionHandler) unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, id)
}

// session is one connection with its own engine
type session struct {
	id     string
	engine *calc.Engine
	conn   *websocket.Conn

	writeMu sync.Mutex
}

// handleConnection runs the read loop of a single session
func (h *SessionHandler) handleConnection(s *session) {
	defer s.conn.Close()

	logger := h.logger.With("session_id", s.id)
	logger.Info("WebSocket session opened", "remote", s.conn.RemoteAddr().String())

	pongWait := 2 * h.config.PingInterval
	if pongWait > 0 {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		s.conn.SetPongHandler(func(string) error {
			return s.conn.SetReadDeadline(time.Now().Add(pongWait))
		})
	}

	done := make(chan struct{})
	defer close(done)
	if h.config.PingInterval > 0 {
		go h.keepAlive(s, done)
	}

	h.send(s, WSResponse{Type: TypeWelcome, Payload: WSWelcomePayload{
		SessionID: s.id,
		Version:   h.config.Version,
	}})

	for {
		var msg WSMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket read error", "error", err)
			} else {
				logger.Info("WebSocket session closed")
			}
			return
		}

		switch msg.Type {
		case TypePing:
			h.send(s, WSResponse{Type: TypePong})

		case TypeEval:
			var payload WSEvalPayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				h.sendError(s, string(mdwerror.CodeInvalidInput), "invalid eval payload")
				continue
			}
			h.handleEval(s, payload)

		case TypeVars:
			h.send(s, WSResponse{Type: TypeResult, Payload: variables(s.engine)})

		default:
			h.sendError(s, string(mdwerror.CodeInvalidInput), "unknown message type: "+msg.Type)
		}
	}
}

// handleEval evaluates one line; evaluation errors are answered, never fatal
func (h *SessionHandler) handleEval(s *session, payload WSEvalPayload) {
	result, err := s.engine.Execute(payload.Line)
	if err != nil {
		h.sendError(s, string(mdwerror.GetCode(err)), err.Error())
		return
	}

	out := WSResultPayload{
		Result:     result.Kind.String(),
		Value:      result.Value.Interface(),
		Display:    result.Value.String(),
		Kind:       result.Value.Kind().String(),
		Name:       result.Name,
		DurationMS: float64(result.ExecutionTime.Nanoseconds()) / 1000000,
	}
	if payload.Tree {
		out.Tree = result.Tree()
	}
	h.send(s, WSResponse{Type: TypeResult, Payload: out})
}

func variables(engine *calc.Engine) []WSVariable {
	env := engine.Environment()
	vars := make([]WSVariable, 0, env.Len())
	for _, name := range env.Names() {
		v, _ := env.Lookup(name)
		vars = append(vars, WSVariable{
			Name:    name,
			Value:   v.Interface(),
			Display: v.String(),
			Kind:    v.Kind().String(),
		})
	}
	return vars
}

// keepAlive pings the client until done is closed
func (h *SessionHandler) keepAlive(s *session, done <-chan struct{}) {
	ticker := time.NewTicker(h.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.writeMu.Lock()
			err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(h.writeTimeout()))
			s.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

func (h *SessionHandler) writeTimeout() time.Duration {
	if h.config.WriteTimeout > 0 {
		return h.config.WriteTimeout
	}
	return 10 * time.Second
}

// send writes a frame; the ping goroutine writes concurrently
func (h *SessionHandler) send(s *session, resp WSResponse) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout()))
	if err := s.conn.WriteJSON(resp); err != nil {
		h.logger.Warn("Failed to send WebSocket message", "session_id", s.id, "error", err)
	}
}

func (h *SessionHandler) sendError(s *session, code, message string) {
	h.send(s, WSResponse{Type: TypeError, Payload: WSErrorPayload{Code: code, Message: message}})
}
