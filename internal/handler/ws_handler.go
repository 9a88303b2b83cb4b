package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"workpanel-api/internal/service"
)

// boardEventsChannel is the redis channel carrying board change events
// between replicas
const boardEventsChannel = "workpanel:board-events"

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// BoardEvent is the payload pushed to board watchers
type BoardEvent struct {
	Type      string    `json:"type"`
	BoardID   string    `json:"boardId"`
	ActorID   string    `json:"actorId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type boardClient struct {
	conn    *websocket.Conn
	send    chan []byte
	boardID uuid.UUID
	userID  uuid.UUID
}

// BoardHub fans board change events out to connected watchers, one room per
// board. Watchers receive a refresh hint and refetch the board view over HTTP.
// With a redis client events travel through pub/sub, so watchers connected to
// other replicas get the hint too; without one the fan-out stays in-process.
type BoardHub struct {
	clients    map[uuid.UUID]map[*boardClient]bool
	clientsMu  sync.RWMutex
	register   chan *boardClient
	unregister chan *boardClient
	redis      *redis.Client
	logger     *zap.Logger
}

// NewBoardHub creates a BoardHub. redisClient may be nil. Callers must start
// Run in a goroutine.
func NewBoardHub(redisClient *redis.Client, logger *zap.Logger) *BoardHub {
	return &BoardHub{
		clients:    make(map[uuid.UUID]map[*boardClient]bool),
		register:   make(chan *boardClient),
		unregister: make(chan *boardClient),
		redis:      redisClient,
		logger:     logger,
	}
}

var _ service.BoardNotifier = (*BoardHub)(nil)

// Run processes register and unregister events until the process exits
func (h *BoardHub) Run() {
	if h.redis != nil {
		go h.relayRedisEvents()
	}
	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			if h.clients[client.boardID] == nil {
				h.clients[client.boardID] = make(map[*boardClient]bool)
			}
			h.clients[client.boardID][client] = true
			h.clientsMu.Unlock()

			h.logger.Info("Board watcher connected",
				zap.String("boardId", client.boardID.String()),
				zap.String("userId", client.userID.String()))

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if clients, ok := h.clients[client.boardID]; ok {
				if _, exists := clients[client]; exists {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.clients, client.boardID)
					}
				}
			}
			h.clientsMu.Unlock()

			h.logger.Info("Board watcher disconnected",
				zap.String("boardId", client.boardID.String()),
				zap.String("userId", client.userID.String()))
		}
	}
}

// NotifyBoardChanged pushes a refresh hint to every watcher of the board.
// When redis is wired the event goes through pub/sub and comes back via the
// subscription, this replica included.
func (h *BoardHub) NotifyBoardChanged(boardID, actorID uuid.UUID) {
	payload, err := json.Marshal(BoardEvent{
		Type:      "BOARD_CHANGED",
		BoardID:   boardID.String(),
		ActorID:   actorID.String(),
		Timestamp: time.Now(),
	})
	if err != nil {
		return
	}

	if h.redis != nil {
		err := h.redis.Publish(context.Background(), boardEventsChannel, payload).Err()
		if err == nil {
			return
		}
		h.logger.Warn("Failed to publish board event, falling back to local fan-out",
			zap.String("boardId", boardID.String()),
			zap.Error(err))
	}
	h.broadcast(boardID, payload)
}

// relayRedisEvents feeds published board events into the local fan-out
func (h *BoardHub) relayRedisEvents() {
	pubsub := h.redis.Subscribe(context.Background(), boardEventsChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var event BoardEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			continue
		}
		boardID, err := uuid.Parse(event.BoardID)
		if err != nil {
			continue
		}
		h.broadcast(boardID, []byte(msg.Payload))
	}
}

// broadcast delivers a payload to every local watcher of the board
func (h *BoardHub) broadcast(boardID uuid.UUID, payload []byte) {
	h.clientsMu.RLock()
	clients := h.clients[boardID]
	targets := make([]*boardClient, 0, len(clients))
	for client := range clients {
		targets = append(targets, client)
	}
	h.clientsMu.RUnlock()

	for _, client := range targets {
		select {
		case client.send <- payload:
		default:
			// Slow consumer, drop the hint. The next event or a manual
			// refresh catches the client up.
		}
	}
}

// WSHandler upgrades board watch connections
type WSHandler struct {
	hub         *BoardHub
	roleService service.RoleService
	jwtSecret   string
	logger      *zap.Logger
}

// NewWSHandler creates a new WSHandler
func NewWSHandler(hub *BoardHub, roleService service.RoleService, jwtSecret string, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		hub:         hub,
		roleService: roleService,
		jwtSecret:   jwtSecret,
		logger:      logger,
	}
}

// Browsers cannot set headers on websocket upgrades, so the token rides in
// the query string instead of the Authorization header.
func (h *WSHandler) userFromToken(tokenString string) (uuid.UUID, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(h.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, false
	}

	var userIDStr string
	if uid, ok := claims["user_id"].(string); ok {
		userIDStr = uid
	} else if sub, ok := claims["sub"].(string); ok {
		userIDStr = sub
	} else if uid, ok := claims["uid"].(string); ok {
		userIDStr = uid
	} else {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

// HandleBoardSocket godoc
// @Summary      Watch a board over WebSocket
// @Description  Streams refresh hints whenever a mutation commits on the board
// @Tags         websocket
// @Param        boardId path string true "Board ID (UUID)"
// @Param        token query string true "JWT access token"
// @Success      101 {string} string "Switching Protocols"
// @Failure      401 {object} map[string]string
// @Router       /ws/boards/{boardId} [get]
func (h *WSHandler) HandleBoardSocket(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("boardId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
		return
	}

	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
		return
	}

	userID, ok := h.userFromToken(tokenString)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	if _, _, err := h.roleService.ResolveBoardRole(c.Request.Context(), boardID, userID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No access to this board"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", zap.Error(err))
		return
	}

	client := &boardClient{
		conn:    conn,
		send:    make(chan []byte, 64),
		boardID: boardID,
		userID:  userID,
	}

	h.hub.register <- client

	go h.writePump(client)
	go h.readPump(client)
}

func (h *WSHandler) readPump(client *boardClient) {
	defer func() {
		h.hub.unregister <- client
		client.conn.Close()
	}()

	client.conn.SetReadLimit(maxMessageSize)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Watch connections are one-way. Inbound frames only keep the
	// connection alive.
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("WebSocket read error", zap.Error(err))
			}
			break
		}
	}
}

func (h *WSHandler) writePump(client *boardClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
