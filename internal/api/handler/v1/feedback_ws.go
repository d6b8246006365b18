package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/hubicito/hubicito-api/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 8 << 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are already filtered by the CORS middleware.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsMessage is the envelope of everything sent over the feedback socket.
type wsMessage struct {
	Type     string           `json:"type"`
	Feedback *domain.Feedback `json:"feedback,omitempty"`
	Message  string           `json:"message,omitempty"`
}

type directMessage struct {
	client  *wsClient
	payload []byte
}

type wsClient struct {
	conn      *websocket.Conn
	send      chan []byte
	projectID uuid.UUID
	actor     domain.Actor
}

// FeedbackHub fans new feedback out to the sockets watching its project.
// The client registry is owned by the Run goroutine.
type FeedbackHub struct {
	clients    map[uuid.UUID]map[*wsClient]struct{}
	register   chan *wsClient
	unregister chan *wsClient
	broadcast  chan domain.Feedback
	direct     chan directMessage
	done       chan struct{}
}

func NewFeedbackHub() *FeedbackHub {
	return &FeedbackHub{
		clients:    make(map[uuid.UUID]map[*wsClient]struct{}),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		broadcast:  make(chan domain.Feedback, 64),
		direct:     make(chan directMessage),
		done:       make(chan struct{}),
	}
}

func (h *FeedbackHub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for _, clients := range h.clients {
				for client := range clients {
					close(client.send)
				}
			}
			h.clients = nil
			return
		case client := <-h.register:
			if h.clients[client.projectID] == nil {
				h.clients[client.projectID] = make(map[*wsClient]struct{})
			}
			h.clients[client.projectID][client] = struct{}{}
		case client := <-h.unregister:
			h.remove(client)
		case msg := <-h.direct:
			if _, ok := h.clients[msg.client.projectID][msg.client]; ok {
				select {
				case msg.client.send <- msg.payload:
				default:
				}
			}
		case feedback := <-h.broadcast:
			payload, err := json.Marshal(wsMessage{Type: "feedback", Feedback: &feedback})
			if err != nil {
				zap.L().Error("could not encode feedback", zap.Error(err))
				continue
			}
			for client := range h.clients[feedback.ProjectID] {
				select {
				case client.send <- payload:
				default:
					h.remove(client)
				}
			}
		}
	}
}

// Publish queues feedback for delivery. It is a no-op once the hub stopped.
func (h *FeedbackHub) Publish(feedback domain.Feedback) {
	select {
	case h.broadcast <- feedback:
	case <-h.done:
	}
}

func (h *FeedbackHub) remove(client *wsClient) {
	clients, ok := h.clients[client.projectID]
	if !ok {
		return
	}
	if _, ok = clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.projectID)
	}
}

// HandleFeedbackSocket godoc
// @Summary      Stream the feedback thread of a project
// @Description  Upgrades to a websocket that receives every new feedback message. Text frames {"message": "..."} sent by the client are posted as feedback.
// @Tags         feedback
// @Param        projectID     path   string  true   "project id"
// @Param        access_token  query  string  false  "JWT when the Authorization header cannot be set"
// @Success      101  {string}  string  "Switching Protocols"
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /projects/{projectID}/feedback/ws [get]
// @Security BearerAuth
func (h *FeedbackHandler) HandleFeedbackSocket(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}
	projectID, ok := uuidParam(ctx, "projectID")
	if !ok {
		return
	}

	if err := h.svc.Authorize(ctx.Request.Context(), actor, projectID); err != nil {
		renderServiceErr(ctx, "v1.HandleFeedbackSocket -> h.svc.Authorize", err, projectID)
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &wsClient{
		conn:      conn,
		send:      make(chan []byte, 16),
		projectID: projectID,
		actor:     actor,
	}

	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump(h)
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *wsClient) readPump(h *FeedbackHandler) {
	defer func() {
		select {
		case h.hub.unregister <- c:
		case <-h.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Debug("feedback socket closed", zap.Error(err))
			}
			return
		}

		var in wsMessage
		if err = json.Unmarshal(raw, &in); err != nil {
			c.reply(h.hub, wsMessage{Type: "error", Message: "malformed message"})
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), writeWait)
		_, err = h.svc.Post(ctx, c.actor, c.projectID, in.Message)
		cancel()
		if err != nil {
			c.reply(h.hub, wsMessage{Type: "error", Message: err.Error()})
		}
	}
}

// reply sends msg to this client only, through the hub so that it never
// races with the client being removed.
func (c *wsClient) reply(h *FeedbackHub, msg wsMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case h.direct <- directMessage{client: c, payload: payload}:
	case <-h.done:
	}
}
