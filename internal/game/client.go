package game

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// ClientOptions tune a connection.
type ClientOptions struct {
	// SendBuffer is how many outgoing messages may queue before the client
	// is dropped.
	SendBuffer int
	// ChatRate and ChatBurst limit chat messages per second.
	ChatRate  float64
	ChatBurst int
	// ReadLimit caps the size of one incoming message in bytes.
	ReadLimit int64
	// PingPeriod is how often the server pings. The peer has 10/9 of it to
	// answer.
	PingPeriod time.Duration
	WriteWait  time.Duration
}

// DefaultClientOptions are used for zero fields.
var DefaultClientOptions = ClientOptions{
	SendBuffer: 256,
	ChatRate:   2,
	ChatBurst:  5,
	ReadLimit:  64 * 1024,
	PingPeriod: 54 * time.Second,
	WriteWait:  10 * time.Second,
}

// Client represents a single connected WebSocket client of one participant.
type Client struct {
	conn          *websocket.Conn
	hub           *Hub
	send          chan []byte
	participantID string
	limiter       *rate.Limiter
	opts          ClientOptions
	mu            sync.Mutex
	closed        bool
	log           zerolog.Logger
}

// NewClient wraps conn for participantID. conn may be nil in tests.
func NewClient(hub *Hub, conn *websocket.Conn, participantID string, opts ClientOptions) *Client {
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = DefaultClientOptions.SendBuffer
	}
	if opts.ChatRate <= 0 {
		opts.ChatRate = DefaultClientOptions.ChatRate
	}
	if opts.ChatBurst <= 0 {
		opts.ChatBurst = DefaultClientOptions.ChatBurst
	}
	if opts.ReadLimit <= 0 {
		opts.ReadLimit = DefaultClientOptions.ReadLimit
	}
	if opts.PingPeriod <= 0 {
		opts.PingPeriod = DefaultClientOptions.PingPeriod
	}
	if opts.WriteWait <= 0 {
		opts.WriteWait = DefaultClientOptions.WriteWait
	}
	return &Client{
		conn:          conn,
		hub:           hub,
		send:          make(chan []byte, opts.SendBuffer),
		participantID: participantID,
		limiter:       rate.NewLimiter(rate.Limit(opts.ChatRate), opts.ChatBurst),
		opts:          opts,
		log:           log.With().Str("module", "client").Str("room", hub.Code()).Str("participant", participantID).Logger(),
	}
}

// ParticipantID returns the participant this connection belongs to.
func (c *Client) ParticipantID() string {
	return c.participantID
}

// TrySend queues msg without blocking.
func (c *Client) TrySend(msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrHubClosed
	}
	select {
	case c.send <- msg:
		return nil
	default:
		return ErrBackpressure
	}
}

// Close stops delivery. WritePump flushes what is queued and closes the
// connection.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// ReadPump pumps messages from the WebSocket connection to the hub.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	pongWait := c.opts.PingPeriod * 10 / 9
	c.conn.SetReadLimit(c.opts.ReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn().Err(err).Msg("websocket read")
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.log.Warn().Err(err).Msg("bad json")
			continue
		}
		if msg.Type == TypeLeave {
			if err := c.hub.Leave(ctx, c.participantID); err != nil {
				c.log.Debug().Err(err).Msg("leave")
			}
			return
		}
		if err := c.handle(ctx, msg); err != nil {
			if errors.Is(err, ErrHubClosed) || errors.Is(err, context.Canceled) {
				return
			}
			c.reply(err)
		}
	}
}

// handle dispatches one client message to the hub.
func (c *Client) handle(ctx context.Context, msg Message) error {
	hub, id := c.hub, c.participantID

	switch msg.Type {
	case TypeChat:
		var payload ChatPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return err
		}
		if !c.limiter.Allow() {
			return ErrRateLimited
		}
		_, err := hub.Guess(ctx, id, payload.Message)
		return err

	case TypeWordChosen:
		var payload WordChosenPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return err
		}
		_, err := hub.SelectWord(ctx, id, payload.ChosenWord)
		return err

	case TypeDrawAction:
		var payload DrawActionPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return err
		}
		return hub.Draw(ctx, id, msg.Payload)

	case TypeStartGame:
		return hub.Start(ctx, id)

	case TypeUpdateSettings:
		var payload SettingsPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return err
		}
		_, err := hub.UpdateSettings(ctx, id, payload.Settings)
		return err

	case TypeAddBot:
		_, _, err := hub.AddBot(ctx, id)
		return err

	case TypeKick:
		var payload KickPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return err
		}
		return hub.Kick(ctx, id, payload.ParticipantID)

	default:
		c.log.Warn().Str("type", msg.Type).Msg("unknown message type")
		return nil
	}
}

func (c *Client) reply(err error) {
	msg, encErr := encode(TypeError, ErrorPayload{Error: err.Error()})
	if encErr != nil {
		return
	}
	if sendErr := c.TrySend(msg); sendErr != nil {
		c.log.Debug().Err(sendErr).Msg("error reply dropped")
	}
}

// WritePump pumps queued messages to the connection and keeps it alive with
// pings.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(c.opts.PingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(c.opts.WriteWait))
			return

		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
			if !ok {
				// The hub closed the channel.
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.log.Warn().Err(err).Msg("websocket write")
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Serve runs both pumps until the connection closes. The hub must already
// have accepted the client via Register.
func (c *Client) Serve(ctx context.Context) {
	go c.WritePump(ctx)
	c.ReadPump(ctx)
}
