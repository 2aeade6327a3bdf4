package game

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hakimalhazi/Skiblo/internal/engine"
)

// Hub owns one room. All game state is touched only from the goroutine
// running Run; everybody else talks to it through channels.
type Hub struct {
	code       string
	engine     *engine.Engine
	clients    map[*Client]bool // Registered clients.
	register   chan *Client
	unregister chan *Client
	commands   chan command
	done       chan struct{}
	canvas     canvas
	newTicker  TickerFactory
	interval   time.Duration
	ticker     Ticker
	// tickerPhase and tickerTurn tell which countdown the running ticker
	// was started for.
	tickerPhase engine.PhaseName
	tickerTurn  int
	idleTimeout time.Duration
	newIdle     TickerFactory
	// busy is set by every registration and state change and cleared by
	// each idle check.
	busy    bool
	onEmpty func(code string)
	log     zerolog.Logger
}

// HubOptions configure a Hub.
type HubOptions struct {
	Code  string
	Words engine.WordSource
	// NewTicker defaults to NewTimeTicker.
	NewTicker TickerFactory
	// TickInterval is the length of one game second. Defaults to a second.
	TickInterval time.Duration
	// IdleTimeout closes a room that had no connection and no state change
	// for that long. The room closes between one and two timeouts after the
	// last activity. Zero keeps rooms open.
	IdleTimeout time.Duration
	// NewIdleTicker defaults to NewTimeTicker.
	NewIdleTicker TickerFactory
	// OnEmpty is called from the hub goroutine once the last participant
	// left or the room was closed for being idle.
	OnEmpty func(code string)
}

// NewHub creates a hub for the room code. It does nothing until Run is
// called.
func NewHub(opts HubOptions) *Hub {
	if opts.NewTicker == nil {
		opts.NewTicker = NewTimeTicker
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.NewIdleTicker == nil {
		opts.NewIdleTicker = NewTimeTicker
	}
	logger := log.With().Str("module", "hub").Str("room", opts.Code).Logger()
	return &Hub{
		code: opts.Code,
		engine: engine.New(engine.Options{
			Words:       opts.Words,
			NewRoomCode: func() string { return opts.Code },
			Logger:      &logger,
		}),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan command),
		done:       make(chan struct{}),
		newTicker:   opts.NewTicker,
		interval:    opts.TickInterval,
		idleTimeout: opts.IdleTimeout,
		newIdle:     opts.NewIdleTicker,
		onEmpty:     opts.OnEmpty,
		log:         logger,
	}
}

// Code returns the room code.
func (h *Hub) Code() string {
	return h.code
}

// Done is closed once Run returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Run processes registrations, commands and clock ticks until ctx is
// cancelled or the room is closed for being idle.
func (h *Hub) Run(ctx context.Context) {
	var idle <-chan time.Time
	if h.idleTimeout > 0 {
		idleTicker := h.newIdle(h.idleTimeout)
		defer idleTicker.Stop()
		idle = idleTicker.C()
	}
	h.busy = true

	defer func() {
		h.stopTicker()
		for client := range h.clients {
			delete(h.clients, client)
			client.Close()
		}
		close(h.done)
		h.log.Info().Msg("hub stopped")
	}()

	for {
		var ticks <-chan time.Time
		if h.ticker != nil {
			ticks = h.ticker.C()
		}

		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.busy = true
			h.handleRegister(client)

		case client := <-h.unregister:
			h.handleUnregister(client)

		case cmd := <-h.commands:
			cmd.fn()
			if cmd.mutates {
				h.busy = true
				h.afterChange()
			}
			close(cmd.done)

		case <-ticks:
			if h.engine.Tick() {
				h.afterChange()
			}

		case <-idle:
			if h.busy || len(h.clients) > 0 {
				h.busy = false
				continue
			}
			h.log.Info().Dur("idle", h.idleTimeout).Msg("closing idle room")
			if h.onEmpty != nil {
				h.onEmpty(h.code)
				h.onEmpty = nil
			}
			return
		}
	}
}

// Register attaches a connection to the hub.
func (h *Hub) Register(ctx context.Context, client *Client) error {
	select {
	case h.register <- client:
		return nil
	case <-h.done:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Unregister detaches a connection. The participant leaves the room when it
// was their last connection.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// command is a closure run on the hub goroutine. Mutating commands are
// followed by a state broadcast before done is closed.
type command struct {
	fn      func()
	mutates bool
	done    chan struct{}
}

// do runs fn on the hub goroutine and waits until its effects were
// broadcast.
func (h *Hub) do(ctx context.Context, fn func()) error {
	return h.exec(ctx, command{fn: fn, mutates: true})
}

// query runs a read-only fn on the hub goroutine and waits for it.
func (h *Hub) query(ctx context.Context, fn func()) error {
	return h.exec(ctx, command{fn: fn})
}

func (h *Hub) exec(ctx context.Context, cmd command) error {
	cmd.done = make(chan struct{})
	select {
	case h.commands <- cmd:
	case <-h.done:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-cmd.done:
		return nil
	case <-h.done:
		return ErrHubClosed
	}
}

func (h *Hub) handleRegister(client *Client) {
	if _, ok := h.engine.Participant(client.participantID); !ok {
		h.log.Warn().Str("participant", client.participantID).Msg("rejected connection for unknown participant")
		h.sendError(client, ErrUnknownParticipant)
		client.Close()
		return
	}
	h.clients[client] = true
	h.log.Debug().Str("participant", client.participantID).Int("clients", len(h.clients)).Msg("client registered")

	h.sendState(client)
	if history := h.canvas.history(); len(history) > 0 {
		h.send(client, TypeDrawHistory, DrawHistoryPayload{Actions: history})
	}
}

func (h *Hub) handleUnregister(client *Client) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.Close()
		h.log.Debug().Str("participant", client.participantID).Int("clients", len(h.clients)).Msg("client unregistered")
	}

	// Slow clients are dropped without an unregister, so the participant
	// is checked either way.
	if h.connected(client.participantID) {
		return
	}
	if h.engine.RemoveParticipant(client.participantID) {
		h.afterChange()
	}
}

// afterChange runs after every state change: it keeps the clock running
// only while a phase counts down, pushes the new state to every connection
// and closes the room once it is empty.
func (h *Hub) afterChange() {
	h.canvas.sync(h.engine.Turn())
	h.syncTicker()
	h.broadcastState()

	empty := h.engine.Phase() != engine.PhaseLogin && len(h.engine.Participants()) == 0
	if empty && h.onEmpty != nil {
		h.log.Info().Msg("room is empty")
		h.onEmpty(h.code)
		h.onEmpty = nil
	}
}

// syncTicker runs the clock only while a phase counts down. Every new phase
// gets a fresh ticker so its first second is a whole one.
func (h *Hub) syncTicker() {
	phase := h.engine.Phase()
	if !phase.IsActive() {
		h.stopTicker()
		return
	}
	turn := h.engine.Turn()
	if h.ticker != nil && h.tickerPhase == phase && h.tickerTurn == turn {
		return
	}
	h.stopTicker()
	h.ticker = h.newTicker(h.interval)
	h.tickerPhase, h.tickerTurn = phase, turn
}

func (h *Hub) stopTicker() {
	if h.ticker != nil {
		h.ticker.Stop()
		h.ticker = nil
	}
}

func (h *Hub) connected(participantID string) bool {
	for client := range h.clients {
		if client.participantID == participantID {
			return true
		}
	}
	return false
}

// broadcastState sends every connection its own view of the game.
func (h *Hub) broadcastState() {
	for client := range h.clients {
		h.sendState(client)
	}
}

func (h *Hub) sendState(client *Client) {
	h.send(client, TypeState, h.engine.View(client.participantID))
}

func (h *Hub) sendError(client *Client, err error) {
	h.send(client, TypeError, ErrorPayload{Error: err.Error()})
}

func (h *Hub) send(client *Client, kind string, payload any) {
	msg, err := encode(kind, payload)
	if err != nil {
		h.log.Error().Err(err).Str("type", kind).Msg("encode message")
		return
	}
	h.deliver(client, msg)
}

// deliver drops a connection that cannot keep up instead of blocking the
// room.
func (h *Hub) deliver(client *Client, msg []byte) {
	if err := client.TrySend(msg); err != nil {
		h.log.Warn().Err(err).Str("participant", client.participantID).Msg("dropping slow client")
		delete(h.clients, client)
		client.Close()
	}
}

func (h *Hub) relay(kind string, payload json.RawMessage) {
	msg, err := json.Marshal(Message{Type: kind, Payload: payload})
	if err != nil {
		h.log.Error().Err(err).Str("type", kind).Msg("encode relay")
		return
	}
	for client := range h.clients {
		h.deliver(client, msg)
	}
}
