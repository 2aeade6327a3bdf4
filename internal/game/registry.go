package game

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hakimalhazi/Skiblo/internal/engine"
	"github.com/hakimalhazi/Skiblo/internal/roster"
)

// RegistryOptions configure a Registry.
type RegistryOptions struct {
	Words engine.WordSource
	// MaxRooms caps the number of live rooms. Zero means no cap.
	MaxRooms     int
	NewTicker    TickerFactory
	TickInterval time.Duration
	// IdleTimeout closes rooms nobody used for that long. Zero keeps them.
	IdleTimeout   time.Duration
	NewIdleTicker TickerFactory
	// NewCode defaults to engine.NewRoomCode.
	NewCode func() string
}

type room struct {
	hub    *Hub
	cancel context.CancelFunc
}

// Registry keeps the live rooms by code. It is safe for concurrent use.
type Registry struct {
	mtx   sync.RWMutex
	rooms map[string]room
	ctx   context.Context
	opts  RegistryOptions
	wg    sync.WaitGroup
	log   zerolog.Logger
}

// NewRegistry creates an empty registry. Rooms run until ctx is cancelled,
// they become empty or Shutdown is called.
func NewRegistry(ctx context.Context, opts RegistryOptions) *Registry {
	if opts.NewCode == nil {
		opts.NewCode = engine.NewRoomCode
	}
	return &Registry{
		rooms: make(map[string]room),
		ctx:   ctx,
		opts:  opts,
		log:   log.With().Str("module", "registry").Logger(),
	}
}

// Create opens a new room and joins the creator as its host.
func (r *Registry) Create(ctx context.Context, req engine.JoinRequest) (*Hub, roster.Participant, error) {
	req.Mode = engine.JoinCreate
	if strings.TrimSpace(req.Name) == "" {
		return nil, roster.Participant{}, engine.ErrEmptyName
	}

	r.mtx.Lock()
	if r.opts.MaxRooms > 0 && len(r.rooms) >= r.opts.MaxRooms {
		r.mtx.Unlock()
		return nil, roster.Participant{}, ErrTooManyRooms
	}
	var code string
	for {
		code = r.opts.NewCode()
		if _, taken := r.rooms[code]; !taken {
			break
		}
	}
	hub := NewHub(HubOptions{
		Code:         code,
		Words:        r.opts.Words,
		NewTicker:    r.opts.NewTicker,
		TickInterval:  r.opts.TickInterval,
		IdleTimeout:   r.opts.IdleTimeout,
		NewIdleTicker: r.opts.NewIdleTicker,
		OnEmpty:       r.Remove,
	})
	hubCtx, cancel := context.WithCancel(r.ctx)
	r.rooms[code] = room{hub: hub, cancel: cancel}
	r.mtx.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		hub.Run(hubCtx)
	}()

	p, err := hub.Join(ctx, req)
	if err != nil {
		r.Remove(code)
		return nil, roster.Participant{}, err
	}
	r.log.Info().Str("room", code).Str("host", p.ID).Msg("room created")
	return hub, p, nil
}

// Get returns the room with the given code.
func (r *Registry) Get(code string) (*Hub, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	entry, ok := r.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return entry.hub, nil
}

// Remove stops and forgets a room. Unknown codes are ignored.
func (r *Registry) Remove(code string) {
	r.mtx.Lock()
	entry, ok := r.rooms[code]
	delete(r.rooms, code)
	r.mtx.Unlock()

	if ok {
		entry.cancel()
		r.log.Info().Str("room", code).Msg("room removed")
	}
}

// Len returns the number of live rooms.
func (r *Registry) Len() int {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return len(r.rooms)
}

// Public lists the rooms that opted into the public room list and are still
// in their lobby, sorted by code.
func (r *Registry) Public(ctx context.Context) []Summary {
	r.mtx.RLock()
	hubs := make([]*Hub, 0, len(r.rooms))
	for _, entry := range r.rooms {
		hubs = append(hubs, entry.hub)
	}
	r.mtx.RUnlock()

	out := make([]Summary, 0, len(hubs))
	for _, hub := range hubs {
		sum, err := hub.Summary(ctx)
		if err != nil {
			continue
		}
		if sum.IsPublic && sum.Phase == engine.PhaseLobby {
			out = append(out, sum)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Shutdown stops every room and waits for their hubs to return.
func (r *Registry) Shutdown() {
	r.mtx.Lock()
	for code, entry := range r.rooms {
		entry.cancel()
		delete(r.rooms, code)
	}
	r.mtx.Unlock()

	r.wg.Wait()
	r.log.Info().Msg("all rooms stopped")
}
