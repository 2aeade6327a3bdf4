package server

import (
	"context"
	"net/http"
	"path/filepath"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/hakimalhazi/Skiblo/internal/config"
	"github.com/hakimalhazi/Skiblo/internal/game"
)

const sessionName = "SkibloSessions"

// SetupRouter wires the HTTP API, the websocket endpoint and the static
// frontend. Websocket connections live until ctx is cancelled.
func SetupRouter(ctx context.Context, cfg *config.Config, rooms *game.Registry) *gin.Engine {
	switch cfg.Mode {
	case gin.ReleaseMode, gin.TestMode, gin.DebugMode:
		gin.SetMode(cfg.Mode)
	}

	r := gin.New()
	if cfg.Mode == gin.DebugMode {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowCredentials: true,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders: []string{
				"Content-Type",
				"Upgrade",
				"Connection",
				"Sec-WebSocket-Key",
				"Sec-WebSocket-Version",
				"Sec-WebSocket-Extensions",
				"Sec-WebSocket-Protocol",
			},
		}))
	}

	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions(sessionName, store))

	h := &handlers{
		ctx:   ctx,
		rooms: rooms,
		clientOpts: game.ClientOptions{
			SendBuffer: cfg.SendBuffer,
			ChatRate:   cfg.ChatRate,
			ChatBurst:  cfg.ChatBurst,
			ReadLimit:  cfg.ReadLimit,
			PingPeriod: cfg.PingPeriod,
			WriteWait:  cfg.WriteWait,
		},
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(cfg.AllowedOrigins),
		},
	}

	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "healthy") })

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(filepath.Join(cfg.StaticPath, "index.html"))
	})

	api := r.Group("/api")
	api.GET("/rooms", h.listRooms)
	api.POST("/rooms", h.createRoom)

	room := api.Group("/rooms/:code")
	room.GET("", h.getRoom)
	room.POST("/join", h.joinRoom)
	room.POST("/start", h.startGame)
	room.PUT("/settings", h.updateSettings)
	room.POST("/word", h.selectWord)
	room.POST("/guess", h.guess)
	room.POST("/bots", h.addBot)
	room.DELETE("/participants/:id", h.removeParticipant)

	r.GET("/ws/:code", h.serveWs)

	log.Info().Str("module", "server").Str("static", cfg.StaticPath).Msg("router setup")
	return r
}

// checkOrigin accepts requests without an Origin header, same-host requests
// and the configured origins.
func checkOrigin(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || origin == "http://"+r.Host || origin == "https://"+r.Host {
			return true
		}
		return slices.Contains(allowed, origin)
	}
}
