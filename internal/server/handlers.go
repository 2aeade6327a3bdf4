package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/hakimalhazi/Skiblo/internal/engine"
	"github.com/hakimalhazi/Skiblo/internal/game"
)

type handlers struct {
	ctx        context.Context
	rooms      *game.Registry
	clientOpts game.ClientOptions
	upgrader   websocket.Upgrader
}

type joinBody struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type joinResponse struct {
	RoomCode      string `json:"roomCode"`
	ParticipantID string `json:"participantId"`
}

type wordBody struct {
	Word string `json:"word" binding:"required"`
}

type guessBody struct {
	Text string `json:"text"`
}

type guessResponse struct {
	Accepted   bool `json:"accepted"`
	Correct    bool `json:"correct"`
	Points     int  `json:"points"`
	RoundEnded bool `json:"roundEnded"`
}

var errNoSession = errors.New("not in this room")

func sessionKey(code string) string {
	return "participant:" + code
}

func roomCode(c *gin.Context) string {
	return strings.ToUpper(strings.TrimSpace(c.Param("code")))
}

// participantID returns who the session belongs to in the room, or "".
func participantID(c *gin.Context, code string) string {
	id, _ := sessions.Default(c).Get(sessionKey(code)).(string)
	return id
}

func remember(c *gin.Context, code, id string) error {
	session := sessions.Default(c)
	session.Set(sessionKey(code), id)
	return session.Save()
}

func forget(c *gin.Context, code string) error {
	session := sessions.Default(c)
	session.Delete(sessionKey(code))
	return session.Save()
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrEmptyName):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrNotEnoughPlayers):
		return http.StatusConflict
	case errors.Is(err, errNoSession):
		return http.StatusUnauthorized
	case errors.Is(err, game.ErrNotHost), errors.Is(err, game.ErrCannotKickHost):
		return http.StatusForbidden
	case errors.Is(err, game.ErrRoomNotFound), errors.Is(err, game.ErrHubClosed),
		errors.Is(err, game.ErrUnknownParticipant):
		return http.StatusNotFound
	case errors.Is(err, game.ErrTooManyRooms):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("module", "server").Str("path", c.FullPath()).Msg("request failed")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}

// room resolves the room in the path and the caller's participant id.
func (h *handlers) room(c *gin.Context) (*game.Hub, string, bool) {
	code := roomCode(c)
	hub, err := h.rooms.Get(code)
	if err != nil {
		fail(c, err)
		return nil, "", false
	}
	return hub, participantID(c, code), true
}

// member is room for endpoints that need a participant.
func (h *handlers) member(c *gin.Context) (*game.Hub, string, bool) {
	hub, id, ok := h.room(c)
	if !ok {
		return nil, "", false
	}
	if id == "" {
		fail(c, errNoSession)
		return nil, "", false
	}
	return hub, id, true
}

func (h *handlers) respondView(c *gin.Context, hub *game.Hub, id string, status int) {
	view, err := hub.View(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(status, view)
}

func (h *handlers) listRooms(c *gin.Context) {
	c.JSON(http.StatusOK, h.rooms.Public(c.Request.Context()))
}

func (h *handlers) createRoom(c *gin.Context) {
	var body joinBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid-request-format")
		return
	}

	hub, p, err := h.rooms.Create(c.Request.Context(), engine.JoinRequest{
		Name:   body.Name,
		Avatar: body.Avatar,
		Mode:   engine.JoinCreate,
	})
	if err != nil {
		fail(c, err)
		return
	}
	if err := remember(c, hub.Code(), p.ID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, joinResponse{RoomCode: hub.Code(), ParticipantID: p.ID})
}

func (h *handlers) joinRoom(c *gin.Context) {
	var body joinBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid-request-format")
		return
	}
	hub, _, ok := h.room(c)
	if !ok {
		return
	}

	p, err := hub.Join(c.Request.Context(), engine.JoinRequest{
		Name:     body.Name,
		Avatar:   body.Avatar,
		Mode:     engine.JoinJoin,
		RoomCode: hub.Code(),
	})
	if err != nil {
		fail(c, err)
		return
	}
	if err := remember(c, hub.Code(), p.ID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, joinResponse{RoomCode: hub.Code(), ParticipantID: p.ID})
}

// getRoom returns the state as the caller sees it. Callers without a
// session get the spectator view.
func (h *handlers) getRoom(c *gin.Context) {
	hub, id, ok := h.room(c)
	if !ok {
		return
	}
	h.respondView(c, hub, id, http.StatusOK)
}

func (h *handlers) startGame(c *gin.Context) {
	hub, id, ok := h.member(c)
	if !ok {
		return
	}
	if err := hub.Start(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	h.respondView(c, hub, id, http.StatusOK)
}

func (h *handlers) updateSettings(c *gin.Context) {
	var settings engine.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		badRequest(c, "invalid-request-format")
		return
	}
	hub, id, ok := h.member(c)
	if !ok {
		return
	}
	applied, err := hub.UpdateSettings(c.Request.Context(), id, settings)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, applied)
}

func (h *handlers) selectWord(c *gin.Context) {
	var body wordBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid-request-format")
		return
	}
	hub, id, ok := h.member(c)
	if !ok {
		return
	}
	taken, err := hub.SelectWord(c.Request.Context(), id, body.Word)
	if err != nil {
		fail(c, err)
		return
	}
	if !taken {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "word-not-offered"})
		return
	}
	h.respondView(c, hub, id, http.StatusOK)
}

func (h *handlers) guess(c *gin.Context) {
	var body guessBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid-request-format")
		return
	}
	hub, id, ok := h.member(c)
	if !ok {
		return
	}
	res, err := hub.Guess(c.Request.Context(), id, body.Text)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, guessResponse{
		Accepted:   res.Accepted,
		Correct:    res.Correct,
		Points:     res.Award.Guesser,
		RoundEnded: res.RoundEnded,
	})
}

func (h *handlers) addBot(c *gin.Context) {
	hub, id, ok := h.member(c)
	if !ok {
		return
	}
	bot, added, err := hub.AddBot(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if !added {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "bots-only-in-lobby"})
		return
	}
	c.JSON(http.StatusCreated, bot)
}

// removeParticipant kicks somebody when the host asks, or leaves the room
// when the caller removes themselves.
func (h *handlers) removeParticipant(c *gin.Context) {
	hub, id, ok := h.member(c)
	if !ok {
		return
	}
	target := c.Param("id")

	if target == id {
		if err := hub.Leave(c.Request.Context(), id); err != nil {
			fail(c, err)
			return
		}
		if err := forget(c, hub.Code()); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
		return
	}

	if err := hub.Kick(c.Request.Context(), id, target); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// serveWs upgrades the request and serves the connection until it closes.
// The hub rejects connections of participants that are not in the room.
func (h *handlers) serveWs(c *gin.Context) {
	hub, id, ok := h.member(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("module", "server").Str("room", hub.Code()).Msg("ws upgrade")
		return
	}

	client := game.NewClient(hub, conn, id, h.clientOpts)
	if err := hub.Register(h.ctx, client); err != nil {
		log.Debug().Err(err).Str("module", "server").Str("room", hub.Code()).Msg("ws register")
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, err.Error()))
		_ = conn.Close()
		return
	}
	log.Info().Str("module", "server").Str("room", hub.Code()).Str("participant", id).
		Str("ip", c.ClientIP()).Msg("websocket connected")
	client.Serve(h.ctx)
}
