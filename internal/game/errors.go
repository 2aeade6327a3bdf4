package game

import "errors"

var (
	ErrHubClosed          = errors.New("room is closed")
	ErrNotHost            = errors.New("only the host can do that")
	ErrUnknownParticipant = errors.New("participant is not in this room")
	ErrRoomNotFound       = errors.New("room not found")
	ErrTooManyRooms       = errors.New("too many rooms")
	ErrBackpressure       = errors.New("backpressure")
	ErrRateLimited        = errors.New("slow down")
	ErrCannotKickHost     = errors.New("the host cannot be kicked")
)
