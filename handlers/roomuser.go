package handlers

import (
	"log"

	"trivia/domain"
	"trivia/wire"
)

// RoomUserHandler is the state for a connection sitting inside a room,
// waiting for the game to start (or, if admin, driving it to start).
type RoomUserHandler struct {
	factory *Factory
	user    domain.Username
	roomID  uint64
	isAdmin bool
}

func (h *RoomUserHandler) Relevant(info RequestInfo) bool {
	switch info.Request.Kind {
	case wire.ReqRoomState, wire.ReqCloseRoom, wire.ReqStartGame, wire.ReqLeaveRoom, wire.ReqLogout:
		return true
	default:
		return false
	}
}

func (h *RoomUserHandler) Handle(info RequestInfo) (wire.Response, Handler, error) {
	switch info.Request.Kind {
	case wire.ReqRoomState:
		return h.handleRoomState()
	case wire.ReqCloseRoom:
		return h.handleCloseRoom()
	case wire.ReqStartGame:
		return h.handleStartGame()
	case wire.ReqLeaveRoom, wire.ReqLogout:
		return h.handleLeave()
	default:
		return irrelevantResponse(), nil, nil
	}
}

// handleRoomState returns the room snapshot. If the room vanished
// (admin closed it or it emptied concurrently) this behaves like
// LeaveRoom. If the room has moved to InGame, the non-admin poller learns
// the game started here and swaps to Game.
func (h *RoomUserHandler) handleRoomState() (wire.Response, Handler, error) {
	room, ok := h.factory.Room.Room(h.roomID)
	if !ok {
		return wire.Response{Kind: wire.RespLeaveRoom}, &MenuHandler{factory: h.factory, user: h.user}, nil
	}
	if room.State == domain.RoomInGame {
		next := &GameHandler{factory: h.factory, user: h.user, gameID: h.roomID}
		return wire.Response{Kind: wire.RespStartGame, RoomID: h.roomID}, next, nil
	}
	snap := snapshotRoom(room)
	return wire.Response{Kind: wire.RespRoomState, RoomState: &snap}, nil, nil
}

func (h *RoomUserHandler) handleCloseRoom() (wire.Response, Handler, error) {
	if !h.isAdmin {
		return wire.Response{Kind: wire.RespCloseRoom, Err: wire.NewErrorInfo(&domain.NotAdminError{})}, nil, nil
	}
	h.factory.Room.DeleteRoom(h.roomID)
	return wire.Response{Kind: wire.RespCloseRoom}, &MenuHandler{factory: h.factory, user: h.user}, nil
}

func (h *RoomUserHandler) handleStartGame() (wire.Response, Handler, error) {
	if !h.isAdmin {
		return wire.Response{Kind: wire.RespStartGame, Err: wire.NewErrorInfo(&domain.NotAdminError{})}, nil, nil
	}
	room, ok := h.factory.Room.Room(h.roomID)
	if !ok {
		return wire.Response{Kind: wire.RespStartGame, Err: wire.NewErrorInfo(&domain.UnknownRoomIDError{RoomID: h.roomID})}, nil, nil
	}
	h.factory.Room.SetState(h.roomID, domain.RoomInGame)
	if _, err := h.factory.Game.CreateGame(room); err != nil {
		h.factory.Room.SetState(h.roomID, domain.RoomWaiting)
		return wire.Response{Kind: wire.RespStartGame, Err: wire.NewErrorInfo(err)}, nil, nil
	}
	next := &GameHandler{factory: h.factory, user: h.user, gameID: h.roomID}
	return wire.Response{Kind: wire.RespStartGame, RoomID: h.roomID}, next, nil
}

func (h *RoomUserHandler) handleLeave() (wire.Response, Handler, error) {
	_, deleted, existed := h.factory.Room.RemoveUserFromRoom(h.roomID, h.user)
	if existed && !deleted {
		// Room still has members after this user left, admin or not (a room is
		// deleted, with deleted=true, only when it becomes empty — see open
		// question (b): admin role is not
		// transferred on leave, so an admin leaving a non-empty room
		// silently leaves the room admin-less until it naturally empties.
		log.Printf("🚪 room %d: %s left (room still has members)", h.roomID, h.user)
	}
	return wire.Response{Kind: wire.RespLeaveRoom}, &MenuHandler{factory: h.factory, user: h.user}, nil
}
