package handlers

import (
	"time"

	"trivia/domain"
	"trivia/wire"
)

// MenuHandler is the post-login lobby: create/join rooms, read stats,
// contribute questions, or log out.
type MenuHandler struct {
	factory *Factory
	user    domain.Username
}

func (h *MenuHandler) Relevant(info RequestInfo) bool {
	switch info.Request.Kind {
	case wire.ReqCreateRoom, wire.ReqRoomList, wire.ReqJoinRoom,
		wire.ReqStatistics, wire.ReqPersonalStats, wire.ReqHighscores,
		wire.ReqCreateQuestion, wire.ReqLogout:
		return true
	default:
		return false
	}
}

func (h *MenuHandler) Handle(info RequestInfo) (wire.Response, Handler, error) {
	switch info.Request.Kind {
	case wire.ReqCreateRoom:
		return h.handleCreateRoom(info.Request.CreateRoom)
	case wire.ReqRoomList:
		return h.handleRoomList()
	case wire.ReqJoinRoom:
		return h.handleJoinRoom(info.Request.JoinRoom)
	case wire.ReqStatistics, wire.ReqPersonalStats:
		return h.handleStatistics()
	case wire.ReqHighscores:
		return h.handleHighscores()
	case wire.ReqCreateQuestion:
		return h.handleCreateQuestion(info.Request.CreateQuestion)
	case wire.ReqLogout:
		return wire.Response{Kind: wire.RespLeaveRoom}, &LoginHandler{factory: h.factory}, nil
	default:
		return irrelevantResponse(), nil, nil
	}
}

func (h *MenuHandler) handleCreateRoom(p *wire.CreateRoomPayload) (wire.Response, Handler, error) {
	data := domain.RoomData{
		Name:            p.Name,
		Capacity:        p.MaxUsers,
		QuestionCount:   p.Questions,
		TimePerQuestion: time.Duration(p.AnswerTimeout),
	}
	id, ok := h.factory.Room.CreateRoom(h.user, data)
	if !ok {
		return wire.Response{Kind: wire.RespCreateRoom, Err: &wire.ErrorInfo{Code: "RoomIDOverflow", Message: "room id counter exhausted"}}, nil, nil
	}
	next := &RoomUserHandler{factory: h.factory, user: h.user, roomID: id, isAdmin: true}
	return wire.Response{Kind: wire.RespCreateRoom, RoomID: id}, next, nil
}

func (h *MenuHandler) handleRoomList() (wire.Response, Handler, error) {
	rooms := h.factory.Room.Rooms()
	out := make([]wire.RoomSnapshot, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, snapshotRoom(r))
	}
	return wire.Response{Kind: wire.RespRoomList, Rooms: out}, nil, nil
}

func (h *MenuHandler) handleJoinRoom(p *wire.JoinRoomPayload) (wire.Response, Handler, error) {
	room, ok := h.factory.Room.Room(p.RoomID)
	if !ok {
		return wire.Response{Kind: wire.RespJoinRoom, Err: wire.NewErrorInfo(&domain.UnknownRoomIDError{RoomID: p.RoomID})}, nil, nil
	}
	if room.State == domain.RoomInGame {
		return wire.Response{Kind: wire.RespJoinRoom, Err: wire.NewErrorInfo(&domain.RoomInGameError{})}, nil, nil
	}
	if room.IsFull() {
		return wire.Response{Kind: wire.RespJoinRoom, Err: wire.NewErrorInfo(&domain.RoomFullError{})}, nil, nil
	}
	if !h.factory.Room.AddUserToRoom(p.RoomID, h.user) {
		return wire.Response{Kind: wire.RespJoinRoom, Err: wire.NewErrorInfo(&domain.UnknownRoomIDError{RoomID: p.RoomID})}, nil, nil
	}
	next := &RoomUserHandler{factory: h.factory, user: h.user, roomID: p.RoomID, isAdmin: false}
	return wire.Response{Kind: wire.RespJoinRoom, RoomID: p.RoomID}, next, nil
}

func (h *MenuHandler) handleStatistics() (wire.Response, Handler, error) {
	stats, err := h.factory.Stats.GetUserStatistics(h.user)
	return wire.Response{Kind: wire.RespStatistics, Statistics: stats, Err: wire.NewErrorInfo(err)}, nil, nil
}

func (h *MenuHandler) handleHighscores() (wire.Response, Handler, error) {
	scores, err := h.factory.Stats.GetHighScores()
	if err != nil {
		return wire.Response{Kind: wire.RespHighscores}, nil, nil
	}
	return wire.Response{Kind: wire.RespHighscores, HighScores: scores}, nil, nil
}

func (h *MenuHandler) handleCreateQuestion(q *domain.QuestionData) (wire.Response, Handler, error) {
	inserted, err := h.factory.Store.AddQuestion(q)
	if err == nil && !inserted {
		err = &domain.QuestionAlreadyExistsError{}
	}
	return wire.Response{Kind: wire.RespCreateQuestion, Err: wire.NewErrorInfo(err)}, nil, nil
}

func snapshotRoom(r *domain.Room) wire.RoomSnapshot {
	players := make([]string, len(r.Users))
	for i, u := range r.Users {
		players[i] = u.String()
	}
	return wire.RoomSnapshot{
		State:           r.State.String(),
		Name:            r.Name,
		Players:         players,
		QuestionCount:   r.QuestionCount,
		TimePerQuestion: wire.Duration(r.TimePerQuestion),
	}
}
