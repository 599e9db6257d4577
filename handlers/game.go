package handlers

import (
	"math/rand"
	"time"

	"trivia/domain"
	"trivia/wire"
)

// HiddenCorrectAnswerIndex is sent to clients in place of the real index,
// the Go analogue of the original's usize::MAX sentinel.
const HiddenCorrectAnswerIndex = -1

// GameHandler drives one player through question polling, answer
// submission and result collection.
type GameHandler struct {
	factory            *Factory
	user               domain.Username
	gameID             uint64
	lastQuestionSentAt time.Time
}

func (h *GameHandler) Relevant(info RequestInfo) bool {
	switch info.Request.Kind {
	case wire.ReqQuestion, wire.ReqSubmitAnswer, wire.ReqGameResult, wire.ReqLeaveGame, wire.ReqLogout:
		return true
	default:
		return false
	}
}

func (h *GameHandler) Handle(info RequestInfo) (wire.Response, Handler, error) {
	switch info.Request.Kind {
	case wire.ReqQuestion:
		return h.handleQuestion(info.ArrivalTime)
	case wire.ReqSubmitAnswer:
		return h.handleSubmitAnswer(info.Request.SubmitAnswer, info.ArrivalTime)
	case wire.ReqGameResult:
		return h.handleGameResult()
	case wire.ReqLeaveGame, wire.ReqLogout:
		return h.handleLeave()
	default:
		return irrelevantResponse(), nil, nil
	}
}

// handleQuestion fetches the player's next question, obfuscates the
// correct-answer index and shuffles the answer order with a PRNG seeded
// by wall-clock seconds, matching spec §4.9's client-can't-peek contract.
func (h *GameHandler) handleQuestion(now time.Time) (wire.Response, Handler, error) {
	game, ok := h.factory.Game.Game(h.gameID)
	if !ok {
		return wire.Response{Kind: wire.RespQuestion, Err: wire.NewErrorInfo(&domain.UnknownGameIDError{GameID: h.gameID})}, nil, nil
	}
	h.lastQuestionSentAt = now
	q := game.NextQuestion(h.user)
	if q == nil {
		return wire.Response{Kind: wire.RespQuestion}, nil, nil
	}
	shuffled := *q
	shuffled.Answers = append([]string(nil), q.Answers...)
	rnd := rand.New(rand.NewSource(now.Unix()))
	rnd.Shuffle(len(shuffled.Answers), func(i, j int) {
		shuffled.Answers[i], shuffled.Answers[j] = shuffled.Answers[j], shuffled.Answers[i]
	})
	shuffled.CorrectAnswerIndex = HiddenCorrectAnswerIndex
	return wire.Response{Kind: wire.RespQuestion, Question: &shuffled}, nil, nil
}

func (h *GameHandler) handleSubmitAnswer(p *wire.SubmitAnswerPayload, now time.Time) (wire.Response, Handler, error) {
	game, ok := h.factory.Game.Game(h.gameID)
	if !ok {
		return wire.Response{Kind: wire.RespCorrectAnswer}, nil, nil
	}
	elapsed := now.Sub(h.lastQuestionSentAt)
	budget := time.Duration(0)
	if room, ok := h.factory.Room.Room(h.gameID); ok {
		budget = room.TimePerQuestion
	}
	correct, err := game.SubmitAnswer(h.user, p.Text, elapsed, budget)
	if err != nil {
		return wire.Response{Kind: wire.RespCorrectAnswer}, nil, nil
	}
	return wire.Response{Kind: wire.RespCorrectAnswer, CorrectAnswer: correct}, nil, nil
}

// handleGameResult only produces results, closes the game and swaps to
// Menu once every player has finished or left; otherwise it returns an
// empty result so the client keeps polling, per spec §4.9.
func (h *GameHandler) handleGameResult() (wire.Response, Handler, error) {
	game, ok := h.factory.Game.Game(h.gameID)
	if !ok {
		return wire.Response{Kind: wire.RespGameResult, GameResults: []domain.PlayerResult{}}, &MenuHandler{factory: h.factory, user: h.user}, nil
	}
	if !game.AllFinished() {
		return wire.Response{Kind: wire.RespGameResult, GameResults: []domain.PlayerResult{}}, nil, nil
	}
	results := game.Results()
	h.factory.Game.DeleteGame(h.gameID)
	h.factory.Room.DeleteRoom(h.gameID)
	return wire.Response{Kind: wire.RespGameResult, GameResults: results}, &MenuHandler{factory: h.factory, user: h.user}, nil
}

func (h *GameHandler) handleLeave() (wire.Response, Handler, error) {
	game, ok := h.factory.Game.Game(h.gameID)
	if ok {
		game.RemoveUser(h.user)
		if game.IsEmpty() {
			h.factory.Game.DeleteGame(h.gameID)
			h.factory.Room.DeleteRoom(h.gameID)
		}
	}
	return wire.Response{Kind: wire.RespLeaveGame}, &MenuHandler{factory: h.factory, user: h.user}, nil
}
