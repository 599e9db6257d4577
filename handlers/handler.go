// Package handlers implements the per-connection state machine: Login,
// Menu, RoomUser and Game, each a small struct implementing Handler.
// Handler swaps are the only way state transitions, matching spec §4.9's
// tagged-variant design via Go interface dispatch instead of a sum type.
package handlers

import (
	"time"

	"trivia/wire"
)

// RequestInfo tags an inbound Request with its arrival time, used for the
// per-question answer-timing window.
type RequestInfo struct {
	Request     wire.Request
	ArrivalTime time.Time
}

// Handler is one connection's current state. Relevant reports whether this
// handler accepts the given request kind; Handle executes one step and
// optionally returns the handler that should replace it. Handle never
// returns a Go error for client-visible domain outcomes — those are
// encoded into resp per spec's propagation policy; a non-nil error here
// means the connection must be closed (I/O/corruption-class failure).
type Handler interface {
	Relevant(info RequestInfo) bool
	Handle(info RequestInfo) (resp wire.Response, next Handler, err error)
}

func irrelevantResponse() wire.Response {
	return wire.Response{Kind: wire.RespError, Message: `Irrelevant request`}
}
