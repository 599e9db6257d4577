// Package server implements the Communicator (accept loop + per-connection
// worker) and the top-level Server façade, grounded in the raw-TCP
// accept/dispatch pattern from other_examples' chat-server
// (Server/Hub/handlePacket) and pooled-goroutine TCP server, since the
// chosen teacher itself speaks HTTP/websocket rather than a raw socket.
package server

import (
	"log"
	"net"
	"time"

	"github.com/google/uuid"

	"trivia/domain"
	"trivia/handlers"
	"trivia/wire"
)

// Communicator binds a listening socket and runs one worker goroutine per
// accepted connection; workers run in parallel across connections.
type Communicator struct {
	factory  *handlers.Factory
	listener net.Listener
}

func NewCommunicator(factory *handlers.Factory) *Communicator {
	return &Communicator{factory: factory}
}

// Listen binds addr synchronously, so a bind failure (e.g. address already
// in use) is observed by the caller before any accept loop starts.
func (c *Communicator) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	c.listener = ln
	log.Printf("🎮 trivia: listening on %s", addr)
	return nil
}

// Serve runs the accept loop against the listener from Listen until it is
// closed (via Close, typically from the admin REPL's exit command). Call
// it after a successful Listen, typically in its own goroutine.
func (c *Communicator) Serve() error {
	for {
		conn, err := c.listener.Accept()
		if err != nil {
			if ne, ok := err.(net.Error); ok && !ne.Temporary() {
				return nil
			}
			log.Printf("⚠️ accept error: %v", err)
			continue
		}
		go c.serveConnection(conn)
	}
}

// ListenAndServe binds addr then runs the accept loop; kept for callers
// that don't need Listen's bind failure observed before backgrounding.
func (c *Communicator) ListenAndServe(addr string) error {
	if err := c.Listen(addr); err != nil {
		return err
	}
	return c.Serve()
}

func (c *Communicator) Close() error {
	if c.listener == nil {
		return nil
	}
	return c.listener.Close()
}

// serveConnection owns the connection's handler slot and runs the
// read-dispatch-write cycle. Cleanup is guaranteed on every exit path
// (natural close, read/write error, or panic): it logs out any recorded
// username and synthesizes one Logout request through the current
// handler so room/game membership is torn down by the state machine's own
// rules, per spec §4.11. Every log line is tagged with a per-connection
// correlation ID, the same uuid.NewString() idiom the teacher used for
// its session IDs, so one client's lifetime can be traced across a noisy
// multi-connection log.
func (c *Communicator) serveConnection(conn net.Conn) {
	defer conn.Close()
	connID := uuid.NewString()

	var current handlers.Handler = c.factory.NewLoginHandler()
	var loggedInUser *domain.Username

	defer func() {
		if r := recover(); r != nil {
			log.Printf("⚠️ [%s] connection worker panic: %v", connID, r)
		}
		if loggedInUser != nil {
			c.factory.Login.Logout(*loggedInUser)
		}
		current.Handle(handlers.RequestInfo{
			Request:     wire.Request{Kind: wire.ReqLogout},
			ArrivalTime: time.Now(),
		})
		log.Printf("🔌 [%s] connection closed", connID)
	}()

	log.Printf("🔌 [%s] connection accepted from %s", connID, conn.RemoteAddr())

	for {
		req, err := wire.ReadRequest(conn)
		if err != nil {
			if _, isDecode := err.(*wire.DecodeError); isDecode {
				if werr := wire.WriteResponse(conn, wire.Response{Kind: wire.RespError, Message: err.Error()}); werr != nil {
					return
				}
				continue
			}
			return
		}

		info := handlers.RequestInfo{Request: req, ArrivalTime: time.Now()}
		if !current.Relevant(info) {
			if err := wire.WriteResponse(conn, wire.Response{Kind: wire.RespError, Message: "Irrelevant request"}); err != nil {
				return
			}
			continue
		}

		resp, next, err := current.Handle(info)
		if err != nil {
			log.Printf("⚠️ [%s] handler error, closing connection: %v", connID, err)
			return
		}
		if err := wire.WriteResponse(conn, resp); err != nil {
			return
		}
		if next != nil {
			current = next
		}

		if req.Kind == wire.ReqLogin && resp.Kind == wire.RespLogin && resp.Ok() {
			u := domain.Username(req.Login.Username)
			loggedInUser = &u
		}
	}
}
