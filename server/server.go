package server

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"trivia/handlers"
	"trivia/storage"
)

// Server wires storage, the handler factory and the Communicator, then
// runs the communicator in the background and an admin stdin REPL in the
// foreground, per spec §4.12.
type Server struct {
	Factory      *handlers.Factory
	Communicator *Communicator
	store        storage.Storage
}

func New(store storage.Storage) *Server {
	factory := handlers.NewFactory(store)
	return &Server{
		Factory:      factory,
		Communicator: NewCommunicator(factory),
		store:        store,
	}
}

// Run binds addr synchronously — so a bind failure (e.g. address already in
// use) is reported as a non-zero exit code rather than raced against the
// admin REPL — then accepts connections in the background and blocks on
// the admin REPL until "exit" is entered. Returns an exit code suitable
// for os.Exit: 0 on clean exit, 1 on startup failure.
func (s *Server) Run(addr string) int {
	if err := s.Communicator.Listen(addr); err != nil {
		log.Printf("⚠️ listen failed on %s: %v", addr, err)
		return 1
	}
	go func() {
		if err := s.Communicator.Serve(); err != nil {
			log.Printf("⚠️ accept loop stopped: %v", err)
		}
	}()

	return s.adminREPL()
}

func (s *Server) adminREPL() int {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "exit":
			s.Communicator.Close()
			if err := s.store.Close(); err != nil {
				log.Printf("⚠️ error closing storage: %v", err)
			}
			return 0
		case "":
			continue
		default:
			fmt.Printf("Unknown command: %q\n", line)
		}
	}
	return 0
}
