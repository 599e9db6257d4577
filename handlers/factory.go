package handlers

import (
	"trivia/managers"
	"trivia/storage"
)

// Factory constructs the initial Login handler and every successor
// handler. It holds strong references to the four managers and the
// storage port; no other component mutates those managers. Handlers hold
// only a non-owning pointer back to the Factory — the factory outlives
// every handler it creates, so the handler/factory reference cycle is
// never a problem for garbage collection.
type Factory struct {
	Login *managers.LoginManager
	Room  *managers.RoomManager
	Game  *managers.GameManager
	Stats *managers.StatisticsManager
	Store storage.Storage
}

func NewFactory(store storage.Storage) *Factory {
	return &Factory{
		Login: managers.NewLoginManager(store),
		Room:  managers.NewRoomManager(),
		Game:  managers.NewGameManager(store),
		Stats: managers.NewStatisticsManager(store),
		Store: store,
	}
}

func (f *Factory) NewLoginHandler() Handler { return &LoginHandler{factory: f} }
