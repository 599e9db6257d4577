package managers

import (
	"log"
	"sync"

	"trivia/domain"
	"trivia/storage"
)

// GameManager holds every active Game, keyed by the RoomID it was drawn
// from (GameID == RoomID).
type GameManager struct {
	mu    sync.RWMutex
	games map[uint64]*domain.Game
	store storage.Storage
}

func NewGameManager(store storage.Storage) *GameManager {
	return &GameManager{games: make(map[uint64]*domain.Game), store: store}
}

// CreateGame draws room.QuestionCount questions from storage and starts a
// Game with one PlayerProgress per room member.
func (m *GameManager) CreateGame(room *domain.Room) (*domain.Game, error) {
	questions, err := m.store.GetQuestions(room.QuestionCount)
	if err != nil {
		return nil, err
	}
	users := make([]domain.Username, len(room.Users))
	copy(users, room.Users)

	game := domain.NewGame(room.ID, questions, users)
	m.mu.Lock()
	m.games[room.ID] = game
	m.mu.Unlock()
	return game, nil
}

func (m *GameManager) Game(id uint64) (*domain.Game, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	return g, ok
}

// DeleteGame removes the game, then commits final statistics for every
// player who answered at least one question, left or not (logging, never
// propagating, submission errors).
func (m *GameManager) DeleteGame(id uint64) {
	m.mu.Lock()
	g, ok := m.games[id]
	if ok {
		delete(m.games, id)
	}
	m.mu.Unlock()
	if !ok {
		return
	}

	for username, progress := range g.Progress {
		if progress.TotalAnswered() == 0 {
			continue
		}
		data := domain.GameData{
			CorrectAnswers: progress.CorrectCount,
			WrongAnswers:   progress.WrongCount,
			AverageTime:    progress.AvgTime,
		}
		if err := m.store.SubmitGameData(username, data); err != nil {
			log.Printf("⚠️ managers: submit_game_data failed for %s in game %d: %v", username, id, err)
		}
	}
}
