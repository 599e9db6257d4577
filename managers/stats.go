package managers

import (
	"trivia/domain"
	"trivia/storage"
)

// StatisticsManager is a thin read-side aggregator fanning the storage
// port's five scalar getters into one domain.Statistics record.
type StatisticsManager struct {
	store storage.Storage
}

func NewStatisticsManager(store storage.Storage) *StatisticsManager {
	return &StatisticsManager{store: store}
}

func (m *StatisticsManager) GetUserStatistics(u domain.Username) (*domain.Statistics, error) {
	correct, err := m.store.GetCorrectAnswersCount(u)
	if err != nil {
		return nil, err
	}
	total, err := m.store.GetTotalAnswersCount(u)
	if err != nil {
		return nil, err
	}
	avgTime, err := m.store.GetPlayerAverageAnswerTime(u)
	if err != nil {
		return nil, err
	}
	games, err := m.store.GetGamesCount(u)
	if err != nil {
		return nil, err
	}
	score, err := m.store.GetScore(u)
	if err != nil {
		return nil, err
	}
	return &domain.Statistics{
		CorrectAnswers:    correct,
		TotalAnswers:      total,
		AverageAnswerTime: domain.Duration(avgTime),
		TotalGames:        games,
		Score:             score,
	}, nil
}

func (m *StatisticsManager) GetHighScores() ([]domain.HighScore, error) {
	return m.store.GetFiveHighScores()
}
