// Package storage defines the abstract persistence contract (the "storage
// port") and a concrete GORM/SQLite adapter. All operations must be safe
// for concurrent use.
package storage

import (
	"time"

	"trivia/domain"
)

// Storage is the capability set every handler/manager needs from
// persistent state: user accounts, the question bank, and per-user
// aggregate statistics. Implementations fail with the typed errors in
// package domain (UserDoesntExistError, NoCorrectAnswerError) or a plain
// wrapped backend error.
type Storage interface {
	UserExists(username domain.Username) (bool, error)
	PasswordMatches(username domain.Username, password domain.Password) (bool, error)
	AddUser(username domain.Username, password domain.Password, email domain.Email, phone domain.PhoneNumber, address domain.Address, birthDate domain.BirthDate) error

	GetQuestions(n int) ([]domain.QuestionData, error)
	AddQuestion(q *domain.QuestionData) (bool, error)
	PopulateQuestions(n int) error

	GetCorrectAnswersCount(username domain.Username) (int, error)
	GetTotalAnswersCount(username domain.Username) (int, error)
	GetGamesCount(username domain.Username) (int, error)
	GetScore(username domain.Username) (float64, error)
	GetPlayerAverageAnswerTime(username domain.Username) (time.Duration, error)
	GetFiveHighScores() ([]domain.HighScore, error)

	SubmitGameData(username domain.Username, data domain.GameData) error

	Close() error
}

// QuestionSource is the port to the external trivia feed used by
// PopulateQuestions implementations.
type QuestionSource interface {
	FetchQuestions(n int) ([]domain.QuestionData, error)
}
