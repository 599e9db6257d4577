package domain

import "fmt"

// Typed domain errors. These cross the manager/storage boundary and are
// rendered into Response{Err(...)} variants by handlers rather than closing
// the connection — see wire.NewErrorInfo.

type UserAlreadyExistsError struct{ Username string }

func (e *UserAlreadyExistsError) Error() string {
	return fmt.Sprintf("user already exists: %s", e.Username)
}

type UserDoesntExistError struct{ Username string }

func (e *UserDoesntExistError) Error() string {
	return fmt.Sprintf("user doesn't exist: %s", e.Username)
}

type UserAlreadyConnectedError struct{ Username string }

func (e *UserAlreadyConnectedError) Error() string {
	return fmt.Sprintf("user already connected: %s", e.Username)
}

type WrongPasswordError struct{}

func (e *WrongPasswordError) Error() string { return "wrong password" }

type NoGamesPlayedError struct{ Username string }

func (e *NoGamesPlayedError) Error() string {
	return fmt.Sprintf("no games played: %s", e.Username)
}

type QuestionAlreadyExistsError struct{}

func (e *QuestionAlreadyExistsError) Error() string { return "question already exists" }

type UnknownRoomIDError struct{ RoomID uint64 }

func (e *UnknownRoomIDError) Error() string {
	return fmt.Sprintf("unknown room id: %d", e.RoomID)
}

type RoomFullError struct{}

func (e *RoomFullError) Error() string { return "room full" }

type RoomInGameError struct{}

func (e *RoomInGameError) Error() string { return "room in game" }

type NotAdminError struct{}

func (e *NotAdminError) Error() string { return "not admin" }

type UnknownGameIDError struct{ GameID uint64 }

func (e *UnknownGameIDError) Error() string {
	return fmt.Sprintf("unknown game id: %d", e.GameID)
}

type NoCorrectAnswerError struct {
	QuestionID uint64
	Text       string
}

func (e *NoCorrectAnswerError) Error() string {
	return fmt.Sprintf("question %d has no answer matching %q marked correct", e.QuestionID, e.Text)
}
