package managers

import (
	"errors"
	"testing"
	"time"

	"trivia/domain"
)

// fakeStorage is a minimal in-memory storage.Storage stub for manager
// tests that don't need a real database.
type fakeStorage struct {
	users     map[string]string // username -> password
	questions []domain.QuestionData
	stats     map[string]domain.GameData
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{users: map[string]string{}, stats: map[string]domain.GameData{}}
}

func (f *fakeStorage) UserExists(u domain.Username) (bool, error) {
	_, ok := f.users[u.String()]
	return ok, nil
}

func (f *fakeStorage) PasswordMatches(u domain.Username, p domain.Password) (bool, error) {
	pw, ok := f.users[u.String()]
	if !ok {
		return false, &domain.UserDoesntExistError{Username: u.String()}
	}
	return pw == p.String(), nil
}

func (f *fakeStorage) AddUser(u domain.Username, p domain.Password, e domain.Email, ph domain.PhoneNumber, a domain.Address, bd domain.BirthDate) error {
	f.users[u.String()] = p.String()
	return nil
}

func (f *fakeStorage) GetQuestions(n int) ([]domain.QuestionData, error) {
	if n > len(f.questions) {
		n = len(f.questions)
	}
	return f.questions[:n], nil
}

func (f *fakeStorage) AddQuestion(q *domain.QuestionData) (bool, error) {
	for _, existing := range f.questions {
		if existing.Content == q.Content {
			return false, nil
		}
	}
	f.questions = append(f.questions, *q)
	return true, nil
}

func (f *fakeStorage) PopulateQuestions(n int) error { return nil }

func (f *fakeStorage) GetCorrectAnswersCount(u domain.Username) (int, error) {
	d, ok := f.stats[u.String()]
	if !ok {
		return 0, &domain.NoGamesPlayedError{Username: u.String()}
	}
	return d.CorrectAnswers, nil
}

func (f *fakeStorage) GetTotalAnswersCount(u domain.Username) (int, error) {
	d, ok := f.stats[u.String()]
	if !ok {
		return 0, &domain.NoGamesPlayedError{Username: u.String()}
	}
	return d.CorrectAnswers + d.WrongAnswers, nil
}

func (f *fakeStorage) GetGamesCount(u domain.Username) (int, error) {
	if _, ok := f.stats[u.String()]; !ok {
		return 0, &domain.NoGamesPlayedError{Username: u.String()}
	}
	return 1, nil
}

func (f *fakeStorage) GetScore(u domain.Username) (float64, error) {
	d, ok := f.stats[u.String()]
	if !ok {
		return 0, &domain.NoGamesPlayedError{Username: u.String()}
	}
	return domain.Score(d.CorrectAnswers, d.AverageTime), nil
}

func (f *fakeStorage) GetPlayerAverageAnswerTime(u domain.Username) (time.Duration, error) {
	d, ok := f.stats[u.String()]
	if !ok {
		return 0, &domain.NoGamesPlayedError{Username: u.String()}
	}
	return d.AverageTime, nil
}

func (f *fakeStorage) GetFiveHighScores() ([]domain.HighScore, error) {
	return nil, nil
}

func (f *fakeStorage) SubmitGameData(u domain.Username, data domain.GameData) error {
	f.stats[u.String()] = data
	return nil
}

func (f *fakeStorage) Close() error { return nil }

func mustUsername(t *testing.T, raw string) domain.Username {
	t.Helper()
	u, err := domain.NewUsername(raw)
	if err != nil {
		t.Fatalf("NewUsername(%q): %v", raw, err)
	}
	return u
}

func mustPassword(t *testing.T, raw string) domain.Password {
	t.Helper()
	p, err := domain.NewPassword(raw)
	if err != nil {
		t.Fatalf("NewPassword(%q): %v", raw, err)
	}
	return p
}

func TestLoginManagerSignupLoginLogout(t *testing.T) {
	store := newFakeStorage()
	m := NewLoginManager(store)
	u := mustUsername(t, "user1234")
	p := mustPassword(t, "Pass@123")

	if err := m.Signup(u, p, "a@b.com", "050-1234567", domain.Address{}, domain.BirthDate{}); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if err := m.Signup(u, p, "a@b.com", "050-1234567", domain.Address{}, domain.BirthDate{}); !errors.As(err, new(*domain.UserAlreadyExistsError)) {
		t.Fatalf("expected UserAlreadyExistsError, got %v", err)
	}
	if err := m.Login(u, p); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := m.Login(u, p); !errors.As(err, new(*domain.UserAlreadyConnectedError)) {
		t.Fatalf("expected UserAlreadyConnectedError, got %v", err)
	}
	m.Logout(u)
	m.Logout(u) // idempotent
	if err := m.Login(u, p); err != nil {
		t.Fatalf("relogin after logout should succeed: %v", err)
	}
}

func TestLoginManagerWrongPasswordBeforeOnlineCheck(t *testing.T) {
	store := newFakeStorage()
	m := NewLoginManager(store)
	u := mustUsername(t, "user1234")
	p := mustPassword(t, "Pass@123")
	store.users[u.String()] = p.String()

	wrong, _ := domain.NewPassword("WrongPass@1")
	if err := m.Login(u, wrong); !errors.As(err, new(*domain.WrongPasswordError)) {
		t.Fatalf("expected WrongPasswordError, got %v", err)
	}
	if m.IsOnline(u) {
		t.Fatal("wrong password must never mark the user online")
	}
}

func TestLoginManagerUnknownUser(t *testing.T) {
	store := newFakeStorage()
	m := NewLoginManager(store)
	u := mustUsername(t, "ghost1234")
	p := mustPassword(t, "Pass@123")
	if err := m.Login(u, p); !errors.As(err, new(*domain.UserDoesntExistError)) {
		t.Fatalf("expected UserDoesntExistError, got %v", err)
	}
}
