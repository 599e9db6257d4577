// Package managers holds the four lock-protected owners of shared mutable
// domain state: logged-in users, rooms, games, and the statistics
// read-side. Each manager guards its own state behind its own lock,
// grounded in the teacher's global rooms/players maps behind a single
// sync.RWMutex, generalized here to one lock per manager per spec §5.
package managers

import (
	"sync"

	"trivia/domain"
	"trivia/storage"
)

// LoginManager owns the online-users set and brokers signup/login/logout
// against the storage port.
type LoginManager struct {
	mu     sync.Mutex
	online map[domain.Username]bool
	store  storage.Storage
}

func NewLoginManager(store storage.Storage) *LoginManager {
	return &LoginManager{online: make(map[domain.Username]bool), store: store}
}

func (m *LoginManager) Signup(u domain.Username, p domain.Password, e domain.Email, ph domain.PhoneNumber, a domain.Address, bd domain.BirthDate) error {
	exists, err := m.store.UserExists(u)
	if err != nil {
		return err
	}
	if exists {
		return &domain.UserAlreadyExistsError{Username: u.String()}
	}
	return m.store.AddUser(u, p, e, ph, a, bd)
}

// Login checks the password before touching the online set so that
// "already connected" can never be used as an existence oracle for an
// unauthenticated caller — the password check always runs first.
func (m *LoginManager) Login(u domain.Username, p domain.Password) error {
	matches, err := m.store.PasswordMatches(u, p)
	if err != nil {
		return err
	}
	if !matches {
		return &domain.WrongPasswordError{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.online[u] {
		return &domain.UserAlreadyConnectedError{Username: u.String()}
	}
	m.online[u] = true
	return nil
}

// Logout removes u from the online set; idempotent on a user who is not
// online.
func (m *LoginManager) Logout(u domain.Username) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.online, u)
}

func (m *LoginManager) IsOnline(u domain.Username) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online[u]
}
