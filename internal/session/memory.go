package session

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store used by tests. It ignores TTLs.
type MemoryStore struct {
	mu    sync.Mutex
	users map[string]memoryUser
	flash map[string]map[string]string
}

type memoryUser struct {
	userID   int64
	username string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]memoryUser),
		flash: make(map[string]map[string]string),
	}
}

func (s *MemoryStore) GetUser(ctx context.Context, sid string) (int64, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[sid]
	if !ok {
		return 0, "", ErrNoSession
	}
	return u.userID, u.username, nil
}

func (s *MemoryStore) SetUser(ctx context.Context, sid string, userID int64, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[sid] = memoryUser{userID: userID, username: username}
	return nil
}

func (s *MemoryStore) ClearUser(ctx context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, sid)
	return nil
}

func (s *MemoryStore) PushFlash(ctx context.Context, sid, key, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.flash[sid] == nil {
		s.flash[sid] = make(map[string]string)
	}
	s.flash[sid][key] = message
	return nil
}

func (s *MemoryStore) DrainFlash(ctx context.Context, sid string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.flash[sid]
	delete(s.flash, sid)
	if msgs == nil {
		msgs = map[string]string{}
	}
	return msgs, nil
}
