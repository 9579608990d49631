package core

// store.go holds the canonical user list.
//
// The Store is the only writer of the "users" key. Every mutation builds the
// next list, writes it to the KV backend as a whole, and only then swaps it
// in, so memory and storage never disagree: a failed write leaves both
// untouched. Subscribers are called after each successful mutation and after
// Load, outside the store lock, with a copy of the list.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/JonMunkholm/userdir/internal/storage"
	"github.com/google/uuid"
)

// UsersKey is the storage key holding the serialized user list.
const UsersKey = "users"

// Store owns the user list and its persistence.
type Store struct {
	kv     storage.KV
	logger *slog.Logger
	newID  func() (string, error)

	mu       sync.RWMutex
	users    []User
	hydrated bool

	subMu   sync.Mutex
	subs    map[int]func([]User)
	nextSub int
}

// NewStore returns an empty, not yet hydrated store backed by kv.
func NewStore(kv storage.KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		kv:     kv,
		logger: logger.With("component", "store"),
		newID:  newUserID,
		subs:   make(map[int]func([]User)),
	}
}

// newUserID returns a time-ordered UUIDv7, so ids sort by creation time.
func newUserID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Load reads the persisted list and marks the store hydrated. Missing,
// unreadable or malformed data is treated as an empty list.
func (s *Store) Load(ctx context.Context) {
	users := s.read(ctx)

	s.mu.Lock()
	s.users = users
	s.hydrated = true
	snapshot := cloneUsers(users)
	s.mu.Unlock()

	s.logger.Info("users loaded", "count", len(users))
	s.notify(snapshot)
}

func (s *Store) read(ctx context.Context) []User {
	data, err := s.kv.Get(ctx, UsersKey)
	if errors.Is(err, storage.ErrNotFound) {
		return []User{}
	}
	if err != nil {
		s.logger.Warn("reading users failed, starting empty", "error", err)
		return []User{}
	}

	var users []User
	if err := json.Unmarshal(data, &users); err != nil {
		s.logger.Warn("stored users are malformed, starting empty", "error", err)
		return []User{}
	}
	if users == nil {
		users = []User{}
	}
	return users
}

// IsHydrated reports whether Load has run.
func (s *Store) IsHydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// Users returns a copy of the list in insertion order.
func (s *Store) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUsers(s.users)
}

// Len returns the number of users.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Get returns the user with id.
func (s *Store) Get(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.users, id); i >= 0 {
		return s.users[i], true
	}
	return User{}, false
}

// Create assigns a fresh id to p, appends it and persists the list. It does
// not validate; callers run the Validator first.
func (s *Store) Create(ctx context.Context, p Profile) (User, error) {
	s.mu.Lock()

	id, err := s.uniqueID()
	if err != nil {
		s.mu.Unlock()
		return User{}, err
	}

	user := User{ID: id, Profile: p}
	next := append(cloneUsers(s.users), user)
	if err := s.persist(ctx, next); err != nil {
		s.mu.Unlock()
		return User{}, err
	}
	s.users = next
	snapshot := cloneUsers(next)
	s.mu.Unlock()

	s.logFor(ctx).Info("user created", "user_id", id)
	s.notify(snapshot)
	return user, nil
}

// Update replaces the user with the same id. An unknown id is logged and
// otherwise ignored; nothing is written.
func (s *Store) Update(ctx context.Context, user User) error {
	s.mu.Lock()

	i := indexOf(s.users, user.ID)
	if i < 0 {
		s.mu.Unlock()
		s.logFor(ctx).Warn("update ignored, no user with id", "user_id", user.ID)
		return nil
	}

	next := cloneUsers(s.users)
	next[i] = user
	if err := s.persist(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.users = next
	snapshot := cloneUsers(next)
	s.mu.Unlock()

	s.logFor(ctx).Info("user updated", "user_id", user.ID)
	s.notify(snapshot)
	return nil
}

// Delete removes the user with id if present. The list is persisted either
// way so storage always mirrors memory.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()

	next := make([]User, 0, len(s.users))
	for _, u := range s.users {
		if u.ID != id {
			next = append(next, u)
		}
	}
	removed := len(next) != len(s.users)

	if err := s.persist(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.users = next
	snapshot := cloneUsers(next)
	s.mu.Unlock()

	if removed {
		s.logFor(ctx).Info("user deleted", "user_id", id)
	} else {
		s.logFor(ctx).Warn("delete found no user with id", "user_id", id)
	}
	s.notify(snapshot)
	return nil
}

// Subscribe registers fn to receive the list after every change. The
// returned function removes the subscription.
func (s *Store) Subscribe(fn func([]User)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(users []User) {
	s.subMu.Lock()
	fns := make([]func([]User), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(cloneUsers(users))
	}
}

// persist writes users as the whole value of UsersKey. Caller holds mu.
func (s *Store) persist(ctx context.Context, users []User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := s.kv.Set(ctx, UsersKey, data); err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}

// uniqueID returns an id not used by any current user. Caller holds mu.
func (s *Store) uniqueID() (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		id, err := s.newID()
		if err != nil {
			return "", fmt.Errorf("generate user id: %w", err)
		}
		if indexOf(s.users, id) < 0 {
			return id, nil
		}
	}
	return "", errors.New("generate user id: no unique id after 5 attempts")
}

func indexOf(users []User, id string) int {
	for i, u := range users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func cloneUsers(users []User) []User {
	out := make([]User, len(users))
	copy(out, users)
	return out
}
