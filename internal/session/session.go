// Package session keeps live game runs between requests, keyed by document
// and player.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/abhisek/quizrogue/internal/game"
)

// ErrNotFound is returned when no run is stored under the key.
var ErrNotFound = errors.New("session not found")

// Store holds one *game.State per key. Implementations return states the
// caller may mutate freely; changes are only visible after Put.
type Store interface {
	Get(ctx context.Context, key string) (*game.State, error)
	Put(ctx context.Context, key string, s *game.State) error
	Delete(ctx context.Context, key string) error
}

// Key builds the session key for a player's run on a document.
func Key(documentID int64, playerID string) string {
	return fmt.Sprintf("game:%d:%s", documentID, playerID)
}

// KeyedMutex serialises work per key. Locks for different keys never block
// each other.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex returns a ready KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyLock)}
}

// Lock acquires the lock for key and returns its release function.
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
