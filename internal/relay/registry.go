package relay

import (
	"context"
	"sync"
	"time"

	"github.com/yoockh/jobboard/internal/cache"
)

// Registry maps a user to its current live connection. The last register wins.
type Registry interface {
	Register(ctx context.Context, userID, connID string) error
	LookupByUser(ctx context.Context, userID string) (connID string, ok bool, err error)
	RemoveByConnection(ctx context.Context, connID string) error
}

// MemoryRegistry is a single-process registry.
type MemoryRegistry struct {
	mu     sync.RWMutex
	byUser map[string]string
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{byUser: make(map[string]string)}
}

func (r *MemoryRegistry) Register(_ context.Context, userID, connID string) error {
	r.mu.Lock()
	r.byUser[userID] = connID
	r.mu.Unlock()
	return nil
}

func (r *MemoryRegistry) LookupByUser(_ context.Context, userID string) (string, bool, error) {
	r.mu.RLock()
	id, ok := r.byUser[userID]
	r.mu.RUnlock()
	return id, ok, nil
}

func (r *MemoryRegistry) RemoveByConnection(_ context.Context, connID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for u, c := range r.byUser {
		if c == connID {
			delete(r.byUser, u)
		}
	}
	return nil
}

const sharedRegistryTTL = 24 * time.Hour

// SharedRegistry keeps the mapping in a shared cache so every instance sees it.
// A reverse key lets a connection be removed without scanning.
type SharedRegistry struct {
	kv  cache.Cache
	ttl time.Duration
}

func NewSharedRegistry(kv cache.Cache) *SharedRegistry {
	return &SharedRegistry{kv: kv, ttl: sharedRegistryTTL}
}

func userKey(userID string) string { return "relay:user:" + userID }
func connKey(connID string) string { return "relay:conn:" + connID }

func (r *SharedRegistry) Register(ctx context.Context, userID, connID string) error {
	if err := r.kv.SetJSON(ctx, userKey(userID), connID, r.ttl); err != nil {
		return err
	}
	return r.kv.SetJSON(ctx, connKey(connID), userID, r.ttl)
}

func (r *SharedRegistry) LookupByUser(ctx context.Context, userID string) (string, bool, error) {
	var connID string
	hit, err := r.kv.GetJSON(ctx, userKey(userID), &connID)
	if err != nil || !hit {
		return "", false, err
	}
	return connID, true, nil
}

func (r *SharedRegistry) RemoveByConnection(ctx context.Context, connID string) error {
	var userID string
	hit, err := r.kv.GetJSON(ctx, connKey(connID), &userID)
	if err != nil {
		return err
	}
	if !hit {
		return nil
	}

	keys := []string{connKey(connID)}
	// only clear the user entry if a newer connection has not replaced it
	var current string
	if ok, err := r.kv.GetJSON(ctx, userKey(userID), &current); err != nil {
		return err
	} else if ok && current == connID {
		keys = append(keys, userKey(userID))
	}
	return r.kv.Del(ctx, keys...)
}
