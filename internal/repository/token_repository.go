package repository

import (
	"context"
	"sync"
	"time"
)

type deviceToken struct {
	platform  string
	createdAt time.Time
}

// InMemoryTokenRepository holds push targets for deployments without a
// database. Tokens do not survive a restart.
type InMemoryTokenRepository struct {
	tokens map[string]deviceToken
	mu     sync.RWMutex
}

func NewInMemoryTokenRepository() *InMemoryTokenRepository {
	return &InMemoryTokenRepository{tokens: make(map[string]deviceToken)}
}

func (r *InMemoryTokenRepository) Register(_ context.Context, token, platform string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = deviceToken{platform: platform, createdAt: at}
	return nil
}

func (r *InMemoryTokenRepository) Unregister(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
	return nil
}

func (r *InMemoryTokenRepository) All(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tokens := make([]string, 0, len(r.tokens))
	for token := range r.tokens {
		tokens = append(tokens, token)
	}
	return tokens, nil
}

func (r *InMemoryTokenRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tokens), nil
}
