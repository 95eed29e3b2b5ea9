package tracking

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/songzhibin97/tokenguard/internal/models"
)

// MemoryStore is an in-memory Store for tests and database-less deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	tracked  map[string]struct{}
	risks    map[string]*models.TokenRisk
	alerts   []models.Alert
	analyses map[string]*models.TokenAnalysis
	nextID   int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tracked:  make(map[string]struct{}),
		risks:    make(map[string]*models.TokenRisk),
		analyses: make(map[string]*models.TokenAnalysis),
		nextID:   1,
	}
}

// TrackToken implements Store.
func (s *MemoryStore) TrackToken(_ context.Context, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracked[address] = struct{}{}
	return nil
}

// UntrackToken implements Store.
func (s *MemoryStore) UntrackToken(_ context.Context, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tracked, address)
	return nil
}

// TrackedTokens implements Store. Addresses are returned in stable order.
func (s *MemoryStore) TrackedTokens(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tokens := make([]string, 0, len(s.tracked))
	for addr := range s.tracked {
		tokens = append(tokens, addr)
	}
	sort.Strings(tokens)
	return tokens, nil
}

// StoreRisk implements Store.
func (s *MemoryStore) StoreRisk(_ context.Context, address string, risk *models.TokenRisk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *risk
	s.risks[address] = &cp
	return nil
}

// LatestRisk implements Store.
func (s *MemoryStore) LatestRisk(_ context.Context, address string) (*models.TokenRisk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	risk, ok := s.risks[address]
	if !ok {
		return nil, fmt.Errorf("no risk data for token: %s", address)
	}
	cp := *risk
	return &cp, nil
}

// CreateAlert implements Store.
func (s *MemoryStore) CreateAlert(_ context.Context, alert *models.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *alert
	cp.ID = s.nextID
	s.nextID++
	s.alerts = append(s.alerts, cp)
	return nil
}

// Alerts implements Store, newest first.
func (s *MemoryStore) Alerts(_ context.Context, limit int) ([]models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Alert, 0, limit)
	for i := len(s.alerts) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, s.alerts[i])
	}
	return result, nil
}

// SaveAnalysis implements Store.
func (s *MemoryStore) SaveAnalysis(_ context.Context, analysis *models.TokenAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *analysis
	s.analyses[analysis.TokenAddress] = &cp
	return nil
}
