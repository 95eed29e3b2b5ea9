package risk

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songzhibin97/tokenguard/internal/models"
)

type stubStore struct {
	mu sync.Mutex

	tracked        []string
	trackedErr     error
	storeRiskErr   map[string]error
	storedRisks    []string
	createdAlerts  []models.Alert
	createAlertErr error
}

func (s *stubStore) TrackToken(_ context.Context, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracked = append(s.tracked, address)
	return nil
}

func (s *stubStore) UntrackToken(_ context.Context, address string) error { return nil }

func (s *stubStore) TrackedTokens(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trackedErr != nil {
		return nil, s.trackedErr
	}
	return append([]string(nil), s.tracked...), nil
}

func (s *stubStore) StoreRisk(_ context.Context, address string, _ *models.TokenRisk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storeRiskErr[address]; err != nil {
		return err
	}
	s.storedRisks = append(s.storedRisks, address)
	return nil
}

func (s *stubStore) LatestRisk(_ context.Context, _ string) (*models.TokenRisk, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubStore) CreateAlert(_ context.Context, alert *models.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createAlertErr != nil {
		return s.createAlertErr
	}
	s.createdAlerts = append(s.createdAlerts, *alert)
	return nil
}

func (s *stubStore) Alerts(_ context.Context, _ int) ([]models.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Alert(nil), s.createdAlerts...), nil
}

func (s *stubStore) SaveAnalysis(_ context.Context, _ *models.TokenAnalysis) error { return nil }

// riskyChain makes every token look maximally risky on the quick-check
// factors so the alert rules fire.
func riskyChain() *stubChainProvider {
	return &stubChainProvider{
		holders: func(_ context.Context, _ string) ([]models.HolderInfo, error) {
			return []models.HolderInfo{{Address: "whale", Balance: 100}}, nil
		},
		liquidity: func(_ context.Context, _ string) (*models.LiquidityInfo, error) {
			return &models.LiquidityInfo{TotalLiquidity: 100, LockedPercentage: 5}, nil
		},
	}
}

func TestMonitor_RunCycle(t *testing.T) {
	store := &stubStore{tracked: []string{"token1", "token2"}}
	analyzer := NewAnalyzer(riskyChain(), &stubSocialProvider{}, testLogger())
	monitor := NewMonitor(analyzer, store, testLogger(), time.Second)

	err := monitor.runCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"token1", "token2"}, store.storedRisks)
	// hc 和 ls 都超过 0.8，每个代币触发两条单项预警
	assert.Len(t, store.createdAlerts, 4)
}

func TestMonitor_RunCycle_PerTokenIsolation(t *testing.T) {
	store := &stubStore{
		tracked:      []string{"bad", "good"},
		storeRiskErr: map[string]error{"bad": fmt.Errorf("db write failed")},
	}
	analyzer := NewAnalyzer(riskyChain(), &stubSocialProvider{}, testLogger())
	monitor := NewMonitor(analyzer, store, testLogger(), time.Second)

	// 单个代币失败不影响整轮
	err := monitor.runCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"good"}, store.storedRisks)
}

func TestMonitor_RunCycle_ListingFailure(t *testing.T) {
	store := &stubStore{trackedErr: fmt.Errorf("db unavailable")}
	analyzer := NewAnalyzer(riskyChain(), &stubSocialProvider{}, testLogger())
	monitor := NewMonitor(analyzer, store, testLogger(), time.Second)

	err := monitor.runCycle(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list tracked tokens")
}

func TestMonitor_StartStop(t *testing.T) {
	store := &stubStore{tracked: []string{"token1"}}
	analyzer := NewAnalyzer(riskyChain(), &stubSocialProvider{}, testLogger())
	monitor := NewMonitor(analyzer, store, testLogger(), 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		monitor.Start(context.Background())
		close(done)
	}()

	// 等第一轮跑完
	require.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return len(store.storedRisks) > 0
	}, time.Second, 5*time.Millisecond)
	assert.True(t, monitor.Running())

	monitor.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop")
	}
	assert.False(t, monitor.Running())
}

func TestMonitor_StartCancelledContext(t *testing.T) {
	store := &stubStore{tracked: []string{"token1"}}
	analyzer := NewAnalyzer(riskyChain(), &stubSocialProvider{}, testLogger())
	monitor := NewMonitor(analyzer, store, testLogger(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		monitor.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not observe cancelled context")
	}
}

func TestMonitor_StartTwice(t *testing.T) {
	store := &stubStore{}
	analyzer := NewAnalyzer(riskyChain(), &stubSocialProvider{}, testLogger())
	monitor := NewMonitor(analyzer, store, testLogger(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go monitor.Start(ctx)
	require.Eventually(t, monitor.Running, time.Second, time.Millisecond)

	// 第二次 Start 应直接返回
	second := make(chan struct{})
	go func() {
		monitor.Start(ctx)
		close(second)
	}()

	select {
	case <-second:
	case <-time.After(time.Second):
		t.Fatal("second Start did not return immediately")
	}
}
