package failover

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songzhibin97/tokenguard/internal/models"
)

type fakeSource struct {
	name      string
	info      *models.TokenInfo
	infoErr   error
	volume    *models.VolumeInfo
	volumeErr error
	calls     int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) TokenInfo(_ context.Context, _ string) (*models.TokenInfo, error) {
	f.calls++
	return f.info, f.infoErr
}

func (f *fakeSource) Holders(_ context.Context, _ string) ([]models.HolderInfo, error) {
	return nil, fmt.Errorf("not supported")
}

func (f *fakeSource) IsContract(_ context.Context, _ string) (bool, error) {
	return false, fmt.Errorf("not supported")
}

func (f *fakeSource) Liquidity(_ context.Context, _ string) (*models.LiquidityInfo, error) {
	return nil, fmt.Errorf("not supported")
}

func (f *fakeSource) Volume(_ context.Context, _ string) (*models.VolumeInfo, error) {
	return f.volume, f.volumeErr
}

func (f *fakeSource) SecurityIssues(_ context.Context, _ string) ([]string, error) {
	return nil, fmt.Errorf("not supported")
}

func (f *fakeSource) PriceHistory(_ context.Context, _ string) ([]models.PricePoint, error) {
	return nil, fmt.Errorf("not supported")
}

func (f *fakeSource) TradingPatterns(_ context.Context, _ string) (*models.TradingPatterns, error) {
	return nil, fmt.Errorf("not supported")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestChainProvider_FirstSourceWins(t *testing.T) {
	first := &fakeSource{name: "first", info: &models.TokenInfo{Address: "t", Name: "First"}}
	second := &fakeSource{name: "second", info: &models.TokenInfo{Address: "t", Name: "Second"}}

	provider := NewChainProvider([]Source{first, second}, testLogger())

	info, err := provider.TokenInfo(context.Background(), "t")
	require.NoError(t, err)
	assert.Equal(t, "First", info.Name)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls)
}

func TestChainProvider_FallsThroughOnError(t *testing.T) {
	first := &fakeSource{name: "first", infoErr: fmt.Errorf("rate limited")}
	second := &fakeSource{name: "second", info: &models.TokenInfo{Address: "t", Name: "Second"}}

	provider := NewChainProvider([]Source{first, second}, testLogger())

	info, err := provider.TokenInfo(context.Background(), "t")
	require.NoError(t, err)
	assert.Equal(t, "Second", info.Name)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestChainProvider_AllSourcesFail(t *testing.T) {
	first := &fakeSource{name: "first", volumeErr: fmt.Errorf("down")}
	second := &fakeSource{name: "second", volumeErr: fmt.Errorf("also down")}

	provider := NewChainProvider([]Source{first, second}, testLogger())

	volume, err := provider.Volume(context.Background(), "t")
	require.Error(t, err)
	assert.Nil(t, volume)
	assert.Contains(t, err.Error(), "all sources")
}
