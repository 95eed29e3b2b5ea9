// Package tracking persists the set of monitored tokens together with their
// risk snapshots, analyses and alerts. The risk engine only talks to the
// Store interface; delivery of alerts to end users happens downstream of it.
package tracking

import (
	"context"

	"github.com/songzhibin97/tokenguard/internal/models"
)

// Store 处理监控数据的持久化
type Store interface {
	// TrackToken adds a token address to the monitored set
	TrackToken(ctx context.Context, address string) error

	// UntrackToken removes a token address from the monitored set
	UntrackToken(ctx context.Context, address string) error

	// TrackedTokens returns the current set of monitored token addresses
	TrackedTokens(ctx context.Context) ([]string, error)

	// StoreRisk persists a risk snapshot for a token
	StoreRisk(ctx context.Context, address string, risk *models.TokenRisk) error

	// LatestRisk returns the most recent risk snapshot for a token
	LatestRisk(ctx context.Context, address string) (*models.TokenRisk, error)

	// CreateAlert persists an alert for onward delivery
	CreateAlert(ctx context.Context, alert *models.Alert) error

	// Alerts returns the most recent alerts, newest first
	Alerts(ctx context.Context, limit int) ([]models.Alert, error)

	// SaveAnalysis persists a full analysis result
	SaveAnalysis(ctx context.Context, analysis *models.TokenAnalysis) error
}
