package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songzhibin97/tokenguard/internal/models"
)

func TestAlertsFor(t *testing.T) {
	snapshot := func(level models.RiskLevel, score float64, factors map[string]models.RiskFactor) *models.TokenRisk {
		return &models.TokenRisk{
			TokenAddress: "token1",
			RiskLevel:    level,
			RiskScore:    score,
			Confidence:   0.7,
			Factors:      factors,
			LastUpdated:  time.Now(),
		}
	}

	t.Run("low risk raises nothing", func(t *testing.T) {
		risk := snapshot(models.RiskLevelLow, 0.25, map[string]models.RiskFactor{
			FactorHolderConcentration: {Score: 0.3},
			FactorLiquiditySecurity:   {Score: 0.2},
		})
		assert.Empty(t, AlertsFor(risk))
	})

	t.Run("high risk raises generic alert", func(t *testing.T) {
		risk := snapshot(models.RiskLevelHigh, 0.65, map[string]models.RiskFactor{
			FactorHolderConcentration: {Score: 0.6},
		})
		alerts := AlertsFor(risk)
		require.Len(t, alerts, 1)
		assert.Equal(t, models.AlertHighRisk, alerts[0].AlertType)
		assert.Equal(t, 4, alerts[0].Severity)
		assert.Equal(t, "High Risk Detected: token1", alerts[0].Title)
	})

	t.Run("critical risk with concentrated holders raises both", func(t *testing.T) {
		risk := snapshot(models.RiskLevelCritical, 0.85, map[string]models.RiskFactor{
			FactorHolderConcentration: {Score: 0.85},
			FactorLiquiditySecurity:   {Score: 0.5},
		})
		alerts := AlertsFor(risk)
		require.Len(t, alerts, 2)

		assert.Equal(t, models.AlertHighRisk, alerts[0].AlertType)
		assert.Equal(t, 5, alerts[0].Severity)

		assert.Equal(t, models.AlertHolderConcentration, alerts[1].AlertType)
		assert.Equal(t, 4, alerts[1].Severity)
		assert.Equal(t, FactorHolderConcentration, alerts[1].FactorName)
		assert.Equal(t, 0.85, alerts[1].FactorScore)
	})

	t.Run("liquidity factor alone can alert", func(t *testing.T) {
		// 整体等级不高时，单项规则仍独立触发
		risk := snapshot(models.RiskLevelMedium, 0.45, map[string]models.RiskFactor{
			FactorLiquiditySecurity: {Score: 1.0},
		})
		alerts := AlertsFor(risk)
		require.Len(t, alerts, 1)
		assert.Equal(t, models.AlertLiquidityRemoval, alerts[0].AlertType)
		assert.Equal(t, 4, alerts[0].Severity)
	})

	t.Run("factor at threshold does not alert", func(t *testing.T) {
		risk := snapshot(models.RiskLevelMedium, 0.45, map[string]models.RiskFactor{
			FactorHolderConcentration: {Score: factorAlertThreshold},
		})
		assert.Empty(t, AlertsFor(risk))
	})

	t.Run("no suppression between evaluations", func(t *testing.T) {
		risk := snapshot(models.RiskLevelCritical, 0.9, map[string]models.RiskFactor{
			FactorHolderConcentration: {Score: 0.9},
		})
		first := AlertsFor(risk)
		second := AlertsFor(risk)
		assert.Len(t, second, len(first))
	})
}
