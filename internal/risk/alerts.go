package risk

import (
	"fmt"
	"time"

	"github.com/songzhibin97/tokenguard/internal/models"
)

// factorAlertThreshold triggers a factor-specific alert when a factor's
// score exceeds it.
const factorAlertThreshold = 0.8

// AlertsFor maps a risk snapshot to zero or more alerts. The rules are
// evaluated independently and are not mutually exclusive. There is no
// suppression across monitoring cycles: a token that stays risky re-raises
// the same alerts every cycle, and any deduplication belongs to the
// delivery layer.
func AlertsFor(risk *models.TokenRisk) []models.Alert {
	var alerts []models.Alert
	now := time.Now()

	if risk.RiskLevel == models.RiskLevelHigh || risk.RiskLevel == models.RiskLevelCritical {
		severity := 4
		if risk.RiskLevel == models.RiskLevelCritical {
			severity = 5
		}
		alerts = append(alerts, models.Alert{
			TokenAddress: risk.TokenAddress,
			AlertType:    models.AlertHighRisk,
			RiskLevel:    risk.RiskLevel,
			Title:        fmt.Sprintf("High Risk Detected: %s", risk.TokenAddress),
			Description:  fmt.Sprintf("Token %s has been flagged as %s risk", risk.TokenAddress, risk.RiskLevel),
			Severity:     severity,
			Note:         fmt.Sprintf("risk score %.2f, confidence %.2f", risk.RiskScore, risk.Confidence),
			CreatedAt:    now,
		})
	}

	if factor, ok := risk.Factors[FactorHolderConcentration]; ok && factor.Score > factorAlertThreshold {
		alerts = append(alerts, models.Alert{
			TokenAddress: risk.TokenAddress,
			AlertType:    models.AlertHolderConcentration,
			RiskLevel:    models.RiskLevelHigh,
			Title:        fmt.Sprintf("High Holder Concentration: %s", risk.TokenAddress),
			Description:  fmt.Sprintf("Token %s has high holder concentration", risk.TokenAddress),
			Severity:     4,
			FactorName:   FactorHolderConcentration,
			FactorScore:  factor.Score,
			CreatedAt:    now,
		})
	}

	if factor, ok := risk.Factors[FactorLiquiditySecurity]; ok && factor.Score > factorAlertThreshold {
		alerts = append(alerts, models.Alert{
			TokenAddress: risk.TokenAddress,
			AlertType:    models.AlertLiquidityRemoval,
			RiskLevel:    models.RiskLevelHigh,
			Title:        fmt.Sprintf("Liquidity Security Risk: %s", risk.TokenAddress),
			Description:  fmt.Sprintf("Token %s has liquidity security concerns", risk.TokenAddress),
			Severity:     4,
			FactorName:   FactorLiquiditySecurity,
			FactorScore:  factor.Score,
			CreatedAt:    now,
		})
	}

	return alerts
}
