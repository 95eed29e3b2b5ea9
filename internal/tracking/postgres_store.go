package tracking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/songzhibin97/tokenguard/internal/models"

	_ "github.com/lib/pq"
)

// PostgresStore is the Postgres-backed Store.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens the database and ensures the schema exists.
func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{db: db}

	if err := s.initTables(); err != nil {
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	return s, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// TrackToken implements Store.
func (s *PostgresStore) TrackToken(ctx context.Context, address string) error {
	query := `
        INSERT INTO tracked_tokens (address, created_at)
        VALUES ($1, NOW())
        ON CONFLICT (address) DO NOTHING
    `

	if _, err := s.db.ExecContext(ctx, query, address); err != nil {
		return fmt.Errorf("failed to track token: %w", err)
	}
	return nil
}

// UntrackToken implements Store.
func (s *PostgresStore) UntrackToken(ctx context.Context, address string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tracked_tokens WHERE address = $1`, address); err != nil {
		return fmt.Errorf("failed to untrack token: %w", err)
	}
	return nil
}

// TrackedTokens implements Store.
func (s *PostgresStore) TrackedTokens(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT address FROM tracked_tokens ORDER BY address`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracked tokens: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var addr string
		if err := rows.Scan(&addr); err != nil {
			return nil, fmt.Errorf("failed to scan tracked token: %w", err)
		}
		tokens = append(tokens, addr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tracked token rows: %w", err)
	}

	return tokens, nil
}

// StoreRisk implements Store.
func (s *PostgresStore) StoreRisk(ctx context.Context, address string, risk *models.TokenRisk) error {
	factors, err := json.Marshal(risk.Factors)
	if err != nil {
		return fmt.Errorf("failed to encode risk factors: %w", err)
	}

	query := `
        INSERT INTO token_risk (
            token_address, risk_level, risk_score, confidence,
            factors, last_updated, created_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7
        )
    `

	_, err = s.db.ExecContext(ctx, query,
		address,
		string(risk.RiskLevel),
		risk.RiskScore,
		risk.Confidence,
		factors,
		risk.LastUpdated,
		risk.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store risk data: %w", err)
	}

	return nil
}

// LatestRisk implements Store.
func (s *PostgresStore) LatestRisk(ctx context.Context, address string) (*models.TokenRisk, error) {
	query := `
        SELECT token_address, risk_level, risk_score, confidence,
               factors, last_updated, created_at
        FROM token_risk
        WHERE token_address = $1
        ORDER BY last_updated DESC
        LIMIT 1
    `

	var risk models.TokenRisk
	var level string
	var factors []byte

	err := s.db.QueryRowContext(ctx, query, address).Scan(
		&risk.TokenAddress,
		&level,
		&risk.RiskScore,
		&risk.Confidence,
		&factors,
		&risk.LastUpdated,
		&risk.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no risk data for token: %s", address)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get risk data: %w", err)
	}

	risk.RiskLevel = models.RiskLevel(level)
	if err := json.Unmarshal(factors, &risk.Factors); err != nil {
		return nil, fmt.Errorf("failed to decode risk factors: %w", err)
	}

	return &risk, nil
}

// CreateAlert implements Store.
func (s *PostgresStore) CreateAlert(ctx context.Context, alert *models.Alert) error {
	query := `
        INSERT INTO alerts (
            token_address, alert_type, risk_level, title, description,
            severity, factor_name, factor_score, note, is_resolved, created_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
        )
        RETURNING id
    `

	err := s.db.QueryRowContext(ctx, query,
		alert.TokenAddress,
		string(alert.AlertType),
		string(alert.RiskLevel),
		alert.Title,
		alert.Description,
		alert.Severity,
		alert.FactorName,
		alert.FactorScore,
		alert.Note,
		alert.IsResolved,
		alert.CreatedAt,
	).Scan(&alert.ID)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}

	return nil
}

// Alerts implements Store, newest first.
func (s *PostgresStore) Alerts(ctx context.Context, limit int) ([]models.Alert, error) {
	query := `
        SELECT id, token_address, alert_type, risk_level, title, description,
               severity, factor_name, factor_score, note, is_resolved,
               created_at, resolved_at
        FROM alerts
        ORDER BY created_at DESC
        LIMIT $1
    `

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var result []models.Alert
	for rows.Next() {
		var alert models.Alert
		var alertType, level string
		err := rows.Scan(
			&alert.ID,
			&alert.TokenAddress,
			&alertType,
			&level,
			&alert.Title,
			&alert.Description,
			&alert.Severity,
			&alert.FactorName,
			&alert.FactorScore,
			&alert.Note,
			&alert.IsResolved,
			&alert.CreatedAt,
			&alert.ResolvedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alert.AlertType = models.AlertType(alertType)
		alert.RiskLevel = models.RiskLevel(level)
		result = append(result, alert)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alert rows: %w", err)
	}

	return result, nil
}

// SaveAnalysis implements Store.
func (s *PostgresStore) SaveAnalysis(ctx context.Context, analysis *models.TokenAnalysis) error {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}

	query := `
        INSERT INTO token_analyses (
            token_address, risk_level, risk_score, confidence,
            analysis, analysis_timestamp, created_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7
        )
    `

	_, err = s.db.ExecContext(ctx, query,
		analysis.TokenAddress,
		string(analysis.RiskLevel),
		analysis.RiskScore,
		analysis.Confidence,
		payload,
		analysis.AnalysisTimestamp,
		analysis.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	return nil
}

func (s *PostgresStore) initTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS tracked_tokens (
			address VARCHAR(100) PRIMARY KEY,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS token_risk (
			id SERIAL PRIMARY KEY,
			token_address VARCHAR(100) NOT NULL,
			risk_level VARCHAR(20) NOT NULL,
			risk_score NUMERIC(6, 4),
			confidence NUMERIC(6, 4),
			factors JSONB,
			last_updated TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS alerts (
			id SERIAL PRIMARY KEY,
			token_address VARCHAR(100) NOT NULL,
			alert_type VARCHAR(50) NOT NULL,
			risk_level VARCHAR(20) NOT NULL,
			title TEXT,
			description TEXT,
			severity INT,
			factor_name VARCHAR(50),
			factor_score NUMERIC(6, 4),
			note TEXT,
			is_resolved BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT NOW(),
			resolved_at TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS token_analyses (
			id SERIAL PRIMARY KEY,
			token_address VARCHAR(100) NOT NULL,
			risk_level VARCHAR(20) NOT NULL,
			risk_score NUMERIC(6, 4),
			confidence NUMERIC(6, 4),
			analysis JSONB,
			analysis_timestamp TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT NOW()
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}
