package recorder

import (
	"database/sql"
	"sync"

	_ "modernc.org/sqlite"

	"quote-engine/core/types"
	"quote-engine/internal/errors"
	"quote-engine/internal/logging"

	"go.uber.org/zap"
)

// SQLiteRecorder appends issued quotes to a SQLite database
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Storage("open sqlite", err)
	}

	// WAL mode so reporting reads don't block quote writes
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Storage("set WAL mode", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, errors.Storage("migrate", err)
	}

	logging.Info("sqlite quote recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS quotes (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			quote_id        TEXT NOT NULL UNIQUE,
			tax_id          TEXT NOT NULL,
			business_name   TEXT,
			state           TEXT,
			product         TEXT,
			classification  TEXT,
			status          TEXT NOT NULL,
			risk_score      INTEGER,
			risk_tier       TEXT,
			base_premium    TEXT,
			subtotal        TEXT,
			state_tax       TEXT,
			policy_fee      TEXT,
			annual_premium  TEXT,
			monthly_premium TEXT,
			issued_at       INTEGER NOT NULL,
			expires_at      INTEGER NOT NULL,
			processing_ms   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quotes_tax_id ON quotes(tax_id)`,
		`CREATE INDEX IF NOT EXISTS idx_quotes_issued ON quotes(issued_at)`,
	}

	for _, stmt := range stmts {
		if _, err := r.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordQuote appends one quote outcome. Amounts are stored as decimal
// strings to avoid float drift in the audit trail.
func (r *SQLiteRecorder) RecordQuote(record *types.QuoteRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`
		INSERT INTO quotes (
			quote_id, tax_id, business_name, state, product, classification,
			status, risk_score, risk_tier,
			base_premium, subtotal, state_tax, policy_fee, annual_premium, monthly_premium,
			issued_at, expires_at, processing_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Request.TaxID,
		record.Request.BusinessName,
		record.Request.State,
		string(record.Request.Product),
		record.Request.Classification,
		string(record.Status),
		record.Risk.Score,
		record.Risk.Tier.String(),
		record.Premium.BasePremium.String(),
		record.Premium.Subtotal.String(),
		record.Premium.StateTax.String(),
		record.Premium.PolicyFee.String(),
		record.Premium.AnnualPremium.String(),
		record.Premium.MonthlyPremium.String(),
		record.IssuedAt.Unix(),
		record.ExpiresAt.Unix(),
		record.ProcessingTime.Milliseconds(),
	)
	if err != nil {
		return errors.Storage("record quote", err)
	}
	return nil
}

// Close closes the database
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
