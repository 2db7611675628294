package recorder

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"PatternSentinel/internal/model"
)

// SQLiteRecorder persists scan history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so readers are not blocked while a scan is being written.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scan_runs (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp         INTEGER NOT NULL,
			scanned           INTEGER,
			skipped           INTEGER,
			candlestick_total INTEGER,
			cup_handle_total  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON scan_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS candlestick_patterns (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id     INTEGER NOT NULL,
			symbol     TEXT NOT NULL,
			date       TEXT,
			days_ago   INTEGER,
			pattern    TEXT,
			signal     TEXT,
			confidence REAL,
			status     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_candle_run ON candlestick_patterns(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_candle_symbol ON candlestick_patterns(symbol)`,

		`CREATE TABLE IF NOT EXISTS cup_handle_patterns (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id            INTEGER NOT NULL,
			symbol            TEXT NOT NULL,
			handle_shape      TEXT,
			cup_start_date    TEXT,
			cup_end_date      TEXT,
			handle_start_date TEXT,
			breakout_date     TEXT,
			rim_price         REAL,
			cup_bottom_price  REAL,
			handle_low        REAL,
			depth_percent     REAL,
			profit_target     REAL,
			risk_reward_ratio REAL,
			status            TEXT,
			confidence        INTEGER,
			days_ago          INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cup_run ON cup_handle_patterns(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_cup_symbol ON cup_handle_patterns(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordScan writes one scan run and all of its findings in a single
// transaction, so a crash mid-write never leaves a run without its rows.
func (r *SQLiteRecorder) RecordScan(report *model.ScanReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO scan_runs
		(timestamp, scanned, skipped, candlestick_total, cup_handle_total)
		VALUES (?,?,?,?,?)`,
		report.GeneratedAt.Unix(), report.Scanned, report.Skipped,
		report.CandlestickTotal, report.CupHandleTotal,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	for _, sym := range report.Symbols {
		for _, rec := range sym.Candlestick {
			if _, err := tx.Exec(`INSERT INTO candlestick_patterns
				(run_id, symbol, date, days_ago, pattern, signal, confidence, status)
				VALUES (?,?,?,?,?,?,?,?)`,
				runID, sym.Symbol, rec.Date, rec.DaysAgo,
				string(rec.Pattern), string(rec.Signal), rec.Confidence, string(rec.Status),
			); err != nil {
				return fmt.Errorf("insert candlestick: %w", err)
			}
		}
		if ch := sym.CupHandle; ch != nil {
			if _, err := tx.Exec(`INSERT INTO cup_handle_patterns
				(run_id, symbol, handle_shape, cup_start_date, cup_end_date, handle_start_date,
				 breakout_date, rim_price, cup_bottom_price, handle_low,
				 depth_percent, profit_target, risk_reward_ratio, status, confidence, days_ago)
				VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
				runID, sym.Symbol, string(ch.HandleShape),
				ch.CupStartDate, ch.CupEndDate, ch.HandleStartDate, ch.BreakoutDate,
				ch.RimPrice, ch.CupBottomPrice, ch.HandleLow,
				ch.DepthPercent, ch.ProfitTarget, ch.RiskRewardRatio,
				string(ch.Status), ch.Confidence, ch.DaysAgo,
			); err != nil {
				return fmt.Errorf("insert cup handle: %w", err)
			}
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
