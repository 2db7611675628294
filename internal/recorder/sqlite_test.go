package recorder

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"PatternSentinel/internal/model"
)

func sampleReport() *model.ScanReport {
	breakout := "2024-03-08"
	return &model.ScanReport{
		GeneratedAt:      time.Date(2024, 3, 10, 6, 0, 0, 0, time.UTC),
		Scanned:          2,
		Skipped:          1,
		CandlestickTotal: 1,
		CupHandleTotal:   1,
		Symbols: []model.SymbolReport{
			{
				Symbol: "AAPL",
				Candlestick: []model.PatternRecord{{
					Date:       "2024-03-07",
					DaysAgo:    3,
					Pattern:    model.PatternHammer,
					Signal:     model.SignalBullish,
					Confidence: 90,
					Status:     model.StatusConfirmed,
				}},
				CupHandle: &model.CupHandleRecord{
					Pattern:         model.PatternCupAndHandle,
					Signal:          model.SignalBullish,
					HandleShape:     model.ShapeDrift,
					CupStartDate:    "2023-10-02",
					CupEndDate:      "2024-01-15",
					HandleStartDate: "2024-01-15",
					BreakoutDate:    &breakout,
					RimPrice:        100,
					CupBottomPrice:  80,
					HandleLow:       95,
					DepthPercent:    20,
					ProfitTarget:    120,
					RiskRewardRatio: 4,
					Status:          model.StatusConfirmed,
					Confidence:      87,
					DaysAgo:         2,
				},
			},
		},
	}
}

func TestSQLiteRecorder_RecordScan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scans.db")
	rec, err := NewSQLiteRecorder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer rec.Close()

	report := sampleReport()
	if err := rec.RecordScan(report); err != nil {
		t.Fatalf("record scan: %v", err)
	}

	var ts int64
	var scanned, skipped int
	if err := rec.db.QueryRow(`SELECT timestamp, scanned, skipped FROM scan_runs`).Scan(&ts, &scanned, &skipped); err != nil {
		t.Fatalf("read run row: %v", err)
	}
	if ts != report.GeneratedAt.Unix() {
		t.Errorf("expected timestamp %d, got %d", report.GeneratedAt.Unix(), ts)
	}
	if scanned != 2 || skipped != 1 {
		t.Errorf("expected scanned=2 skipped=1, got %d/%d", scanned, skipped)
	}

	var symbol, pattern string
	var confidence float64
	if err := rec.db.QueryRow(`SELECT symbol, pattern, confidence FROM candlestick_patterns`).Scan(&symbol, &pattern, &confidence); err != nil {
		t.Fatalf("read candlestick row: %v", err)
	}
	if symbol != "AAPL" || pattern != "hammer" || confidence != 90 {
		t.Errorf("unexpected candlestick row: %s %s %v", symbol, pattern, confidence)
	}

	var breakoutCol sql.NullString
	var target float64
	if err := rec.db.QueryRow(`SELECT breakout_date, profit_target FROM cup_handle_patterns`).Scan(&breakoutCol, &target); err != nil {
		t.Fatalf("read cup handle row: %v", err)
	}
	if !breakoutCol.Valid || breakoutCol.String != "2024-03-08" {
		t.Errorf("expected breakout date 2024-03-08, got %+v", breakoutCol)
	}
	if target != 120 {
		t.Errorf("expected profit target 120, got %v", target)
	}
}

func TestSQLiteRecorder_FormingStoresNullBreakout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scans.db")
	rec, err := NewSQLiteRecorder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer rec.Close()

	report := sampleReport()
	cup := report.Symbols[0].CupHandle
	cup.BreakoutDate = nil
	cup.Status = model.StatusForming

	if err := rec.RecordScan(report); err != nil {
		t.Fatalf("record scan: %v", err)
	}

	var breakoutCol sql.NullString
	var status string
	if err := rec.db.QueryRow(`SELECT breakout_date, status FROM cup_handle_patterns`).Scan(&breakoutCol, &status); err != nil {
		t.Fatalf("read cup handle row: %v", err)
	}
	if breakoutCol.Valid {
		t.Errorf("expected NULL breakout date, got %q", breakoutCol.String)
	}
	if status != "forming" {
		t.Errorf("expected status forming, got %q", status)
	}
}

func TestSQLiteRecorder_RunsAccumulate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scans.db")
	rec, err := NewSQLiteRecorder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}

	if err := rec.RecordScan(sampleReport()); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if err := rec.RecordScan(sampleReport()); err != nil {
		t.Fatalf("second record: %v", err)
	}

	var runs, candles int
	if err := rec.db.QueryRow(`SELECT COUNT(*) FROM scan_runs`).Scan(&runs); err != nil {
		t.Fatalf("count runs: %v", err)
	}
	if err := rec.db.QueryRow(`SELECT COUNT(*) FROM candlestick_patterns`).Scan(&candles); err != nil {
		t.Fatalf("count candlesticks: %v", err)
	}
	if runs != 2 || candles != 2 {
		t.Errorf("expected 2 runs and 2 candlestick rows, got %d/%d", runs, candles)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopening must tolerate existing tables.
	rec2, err := NewSQLiteRecorder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen recorder: %v", err)
	}
	defer rec2.Close()
	if err := rec2.db.QueryRow(`SELECT COUNT(*) FROM scan_runs`).Scan(&runs); err != nil {
		t.Fatalf("count runs after reopen: %v", err)
	}
	if runs != 2 {
		t.Errorf("expected 2 runs after reopen, got %d", runs)
	}
}
