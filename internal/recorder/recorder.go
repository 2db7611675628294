package recorder

import "PatternSentinel/internal/model"

// Recorder persists scan history for later analysis.
type Recorder interface {
	RecordScan(report *model.ScanReport) error
	Close() error
}
