package datagen

import (
	"github.com/pgEdge/pgedge-seeder/internal/logging"
)

// DefaultProgressInterval is how often, in rows, progress is logged.
const DefaultProgressInterval = 100

// ProgressReporter tracks and reports insert progress.
type ProgressReporter struct {
	tableName        string
	totalRows        int64
	currentRow       int64
	progressInterval int64
}

// NewProgressReporter creates a new progress reporter.
func NewProgressReporter(tableName string, totalRows int64, interval int64) *ProgressReporter {
	if interval < 1 {
		interval = DefaultProgressInterval
	}
	return &ProgressReporter{
		tableName:        tableName,
		totalRows:        totalRows,
		progressInterval: interval,
	}
}

// Update updates the progress and logs if necessary. It reports whether a
// progress line was emitted.
func (p *ProgressReporter) Update(rowsInserted int64) bool {
	oldRow := p.currentRow
	p.currentRow += rowsInserted

	// Check if we crossed a progress interval
	if p.currentRow/p.progressInterval > oldRow/p.progressInterval {
		logging.Info().
			Str("table", p.tableName).
			Int64("rows", p.currentRow).
			Int64("total", p.totalRows).
			Float64("percent", p.Percent()).
			Msg("Inserting records")
		return true
	}
	return false
}

// Rows returns the number of rows counted so far.
func (p *ProgressReporter) Rows() int64 {
	return p.currentRow
}

// Percent returns completion as a percentage of the expected total.
func (p *ProgressReporter) Percent() float64 {
	if p.totalRows <= 0 {
		return 0
	}
	return float64(p.currentRow) / float64(p.totalRows) * 100
}

// Done logs completion.
func (p *ProgressReporter) Done() {
	logging.Info().
		Str("table", p.tableName).
		Int64("rows", p.currentRow).
		Msg("Table complete")
}
