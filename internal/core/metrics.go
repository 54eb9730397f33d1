package core

import (
	"context"
	"time"
)

// MetricsRecorder observes the outcome and duration of service operations.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) Observe(context.Context, string, bool, time.Duration) {}

// Operation names reported to the MetricsRecorder and in logs.
const (
	OpSaveRates     = "save_rates"
	OpLoadRates     = "load_rates"
	OpListRateSets  = "list_rate_sets"
	OpDeleteRateSet = "delete_rate_set"
	OpExpandRateSet = "expand_rate_set"
	OpExportRateSet = "export_rate_set"
	OpImportRateSet = "import_rate_set"
)
