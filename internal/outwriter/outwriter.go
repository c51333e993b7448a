// Package outwriter renders athome results as text tables, CSV or JSON.
package outwriter

import (
	"github.com/huangsam/athome/internal/contract"
	"github.com/huangsam/athome/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteScore prints a scored profile using the configured output format.
func (ow *OutWriter) WriteScore(report schema.ScoreReport, cfg *contract.Config) error {
	return PrintScoreReport(report, cfg)
}

// WriteCategory prints the category for a bare score.
func (ow *OutWriter) WriteCategory(score int, category schema.Category, cfg *contract.Config) error {
	return PrintCategory(score, category, cfg)
}

// WriteVerdict prints the outcome of an availability check.
func (ow *OutWriter) WriteVerdict(verdict schema.Verdict, cfg *contract.Config) error {
	return PrintVerdict(verdict, cfg)
}

// WriteSlots prints recommended visit slots.
func (ow *OutWriter) WriteSlots(slots []schema.Slot, cfg *contract.Config) error {
	return PrintSlots(slots, cfg)
}

// WriteHistory prints the presence history of a profile.
func (ow *OutWriter) WriteHistory(clientID string, p schema.AvailabilityProfile, cfg *contract.Config) error {
	return PrintHistory(clientID, p, cfg)
}

// WriteRanked prints a ranked list of stored clients.
func (ow *OutWriter) WriteRanked(ranked []schema.RankedClient, cfg *contract.Config) error {
	return PrintRanked(ranked, cfg)
}

// WriteProfile prints one client profile.
func (ow *OutWriter) WriteProfile(cp schema.ClientProfile, cfg *contract.Config) error {
	return PrintProfile(cp, cfg)
}

// WriteMetrics prints the scoring definitions.
func (ow *OutWriter) WriteMetrics(model schema.MetricsRenderModel, cfg *contract.Config) error {
	return PrintMetricsDefinitions(model, cfg)
}

// WriteStoreStatus prints the profile store status.
func (ow *OutWriter) WriteStoreStatus(status schema.StoreStatus, cfg *contract.Config) error {
	return PrintStoreStatus(status, cfg)
}
