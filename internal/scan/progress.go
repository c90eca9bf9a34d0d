package scan

// ProgressReporter provides callbacks for reporting extraction progress.
// Implementations can display progress bars, log messages, or remain silent.
// OnUnitProcessed is called from worker goroutines.
type ProgressReporter interface {
	// OnDiscoveryComplete is called when file discovery finishes.
	OnDiscoveryComplete(totalFiles int)

	// OnUnitProcessed is called after each source file is scanned, successfully or not.
	OnUnitProcessed(fileName string)

	// OnComplete is called when a run finishes.
	OnComplete(stats *Stats)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnDiscoveryComplete(totalFiles int) {}
func (n *NoOpProgressReporter) OnUnitProcessed(fileName string)    {}
func (n *NoOpProgressReporter) OnComplete(stats *Stats)            {}
