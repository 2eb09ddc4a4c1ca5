package model

// Notifier defines a generic interface for reporting a completed run.
type Notifier interface {
	SendRunSummary(report *Report) error
}
