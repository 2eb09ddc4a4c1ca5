package model

// Writer defines a generic interface for persisting the result of a run.
type Writer interface {
	// Write persists both tallies of the report. Implementations report
	// partial failures through the returned error but must attempt every
	// independent output they manage.
	Write(report *Report) error
}
