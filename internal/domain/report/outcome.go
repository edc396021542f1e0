// internal/domain/report/outcome.go
package report

import "time"

// OutcomeStatus is the per-kind result of a run.
type OutcomeStatus string

const (
	StatusSkipped OutcomeStatus = "SKIPPED" // Not due this run
	StatusSent    OutcomeStatus = "SENT"
	StatusFailed  OutcomeStatus = "FAILED"
)

// Stage identifies where in the pipeline a report kind failed.
type Stage string

const (
	StageExtract  Stage = "EXTRACT"
	StageFormat   Stage = "FORMAT"
	StageDispatch Stage = "DISPATCH"
)

// ErrorKind classifies a failure for the run summary.
type ErrorKind string

const (
	ErrorStoreUnavailable ErrorKind = "STORE_UNAVAILABLE"
	ErrorQueryFailed      ErrorKind = "QUERY_FAILED"
	ErrorFormatFailed     ErrorKind = "FORMAT_ERROR"
	ErrorDeliveryFailed   ErrorKind = "DELIVERY_FAILED"
)

// KindOutcome records what happened to one report kind within a run.
type KindOutcome struct {
	Status     OutcomeStatus
	RowCount   int
	Recipients int
	Stage      Stage
	ErrorKind  ErrorKind
	Err        string
}

// RunOutcome aggregates per-kind outcomes for a single invocation. It is
// observability output only and is never persisted.
type RunOutcome struct {
	RunID string
	Date  time.Time
	Kinds map[Kind]KindOutcome
}

// NewRunOutcome initializes an outcome with every kind marked skipped;
// processing overwrites the entries for the kinds that are due.
func NewRunOutcome(runID string, date time.Time) *RunOutcome {
	kinds := make(map[Kind]KindOutcome, len(Kinds()))
	for _, k := range Kinds() {
		kinds[k] = KindOutcome{Status: StatusSkipped}
	}
	return &RunOutcome{RunID: runID, Date: DateOf(date), Kinds: kinds}
}

// MarkSent records a successful send for the given kind.
func (o *RunOutcome) MarkSent(kind Kind, rows, recipients int) {
	o.Kinds[kind] = KindOutcome{Status: StatusSent, RowCount: rows, Recipients: recipients}
}

// MarkFailed records a failure for the given kind.
func (o *RunOutcome) MarkFailed(kind Kind, stage Stage, errKind ErrorKind, err error) {
	o.Kinds[kind] = KindOutcome{Status: StatusFailed, Stage: stage, ErrorKind: errKind, Err: err.Error()}
}

// SentCount returns how many report kinds were sent this run.
func (o *RunOutcome) SentCount() int {
	n := 0
	for _, ko := range o.Kinds {
		if ko.Status == StatusSent {
			n++
		}
	}
	return n
}

// Failed reports whether any kind failed this run.
func (o *RunOutcome) Failed() bool {
	for _, ko := range o.Kinds {
		if ko.Status == StatusFailed {
			return true
		}
	}
	return false
}
