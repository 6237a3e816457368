package applier

// Status classifies the outcome of applying one event
type Status int

const (
	// StatusApplied means the representation was mutated
	StatusApplied Status = iota
	// StatusSkipped means the event required no mutation
	StatusSkipped
	// StatusFailed means the event could not be processed
	StatusFailed
)

// String returns the wire name of the status
func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ApplyResult describes what one event did to the representation
type ApplyResult struct {
	Status Status
	Reason string
	Docs   int
}

func applied(docs int) ApplyResult {
	return ApplyResult{Status: StatusApplied, Docs: docs}
}

func skipped(reason string) ApplyResult {
	return ApplyResult{Status: StatusSkipped, Reason: reason}
}

func failed(reason string) ApplyResult {
	return ApplyResult{Status: StatusFailed, Reason: reason}
}
