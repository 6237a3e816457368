package watcher

import "time"

// Op identifies the kind of change an event carries
type Op int

const (
	OpCreate Op = iota
	OpUpdate
	OpDelete
	OpDeleteDir
)

// String returns the wire/log name of the operation
func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	case OpDeleteDir:
		return "delete_dir"
	default:
		return "unknown"
	}
}

// Event is one filesystem change moving through the filter, debounce and
// apply pipeline. PrevPath is set when the change is the delete half of a
// rename whose origin is known; renames otherwise arrive decomposed as an
// independent delete and create.
type Event struct {
	Path     string
	Op       Op
	PrevPath string
	At       time.Time
}
