package server

import (
	"time"

	"lens/internal/app/bus"
	"lens/internal/app/cache"
	"lens/internal/app/query"
	"lens/internal/app/stats"
)

// RequestType identifies the operation a client asks for
type RequestType string

// Request types for the wire protocol
const (
	// RequestStatus asks for daemon and cache status
	RequestStatus RequestType = "status"
	// RequestSymbol asks for declarations of a name under a root
	RequestSymbol RequestType = "symbol"
	// RequestDoc asks for declarations with their doc comments
	RequestDoc RequestType = "doc"
	// RequestRefs asks for use sites of a name under a root
	RequestRefs RequestType = "refs"
	// RequestSubscribeEvents switches the connection to an event stream
	RequestSubscribeEvents RequestType = "subscribe_events"
)

// Request is the single JSON line a client sends after connecting
type Request struct {
	Type RequestType `json:"type"`
	Root string      `json:"root,omitempty"`
	Name string      `json:"name,omitempty"`
	// Roots filters a subscribe_events stream to these roots (empty = all)
	Roots []string `json:"roots,omitempty"`
}

// Response is the single JSON line the server answers with. Exactly one
// of the payload fields is set on success, matching the request type.
type Response struct {
	OK           bool                `json:"ok"`
	Error        string              `json:"error,omitempty"`
	Status       *StatusReply        `json:"status,omitempty"`
	Declarations []query.Declaration `json:"declarations,omitempty"`
	References   []query.Reference   `json:"references,omitempty"`
}

// StatusReply describes the daemon and its cached roots
type StatusReply struct {
	Version string              `json:"version"`
	Socket  string              `json:"socket"`
	Process stats.Snapshot      `json:"process"`
	Roots   []cache.EntryStatus `json:"roots"`
}

// EventFrame is one line-delimited event on a subscribe_events stream
type EventFrame struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Root      string    `json:"root,omitempty"`
	Path      string    `json:"path,omitempty"`
	Op        string    `json:"op,omitempty"`
	Status    string    `json:"status,omitempty"`
	Docs      int       `json:"docs,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Projects  int       `json:"projects,omitempty"`
	Documents int       `json:"documents,omitempty"`
	Duration  string    `json:"duration,omitempty"`
	Error     string    `json:"error,omitempty"`
	Signal    string    `json:"signal,omitempty"`
}

// frameFromMessage flattens a bus message into its wire representation
func frameFromMessage(msg bus.Message) EventFrame {
	frame := EventFrame{
		Type:      string(msg.Type),
		Timestamp: msg.Timestamp,
	}

	switch data := msg.Data.(type) {
	case bus.BuildStarted:
		frame.Root = data.Root
	case bus.BuildComplete:
		frame.Root = data.Root
		frame.Projects = data.Projects
		frame.Documents = data.Documents
		frame.Duration = data.Duration.Round(time.Millisecond).String()
	case bus.BuildFailed:
		frame.Root = data.Root
		if data.Error != nil {
			frame.Error = data.Error.Error()
		}
	case bus.WatchStarted:
		frame.Root = data.Root
	case bus.WatchStopped:
		frame.Root = data.Root
	case bus.ChangeApplied:
		frame.Root = data.Root
		frame.Path = data.Path
		frame.Op = data.Op
		frame.Status = data.Status
		frame.Docs = data.Docs
		frame.Reason = data.Reason
	case bus.RootDisposed:
		frame.Root = data.Root
	case bus.Signal:
		frame.Signal = data.Name
	}

	return frame
}
