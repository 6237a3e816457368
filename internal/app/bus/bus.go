package bus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lens/internal/config"
	"lens/internal/config/logger"
)

// MessageType names a category of bus traffic.
type MessageType string

// Events published over a daemon's lifetime.
const (
	EventBuildStarted  MessageType = "build_started"
	EventBuildComplete MessageType = "build_complete"
	EventBuildFailed   MessageType = "build_failed"
	EventWatchStarted  MessageType = "watch_started"
	EventWatchStopped  MessageType = "watch_stopped"
	EventChangeApplied MessageType = "change_applied"
	EventRootDisposed  MessageType = "root_disposed"
	EventCacheCleared  MessageType = "cache_cleared"
	EventSignal        MessageType = "signal"
)

// Message is one bus delivery. Data carries the payload struct matching
// the message type; Critical marks messages that must not be shed when a
// subscriber falls behind.
type Message struct {
	Type      MessageType
	Timestamp time.Time
	Data      any
	Critical  bool
}

// BuildStarted indicates an initial build began for a root
type BuildStarted struct {
	Root string
}

// BuildComplete indicates an initial build finished
type BuildComplete struct {
	Root      string
	Projects  int
	Documents int
	Duration  time.Duration
}

// BuildFailed indicates an initial build failed; the root stays uncached
type BuildFailed struct {
	Root  string
	Error error
}

// WatchStarted indicates a root is being observed
type WatchStarted struct {
	Root string
}

// WatchStopped indicates observation of a root ended
type WatchStopped struct {
	Root string
}

// ChangeApplied reports the outcome of one filesystem event against a
// cached representation
type ChangeApplied struct {
	Root   string
	Path   string
	Op     string
	Status string
	Docs   int
	Reason string
}

// RootDisposed indicates a single root was evicted
type RootDisposed struct {
	Root string
}

// Signal names the OS signal that is taking the daemon down
type Signal struct {
	Name string
}

// Bus fans daemon events out to subscribers
type Bus interface {
	Subscribe(ctx context.Context) <-chan Message
	Publish(msg Message)
	Close()
}

type bus struct {
	cfg    *config.Config
	log    logger.Logger
	mu     sync.RWMutex
	subs   map[chan Message]struct{}
	closed bool
}

// New creates a bus with no subscribers
func New(cfg *config.Config, log logger.Logger) Bus {
	return &bus{
		cfg:  cfg,
		log:  log,
		subs: make(map[chan Message]struct{}),
	}
}

// Subscribe registers a buffered channel that receives every message until
// ctx ends, at which point the channel closes. Subscribing to a closed bus
// yields an already closed channel.
func (b *bus) Subscribe(ctx context.Context) <-chan Message {
	ch := make(chan Message, b.cfg.API.Buffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)

		return ch
	}
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.unsubscribe(ch)
	}()

	return ch
}

// Publish stamps the message and fans it out. A subscriber that cannot keep
// up loses non-critical messages; critical ones are retried from a goroutine
// so the publisher never blocks.
func (b *bus) Publish(msg Message) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	msg.Timestamp = time.Now()

	if b.log != nil {
		b.log.Debug().Msgf("%s %s", msg.Type, formatData(msg.Data))
	}

	for ch := range b.subs {
		select {
		case ch <- msg:
		default:
			if msg.Critical {
				go blockingSend(ch, msg)
			}
		}
	}
}

// blockingSend parks on a full subscriber. The recover absorbs the send
// panic when the channel closes underneath it.
func blockingSend(ch chan Message, msg Message) {
	defer func() { recover() }()

	ch <- msg
}

// Close marks the bus closed and closes every subscriber channel
func (b *bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}

func (b *bus) unsubscribe(ch chan Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[ch]; !ok {
		return
	}

	delete(b.subs, ch)
	close(ch)
}

func formatData(data any) string {
	switch d := data.(type) {
	case BuildStarted:
		return fmt.Sprintf("{root: %s}", d.Root)
	case BuildComplete:
		return fmt.Sprintf("{root: %s, projects: %d, documents: %d, took: %s}", d.Root, d.Projects, d.Documents, d.Duration)
	case BuildFailed:
		return fmt.Sprintf("{root: %s, error: %v}", d.Root, d.Error)
	case WatchStarted:
		return fmt.Sprintf("{root: %s}", d.Root)
	case WatchStopped:
		return fmt.Sprintf("{root: %s}", d.Root)
	case ChangeApplied:
		return fmt.Sprintf("{path: %s, op: %s, status: %s}", d.Path, d.Op, d.Status)
	case RootDisposed:
		return fmt.Sprintf("{root: %s}", d.Root)
	case Signal:
		return fmt.Sprintf("{name: %s}", d.Name)
	default:
		return fmt.Sprintf("%+v", data)
	}
}

// NoOp returns a bus that swallows everything, for paths that run without
// messaging
func NoOp() Bus {
	return nopBus{}
}

type nopBus struct{}

// Subscribe returns a channel that stays silent and closes with ctx.
func (nopBus) Subscribe(ctx context.Context) <-chan Message {
	ch := make(chan Message)

	go func() {
		<-ctx.Done()
		close(ch)
	}()

	return ch
}

func (nopBus) Publish(Message) {}
func (nopBus) Close()          {}
