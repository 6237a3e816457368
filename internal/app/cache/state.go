package cache

import (
	"context"

	"github.com/looplab/fsm"

	"lens/internal/config/logger"
)

// FSM states
const (
	StateUninitialized = "uninitialized"
	StateBuilding      = "building"
	StateActive        = "active"
	StateTornDown      = "torndown"
)

// FSM events
const (
	eventBeginBuild     = "begin_build"
	eventBuildSucceeded = "build_succeeded"
	eventBuildFailed    = "build_failed"
	eventTearDown       = "tear_down"
)

// newEntryFSM creates the lifecycle state machine for one cache entry. A
// failed build falls back to uninitialized so the next request retries from
// scratch; torndown is final.
func newEntryFSM(root string, log logger.Logger) *fsm.FSM {
	return fsm.NewFSM(
		StateUninitialized,
		fsm.Events{
			{Name: eventBeginBuild, Src: []string{StateUninitialized}, Dst: StateBuilding},
			{Name: eventBuildSucceeded, Src: []string{StateBuilding}, Dst: StateActive},
			{Name: eventBuildFailed, Src: []string{StateBuilding}, Dst: StateUninitialized},
			{Name: eventTearDown, Src: []string{StateActive}, Dst: StateTornDown},
		},
		fsm.Callbacks{
			"after_event": func(ctx context.Context, e *fsm.Event) {
				log.Debug().Msgf("STATE %s: %s → %s (trigger: %s)", root, e.Src, e.Dst, e.Event)
			},
		},
	)
}
