package stillframe

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"
)

// globalDebug mirrors the most recently set Scene debug flag so that node
// and delivery operations (which lack a Scene pointer) can check it cheaply.
// Deliver reads it from worker goroutines, so it is atomic. Only valid with
// a single Scene; multiple Scenes with differing debug modes reflect
// whichever called SetDebugMode last.
var globalDebug atomic.Bool

func init() {
	globalDebug.Store(os.Getenv("STILLFRAME_DEBUG") != "")
}

// logf writes an unconditional diagnostic line to stderr.
func logf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[stillframe] "+format+"\n", args...)
}

// debugf writes a diagnostic line to stderr when debug mode is on.
func debugf(format string, args ...any) {
	if !globalDebug.Load() {
		return
	}
	logf(format, args...)
}

// frameStats holds per-frame timing and delivery metrics.
// Only populated when Scene.debug is true.
type frameStats struct {
	drainTime time.Duration
	drawTime  time.Duration
	applied   int
	dropped   int
	drawn     int
}

// debugLog prints frame stats to stderr. Frames where nothing was delivered
// or dropped are skipped to keep the output readable at 60 TPS.
func (s *Scene) debugLog(stats frameStats) {
	if !s.debug || (stats.applied == 0 && stats.dropped == 0) {
		return
	}
	logf("drain: %v | draw: %v | applied: %d | dropped: %d | image views drawn: %d",
		stats.drainTime, stats.drawTime, stats.applied, stats.dropped, stats.drawn)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Callers skip this entirely in release mode.
func debugCheckDisposed(n *Node, op string) {
	if n != nil && n.disposed {
		panic(fmt.Sprintf("stillframe debug: %s on disposed node %q (%s)", op, n.ID, n.Kind))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logf("warning: tree depth %d exceeds %d (node %q)", depth, debugMaxTreeDepth, n.ID)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if c := n.NumChildren(); c > debugMaxChildCount {
		logf("warning: node %q has %d children (threshold %d)", n.ID, c, debugMaxChildCount)
	}
}

// debugCheckDuplicateIDs warns about identifiers used more than once below
// root. FindByID resolves duplicates to the first match in traversal order,
// which is rarely what a layout author meant.
func debugCheckDuplicateIDs(root *Node) {
	seen := make(map[string]bool)
	root.Walk(func(n *Node) bool {
		if n.ID == "" {
			return true
		}
		if seen[n.ID] {
			logf("warning: duplicate node id %q; lookups return the first in traversal order", n.ID)
		}
		seen[n.ID] = true
		return true
	})
}
