package folio

import (
	"time"

	"go.uber.org/zap"
)

// debugStats holds per-frame timing and command counts.
// Only populated when Stage.debug is true.
type debugStats struct {
	traverseTime time.Duration
	submitTime   time.Duration
	commandCount int
}

// debugLogEvery throttles frame stats to one line per second at 60 TPS.
const debugLogEvery = 60

// debugLog writes frame stats at Debug level.
func (s *Stage) debugLog(stats debugStats) {
	if !s.debug || s.frame%debugLogEvery != 0 {
		return
	}
	s.log.Debug("frame",
		zap.Uint64("frame", s.frame),
		zap.Duration("traverse", stats.traverseTime),
		zap.Duration("submit", stats.submitTime),
		zap.Duration("total", stats.traverseTime+stats.submitTime),
		zap.Int("commands", stats.commandCount),
		zap.Int("animations", s.animator.Len()),
		zap.Int("bindings", len(s.viewport.bindings)),
	)
	s.debugCheckTree(s.document)
	s.debugCheckTree(s.overlay)
}

const (
	debugMaxTreeDepth  = 32
	debugMaxChildCount = 1000
)

// debugCheckTree warns when the tree under root is deeper than
// debugMaxTreeDepth or a node has more than debugMaxChildCount children.
// It returns the number of warnings logged.
func (s *Stage) debugCheckTree(root *Node) int {
	return s.debugWalk(root, 1)
}

func (s *Stage) debugWalk(n *Node, depth int) int {
	warnings := 0
	if depth == debugMaxTreeDepth+1 {
		s.log.Warn("tree depth exceeds threshold",
			zap.String("node", n.Name), zap.Int("threshold", debugMaxTreeDepth))
		warnings++
	}
	if len(n.children) > debugMaxChildCount {
		s.log.Warn("node has too many children",
			zap.String("node", n.Name), zap.Int("children", len(n.children)),
			zap.Int("threshold", debugMaxChildCount))
		warnings++
	}
	for _, c := range n.children {
		warnings += s.debugWalk(c, depth+1)
	}
	return warnings
}
