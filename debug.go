package alienkitty

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// frameStats accumulates per-frame timings while debug mode is on. They are
// flushed to stderr at most once per second.
type frameStats struct {
	flow      time.Duration
	scene     time.Duration
	composite time.Duration
	hitTests  int
	commands  int
	frames    int
	lastFlush float64

	// summary is the most recent flushed line. It survives the reset.
	summary string
}

// flush prints averaged stats when at least a second has passed since the
// previous flush. now is the frame time in seconds.
func (st *frameStats) flush(session string, now float64) {
	if now-st.lastFlush < 1 || st.frames == 0 {
		return
	}
	n := time.Duration(st.frames)
	summary := fmt.Sprintf("flow %v scene %v\ncomposite %v cmds %d hits %d",
		st.flow/n, st.scene/n, st.composite/n, st.commands/st.frames, st.hitTests)
	debugLogf(session, "%s", strings.ReplaceAll(summary, "\n", " | "))
	*st = frameStats{lastFlush: now, summary: summary}
}

// debugLogf prints a prefixed diagnostic line to stderr.
func debugLogf(session, format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[alienkitty] "+session+" "+format+"\n", args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("alienkitty debug: %s on disposed node %q", op, n.Name))
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
		_, _ = fmt.Fprintf(os.Stderr, "[alienkitty] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}
