package errors

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// LogHandler writes one line per report to Out, or to stderr when Out is
// nil. It is the handler installed by default.
type LogHandler struct {
	// Verbose adds timestamps and stack traces.
	Verbose bool
	Out     io.Writer

	mu sync.Mutex
}

func (h *LogHandler) write(tag, msg string, at time.Time, stack string) {
	var sb strings.Builder
	sb.WriteString("[trellis " + tag + "] ")
	if h.Verbose && !at.IsZero() {
		sb.WriteString(at.Format("15:04:05.000") + " ")
	}
	sb.WriteString(msg + "\n")
	if h.Verbose && stack != "" {
		sb.WriteString("Stack trace:\n" + strings.TrimRight(stack, "\n") + "\n")
	}

	out := h.Out
	if out == nil {
		out = os.Stderr
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	io.WriteString(out, sb.String())
}

// HandleError logs err as "op [kind] widget=id: cause".
func (h *LogHandler) HandleError(err *TrellisError) {
	if err != nil {
		h.write("error", err.Error(), err.Timestamp, err.StackTrace)
	}
}

// HandlePanic logs a recovered panic.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err != nil {
		h.write("panic", err.Error(), err.Timestamp, err.StackTrace)
	}
}
