package pipeline

import (
	"strings"
	"sync"
)

// maxLineLen bounds a stored line. A longer unterminated line is flushed
// into the ring in maxLineLen pieces.
const maxLineLen = 4096

// LineRing keeps the last N lines written to it, used to attach ffmpeg's
// stderr tail to pipeline errors.
type LineRing struct {
	mu      sync.Mutex
	lines   []string
	head    int
	size    int
	partial string
}

func NewLineRing(capacity int) *LineRing {
	if capacity < 1 {
		capacity = 32
	}
	return &LineRing{
		lines: make([]string, capacity),
		size:  capacity,
	}
}

// Write implements io.Writer. Partial lines are held until their newline
// arrives.
func (r *LineRing) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	parts := strings.Split(r.partial+string(p), "\n")
	r.partial = parts[len(parts)-1]

	for _, line := range parts[:len(parts)-1] {
		r.push(strings.TrimRight(line, "\r"))
	}
	for len(r.partial) > maxLineLen {
		r.push(r.partial[:maxLineLen])
		r.partial = r.partial[maxLineLen:]
	}
	return len(p), nil
}

func (r *LineRing) push(line string) {
	if line == "" {
		return
	}
	if len(line) > maxLineLen {
		line = line[:maxLineLen]
	}
	r.lines[r.head] = line
	r.head = (r.head + 1) % r.size
}

// LastN returns up to n lines in chronological order, including a pending
// partial line.
func (r *LineRing) LastN(n int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ordered := make([]string, 0, r.size+1)
	for i := 0; i < r.size; i++ {
		if line := r.lines[(r.head+i)%r.size]; line != "" {
			ordered = append(ordered, line)
		}
	}
	if r.partial != "" {
		ordered = append(ordered, r.partial)
	}

	if len(ordered) <= n {
		return ordered
	}
	return ordered[len(ordered)-n:]
}
