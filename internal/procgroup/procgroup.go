// Package procgroup starts commands in their own process group so the whole
// ffmpeg tree can be signalled at once.
package procgroup

import (
	"os/exec"
	"time"

	"github.com/bachtran02/go-live-streamer/internal/metrics"
)

// Terminate sends SIGTERM to the group of cmd, waits up to grace for waitCh
// and escalates to SIGKILL. It always drains waitCh and returns its result.
// Safe to call with a nil or unstarted command.
func Terminate(cmd *exec.Cmd, waitCh <-chan error, grace time.Duration) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}

	if err := terminate(cmd); err != nil {
		metrics.IncProcTerminate("SIGTERM", "error")
	} else {
		metrics.IncProcTerminate("SIGTERM", "sent")
	}

	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case err := <-waitCh:
		return err
	case <-timer.C:
		if err := kill(cmd); err != nil {
			metrics.IncProcTerminate("SIGKILL", "error")
		} else {
			metrics.IncProcTerminate("SIGKILL", "sent")
		}
		return <-waitCh
	}
}
