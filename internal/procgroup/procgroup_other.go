//go:build !unix

package procgroup

import (
	"os"
	"os/exec"
)

func Set(cmd *exec.Cmd) {}

func terminate(cmd *exec.Cmd) error { return cmd.Process.Signal(os.Interrupt) }

func kill(cmd *exec.Cmd) error { return cmd.Process.Kill() }
