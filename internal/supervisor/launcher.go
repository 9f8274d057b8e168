package supervisor

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
	"syscall"
	"time"
)

// ExitStatus tells a normal exit from a crash or signal.
type ExitStatus int

const (
	NormalExit ExitStatus = iota
	CrashExit
)

func (s ExitStatus) String() string {
	if s == CrashExit {
		return "crashed"
	}
	return "normal"
}

// Exit describes how a player process ended.
type Exit struct {
	Code   int
	Status ExitStatus
	Err    error
}

// Process is a running player.
type Process interface {
	PID() int
	// Terminate asks the process to exit.
	Terminate() error
	Kill() error
	// Wait blocks until the process has exited or timeout elapsed and reports
	// whether it exited.
	Wait(timeout time.Duration) bool
}

// Launcher starts player processes. onExit is invoked exactly once, from any
// goroutine, after the process ends.
type Launcher interface {
	Launch(path string, args []string, onExit func(Exit)) (Process, error)
}

// DefaultStartTimeout bounds how long Launch waits for the process to start.
const DefaultStartTimeout = 3000 * time.Millisecond

var errStartTimeout = errors.New("process did not start in time")

// ExecLauncher runs players with os/exec.
type ExecLauncher struct {
	StartTimeout time.Duration
	// Env is appended to the current environment.
	Env []string
}

func (l ExecLauncher) Launch(path string, args []string, onExit func(Exit)) (Process, error) {
	timeout := l.StartTimeout
	if timeout <= 0 {
		timeout = DefaultStartTimeout
	}
	cmd := exec.Command(path, args...)
	if len(l.Env) > 0 {
		cmd.Env = append(os.Environ(), l.Env...)
	}
	started := make(chan error, 1)
	go func() { started <- cmd.Start() }()
	select {
	case err := <-started:
		if err != nil {
			return nil, launchFailedError{path: path, err: err}
		}
	case <-time.After(timeout):
		go func() {
			if err := <-started; err == nil {
				_ = cmd.Process.Kill()
				_ = cmd.Wait()
			}
		}()
		return nil, launchFailedError{path: path, err: errStartTimeout}
	}
	p := &execProcess{cmd: cmd, done: make(chan struct{})}
	go func() {
		err := cmd.Wait()
		exit := exitFromState(cmd.ProcessState, err)
		close(p.done)
		if onExit != nil {
			onExit(exit)
		}
	}()
	return p, nil
}

func exitFromState(ps *os.ProcessState, err error) Exit {
	if ps == nil {
		return Exit{Code: -1, Status: CrashExit, Err: err}
	}
	if ps.Exited() {
		return Exit{Code: ps.ExitCode(), Status: NormalExit}
	}
	return Exit{Code: ps.ExitCode(), Status: CrashExit, Err: err}
}

type execProcess struct {
	cmd  *exec.Cmd
	done chan struct{}
}

func (p *execProcess) PID() int { return p.cmd.Process.Pid }

func (p *execProcess) Terminate() error {
	if runtime.GOOS == "windows" {
		return p.cmd.Process.Kill()
	}
	return p.cmd.Process.Signal(syscall.SIGTERM)
}

func (p *execProcess) Kill() error { return p.cmd.Process.Kill() }

func (p *execProcess) Wait(timeout time.Duration) bool {
	select {
	case <-p.done:
		return true
	case <-time.After(timeout):
		return false
	}
}
