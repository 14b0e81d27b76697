// Package execute provides external process invocation for matrix pipelines.
//
// SECURITY NOTE: The commands executed by this package come from the matrix
// file (matrix.yaml) or the user's global config (~/.runmatrix/config.yaml).
// These are treated as trusted input: a matrix file declares build, install,
// and test commands the same way a Makefile or CI workflow does - anyone who
// can edit it can already run arbitrary code. The shell invocation is
// intentional so commands can use pipes, redirects, and env expansion.
package execute

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"runtime"
	"sort"
)

// CommandRunner defines the interface for executing shell commands.
// The orchestrator observes only the exit code and captured output streams,
// never internal process state. Implementations must apply env as the
// complete child environment for this invocation only - a shared global
// environment table is never mutated.
type CommandRunner interface {
	// Run executes a shell command and returns its captured output.
	Run(ctx context.Context, workDir, command string, env []string) (stdout, stderr string, exitCode int, err error)
}

// DefaultCommandRunner implements CommandRunner using os/exec.
// The zero value uses the platform default shell; set Shell to override.
type DefaultCommandRunner struct {
	// Shell overrides the shell binary ("sh" on Unix, "cmd" on Windows).
	Shell string
}

// shellInvocation returns the shell binary and flag for the host platform.
func (r *DefaultCommandRunner) shellInvocation() (shell, flag string) {
	if r.Shell != "" {
		if r.Shell == "cmd" {
			return "cmd", "/c"
		}
		return r.Shell, "-c"
	}
	if runtime.GOOS == "windows" {
		return "cmd", "/c"
	}
	return "sh", "-c"
}

// Run executes a shell command with the given per-invocation environment.
func (r *DefaultCommandRunner) Run(ctx context.Context, workDir, command string, env []string) (stdout, stderr string, exitCode int, err error) {
	shell, flag := r.shellInvocation()
	cmd := exec.CommandContext(ctx, shell, flag, command)
	cmd.Dir = workDir
	cmd.Env = env

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err = cmd.Run()
	stdout = outBuf.String()
	stderr = errBuf.String()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = 1
		}
	}

	return stdout, stderr, exitCode, err
}

// MergedEnv builds the child process environment: the inherited process
// environment with the descriptor's env_overrides appended on top.
// Override wins on key collision because os/exec gives later entries
// precedence. Overrides are appended in sorted key order so invocations
// are deterministic.
func MergedEnv(overrides map[string]string) []string {
	env := os.Environ()
	if len(overrides) == 0 {
		return env
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		env = append(env, k+"="+overrides[k])
	}
	return env
}

// Ensure DefaultCommandRunner implements CommandRunner.
var _ CommandRunner = (*DefaultCommandRunner)(nil)
