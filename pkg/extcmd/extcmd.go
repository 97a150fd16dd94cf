// Package extcmd is a simple wrapper around os/exec.
package extcmd

import (
	"context"
	"io"
	"os/exec"
)

// Execute runs a command, optionally feeding forStdin to its stdin,
// and returns stdout and stderr as strings.
func Execute(ctx context.Context, forStdin *string, name string, arg ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, arg...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", "", err
	}
	defer stdout.Close()

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", "", err
	}
	defer stderr.Close()

	if forStdin != nil {
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return "", "", err
		}
		go func() {
			defer stdin.Close()
			io.WriteString(stdin, *forStdin)
		}()
	}

	if err := cmd.Start(); err != nil {
		return "", "", err
	}

	stdoutSlurp, _ := io.ReadAll(stdout)
	stderrSlurp, _ := io.ReadAll(stderr)

	if err := cmd.Wait(); err != nil {
		return string(stdoutSlurp), string(stderrSlurp), err
	}

	return string(stdoutSlurp), string(stderrSlurp), nil
}

// InPath reports whether an executable can be found in $PATH.
func InPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
