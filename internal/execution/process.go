package execution

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"caserun/internal/domain"
	"caserun/internal/parser"
)

// processWaitDelay bounds how long Wait blocks on I/O after the process is killed
const processWaitDelay = 500 * time.Millisecond

// Process runs the candidate out of process. The program is started as
// "<Path> <Function>" with one JSON input record per line on stdin, and
// must print its result as JSON lines on stdout.
type Process struct {
	Path     string
	Function string
	Dir      string // Working directory, empty for the current one
}

// NewProcess creates a new Process candidate
func NewProcess(path, function string) *Process {
	return &Process{Path: path, Function: function}
}

// Call executes the program for a single case. Exceeding the context
// deadline kills the program and returns context.DeadlineExceeded.
func (p *Process) Call(ctx context.Context, args []domain.Record) (any, error) {
	var stdin bytes.Buffer
	enc := json.NewEncoder(&stdin)
	for i, arg := range args {
		if err := enc.Encode(arg); err != nil {
			return nil, fmt.Errorf("encode argument %d: %w", i+1, err)
		}
	}

	cmd := exec.CommandContext(ctx, p.Path, p.Function)
	cmd.Stdin = &stdin
	cmd.Dir = p.Dir
	cmd.WaitDelay = processWaitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && msg != "" {
			return nil, fmt.Errorf("%s exited with code %d: %s", p.Path, exitErr.ExitCode(), msg)
		}
		return nil, fmt.Errorf("run %s: %w", p.Path, err)
	}

	records, err := parser.NewLineParser().ParseReader(p.Path+" stdout", &stdout)
	if err != nil {
		return nil, err
	}

	switch len(records) {
	case 0:
		return nil, fmt.Errorf("%s produced no output", p.Path)
	case 1:
		return records[0], nil
	default:
		return Tuple(records), nil
	}
}
