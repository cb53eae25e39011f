package bridge

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/cquiroz/lucuma-itc/internal/itctypes"
)

// StdioBridge talks to the legacy numeric calculator, modeled as an
// out-of-process sidecar, as a long-lived subprocess over stdin/stdout.
// Each request is one document written to stdin followed by a
// blank-line terminator; each response is one document read back the
// same way.
//
// A single in-flight exchange at a time is required for the framing
// below to stay aligned with the subprocess. StdioBridge holds a mutex
// for the length of each exchange call, but a call abandoned through its
// context releases the mutex while its read is still pending, so
// serializing calls is left to the scheduler.
type StdioBridge struct {
	mu      sync.Mutex
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	stdout  *bufio.Reader
	timeout time.Duration
	logger  *slog.Logger
}

// NewStdioBridge spawns command as a subprocess and wires its stdio
// pipes. The subprocess is expected to read one canonical document,
// terminated by a blank line, per exchange, and write one back the same
// way.
func NewStdioBridge(command string, timeout time.Duration, logger *slog.Logger) (*StdioBridge, error) {
	if logger == nil {
		logger = slog.Default()
	}
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return nil, fmt.Errorf("bridge: empty legacy calculator command")
	}
	cmd := exec.Command(parts[0], parts[1:]...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("bridge: stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("bridge: stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("bridge: start legacy calculator %q: %w", command, err)
	}

	logger.Info("legacy calculator subprocess started", "command", command, "pid", cmd.Process.Pid)

	return &StdioBridge{
		cmd:     cmd,
		stdin:   stdin,
		stdout:  bufio.NewReader(stdout),
		timeout: timeout,
		logger:  logger,
	}, nil
}

func (b *StdioBridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_ = b.stdin.Close()
	return b.cmd.Wait()
}

// exchange writes doc to the subprocess and reads one document back,
// holding b.mu until it returns. When ctx is done first it returns
// without waiting for the read, so callers must route through the
// scheduler (C2).
func (b *StdioBridge) exchange(ctx context.Context, doc string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	type result struct {
		resp string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		if _, err := io.WriteString(b.stdin, doc); err != nil {
			done <- result{err: fmt.Errorf("bridge: write request: %w", err)}
			return
		}
		if _, err := io.WriteString(b.stdin, "\n\n"); err != nil {
			done <- result{err: fmt.Errorf("bridge: write terminator: %w", err)}
			return
		}

		var out strings.Builder
		for {
			line, err := b.stdout.ReadString('\n')
			if err != nil {
				done <- result{err: fmt.Errorf("bridge: read response: %w", err)}
				return
			}
			if strings.TrimRight(line, "\r\n") == "" {
				break
			}
			out.WriteString(line)
		}
		done <- result{resp: out.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.resp, r.err
	}
}

func (b *StdioBridge) CalculateGraphs(ctx context.Context, req *itctypes.CalculationRequest) (*itctypes.GraphResult, error) {
	doc := EncodeRequest(req)
	resp, err := b.exchange(ctx, doc)
	if err != nil {
		return nil, err
	}
	data, errMsg, ok := parseResponse(resp)
	if !ok {
		if errMsg != "" {
			return nil, itctypes.NewUpstreamError(errMsg)
		}
		return nil, unknownResultError()
	}
	return parseGraphResult(data)
}

func (b *StdioBridge) CalculateExposureTime(ctx context.Context, req *itctypes.CalculationRequest) (*itctypes.ExposurePlan, error) {
	doc := EncodeRequest(req)
	resp, err := b.exchange(ctx, doc)
	if err != nil {
		return nil, err
	}
	data, errMsg, ok := parseResponse(resp)
	if !ok {
		if errMsg != "" {
			return nil, itctypes.NewUpstreamError(errMsg)
		}
		return nil, unknownResultError()
	}
	return parseExposurePlan(data)
}
