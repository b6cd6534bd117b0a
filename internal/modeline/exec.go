package modeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/arcadecab/cabcheck/internal/contract"
	"github.com/arcadecab/cabcheck/schema"
)

// ExecCalculator runs an external modeline calculator. The whole batch goes out as one
// JSON request on stdin and comes back as one JSON document on stdout.
type ExecCalculator struct {
	name    string
	args    []string
	timeout time.Duration
}

var _ contract.ModelineCalculator = &ExecCalculator{} // Compile-time check

// NewExecCalculator creates a calculator running the given program. A zero timeout
// uses contract.DefaultCalculatorTimeout.
func NewExecCalculator(name string, args []string, timeout time.Duration) *ExecCalculator {
	if timeout <= 0 {
		timeout = contract.DefaultCalculatorTimeout
	}
	return &ExecCalculator{name: name, args: args, timeout: timeout}
}

type calcGame struct {
	Name     string                  `json:"name"`
	Displays []schema.MachineDisplay `json:"displays"`
}

type calcRequest struct {
	Config schema.ModelineConfig `json:"config"`
	Games  []calcGame            `json:"games"`
}

type calcResponse struct {
	Results map[string]schema.ModelineCalculation `json:"results"`
}

// CalcModelineBulk implements the ModelineCalculator interface.
func (c *ExecCalculator) CalcModelineBulk(ctx context.Context, cfg schema.ModelineConfig, games []*schema.Game) (map[string]schema.ModelineCalculation, error) {
	if len(games) == 0 {
		return map[string]schema.ModelineCalculation{}, nil
	}

	req := calcRequest{Config: cfg, Games: make([]calcGame, 0, len(games))}
	for _, g := range games {
		cg := calcGame{Name: g.Name}
		if g.Machine != nil {
			cg.Displays = g.Machine.Displays
		}
		req.Games = append(req.Games, cg)
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode calculator request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(ctx, c.name, c.args...)
	cmd.Stdin = bytes.NewReader(payload)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("modeline calculator %q failed: %s", c.name, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("modeline calculator %q failed: %w. Ensure it is installed and available on your PATH", c.name, err)
	}

	var resp calcResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		return nil, fmt.Errorf("modeline calculator %q returned invalid JSON: %w", c.name, err)
	}
	slog.Debug("modeline calculator finished",
		"command", c.name, "games", len(games), "results", len(resp.Results), "duration", time.Since(start))

	if resp.Results == nil {
		resp.Results = map[string]schema.ModelineCalculation{}
	}
	return resp.Results, nil
}
