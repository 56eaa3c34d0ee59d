package process

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/aretw0/plantrace/pkg/strips"
)

// EnvPrefix prefixes the environment variables handed to planner processes.
const EnvPrefix = "PLANTRACE_"

var (
	// ErrNoSourceFiles is returned for problems built in memory, which an
	// external planner cannot read.
	ErrNoSourceFiles = errors.New("problem has no source files")
	// ErrPlannerFailed is returned when the planner process exits with an error.
	ErrPlannerFailed = errors.New("planner process failed")
)

// Planner implements ports.Planner by running an external command.
type Planner struct {
	cfg    PlannerConfig
	logger *slog.Logger
}

// Option configures the planner.
type Option func(*Planner)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPlanner creates a planner for cfg.
func NewPlanner(cfg PlannerConfig, opts ...Option) *Planner {
	p := &Planner{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the configured planner name.
func (p *Planner) Name() string {
	return p.cfg.Name
}

// Plan runs the planner and resolves its output against problem.
// The process is killed when ctx is done.
func (p *Planner) Plan(ctx context.Context, problem *strips.Problem) ([]strips.Operator, error) {
	if problem.DomainFile == "" || problem.ProblemFile == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoSourceFiles, problem.Name)
	}

	dir, err := os.MkdirTemp("", "plantrace-plan-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create planner workdir: %w", err)
	}
	defer os.RemoveAll(dir)

	planPath := filepath.Join(dir, "plan")
	if p.cfg.PlanFile != "" {
		planPath = filepath.Join(dir, p.cfg.PlanFile)
	}
	domainFile, err := filepath.Abs(problem.DomainFile)
	if err != nil {
		return nil, err
	}
	problemFile, err := filepath.Abs(problem.ProblemFile)
	if err != nil {
		return nil, err
	}

	replacer := strings.NewReplacer("{domain}", domainFile, "{problem}", problemFile, "{plan}", planPath)
	args := make([]string, len(p.cfg.Args))
	for i, a := range p.cfg.Args {
		args[i] = replacer.Replace(a)
	}

	cmd := exec.CommandContext(ctx, p.cfg.Command, args...)
	cmd.Dir = dir
	if p.cfg.Dir != "" {
		cmd.Dir = p.cfg.Dir
	}
	env := []string{
		EnvPrefix + "DOMAIN=" + domainFile,
		EnvPrefix + "PROBLEM=" + problemFile,
		EnvPrefix + "PLAN=" + planPath,
	}
	for k, v := range p.cfg.Environment {
		env = append(env, k+"="+v)
	}
	cmd.Env = append(cmd.Environ(), env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	p.logger.Debug("Running Planner", "planner", p.cfg.Name, "command", p.cfg.Command, "args", args)
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %s: %v. Stderr: %s", ErrPlannerFailed, p.cfg.Name, err, strings.TrimSpace(stderr.String()))
	}

	output := stdout.Bytes()
	if p.cfg.PlanFile != "" {
		if output, err = os.ReadFile(planPath); err != nil {
			return nil, fmt.Errorf("%w: %s: no plan file: %v", ErrPlannerFailed, p.cfg.Name, err)
		}
	}

	plan, err := problem.ResolvePlan(PlanLines(output))
	if err != nil {
		return nil, fmt.Errorf("planner %s: %w", p.cfg.Name, err)
	}
	return plan, nil
}

// PlanLines extracts operator calls from planner output. Only lines starting
// with "(" are kept; ";" comment lines such as cost summaries are skipped.
func PlanLines(output []byte) []string {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(output))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "(") {
			lines = append(lines, line)
		}
	}
	return lines
}
