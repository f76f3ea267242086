package git

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	gitexecerrors "gitexec.dev/gitexec/internal/errors"
)

// DefaultBinary is the git executable used when none is configured
const DefaultBinary = "git"

// discardLogger is used when no logger has been injected
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// CommandRunner executes git subcommands against a fixed Location.
// Each call builds its own process environment and working directory, so a
// runner can be shared between goroutines.
type CommandRunner struct {
	binary   string
	location Location
	logger   *slog.Logger
	policy   ExitPolicy
	timeout  time.Duration
}

// RunnerOption configures a CommandRunner
type RunnerOption func(*CommandRunner)

// WithBinary sets the git executable
func WithBinary(binary string) RunnerOption {
	return func(r *CommandRunner) {
		if binary != "" {
			r.binary = binary
		}
	}
}

// WithLogger sets the logger receiving command lines (info) and output (debug)
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *CommandRunner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithExitPolicy replaces the exit-1 tolerance table
func WithExitPolicy(policy ExitPolicy) RunnerOption {
	return func(r *CommandRunner) {
		if policy != nil {
			r.policy = policy
		}
	}
}

// WithTimeout applies a timeout to calls whose context has no deadline.
// Zero means no timeout.
func WithTimeout(timeout time.Duration) RunnerOption {
	return func(r *CommandRunner) {
		r.timeout = timeout
	}
}

// NewCommandRunner creates a CommandRunner for the location. Relative paths
// in the location are made absolute so they stay valid once the child
// process runs in another directory.
func NewCommandRunner(loc Location, opts ...RunnerOption) *CommandRunner {
	r := &CommandRunner{
		binary:   DefaultBinary,
		location: absLocation(loc),
		logger:   discardLogger,
		policy:   DefaultExitPolicy(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Location returns the location the runner targets
func (r *CommandRunner) Location() Location {
	return r.location
}

// Logger returns the logger used by the runner
func (r *CommandRunner) Logger() *slog.Logger {
	return r.logger
}

// Binary returns the git executable name
func (r *CommandRunner) Binary() string {
	return r.binary
}

// execConfig holds per-call settings
type execConfig struct {
	useWorkingDir bool
	redirect      string
	stdin         io.Reader
	env           []string
}

// ExecOption configures a single Execute call
type ExecOption func(*execConfig)

// WithoutWorkingDir runs the command in the current process directory
// instead of the location's directory
func WithoutWorkingDir() ExecOption {
	return func(c *execConfig) {
		c.useWorkingDir = false
	}
}

// WithRedirect appends a shell fragment such as "> out.tar" or "| gzip > x".
// The fragment is not escaped; the command then runs through sh -c.
func WithRedirect(fragment string) ExecOption {
	return func(c *execConfig) {
		c.redirect = fragment
	}
}

// WithStdin feeds the reader to the child's standard input
func WithStdin(stdin io.Reader) ExecOption {
	return func(c *execConfig) {
		c.stdin = stdin
	}
}

// WithEnv adds KEY=VALUE pairs to the child environment
func WithEnv(kv ...string) ExecOption {
	return func(c *execConfig) {
		c.env = append(c.env, kv...)
	}
}

// Execute runs "git <subcommand> <args...>" and returns the combined
// stdout/stderr with one trailing newline removed.
func (r *CommandRunner) Execute(ctx context.Context, subcommand string, args []string, opts ...ExecOption) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cmd, line := r.command(ctx, subcommand, args, opts)

	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	r.logger.InfoContext(ctx, line)
	err := cmd.Run()
	output := strings.TrimSuffix(combined.String(), "\n")
	r.logger.DebugContext(ctx, output)

	return output, r.classify(ctx, subcommand, line, output, err)
}

// ExecuteLines runs the command and splits its output into lines. Empty
// output yields an empty slice.
func (r *CommandRunner) ExecuteLines(ctx context.Context, subcommand string, args []string, opts ...ExecOption) ([]string, error) {
	output, err := r.Execute(ctx, subcommand, args, opts...)
	if err != nil {
		return nil, err
	}
	return splitLines(output), nil
}

// Stream runs the command and hands its live stdout to consume instead of
// capturing it. Stderr is kept for the error report.
func (r *CommandRunner) Stream(ctx context.Context, subcommand string, args []string, consume func(io.Reader) error, opts ...ExecOption) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cmd, line := r.command(ctx, subcommand, args, opts)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return gitexecerrors.NewExecutionError(line, "", -1, err)
	}

	r.logger.InfoContext(ctx, line)
	if err := cmd.Start(); err != nil {
		return r.classify(ctx, subcommand, line, "", err)
	}

	consumeErr := consume(stdout)
	if consumeErr != nil {
		// drain so the child can exit
		_, _ = io.Copy(io.Discard, stdout)
	}
	waitErr := cmd.Wait()

	output := strings.TrimSuffix(stderr.String(), "\n")
	r.logger.DebugContext(ctx, output)
	if err := r.classify(ctx, subcommand, line, output, waitErr); err != nil {
		return err
	}
	return consumeErr
}

func (r *CommandRunner) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); !ok && r.timeout > 0 {
		return context.WithTimeout(ctx, r.timeout)
	}
	return ctx, func() {}
}

// command builds the exec.Cmd and the printable command line
func (r *CommandRunner) command(ctx context.Context, subcommand string, args []string, opts []ExecOption) (*exec.Cmd, string) {
	cfg := execConfig{useWorkingDir: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	line := CommandLine(r.binary, subcommand, args, cfg.redirect)

	var cmd *exec.Cmd
	if cfg.redirect != "" {
		// #nosec G204 -- every argument in line is escaped
		cmd = exec.CommandContext(ctx, "sh", "-c", line)
	} else {
		argv := make([]string, 0, len(args)+1)
		argv = append(argv, subcommand)
		argv = append(argv, args...)
		cmd = exec.CommandContext(ctx, r.binary, argv...)
	}

	if cfg.useWorkingDir {
		cmd.Dir = r.location.Dir()
	}
	cmd.Env = buildEnv(os.Environ(), r.location.environ(), cfg.env)
	if cfg.stdin != nil {
		cmd.Stdin = cfg.stdin
	}
	return cmd, line
}

// classify turns the process result into nil or a typed error
func (r *CommandRunner) classify(ctx context.Context, subcommand, line, output string, runErr error) error {
	if runErr == nil {
		return nil
	}

	var execErr *exec.Error
	if errors.As(runErr, &execErr) {
		return gitexecerrors.NewGitNotFoundError(r.binary, runErr)
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return gitexecerrors.NewExecutionError(line, output, -1, ctxErr)
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	if exitCode > 0 && r.policy.classify(subcommand, exitCode, output) {
		return nil
	}
	return gitexecerrors.NewExecutionError(line, output, exitCode, runErr)
}

// buildEnv layers the location overrides and extra pairs on top of base.
// Location variables that are empty are removed rather than inherited.
func buildEnv(base []string, location map[string]string, extra []string) []string {
	env := make([]string, 0, len(base)+len(location)+len(extra))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if _, overridden := location[key]; overridden {
			continue
		}
		env = append(env, kv)
	}
	for _, key := range []string{envGitDir, envWorkTree, envIndexFile} {
		if value := location[key]; value != "" {
			env = append(env, key+"="+value)
		}
	}
	return append(env, extra...)
}

// splitLines splits command output on newlines
func splitLines(output string) []string {
	if output == "" {
		return []string{}
	}
	return strings.Split(output, "\n")
}

func absLocation(loc Location) Location {
	abs := func(p string) string {
		if p == "" {
			return ""
		}
		if a, err := filepath.Abs(p); err == nil {
			return a
		}
		return p
	}
	return Location{
		GitDir:    abs(loc.GitDir),
		WorkTree:  abs(loc.WorkTree),
		IndexFile: abs(loc.IndexFile),
		Path:      abs(loc.Path),
	}
}
