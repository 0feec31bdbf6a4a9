package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/auto-dns/docker-discord-bot/internal/domain"
	"github.com/rs/zerolog"
)

const listFormat = "{{.Names}}|{{.Status}}"

// execCommandContext is a variable to allow mocking in tests
var execCommandContext = exec.CommandContext

// CLIRuntime shells out to a docker compatible CLI.
type CLIRuntime struct {
	engine string
	filter nameFilter
	logger zerolog.Logger
}

func NewCLIRuntime(engine, containerFilter string, logger zerolog.Logger) *CLIRuntime {
	return &CLIRuntime{
		engine: engine,
		filter: nameFilter(containerFilter),
		logger: logger,
	}
}

func (r *CLIRuntime) List(ctx context.Context, opts ListOptions) []domain.ContainerRecord {
	args := []string{"ps", "-a", "--format", listFormat}
	if opts.OnlyRunning {
		args = []string{"ps", "--format", listFormat}
	}

	out, err := r.run(ctx, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("engine", r.engine).Msg("Error fetching containers")
		return []domain.ContainerRecord{}
	}
	return filterRecords(parseListing(out), opts, r.filter)
}

func (r *CLIRuntime) Perform(ctx context.Context, action domain.Action, name string) (string, error) {
	if !action.IsValid() {
		return "", NewCommandError(action, name, fmt.Sprintf("unsupported action %q", action), nil)
	}
	out, err := r.run(ctx, string(action), name)
	if err != nil {
		var cmdErr *cliError
		if errors.As(err, &cmdErr) {
			return "", NewCommandError(action, name, cmdErr.stderr, cmdErr.cause)
		}
		return "", NewCommandError(action, name, "", err)
	}
	r.logger.Info().Str("action", string(action)).Str("container", name).Msg("Container action completed")
	return out, nil
}

type cliError struct {
	stderr string
	cause  error
}

func (e *cliError) Error() string {
	if e.stderr != "" {
		return fmt.Sprintf("%v: %s", e.cause, e.stderr)
	}
	return e.cause.Error()
}

func (e *cliError) Unwrap() error { return e.cause }

// run executes the engine and returns trimmed stdout. A non-zero exit yields a *cliError.
func (r *CLIRuntime) run(ctx context.Context, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := execCommandContext(ctx, r.engine, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug().Msgf("Running: %s %s", r.engine, strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &cliError{stderr: strings.TrimSpace(stderr.String()), cause: err}
		}
		return "", fmt.Errorf("running %s: %w", r.engine, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// parseListing splits "name|status" lines. Lines without a delimiter are skipped.
func parseListing(out string) []domain.ContainerRecord {
	records := []domain.ContainerRecord{}
	for _, line := range strings.Split(out, "\n") {
		name, status, ok := strings.Cut(line, "|")
		if !ok {
			continue
		}
		records = append(records, domain.ContainerRecord{
			Name:   strings.TrimSpace(name),
			Status: strings.TrimSpace(status),
		})
	}
	return records
}
