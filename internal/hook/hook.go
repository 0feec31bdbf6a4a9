// Package hook runs the optional pre-action script and scrapes its report lines.
package hook

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/auto-dns/docker-discord-bot/internal/config"
	"github.com/rs/zerolog"
)

const (
	countPrefix = "WEBHOOK_NBSPS_WRITTEN:"
	linePrefix  = "WEBHOOK_GAME_LINE:"
)

// execCommandContext is a variable to allow mocking in tests
var execCommandContext = exec.CommandContext

// Result holds the values reported by the script. Empty means not reported.
type Result struct {
	Count string
	Line  string
}

type Runner struct {
	enabled    bool
	scriptPath string
	logger     zerolog.Logger
}

func NewRunner(cfg config.HookConfig, logger zerolog.Logger) *Runner {
	return &Runner{
		enabled:    cfg.Enabled,
		scriptPath: cfg.ScriptPath,
		logger:     logger,
	}
}

func (r *Runner) Enabled() bool {
	return r.enabled
}

// Run invokes the script with the container name. It never fails; problems are
// logged and yield an empty Result.
func (r *Runner) Run(ctx context.Context, containerName string) Result {
	if !r.enabled {
		r.logger.Debug().Msg("Pre-action hook disabled")
		return Result{}
	}

	cmd := execCommandContext(ctx, r.scriptPath, containerName)
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			r.logger.Warn().Err(err).Str("container", containerName).Msg("Pre-action hook failed to run")
			return Result{}
		}
		r.logger.Warn().Err(err).Str("container", containerName).Msg("Pre-action hook exited with an error")
	}
	r.logger.Debug().Str("container", containerName).Msgf("Pre-action hook output:\n%s", out)

	return parseOutput(string(out))
}

func parseOutput(out string) Result {
	var res Result
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSuffix(line, "\r")
		switch {
		case strings.HasPrefix(line, countPrefix):
			res.Count = strings.TrimSpace(strings.TrimPrefix(line, countPrefix))
		case strings.HasPrefix(line, linePrefix):
			res.Line = strings.TrimSpace(strings.TrimPrefix(line, linePrefix))
		}
	}
	return res
}
