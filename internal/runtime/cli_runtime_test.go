package runtime

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/auto-dns/docker-discord-bot/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	execCommandContext = mockExecCommandContext
}

func mockExecCommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	cs := []string{"-test.run=TestHelperProcess", "--", name}
	cs = append(cs, args...)
	cmd := exec.CommandContext(ctx, os.Args[0], cs...)
	cmd.Env = []string{"GO_WANT_HELPER_PROCESS=1"}
	return cmd
}

// TestHelperProcess impersonates the container engine.
// "docker" behaves normally, "broken" fails every call.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}
	if len(args) < 2 {
		fmt.Fprintf(os.Stderr, "No command\n")
		os.Exit(2)
	}

	engine, sub, rest := args[0], args[1], args[2:]
	if engine == "broken" {
		fmt.Fprintf(os.Stderr, "Cannot connect to the Docker daemon at unix:///var/run/docker.sock\n")
		os.Exit(1)
	}

	switch sub {
	case "ps":
		all := len(rest) > 0 && rest[0] == "-a"
		fmt.Println("web|Up 3 hours")
		fmt.Println("fs25-server|UP 2 minutes")
		if all {
			fmt.Println("db|Exited (0) 2 hours ago")
			fmt.Println("fs25-backup|Created")
			fmt.Println("garbage line without delimiter")
		}
		os.Exit(0)
	case "start", "stop", "restart":
		if len(rest) == 1 && rest[0] == "missing" {
			fmt.Fprintf(os.Stderr, "Error response from daemon: No such container: missing\n")
			os.Exit(1)
		}
		fmt.Printf("  %s\n", rest[0])
		os.Exit(0)
	}

	fmt.Fprintf(os.Stderr, "unknown command %s\n", strings.Join(args, " "))
	os.Exit(2)
}

func names(records []domain.ContainerRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func TestCLIRuntime_List(t *testing.T) {
	ctx := context.Background()

	t.Run("all containers", func(t *testing.T) {
		r := NewCLIRuntime("docker", "", zerolog.Nop())
		got := r.List(ctx, ListOptions{})
		assert.Equal(t, []string{"web", "fs25-server", "db", "fs25-backup"}, names(got))
		assert.Equal(t, "Exited (0) 2 hours ago", got[2].Status)
	})

	t.Run("only running omits -a", func(t *testing.T) {
		r := NewCLIRuntime("docker", "", zerolog.Nop())
		got := r.List(ctx, ListOptions{OnlyRunning: true})
		assert.Equal(t, []string{"web", "fs25-server"}, names(got))
	})

	t.Run("only stopped drops up statuses in any case", func(t *testing.T) {
		r := NewCLIRuntime("docker", "", zerolog.Nop())
		got := r.List(ctx, ListOptions{OnlyStopped: true})
		assert.Equal(t, []string{"db", "fs25-backup"}, names(got))
	})

	t.Run("glob filter", func(t *testing.T) {
		r := NewCLIRuntime("docker", "fs25*", zerolog.Nop())
		got := r.List(ctx, ListOptions{})
		assert.Equal(t, []string{"fs25-server", "fs25-backup"}, names(got))
	})

	t.Run("failure returns empty", func(t *testing.T) {
		r := NewCLIRuntime("broken", "", zerolog.Nop())
		got := r.List(ctx, ListOptions{})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestCLIRuntime_Perform(t *testing.T) {
	ctx := context.Background()
	r := NewCLIRuntime("docker", "", zerolog.Nop())

	t.Run("success returns trimmed stdout", func(t *testing.T) {
		out, err := r.Perform(ctx, domain.ActionRestart, "web")
		require.NoError(t, err)
		assert.Equal(t, "web", out)
	})

	t.Run("non-zero exit carries stderr", func(t *testing.T) {
		_, err := r.Perform(ctx, domain.ActionStart, "missing")
		require.Error(t, err)

		var cmdErr *CommandError
		require.True(t, errors.As(err, &cmdErr))
		assert.Equal(t, "Error response from daemon: No such container: missing", cmdErr.Stderr)
		assert.Equal(t, "Error response from daemon: No such container: missing", err.Error())
		assert.Equal(t, domain.ActionStart, cmdErr.Action)

		var exitErr *exec.ExitError
		assert.True(t, errors.As(err, &exitErr))
	})

	t.Run("unsupported action never runs the engine", func(t *testing.T) {
		_, err := NewCLIRuntime("broken", "", zerolog.Nop()).Perform(ctx, domain.Action("rm"), "web")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unsupported action "rm"`)
	})
}

func TestCLIRuntime_ListFailureDoesNotAffectActions(t *testing.T) {
	ctx := context.Background()

	broken := NewCLIRuntime("broken", "", zerolog.Nop())
	assert.Empty(t, broken.List(ctx, ListOptions{OnlyRunning: true}))

	r := NewCLIRuntime("docker", "", zerolog.Nop())
	out, err := r.Perform(ctx, domain.ActionStop, "web")
	require.NoError(t, err)
	assert.Equal(t, "web", out)
	assert.Len(t, r.List(ctx, ListOptions{}), 4)
}

func TestParseListing(t *testing.T) {
	got := parseListing("web|Up 3 hours\ndb|Exited (0) 2 hours ago\n\nodd|status|with pipe")
	assert.Equal(t, []domain.ContainerRecord{
		{Name: "web", Status: "Up 3 hours"},
		{Name: "db", Status: "Exited (0) 2 hours ago"},
		{Name: "odd", Status: "status|with pipe"},
	}, got)
	assert.Empty(t, parseListing(""))
}
