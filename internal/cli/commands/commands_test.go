package commands

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gphotos-admin/internal/config"
	"gphotos-admin/internal/errors"
	"gphotos-admin/internal/testutil"
	"gphotos-admin/internal/types"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const (
	defaultID = "abc123def4567890"
	familyID  = "fed987cba6543210"
)

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestEnv(t *testing.T) (*Env, *testutil.FakeBackend) {
	t.Helper()
	backend := testutil.NewFakeBackend(t)
	backend.Containers = []types.Container{
		{ID: defaultID, Name: "gphotos-sync-default", Profile: "default", Status: types.StatusRunning, CronSchedule: "0 2 * * *"},
		{ID: familyID, Name: "gphotos-sync-profile9", DisplayName: "Family", Profile: "profile9", Status: types.StatusExited},
	}
	backend.Profiles = []types.Profile{
		{Name: "profile1", DisplayName: "Work", Authenticated: true},
		{Name: "profile9", DisplayName: "Family", HasCompose: true, Authenticated: true},
	}
	backend.Configs["profile9"] = types.DefaultConfiguration()

	cfg := config.Default()
	cfg.Server.URL = backend.URL()
	cfg.Dashboard.ShortSettleDelay = config.D(time.Millisecond)

	env := &Env{
		Config: cfg,
		In:     strings.NewReader(""),
		Now:    func() time.Time { return fixedNow },
	}
	return env, backend
}

// run executes cmds under a throwaway root that loads env like the real one
func run(t *testing.T, env *Env, cmds []*cobra.Command, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{
		Use:           "gphotos-admin",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[SkipLoad] == "true" {
				return nil
			}
			return env.Load()
		},
	}
	root.AddCommand(cmds...)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func containers(env *Env) []*cobra.Command {
	group := &cobra.Command{Use: "containers"}
	group.AddCommand(ContainerCommands(env)...)
	return []*cobra.Command{group}
}

func profiles(env *Env) []*cobra.Command {
	group := &cobra.Command{Use: "profiles"}
	group.AddCommand(ProfileCommands(env)...)
	return []*cobra.Command{group}
}

func TestContainersList(t *testing.T) {
	env, _ := newTestEnv(t)

	t.Run("table", func(t *testing.T) {
		out, err := run(t, env, containers(env), "containers", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "ID")
		assert.Contains(t, out, "abc123def456")
		assert.NotContains(t, out, defaultID)
		assert.Contains(t, out, "Family")
		assert.Contains(t, out, "0 2 * * *")
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, env, containers(env), "containers", "list", "-o", "json")
		require.NoError(t, err)
		var got []types.Container
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		require.Len(t, got, 2)
		assert.Equal(t, familyID, got[1].ID)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := run(t, env, containers(env), "containers", "list", "-o", "xml")
		assert.True(t, errors.HasCode(err, errors.ErrInvalidInput))
	})
}

func TestContainersStats(t *testing.T) {
	env, _ := newTestEnv(t)
	out, err := run(t, env, containers(env), "containers", "stats")
	require.NoError(t, err)
	assert.Equal(t, "Total: 2  Running: 1  Stopped: 1\n", out)
}

func TestContainerAction(t *testing.T) {
	env, backend := newTestEnv(t)

	out, err := run(t, env, containers(env), "containers", "start", familyID)
	require.NoError(t, err)
	assert.Equal(t, "✓ Started\n", out)
	assert.Equal(t, 1, backend.CallCount("POST", "/api/container/"+familyID+"/start"))
}

func TestContainerAction_Failure(t *testing.T) {
	env, backend := newTestEnv(t)
	backend.Fail("POST", "/api/container/"+familyID+"/restart", 500, `{"error":"docker daemon unavailable"}`)

	out, err := run(t, env, containers(env), "containers", "restart", "-y", familyID)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrActionFailed))
	assert.Contains(t, out, "✗ Restart failed")
	assert.Contains(t, out, "docker daemon unavailable")
	assert.Equal(t, 5, ExitCode(err))
}

func TestContainerAction_RestartAsksFirst(t *testing.T) {
	env, backend := newTestEnv(t)
	restartPath := "/api/container/" + familyID + "/restart"

	env.In = strings.NewReader("n\n")
	out, err := run(t, env, containers(env), "containers", "restart", familyID)
	require.NoError(t, err)
	assert.Contains(t, out, "Restart "+familyID+"?")
	assert.Contains(t, out, "Cancelled")
	assert.Zero(t, backend.CallCount("POST", restartPath))

	env.In = strings.NewReader("y\n")
	out, err = run(t, env, containers(env), "containers", "restart", familyID)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Restarted")
	assert.Equal(t, 1, backend.CallCount("POST", restartPath))
}

func TestContainerAction_InvalidID(t *testing.T) {
	env, backend := newTestEnv(t)
	_, err := run(t, env, containers(env), "containers", "stop", "../etc")
	assert.True(t, errors.IsValidation(err))
	assert.Empty(t, backend.Requests())
}

func TestContainerLogs(t *testing.T) {
	env, backend := newTestEnv(t)
	backend.Logs[defaultID] = []string{"first line", "second line"}

	t.Run("snapshot", func(t *testing.T) {
		out, err := run(t, env, containers(env), "containers", "logs", defaultID, "--raw")
		require.NoError(t, err)
		assert.Equal(t, "first line\nsecond line\n", out)
	})

	t.Run("download", func(t *testing.T) {
		dir := t.TempDir()
		out, err := run(t, env, containers(env), "containers", "logs", defaultID, "--download", "--dir", dir)
		require.NoError(t, err)

		path := filepath.Join(dir, defaultID+"-logs-2024-03-10T12-00-00Z.txt")
		assert.Contains(t, out, "Wrote 2 lines to "+path)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "first line\nsecond line\n", string(data))
	})

	t.Run("unknown container", func(t *testing.T) {
		_, err := run(t, env, containers(env), "containers", "logs", "0000000000ff")
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestProfilesList(t *testing.T) {
	env, _ := newTestEnv(t)
	// profile9 has a worker so only profile1 is listed
	out, err := run(t, env, profiles(env), "profiles", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "profile1")
	assert.Contains(t, out, "Work")
	assert.NotContains(t, out, "profile9")
	assert.Contains(t, out, "1 profile")
}

func TestProfilesCreate(t *testing.T) {
	env, backend := newTestEnv(t)
	out, err := run(t, env, profiles(env), "profiles", "create", "Holiday")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Created profile2 (#2)")
	assert.Contains(t, out, "Next: gphotos-admin auth start profile2")

	reqs := backend.Requests()
	require.Len(t, reqs, 1)
	assert.JSONEq(t, `{"name":"Holiday"}`, reqs[0].Body)
}

func TestProfilesDelete(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		env, backend := newTestEnv(t)
		env.In = strings.NewReader("n\n")
		out, err := run(t, env, profiles(env), "profiles", "delete", "profile9")
		require.NoError(t, err)
		assert.Contains(t, out, `Delete profile "profile9"?`)
		assert.Contains(t, out, "Cancelled")
		assert.Zero(t, backend.CallCount("DELETE", "/api/delete-profile/profile9"))
	})

	t.Run("confirmed", func(t *testing.T) {
		env, backend := newTestEnv(t)
		env.In = strings.NewReader("yes\n")
		out, err := run(t, env, profiles(env), "profiles", "delete", "profile9")
		require.NoError(t, err)
		assert.Contains(t, out, "✓ Profile deleted")
		assert.Contains(t, out, "  - Removed container gphotos-sync-profile9")
		assert.Equal(t, 1, backend.CallCount("DELETE", "/api/delete-profile/profile9"))
	})

	t.Run("partial", func(t *testing.T) {
		env, backend := newTestEnv(t)
		backend.PartialDelete = true
		out, err := run(t, env, profiles(env), "profiles", "delete", "profile9", "-y")
		require.NoError(t, err)
		assert.Contains(t, out, "! Delete completed with errors")
	})

	t.Run("default profile is refused", func(t *testing.T) {
		env, backend := newTestEnv(t)
		_, err := run(t, env, profiles(env), "profiles", "delete", "default", "-y")
		assert.True(t, errors.HasCode(err, errors.ErrInvalidInput))
		assert.Empty(t, backend.Requests())
	})
}

func TestProfilesPurge(t *testing.T) {
	env, backend := newTestEnv(t)
	out, err := run(t, env, profiles(env), "profiles", "purge", "profile1", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Profile files removed")
	assert.Equal(t, 1, backend.CallCount("DELETE", "/api/delete-profile-files/profile1"))
}

func TestProfilesCheckAuth(t *testing.T) {
	env, _ := newTestEnv(t)
	out, err := run(t, env, profiles(env), "profiles", "check-auth", "profile1")
	require.NoError(t, err)
	assert.Equal(t, "profile1: authenticated\n", out)
}

func TestProfileConfigGet(t *testing.T) {
	env, _ := newTestEnv(t)
	out, err := run(t, env, profiles(env), "profiles", "config", "get", "profile9")
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "0 2 * * *", got["cron_schedule"])
	assert.Equal(t, "UTC", got["timezone"])

	_, err = run(t, env, profiles(env), "profiles", "config", "get", "profile1")
	assert.True(t, errors.IsNotFound(err))
}

func TestProfileConfigSet(t *testing.T) {
	write := func(t *testing.T, name, content string) string {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("merges over the current configuration", func(t *testing.T) {
		env, backend := newTestEnv(t)
		file := write(t, "profile.yaml", "cron_schedule: \"30 4 * * *\"\nphoto_dir: /photos/family\n")

		out, err := run(t, env, profiles(env), "profiles", "config", "set", "profile9", "-f", file)
		require.NoError(t, err)
		assert.Contains(t, out, "✓ Configuration saved")
		assert.Equal(t, "30 4 * * *", backend.Configs["profile9"].CronSchedule)
		assert.Equal(t, "/photos/family", backend.Configs["profile9"].PhotoDir)
		assert.Equal(t, "UTC", backend.Configs["profile9"].Timezone)
		assert.Zero(t, backend.CallCount("POST", "/api/recreate-profile/profile9"))
	})

	t.Run("recreate", func(t *testing.T) {
		env, backend := newTestEnv(t)
		file := write(t, "profile.toml", "worker_count = 2\n")

		out, err := run(t, env, profiles(env), "profiles", "config", "set", "profile9", "-f", file, "--recreate")
		require.NoError(t, err)
		assert.Contains(t, out, "✓ Container recreated")
		assert.EqualValues(t, 2, backend.Configs["profile9"].WorkerCount)
	})

	t.Run("start a new profile", func(t *testing.T) {
		env, backend := newTestEnv(t)
		file := write(t, "profile.json", `{"photo_dir": "/photos/work"}`)

		out, err := run(t, env, profiles(env), "profiles", "config", "set", "profile1", "-f", file, "--start")
		require.NoError(t, err)
		assert.Contains(t, out, "✓ Configuration saved")
		assert.Contains(t, out, "✓ Started")
		assert.Equal(t, "0 2 * * *", backend.Configs["profile1"].CronSchedule)
		assert.Equal(t, 1, backend.CallCount("POST", "/api/start-profile/profile1"))
	})

	t.Run("invalid schedule", func(t *testing.T) {
		env, backend := newTestEnv(t)
		file := write(t, "profile.yaml", "cron_schedule: every night\n")

		_, err := run(t, env, profiles(env), "profiles", "config", "set", "profile9", "-f", file)
		assert.True(t, errors.IsValidation(err))
		assert.Zero(t, backend.CallCount("POST", "/api/create-compose/profile9"))
	})

	t.Run("start and recreate together", func(t *testing.T) {
		env, _ := newTestEnv(t)
		file := write(t, "profile.yaml", "timezone: UTC\n")
		_, err := run(t, env, profiles(env), "profiles", "config", "set", "profile9", "-f", file, "--start", "--recreate")
		assert.Error(t, err)
	})
}

func TestAuth(t *testing.T) {
	env, backend := newTestEnv(t)
	var opened []string
	orig := openURL
	openURL = func(u string) error {
		opened = append(opened, u)
		return nil
	}
	t.Cleanup(func() { openURL = orig })

	out, err := run(t, env, AuthCommands(env), "start", "profile1", "--open")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Authentication started")
	assert.Contains(t, out, "Sign in at http://localhost:6080/vnc.html")
	assert.Equal(t, []string{"http://localhost:6080/vnc.html"}, opened)
	assert.Equal(t, "profile1", backend.AuthSession())

	out, err = run(t, env, AuthCommands(env), "stop")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Credentials saved")
	assert.Empty(t, backend.AuthSession())
}

func TestAuth_ReauthDefaultRefused(t *testing.T) {
	env, backend := newTestEnv(t)
	_, err := run(t, env, AuthCommands(env), "start", "default", "--reauth")
	assert.True(t, errors.HasCode(err, errors.ErrInvalidInput))
	assert.Empty(t, backend.Requests())
}

func TestBrowse(t *testing.T) {
	env, backend := newTestEnv(t)
	backend.Directories["/photos"] = []string{"family", "work"}
	backend.FileCounts["/photos"] = 12345

	out, err := run(t, env, []*cobra.Command{BrowseCommand(env)}, "browse", "/photos")
	require.NoError(t, err)
	assert.Equal(t, "/photos (12,345 files)\n  ../\n  family/\n  work/\n", out)
}

func TestLocaleExtract(t *testing.T) {
	env, _ := newTestEnv(t)
	page := filepath.Join(t.TempDir(), "photo.html")
	require.NoError(t, os.WriteFile(page, []byte(`<html lang="en"><body>
		<div aria-label="Photo - Nov 13, 2025, 2:32:41 PM"></div>
	</body></html>`), 0o644))

	out, err := run(t, env, LocaleCommands(env), "extract", "--file", page)
	require.NoError(t, err)
	assert.Contains(t, out, "Photo - Nov 13, 2025, 2:32:41 PM")
	assert.Contains(t, out, "DATE_FORMAT: en (month day, year)")
	assert.Contains(t, out, "DETECTED_LOCALE: en-US")

	out, err = run(t, env, LocaleCommands(env), "extract", "--file", page, "--json")
	require.NoError(t, err)
	var res map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "en-US", res["detected_locale"])

	_, err = run(t, env, LocaleCommands(env), "extract")
	assert.True(t, errors.HasCode(err, errors.ErrInvalidInput))
}

func TestLocaleMonths(t *testing.T) {
	env, _ := newTestEnv(t)
	out, err := run(t, env, LocaleCommands(env), "months", "de-DE")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Jan, Feb, März"))
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gphotos-admin", "config.toml")
	env := &Env{ConfigPath: path, ServerURL: "http://nas.local:5000"}

	out, err := run(t, env, ConfigCommands(env), "path")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	out, err = run(t, env, ConfigCommands(env), "init")
	require.NoError(t, err)
	assert.Equal(t, "Wrote "+path+"\n", out)

	_, err = run(t, env, ConfigCommands(env), "init")
	assert.True(t, errors.HasCode(err, errors.ErrConfigInvalid))

	_, err = run(t, env, ConfigCommands(env), "init", "--force")
	require.NoError(t, err)

	out, err = run(t, env, ConfigCommands(env), "show")
	require.NoError(t, err)
	assert.Contains(t, out, "# "+path)
	assert.Contains(t, out, "http://nas.local:5000")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, &Env{}, []*cobra.Command{VersionCommand()}, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "gphotos-admin dev ("))
}

func TestHandleError(t *testing.T) {
	assert.NoError(t, HandleError(nil))

	network := errors.NetworkConnectionError("http://localhost:5000", stderrors.New("connection refused"))
	err := HandleError(network)
	assert.Contains(t, err.Error(), "Tip: Check that the admin server is running")
	assert.True(t, errors.IsNetwork(err))
	assert.Equal(t, 4, ExitCode(err))

	notFound := errors.APIStatusError("GET", "/api/get-config/x", 404, "Configuration not found")
	assert.Contains(t, HandleError(notFound).Error(), "profiles list")
	assert.Equal(t, 3, ExitCode(notFound))

	plain := stderrors.New("boom")
	assert.Equal(t, plain, HandleError(plain))
	assert.Equal(t, 1, ExitCode(plain))

	var buf bytes.Buffer
	PrintError(&buf, errors.InvalidInput("xml", "table, json"))
	assert.True(t, strings.HasPrefix(buf.String(), "Error: "))
	assert.Contains(t, buf.String(), "--help")
}
