package validation

import (
	"testing"
	"time"

	"gphotos-admin/internal/errors"
	"gphotos-admin/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainerID(t *testing.T) {
	assert.NoError(t, ContainerID("0123456789ab"))
	assert.NoError(t, ContainerID("gphotos-sync-profile1"))
	assert.Error(t, ContainerID(""))
	assert.Error(t, ContainerID("../etc"))
	assert.Error(t, ContainerID("a/b"))
}

func TestProfileName(t *testing.T) {
	assert.NoError(t, ProfileName("profile1"))
	assert.NoError(t, ProfileName("default"))
	assert.Error(t, ProfileName(""))
	assert.Error(t, ProfileName("Profile 1"))
	assert.Error(t, ProfileName("-x"))
}

func TestProfileDisplayName(t *testing.T) {
	assert.NoError(t, ProfileDisplayName("Family Photos"))
	assert.NoError(t, ProfileDisplayName("Foto_di-Nonna 2"))
	assert.Error(t, ProfileDisplayName("   "))
	assert.Error(t, ProfileDisplayName("bad/name"))

	long := make([]rune, 51)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, ProfileDisplayName(string(long)))
}

func TestCronSchedule(t *testing.T) {
	assert.NoError(t, CronSchedule("0 2 * * *"))
	assert.NoError(t, CronSchedule("@daily"))
	assert.Error(t, CronSchedule(""))
	assert.Error(t, CronSchedule("61 * * * *"))
	assert.NoError(t, OptionalCronSchedule("restart_schedule", ""))

	err := CronSchedule("not a cron")
	require.Error(t, err)
	assert.Equal(t, errors.ErrValidationFailed, errors.GetCode(err))
}

func TestNextRuns(t *testing.T) {
	from := time.Date(2025, 11, 13, 14, 0, 0, 0, time.UTC)
	runs, err := NextRuns("0 2 * * *", from, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, time.Date(2025, 11, 14, 2, 0, 0, 0, time.UTC), runs[0])
	assert.Equal(t, time.Date(2025, 11, 15, 2, 0, 0, 0, time.UTC), runs[1])
}

func TestConfiguration(t *testing.T) {
	cfg := types.DefaultConfiguration()
	cfg.PhotoDir = "/photos"
	assert.NoError(t, Configuration(cfg))

	tests := []struct {
		name  string
		field string
		mod   func(*types.Configuration)
	}{
		{"bad cron", "cron_schedule", func(c *types.Configuration) { c.CronSchedule = "x" }},
		{"bad level", "loglevel", func(c *types.Configuration) { c.LogLevel = "trace" }},
		{"zero workers", "worker_count", func(c *types.Configuration) { c.WorkerCount = 0 }},
		{"bad tz", "timezone", func(c *types.Configuration) { c.Timezone = "Mars/Olympus" }},
		{"relative dir", "photo_dir", func(c *types.Configuration) { c.PhotoDir = "photos" }},
		{"bad puid", "puid", func(c *types.Configuration) { c.PUID = -1 }},
		{"bad url", "healthcheck_url", func(c *types.Configuration) { c.HealthcheckURL = "ftp://x" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cfg
			tt.mod(&c)
			err := Configuration(c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "Field: "+tt.field)
		})
	}
}
