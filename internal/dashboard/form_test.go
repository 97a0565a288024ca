package dashboard

import (
	"testing"

	"gphotos-admin/internal/errors"
	"gphotos-admin/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValues_RoundTrip(t *testing.T) {
	cfg := types.Configuration{
		CronSchedule:    "30 1 * * *",
		RunOnStartup:    true,
		LogLevel:        "debug",
		WorkerCount:     8,
		Albums:          "Family,Trips",
		Timezone:        "Europe/Rome",
		PhotoDir:        "/photos/family",
		PUID:            1001,
		PGID:            100,
		RestartSchedule: "0 5 * * 0",
		HealthcheckURL:  "https://hc-ping.com/abc",
		LegacyMode:      true,
	}

	values := ConfigValues(cfg)
	assert.Len(t, values, len(ConfigFields))
	for _, f := range ConfigFields {
		assert.Contains(t, values, f.Key)
	}

	parsed, err := ParseConfig(values)
	require.NoError(t, err)
	assert.Equal(t, cfg, parsed)
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig(map[string]string{"photo_dir": "/photos"})
	require.NoError(t, err)
	assert.Equal(t, "0 2 * * *", cfg.CronSchedule)
	assert.Equal(t, types.FlexInt(6), cfg.WorkerCount)
	assert.Equal(t, "/photos", cfg.PhotoDir)
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		field  string
	}{
		{name: "bad number", values: map[string]string{"worker_count": "six"}, field: "worker_count"},
		{name: "bad bool", values: map[string]string{"legacy_mode": "maybe"}, field: "legacy_mode"},
		{name: "bad cron", values: map[string]string{"cron_schedule": "every day"}, field: "cron"},
		{name: "out of range workers", values: map[string]string{"worker_count": "100"}, field: "worker_count"},
		{name: "relative photo dir", values: map[string]string{"photo_dir": "photos"}, field: "photo_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig(tt.values)
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
