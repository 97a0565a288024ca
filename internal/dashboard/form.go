package dashboard

import (
	"strconv"
	"strings"

	"gphotos-admin/internal/errors"
	"gphotos-admin/internal/types"
	"gphotos-admin/internal/validation"
)

// FieldKind tells a front-end which input to draw
type FieldKind int

const (
	TextField FieldKind = iota
	NumberField
	BoolField
	ChoiceField
)

// ConfigField describes one input of the configuration editor
type ConfigField struct {
	Key         string
	Label       string
	Kind        FieldKind
	Placeholder string
	Choices     []string
}

// ConfigFields lists the configuration editor inputs in display order
var ConfigFields = []ConfigField{
	{Key: "cron_schedule", Label: "Sync schedule (cron)", Placeholder: "0 2 * * *"},
	{Key: "run_on_startup", Label: "Run on startup", Kind: BoolField},
	{Key: "loglevel", Label: "Log level", Kind: ChoiceField, Choices: validation.LogLevels()},
	{Key: "worker_count", Label: "Workers", Kind: NumberField, Placeholder: "6"},
	{Key: "albums", Label: "Albums (comma separated, empty for all)"},
	{Key: "timezone", Label: "Timezone", Placeholder: "UTC"},
	{Key: "photo_dir", Label: "Photo directory", Placeholder: "/photos"},
	{Key: "puid", Label: "PUID", Kind: NumberField, Placeholder: "1000"},
	{Key: "pgid", Label: "PGID", Kind: NumberField, Placeholder: "1000"},
	{Key: "restart_schedule", Label: "Restart schedule (cron, optional)"},
	{Key: "healthcheck_url", Label: "Healthcheck URL (optional)"},
	{Key: "legacy_mode", Label: "Legacy mode", Kind: BoolField},
}

// ConfigValues flattens a configuration into editor values
func ConfigValues(cfg types.Configuration) map[string]string {
	return map[string]string{
		"cron_schedule":    cfg.CronSchedule,
		"run_on_startup":   strconv.FormatBool(bool(cfg.RunOnStartup)),
		"loglevel":         cfg.LogLevel,
		"worker_count":     strconv.Itoa(int(cfg.WorkerCount)),
		"albums":           cfg.Albums,
		"timezone":         cfg.Timezone,
		"photo_dir":        cfg.PhotoDir,
		"puid":             strconv.Itoa(int(cfg.PUID)),
		"pgid":             strconv.Itoa(int(cfg.PGID)),
		"restart_schedule": cfg.RestartSchedule,
		"healthcheck_url":  cfg.HealthcheckURL,
		"legacy_mode":      strconv.FormatBool(bool(cfg.LegacyMode)),
	}
}

// ParseConfig builds a configuration from editor values and validates it.
// Missing keys keep the stock defaults.
func ParseConfig(values map[string]string) (types.Configuration, error) {
	cfg := types.DefaultConfiguration()
	get := func(key string) (string, bool) {
		v, ok := values[key]
		return strings.TrimSpace(v), ok
	}

	if v, ok := get("cron_schedule"); ok {
		cfg.CronSchedule = v
	}
	if v, ok := get("loglevel"); ok && v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := get("albums"); ok {
		cfg.Albums = v
	}
	if v, ok := get("timezone"); ok && v != "" {
		cfg.Timezone = v
	}
	if v, ok := get("photo_dir"); ok {
		cfg.PhotoDir = v
	}
	if v, ok := get("restart_schedule"); ok {
		cfg.RestartSchedule = v
	}
	if v, ok := get("healthcheck_url"); ok {
		cfg.HealthcheckURL = v
	}

	ints := []struct {
		key string
		dst *types.FlexInt
	}{
		{"worker_count", &cfg.WorkerCount},
		{"puid", &cfg.PUID},
		{"pgid", &cfg.PGID},
	}
	for _, f := range ints {
		key, dst := f.key, f.dst
		v, ok := get(key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, errors.ValidationFailed(key, v, "must be a whole number")
		}
		*dst = types.FlexInt(n)
	}

	bools := []struct {
		key string
		dst *types.FlexBool
	}{
		{"run_on_startup", &cfg.RunOnStartup},
		{"legacy_mode", &cfg.LegacyMode},
	}
	for _, f := range bools {
		key, dst := f.key, f.dst
		v, ok := get(key)
		if !ok {
			continue
		}
		if v == "" {
			*dst = false
			continue
		}
		b, err := types.ParseBool(v)
		if err != nil {
			return cfg, errors.ValidationFailed(key, v, "must be true or false")
		}
		*dst = types.FlexBool(b)
	}

	if err := validation.Configuration(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
