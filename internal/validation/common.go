package validation

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gphotos-admin/internal/errors"
	"gphotos-admin/internal/types"
)

var (
	// containerIDRegex validates container names
	containerIDRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)

	// profileNameRegex validates backend profile identifiers used in API paths
	profileNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

	// displayNameRegex validates the free-form name given to a new profile
	displayNameRegex = regexp.MustCompile(`^[\p{L}\p{N} _-]+$`)
)

const (
	maxDisplayName = 50
	maxWorkerCount = 64
	maxUnixID      = 65535
)

var logLevels = []string{"debug", "info", "warning", "error"}

// ContainerID validates a container ID or name to prevent path injection
func ContainerID(id string) error {
	if id == "" {
		return errors.ValidationFailed("container_id", id, "cannot be empty")
	}
	if len(id) > 255 {
		return errors.ValidationFailed("container_id", id, "too long (max 255 characters)")
	}
	if !containerIDRegex.MatchString(id) {
		return errors.ValidationFailed("container_id", id, "must be a hex id or container name")
	}
	return nil
}

// ProfileName validates a profile identifier as returned by the backend
func ProfileName(name string) error {
	if name == "" {
		return errors.ValidationFailed("profile", name, "cannot be empty")
	}
	if !profileNameRegex.MatchString(name) {
		return errors.ValidationFailed("profile", name, "must be lowercase letters, digits, '-' or '_'")
	}
	return nil
}

// ProfileDisplayName validates the name typed into the create-profile form
func ProfileDisplayName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errors.ValidationFailed("name", name, "cannot be empty")
	}
	if len([]rune(trimmed)) > maxDisplayName {
		return errors.ValidationFailed("name", name, "too long (max 50 characters)")
	}
	if !displayNameRegex.MatchString(trimmed) {
		return errors.ValidationFailed("name", name, "may contain letters, digits, spaces, '-' and '_'")
	}
	return nil
}

// WorkerCount validates the number of parallel download workers
func WorkerCount(n int) error {
	if n < 1 || n > maxWorkerCount {
		return errors.ValidationFailed("worker_count", strconv.Itoa(n), "must be between 1 and 64")
	}
	return nil
}

// LogLevel validates a worker log level
func LogLevel(level string) error {
	for _, l := range logLevels {
		if strings.EqualFold(level, l) {
			return nil
		}
	}
	return errors.ValidationFailed("loglevel", level, "must be one of "+strings.Join(logLevels, ", "))
}

// LogLevels returns the accepted worker log levels
func LogLevels() []string {
	return append([]string(nil), logLevels...)
}

// Timezone validates an IANA zone name. Empty means the backend default.
func Timezone(tz string) error {
	if tz == "" {
		return nil
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return errors.ValidationFailed("timezone", tz, "unknown time zone")
	}
	return nil
}

// UnixID validates a puid/pgid value
func UnixID(field string, id int) error {
	if id < 0 || id > maxUnixID {
		return errors.ValidationFailed(field, strconv.Itoa(id), "must be between 0 and 65535")
	}
	return nil
}

// HTTPURL validates an optional http(s) URL
func HTTPURL(field, raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.ValidationFailed(field, raw, "must be an http or https URL")
	}
	return nil
}

// PhotoDir validates the container-side download directory
func PhotoDir(dir string) error {
	if dir == "" {
		return nil
	}
	if !filepath.IsAbs(dir) {
		return errors.ValidationFailed("photo_dir", dir, "must be an absolute path")
	}
	if strings.Contains(dir, "..") {
		return errors.ValidationFailed("photo_dir", dir, "path traversal detected")
	}
	return nil
}

// Configuration validates every field of a worker configuration and
// returns the first failure
func Configuration(cfg types.Configuration) error {
	checks := []func() error{
		func() error { return CronSchedule(cfg.CronSchedule) },
		func() error { return OptionalCronSchedule("restart_schedule", cfg.RestartSchedule) },
		func() error { return LogLevel(cfg.LogLevel) },
		func() error { return WorkerCount(int(cfg.WorkerCount)) },
		func() error { return Timezone(cfg.Timezone) },
		func() error { return PhotoDir(cfg.PhotoDir) },
		func() error { return UnixID("puid", int(cfg.PUID)) },
		func() error { return UnixID("pgid", int(cfg.PGID)) },
		func() error { return HTTPURL("healthcheck_url", cfg.HealthcheckURL) },
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}
