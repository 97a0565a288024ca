package validation

import (
	"strings"
	"time"

	"gphotos-admin/internal/errors"

	"github.com/robfig/cron/v3"
)

// workers are scheduled by the backend with standard five-field cron
// expressions plus the @daily style descriptors
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// CronSchedule validates a required cron expression
func CronSchedule(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return errors.ValidationFailed("cron_schedule", expr, "cannot be empty")
	}
	return OptionalCronSchedule("cron_schedule", expr)
}

// OptionalCronSchedule validates a cron expression that may be left blank
func OptionalCronSchedule(field, expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	if _, err := cronParser.Parse(expr); err != nil {
		return errors.ValidationFailed(field, expr, err.Error())
	}
	return nil
}

// NextRuns returns the next n activation times after from
func NextRuns(expr string, from time.Time, n int) ([]time.Time, error) {
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return nil, errors.ValidationFailed("cron_schedule", expr, err.Error())
	}
	runs := make([]time.Time, 0, n)
	next := from
	for i := 0; i < n; i++ {
		next = sched.Next(next)
		if next.IsZero() {
			break
		}
		runs = append(runs, next)
	}
	return runs, nil
}
