package ui

import (
	"fmt"
	"strconv"
	"strings"

	"gphotos-admin/internal/dashboard"
	"gphotos-admin/internal/errors"
	"gphotos-admin/internal/types"
	"gphotos-admin/internal/ui/components"
	"gphotos-admin/internal/validation"
)

// fieldValidators check single inputs before the whole configuration is
// parsed on submit
var fieldValidators = map[string]func(string) error{
	"cron_schedule": validation.CronSchedule,
	"restart_schedule": func(v string) error {
		return validation.OptionalCronSchedule("restart_schedule", v)
	},
	"loglevel": validation.LogLevel,
	"timezone": validation.Timezone,
	"worker_count": func(v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.ValidationFailed("worker_count", v, "must be a number")
		}
		return validation.WorkerCount(n)
	},
}

func newCreateForm(width int) components.FormModel {
	fields := []components.FormField{{
		Key:         "name",
		Label:       "Profile name",
		Placeholder: "Family photos",
		Required:    true,
		Validator:   validation.ProfileDisplayName,
	}}
	return components.NewForm(createFormID, fields,
		components.WithFormTitle("New profile"),
		components.WithFormDescription("A sync worker identity. You will sign in to Google Photos next."),
		components.WithFormWidth(formWidth(width)),
	)
}

func newConfigForm(profile string, editMode bool, values map[string]string, width int) components.FormModel {
	fields := make([]components.FormField, 0, len(dashboard.ConfigFields))
	for _, f := range dashboard.ConfigFields {
		field := components.FormField{
			Key:         f.Key,
			Label:       f.Label,
			Placeholder: f.Placeholder,
			Default:     values[f.Key],
			Required:    f.Key == "cron_schedule",
			Validator:   fieldValidators[f.Key],
		}
		switch f.Kind {
		case dashboard.BoolField:
			field.Placeholder = "true/false"
			field.Validator = validBool(f.Key)
		case dashboard.ChoiceField:
			field.Placeholder = strings.Join(f.Choices, "/")
		case dashboard.NumberField:
			if field.Validator == nil {
				field.Validator = validNumber(f.Key)
			}
		}
		fields = append(fields, field)
	}

	title := fmt.Sprintf("Configure %s", profile)
	if editMode {
		title = fmt.Sprintf("Edit %s", profile)
	}
	return components.NewForm(configFormID, fields,
		components.WithFormTitle(title),
		components.WithFormWidth(formWidth(width)),
	)
}

func validBool(key string) func(string) error {
	return func(v string) error {
		if _, err := types.ParseBool(v); err != nil {
			return errors.ValidationFailed(key, v, "must be true or false")
		}
		return nil
	}
}

func validNumber(key string) func(string) error {
	return func(v string) error {
		if _, err := strconv.Atoi(strings.TrimSpace(v)); err != nil {
			return errors.ValidationFailed(key, v, "must be a number")
		}
		return nil
	}
}

func formWidth(width int) int {
	return min(max(width-12, 30), 72)
}
