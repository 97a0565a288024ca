// Package types provides the view-models exchanged with the sync backend
package types

import "strings"

// Container status values reported by the backend
const (
	StatusRunning = "running"
	StatusStopped = "stopped"
	StatusExited  = "exited"
)

// Sync status values reported for a running worker
const (
	SyncIdle      = "idle"
	SyncSyncing   = "syncing"
	SyncCompleted = "completed"
)

// Container is a sync worker as listed by GET /api/containers
type Container struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	DisplayName  string     `json:"display_name,omitempty"`
	Profile      string     `json:"profile"`
	Status       string     `json:"status"`
	State        string     `json:"state,omitempty"`
	SyncStatus   string     `json:"sync_status,omitempty"`
	Created      string     `json:"created,omitempty"`
	NextRun      string     `json:"next_run,omitempty"`
	TimeUntil    string     `json:"time_until,omitempty"`
	CronSchedule string     `json:"cron_schedule,omitempty"`
	RunOnStartup FlexBool   `json:"run_on_startup"`
	LogLevel     string     `json:"loglevel,omitempty"`
	WorkerCount  FlexString `json:"worker_count,omitempty"`
}

// IsRunning reports whether the container status is running
func (c Container) IsRunning() bool {
	return strings.EqualFold(c.Status, StatusRunning)
}

// Title returns the display name, falling back to the container name
func (c Container) Title() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Name
}

// ShortID returns the first 12 characters of the id
func (c Container) ShortID() string {
	if len(c.ID) > 12 {
		return c.ID[:12]
	}
	return c.ID
}

// Stats are the aggregate counts from GET /api/stats
type Stats struct {
	Total   int `json:"total"`
	Running int `json:"running"`
	Stopped int `json:"stopped"`
}
