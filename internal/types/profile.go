package types

// Profile is a configured-but-not-running worker identity
type Profile struct {
	Name          string   `json:"name"`
	DisplayName   string   `json:"display_name,omitempty"`
	Number        FlexInt  `json:"number,omitempty"`
	HasCompose    FlexBool `json:"has_compose"`
	Authenticated FlexBool `json:"authenticated"`
}

// Title returns the display name, falling back to the profile name
func (p Profile) Title() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Name
}

// Configuration is the form-bound worker configuration that round-trips
// through get-config and create-compose
type Configuration struct {
	CronSchedule    string   `json:"cron_schedule" yaml:"cron_schedule" toml:"cron_schedule"`
	RunOnStartup    FlexBool `json:"run_on_startup" yaml:"run_on_startup" toml:"run_on_startup"`
	LogLevel        string   `json:"loglevel" yaml:"loglevel" toml:"loglevel"`
	WorkerCount     FlexInt  `json:"worker_count" yaml:"worker_count" toml:"worker_count"`
	Albums          string   `json:"albums" yaml:"albums" toml:"albums"`
	Timezone        string   `json:"timezone" yaml:"timezone" toml:"timezone"`
	PhotoDir        string   `json:"photo_dir" yaml:"photo_dir" toml:"photo_dir"`
	PUID            FlexInt  `json:"puid" yaml:"puid" toml:"puid"`
	PGID            FlexInt  `json:"pgid" yaml:"pgid" toml:"pgid"`
	RestartSchedule string   `json:"restart_schedule" yaml:"restart_schedule" toml:"restart_schedule"`
	HealthcheckURL  string   `json:"healthcheck_url" yaml:"healthcheck_url" toml:"healthcheck_url"`
	LegacyMode      FlexBool `json:"legacy_mode" yaml:"legacy_mode" toml:"legacy_mode"`
}

// DefaultConfiguration returns the values a new profile's form starts with
func DefaultConfiguration() Configuration {
	return Configuration{
		CronSchedule: "0 2 * * *",
		LogLevel:     "info",
		WorkerCount:  6,
		Timezone:     "UTC",
		PUID:         1000,
		PGID:         1000,
	}
}

// AuthStatus is the body of GET /api/check-auth/{name}
type AuthStatus struct {
	Authenticated FlexBool `json:"authenticated"`
	Profile       string   `json:"profile,omitempty"`
	Message       string   `json:"message,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// BrowseResult is the body of POST /api/browse-directories
type BrowseResult struct {
	CurrentPath string   `json:"current_path"`
	ParentPath  string   `json:"parent_path,omitempty"`
	Directories []string `json:"directories"`
	FilesCount  int      `json:"files_count"`
	Error       string   `json:"error,omitempty"`
}

// HasParent reports whether the picker can move up a level
func (b BrowseResult) HasParent() bool {
	return b.ParentPath != "" && b.ParentPath != b.CurrentPath
}

// LogsSnapshot is the body of GET /api/container/{id}/logs
type LogsSnapshot struct {
	Logs  string `json:"logs"`
	Error string `json:"error,omitempty"`
}
