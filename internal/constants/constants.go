// Package constants defines application-wide constants to avoid magic numbers
package constants

import "time"

// Backend defaults
const (
	// DefaultServerURL is where the sync backend listens out of the box
	DefaultServerURL = "http://localhost:5000"

	// DefaultVNCURL is the noVNC page exposed while a profile is authenticating
	DefaultVNCURL = "http://localhost:6080/vnc.html"

	// DefaultProfile is the profile that cannot be deleted, edited or re-authenticated
	DefaultProfile = "default"

	// ContainerPrefix is the name prefix of every sync worker container
	ContainerPrefix = "gphotos-sync"
)

// Web dashboard
const (
	// DefaultWebListen is the default listen address for the browser dashboard
	DefaultWebListen = "127.0.0.1:8090"

	// DefaultServerShutdownTimeout is the default server graceful shutdown timeout
	DefaultServerShutdownTimeout = 10 * time.Second

	// DefaultServerReadTimeout is the default server read timeout
	DefaultServerReadTimeout = 10 * time.Second
)

// File System Permissions
const (
	// DirPermissions is the standard directory permissions
	DirPermissions = 0755

	// FilePermissions is the standard file permissions for config files
	FilePermissions = 0644
)

// HTTP Configuration
const (
	// DefaultHTTPClientTimeout is the default timeout for HTTP client requests
	DefaultHTTPClientTimeout = 30 * time.Second

	// MaxSSELineBytes bounds a single server-sent event line
	MaxSSELineBytes = 1 << 20

	// RequestIDHeader carries the per-request uuid sent to the backend
	RequestIDHeader = "X-Request-ID"
)

// Dashboard timing
const (
	// DefaultRefreshInterval drives the periodic re-fetch of listings
	DefaultRefreshInterval = 10 * time.Second

	// DefaultSettleDelay is waited after most mutating calls before re-fetching
	DefaultSettleDelay = 1000 * time.Millisecond

	// DefaultShortSettleDelay is waited after profile creation and compose writes
	DefaultShortSettleDelay = 500 * time.Millisecond

	// DefaultToastDuration is how long a notification stays visible
	DefaultToastDuration = 4 * time.Second
)

// Locale extraction
const (
	// DefaultInfoDelay is waited after opening the info panel
	DefaultInfoDelay = 2000 * time.Millisecond

	// DefaultFallbackLocale is used for day-month-year pages without a declared language
	DefaultFallbackLocale = "it-IT"

	// DefaultRuntimeLocale is reported when the environment declares no language
	DefaultRuntimeLocale = "en-US"
)

// Logging and Output Limits
const (
	// MaxLogLines caps the lines kept in a log viewer
	MaxLogLines = 5000

	// MaxErrorMessageLength is the maximum length for error messages before truncation
	MaxErrorMessageLength = 500
)
