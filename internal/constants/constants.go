package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as session
	// creation and teardown.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits for the opt-in transient retry layer.
const (
	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// API paths.
const (
	// SessionPath is the cookie-mode session creation and teardown resource.
	SessionPath = "/rest/auth/1/session"

	// APIPathPrefix is the REST API v2 root.
	APIPathPrefix = "/rest/api/2"

	// AgilePathPrefix is the agile API root.
	AgilePathPrefix = "/rest/agile/1.0"
)
