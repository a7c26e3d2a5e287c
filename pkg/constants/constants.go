// Package constants provides shared constants used throughout bootdrift.
// This includes timeouts, file permissions, defaults for the catalog
// source and cache, and time formats.
package constants

import "time"

// Timeout constants
const (
	// DefaultHTTPTimeout is the standard timeout for requests to the docs site
	DefaultHTTPTimeout = 30 * time.Second

	// ShutdownTimeout bounds how long the CLI waits for cleanup on exit
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Cache constants
const (
	// DefaultCacheDir is where fetched catalogs are stored, relative to the working directory
	DefaultCacheDir = ".cache"

	// DefaultCacheTTL of zero means cached catalogs never expire.
	// Published release tables do not change.
	DefaultCacheTTL time.Duration = 0

	// MemoryCacheTTL is how long a catalog stays memoized in process
	MemoryCacheTTL = 15 * time.Minute

	// MemoryCacheCleanupInterval is how often expired memo entries are purged
	MemoryCacheCleanupInterval = 5 * time.Minute
)

// Catalog source constants
const (
	// DefaultDocsURLTemplate is the Spring Boot reference page listing managed
	// dependency versions. %s is replaced by the release tag.
	DefaultDocsURLTemplate = "https://docs.spring.io/spring-boot/docs/%s/reference/html/dependency-versions.html"

	// DocsSourceName identifies the docs site in errors and logs
	DocsSourceName = "spring-docs"

	// UserAgent is sent with every docs request
	UserAgent = "bootdrift"
)

// Spring Boot coordinates used to detect the framework version
const (
	BootGroup         = "org.springframework.boot"
	BootArtifact      = "spring-boot"
	BootStarterParent = "spring-boot-starter-parent"
	BootDependencies  = "spring-boot-dependencies"
	BootGradlePlugin  = "spring-boot-gradle-plugin"
	BootPluginID      = "org.springframework.boot"
)

// Format constants
const (
	// TimeFormatISO8601 is the ISO 8601 time format
	TimeFormatISO8601 = time.RFC3339

	// TimeFormatHuman is a human-readable time format
	TimeFormatHuman = "Jan 2, 2006 at 3:04pm MST"
)
