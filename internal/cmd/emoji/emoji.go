// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

const (
	// Success represents successful completion of an operation.
	// Used for: fetched catalogs, cleared caches.
	Success = "✓"

	// Error represents failures.
	Error = "✗"

	// Warning represents non-critical issues, such as a missing catalog.
	Warning = "!"

	// Info represents informational messages.
	Info = "i"

	// Version drift symbols.

	// Older marks a declared version behind the Spring Boot managed one.
	Older = "↓"

	// Same marks a declared version equal to the managed one.
	Same = "="

	// Newer marks a declared version ahead of the managed one.
	Newer = "↑"
)
