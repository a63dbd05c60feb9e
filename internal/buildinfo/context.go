// Package buildinfo contains build-time metadata separate from user
// configuration.
package buildinfo

// Context holds metadata injected at build time through linker flags. It is
// not user-configurable and stays out of the configuration system.
type Context struct {
	// Version holds the Git version tag from build
	Version string

	// BuildDate is the time when the binary was built
	BuildDate string
}

// GetVersion returns the build version string, or "unknown" when the binary
// was built without version injection.
func (c *Context) GetVersion() string {
	if c == nil || c.Version == "" {
		return "unknown"
	}
	return c.Version
}

// GetBuildDate returns the build date string, or "unknown" when absent.
func (c *Context) GetBuildDate() string {
	if c == nil || c.BuildDate == "" {
		return "unknown"
	}
	return c.BuildDate
}
