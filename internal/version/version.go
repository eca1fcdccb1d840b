// Package version exposes the driver's build/version metadata, backing
// VersionInfo. It is embedded as YAML rather than Go string literals,
// keeping declarative metadata in a small descriptor alongside the Go
// source that reads it.
package version

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed version.yaml
var raw []byte

// Info is the decoded contents of version.yaml.
type Info struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Major       int    `yaml:"major"`
	Minor       int    `yaml:"minor"`
	Patch       int    `yaml:"patch"`
	ODBCVersion string `yaml:"odbcVersion"`
}

// Load parses the embedded version descriptor. It panics on a decode
// failure: a malformed version.yaml is a build-time defect, not something a
// driver client can recover from at runtime.
func Load() Info {
	var info Info
	if err := yaml.Unmarshal(raw, &info); err != nil {
		panic(fmt.Sprintf("version: invalid embedded version.yaml: %v", err))
	}
	return info
}

// String renders the familiar "name major.minor.patch" form, the shape
// VersionInfo reports to an ODBC client.
func (i Info) String() string {
	return fmt.Sprintf("%s %d.%d.%d", i.Name, i.Major, i.Minor, i.Patch)
}
