// Package layerkit provides the version information for layerkit.
package layerkit

// Version is the current version of layerkit.
const Version = "0.1.0"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}
