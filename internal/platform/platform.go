package platform

import (
	"fmt"
	"runtime"
)

// SupportedOS represents an operating system with live sensor readers.
type SupportedOS string

const (
	Linux   SupportedOS = "linux"
	Windows SupportedOS = "windows"
)

// GetOS returns the current operating system
func GetOS() SupportedOS {
	return SupportedOS(runtime.GOOS)
}

// IsSupported reports whether live readers have a native backend here.
func IsSupported() bool {
	os := GetOS()
	return os == Linux || os == Windows
}

// ValidateSupport returns an error if live sensor data cannot be read on this OS.
// Fixture mode runs anywhere and does not call it.
func ValidateSupport() error {
	if !IsSupported() {
		return fmt.Errorf("live sensors unsupported on %s (supported: linux, windows)", runtime.GOOS)
	}
	return nil
}

// Describe is the platform block reported by /health.
func Describe() map[string]string {
	return map[string]string{
		"os":   runtime.GOOS,
		"arch": runtime.GOARCH,
	}
}
