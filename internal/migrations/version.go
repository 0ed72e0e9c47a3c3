package migrations

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bctala/OPSIGHT/config"
)

// ParseVersion parses a version string like "v0.4" or "0.4" and returns it
// as a comparable number. Patch segments beyond major.minor are ignored.
func ParseVersion(versionStr string) (float64, error) {
	cleanVersion := strings.TrimPrefix(strings.TrimSpace(versionStr), "v")

	parts := strings.Split(cleanVersion, ".")
	if len(parts) == 0 || parts[0] == "" {
		return 0, fmt.Errorf("invalid version format: %s", versionStr)
	}
	if len(parts) > 1 {
		cleanVersion = parts[0] + "." + parts[1]
	}

	version, err := strconv.ParseFloat(cleanVersion, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid version: %s", versionStr)
	}

	return version, nil
}

// FormatVersion renders a version the way it is stored in the settings table
func FormatVersion(version float64) string {
	return strconv.FormatFloat(version, 'f', -1, 64)
}

// GetCurrentCodeVersion returns the version from config.VERSION
func GetCurrentCodeVersion() (float64, error) {
	return ParseVersion(config.VERSION)
}

// CompareVersions compares two version strings
// Returns: -1 if v1 < v2, 0 if v1 == v2, 1 if v1 > v2
func CompareVersions(v1, v2 string) (int, error) {
	version1, err := ParseVersion(v1)
	if err != nil {
		return 0, fmt.Errorf("failed to parse version %s: %w", v1, err)
	}

	version2, err := ParseVersion(v2)
	if err != nil {
		return 0, fmt.Errorf("failed to parse version %s: %w", v2, err)
	}

	if version1 < version2 {
		return -1, nil
	} else if version1 > version2 {
		return 1, nil
	}
	return 0, nil
}

// IsVersionSuperior checks if newVersion is superior to currentVersion
func IsVersionSuperior(currentVersion, newVersion string) (bool, error) {
	comparison, err := CompareVersions(currentVersion, newVersion)
	if err != nil {
		return false, err
	}
	return comparison < 0, nil
}
