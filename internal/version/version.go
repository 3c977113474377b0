package version

import (
	"fmt"

	version "github.com/hashicorp/go-version"
)

// The version in the current branch
var Version = "0.3.0"

// If this is "" (empty string) then it means that it is a final release.
// Otherwise, this is a pre-release e.g. "dev", "beta", "rc1", etc.
var VersionMarker = "dev"

// PackageVersion is an instance of version.Version.
var PackageVersion *version.Version

// Packagename is the name of the command line tool.
const Packagename = "bcrypt-pbkdf"

func init() {
	PackageVersion = version.Must(version.NewVersion(String()))
}

// String returns the complete version string, including prerelease
func String() string {
	if VersionMarker != "" {
		return fmt.Sprintf("%s-%s", Version, VersionMarker)
	}

	return Version
}

// Prerelease reports whether this build is not a final release.
func Prerelease() bool {
	return PackageVersion.Prerelease() != ""
}
