// Package version holds opshell build information.
// Values are injected at build time through -ldflags.
package version

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Build information that can be set at compile time via -ldflags
var (
	// Version is the semantic version of the application
	Version = "0.1.0"

	// GitCommit is the git commit hash when the binary was built
	GitCommit = "unknown"

	// BuildDate is the date when the binary was built
	BuildDate = "unknown"
)

const unknown = "unknown"

// Info represents comprehensive version information
type Info struct {
	Version   string          `json:"version"`
	GitCommit string          `json:"gitCommit"`
	BuildDate string          `json:"buildDate"`
	GoVersion string          `json:"goVersion"`
	Platform  string          `json:"platform"`
	SemVer    *semver.Version `json:"-"`
}

// String returns the bare version shown in menus and status screens.
func String() string {
	return Version
}

// BuildMetadata returns the part of the version after "+".
func BuildMetadata() string {
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return ""
	}
	return sv.Metadata()
}

// CommitCount parses the leading commit count out of metadata like "0.1.0+42.abc1234".
func CommitCount() int {
	metadata := BuildMetadata()
	if metadata == "" {
		return 0
	}
	var count int
	if _, err := fmt.Sscanf(strings.Split(metadata, ".")[0], "%d", &count); err != nil || count < 0 {
		return 0
	}
	return count
}

// GetInfo returns comprehensive version information
func GetInfo() (*Info, error) {
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return nil, fmt.Errorf("invalid semantic version '%s': %w", Version, err)
	}

	return &Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		SemVer:    sv,
	}, nil
}

// Formatted returns the one-line version banner, e.g. "opshell v0.1.0, commit abc1234".
func Formatted() string {
	info, err := GetInfo()
	if err != nil {
		return fmt.Sprintf("opshell v%s (invalid version)", Version)
	}

	parts := []string{fmt.Sprintf("opshell v%s", info.Version)}
	if info.GitCommit != unknown && info.GitCommit != "" {
		short := info.GitCommit
		if len(short) > 7 {
			short = short[:7]
		}
		parts = append(parts, "commit "+short)
	}
	if info.BuildDate != unknown && info.BuildDate != "" {
		parts = append(parts, "built "+info.BuildDate)
	}
	return strings.Join(parts, ", ")
}

// Detailed returns multi-line version information for `opshell version --detailed`.
func Detailed() string {
	info, err := GetInfo()
	if err != nil {
		return fmt.Sprintf("opshell v%s (error: %v)", Version, err)
	}

	buildDate := info.BuildDate
	if bt, err := BuildTime(); err == nil {
		buildDate = bt.UTC().Format("2006-01-02 15:04 MST")
	}
	lines := []string{
		fmt.Sprintf("opshell v%s", info.Version),
		"Build: " + Kind(),
		"Git Commit: " + info.GitCommit,
		"Build Date: " + buildDate,
	}
	if count := CommitCount(); count > 0 {
		lines = append(lines, fmt.Sprintf("Commit Count: %d", count))
	}
	if meta := BuildMetadata(); meta != "" {
		lines = append(lines, "Build Metadata: "+meta)
	}
	lines = append(lines, "Go Version: "+info.GoVersion, "Platform: "+info.Platform)
	return strings.Join(lines, "\n")
}

// IsPrerelease returns true if the current version is a prerelease
func IsPrerelease() bool {
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return false
	}
	return sv.Prerelease() != ""
}

// IsDevelopment returns true if this appears to be a development build
func IsDevelopment() bool {
	return GitCommit == unknown || BuildDate == unknown
}

// Kind names the build for status screens: "development", "prerelease" or "release".
func Kind() string {
	switch {
	case IsDevelopment():
		return "development"
	case IsPrerelease():
		return "prerelease"
	}
	return "release"
}

// Satisfies reports whether Version meets a constraint such as ">= 0.1.0".
// Discovery uses it to skip plugins that require a newer shell.
func Satisfies(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("invalid constraint '%s': %w", constraint, err)
	}
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return false, fmt.Errorf("invalid semantic version '%s': %w", Version, err)
	}
	return c.Check(sv), nil
}

// BuildTime returns BuildDate as a time.Time when it parses.
func BuildTime() (time.Time, error) {
	if BuildDate == unknown || BuildDate == "" {
		return time.Time{}, fmt.Errorf("build date not available")
	}

	formats := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, BuildDate); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse build date '%s'", BuildDate)
}
