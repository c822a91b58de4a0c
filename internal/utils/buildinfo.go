package utils

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const (
	// ModulePath is the import path of the pathtree module.
	ModulePath = "github.com/temirov/pathtree"

	unknownVersion       = "unknown"
	develVersion         = "(devel)"
	develVersionPrefix   = "devel+"
	revisionSettingKey   = "vcs.revision"
	modifiedSettingKey   = "vcs.modified"
	modifiedSuffix       = "-dirty"
	shortRevisionLength  = 12
	gitExecutable        = "git"
	gitDescribeCommand   = "describe"
	gitTagsArgument      = "--tags"
	gitExactArgument     = "--exact-match"
	gitLongArgument      = "--long"
	gitDirtyArgument     = "--dirty"
	trueSettingValue     = "true"
	emptyVersionFallback = ""
)

// Version is stamped at link time with
// -ldflags "-X github.com/temirov/pathtree/internal/utils.Version=v1.0.0".
var Version string

// GetApplicationVersion reports the pathtree version: the linker-stamped
// Version, then the module version recorded in the build info, then the VCS
// revision, then git describe run from the working tree.
func GetApplicationVersion() string {
	if Version != "" {
		return Version
	}
	if buildInfo, available := debug.ReadBuildInfo(); available {
		if version := versionFromBuildInfo(buildInfo); version != "" {
			return version
		}
	}
	if repositoryDirectory := findRepositoryRoot("."); repositoryDirectory != "" {
		if version := describeRepository(repositoryDirectory); version != "" {
			return version
		}
	}
	return unknownVersion
}

// versionFromBuildInfo finds the pathtree module in buildInfo, either as the
// main module or as a dependency, and falls back to the stamped revision.
func versionFromBuildInfo(buildInfo *debug.BuildInfo) string {
	if buildInfo == nil {
		return emptyVersionFallback
	}
	if buildInfo.Main.Path == ModulePath && isReleasedVersion(buildInfo.Main.Version) {
		return buildInfo.Main.Version
	}
	for _, dependency := range buildInfo.Deps {
		if dependency != nil && dependency.Path == ModulePath && isReleasedVersion(dependency.Version) {
			return dependency.Version
		}
	}
	if buildInfo.Main.Path != ModulePath {
		return emptyVersionFallback
	}

	var revision string
	var modified bool
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case revisionSettingKey:
			revision = setting.Value
		case modifiedSettingKey:
			modified = setting.Value == trueSettingValue
		}
	}
	if revision == "" {
		return emptyVersionFallback
	}
	if len(revision) > shortRevisionLength {
		revision = revision[:shortRevisionLength]
	}
	version := develVersionPrefix + revision
	if modified {
		version += modifiedSuffix
	}
	return version
}

func isReleasedVersion(version string) bool {
	return version != "" && version != develVersion
}

// describeRepository asks git for an exact tag, then for a long description.
func describeRepository(repositoryDirectory string) string {
	for _, arguments := range [][]string{
		{gitDescribeCommand, gitTagsArgument, gitExactArgument},
		{gitDescribeCommand, gitTagsArgument, gitLongArgument, gitDirtyArgument},
	} {
		// #nosec G204
		describeCommand := exec.Command(gitExecutable, arguments...)
		describeCommand.Dir = repositoryDirectory
		describeOutput, describeError := describeCommand.Output()
		if describeError == nil {
			if version := strings.TrimSpace(string(describeOutput)); version != "" {
				return version
			}
		}
	}
	return emptyVersionFallback
}

// findRepositoryRoot walks upward from startDirectory to the first directory
// holding a .git directory. It returns "" when none exists.
func findRepositoryRoot(startDirectory string) string {
	currentDirectory, absoluteError := filepath.Abs(startDirectory)
	if absoluteError != nil {
		return emptyVersionFallback
	}
	for {
		if information, statError := os.Stat(filepath.Join(currentDirectory, GitDirectoryName)); statError == nil && information.IsDir() {
			return currentDirectory
		}
		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			return emptyVersionFallback
		}
		currentDirectory = parentDirectory
	}
}
