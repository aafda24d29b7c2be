// Package version exposes build information set at link time:
//
//	go build -ldflags "-X github.com/jackzampolin/distanbol/version.GitRelease=v0.1.0 ..."
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// GitRelease is the release tag
	GitRelease = "dev"
	// GitCommit is the commit hash
	GitCommit = ""
	// GitCommitDate is the commit date
	GitCommitDate = ""
	// GoInfo is the Go version and platform used for the build
	GoInfo = fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
)

func init() {
	if GitCommit != "" {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			GitCommit = s.Value
		case "vcs.time":
			if GitCommitDate == "" {
				GitCommitDate = s.Value
			}
		}
	}
}
