// Package version holds build metadata, set with -ldflags at release time:
//
//	go build -ldflags "-X calcpro/internal/version.Version=1.2.0" ./cmd/...
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "0.1.0"
	GitCommit = "development"
	BuildDate = "unknown"
)

// String returns a one-line summary of the build.
func String() string {
	return fmt.Sprintf("calcpro v%s (commit %s, built %s, %s %s/%s)",
		Version, GitCommit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
