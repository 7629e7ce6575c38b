// Package buildinfo exposes version metadata stamped at build time.
//
// Release builds set the variables via ldflags:
//
//	go build -ldflags "\
//	  -X github.com/kritika1265/chartkit/pkg/buildinfo.Version=v1.0.0 \
//	  -X github.com/kritika1265/chartkit/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	  -X github.com/kritika1265/chartkit/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Unstamped builds report "dev".
package buildinfo

import "fmt"

var (
	// Version is the semantic version of the build.
	Version = "dev"

	// Commit is the git commit the build was produced from.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// String returns the build information in multi-line form for logs.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns cobra's --version output template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
