// Package version carries build information for the repotrust binary.
//
// The values are injected at link time, see the Makefile:
//
//	go build -ldflags "-X github.com/luochenglcs/repotrust/version.Revision=$(git rev-parse --short HEAD)" ./cmd/repotrust
package version

import (
	"fmt"
	"runtime"
)

var (
	// Package is the import path the binary was built from.
	Package = "github.com/luochenglcs/repotrust"

	// Version is the release number; untagged builds keep the -dev suffix.
	Version = "v0.1.0-dev"

	// Revision is the VCS revision, empty when built outside the Makefile.
	Revision = ""
)

// String is Version, with the revision appended when known.
func String() string {
	if Revision == "" {
		return Version
	}
	return Version + " (" + Revision + ")"
}

// Full is the --version output: package, version and toolchain.
func Full() string {
	return fmt.Sprintf("%s %s\n  Go: %s\n  Platform: %s/%s",
		Package, String(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
