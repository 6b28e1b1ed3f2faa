// Package compat gates pollset on a minimum supported Go toolchain
// range using semantic versioning, the way Orizon's package manager
// resolves dependency constraints against semver.Constraints.
package compat

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// toolchainVersion turns runtime.Version() (e.g. "go1.24.3") into a
// semver string ("1.24.3"), since the compiler's own version string is
// not semver-formatted.
func toolchainVersion() (*semver.Version, error) {
	v := strings.TrimPrefix(runtime.Version(), "go")
	// Toolchain versions like "go1.24" lack a patch component; pad it so
	// semver.NewVersion accepts it.
	if strings.Count(v, ".") == 1 {
		v += ".0"
	}
	return semver.NewVersion(v)
}

// RequireHostPoll asserts that the running Go toolchain satisfies
// constraint (a standard semver constraint string, e.g. ">= 1.23.0"),
// which in turn determines whether the runtime has the iterator and
// generics support this package depends on (range-over-func, type
// parameters on Registry). Intended as a single startup-time check.
func RequireHostPoll(constraint string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("pollset/compat: invalid constraint %q: %w", constraint, err)
	}
	v, err := toolchainVersion()
	if err != nil {
		return fmt.Errorf("pollset/compat: unparsable toolchain version %q: %w", runtime.Version(), err)
	}
	if !c.Check(v) {
		return fmt.Errorf("pollset/compat: toolchain %s does not satisfy %q", v, constraint)
	}
	return nil
}
