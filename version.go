// Package wscanvas is a virtualized, editable worksheet grid for Bubble Tea
// programs. The component lives in package grid; this package only carries
// the release version.
package wscanvas

import (
	_ "embed"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?(?:\+([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?$`)

// Release is a parsed SemVer 2.0.0 version.
type Release struct {
	Major, Minor, Patch int
	Pre                 string
	Build               string
}

// ParseRelease parses v, which must not carry a leading "v".
func ParseRelease(v string) (Release, bool) {
	m := semverRE.FindStringSubmatch(strings.TrimSpace(v))
	if m == nil {
		return Release{}, false
	}
	var r Release
	r.Major, _ = strconv.Atoi(m[1])
	r.Minor, _ = strconv.Atoi(m[2])
	r.Patch, _ = strconv.Atoi(m[3])
	r.Pre, r.Build = m[4], m[5]
	return r, true
}

func (r Release) String() string {
	s := fmt.Sprintf("%d.%d.%d", r.Major, r.Minor, r.Patch)
	if r.Pre != "" {
		s += "-" + r.Pre
	}
	if r.Build != "" {
		s += "+" + r.Build
	}
	return s
}

// Stable reports whether r is a release without a pre-release part at major
// version 1 or later.
func (r Release) Stable() bool { return r.Major > 0 && r.Pre == "" }

// Version returns the embedded release version without the leading "v".
func Version() string { return strings.TrimSpace(embeddedVersion) }

// Banner returns the one-line program identification used by the demo and
// in log headers, e.g. "wscanvas v0.1.0".
func Banner() string {
	v := Version()
	if _, ok := ParseRelease(v); !ok {
		return "wscanvas (devel)"
	}
	return "wscanvas v" + v
}
