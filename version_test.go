package wscanvas

import "testing"

func TestEmbeddedVersionParses(t *testing.T) {
	r, ok := ParseRelease(Version())
	if !ok {
		t.Fatalf("embedded version must be semver: got %q", Version())
	}
	if r.String() != Version() {
		t.Fatalf("round trip: got %q, want %q", r.String(), Version())
	}
	if got, want := Banner(), "wscanvas v"+Version(); got != want {
		t.Fatalf("banner: got %q, want %q", got, want)
	}
}

func TestParseRelease(t *testing.T) {
	cases := []struct {
		version string
		want    Release
		ok      bool
	}{
		{version: "0.1.0", want: Release{Minor: 1}, ok: true},
		{version: "1.2.3-alpha.1", want: Release{Major: 1, Minor: 2, Patch: 3, Pre: "alpha.1"}, ok: true},
		{version: "2.0.0+build.7", want: Release{Major: 2, Build: "build.7"}, ok: true},
		{version: "v1.2.3"},
		{version: "1.2"},
		{version: "01.2.3"},
	}
	for _, tc := range cases {
		got, ok := ParseRelease(tc.version)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseRelease(%q): got %+v/%v, want %+v/%v", tc.version, got, ok, tc.want, tc.ok)
		}
	}
}

func TestReleaseStable(t *testing.T) {
	cases := map[string]bool{"0.9.0": false, "1.0.0": true, "1.0.0-rc.1": false, "3.1.4+meta": true}
	for v, want := range cases {
		r, _ := ParseRelease(v)
		if got := r.Stable(); got != want {
			t.Fatalf("Stable(%s): got %v, want %v", v, got, want)
		}
	}
}
