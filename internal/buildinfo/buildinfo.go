// Package buildinfo carries the values stamped in by the release build:
//
//	go build -ldflags "-X gfxport/internal/buildinfo.Version=v0.3.0 \
//	    -X gfxport/internal/buildinfo.Commit=$(git rev-parse --short HEAD)"
package buildinfo

import "strings"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func known(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && s != "dev" && s != "unknown"
}

// Short returns the release version, else the commit, else "dev". It is
// what the window title and the CLI --version flag show.
func Short() string {
	switch {
	case known(Version):
		return Version
	case known(Commit):
		return Commit
	default:
		return "dev"
	}
}

// Long appends the commit and date to Short when they were stamped.
func Long() string {
	var b strings.Builder
	b.WriteString(Short())
	if known(Commit) && Commit != Short() {
		b.WriteString(" (" + Commit + ")")
	}
	if known(Date) {
		b.WriteString(" built " + Date)
	}
	return b.String()
}
