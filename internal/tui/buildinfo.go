package tui

// BuildInfo holds build-time metadata shown in the page header.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Label returns a short "version (commit)" string, or "" for dev builds.
func (b BuildInfo) Label() string {
	if b.Version == "" || b.Version == "dev" {
		return ""
	}
	if len(b.Commit) >= 7 {
		return b.Version + " (" + b.Commit[:7] + ")"
	}
	return b.Version
}
