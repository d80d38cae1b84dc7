package version

// Version is the marketplace daemon build version.
const Version = "1.0.0"

// CurrentCommit is set by the build system via -ldflags.
var CurrentCommit string

func UserVersion() string {
	return Version + CurrentCommit
}
