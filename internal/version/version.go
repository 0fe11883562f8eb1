package version

// Set at build time through -ldflags "-X".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func UserAgent() string {
	return "skipsel/" + Version
}
