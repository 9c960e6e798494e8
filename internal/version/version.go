package version

// Version is the toolkit release. Overridable at build time via
// -ldflags "-X protsim/internal/version.Version=...".
var Version = "0.1.0"
