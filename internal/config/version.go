package config

// Version is the complyd binary version.
// Set at build time via: -ldflags "-X github.com/complyd/complyd/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
