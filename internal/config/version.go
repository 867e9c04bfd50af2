package config

// Version is the omopgraph binary version.
// Set at build time via: -ldflags "-X github.com/omopgraph/omopgraph/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
