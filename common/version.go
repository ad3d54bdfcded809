package common

// Version is the service version, overridden at build time via ldflags.
var Version = "dev"

// PackageName tags log output and user agents.
const PackageName = "certomancer-client"
