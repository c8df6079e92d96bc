// Package common contains helpers shared by all binaries: logger setup and
// build metadata.
package common

// Version is the build version, overridden at build time via
// -ldflags "-X github.com/claytonburns/asprofile/common.Version=...".
var Version = "dev"
