// Package version reports the build version of the serialization module.
//
// Version and GitCommit are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/serialization/version.Version=1.0.0"
package version
