// Package main provides the entry point for the taskboard CLI tool.
package main

import "github.com/yesaroun/taskboard/cmd/taskboard/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
