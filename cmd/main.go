package main

import (
	"fmt"
	"os"

	"github.com/dtroode/storefront-server/internal/cli"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	logAppVersion()

	cmd := cli.NewRootCommand()
	cmd.Version = buildVersion
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Fprintf(os.Stderr, tmpl, buildVersion, buildDate, buildCommit)
}
