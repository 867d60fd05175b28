// Command a11ylens analyzes web pages for common accessibility issues.
package main

import (
	"os"

	"github.com/raysh454/a11ylens/internal/cli"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cli.SetVersion(version)
	os.Exit(cli.Execute())
}
