// ABOUTME: Entry point for the lifehub CLI
// ABOUTME: Hands off to the cobra command tree and exits with its status
package main

import (
	"os"

	"github.com/harperreed/lifehub/cli"
)

var version = "0.2.0"

func main() {
	os.Exit(cli.Execute(version))
}
