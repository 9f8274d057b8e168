// Command scorepanel drives a secondary-display scoreboard for a remote
// controller: it keeps the WebSocket link alive, applies scoreboard updates and
// hands the screen to an external player or the slideshow on request.
package main

import (
	"fmt"
	"io"
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	code := 0
	root := buildRootCmd(&code)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "scorepanel: %v\n", err)
		if code == 0 {
			code = 1
		}
	}
	return code
}
