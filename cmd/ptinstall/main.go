// Command ptinstall unpacks portable tool distributions, including
// self-extracting 7z payloads nested inside them, below a base directory.
package main

import (
	"os"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0-dev"

func main() {
	os.Exit(execute(os.Args[1:], newApp(os.Stdout, os.Stderr)))
}
