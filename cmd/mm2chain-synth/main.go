// cmd/mm2chain-synth/main.go
package main

import (
	"github.com/UCLA-VAST/minimap2-acceleration/internal/appshell"
	"github.com/UCLA-VAST/minimap2-acceleration/internal/synthapp"
)

func main() { appshell.Main(synthapp.RunContext) }
