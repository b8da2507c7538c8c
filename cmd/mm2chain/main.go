// cmd/mm2chain/main.go
package main

import (
	"github.com/UCLA-VAST/minimap2-acceleration/internal/app"
	"github.com/UCLA-VAST/minimap2-acceleration/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
