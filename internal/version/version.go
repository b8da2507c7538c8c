package version

// Version is overridden at build time:
//
//	go build -ldflags "-X github.com/UCLA-VAST/minimap2-acceleration/internal/version.Version=v1.2.3"
var Version = "dev"
