package main

import (
	"github.com/aptpod/tcpinfo-go/internal/cli"
)

var (
	version   = ""
	commit    = ""
	buildDate = ""
)

// go build -ldflags "-X main.version=v0.1.0 -X main.commit=$(git rev-parse --short HEAD) -X 'main.buildDate=$(date +%Y-%m-%d)'" -o tcpinfo ./cmd/tcpinfo

func main() {
	cli.SetVersionBuildCommitString(version, commit, buildDate)
	cli.Execute()
}
