package main

import (
	"github.com/ItsGosho/hydrachain-explorer-requester/cmd"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cmd.SetVersion(version, buildTime)
	cmd.Execute()
}
