// main is the entry point for the graphlens CLI.
package main

import (
	"github.com/mquintal/graphlens/cmd"
	"github.com/mquintal/graphlens/internal/contract"
	"github.com/mquintal/graphlens/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()

	// Flush persistence and profiling before reporting any command error,
	// since LogFatal exits the process.
	iocache.CloseCaching()
	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
