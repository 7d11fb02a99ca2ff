/*
meshgen generates the shapes listed in manifest files and exports them.

	meshgen [config.toml]
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/meshgen/engine"
	"github.com/spaghettifunk/meshgen/engine/core"
)

const defaultConfigPath = "meshgen.toml"

func main() {
	configPath := defaultConfigPath
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	config, err := engine.LoadApplicationConfig(configPath)
	if err != nil {
		core.LogFatal(err.Error())
	}

	e, err := engine.New(config)
	if err != nil {
		core.LogFatal(err.Error())
	}

	if err := e.Initialize(); err != nil {
		_ = e.Shutdown()
		core.LogFatal(err.Error())
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	// start shutdown goroutine
	go func() {
		// capture sigterm and other system call here
		<-sigCh
		core.EventFire(core.EVENT_CODE_APPLICATION_QUIT, nil, core.EventContext{})
	}()

	// run engine
	runErr := e.Run()
	if err := e.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if runErr != nil {
		core.LogFatal(runErr.Error())
	}
}
