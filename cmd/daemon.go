package cmd

import (
	"fmt"
	"log"

	"github.com/urfave/cli"

	"github.com/lofiroom/lofid/cmd/common"
	"github.com/lofiroom/lofid/pkg/logger"
)

func daemon(ctx *cli.Context) error {
	lg := logger.NewStandardLogger(log.Default())
	defer lg.Close()
	if err := runDaemon(lg); err != nil {
		common.PrintRuntimeErr(ctx, "daemon", "run", err)
	}
	return nil
}

// runDaemon runs the daemon in console mode until interrupted.
func runDaemon(lg logger.Logger) error {
	if pid, err := ReadPidFile(); err == nil && isProcessRunning(pid) {
		return fmt.Errorf("daemon is already running (pid %d)", pid)
	}

	comps, err := initDaemonComponents(lg)
	if err != nil {
		return err
	}
	defer comps.Close()

	if err := WritePidFile(); err != nil {
		lg.Warning("Cannot write pid file: %v", err)
	} else {
		defer func() { _ = RemovePidFile() }()
	}

	runCtx, cancel := setupShutdownHandler()
	defer cancel()

	lg.Info("lofid listening on port %d (web bridge on %d)", DEF_PORT, DEF_PORT+1)
	return comps.Serve(runCtx)
}
