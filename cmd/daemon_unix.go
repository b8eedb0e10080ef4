//go:build !windows

package cmd

import "github.com/urfave/cli"

// getDaemonAction returns the platform-specific daemon action.
// On non-Windows platforms the daemon always runs in console mode.
func getDaemonAction() cli.ActionFunc {
	return daemon
}

// platformCommands returns extra commands for this platform. There are none
// outside Windows.
func platformCommands() []cli.Command {
	return nil
}
