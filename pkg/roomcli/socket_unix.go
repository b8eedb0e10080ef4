//go:build !windows

package roomcli

import (
	"net"
	"os"
	"path/filepath"

	"github.com/lofiroom/lofid/common"
)

func socketPath() string {
	if path := os.Getenv(common.SocketPathEnv); path != "" {
		return path
	}
	return filepath.Join(os.TempDir(), "lofid.sock")
}

// getConnectionPath returns the primary transport endpoint for this platform.
func getConnectionPath() string {
	return socketPath()
}

// isDaemonRunning probes the daemon endpoint with a short-lived dial.
func isDaemonRunning(path string) bool {
	conn, err := net.DialTimeout("unix", path, socketDialTimeout)
	if err != nil {
		conn, err = net.DialTimeout("tcp", tcpAddress(), socketDialTimeout)
		if err != nil {
			return false
		}
	}
	conn.Close()
	return true
}
