//go:build windows

package roomcli

import (
	"context"
	"net"
	"time"

	"github.com/Microsoft/go-winio"

	"github.com/lofiroom/lofid/common"
)

func pipePath() string {
	return common.PipePath()
}

// getConnectionPath returns the primary transport endpoint for this platform.
func getConnectionPath() string {
	return pipePath()
}

// dialPipeFunc points to the named pipe dialer. Tests swap it out.
var dialPipeFunc = dialPipeImpl

func dialPipeImpl(path string, timeout *time.Duration) (net.Conn, error) {
	if timeout == nil {
		defaultTimeout := common.DefaultDialTimeout
		timeout = &defaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	return winio.DialPipeContext(ctx, path)
}

// isDaemonRunning probes the daemon endpoint with a short-lived dial.
func isDaemonRunning(path string) bool {
	timeout := socketDialTimeout
	conn, err := dialPipeFunc(path, &timeout)
	if err != nil {
		conn, err = net.DialTimeout("tcp", tcpAddress(), socketDialTimeout)
		if err != nil {
			return false
		}
	}
	conn.Close()
	return true
}
