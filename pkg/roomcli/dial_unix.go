//go:build !windows

package roomcli

import (
	"fmt"
	"net"
)

// dial connects to the daemon over its Unix socket, falling back to TCP.
// Transport priority: Unix socket > TCP.
func dial() (net.Conn, error) {
	if forceTCP() {
		debugLog("forcing TCP connection to %s", tcpAddress())
		return dialFunc("tcp", tcpAddress())
	}
	debugLog("attempting connection via Unix socket at %s", socketPath())
	conn, unixErr := dialFunc("unix", socketPath())
	if unixErr != nil {
		debugLog("Unix socket connection failed: %v, falling back to TCP", unixErr)
		conn, err := dialFunc("tcp", tcpAddress())
		if err != nil {
			return nil, fmt.Errorf("failed to connect: unix socket error: %v; tcp error: %w", unixErr, err)
		}
		debugLog("connected via TCP fallback to %s", tcpAddress())
		return conn, nil
	}
	debugLog("connected via Unix socket")
	return conn, nil
}
