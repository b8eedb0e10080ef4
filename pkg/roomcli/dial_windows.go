//go:build windows

package roomcli

import (
	"fmt"
	"net"

	"github.com/lofiroom/lofid/common"
)

// dial connects to the daemon over its named pipe, falling back to TCP.
// Transport priority: Named pipe > TCP.
func dial() (net.Conn, error) {
	if forceTCP() {
		debugLog("forcing TCP connection to %s", tcpAddress())
		return dialFunc("tcp", tcpAddress())
	}
	path := pipePath()
	debugLog("attempting connection via named pipe at %s", path)
	timeout := common.DefaultDialTimeout
	conn, pipeErr := dialPipeFunc(path, &timeout)
	if pipeErr != nil {
		debugLog("named pipe connection failed: %v, falling back to TCP", pipeErr)
		conn, err := dialFunc("tcp", tcpAddress())
		if err != nil {
			return nil, fmt.Errorf("failed to connect: named pipe error: %v; tcp error: %w", pipeErr, err)
		}
		debugLog("connected via TCP fallback to %s", tcpAddress())
		return conn, nil
	}
	debugLog("connected via named pipe")
	return conn, nil
}
